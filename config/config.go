package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/jwekit/core/validator"
	"github.com/kochabx/jwekit/log"
)

// Config guards a target struct that a Loader fills and refills on change.
// Readers go through Read so a reload never tears a value they are using.
type Config struct {
	mu       sync.RWMutex
	target   any
	loader   Loader
	onChange []func()
}

// New binds target to loader. A nil loader reads config.yaml from the
// working directory. onChange callbacks run after every successful reload
// triggered by Watch, outside the lock.
func New(target any, loader Loader, onChange ...func()) *Config {
	if loader == nil {
		loader = NewFileLoader("config.yaml", []string{"."}, viper.New(), validator.Validate)
	}
	return &Config{target: target, loader: loader, onChange: onChange}
}

// Load reads the configuration into the target
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loader.Load(c.target)
}

// Read runs fn while holding the read lock, so fn sees a consistent target
func (c *Config) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Watch reloads the target on changes and then runs the OnChange callbacks
func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")

		if err := c.Load(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
		for _, fn := range c.onChange {
			fn()
		}
	})
}
