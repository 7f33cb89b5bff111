package config

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/kochabx/jwekit/core/tag"
	"github.com/kochabx/jwekit/core/validator"
	"github.com/kochabx/jwekit/errors"
)

// Reasons attached to load errors
const (
	ReasonNotFound   = "CONFIG_NOT_FOUND"
	ReasonParse      = "CONFIG_PARSE"
	ReasonValidation = "CONFIG_VALIDATION"
	ReasonDefaults   = "CONFIG_DEFAULTS"
)

// FileLoader loads configuration from a file, with environment overrides
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	optional bool
}

// FileLoaderOption configures a FileLoader
type FileLoaderOption func(*FileLoader)

// WithEnvPrefix makes PREFIX_SECTION_KEY override section.key
func WithEnvPrefix(prefix string) FileLoaderOption {
	return func(l *FileLoader) {
		l.viper.SetEnvPrefix(prefix)
	}
}

// WithOptional lets Load succeed with defaults and environment values when
// no config file exists
func WithOptional() FileLoaderOption {
	return func(l *FileLoader) {
		l.optional = true
	}
}

// NewFileLoader searches paths for a file called name. The extension of name
// selects the format.
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator, opts ...FileLoaderOption) *FileLoader {
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(name)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(name), "."))

	return newFileLoader(v, validate, opts)
}

// NewPathLoader loads exactly the file at path
func NewPathLoader(path string, v *viper.Viper, validate validator.Validator, opts ...FileLoaderOption) *FileLoader {
	v.SetConfigFile(path)
	return newFileLoader(v, validate, opts)
}

func newFileLoader(v *viper.Viper, validate validator.Validator, opts []FileLoaderOption) *FileLoader {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	l := &FileLoader{
		viper:    v,
		validate: validate,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies struct tag defaults, then the file, then validates
func (l *FileLoader) Load(target any) error {
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.NewWithReason(500, ReasonDefaults, "failed to apply defaults: %v", err).WithCause(err)
	}
	if err := l.registerDefaults(target); err != nil {
		return errors.NewWithReason(500, ReasonDefaults, "failed to register defaults: %v", err).WithCause(err)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		switch {
		case !isNotFound(err):
			return errors.NewWithReason(500, ReasonParse, "config parse error: %v", err).WithCause(err)
		case !l.optional:
			return errors.NewWithReason(404, ReasonNotFound, "config file not found: %v", err).WithCause(err)
		}
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.NewWithReason(500, ReasonParse, "config parse error: %v", err).WithCause(err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.NewWithReason(400, ReasonValidation, "config validation failed: %v", err).WithCause(err)
		}
	}

	return nil
}

// registerDefaults hands the defaulted target to viper so every key is known,
// which AutomaticEnv needs to override keys the file does not mention
func (l *FileLoader) registerDefaults(target any) error {
	var settings map[string]any
	if err := mapstructure.Decode(target, &settings); err != nil {
		return err
	}
	for key, value := range settings {
		l.viper.SetDefault(key, value)
	}
	return nil
}

// Watch reloads on file changes. It is a no-op when no file was read.
func (l *FileLoader) Watch(callback func()) error {
	if l.viper.ConfigFileUsed() == "" {
		return nil
	}

	l.viper.OnConfigChange(func(fsnotify.Event) {
		if callback != nil {
			callback()
		}
	})
	l.viper.WatchConfig()
	return nil
}

// ConfigFileUsed returns the file that was read, if any
func (l *FileLoader) ConfigFileUsed() string {
	return l.viper.ConfigFileUsed()
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	// SetConfigFile reports a missing file as a plain fs error
	return errors.Is(err, fs.ErrNotExist)
}
