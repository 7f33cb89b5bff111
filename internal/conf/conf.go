// Package conf holds the service configuration of jwekit serve.
package conf

import (
	"time"

	"github.com/spf13/viper"

	"github.com/kochabx/jwekit/bridge"
	"github.com/kochabx/jwekit/config"
	"github.com/kochabx/jwekit/core/crypto/p256"
	"github.com/kochabx/jwekit/core/validator"
	"github.com/kochabx/jwekit/log"
	"github.com/kochabx/jwekit/store/redis"
	khttp "github.com/kochabx/jwekit/transport/http"
	"github.com/kochabx/jwekit/transport/http/middleware"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. JWEKIT_SERVER_ADDR.
	EnvPrefix = "JWEKIT"
	// FileName is searched for in SearchPaths when no path is given.
	FileName = "jwekit.yaml"
)

// SearchPaths are the directories searched for FileName, in order.
var SearchPaths = []string{".", "./configs", "/etc/jwekit"}

type Config struct {
	Server Server     `json:"server" mapstructure:"server"`
	Log    log.Config `json:"log" mapstructure:"log"`
	Bridge Bridge     `json:"bridge" mapstructure:"bridge"`
}

type Server struct {
	Addr            string                `json:"addr" mapstructure:"addr" default:":8080" validate:"hostname_port"`
	Mode            string                `json:"mode" mapstructure:"mode" default:"release" validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration         `json:"shutdown_timeout" mapstructure:"shutdown_timeout" default:"30s"`
	Metrics         khttp.MetricsOption   `json:"metrics" mapstructure:"metrics"`
	Health          khttp.HealthOption    `json:"health" mapstructure:"health"`
	Cors            middleware.CorsConfig `json:"cors" mapstructure:"cors"`
	RateLimit       RateLimit             `json:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimit caps session requests per client IP. The local backend keeps a
// token bucket per process; the redis backend shares a sliding window
// between instances.
type RateLimit struct {
	Enabled    bool          `json:"enabled" mapstructure:"enabled"`
	Backend    string        `json:"backend" mapstructure:"backend" default:"local" validate:"oneof=local redis"`
	Requests   int           `json:"requests" mapstructure:"requests" default:"600" validate:"gte=1"`
	Window     time.Duration `json:"window" mapstructure:"window" default:"1m" validate:"gt=0"`
	Burst      int           `json:"burst" mapstructure:"burst"`
	FailClosed bool          `json:"fail_closed" mapstructure:"fail_closed"`
	Prefix     string        `json:"prefix" mapstructure:"prefix" default:"jwekit:ratelimit:"`
	Redis      redis.Config  `json:"redis" mapstructure:"redis"`
}

// Bridge configures decryption policy. Keys themselves are never configured:
// callers pass them per request.
type Bridge struct {
	AllowMissingKID  bool   `json:"allow_missing_kid" mapstructure:"allow_missing_kid"`
	VerifySignatures bool   `json:"verify_signatures" mapstructure:"verify_signatures"`
	TrustedIssuer    string `json:"trusted_issuer" mapstructure:"trusted_issuer" default:"https://fit-pay.com"`
	ServerPublicKey  string `json:"server_public_key" mapstructure:"server_public_key" validate:"omitempty,p256pub"`
}

// Options translates the section into bridge options.
func (b Bridge) Options() ([]bridge.Option, error) {
	opts := []bridge.Option{
		bridge.WithAllowMissingKeyID(b.AllowMissingKID),
		bridge.WithSignatureVerification(b.VerifySignatures),
	}
	if b.TrustedIssuer != "" {
		opts = append(opts, bridge.WithTrustedIssuer(b.TrustedIssuer))
	}
	if b.ServerPublicKey != "" {
		key, err := p256.ParsePublicKeyHex(b.ServerPublicKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bridge.WithServerKey(key))
	}
	return opts, nil
}

// Load reads path, or searches SearchPaths for FileName when path is empty.
// A missing file is only an error when path was given explicitly. The
// returned config.Config can Watch the file for changes; onChange runs after
// each reload.
func Load(path string, onChange ...func()) (*Config, *config.Config, error) {
	cfg := new(Config)
	v := viper.New()

	var loader *config.FileLoader
	if path != "" {
		loader = config.NewPathLoader(path, v, validator.Validate, config.WithEnvPrefix(EnvPrefix))
	} else {
		loader = config.NewFileLoader(FileName, SearchPaths, v, validator.Validate,
			config.WithEnvPrefix(EnvPrefix), config.WithOptional())
	}

	c := config.New(cfg, loader, onChange...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}
