package http

import (
	"github.com/kochabx/jwekit/core/tag"
	"github.com/kochabx/jwekit/transport/http/middleware"
)

type Options struct {
	Metrics MetricsOption
	Health  HealthOption
	Cors    middleware.CorsConfig
}

type MetricsOption struct {
	Enabled                   bool   `json:"enabled" mapstructure:"enabled" default:"true"`
	Path                      string `json:"path" mapstructure:"path" default:"/metrics"`
	EnabledGoCollector        bool   `json:"enabled_go_collector" mapstructure:"enabled_go_collector"`
	EnabledBuildInfoCollector bool   `json:"enabled_build_info_collector" mapstructure:"enabled_build_info_collector"`
}

// init fills the path; Enabled is taken as given so an explicit false stays off
func (m *MetricsOption) init() error {
	enabled := m.Enabled
	err := tag.ApplyDefaults(m)
	m.Enabled = enabled
	return err
}

type HealthOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled" default:"true"`
	Path    string `json:"path" mapstructure:"path" default:"/health"`
}

func (h *HealthOption) init() error {
	enabled := h.Enabled
	err := tag.ApplyDefaults(h)
	h.Enabled = enabled
	return err
}
