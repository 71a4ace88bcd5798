package config

// OpsConfig defines configuration for the operational HTTP listener
// serving health and metrics endpoints.
type OpsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Listen  string `json:"listen,omitempty" yaml:"listen,omitempty" validate:"omitempty,hostname_port"`
}

// NewDefaultOpsConfig creates default ops configuration.
func NewDefaultOpsConfig() OpsConfig {
	return OpsConfig{
		Enabled: false,
		Listen:  DefaultOpsListenAddr,
	}
}
