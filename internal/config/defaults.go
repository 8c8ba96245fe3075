package config

// Default configuration values.
const (
	DefaultMatch           = "any"
	DefaultSuitesDirectory = "suites"
	DefaultSuitesPattern   = "*.yaml"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Match == "" {
		cfg.Match = DefaultMatch
	}
	if cfg.Suites == nil {
		cfg.Suites = &SuitesConfig{}
	}
	if cfg.Suites.Directory == "" {
		cfg.Suites.Directory = DefaultSuitesDirectory
	}
	if cfg.Suites.Pattern == "" {
		cfg.Suites.Pattern = DefaultSuitesPattern
	}
	if cfg.Run == nil {
		cfg.Run = &RunConfig{}
	}
}
