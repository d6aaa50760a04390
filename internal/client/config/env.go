package config

import "github.com/caarlos0/env/v10"

// parseEnv overlays Config with TERMCLASS_* environment variables, mapped by
// the `env` tags on Config. Unset variables keep the current values.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
