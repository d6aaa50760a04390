// Package config assembles the client's runtime settings from layered
// sources: built-in defaults, an optional JSON file, environment variables,
// and command-line flags. Later layers override earlier ones.
package config

import "time"

// Config holds runtime settings for the TermClass client.
type Config struct {
	// IdentityBaseURL is the scheme+host of the identity service.
	IdentityBaseURL string `env:"TERMCLASS_IDENTITY_URL"`

	// RequestTimeout bounds each identity call end to end. Flows deliberately
	// have no timeout of their own; this is the transport's.
	RequestTimeout time.Duration `env:"TERMCLASS_REQUEST_TIMEOUT"`

	// CallbackPort is the loopback port for the OAuth callback listener.
	// 0 picks a free port.
	CallbackPort int `env:"TERMCLASS_CALLBACK_PORT"`

	// OTPCooldownSeconds is the resend cooldown on the verification step.
	OTPCooldownSeconds int `env:"TERMCLASS_OTP_COOLDOWN"`

	// LogFile receives structured logs; the TUI owns the terminal.
	LogFile string `env:"TERMCLASS_LOG_FILE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.IdentityBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.CallbackPort = 0
	c.OTPCooldownSeconds = 30
	c.LogFile = "termclass.log"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given), the environment, and command-line
// flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
