package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/elearnhq/termclass/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are given as strings like "15s" and parsed into the runtime Config.
type JsonConfig struct {
	IdentityBaseURL    string `json:"identity_base_url"`
	RequestTimeout     string `json:"request_timeout"`
	CallbackPort       *int   `json:"callback_port"`
	OTPCooldownSeconds *int   `json:"otp_cooldown_seconds"`
	LogFile            string `json:"log_file"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flag. No flag, no JSON layer. Absent fields keep their current
// values; read and unmarshal errors panic, as a broken explicit config file
// is not worth limping past.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = jc.IdentityBaseURL
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if jc.CallbackPort != nil {
		cfg.CallbackPort = *jc.CallbackPort
	}
	if jc.OTPCooldownSeconds != nil {
		cfg.OTPCooldownSeconds = *jc.OTPCooldownSeconds
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
}
