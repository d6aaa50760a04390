package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, "http://127.0.0.1:8000", cfg.IdentityBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0, cfg.CallbackPort)
	assert.Equal(t, 30, cfg.OTPCooldownSeconds)
	assert.Equal(t, "termclass.log", cfg.LogFile)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"identity_base_url": "https://id.example.com",
		"request_timeout": "5s",
		"otp_cooldown_seconds": 60
	}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "https://id.example.com", cfg.IdentityBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 60, cfg.OTPCooldownSeconds)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "termclass.log", cfg.LogFile)
}

func TestLoadConfig_EnvOverridesJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"identity_base_url": "https://json.example.com"}`), 0o600))

	withArgs(t, "-c", path)
	t.Setenv("TERMCLASS_IDENTITY_URL", "https://env.example.com")
	t.Setenv("TERMCLASS_REQUEST_TIMEOUT", "7s")

	cfg := LoadConfig()
	assert.Equal(t, "https://env.example.com", cfg.IdentityBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsWinOverEverything(t *testing.T) {
	withArgs(t, "-s", "https://flag.example.com", "-t", "3", "-w", "45", "-p", "8976")
	t.Setenv("TERMCLASS_IDENTITY_URL", "https://env.example.com")

	cfg := LoadConfig()
	assert.Equal(t, "https://flag.example.com", cfg.IdentityBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 45, cfg.OTPCooldownSeconds)
	assert.Equal(t, 8976, cfg.CallbackPort)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "missing.json"))

	assert.Panics(t, func() { LoadConfig() })
}
