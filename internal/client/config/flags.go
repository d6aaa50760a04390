package config

import (
	"flag"
	"os"
	"time"

	"github.com/elearnhq/termclass/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   identity service base URL
//	-t int      request timeout in seconds
//	-p int      OAuth callback loopback port (0 = any free port)
//	-w int      OTP resend cooldown in seconds
//	-log string log file path
//
// The function filters os.Args to only the flags it owns, using
// flagx.FilterArgs, so it does not trip over the -c/-config flags handled
// by the JSON layer or over positional link arguments.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-p", "-w", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.IdentityBaseURL, "s", cfg.IdentityBaseURL, "identity service base URL")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.CallbackPort, "p", cfg.CallbackPort, "OAuth callback loopback port")
	fs.IntVar(&cfg.OTPCooldownSeconds, "w", cfg.OTPCooldownSeconds, "OTP resend cooldown (in seconds)")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
