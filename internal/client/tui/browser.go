package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// execCommand is swapped out in tests.
var execCommand = exec.Command

// openBrowser hands the URL to the platform opener so the provider's consent
// page renders in the user's regular browser session.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = execCommand("open", url)
	case "windows":
		cmd = execCommand("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = execCommand("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
