// Package browser opens URLs in the local default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches the platform browser at the given URL. The launch is
// fire-and-forget; the spawned process is not waited on.
func Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	return nil
}
