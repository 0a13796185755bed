package session

import (
	"os/exec"
	"runtime"

	"matchman/internal/errors"
	"matchman/internal/log"
)

// OpenConfigFolder asks the host file manager to show the match directory.
// Failure is reported, never fatal.
func (c *Controller) OpenConfigFolder() error {
	return openFolder(c.catalog.Dir())
}

func openFolder(dir string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", dir)
	case "darwin":
		cmd = exec.Command("open", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}
	if err := cmd.Start(); err != nil {
		log.Warnf("could not open %s in the file manager: %v", dir, err)
		return errors.Wrapf(err, "could not open %s", dir)
	}
	// The file manager outlives us; don't wait on it, but reap the child.
	go func() { _ = cmd.Wait() }()
	return nil
}
