package cmd

import (
	"os/exec"
	"runtime"

	"github.com/orgviz/orgviz/core"
	"github.com/orgviz/orgviz/internal/contract"
)

// openArtifacts opens the produced files with the system default
// application when --open is set. Failures are warnings, never fatal.
func openArtifacts(arts *core.Artifacts) {
	if arts == nil || !cfg.OpenFiles {
		return
	}
	for _, path := range arts.Paths() {
		if err := openFile(path); err != nil {
			contract.LogWarning("could not open " + path + ": " + err.Error())
		}
	}
}

func openFile(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", path)
	case "windows":
		c = exec.Command("cmd", "/c", "start", "", path)
	default:
		c = exec.Command("xdg-open", path)
	}
	return c.Start()
}
