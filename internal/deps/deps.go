// Package deps reports the availability of external binaries the library
// depends on, chiefly the configured media player.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"sunflower/internal/config"
)

// Requirement defines an external binary Sunflower relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig lists the requirements implied by the configuration.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Player",
			Command:     cfg.Player.Binary,
			Description: "External media player used for clip playback",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
