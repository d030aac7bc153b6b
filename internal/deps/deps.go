package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"backline/internal/config"
	"backline/internal/rider"
)

// Requirement names an external program backline hands work to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional programs only degrade a feature when missing.
	Optional bool
}

// Status reports whether a requirement was found on PATH.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// CheckBinaries resolves each requirement's command on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Available = true
			status.Detail = path
		}
		results = append(results, status)
	}
	return results
}

// RiderRequirements lists the programs rider export may launch. The opener
// is only needed when riders are opened for printing, so it is optional.
func RiderRequirements(cfg *config.Config) []Requirement {
	var override string
	if cfg != nil {
		override = cfg.Rider.Opener
	}
	opener := rider.OpenerCommand(override)
	return []Requirement{{
		Name:        "Rider opener",
		Command:     opener[0],
		Description: "Opens exported riders in the browser for printing",
		Optional:    true,
	}}
}
