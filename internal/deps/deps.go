package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency Overdub relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Requirements lists the external tools a dubbing run may execute.
// separationEnabled controls whether Demucs is required.
func Requirements(separationEnabled bool) []Requirement {
	reqs := []Requirement{
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Demuxing, chunking, and final assembly"},
		{Name: "FFprobe", Command: "ffprobe", Description: "Media inspection"},
		{Name: "uvx", Command: "uvx", Description: "Runs WhisperX for transcription"},
	}
	demucs := Requirement{Name: "Demucs", Command: "demucs", Description: "Vocal/background separation"}
	demucs.Optional = !separationEnabled
	reqs = append(reqs, demucs)
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		results = append(results, check(req))
	}
	return results
}

func check(req Requirement) Status {
	status := Status{Requirement: req}
	switch _, err := exec.LookPath(req.Command); {
	case req.Command == "":
		status.Detail = "command not configured"
	case err != nil:
		status.Detail = fmt.Sprintf("binary %q not found", req.Command)
	default:
		status.Available = true
	}
	return status
}

// MissingRequired returns the names of unavailable non-optional dependencies.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
