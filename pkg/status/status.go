// Package status maps probe outcomes onto the monitoring plugin convention
// of OK, WARNING, CRITICAL and UNKNOWN with exit codes 0 to 3.
package status

import (
	"encoding/json"
	"fmt"

	"github.com/mittwald/fileprobe/pkg/fileprobe"
)

type Status int

const (
	OK Status = iota
	Warning
	Critical
	Unknown
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

func (s Status) ExitCode() int {
	if s < OK || s > Unknown {
		return int(Unknown)
	}
	return int(s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s - %s", r.Status, r.Message)
}

// FromError turns the outcome of a check into a Result. Probe failures are
// critical; any other error means the check itself could not be evaluated.
func FromError(err error, okMessage string) Result {
	switch {
	case err == nil:
		return Result{Status: OK, Message: okMessage}
	case fileprobe.IsProbeError(err):
		return Result{Status: Critical, Message: err.Error()}
	default:
		return Result{Status: Unknown, Message: err.Error()}
	}
}

// Parse is the inverse of String; unrecognised names are Unknown.
func Parse(name string) Status {
	for _, s := range []Status{OK, Warning, Critical} {
		if s.String() == name {
			return s
		}
	}
	return Unknown
}

// Worst returns the most severe of the given statuses, OK for none.
// Unknown ranks below Critical.
func Worst(statuses ...Status) Status {
	worst := OK
	for _, s := range statuses {
		if severity(s) > severity(worst) {
			worst = s
		}
	}
	return worst
}

func severity(s Status) int {
	switch s {
	case OK:
		return 0
	case Warning:
		return 1
	case Unknown:
		return 2
	default:
		return 3
	}
}
