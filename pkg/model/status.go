package model

import (
	"fmt"

	"github.com/samber/lo"
)

type Status int

const (
	Unknown Status = iota // Search ended without a verdict (deadline, cancellation)
	Optimal
	Feasible
	Infeasible
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Optimal:    "optimal",
	Feasible:   "feasible",
	Infeasible: "infeasible",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(status))
}

// Solved reports whether the status comes with an assignment
func (status Status) Solved() bool {
	return status == Optimal || status == Feasible
}

func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

func (status *Status) UnmarshalText(text []byte) error {
	parsed, ok := lo.FindKey(statusNames, string(text))
	if !ok {
		return fmt.Errorf("%v is not a valid status", string(text))
	}
	*status = parsed
	return nil
}
