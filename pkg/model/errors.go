package model

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrSolver        = errors.New("solver error")
)

// ConfigurationError reports an input that cannot be compiled. It is raised before any variable is created
type ConfigurationError struct {
	Reason string
}

func newConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrConfiguration, err.Reason)
}

func (err *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// SolverError reports a failure of the solving backend, as opposed to an infeasible or inconclusive search
type SolverError struct {
	Err error
}

func (err *SolverError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSolver, err.Err)
}

func (err *SolverError) Unwrap() error {
	return err.Err
}

func (err *SolverError) Is(target error) bool {
	return target == ErrSolver
}
