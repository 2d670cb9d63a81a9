package models

import "fmt"

// ErrorKind identifies which part of the taxonomy in spec §7 a
// PlannerError belongs to.
type ErrorKind string

const (
	MissingFile        ErrorKind = "MissingFile"
	SchemaError        ErrorKind = "SchemaError"
	ReferentialError   ErrorKind = "ReferentialError"
	CarbPolicyError    ErrorKind = "CarbPolicyError"
	RulesCoverageError ErrorKind = "RulesCoverageError"
	Infeasible         ErrorKind = "Infeasible"
	SolverTimeout      ErrorKind = "SolverTimeout"
	SolverError        ErrorKind = "SolverError"
)

// PlannerError is the error type the loader and planner packages
// return (internal/config reports its own failures as plain errors).
// It carries the offending entity so messages cite it
// precisely, per spec §4.1 ("Fails fast with a precise message citing
// the offending entity").
type PlannerError struct {
	Kind    ErrorKind
	Entity  string
	Message string
	Cause   error
}

func (e *PlannerError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PlannerError) Unwrap() error {
	return e.Cause
}

// NewError builds a PlannerError with a formatted message.
func NewError(kind ErrorKind, entity, format string, args ...any) *PlannerError {
	return &PlannerError{
		Kind:    kind,
		Entity:  entity,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError builds a PlannerError that wraps an underlying error.
func WrapError(kind ErrorKind, entity string, cause error) *PlannerError {
	return &PlannerError{
		Kind:    kind,
		Entity:  entity,
		Message: cause.Error(),
		Cause:   cause,
	}
}
