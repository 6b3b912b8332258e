package core

import (
	"fmt"
	"strings"
)

// ExpectationFailure describes one expectation whose observed call count fell
// outside its range.
type ExpectationFailure struct {
	Method   string
	Expected CountRange
	Observed int
	Origin   string
}

func (f ExpectationFailure) String() string {
	msg := fmt.Sprintf("expected %q to be called %v, but it was called %d time(s)", f.Method, f.Expected, f.Observed)
	if f.Origin != "" {
		msg += " (expectation set at " + f.Origin + ")"
	}

	return msg
}

// UnsatisfiedExpectationError is the verify-time failure for one interceptor.
// It carries every unmet expectation, not just the first.
type UnsatisfiedExpectationError struct {
	Subject  string
	Failures []ExpectationFailure
}

func (e *UnsatisfiedExpectationError) Error() string {
	lines := make([]string, 0, len(e.Failures)+1)
	lines = append(lines, fmt.Sprintf("unsatisfied expectations on %s:", e.Subject))

	for _, f := range e.Failures {
		lines = append(lines, "  "+f.String())
	}

	return strings.Join(lines, "\n")
}

// UnexpectedMessageError is the call-time failure for a call that matched no
// expectation, no stub, has no passthrough, and whose subject is not a null
// object.
type UnexpectedMessageError struct {
	Subject    string
	Method     string
	Args       []any
	Registered []string
}

func (e *UnexpectedMessageError) Error() string {
	registered := "nothing"
	if len(e.Registered) > 0 {
		registered = strings.Join(e.Registered, ", ")
	}

	return fmt.Sprintf(
		"%s received unexpected call %s(%s)\nregistered methods: %s",
		e.Subject, e.Method, formatArgs(e.Args), registered,
	)
}

// NegativeExpectationError is the call-time failure for a call that matched a
// forbidden expectation. It is raised immediately, never deferred to verify.
type NegativeExpectationError struct {
	Subject string
	Method  string
	Args    []any
	Origin  string
}

func (e *NegativeExpectationError) Error() string {
	msg := fmt.Sprintf("%s received forbidden call %s(%s)", e.Subject, e.Method, formatArgs(e.Args))
	if e.Origin != "" {
		msg += " (forbidden at " + e.Origin + ")"
	}

	return msg
}

// ChainConfigurationError reports a malformed chain specification.
type ChainConfigurationError struct {
	Reason string
}

func (e *ChainConfigurationError) Error() string {
	return "bad chain configuration: " + e.Reason
}

// VerifyError aggregates verify failures across every interceptor in a
// space, so one test run surfaces every broken expectation at once.
type VerifyError struct {
	Failures []*UnsatisfiedExpectationError
}

func (e *VerifyError) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, f.Error())
	}

	return strings.Join(lines, "\n")
}

func formatArgs(args []any) string {
	formatted := make([]string, 0, len(args))
	for _, a := range args {
		formatted = append(formatted, fmt.Sprintf("%#v", a))
	}

	return strings.Join(formatted, ", ")
}
