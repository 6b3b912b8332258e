package core

import (
	"fmt"
	"math"
)

// Unbounded is the Max of a CountRange with no upper limit.
const Unbounded = math.MaxInt

// CountRange is a closed interval of acceptable call counts.
type CountRange struct {
	Min int
	Max int
}

// Exactly is the range [n,n]. Exactly(1) is the default for expectations.
func Exactly(n int) CountRange {
	return CountRange{Min: n, Max: n}
}

// AtLeast is the range [n,Unbounded].
func AtLeast(n int) CountRange {
	return CountRange{Min: n, Max: Unbounded}
}

// AtMost is the range [0,n].
func AtMost(n int) CountRange {
	return CountRange{Min: 0, Max: n}
}

// Never is the range [0,0], the count policy of a negative expectation.
func Never() CountRange {
	return CountRange{Min: 0, Max: 0}
}

// Contains reports whether n falls inside the range.
func (r CountRange) Contains(n int) bool {
	return r.Min <= n && n <= r.Max
}

func (r CountRange) String() string {
	switch {
	case r.Min == 0 && r.Max == 0:
		return "never"
	case r.Min == r.Max:
		return fmt.Sprintf("exactly %d time(s)", r.Min)
	case r.Max == Unbounded:
		return fmt.Sprintf("at least %d time(s)", r.Min)
	case r.Min == 0:
		return fmt.Sprintf("at most %d time(s)", r.Max)
	default:
		return fmt.Sprintf("between %d and %d times", r.Min, r.Max)
	}
}

// Expectation is a registered requirement that a method be called within a
// count range, checked at verify time. Configuration methods return the
// expectation itself for fluent chaining.
type Expectation struct {
	methodName string
	matcher    ArgsMatcher
	count      CountRange
	policy     ReturnPolicy
	origin     string

	// observed never exceeds count.Max: dispatch skips an exhausted
	// expectation. overflow counts the matching calls that arrived after
	// exhaustion and were absorbed elsewhere, so verify can still report
	// the true call count.
	observed int
	overflow int
}

// Matching sets the argument predicate for this expectation.
func (e *Expectation) Matching(matcher ArgsMatcher) *Expectation {
	e.matcher = matcher
	return e
}

// With requires the call arguments to deep-equal the given values.
func (e *Expectation) With(args ...any) *Expectation {
	return e.Matching(ExactArgs(args...))
}

// WithMatching requires each call argument to satisfy the positional matcher.
func (e *Expectation) WithMatching(matchers ...any) *Expectation {
	return e.Matching(MatchArgs(matchers...))
}

// Times requires the method to be called exactly n times.
func (e *Expectation) Times(n int) *Expectation {
	e.count = Exactly(n)
	return e
}

// AtLeast requires the method to be called at least n times.
func (e *Expectation) AtLeast(n int) *Expectation {
	e.count = AtLeast(n)
	return e
}

// AtMost allows the method to be called at most n times.
func (e *Expectation) AtMost(n int) *Expectation {
	e.count = AtMost(n)
	return e
}

// Between requires the call count to fall in [min,max].
func (e *Expectation) Between(minCount, maxCount int) *Expectation {
	e.count = CountRange{Min: minCount, Max: maxCount}
	return e
}

// Returns sets fixed return values for matching calls.
func (e *Expectation) Returns(values ...any) *Expectation {
	e.policy = Values(values...)
	return e
}

// ReturnsFrom computes return values from the actual arguments at call time.
func (e *Expectation) ReturnsFrom(compute func(args []any) []any) *Expectation {
	e.policy = ValuesFrom(compute)
	return e
}

// ReturnsInOrder yields each value set in turn, the last sticking once the
// sequence is exhausted.
func (e *Expectation) ReturnsInOrder(sets ...[]any) *Expectation {
	e.policy = ValuesInOrder(sets...)
	return e
}

// Observed returns how many matching calls this expectation has seen,
// including calls that arrived after the count range's Max was reached.
func (e *Expectation) Observed() int {
	return e.observed + e.overflow
}

func (e *Expectation) accepts(args []any) bool {
	return e.matcher == nil || e.matcher(args) == nil
}

func (e *Expectation) negative() bool {
	return e.count.Max == 0
}

func (e *Expectation) exhausted() bool {
	return e.observed >= e.count.Max
}

func (e *Expectation) returnValues(args []any) []any {
	if e.policy == nil {
		return nil
	}

	return e.policy.Evaluate(args)
}

// Stub is a registered canned behavior with no call-count requirement.
// The observed count exists only for diagnostics and historical queries; it
// is never checked at verify time.
type Stub struct {
	methodName string
	matcher    ArgsMatcher
	policy     ReturnPolicy
	observed   int
}

// Matching sets the argument predicate for this stub.
func (s *Stub) Matching(matcher ArgsMatcher) *Stub {
	s.matcher = matcher
	return s
}

// With requires the call arguments to deep-equal the given values.
func (s *Stub) With(args ...any) *Stub {
	return s.Matching(ExactArgs(args...))
}

// WithMatching requires each call argument to satisfy the positional matcher.
func (s *Stub) WithMatching(matchers ...any) *Stub {
	return s.Matching(MatchArgs(matchers...))
}

// Returns sets fixed return values for matching calls.
func (s *Stub) Returns(values ...any) *Stub {
	s.policy = Values(values...)
	return s
}

// ReturnsFrom computes return values from the actual arguments at call time.
func (s *Stub) ReturnsFrom(compute func(args []any) []any) *Stub {
	s.policy = ValuesFrom(compute)
	return s
}

// ReturnsInOrder yields each value set in turn, the last sticking once the
// sequence is exhausted.
func (s *Stub) ReturnsInOrder(sets ...[]any) *Stub {
	s.policy = ValuesInOrder(sets...)
	return s
}

// Observed returns how many calls this stub has answered.
func (s *Stub) Observed() int {
	return s.observed
}

func (s *Stub) accepts(args []any) bool {
	return s.matcher == nil || s.matcher(args) == nil
}

func (s *Stub) returnValues(args []any) []any {
	if s.policy == nil {
		return nil
	}

	return s.policy.Evaluate(args)
}
