// Package doubles attaches test-double behavior to arbitrary subjects:
// selected method calls are intercepted, counted, matched against expected
// call patterns, and optionally given canned return values, while unmatched
// calls either pass through to the subject's real behavior or fail the test.
//
// This is the public API entry point. Implementation lives in internal/core.
package doubles

import (
	"fmt"
	"runtime"

	"github.com/toejough/doubles/internal/core"
)

// ArgsMatcher is a predicate over a full argument tuple; nil matches any.
type ArgsMatcher = core.ArgsMatcher

// CountRange is a closed interval of acceptable call counts.
type CountRange = core.CountRange

// Expectation is a registered requirement that a method be called within a
// count range, checked at verify time.
type Expectation = core.Expectation

// Interceptor owns all expectations and stubs for one subject.
type Interceptor = core.Interceptor

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// Placeholder is an anonymous intermediate double created for chain links.
type Placeholder = core.Placeholder

// ReturnPolicy decides what values an intercepted call produces.
type ReturnPolicy = core.ReturnPolicy

// Space is the registry coordinating verify/reset across all doubles created
// during one test.
type Space = core.Space

// Stub is a registered canned behavior with no call-count requirement.
type Stub = core.Stub

// TestReporter is the minimal interface doubles needs from test frameworks.
type TestReporter = core.TestReporter

// Exactly is the count range [n,n].
func Exactly(n int) CountRange { return core.Exactly(n) }

// AtLeast is the count range [n,unbounded].
func AtLeast(n int) CountRange { return core.AtLeast(n) }

// AtMost is the count range [0,n].
func AtMost(n int) CountRange { return core.AtMost(n) }

// Values returns a policy yielding the same fixed values on every call.
func Values(values ...any) ReturnPolicy { return core.Values(values...) }

// ValuesFrom returns a policy computing return values from the call's args.
func ValuesFrom(compute func(args []any) []any) ReturnPolicy {
	return core.ValuesFrom(compute)
}

// ValuesInOrder returns a policy yielding each value set in turn, the last
// sticking once the sequence is exhausted.
func ValuesInOrder(sets ...[]any) ReturnPolicy { return core.ValuesInOrder(sets...) }

// MatchValue checks if actual matches expected, consulting expected's Match
// method when it implements Matcher and falling back to DeepEqual otherwise.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// Attach returns the subject's interceptor in t's space, creating and
// tracking one on first use.
func Attach(t TestReporter, subject any) *Interceptor {
	return core.SpaceFor(t).Attach(subject)
}

// Expect registers an expectation that the subject's method is called exactly
// once. Configure counts, argument matchers, and return values on the
// returned handle:
//
//	doubles.Expect(t, repo, "Save").With(user).Times(2).Returns(nil)
func Expect(t TestReporter, subject any, method string) *Expectation {
	t.Helper()

	return Attach(t, subject).AddExpectation(method, core.Exactly(1), callerOrigin())
}

// Refuse registers a negative expectation: any matching call to the method
// fails the test immediately at the call site.
func Refuse(t TestReporter, subject any, method string) *Expectation {
	t.Helper()

	return Attach(t, subject).AddExpectation(method, core.Never(), callerOrigin())
}

// StubMethod registers a stub for one method. Configure argument matchers and
// return values on the returned handle; with no return policy, matching calls
// return nothing.
func StubMethod(t TestReporter, subject any, method string) *Stub {
	t.Helper()

	return Attach(t, subject).AddStub(method, nil)
}

// StubMethods registers one fixed-value stub per map entry. Use StubMethod
// for anything fancier than a single canned return value.
func StubMethods(t TestReporter, subject any, methods map[string]any) {
	t.Helper()

	in := Attach(t, subject)
	for method, value := range methods {
		in.AddStub(method, core.Values(value))
	}
}

// Unstub removes every stub registered for the subject's method. Subsequent
// calls pass through to real behavior, or fail as unexpected when none
// exists.
func Unstub(t TestReporter, subject any, method string) {
	t.Helper()
	Attach(t, subject).RemoveStub(method)
}

// StubChain stubs a dot-delimited method chain, such as "a.b.c", so that
// invoking the full chain on the subject yields the terminal value.
// Intermediate links are materialized as anonymous placeholder doubles and
// shared with overlapping chains. The terminal may be a plain value, a
// ReturnPolicy, or a func([]any) []any evaluated per call.
func StubChain(t TestReporter, subject any, chain string, terminal any) {
	t.Helper()
	StubChainNames(t, subject, core.SplitChain(chain), terminal)
}

// StubChainNames is StubChain for a chain already split into a name list.
func StubChainNames(t TestReporter, subject any, names []string, terminal any) {
	t.Helper()

	space := core.SpaceFor(t)

	err := space.StubChain(space.Attach(subject), names, terminal)
	if err != nil {
		t.Fatalf("%v", err)
	}
}

// ReceivedMessage reports whether the subject ever received a call to the
// method with arguments matching the positional matchers (any arguments, when
// none are given). It is a pure historical query over the interceptor's call
// log.
func ReceivedMessage(t TestReporter, subject any, method string, matchers ...any) bool {
	var matcher core.ArgsMatcher
	if len(matchers) > 0 {
		matcher = core.MatchArgs(matchers...)
	}

	return Attach(t, subject).ReceivedMessage(method, matcher)
}

// MarkNullObject puts the subject's double in null-object mode: any
// unregistered call answers with the subject itself.
func MarkNullObject(t TestReporter, subject any) {
	Attach(t, subject).SetNullObject(true)
}

// IsNullObject reports whether the subject's double is in null-object mode.
func IsNullObject(t TestReporter, subject any) bool {
	return Attach(t, subject).IsNullObject()
}

// Call routes one invocation through the subject's interceptor, failing the
// test at the call site on unexpected or forbidden calls. Code under test
// that holds the subject directly usually goes through a Double or
// MethodFunc instead.
func Call(t TestReporter, subject any, method string, args ...any) []any {
	t.Helper()

	values, err := Attach(t, subject).Intercept(method, args)
	if err != nil {
		t.Fatalf("%v", err)
		return nil
	}

	return values
}

// VerifyDouble verifies the subject's expectations now, failing the test with
// every unmet expectation at once.
func VerifyDouble(t TestReporter, subject any) {
	t.Helper()

	if err := Attach(t, subject).Verify(); err != nil {
		t.Fatalf("%v", err)
	}
}

// ResetDouble clears every expectation and stub on the subject's double. It
// never fails, even for a subject that was never configured.
func ResetDouble(t TestReporter, subject any) {
	Attach(t, subject).Reset()
}

// callerOrigin captures the file:line of the test code configuring an
// expectation, two frames up from here (past the façade function).
func callerOrigin() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}

	return fmt.Sprintf("%s:%d", file, line)
}
