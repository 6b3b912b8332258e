// Package core provides the internal implementation of the doubles
// expectation engine: per-subject interceptors, the chain resolver, and the
// space that coordinates verify/reset across a test.
package core

import (
	"fmt"
	"reflect"
	"slices"
)

// Synthetic marks subjects that have no real behavior of their own, such as
// anonymous doubles and chain placeholders. Intercept never passes calls
// through to a Synthetic subject's Go methods.
type Synthetic interface {
	SyntheticDouble()
}

type callRecord struct {
	method string
	args   []any
}

// Interceptor owns every expectation and stub registered against one subject,
// and decides what happens on each intercepted call.
//
// An interceptor is not safe for concurrent use. Configuration, interception,
// verify, and reset are expected to run on a single logical thread of control
// per test; callers that exercise a subject from multiple goroutines must
// serialize access themselves.
type Interceptor struct {
	subject      any
	expectations []*Expectation
	stubs        []*Stub
	nullObject   bool
	calls        []callRecord
}

// NewInterceptor constructs an unconfigured interceptor for the subject.
// Most callers should go through Space.Attach instead, which deduplicates by
// subject identity.
func NewInterceptor(subject any) *Interceptor {
	return &Interceptor{subject: subject}
}

// Subject returns the value this interceptor is attached to.
func (i *Interceptor) Subject() any {
	return i.subject
}

// AddExpectation appends a new expectation for the method. origin is the
// caller's source location, used only in failure diagnostics; empty is fine.
// Prior expectations for the same method stay registered - on dispatch the
// newest matching one wins.
func (i *Interceptor) AddExpectation(method string, count CountRange, origin string) *Expectation {
	exp := &Expectation{methodName: method, count: count, origin: origin}
	i.expectations = append(i.expectations, exp)

	return exp
}

// AddStub appends a new stub for the method. Prior stubs for the same method
// stay registered - on dispatch the newest matching one wins.
func (i *Interceptor) AddStub(method string, policy ReturnPolicy) *Stub {
	stub := &Stub{methodName: method, policy: policy}
	i.stubs = append(i.stubs, stub)

	return stub
}

// RemoveStub removes every stub registered for the method.
func (i *Interceptor) RemoveStub(method string) {
	i.stubs = slices.DeleteFunc(i.stubs, func(s *Stub) bool {
		return s.methodName == method
	})
}

// Intercept resolves one call against the registered records:
//
//  1. A matching negative expectation fails immediately.
//  2. The newest matching, non-exhausted expectation absorbs the call.
//  3. The newest matching stub absorbs the call.
//  4. A null-object interceptor answers with its own subject.
//  5. A subject with a real method of that name handles the call itself.
//  6. Otherwise the call fails as unexpected.
func (i *Interceptor) Intercept(method string, args []any) ([]any, error) {
	i.calls = append(i.calls, callRecord{method: method, args: args})

	// Negative expectations fail at the call site, never at verify: being
	// skipped is the only way they are satisfied.
	for idx := len(i.expectations) - 1; idx >= 0; idx-- {
		exp := i.expectations[idx]
		if exp.methodName != method || !exp.negative() {
			continue
		}

		if exp.accepts(args) {
			return nil, &NegativeExpectationError{
				Subject: describeSubject(i.subject),
				Method:  method,
				Args:    args,
				Origin:  exp.origin,
			}
		}
	}

	// Most recently configured wins, and an exhausted expectation never
	// absorbs another call.
	var exhausted *Expectation

	for idx := len(i.expectations) - 1; idx >= 0; idx-- {
		exp := i.expectations[idx]
		if exp.methodName != method || exp.negative() || !exp.accepts(args) {
			continue
		}

		if exp.exhausted() {
			if exhausted == nil {
				exhausted = exp
			}

			continue
		}

		exp.observed++

		return exp.returnValues(args), nil
	}

	// The over-call still counts toward the expectation it would have
	// matched, so verify reports the true call count when a stub or
	// passthrough absorbs it below.
	if exhausted != nil {
		exhausted.overflow++
	}

	for idx := len(i.stubs) - 1; idx >= 0; idx-- {
		stub := i.stubs[idx]
		if stub.methodName != method || !stub.accepts(args) {
			continue
		}

		stub.observed++

		return stub.returnValues(args), nil
	}

	if i.nullObject {
		return []any{i.subject}, nil
	}

	if values, ok := i.callReal(method, args); ok {
		return values, nil
	}

	return nil, &UnexpectedMessageError{
		Subject:    describeSubject(i.subject),
		Method:     method,
		Args:       args,
		Registered: i.registeredMethods(),
	}
}

// Verify checks every expectation's observed count against its range and
// returns an UnsatisfiedExpectationError carrying every failure, or nil when
// all expectations are met.
func (i *Interceptor) Verify() error {
	var failures []ExpectationFailure

	for _, exp := range i.expectations {
		total := exp.Observed()
		if exp.count.Contains(total) {
			continue
		}

		failures = append(failures, ExpectationFailure{
			Method:   exp.methodName,
			Expected: exp.count,
			Observed: total,
			Origin:   exp.origin,
		})
	}

	if len(failures) == 0 {
		return nil
	}

	return &UnsatisfiedExpectationError{
		Subject:  describeSubject(i.subject),
		Failures: failures,
	}
}

// Reset returns the interceptor to the observable state of a freshly
// constructed, unconfigured one. It never fails, even on an interceptor that
// was never configured.
func (i *Interceptor) Reset() {
	i.expectations = nil
	i.stubs = nil
	i.nullObject = false
	i.calls = nil
}

// SetNullObject turns null-object mode on or off. A null object answers any
// unregistered call by returning itself, enabling open-ended chaining without
// configuration.
func (i *Interceptor) SetNullObject(on bool) {
	i.nullObject = on
}

// IsNullObject reports whether the interceptor is in null-object mode.
func (i *Interceptor) IsNullObject() bool {
	return i.nullObject
}

// ReceivedMessage reports whether any intercepted call matched the method and
// argument predicate, independent of which record (if any) absorbed it. It is
// a pure historical query and never mutates state.
func (i *Interceptor) ReceivedMessage(method string, matcher ArgsMatcher) bool {
	for _, call := range i.calls {
		if call.method != method {
			continue
		}

		if matcher == nil || matcher(call.args) == nil {
			return true
		}
	}

	return false
}

// registeredMethods returns the sorted, deduplicated names with at least one
// expectation or stub, for unexpected-message diagnostics.
func (i *Interceptor) registeredMethods() []string {
	var names []string

	for _, exp := range i.expectations {
		names = append(names, exp.methodName)
	}

	for _, stub := range i.stubs {
		names = append(names, stub.methodName)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// chainTarget returns the single fixed value of the newest stub for the
// method, which the chain resolver probes to reuse existing links.
func (i *Interceptor) chainTarget(method string) (any, bool) {
	for idx := len(i.stubs) - 1; idx >= 0; idx-- {
		stub := i.stubs[idx]
		if stub.methodName != method {
			continue
		}

		if fixed, ok := stub.policy.(*fixedReturn); ok {
			return fixed.singleValue()
		}

		return nil, false
	}

	return nil, false
}

// callReal passes the call through to the subject's own method, when one
// exists. Synthetic subjects never have real behavior.
func (i *Interceptor) callReal(method string, args []any) ([]any, bool) {
	if i.subject == nil {
		return nil, false
	}

	if _, ok := i.subject.(Synthetic); ok {
		return nil, false
	}

	fn := reflect.ValueOf(i.subject).MethodByName(method)
	if !fn.IsValid() {
		return nil, false
	}

	return unreflectValues(fn.Call(reflectValuesOf(args, fn.Type()))), true
}

func describeSubject(subject any) string {
	if s, ok := subject.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", subject)
}

// reflectValuesOf returns reflected values for all of the args, using the
// function type to produce typed zero values for nil args.
func reflectValuesOf(args []any, funcType reflect.Type) []reflect.Value {
	rArgs := make([]reflect.Value, len(args))

	for i, arg := range args {
		if arg == nil {
			rArgs[i] = reflect.Zero(paramType(funcType, i))
			continue
		}

		rArgs[i] = reflect.ValueOf(arg)
	}

	return rArgs
}

// paramType returns the declared type of parameter i, unwrapping the slice
// element type for variadic tails.
func paramType(funcType reflect.Type, i int) reflect.Type {
	last := funcType.NumIn() - 1
	if funcType.IsVariadic() && i >= last {
		return funcType.In(last).Elem()
	}

	return funcType.In(i)
}

// unreflectValues returns the actual values of the reflected values.
func unreflectValues(rValues []reflect.Value) []any {
	if len(rValues) == 0 {
		return nil
	}

	values := []any{}

	for i := range rValues {
		values = append(values, rValues[i].Interface())
	}

	return values
}
