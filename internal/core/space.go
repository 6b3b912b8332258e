package core

import (
	"errors"
	"reflect"
)

// Space is the registry of every interceptor created during one test. It
// deduplicates by subject identity and orchestrates bulk verify/reset at the
// test boundary.
type Space struct {
	interceptors map[any]*Interceptor
	order        []*Interceptor
}

// NewSpace returns an empty space.
func NewSpace() *Space {
	return &Space{interceptors: make(map[any]*Interceptor)}
}

// Attach returns the existing interceptor for the subject's identity, or
// constructs and tracks a new one. Pointer-like subjects are keyed by
// pointer, so two pointers to equal values get distinct interceptors; other
// subjects must be comparable and are keyed by value.
func (s *Space) Attach(subject any) *Interceptor {
	key := identityKey(subject)

	if in, ok := s.interceptors[key]; ok {
		return in
	}

	in := NewInterceptor(subject)
	s.interceptors[key] = in
	s.order = append(s.order, in)

	return in
}

// Lookup returns the interceptor already attached to the subject, if any.
// It never creates one.
func (s *Space) Lookup(subject any) (*Interceptor, bool) {
	in, ok := s.interceptors[identityKey(subject)]
	return in, ok
}

// VerifyAll verifies every tracked interceptor, continuing through failures
// so one pass reports every broken expectation. It returns a VerifyError
// aggregating each failing interceptor's report, or nil when all pass.
func (s *Space) VerifyAll() error {
	var failures []*UnsatisfiedExpectationError

	for _, in := range s.order {
		err := in.Verify()
		if err == nil {
			continue
		}

		var unmet *UnsatisfiedExpectationError
		if errors.As(err, &unmet) {
			failures = append(failures, unmet)
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return &VerifyError{Failures: failures}
}

// ResetAll resets every tracked interceptor and then clears the tracking set
// entirely, releasing all subject references so nothing is retained past the
// test boundary. It never fails.
func (s *Space) ResetAll() {
	for _, in := range s.order {
		in.Reset()
	}

	s.interceptors = make(map[any]*Interceptor)
	s.order = nil
}

// Len returns the number of tracked interceptors.
func (s *Space) Len() int {
	return len(s.order)
}

type pointerKey struct {
	ptr uintptr
}

// identityKey maps a subject to the key its interceptor is cached under.
// Identity, not value equality: pointer-like kinds key by address, everything
// else keys by its comparable value.
func identityKey(subject any) any {
	v := reflect.ValueOf(subject)

	switch v.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		return pointerKey{ptr: v.Pointer()}
	default:
		return subject
	}
}
