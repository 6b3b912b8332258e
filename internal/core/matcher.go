package core

import (
	"fmt"
	"reflect"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// ArgsMatcher is a predicate over a full argument tuple.
// It returns nil for a match, or an error describing why the tuple
// didn't match. A nil ArgsMatcher matches every tuple.
type ArgsMatcher func(args []any) error

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	// Check if expected is a Matcher
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	// Fall back to reflect.DeepEqual for non-matchers
	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}

// ExactArgs builds an ArgsMatcher that requires the tuple to deep-equal the
// expected values, position by position.
func ExactArgs(expected ...any) ArgsMatcher {
	return func(actualArgs []any) error {
		if len(actualArgs) != len(expected) {
			//nolint:err113 // validation error with dynamic context
			return fmt.Errorf("expected %d args, got %d", len(expected), len(actualArgs))
		}

		for i, want := range expected {
			if !reflect.DeepEqual(actualArgs[i], want) {
				//nolint:err113 // validation error with dynamic context
				return fmt.Errorf("arg %d: expected %#v, got %#v", i, want, actualArgs[i])
			}
		}

		return nil
	}
}

// MatchArgs builds an ArgsMatcher from per-argument matchers. Each matcher is
// applied positionally via MatchValue, so plain values compare by DeepEqual
// and Matcher implementations (including gomega matchers) are consulted
// directly.
func MatchArgs(matchers ...any) ArgsMatcher {
	return func(actualArgs []any) error {
		if len(actualArgs) != len(matchers) {
			//nolint:err113 // validation error with dynamic context
			return fmt.Errorf("expected %d args, got %d", len(matchers), len(actualArgs))
		}

		for index, m := range matchers {
			ok, failureMsg := MatchValue(actualArgs[index], m)
			if !ok {
				if failureMsg != "" {
					//nolint:err113 // validation error with dynamic context
					return fmt.Errorf("arg %d: %s", index, failureMsg)
				}
				//nolint:err113 // validation error with dynamic context
				return fmt.Errorf("arg %d: matcher failed for value %#v", index, actualArgs[index])
			}
		}

		return nil
	}
}
