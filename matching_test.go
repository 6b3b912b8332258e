package doubles_test

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive
	"github.com/toejough/doubles"
	"github.com/toejough/doubles/match"
)

func TestWithMatching_GomegaMatchersWork(t *testing.T) {
	t.Parallel()

	subject := &notifier{}

	// doubles is compatible with third-party matchers like Gomega via duck
	// typing. Any object implementing Match(any) (bool, error) and
	// FailureMessage(any) string works.
	doubles.Expect(t, subject, "Record").
		WithMatching(ContainSubstring("load"), BeNumerically(">", 100)).
		Returns("ok")

	values := doubles.Call(t, subject, "Record", "overload", 250)
	if values[0] != "ok" {
		t.Errorf("expected the matching call to hit the expectation, got %#v", values)
	}
}

func TestWithMatching_BeAnyIgnoresAnArgument(t *testing.T) {
	t.Parallel()

	subject := &notifier{}
	doubles.StubMethod(t, subject, "Record").
		WithMatching(match.BeAny, "fixed").
		Returns(1)

	if doubles.Call(t, subject, "Record", 12345, "fixed")[0] != 1 {
		t.Error("expected BeAny to match any first argument")
	}
}

func TestWithMatching_SatisfyPredicate(t *testing.T) {
	t.Parallel()

	subject := &notifier{}
	doubles.StubMethod(t, subject, "Record").
		WithMatching(match.Satisfy(func(n int) error {
			if n < 0 {
				return fmt.Errorf("expected non-negative, got %d", n)
			}

			return nil
		})).
		Returns(true)

	if doubles.Call(t, subject, "Record", 7)[0] != true {
		t.Error("expected the predicate to accept 7")
	}
}

func TestWithMatching_MismatchFallsThroughToFailure(t *testing.T) {
	t.Parallel()

	m := &mockT{}
	subject := &notifier{}
	doubles.StubMethod(m, subject, "Record").WithMatching(match.Eq("wanted"))

	defer func() {
		if recover() == nil {
			t.Error("expected the mismatched call to fail as unexpected")
		}

		if !strings.Contains(m.msg, "Record") {
			t.Errorf("expected the failure to name the method, got %q", m.msg)
		}
	}()

	doubles.Call(m, subject, "Record", "other")
}
