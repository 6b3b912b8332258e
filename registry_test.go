package doubles_test

import (
	"strings"
	"testing"

	"github.com/toejough/doubles"
)

func TestFor_OneSpacePerTest(t *testing.T) {
	t.Parallel()

	if doubles.For(t) != doubles.For(t) {
		t.Error("expected the same space for the same test")
	}

	m := &mockT{}
	if doubles.For(t) == doubles.For(m) {
		t.Error("expected distinct spaces for distinct reporters")
	}
}

func TestVerifyAll_ReportsExactlyTheUnmetDoubles(t *testing.T) {
	t.Parallel()

	m := &mockT{}

	satisfied := &notifier{}
	doubles.Expect(m, satisfied, "Ping")

	unmet := &notifier{}
	doubles.Expect(m, unmet, "Pong")

	doubles.Call(m, satisfied, "Ping")

	defer func() {
		if recover() == nil {
			t.Error("expected VerifyAll to fail")
		}

		if !strings.Contains(m.msg, "Pong") {
			t.Errorf("expected the report to name the unmet method, got %q", m.msg)
		}

		if strings.Contains(m.msg, "Ping") {
			t.Errorf("the satisfied double must not appear in the report: %q", m.msg)
		}
	}()

	doubles.VerifyAll(m)
}

func TestResetAll_ClearsEveryDouble(t *testing.T) {
	t.Parallel()

	m := &mockT{}

	first := &notifier{}
	doubles.Expect(m, first, "Missed")

	second := &notifier{}
	doubles.Expect(m, second, "AlsoMissed")

	doubles.ResetAll(m)

	// previously unmet expectations no longer exist anywhere
	doubles.VerifyAll(m)
	doubles.VerifyDouble(m, first)

	if m.failed {
		t.Errorf("expected a clean verify after reset, got %q", m.msg)
	}

	if doubles.For(m).Len() != 0 {
		t.Error("expected the space to be emptied")
	}
}
