package doubles

import (
	"github.com/toejough/doubles/internal/core"
)

// For returns the Space tracking every double created under t, creating one
// if needed. Multiple calls with the same TestReporter return the same Space.
//
// When t supports Cleanup (like *testing.T), the space verifies itself after
// the test body completes and then resets unconditionally, so each test
// starts from a clean space even when verification fails. Runners without
// Cleanup must call VerifyAll and then ResetAll themselves.
func For(t TestReporter) *Space {
	return core.SpaceFor(t)
}

// VerifyAll verifies every double created under t, checking every interceptor
// before reporting so one failure lists every broken expectation.
func VerifyAll(t TestReporter) {
	t.Helper()

	if err := core.SpaceFor(t).VerifyAll(); err != nil {
		t.Fatalf("%v", err)
	}
}

// ResetAll resets every double created under t and empties its space. It
// never fails, and is always safe to call in cleanup.
func ResetAll(t TestReporter) {
	core.SpaceFor(t).ResetAll()
}
