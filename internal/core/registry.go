package core

import (
	"sync"
)

// TestReporter is the minimal interface the doubles engine needs from test
// frameworks. *testing.T and *testing.B both satisfy it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// SpaceFor returns the Space for the given test, creating one if needed.
// Multiple calls with the same TestReporter return the same Space instance,
// so every double configured during one test lands in one registry.
//
// If the TestReporter supports Cleanup (like *testing.T), a hook is
// registered that verifies every tracked interceptor when the test body
// completes and then unconditionally resets the space, so the next test
// starts clean even when verification fails.
func SpaceFor(t TestReporter) *Space {
	registryMu.Lock()
	defer registryMu.Unlock()

	if space, ok := registry[t]; ok {
		return space
	}

	space := NewSpace()
	registry[t] = space

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			// Reset must run even when Fatalf stops the cleanup
			// goroutine mid-report.
			defer func() {
				space.ResetAll()

				registryMu.Lock()
				delete(registry, t)
				registryMu.Unlock()
			}()

			if err := space.VerifyAll(); err != nil {
				t.Fatalf("%v", err)
			}
		})
	}

	return space
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter]*Space)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
