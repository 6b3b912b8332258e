package doubles_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/toejough/doubles/internal/core"
)

// TestCountRange_Property proves verify passes exactly when the observed call
// count lands inside the configured range, for any range and call count. A
// broad stub absorbs over-calls so they surface at verify time rather than as
// unexpected messages.
func TestCountRange_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		minCount := rapid.IntRange(0, 4).Draw(rt, "min")
		// max of 0 would make this a negative expectation, which has its own
		// property below
		maxCount := rapid.IntRange(max(minCount, 1), minCount+4).Draw(rt, "max")
		calls := rapid.IntRange(0, 10).Draw(rt, "calls")

		in := core.NewInterceptor("subject")
		in.AddStub("Tick", core.Values("absorbed"))
		exp := in.AddExpectation("Tick", core.CountRange{Min: minCount, Max: maxCount}, "")

		for i := 0; i < calls; i++ {
			if _, err := in.Intercept("Tick", nil); err != nil {
				rt.Fatalf("dispatch must never fail with the stub in place: %v", err)
			}
		}

		if exp.Observed() != calls {
			rt.Fatalf("expected every call recorded, observed %d of %d", exp.Observed(), calls)
		}

		err := in.Verify()
		inRange := minCount <= calls && calls <= maxCount

		if inRange && err != nil {
			rt.Fatalf("count %d in [%d,%d] must verify clean, got: %v", calls, minCount, maxCount, err)
		}

		if !inRange && err == nil {
			rt.Fatalf("count %d outside [%d,%d] must fail verify", calls, minCount, maxCount)
		}
	})
}

// TestValuesInOrder_Property proves the queued policy yields each set in
// order and then sticks on the last one forever.
func TestValuesInOrder_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.Int(), 1, 8).Draw(rt, "values")
		calls := rapid.IntRange(1, 20).Draw(rt, "calls")

		sets := make([][]any, len(values))
		for i, v := range values {
			sets[i] = []any{v}
		}

		policy := core.ValuesInOrder(sets...)

		for call := 0; call < calls; call++ {
			want := values[min(call, len(values)-1)]

			got := policy.Evaluate(nil)[0]
			if got != want {
				rt.Fatalf("call %d: expected %v, got %v", call, want, got)
			}
		}
	})
}

// TestNegativeExpectation_Property proves a forbidden method fails on the
// first matching call no matter what other records exist.
func TestNegativeExpectation_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		stubs := rapid.IntRange(0, 3).Draw(rt, "stubs")

		in := core.NewInterceptor("subject")

		for i := 0; i < stubs; i++ {
			in.AddStub("Forbidden", core.Values("decoy"))
		}

		in.AddExpectation("Forbidden", core.Never(), "")

		_, err := in.Intercept("Forbidden", nil)
		if err == nil {
			rt.Fatal("expected the forbidden call to fail immediately")
		}
	})
}
