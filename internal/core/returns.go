package core

// ReturnPolicy decides what values an intercepted call produces.
type ReturnPolicy interface {
	// Evaluate produces the return values for one call, given the actual
	// arguments. Policies with internal state (queued sequences) advance here.
	Evaluate(args []any) []any
}

// Values returns a policy that yields the same fixed values on every call.
func Values(values ...any) ReturnPolicy {
	return &fixedReturn{values: values}
}

// ValuesFrom returns a policy that computes return values from the actual
// arguments at call time.
func ValuesFrom(compute func(args []any) []any) ReturnPolicy {
	return &computedReturn{compute: compute}
}

// ValuesInOrder returns a policy that yields each value set in turn, one per
// call. Once the sequence is exhausted, the last set sticks for all further
// calls.
func ValuesInOrder(sets ...[]any) ReturnPolicy {
	return &queuedReturn{sets: sets}
}

type fixedReturn struct {
	values []any
}

func (p *fixedReturn) Evaluate([]any) []any {
	return p.values
}

// singleValue reports the policy's value when it holds exactly one, which is
// what the chain resolver needs to find an existing link to recurse onto.
func (p *fixedReturn) singleValue() (any, bool) {
	if len(p.values) != 1 {
		return nil, false
	}

	return p.values[0], true
}

type computedReturn struct {
	compute func(args []any) []any
}

func (p *computedReturn) Evaluate(args []any) []any {
	return p.compute(args)
}

type queuedReturn struct {
	sets [][]any
	next int
}

func (p *queuedReturn) Evaluate([]any) []any {
	if len(p.sets) == 0 {
		return nil
	}

	values := p.sets[p.next]

	// the last set sticks once the queue is exhausted
	if p.next < len(p.sets)-1 {
		p.next++
	}

	return values
}
