package doubles

import (
	"reflect"

	"github.com/toejough/doubles/internal/core"
)

// Double is the explicit wrapper that routes named-method invocations through
// an interceptor. A double built with NewDouble is fully synthetic; one built
// with Wrap shares its interceptor with the wrapped value, so unmatched calls
// pass through to that value's real methods.
type Double struct {
	t       TestReporter
	name    string
	real    any
	wrapped *core.Interceptor
}

// NewDouble creates an anonymous double with no real behavior. The name
// appears in failure diagnostics.
func NewDouble(t TestReporter, name string) *Double {
	d := &Double{t: t, name: name}
	d.wrapped = core.SpaceFor(t).Attach(d)

	return d
}

// Wrap creates a partial double over a real value: configured expectations
// and stubs intercept matching calls, and everything else passes through to
// the value's own methods. Configuration through the package-level functions
// with the same real value lands on the same interceptor.
func Wrap(t TestReporter, real any) *Double {
	return &Double{
		t:       t,
		real:    real,
		wrapped: core.SpaceFor(t).Attach(real),
	}
}

// SyntheticDouble marks anonymous doubles as having no real behavior.
func (d *Double) SyntheticDouble() {}

// Subject returns the value the interceptor is attached to: the wrapped real
// value, or the double itself when anonymous.
func (d *Double) Subject() any {
	if d.real != nil {
		return d.real
	}

	return d
}

// Call routes one invocation through the double's interceptor, failing the
// test at the call site on unexpected or forbidden calls.
func (d *Double) Call(method string, args ...any) []any {
	d.t.Helper()

	values, err := d.wrapped.Intercept(method, args)
	if err != nil {
		d.t.Fatalf("%v", err)
		return nil
	}

	return values
}

func (d *Double) String() string {
	if d.name != "" {
		return "double(" + d.name + ")"
	}

	return "double"
}

// MethodFunc builds a function of type T whose calls are routed through the
// subject's interceptor, for handing to code under test that takes function
// dependencies. T must be a function type; anything else is a programming
// error and panics.
//
// Return values produced by the interceptor are converted to T's declared
// return types, with typed zero values standing in for nil.
func MethodFunc[T any](t TestReporter, subject any, method string) T {
	funcType := reflect.TypeOf((*T)(nil)).Elem()
	if funcType.Kind() != reflect.Func {
		panic("doubles.MethodFunc: type parameter must be a function type, got " + funcType.String())
	}

	in := core.SpaceFor(t).Attach(subject)

	relayer := func(args []reflect.Value) []reflect.Value {
		t.Helper()

		values, err := in.Intercept(method, unreflectValues(args))
		if err != nil {
			t.Fatalf("%v", err)
			return zeroReturns(funcType)
		}

		return typedReturns(funcType, values)
	}

	// Depending on MakeFunc to return the correct type, as documented. If it
	// failed to, the only thing we'd do is panic anyway.
	return reflect.MakeFunc(funcType, relayer).Interface().(T) //nolint:forcetypeassert
}

// typedReturns converts the interceptor's untyped return values into the
// function type's declared return types.
func typedReturns(funcType reflect.Type, values []any) []reflect.Value {
	out := make([]reflect.Value, funcType.NumOut())

	for i := range out {
		outType := funcType.Out(i)

		if i >= len(values) || values[i] == nil {
			out[i] = reflect.Zero(outType)
			continue
		}

		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(outType) && v.Type().ConvertibleTo(outType) {
			v = v.Convert(outType)
		}

		out[i] = v
	}

	return out
}

func zeroReturns(funcType reflect.Type) []reflect.Value {
	out := make([]reflect.Value, funcType.NumOut())
	for i := range out {
		out[i] = reflect.Zero(funcType.Out(i))
	}

	return out
}

// unreflectValues returns the actual values of the reflected values.
func unreflectValues(rArgs []reflect.Value) []any {
	if len(rArgs) == 0 {
		return nil
	}

	args := []any{}

	for i := range rArgs {
		args = append(args, rArgs[i].Interface())
	}

	return args
}
