package typeddeploy

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// View describes a read-only function of contract C taking A and returning R.
type View[C Contract, A Args, R any] struct {
	name   string
	decode func([]any) (R, error)
}

// NewView declares a view function returning a single value.
func NewView[C Contract, A Args, R any](name string) View[C, A, R] {
	return View[C, A, R]{name: name, decode: decodeSingle[R]}
}

// NewViewWith declares a view function with a custom output decoder, used
// for functions with several return values.
func NewViewWith[C Contract, A Args, R any](name string, decode func([]any) (R, error)) View[C, A, R] {
	return View[C, A, R]{name: name, decode: decode}
}

// Name returns the ABI function name.
func (v View[C, A, R]) Name() string { return v.name }

func decodeSingle[R any](out []any) (R, error) {
	var zero R
	if len(out) != 1 {
		return zero, fmt.Errorf("expected 1 return value, got %d", len(out))
	}
	if v, ok := out[0].(R); ok {
		return v, nil
	}
	return convert[R](out[0])
}

// convert maps ABI decoded values (anonymous structs, fixed arrays) onto R.
// abi.ConvertType panics on a mismatch.
func convert[R any](in any) (out R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot convert %T to %T: %v", in, out, r)
		}
	}()
	return *abi.ConvertType(in, new(R)).(*R), nil
}
