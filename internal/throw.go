package internal

import "github.com/pkg/errors"

// Threading errors up and down all the recursive operations during mesh
// construction and refinement would add a ton of complexity to the code.
// Instead, we use panics, and the public API recovers to convert to an error.

// MeshError is the panic payload of Throwf. Any other panic value is
// a real bug and is re-raised by HandlePanicRecover.
type MeshError struct {
	error
}

func (e MeshError) Unwrap() error {
	return e.error
}

// Panic with a MeshError wrapping cause, so that callers can match it with
// errors.Is once recovered.
func Throwf(cause error, format string, args ...interface{}) {
	panic(MeshError{errors.Wrapf(cause, format, args...)})
}

func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if meshError, ok := r.(MeshError); ok {
			return meshError.error
		}
		panic(r)
	}
	return nil
}

// Recover is HandlePanicRecover for the common defer pattern:
//
//	defer internal.Recover(&err)
func Recover(err *error) {
	if recovered := HandlePanicRecover(recover()); recovered != nil {
		*err = recovered
	}
}
