package subdivision

import "github.com/pkg/errors"

var (
	// ErrPrecondViolation is raised when an operator's precondition does not
	// hold, and applying it would break a structural invariant.
	ErrPrecondViolation = errors.New("precondition violated")

	// ErrCorrupt is returned by Validate when the structure is inconsistent.
	ErrCorrupt = errors.New("corrupt subdivision")
)
