package particles

import (
	"errors"
	"fmt"

	"github.com/san-kum/boxsim/internal/geometry"
)

var (
	// ErrShape indicates construction input that is not a (4, N) block.
	ErrShape = errors.New("particles: invalid input shape")

	// ErrPrecondition indicates state that cannot be stepped.
	ErrPrecondition = errors.New("particles: precondition violated")
)

// ShapeError carries the shape rejected by FromArray.
type ShapeError struct {
	Shape []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("particles: expected shape (4, N), got: %s", geometry.FormatShape(e.Shape))
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// PreconditionError describes why a box or particle set was refused.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "particles: " + e.Reason
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
