package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrDimension indicates an array of the wrong rank.
	ErrDimension = errors.New("geometry: wrong array dimension")

	// ErrRagged indicates rows of unequal length passed to Matrix.
	ErrRagged = errors.New("geometry: rows have unequal length")

	// ErrShapeData indicates a data slice whose length does not fit the shape.
	ErrShapeData = errors.New("geometry: data length does not match shape")
)

// DimensionError reports the rank of an array rejected by a rank-1 operation.
type DimensionError struct {
	Rank int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("geometry: expected array of dimension 1, got: %d", e.Rank)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimension
}
