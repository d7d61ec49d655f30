package geometry

import (
	"fmt"
	"strings"
)

// Array is a row-major block of float64 values with an explicit shape.
// The zero value is an empty rank-1 array.
type Array struct {
	shape []int
	data  []float64
}

// NewArray wraps data with the given shape. The data is copied.
func NewArray(shape []int, data []float64) (Array, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return Array{}, fmt.Errorf("%w: negative extent in %s", ErrShapeData, FormatShape(shape))
		}
		size *= d
	}
	if size != len(data) {
		return Array{}, fmt.Errorf("%w: shape %s holds %d values, got %d", ErrShapeData, FormatShape(shape), size, len(data))
	}
	a := Array{shape: append([]int(nil), shape...), data: make([]float64, len(data))}
	copy(a.data, data)
	return a, nil
}

// Vector builds a rank-1 array.
func Vector(values ...float64) Array {
	data := make([]float64, len(values))
	copy(data, values)
	return Array{shape: []int{len(values)}, data: data}
}

// Matrix builds a rank-2 array from rows of equal length.
func Matrix(rows [][]float64) (Array, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Array{}, fmt.Errorf("%w: row %d has %d values, row 0 has %d", ErrRagged, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return Array{shape: []int{len(rows), cols}, data: data}, nil
}

func (a Array) Shape() []int {
	if a.shape == nil {
		return []int{0}
	}
	return append([]int(nil), a.shape...)
}

func (a Array) Rank() int {
	if a.shape == nil {
		return 1
	}
	return len(a.shape)
}

// Values returns a copy of the underlying data in row-major order.
func (a Array) Values() []float64 {
	c := make([]float64, len(a.data))
	copy(c, a.data)
	return c
}

// Row returns a copy of row i of a rank-2 array.
func (a Array) Row(i int) []float64 {
	if a.Rank() != 2 {
		panic(fmt.Sprintf("geometry: Row on array of rank %d", a.Rank()))
	}
	cols := a.shape[1]
	row := make([]float64, cols)
	copy(row, a.data[i*cols:(i+1)*cols])
	return row
}

// FormatShape renders a shape the way numpy prints it: (4, 3), (5,).
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprint(d)
	}
	if len(shape) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
