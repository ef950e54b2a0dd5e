package matrix

import (
	"fmt"
	"math"
)

// Dense is a row-major float64 matrix. The zero value is not usable; build
// instances with NewDense, NewDenseFrom or Identity.
type Dense struct {
	r, c int
	data []float64
}

// opErrorf wraps err with an operation tag, preserving the sentinel for
// errors.Is. Call only with err != nil.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NewDense allocates a zero-filled r×c matrix.
//
// Errors: ErrBadShape when r <= 0 or c <= 0.
func NewDense(r, c int) (*Dense, error) {
	if r <= 0 || c <= 0 {
		return nil, opErrorf("NewDense", ErrBadShape)
	}

	return &Dense{r: r, c: c, data: make([]float64, r*c)}, nil
}

// NewDenseFrom builds an r×c matrix from row-major data. The slice is
// copied; the caller keeps ownership of the input.
//
// Errors: ErrBadShape on bad dimensions or len(data) != r*c,
// ErrNaNInf when any entry is not finite.
func NewDenseFrom(r, c int, data []float64) (*Dense, error) {
	if r <= 0 || c <= 0 || len(data) != r*c {
		return nil, opErrorf("NewDenseFrom", ErrBadShape)
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, opErrorf("NewDenseFrom", ErrNaNInf)
		}
	}
	m := &Dense{r: r, c: c, data: make([]float64, r*c)}
	copy(m.data, data)

	return m, nil
}

// Identity returns the n×n identity matrix.
//
// Errors: ErrBadShape when n <= 0.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, opErrorf("Identity", ErrBadShape)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows; zero for a nil receiver.
func (m *Dense) Rows() int {
	if m == nil {
		return 0
	}

	return m.r
}

// Cols returns the number of columns; zero for a nil receiver.
func (m *Dense) Cols() int {
	if m == nil {
		return 0
	}

	return m.c
}

// At returns the element (i, j).
//
// Errors: ErrNilMatrix, ErrOutOfRange.
func (m *Dense) At(i, j int) (float64, error) {
	if m == nil {
		return 0, opErrorf("At", ErrNilMatrix)
	}
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, opErrorf("At", ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set assigns the element (i, j). Only finite values are accepted.
//
// Errors: ErrNilMatrix, ErrOutOfRange, ErrNaNInf.
func (m *Dense) Set(i, j int, v float64) error {
	if m == nil {
		return opErrorf("Set", ErrNilMatrix)
	}
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return opErrorf("Set", ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return opErrorf("Set", ErrNaNInf)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Clone returns a deep copy; nil in, nil out.
func (m *Dense) Clone() *Dense {
	if m == nil {
		return nil
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)

	return out
}

// String renders the matrix row by row, mainly for diagnostics and traces.
func (m *Dense) String() string {
	if m == nil {
		return "<nil matrix>"
	}
	s := ""
	for i := 0; i < m.r; i++ {
		s += "["
		for j := 0; j < m.c; j++ {
			if j > 0 {
				s += " "
			}
			s += fmt.Sprintf("%12.5g", m.data[i*m.c+j])
		}
		s += "]\n"
	}

	return s
}
