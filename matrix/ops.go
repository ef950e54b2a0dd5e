package matrix

// Operation tags for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opOuter     = "Outer"
	opRotation  = "RotationND"
)

// Mul computes C = A × B into a fresh Dense. Fixed i→k→j loop order with
// row-major strides; zero entries of A are skipped.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: Time O(r·n·c), Space O(r·c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, opErrorf(opMul, err)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, opErrorf(opMul, err)
	}
	var i, j, k int
	var av float64
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			av = a.data[i*a.c+k]
			if av == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				res.data[i*b.c+j] += av * b.data[k*b.c+j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a fresh Dense.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r·c), Space O(r·c).
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, opErrorf(opTranspose, err)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, opErrorf(opTranspose, err)
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha·m as a fresh Dense. NaN/Inf alpha propagates into the
// caller's next validation rather than being rejected here.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r·c), Space O(r·c).
func Scale(m *Dense, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, opErrorf(opScale, err)
	}
	res := m.Clone()
	for i := range res.data {
		res.data[i] *= alpha
	}

	return res, nil
}

// MatVec computes y = m·x for a column vector x.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Cols).
// Complexity: Time O(r·c), Space O(r).
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, opErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, opErrorf(opMatVec, err)
	}
	y := make([]float64, m.r)
	var acc float64
	for i := 0; i < m.r; i++ {
		acc = 0
		for j := 0; j < m.c; j++ {
			acc += m.data[i*m.c+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Outer computes the outer product |u⟩⟨v| as a len(u)×len(v) Dense.
//
// Errors: ErrNilMatrix (nil or empty input slice).
// Complexity: Time O(len(u)·len(v)).
func Outer(u, v []float64) (*Dense, error) {
	if len(u) == 0 || len(v) == 0 {
		return nil, opErrorf(opOuter, ErrNilMatrix)
	}
	res, err := NewDense(len(u), len(v))
	if err != nil {
		return nil, opErrorf(opOuter, err)
	}
	for i := range u {
		for j := range v {
			res.data[i*len(v)+j] = u[i] * v[j]
		}
	}

	return res, nil
}
