// Package cmat provides small dense complex-matrix primitives for the
// n-port parameter algebra: construction, arithmetic, multiplication and
// inversion of square complex128 matrices.
//
// Matrices are small (port counts rarely exceed a few dozen), so the
// implementation favors clarity over blocking or SIMD. All operations
// allocate fresh result storage; inputs are never modified.
package cmat

import (
	"errors"
	"fmt"
	"math/cmplx"
)

// Errors returned by matrix operations.
var (
	ErrDimensionMismatch = errors.New("cmat: dimension mismatch")
	ErrNotSquare         = errors.New("cmat: matrix is not square")
	ErrSingular          = errors.New("cmat: matrix is singular")
	ErrRagged            = errors.New("cmat: rows have unequal lengths")
	ErrEmpty             = errors.New("cmat: matrix has no elements")
)

// Matrix is a dense row-major complex matrix.
//
// The zero value is an empty matrix. Operations treat Matrix as an
// immutable value and return new instances; Set exists for builders that
// own a freshly allocated matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// New returns a rows×cols zero matrix.
func New(rows, cols int) Matrix {
	return Matrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from a slice of equally sized rows.
func FromRows(rows [][]complex128) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, ErrEmpty
	}

	cols := len(rows[0])
	m := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("%w: row %d has %d elements, want %d",
				ErrRagged, i, len(row), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// IsSquare reports whether the matrix is square and non-empty.
func (m Matrix) IsSquare() bool { return m.rows > 0 && m.rows == m.cols }

// At returns the element at row i, column j (0-based).
func (m Matrix) At(i, j int) complex128 { return m.data[i*m.cols+j] }

// Set assigns the element at row i, column j (0-based).
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// ToRows returns the matrix contents as a freshly allocated slice of rows.
func (m Matrix) ToRows() [][]complex128 {
	out := make([][]complex128, m.rows)
	for i := range out {
		out[i] = make([]complex128, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// RowParts unpacks row i into separate real and imaginary slices.
// Both slices must have length Cols.
func (m Matrix) RowParts(i int, re, im []float64) {
	row := m.data[i*m.cols : (i+1)*m.cols]
	for j, v := range row {
		re[j] = real(v)
		im[j] = imag(v)
	}
}

// Add returns a + b.
func Add(a, b Matrix) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] + b.data[i]
	}

	return out, nil
}

// Sub returns a - b.
func Sub(a, b Matrix) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] - b.data[i]
	}

	return out, nil
}

// Scale returns s * a.
func Scale(s complex128, a Matrix) Matrix {
	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = s * a.data[i]
	}
	return out
}

// MulElem returns the elementwise (Hadamard) product a ∘ b.
func MulElem(a, b Matrix) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] * b.data[i]
	}

	return out, nil
}

// DivElem returns the elementwise quotient a / b.
func DivElem(a, b Matrix) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] / b.data[i]
	}

	return out, nil
}

// Mul returns the matrix product a · b.
func Mul(a, b Matrix) (Matrix, error) {
	if a.cols != b.rows {
		return Matrix{}, fmt.Errorf("%w: %dx%d · %dx%d",
			ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := New(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out.data[i*b.cols+j] += aik * b.data[k*b.cols+j]
			}
		}
	}

	return out, nil
}

// Transpose returns aᵀ.
func Transpose(a Matrix) Matrix {
	out := New(a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.data[j*a.rows+i] = a.data[i*a.cols+j]
		}
	}
	return out
}

// Inverse returns a⁻¹ computed by Gauss-Jordan elimination with partial
// pivoting. A numerically singular matrix yields [ErrSingular].
func Inverse(a Matrix) (Matrix, error) {
	if !a.IsSquare() {
		return Matrix{}, ErrNotSquare
	}

	n := a.rows
	work := a.Clone()
	out := Identity(n)

	for col := 0; col < n; col++ {
		// Select the pivot row by largest magnitude.
		pivot := col
		pivotAbs := cmplx.Abs(work.data[col*n+col])
		for r := col + 1; r < n; r++ {
			if abs := cmplx.Abs(work.data[r*n+col]); abs > pivotAbs {
				pivot, pivotAbs = r, abs
			}
		}
		if pivotAbs == 0 {
			return Matrix{}, fmt.Errorf("%w: pivot %d", ErrSingular, col)
		}
		if pivot != col {
			swapRows(&work, pivot, col)
			swapRows(&out, pivot, col)
		}

		inv := 1 / work.data[col*n+col]
		for j := 0; j < n; j++ {
			work.data[col*n+j] *= inv
			out.data[col*n+j] *= inv
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := work.data[r*n+col]
			if f == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				work.data[r*n+j] -= f * work.data[col*n+j]
				out.data[r*n+j] -= f * out.data[col*n+j]
			}
		}
	}

	return out, nil
}

// Equal reports whether a and b have identical shape and all element
// pairs agree within eps (absolute, per component).
func Equal(a, b Matrix, eps float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.data {
		if cmplx.Abs(a.data[i]-b.data[i]) > eps {
			return false
		}
	}
	return true
}

func swapRows(m *Matrix, a, b int) {
	ra := m.data[a*m.cols : (a+1)*m.cols]
	rb := m.data[b*m.cols : (b+1)*m.cols]
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}
