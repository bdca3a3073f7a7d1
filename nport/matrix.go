package nport

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// Matrix is a single-frequency n-port parameter matrix: a square complex
// matrix tagged with a [ParameterType] and, for scattering-style types, a
// reference impedance.
//
// A Matrix is immutable. Every transforming operation returns a new
// instance and leaves the receiver untouched.
type Matrix struct {
	m   cmat.Matrix
	typ ParameterType
	z0  float64
}

// NewMatrix builds an n-port parameter matrix from raw rows.
//
// The rows must form a square matrix. Scattering and scattering-transfer
// types default to a reference impedance of [DefaultZ0] unless [WithZ0]
// is given; all other types reject a reference impedance.
func NewMatrix(rows [][]complex128, typ ParameterType, opts ...Option) (*Matrix, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, int(typ))
	}

	z0, err := resolveZ0(typ, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	m, err := cmat.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("nport: %w", err)
	}
	if !m.IsSquare() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, m.Rows(), m.Cols())
	}

	return &Matrix{m: m, typ: typ, z0: z0}, nil
}

// resolveZ0 applies the construction impedance rule: S and T default to
// DefaultZ0, every other type must not carry one.
func resolveZ0(typ ParameterType, s settings) (float64, error) {
	if typ.NeedsImpedance() {
		if !s.hasZ0 {
			return DefaultZ0, nil
		}
		return s.z0, nil
	}
	if s.hasZ0 {
		return 0, fmt.Errorf("%w: %s", ErrImpedanceRule, typ)
	}
	return 0, nil
}

func newMatrix(m cmat.Matrix, typ ParameterType, z0 float64) *Matrix {
	return &Matrix{m: m, typ: typ, z0: z0}
}

// Ports returns the number of ports (the matrix dimension).
func (m *Matrix) Ports() int { return m.m.Rows() }

// Type returns the parameter type.
func (m *Matrix) Type() ParameterType { return m.typ }

// Z0 returns the reference impedance, or 0 for types that carry none.
func (m *Matrix) Z0() float64 { return m.z0 }

// Parameter returns the element for the given 1-based port pair.
func (m *Matrix) Parameter(port1, port2 int) (complex128, error) {
	n := m.Ports()
	if port1 < 1 || port1 > n || port2 < 1 || port2 > n {
		return 0, fmt.Errorf("%w: (%d,%d) of %d-port", ErrPortIndex, port1, port2, n)
	}
	return m.m.At(port1-1, port2-1), nil
}

// Raw returns a copy of the matrix contents as rows.
func (m *Matrix) Raw() [][]complex128 { return m.m.ToRows() }

// Submatrix keeps only the parameters of the given 1-based ports,
// discarding the others. Type and reference impedance are preserved.
func (m *Matrix) Submatrix(ports ...int) (*Matrix, error) {
	n := m.Ports()
	if len(ports) == 0 {
		return nil, fmt.Errorf("%w: no ports selected", ErrPortIndex)
	}

	out := cmat.New(len(ports), len(ports))
	for i, pi := range ports {
		if pi < 1 || pi > n {
			return nil, fmt.Errorf("%w: %d of %d-port", ErrPortIndex, pi, n)
		}
		for j, pj := range ports {
			if pj < 1 || pj > n {
				return nil, fmt.Errorf("%w: %d of %d-port", ErrPortIndex, pj, n)
			}
			out.Set(i, j, m.m.At(pi-1, pj-1))
		}
	}

	return newMatrix(out, m.typ, m.z0), nil
}

// Renormalize re-references scattering parameters to z0:
//
//	r  = (z0 - z0old) / (z0 + z0old)
//	S' = (S - rI) · (I - rS)⁻¹
//
// Only defined for S-parameters. Renormalizing to the current reference
// impedance returns an equal-valued matrix.
func (m *Matrix) Renormalize(z0 float64) (*Matrix, error) {
	if m.typ != TypeS {
		return nil, fmt.Errorf("%w: renormalize requires S-parameters, have %s",
			ErrUnsupportedConversion, m.typ)
	}
	if z0 == m.z0 {
		return newMatrix(m.m.Clone(), m.typ, m.z0), nil
	}

	n := m.Ports()
	idty := cmat.Identity(n)
	r := complex((z0-m.z0)/(z0+m.z0), 0)

	num, err := cmat.Sub(m.m, cmat.Scale(r, idty))
	if err != nil {
		return nil, err
	}
	den, err := cmat.Sub(idty, cmat.Scale(r, m.m))
	if err != nil {
		return nil, err
	}
	denInv, err := inverse(den)
	if err != nil {
		return nil, err
	}
	out, err := cmat.Mul(num, denInv)
	if err != nil {
		return nil, err
	}

	return newMatrix(out, TypeS, z0), nil
}

// PortSpec selects how [Matrix.Recombine] forms one output port: either a
// single original port kept as-is (optionally with reversed polarity) or a
// differential pair of original ports.
type PortSpec struct {
	pos, neg int
	pair     bool
}

// KeepPort keeps a single port. A negative port number reverses the
// port's polarity. Zero is invalid.
func KeepPort(port int) PortSpec {
	return PortSpec{pos: port}
}

// DiffPair combines two ports into one differential port, with neg acting
// as the ground reference of pos.
func DiffPair(pos, neg int) PortSpec {
	return PortSpec{pos: pos, neg: neg, pair: true}
}

// Recombine merges or reorients ports of an impedance matrix, producing a
// matrix with one port per entry of specs. With M the real selection
// matrix described by specs, the result is M·Z·Mᵀ.
//
// Only defined for Z-parameters.
func (m *Matrix) Recombine(specs []PortSpec) (*Matrix, error) {
	if m.typ != TypeZ {
		return nil, fmt.Errorf("%w: recombine requires Z-parameters, have %s",
			ErrUnsupportedConversion, m.typ)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no port specs", ErrPortIndex)
	}

	n := m.Ports()
	sel := cmat.New(len(specs), n)
	for i, spec := range specs {
		if spec.pair {
			if spec.pos < 1 || spec.pos > n || spec.neg < 1 || spec.neg > n {
				return nil, fmt.Errorf("%w: pair (%d,%d) of %d-port",
					ErrPortIndex, spec.pos, spec.neg, n)
			}
			sel.Set(i, spec.pos-1, 1)
			sel.Set(i, spec.neg-1, -1)
			continue
		}

		switch {
		case spec.pos == 0:
			return nil, fmt.Errorf("%w: port 0", ErrPortIndex)
		case spec.pos > 0:
			if spec.pos > n {
				return nil, fmt.Errorf("%w: %d of %d-port", ErrPortIndex, spec.pos, n)
			}
			sel.Set(i, spec.pos-1, 1)
		default:
			if -spec.pos > n {
				return nil, fmt.Errorf("%w: %d of %d-port", ErrPortIndex, spec.pos, n)
			}
			sel.Set(i, -spec.pos-1, -1)
		}
	}

	zm, err := cmat.Mul(sel, m.m)
	if err != nil {
		return nil, err
	}
	out, err := cmat.Mul(zm, cmat.Transpose(sel))
	if err != nil {
		return nil, err
	}

	return newMatrix(out, TypeZ, 0), nil
}

// IsPassive reports whether the network never amplifies: in scattering
// form, every row satisfies Σ|sᵢⱼ|² ≤ 1. Non-scattering matrices are
// converted to S-parameters first.
func (m *Matrix) IsPassive() (bool, error) {
	if m.typ != TypeS {
		s, err := m.Convert(TypeS)
		if err != nil {
			return false, err
		}
		return s.IsPassive()
	}

	n := m.Ports()
	re := make([]float64, n)
	im := make([]float64, n)
	power := make([]float64, n)
	for i := 0; i < n; i++ {
		m.m.RowParts(i, re, im)
		vecmath.Power(power, re, im)
		sum := 0.0
		for _, p := range power {
			sum += p
		}
		if sum > 1 {
			return false, nil
		}
	}

	return true, nil
}

// IsReciprocal reports whether the network is reciprocal.
//
// Not implemented yet; it always returns [ErrNotImplemented].
func (m *Matrix) IsReciprocal() (bool, error) {
	return false, fmt.Errorf("%w: reciprocity check", ErrNotImplemented)
}

// IsSymmetrical reports whether the network is symmetrical.
//
// Not implemented yet; it always returns [ErrNotImplemented].
func (m *Matrix) IsSymmetrical() (bool, error) {
	return false, fmt.Errorf("%w: symmetry check", ErrNotImplemented)
}

// inverse maps cmat singularity onto the package error space.
func inverse(m cmat.Matrix) (cmat.Matrix, error) {
	inv, err := cmat.Inverse(m)
	if err != nil {
		if errors.Is(err, cmat.ErrSingular) {
			return cmat.Matrix{}, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return cmat.Matrix{}, err
	}
	return inv, nil
}
