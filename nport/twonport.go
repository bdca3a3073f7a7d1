package nport

import (
	"fmt"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// BlockMatrix is the 2n-port block form of an even-port parameter matrix:
// four n×n quadrants relating the n input ports to the n output ports.
// It carries the same type/impedance bookkeeping as [Matrix] and supports
// the transmission-style algebra (ABCD conversion, block products) that a
// plain n-port matrix cannot express.
type BlockMatrix struct {
	b11, b12, b21, b22 cmat.Matrix
	typ                ParameterType
	z0                 float64
}

// Partition splits an even-port matrix into 2×2 block form.
//
// With both port sets nil, the first n ports become inputs and the last n
// outputs, in original order. Otherwise inPorts and outPorts must
// partition {1..2n} exactly (n ports each, no overlap, no gap); rows and
// columns are permuted to [inPorts..., outPorts...] order before the
// quadrant split.
func (m *Matrix) Partition(inPorts, outPorts []int) (*BlockMatrix, error) {
	ports := m.Ports()
	if ports%2 != 0 {
		return nil, fmt.Errorf("%w: %d ports", ErrOddPortCount, ports)
	}
	n := ports / 2

	var src cmat.Matrix
	switch {
	case inPorts == nil && outPorts == nil:
		src = m.m
	case inPorts == nil || outPorts == nil:
		return nil, fmt.Errorf("%w: both port sets must be given, or neither", ErrShapeMismatch)
	default:
		if len(inPorts) != n || len(outPorts) != n {
			return nil, fmt.Errorf("%w: port sets must have %d ports each, got %d and %d",
				ErrShapeMismatch, n, len(inPorts), len(outPorts))
		}

		order := make([]int, 0, ports)
		order = append(order, inPorts...)
		order = append(order, outPorts...)

		seen := make([]bool, ports)
		for _, p := range order {
			if p < 1 || p > ports {
				return nil, fmt.Errorf("%w: %d of %d-port", ErrPortIndex, p, ports)
			}
			if seen[p-1] {
				return nil, fmt.Errorf("%w: port %d listed twice", ErrPortIndex, p)
			}
			seen[p-1] = true
		}

		// Permute rows and columns into [in..., out...] order.
		src = cmat.New(ports, ports)
		for i, pi := range order {
			for j, pj := range order {
				src.Set(i, j, m.m.At(pi-1, pj-1))
			}
		}
	}

	quadrant := func(r0, c0 int) cmat.Matrix {
		q := cmat.New(n, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				q.Set(i, j, src.At(r0+i, c0+j))
			}
		}
		return q
	}

	return &BlockMatrix{
		b11: quadrant(0, 0),
		b12: quadrant(0, n),
		b21: quadrant(n, 0),
		b22: quadrant(n, n),
		typ: m.typ,
		z0:  m.z0,
	}, nil
}

func newBlockMatrix(b11, b12, b21, b22 cmat.Matrix, typ ParameterType, z0 float64) *BlockMatrix {
	return &BlockMatrix{b11: b11, b12: b12, b21: b21, b22: b22, typ: typ, z0: z0}
}

// Ports returns the total port count (2n).
func (b *BlockMatrix) Ports() int { return 2 * b.b11.Rows() }

// BlockSize returns n, the dimension of each quadrant.
func (b *BlockMatrix) BlockSize() int { return b.b11.Rows() }

// Type returns the parameter type.
func (b *BlockMatrix) Type() ParameterType { return b.typ }

// Z0 returns the reference impedance, or 0 for types that carry none.
func (b *BlockMatrix) Z0() float64 { return b.z0 }

// Blocks returns copies of the four quadrants in (11, 12, 21, 22) order.
func (b *BlockMatrix) Blocks() (b11, b12, b21, b22 [][]complex128) {
	return b.b11.ToRows(), b.b12.ToRows(), b.b21.ToRows(), b.b22.ToRows()
}

// Assemble reassembles the plain 2n-port matrix from the quadrants.
func (b *BlockMatrix) Assemble() *Matrix {
	n := b.BlockSize()
	out := cmat.New(2*n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, b.b11.At(i, j))
			out.Set(i, n+j, b.b12.At(i, j))
			out.Set(n+i, j, b.b21.At(i, j))
			out.Set(n+i, n+j, b.b22.At(i, j))
		}
	}
	return newMatrix(out, b.typ, b.z0)
}

// Dot returns the block-matrix product of b and other:
//
//	| A B |   | E F |   | A·E+B·G  A·F+B·H |
//	| C D | · | G H | = | C·E+D·G  C·F+D·H |
//
// The result keeps b's type and reference impedance.
func (b *BlockMatrix) Dot(other *BlockMatrix) (*BlockMatrix, error) {
	if b.BlockSize() != other.BlockSize() {
		return nil, fmt.Errorf("%w: block sizes %d and %d",
			ErrShapeMismatch, b.BlockSize(), other.BlockSize())
	}

	combine := func(x1, y1, x2, y2 cmat.Matrix) (cmat.Matrix, error) {
		p1, err := cmat.Mul(x1, y1)
		if err != nil {
			return cmat.Matrix{}, err
		}
		p2, err := cmat.Mul(x2, y2)
		if err != nil {
			return cmat.Matrix{}, err
		}
		return cmat.Add(p1, p2)
	}

	b11, err := combine(b.b11, other.b11, b.b12, other.b21)
	if err != nil {
		return nil, err
	}
	b12, err := combine(b.b11, other.b12, b.b12, other.b22)
	if err != nil {
		return nil, err
	}
	b21, err := combine(b.b21, other.b11, b.b22, other.b21)
	if err != nil {
		return nil, err
	}
	b22, err := combine(b.b21, other.b12, b.b22, other.b22)
	if err != nil {
		return nil, err
	}

	return newBlockMatrix(b11, b12, b21, b22, b.typ, b.z0), nil
}

// Convert translates the block matrix to another representation.
//
// Z, Y and S targets follow the plain conversion through [Assemble];
// transmission parameters use the block formulas
//
//	A = Z11·Z21⁻¹          B = A·Z22 - Z12
//	C = Z21⁻¹              D = Z21⁻¹·Z22
//
// and their inverse
//
//	Z11 = A·C⁻¹            Z12 = A·C⁻¹·D - B
//	Z21 = C⁻¹              Z22 = C⁻¹·D
//
// Scattering-transfer (T), hybrid and inverse-hybrid targets are not
// implemented.
func (b *BlockMatrix) Convert(typ ParameterType, opts ...Option) (*BlockMatrix, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, int(typ))
	}

	switch typ {
	case TypeT, TypeH, TypeG:
		return nil, fmt.Errorf("%w: block conversion to %s-parameters", ErrNotImplemented, typ)
	}

	if typ == b.typ && typ != TypeS {
		return b.clone(), nil
	}

	switch b.typ {
	case TypeZ, TypeY, TypeS:
		if typ == TypeABCD {
			z, err := b.toImpedanceBlocks(applyOptions(opts))
			if err != nil {
				return nil, err
			}
			return z.impedanceToTransmission()
		}
		// Plain-path conversion, then re-partition.
		converted, err := b.Assemble().Convert(typ, opts...)
		if err != nil {
			return nil, err
		}
		return converted.Partition(nil, nil)

	case TypeABCD:
		z, err := b.transmissionToImpedance()
		if err != nil {
			return nil, err
		}
		if typ == TypeZ {
			return z, nil
		}
		converted, err := z.Assemble().Convert(typ, opts...)
		if err != nil {
			return nil, err
		}
		return converted.Partition(nil, nil)

	default:
		return nil, fmt.Errorf("%w: block conversion from %s-parameters", ErrNotImplemented, b.typ)
	}
}

func (b *BlockMatrix) clone() *BlockMatrix {
	return newBlockMatrix(b.b11.Clone(), b.b12.Clone(), b.b21.Clone(), b.b22.Clone(), b.typ, b.z0)
}

// toImpedanceBlocks converts the block matrix to Z form, rejecting an
// impedance option on the way (Z carries none).
func (b *BlockMatrix) toImpedanceBlocks(s settings) (*BlockMatrix, error) {
	if s.hasZ0 {
		return nil, fmt.Errorf("%w: %s", ErrImpedanceRule, TypeABCD)
	}
	if b.typ == TypeZ {
		return b, nil
	}
	converted, err := b.Assemble().Convert(TypeZ)
	if err != nil {
		return nil, err
	}
	return converted.Partition(nil, nil)
}

func (b *BlockMatrix) impedanceToTransmission() (*BlockMatrix, error) {
	z21Inv, err := inverse(b.b21)
	if err != nil {
		return nil, err
	}

	a, err := cmat.Mul(b.b11, z21Inv)
	if err != nil {
		return nil, err
	}
	az22, err := cmat.Mul(a, b.b22)
	if err != nil {
		return nil, err
	}
	bb, err := cmat.Sub(az22, b.b12)
	if err != nil {
		return nil, err
	}
	d, err := cmat.Mul(z21Inv, b.b22)
	if err != nil {
		return nil, err
	}

	return newBlockMatrix(a, bb, z21Inv, d, TypeABCD, 0), nil
}

func (b *BlockMatrix) transmissionToImpedance() (*BlockMatrix, error) {
	cInv, err := inverse(b.b21)
	if err != nil {
		return nil, err
	}

	z11, err := cmat.Mul(b.b11, cInv)
	if err != nil {
		return nil, err
	}
	z22, err := cmat.Mul(cInv, b.b22)
	if err != nil {
		return nil, err
	}
	z11d, err := cmat.Mul(z11, b.b22)
	if err != nil {
		return nil, err
	}
	z12, err := cmat.Sub(z11d, b.b12)
	if err != nil {
		return nil, err
	}

	return newBlockMatrix(z11, z12, cInv, z22, TypeZ, 0), nil
}
