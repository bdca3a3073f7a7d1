package nport

import (
	"fmt"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// Dot generalizes matrix multiplication across frequency sweeps. The
// accepted operand combinations are:
//
//   - *Sweep · *Sweep:           [DotSweeps]
//   - *Sweep · [][]complex128:   [DotConst]
//   - *BlockSweep · *BlockSweep: [DotBlocks]
//
// Any other combination, in particular mixing plain and block sweeps,
// fails with [ErrNotImplemented].
func Dot(a, b any) (any, error) {
	switch left := a.(type) {
	case *Sweep:
		switch right := b.(type) {
		case *Sweep:
			return DotSweeps(left, right)
		case [][]complex128:
			return DotConst(left, right)
		}
	case *BlockSweep:
		if right, ok := b.(*BlockSweep); ok {
			return DotBlocks(left, right)
		}
	}
	return nil, fmt.Errorf("%w: dot of %T and %T", ErrNotImplemented, a, b)
}

// DotSweeps multiplies two sweeps sample-by-sample after aligning their
// frequency axes.
//
// The result covers the sorted union of both axes restricted to the
// overlapping interval, inclusive at both ends (the same alignment as
// [Sweep.Combine]), with both operands interpolated onto that grid. The
// result carries the first operand's type and reference impedance.
func DotSweeps(a, b *Sweep) (*Sweep, error) {
	if a.Ports() != b.Ports() {
		return nil, fmt.Errorf("%w: %d and %d ports", ErrShapeMismatch, a.Ports(), b.Ports())
	}

	freqs, err := alignFreqs(a.freqs, b.freqs)
	if err != nil {
		return nil, err
	}

	left, err := a.AtFreqs(freqs)
	if err != nil {
		return nil, err
	}
	right, err := b.AtFreqs(freqs)
	if err != nil {
		return nil, err
	}

	mats := make([]cmat.Matrix, len(freqs))
	for i := range mats {
		mats[i], err = cmat.Mul(left.mats[i], right.mats[i])
		if err != nil {
			return nil, err
		}
	}

	return newSweep(freqs, mats, a.typ, a.z0), nil
}

// DotConst right-multiplies every sample of a sweep by a constant matrix.
// No frequency alignment takes place; the sweep's frequencies, type and
// impedance are preserved.
func DotConst(a *Sweep, m [][]complex128) (*Sweep, error) {
	cm, err := cmat.FromRows(m)
	if err != nil {
		return nil, fmt.Errorf("nport: %w", err)
	}
	if cm.Rows() != a.Ports() {
		return nil, fmt.Errorf("%w: %d-port sweep and %dx%d matrix",
			ErrShapeMismatch, a.Ports(), cm.Rows(), cm.Cols())
	}

	mats := make([]cmat.Matrix, len(a.mats))
	for i := range a.mats {
		mats[i], err = cmat.Mul(a.mats[i], cm)
		if err != nil {
			return nil, err
		}
	}

	return newSweep(a.Freqs(), mats, a.typ, a.z0), nil
}

// DotBlocks multiplies two block sweeps sample-by-sample after aligning
// their frequency axes, combining each frequency's pair of block matrices
// with [BlockMatrix.Dot]. The result carries the first operand's type and
// reference impedance.
func DotBlocks(a, b *BlockSweep) (*BlockSweep, error) {
	if a.BlockSize() != b.BlockSize() {
		return nil, fmt.Errorf("%w: block sizes %d and %d",
			ErrShapeMismatch, a.BlockSize(), b.BlockSize())
	}

	freqs, err := alignFreqs(a.freqs, b.freqs)
	if err != nil {
		return nil, err
	}

	left, err := a.AtFreqs(freqs)
	if err != nil {
		return nil, err
	}
	right, err := b.AtFreqs(freqs)
	if err != nil {
		return nil, err
	}

	blocks := make([]blockSample, len(freqs))
	for i := range blocks {
		lb, rb := left.blocks[i], right.blocks[i]
		lm := newBlockMatrix(lb.b11, lb.b12, lb.b21, lb.b22, a.typ, a.z0)
		rm := newBlockMatrix(rb.b11, rb.b12, rb.b21, rb.b22, b.typ, b.z0)
		prod, err := lm.Dot(rm)
		if err != nil {
			return nil, err
		}
		blocks[i] = blockSample{b11: prod.b11, b12: prod.b12, b21: prod.b21, b22: prod.b22}
	}

	return &BlockSweep{freqs: freqs, blocks: blocks, typ: a.typ, z0: a.z0}, nil
}
