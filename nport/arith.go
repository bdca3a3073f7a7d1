package nport

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// Op tags an elementwise arithmetic operator for [Sweep.Combine].
type Op int

// Supported elementwise operators.
const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

func (op Op) apply(a, b cmat.Matrix) (cmat.Matrix, error) {
	switch op {
	case OpAdd:
		return cmat.Add(a, b)
	case OpSub:
		return cmat.Sub(a, b)
	case OpMul:
		return cmat.MulElem(a, b)
	case OpDiv:
		return cmat.DivElem(a, b)
	}
	return cmat.Matrix{}, fmt.Errorf("nport: unknown operator %d", int(op))
}

// Combine applies an elementwise operator to two frequency-aligned
// sweeps.
//
// Both operands must share the parameter type, reference impedance and
// port count; the checks run before any computation. The result covers
// the sorted union of both frequency axes restricted to the overlapping
// interval [max(starts), min(ends)], with both operands interpolated onto
// that grid. An empty overlap fails with [ErrNoOverlap].
func (s *Sweep) Combine(op Op, other *Sweep) (*Sweep, error) {
	if s.typ != other.typ {
		return nil, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, s.typ, other.typ)
	}
	if s.z0 != other.z0 {
		return nil, fmt.Errorf("%w: %g and %g", ErrImpedanceMismatch, s.z0, other.z0)
	}
	if s.Ports() != other.Ports() {
		return nil, fmt.Errorf("%w: %d and %d ports", ErrShapeMismatch, s.Ports(), other.Ports())
	}

	freqs, err := alignFreqs(s.freqs, other.freqs)
	if err != nil {
		return nil, err
	}

	left, err := s.AtFreqs(freqs)
	if err != nil {
		return nil, err
	}
	right, err := other.AtFreqs(freqs)
	if err != nil {
		return nil, err
	}

	mats := make([]cmat.Matrix, len(freqs))
	for i := range mats {
		mats[i], err = op.apply(left.mats[i], right.mats[i])
		if err != nil {
			return nil, err
		}
	}

	return newSweep(freqs, mats, s.typ, s.z0), nil
}

// CombineConst applies an elementwise operator between every sample and a
// constant, preserving the sweep's frequencies, type and impedance. The
// constant is the right-hand operand.
func (s *Sweep) CombineConst(op Op, c complex128) (*Sweep, error) {
	ports := s.Ports()
	cm := cmat.New(ports, ports)
	for i := 0; i < ports; i++ {
		for j := 0; j < ports; j++ {
			cm.Set(i, j, c)
		}
	}

	mats := make([]cmat.Matrix, len(s.mats))
	for i := range s.mats {
		out, err := op.apply(s.mats[i], cm)
		if err != nil {
			return nil, err
		}
		mats[i] = out
	}

	return newSweep(s.Freqs(), mats, s.typ, s.z0), nil
}

// alignFreqs returns the sorted union of two strictly increasing axes
// restricted to their overlapping interval, inclusive at both ends.
func alignFreqs(a, b []float64) ([]float64, error) {
	lo := math.Max(a[0], b[0])
	hi := math.Min(a[len(a)-1], b[len(b)-1])
	if lo > hi {
		return nil, fmt.Errorf("%w: [%g,%g] and [%g,%g]",
			ErrNoOverlap, a[0], a[len(a)-1], b[0], b[len(b)-1])
	}

	union := make([]float64, 0, len(a)+len(b))
	union = append(union, a...)
	union = append(union, b...)
	sort.Float64s(union)

	out := union[:0]
	for _, f := range union {
		if f < lo || f > hi {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == f {
			continue
		}
		out = append(out, f)
	}

	return append([]float64(nil), out...), nil
}
