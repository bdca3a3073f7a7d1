package nport

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// BlockSweep is a frequency-indexed 2n-port in block form: the per-sample
// counterpart of [BlockMatrix], produced by [Sweep.Partition].
type BlockSweep struct {
	freqs  []float64
	blocks []blockSample
	typ    ParameterType
	z0     float64
}

type blockSample struct {
	b11, b12, b21, b22 cmat.Matrix
}

// Len returns the number of frequency samples.
func (s *BlockSweep) Len() int { return len(s.freqs) }

// BlockSize returns n, the dimension of each quadrant.
func (s *BlockSweep) BlockSize() int { return s.blocks[0].b11.Rows() }

// Type returns the parameter type.
func (s *BlockSweep) Type() ParameterType { return s.typ }

// Z0 returns the reference impedance, or 0 for types that carry none.
func (s *BlockSweep) Z0() float64 { return s.z0 }

// Freqs returns a copy of the frequency axis.
func (s *BlockSweep) Freqs() []float64 { return append([]float64(nil), s.freqs...) }

// Matrix materializes the block sample at index i.
func (s *BlockSweep) Matrix(i int) (*BlockMatrix, error) {
	if i < 0 || i >= len(s.blocks) {
		return nil, fmt.Errorf("nport: sample index %d out of range [0,%d)", i, len(s.blocks))
	}
	b := s.blocks[i]
	return newBlockMatrix(b.b11.Clone(), b.b12.Clone(), b.b21.Clone(), b.b22.Clone(), s.typ, s.z0), nil
}

// At returns the block sample interpolated at freq, component-wise linear
// per quadrant. Queries outside the sampled range fail with
// [ErrOutOfDomain].
func (s *BlockSweep) At(freq float64) (*BlockMatrix, error) {
	b, err := s.sampleAt(freq)
	if err != nil {
		return nil, err
	}
	return newBlockMatrix(b.b11, b.b12, b.b21, b.b22, s.typ, s.z0), nil
}

// AtFreqs returns a new block sweep resampled at the given strictly
// increasing frequencies, each within the sampled range.
func (s *BlockSweep) AtFreqs(freqs []float64) (*BlockSweep, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: no frequencies", ErrShapeMismatch)
	}

	blocks := make([]blockSample, len(freqs))
	for i, f := range freqs {
		if i > 0 && !(f > freqs[i-1]) {
			return nil, fmt.Errorf("%w: index %d", ErrFreqOrder, i)
		}
		b, err := s.sampleAt(f)
		if err != nil {
			return nil, err
		}
		blocks[i] = b
	}

	return &BlockSweep{
		freqs:  append([]float64(nil), freqs...),
		blocks: blocks,
		typ:    s.typ,
		z0:     s.z0,
	}, nil
}

func (s *BlockSweep) sampleAt(freq float64) (blockSample, error) {
	if freq < s.freqs[0] || freq > s.freqs[len(s.freqs)-1] {
		return blockSample{}, fmt.Errorf("%w: %g outside [%g,%g]",
			ErrOutOfDomain, freq, s.freqs[0], s.freqs[len(s.freqs)-1])
	}

	idx := sort.SearchFloat64s(s.freqs, freq)
	if idx < len(s.freqs) && s.freqs[idx] == freq {
		b := s.blocks[idx]
		return blockSample{
			b11: b.b11.Clone(), b12: b.b12.Clone(),
			b21: b.b21.Clone(), b22: b.b22.Clone(),
		}, nil
	}

	f0, f1 := s.freqs[idx-1], s.freqs[idx]
	t := complex((freq-f0)/(f1-f0), 0)

	lerp := func(lo, hi cmat.Matrix) (cmat.Matrix, error) {
		diff, err := cmat.Sub(hi, lo)
		if err != nil {
			return cmat.Matrix{}, err
		}
		return cmat.Add(lo, cmat.Scale(t, diff))
	}

	lo, hi := s.blocks[idx-1], s.blocks[idx]
	b11, err := lerp(lo.b11, hi.b11)
	if err != nil {
		return blockSample{}, err
	}
	b12, err := lerp(lo.b12, hi.b12)
	if err != nil {
		return blockSample{}, err
	}
	b21, err := lerp(lo.b21, hi.b21)
	if err != nil {
		return blockSample{}, err
	}
	b22, err := lerp(lo.b22, hi.b22)
	if err != nil {
		return blockSample{}, err
	}

	return blockSample{b11: b11, b12: b12, b21: b21, b22: b22}, nil
}

// Assemble reassembles every block sample into a plain 2n-port sweep.
func (s *BlockSweep) Assemble() (*Sweep, error) {
	mats := make([]cmat.Matrix, len(s.blocks))
	for i := range s.blocks {
		b := s.blocks[i]
		plain := newBlockMatrix(b.b11, b.b12, b.b21, b.b22, s.typ, s.z0).Assemble()
		mats[i] = plain.m
	}
	return newSweep(s.Freqs(), mats, s.typ, s.z0), nil
}

// Convert translates every block sample to another representation. See
// [BlockMatrix.Convert] for the supported targets.
func (s *BlockSweep) Convert(typ ParameterType, opts ...Option) (*BlockSweep, error) {
	blocks := make([]blockSample, len(s.blocks))
	var outType ParameterType
	var outZ0 float64
	for i := range s.blocks {
		b := s.blocks[i]
		view := newBlockMatrix(b.b11, b.b12, b.b21, b.b22, s.typ, s.z0)
		converted, err := view.Convert(typ, opts...)
		if err != nil {
			return nil, err
		}
		blocks[i] = blockSample{
			b11: converted.b11, b12: converted.b12,
			b21: converted.b21, b22: converted.b22,
		}
		outType, outZ0 = converted.typ, converted.z0
	}
	return &BlockSweep{freqs: s.Freqs(), blocks: blocks, typ: outType, z0: outZ0}, nil
}
