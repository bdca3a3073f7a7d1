package nport

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// Sweep is a frequency-indexed n-port: a strictly increasing frequency
// axis paired with one parameter matrix per frequency point, all sharing
// one [ParameterType], one reference impedance and one port count.
//
// A Sweep is immutable; transforming operations return new instances.
type Sweep struct {
	freqs []float64
	mats  []cmat.Matrix
	typ   ParameterType
	z0    float64
}

// NewSweep builds a frequency sweep from parallel frequency and matrix
// slices. The slices must have equal non-zero length, every matrix must
// be square with the same dimension, and frequencies must be strictly
// increasing. The impedance rule of [NewMatrix] applies.
func NewSweep(freqs []float64, matrices [][][]complex128, typ ParameterType, opts ...Option) (*Sweep, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, int(typ))
	}

	z0, err := resolveZ0(typ, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	if len(freqs) == 0 || len(freqs) != len(matrices) {
		return nil, fmt.Errorf("%w: %d frequencies, %d matrices",
			ErrShapeMismatch, len(freqs), len(matrices))
	}
	for i := 1; i < len(freqs); i++ {
		if !(freqs[i] > freqs[i-1]) {
			return nil, fmt.Errorf("%w: index %d", ErrFreqOrder, i)
		}
	}

	mats := make([]cmat.Matrix, len(matrices))
	for i, rows := range matrices {
		m, err := cmat.FromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("nport: sample %d: %w", i, err)
		}
		if !m.IsSquare() {
			return nil, fmt.Errorf("%w: sample %d is %dx%d", ErrNotSquare, i, m.Rows(), m.Cols())
		}
		if i > 0 && m.Rows() != mats[0].Rows() {
			return nil, fmt.Errorf("%w: sample %d has %d ports, want %d",
				ErrShapeMismatch, i, m.Rows(), mats[0].Rows())
		}
		mats[i] = m
	}

	return &Sweep{freqs: append([]float64(nil), freqs...), mats: mats, typ: typ, z0: z0}, nil
}

func newSweep(freqs []float64, mats []cmat.Matrix, typ ParameterType, z0 float64) *Sweep {
	return &Sweep{freqs: freqs, mats: mats, typ: typ, z0: z0}
}

// Len returns the number of frequency samples.
func (s *Sweep) Len() int { return len(s.freqs) }

// Ports returns the number of ports shared by all samples.
func (s *Sweep) Ports() int { return s.mats[0].Rows() }

// Type returns the parameter type.
func (s *Sweep) Type() ParameterType { return s.typ }

// Z0 returns the reference impedance, or 0 for types that carry none.
func (s *Sweep) Z0() float64 { return s.z0 }

// Freqs returns a copy of the frequency axis.
func (s *Sweep) Freqs() []float64 { return append([]float64(nil), s.freqs...) }

// Matrix materializes the sample at index i as a single-frequency matrix.
func (s *Sweep) Matrix(i int) (*Matrix, error) {
	if i < 0 || i >= len(s.mats) {
		return nil, fmt.Errorf("nport: sample index %d out of range [0,%d)", i, len(s.mats))
	}
	return newMatrix(s.mats[i].Clone(), s.typ, s.z0), nil
}

// Add returns a sweep with the sample inserted at its sorted position.
// A matrix of a different type or reference impedance is converted to the
// sweep's representation first. Duplicate frequencies are rejected.
func (s *Sweep) Add(freq float64, m *Matrix) (*Sweep, error) {
	if m.Ports() != s.Ports() {
		return nil, fmt.Errorf("%w: %d ports, sweep has %d", ErrShapeMismatch, m.Ports(), s.Ports())
	}

	if m.typ != s.typ || m.z0 != s.z0 {
		var err error
		if s.typ.NeedsImpedance() {
			m, err = m.Convert(s.typ, WithZ0(s.z0))
		} else {
			m, err = m.Convert(s.typ)
		}
		if err != nil {
			return nil, err
		}
	}

	idx := sort.SearchFloat64s(s.freqs, freq)
	if idx < len(s.freqs) && s.freqs[idx] == freq {
		return nil, fmt.Errorf("%w: %g", ErrDuplicateFreq, freq)
	}

	freqs := make([]float64, 0, len(s.freqs)+1)
	freqs = append(freqs, s.freqs[:idx]...)
	freqs = append(freqs, freq)
	freqs = append(freqs, s.freqs[idx:]...)

	mats := make([]cmat.Matrix, 0, len(s.mats)+1)
	mats = append(mats, s.mats[:idx]...)
	mats = append(mats, m.m.Clone())
	mats = append(mats, s.mats[idx:]...)

	return newSweep(freqs, mats, s.typ, s.z0), nil
}

// At returns the sample interpolated at freq, component-wise linear along
// the frequency axis. A query at an existing sample frequency returns
// that sample unchanged. Queries outside the sampled range fail with
// [ErrOutOfDomain]; extrapolation is not supported.
func (s *Sweep) At(freq float64) (*Matrix, error) {
	m, err := s.sampleAt(freq)
	if err != nil {
		return nil, err
	}
	return newMatrix(m, s.typ, s.z0), nil
}

// AtFreqs returns a new sweep resampled at the given strictly increasing
// frequencies, each within the sampled range.
func (s *Sweep) AtFreqs(freqs []float64) (*Sweep, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: no frequencies", ErrShapeMismatch)
	}

	mats := make([]cmat.Matrix, len(freqs))
	for i, f := range freqs {
		if i > 0 && !(f > freqs[i-1]) {
			return nil, fmt.Errorf("%w: index %d", ErrFreqOrder, i)
		}
		m, err := s.sampleAt(f)
		if err != nil {
			return nil, err
		}
		mats[i] = m
	}

	return newSweep(append([]float64(nil), freqs...), mats, s.typ, s.z0), nil
}

func (s *Sweep) sampleAt(freq float64) (cmat.Matrix, error) {
	if freq < s.freqs[0] || freq > s.freqs[len(s.freqs)-1] {
		return cmat.Matrix{}, fmt.Errorf("%w: %g outside [%g,%g]",
			ErrOutOfDomain, freq, s.freqs[0], s.freqs[len(s.freqs)-1])
	}

	idx := sort.SearchFloat64s(s.freqs, freq)
	if idx < len(s.freqs) && s.freqs[idx] == freq {
		return s.mats[idx].Clone(), nil
	}

	f0, f1 := s.freqs[idx-1], s.freqs[idx]
	t := complex((freq-f0)/(f1-f0), 0)

	lo, hi := s.mats[idx-1], s.mats[idx]
	diff, err := cmat.Sub(hi, lo)
	if err != nil {
		return cmat.Matrix{}, err
	}
	return cmat.Add(lo, cmat.Scale(t, diff))
}

// Average applies a centered moving average with window n along the
// frequency axis. Windows extending past either end replicate the edge
// sample. Frequencies, type and impedance are unchanged.
func (s *Sweep) Average(n int) (*Sweep, error) {
	if n < 1 {
		return nil, fmt.Errorf("nport: average window must be >= 1: %d", n)
	}

	ports := s.Ports()
	inv := complex(1/float64(n), 0)
	mats := make([]cmat.Matrix, len(s.mats))
	for i := range s.mats {
		acc := cmat.New(ports, ports)
		for j := -n / 2; j < n-n/2; j++ {
			idx := i + j
			if idx < 0 {
				idx = 0
			} else if idx >= len(s.mats) {
				idx = len(s.mats) - 1
			}
			sum, err := cmat.Add(acc, s.mats[idx])
			if err != nil {
				return nil, err
			}
			acc = sum
		}
		mats[i] = cmat.Scale(inv, acc)
	}

	return newSweep(s.Freqs(), mats, s.typ, s.z0), nil
}

// Convert translates every sample to another parameter representation.
// See [Matrix.Convert] for the supported targets and formulas.
func (s *Sweep) Convert(typ ParameterType, opts ...Option) (*Sweep, error) {
	mats := make([]cmat.Matrix, len(s.mats))
	var outType ParameterType
	var outZ0 float64
	for i := range s.mats {
		converted, err := s.matrixView(i).Convert(typ, opts...)
		if err != nil {
			return nil, err
		}
		mats[i] = converted.m
		outType, outZ0 = converted.typ, converted.z0
	}
	return newSweep(s.Freqs(), mats, outType, outZ0), nil
}

// Renormalize re-references every scattering sample to z0.
func (s *Sweep) Renormalize(z0 float64) (*Sweep, error) {
	if s.typ != TypeS {
		return nil, fmt.Errorf("%w: renormalize requires S-parameters, have %s",
			ErrUnsupportedConversion, s.typ)
	}
	if z0 == s.z0 {
		return s, nil
	}

	mats := make([]cmat.Matrix, len(s.mats))
	for i := range s.mats {
		renorm, err := s.matrixView(i).Renormalize(z0)
		if err != nil {
			return nil, err
		}
		mats[i] = renorm.m
	}
	return newSweep(s.Freqs(), mats, TypeS, z0), nil
}

// Recombine merges or reorients ports of every sample. Non-impedance
// sweeps are converted to Z-parameters, recombined, and converted back to
// the original representation.
func (s *Sweep) Recombine(specs []PortSpec) (*Sweep, error) {
	if s.typ == TypeZ {
		mats := make([]cmat.Matrix, len(s.mats))
		for i := range s.mats {
			recombined, err := s.matrixView(i).Recombine(specs)
			if err != nil {
				return nil, err
			}
			mats[i] = recombined.m
		}
		return newSweep(s.Freqs(), mats, TypeZ, 0), nil
	}

	z, err := s.Convert(TypeZ)
	if err != nil {
		return nil, err
	}
	recombined, err := z.Recombine(specs)
	if err != nil {
		return nil, err
	}
	if s.typ.NeedsImpedance() {
		return recombined.Convert(s.typ, WithZ0(s.z0))
	}
	return recombined.Convert(s.typ)
}

// Submatrix keeps only the parameters of the given 1-based ports in every
// sample.
func (s *Sweep) Submatrix(ports ...int) (*Sweep, error) {
	mats := make([]cmat.Matrix, len(s.mats))
	for i := range s.mats {
		sub, err := s.matrixView(i).Submatrix(ports...)
		if err != nil {
			return nil, err
		}
		mats[i] = sub.m
	}
	return newSweep(s.Freqs(), mats, s.typ, s.z0), nil
}

// Invert replaces every sample with its matrix inverse.
//
// The resulting representation keeps the original type tag even though
// inversion changes the parameter domain (a Z sweep's inverse holds
// admittances). Callers that know the proper domain should follow up
// with [Sweep.Retag].
func (s *Sweep) Invert() (*Sweep, error) {
	mats := make([]cmat.Matrix, len(s.mats))
	for i := range s.mats {
		inv, err := inverse(s.mats[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		mats[i] = inv
	}
	return newSweep(s.Freqs(), mats, s.typ, s.z0), nil
}

// Retag relabels the sweep with a different parameter type without
// touching the matrix values. The impedance rule of [NewMatrix] applies.
func (s *Sweep) Retag(typ ParameterType, opts ...Option) (*Sweep, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, int(typ))
	}
	z0, err := resolveZ0(typ, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return newSweep(s.Freqs(), s.mats, typ, z0), nil
}

// Partition splits every sample into 2n-port block form. See
// [Matrix.Partition] for the port-set rules.
func (s *Sweep) Partition(inPorts, outPorts []int) (*BlockSweep, error) {
	blocks := make([]blockSample, len(s.mats))
	for i := range s.mats {
		bm, err := s.matrixView(i).Partition(inPorts, outPorts)
		if err != nil {
			return nil, err
		}
		blocks[i] = blockSample{b11: bm.b11, b12: bm.b12, b21: bm.b21, b22: bm.b22}
	}
	return &BlockSweep{freqs: s.Freqs(), blocks: blocks, typ: s.typ, z0: s.z0}, nil
}

// IsPassive reports whether every sample is passive. See
// [Matrix.IsPassive].
func (s *Sweep) IsPassive() (bool, error) {
	for i := range s.mats {
		passive, err := s.matrixView(i).IsPassive()
		if err != nil {
			return false, err
		}
		if !passive {
			return false, nil
		}
	}
	return true, nil
}

// Parameter returns one matrix element across frequency for the given
// 1-based port pair.
func (s *Sweep) Parameter(port1, port2 int) ([]complex128, error) {
	n := s.Ports()
	if port1 < 1 || port1 > n || port2 < 1 || port2 > n {
		return nil, fmt.Errorf("%w: (%d,%d) of %d-port", ErrPortIndex, port1, port2, n)
	}

	out := make([]complex128, len(s.mats))
	for i := range s.mats {
		out[i] = s.mats[i].At(port1-1, port2-1)
	}
	return out, nil
}

// Element returns the 1-port sub-sweep holding only the element of the
// given 1-based port pair.
func (s *Sweep) Element(port1, port2 int) (*Sweep, error) {
	vals, err := s.Parameter(port1, port2)
	if err != nil {
		return nil, err
	}

	mats := make([]cmat.Matrix, len(vals))
	for i, v := range vals {
		m := cmat.New(1, 1)
		m.Set(0, 0, v)
		mats[i] = m
	}
	return newSweep(s.Freqs(), mats, s.typ, s.z0), nil
}

// MagnitudeDB returns |x| in dB (20·log10 convention) across frequency
// for the given 1-based port pair. Zero magnitude maps to -Inf.
func (s *Sweep) MagnitudeDB(port1, port2 int) ([]float64, error) {
	vals, err := s.Parameter(port1, port2)
	if err != nil {
		return nil, err
	}

	re := make([]float64, len(vals))
	im := make([]float64, len(vals))
	for i, v := range vals {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, len(vals))
	vecmath.Magnitude(mag, re, im)

	for i, v := range mag {
		if v == 0 {
			mag[i] = math.Inf(-1)
			continue
		}
		mag[i] = 20 * math.Log10(v)
	}
	return mag, nil
}

// matrixView wraps sample i without copying. Callers must not mutate.
func (s *Sweep) matrixView(i int) *Matrix {
	return &Matrix{m: s.mats[i], typ: s.typ, z0: s.z0}
}
