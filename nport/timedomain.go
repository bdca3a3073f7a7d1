package nport

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ImpulseResponse computes the band-limited time-domain response of one
// swept parameter, the frequency-domain cousin of time-domain
// reflectometry.
//
// The element (port1, port2) is resampled onto n uniformly spaced
// frequencies spanning the sweep (so n must be at least 2 and the grid
// never leaves the sampled range), extended to a hermitian-symmetric
// spectrum, and transformed with an inverse FFT. The sweep's band is
// treated as a baseband spectrum: a flat unit parameter yields a pulse
// at t = 0.
//
// It returns the real time series and its sample spacing in seconds
// (for frequencies in Hz).
func (s *Sweep) ImpulseResponse(port1, port2 int, n int) ([]float64, float64, error) {
	if n < 2 {
		return nil, 0, fmt.Errorf("nport: impulse response needs at least 2 grid points: %d", n)
	}
	if s.Len() < 2 {
		return nil, 0, fmt.Errorf("%w: sweep has %d samples, need at least 2",
			ErrShapeMismatch, s.Len())
	}

	f0 := s.freqs[0]
	df := (s.freqs[len(s.freqs)-1] - f0) / float64(n-1)

	vals := make([]complex128, n)
	for k := 0; k < n; k++ {
		f := f0 + float64(k)*df
		if k == n-1 {
			// Guard against rounding past the top sample.
			f = s.freqs[len(s.freqs)-1]
		}
		m, err := s.At(f)
		if err != nil {
			return nil, 0, err
		}
		vals[k], err = m.Parameter(port1, port2)
		if err != nil {
			return nil, 0, err
		}
	}

	fftSize := nextPowerOf2(2 * n)
	spec := make([]complex128, fftSize)
	copy(spec, vals)
	for k := 1; k < n; k++ {
		spec[fftSize-k] = cmplx.Conj(vals[k])
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("nport: failed to create FFT plan: %w", err)
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, spec); err != nil {
		return nil, 0, fmt.Errorf("nport: inverse FFT failed: %w", err)
	}

	out := make([]float64, fftSize)
	for i, v := range timeDomain {
		out[i] = real(v)
	}

	dt := 1 / (float64(fftSize) * df)
	return out, dt, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
