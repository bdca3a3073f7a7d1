// Command nportinfo prints swept network parameters of ideal reference
// two-ports.
//
// Usage:
//
//	nportinfo [flags]
//
// It synthesizes a resistive T-network with a capacitive shunt leg,
// sweeps it across a frequency band and prints S-parameter magnitudes
// and passivity per frequency point.
//
// Examples:
//
//	nportinfo
//	nportinfo -r1 25 -r2 25 -c 2e-12
//	nportinfo -z0 75 -start 1e9 -stop 10e9 -points 10
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-nport/nport"
)

func main() {
	r1 := flag.Float64("r1", 10, "first series resistance in ohm")
	r2 := flag.Float64("r2", 10, "second series resistance in ohm")
	c := flag.Float64("c", 1e-12, "shunt capacitance in farad")
	z0 := flag.Float64("z0", 50, "reference impedance in ohm")
	start := flag.Float64("start", 1e8, "start frequency in Hz")
	stop := flag.Float64("stop", 5e9, "stop frequency in Hz")
	points := flag.Int("points", 20, "number of frequency points")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nportinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints swept S-parameters of an RC T-network two-port.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *points < 2 || *start <= 0 || *stop <= *start {
		fmt.Fprintf(os.Stderr, "error: need points >= 2 and 0 < start < stop\n")
		os.Exit(1)
	}

	sweep, err := tNetworkSweep(*r1, *r2, *c, *start, *stop, *points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := sweep.Convert(nport.TypeS, nport.WithZ0(*z0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printSweep(s); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// tNetworkSweep builds the Z-parameter sweep of a T-network with series
// arms r1 and r2 and a capacitive shunt leg:
//
//	Z11 = r1 + Zc,  Z22 = r2 + Zc,  Z12 = Z21 = Zc,  Zc = 1/(jωC)
func tNetworkSweep(r1, r2, c, start, stop float64, points int) (*nport.Sweep, error) {
	freqs := make([]float64, points)
	mats := make([][][]complex128, points)
	step := (stop - start) / float64(points-1)

	for i := range freqs {
		f := start + float64(i)*step
		freqs[i] = f

		zc := complex(0, -1/(2*math.Pi*f*c))
		mats[i] = [][]complex128{
			{complex(r1, 0) + zc, zc},
			{zc, complex(r2, 0) + zc},
		}
	}

	return nport.NewSweep(freqs, mats, nport.TypeZ)
}

func printSweep(s *nport.Sweep) error {
	s11, err := s.MagnitudeDB(1, 1)
	if err != nil {
		return err
	}
	s21, err := s.MagnitudeDB(2, 1)
	if err != nil {
		return err
	}
	passive, err := s.IsPassive()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "freq [GHz]\t|S11| [dB]\t|S21| [dB]\n")
	for i, f := range s.Freqs() {
		fmt.Fprintf(w, "%.3f\t%.2f\t%.2f\n", f/1e9, s11[i], s21[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nz0 = %g ohm, passive: %v\n", s.Z0(), passive)
	return nil
}
