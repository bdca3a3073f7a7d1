package nport_test

import (
	"fmt"

	"github.com/cwbudde/algo-nport/nport"
)

func ExampleMatrix_Convert() {
	// A 100 Ω one-port in a 50 Ω system.
	z, _ := nport.NewMatrix([][]complex128{{100}}, nport.TypeZ)
	s, _ := z.Convert(nport.TypeS)
	gamma, _ := s.Parameter(1, 1)
	fmt.Printf("S11 = %.4f\n", real(gamma))
	// Output:
	// S11 = 0.3333
}

func ExampleMatrix_Recombine() {
	z, _ := nport.NewMatrix([][]complex128{
		{10, 2},
		{3, 20},
	}, nport.TypeZ)

	// Ports 1 and 2 become one differential port.
	diff, _ := z.Recombine([]nport.PortSpec{nport.DiffPair(1, 2)})
	v, _ := diff.Parameter(1, 1)
	fmt.Printf("Zdiff = %.0f\n", real(v))
	// Output:
	// Zdiff = 25
}

func ExampleSweep_At() {
	sweep, _ := nport.NewSweep(
		[]float64{1e9, 2e9},
		[][][]complex128{
			{{0.2}},
			{{0.4}},
		},
		nport.TypeS,
	)

	mid, _ := sweep.At(1.5e9)
	v, _ := mid.Parameter(1, 1)
	fmt.Printf("S11(1.5 GHz) = %.2f\n", real(v))
	// Output:
	// S11(1.5 GHz) = 0.30
}

func ExampleSweep_Combine() {
	a, _ := nport.NewSweep(
		[]float64{1, 2, 3, 4},
		[][][]complex128{{{1}}, {{2}}, {{3}}, {{4}}},
		nport.TypeS,
	)
	b, _ := nport.NewSweep(
		[]float64{2, 3, 4, 5},
		[][][]complex128{{{2}}, {{3}}, {{4}}, {{5}}},
		nport.TypeS,
	)

	sum, _ := a.Combine(nport.OpAdd, b)
	fmt.Println(sum.Freqs())
	// Output:
	// [2 3 4]
}

func ExampleDot() {
	a, _ := nport.NewSweep(
		[]float64{1, 2},
		[][][]complex128{
			{{1, 2}, {3, 4}},
			{{1, 2}, {3, 4}},
		},
		nport.TypeZ,
	)
	b, _ := nport.NewSweep(
		[]float64{1, 2},
		[][][]complex128{
			{{5, 6}, {7, 8}},
			{{5, 6}, {7, 8}},
		},
		nport.TypeZ,
	)

	out, _ := nport.Dot(a, b)
	prod := out.(*nport.Sweep)
	m, _ := prod.Matrix(0)
	v, _ := m.Parameter(1, 1)
	fmt.Printf("(A·B)11 = %.0f\n", real(v))
	// Output:
	// (A·B)11 = 19
}
