// Package nport models linear multi-port electrical networks and the
// algebra of their parameter matrices across swept frequencies.
//
// A device with n ports is described at a single frequency by an n×n
// complex [Matrix] tagged with a [ParameterType] (impedance, admittance,
// scattering, ...) and, for scattering-style types, a reference impedance.
// A [Sweep] pairs a strictly increasing frequency axis with one such
// matrix per frequency point.
//
// Core operations:
//
//   - [Matrix.Convert]:     exact conversion between Z, Y and S parameters
//   - [Matrix.Renormalize]: re-reference S-parameters to a different impedance
//   - [Matrix.Recombine]:   merge ports into differential pairs or flip polarity
//   - [Matrix.Partition]:   split an even-port matrix into 2×2 block form
//   - [Sweep.At]:           linear interpolation along the frequency axis
//   - [Sweep.Combine]:      frequency-aligned elementwise arithmetic
//   - [Dot]:                frequency-aligned matrix products, plain or block
//
// All values are immutable: every transforming operation returns a new
// instance, so independent instances are safe to use from multiple
// goroutines. The package performs no I/O; loading device data (for
// example Touchstone files) and plotting belong to callers.
package nport
