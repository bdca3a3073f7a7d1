package nport

import (
	"fmt"

	"github.com/cwbudde/algo-nport/internal/cmat"
)

// Convert translates the matrix to another parameter representation.
//
// Supported targets are Z, Y and S. Transmission (ABCD) and
// scattering-transfer (T) parameters require the 2n-port block form;
// convert through [Matrix.Partition] and [BlockMatrix.Convert] instead.
//
// For a scattering target, [WithZ0] selects the target reference
// impedance. When omitted it defaults to the source impedance if the
// source is S- or T-typed, otherwise to [DefaultZ0]. Non-scattering
// targets reject a reference impedance.
//
// Conversion formulas (I the identity, z0 the scattering reference):
//
//	S→Z: Z = (2·(I-S)⁻¹ - I)·z0
//	S→Y: Y = (2·(I+S)⁻¹ - I)/z0
//	Z→S: S = I - 2·(I + Z/z0)⁻¹
//	Y→S: S = 2·(I + Y·z0)⁻¹ - I
//	Z→Y, Y→Z: plain matrix inversion
//
// Conversion to the current type returns an equal-valued matrix;
// converting S-parameters to S with a different impedance delegates to
// [Matrix.Renormalize]. Singular intermediate matrices surface as
// [ErrSingular].
func (m *Matrix) Convert(typ ParameterType, opts ...Option) (*Matrix, error) {
	z0, err := m.convertZ0(typ, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeABCD, TypeT:
		return nil, fmt.Errorf("%w: cannot convert an n-port matrix to %s-parameters, "+
			"partition into 2n-port block form first", ErrUnsupportedConversion, typ)
	case TypeZ, TypeY, TypeS:
	default:
		if !typ.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidType, int(typ))
		}
		return nil, fmt.Errorf("%w: %s-parameters", ErrUnsupportedConversion, typ)
	}

	idty := cmat.Identity(m.Ports())

	var out cmat.Matrix
	switch m.typ {
	case TypeS:
		switch typ {
		case TypeZ:
			// Z = (2·(I-S)⁻¹ - I)·z0
			diff, err := cmat.Sub(idty, m.m)
			if err != nil {
				return nil, err
			}
			inv, err := inverse(diff)
			if err != nil {
				return nil, err
			}
			t, err := cmat.Sub(cmat.Scale(2, inv), idty)
			if err != nil {
				return nil, err
			}
			out = cmat.Scale(complex(m.z0, 0), t)
		case TypeY:
			// Y = (2·(I+S)⁻¹ - I)/z0
			sum, err := cmat.Add(idty, m.m)
			if err != nil {
				return nil, err
			}
			inv, err := inverse(sum)
			if err != nil {
				return nil, err
			}
			t, err := cmat.Sub(cmat.Scale(2, inv), idty)
			if err != nil {
				return nil, err
			}
			out = cmat.Scale(complex(1/m.z0, 0), t)
		case TypeS:
			if z0 == m.z0 {
				return newMatrix(m.m.Clone(), TypeS, z0), nil
			}
			return m.Renormalize(z0)
		}

	case TypeZ:
		switch typ {
		case TypeS:
			// S = I - 2·(I + Z/z0)⁻¹
			sum, err := cmat.Add(idty, cmat.Scale(complex(1/z0, 0), m.m))
			if err != nil {
				return nil, err
			}
			inv, err := inverse(sum)
			if err != nil {
				return nil, err
			}
			out, err = cmat.Sub(idty, cmat.Scale(2, inv))
			if err != nil {
				return nil, err
			}
		case TypeY:
			out, err = inverse(m.m)
			if err != nil {
				return nil, err
			}
		case TypeZ:
			out = m.m.Clone()
		}

	case TypeY:
		switch typ {
		case TypeS:
			// S = 2·(I + Y·z0)⁻¹ - I
			sum, err := cmat.Add(idty, cmat.Scale(complex(z0, 0), m.m))
			if err != nil {
				return nil, err
			}
			inv, err := inverse(sum)
			if err != nil {
				return nil, err
			}
			out, err = cmat.Sub(cmat.Scale(2, inv), idty)
			if err != nil {
				return nil, err
			}
		case TypeZ:
			out, err = inverse(m.m)
			if err != nil {
				return nil, err
			}
		case TypeY:
			out = m.m.Clone()
		}

	default:
		return nil, fmt.Errorf("%w: conversion from %s-parameters", ErrUnsupportedConversion, m.typ)
	}

	return newMatrix(out, typ, z0), nil
}

// convertZ0 resolves the target reference impedance for a conversion:
// scattering-style targets inherit the source impedance when the source is
// scattering-styled, and fall back to DefaultZ0 otherwise; all other
// targets must not carry one.
func (m *Matrix) convertZ0(typ ParameterType, s settings) (float64, error) {
	if typ.NeedsImpedance() {
		if s.hasZ0 {
			return s.z0, nil
		}
		if m.typ.NeedsImpedance() {
			return m.z0, nil
		}
		return DefaultZ0, nil
	}
	if s.hasZ0 {
		return 0, fmt.Errorf("%w: %s", ErrImpedanceRule, typ)
	}
	return 0, nil
}
