package nport

import "errors"

// Errors returned by n-port operations. Parameterized failures wrap these
// sentinels, so callers can match with [errors.Is].
var (
	ErrInvalidType           = errors.New("nport: unknown parameter type")
	ErrImpedanceRule         = errors.New("nport: parameter type does not take a reference impedance")
	ErrNotSquare             = errors.New("nport: matrix must be square")
	ErrShapeMismatch         = errors.New("nport: shapes do not match")
	ErrTypeMismatch          = errors.New("nport: operand parameter types differ")
	ErrImpedanceMismatch     = errors.New("nport: operand reference impedances differ")
	ErrUnsupportedConversion = errors.New("nport: unsupported conversion")
	ErrPortIndex             = errors.New("nport: invalid port index")
	ErrOddPortCount          = errors.New("nport: port count is not even")
	ErrFreqOrder             = errors.New("nport: frequencies must be strictly increasing")
	ErrDuplicateFreq         = errors.New("nport: frequency sample already present")
	ErrOutOfDomain           = errors.New("nport: frequency outside the sampled range")
	ErrNoOverlap             = errors.New("nport: frequency ranges do not overlap")
	ErrSingular              = errors.New("nport: matrix is singular")
	ErrNotImplemented        = errors.New("nport: not implemented")
)
