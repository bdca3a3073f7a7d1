package nport

// DefaultZ0 is the reference impedance assumed for scattering-style
// parameters when none is given.
const DefaultZ0 = 50.0

// ParameterType identifies the representation convention of an n-port
// parameter matrix.
type ParameterType int

// Supported parameter matrix types.
const (
	TypeZ    ParameterType = iota + 1 // impedance
	TypeY                             // admittance
	TypeS                             // scattering
	TypeT                             // scattering-transfer
	TypeH                             // hybrid
	TypeG                             // inverse hybrid
	TypeABCD                          // transmission
)

var typeNames = map[ParameterType]string{
	TypeZ:    "Z",
	TypeY:    "Y",
	TypeS:    "S",
	TypeT:    "T",
	TypeH:    "H",
	TypeG:    "G",
	TypeABCD: "ABCD",
}

// String returns the conventional short name of the type.
func (t ParameterType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is one of the supported parameter types.
func (t ParameterType) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// NeedsImpedance reports whether matrices of this type carry a reference
// impedance. Only scattering and scattering-transfer parameters do.
func (t ParameterType) NeedsImpedance() bool {
	return t == TypeS || t == TypeT
}

// Option configures the reference impedance of a construction or
// conversion. Types that do not carry a reference impedance reject it.
type Option func(*settings)

type settings struct {
	z0    float64
	hasZ0 bool
}

// WithZ0 sets the reference impedance for scattering-style parameters.
func WithZ0(z0 float64) Option {
	return func(s *settings) {
		s.z0 = z0
		s.hasZ0 = true
	}
}

func applyOptions(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
