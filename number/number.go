// Package number implements the arbitrary-precision / floating / log-space
// semiring value ("Number") that join-tree evaluation combines over.
package number

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Mode selects the runtime representation of every Number in a process.
// Mixing modes within a single computation is a programmer error; every
// binary operation returns an error rather than silently coercing.
type Mode int

const (
	// Rational represents values as exact p/q fractions via math/big.
	Rational Mode = iota
	// Float represents values as IEEE double-precision floats.
	Float
	// LogFloat represents values as their base-10 logarithm; -Inf encodes zero.
	LogFloat
)

func (m Mode) String() string {
	switch m {
	case Rational:
		return "rational"
	case Float:
		return "float"
	case LogFloat:
		return "logFloat"
	default:
		return "unknown"
	}
}

// Number is a semiring element in one of three universes (Mode). Only one
// of quotient/fraction is meaningful, depending on mode.
type Number struct {
	mode     Mode
	quotient *big.Rat
	fraction float64 // holds the float value, or its log10 when mode == LogFloat
}

// Zero returns the additive identity in mode: exact 0, or -Inf in log-space.
func Zero(mode Mode) Number {
	switch mode {
	case Rational:
		return Number{mode: mode, quotient: new(big.Rat)}
	case LogFloat:
		return Number{mode: mode, fraction: math.Inf(-1)}
	default:
		return Number{mode: mode, fraction: 0}
	}
}

// One returns the multiplicative identity in mode: exact 1, or 0 in log-space.
func One(mode Mode) Number {
	switch mode {
	case Rational:
		return Number{mode: mode, quotient: big.NewRat(1, 1)}
	case LogFloat:
		return Number{mode: mode, fraction: 0}
	default:
		return Number{mode: mode, fraction: 1}
	}
}

// FromString parses s as "{int}/{int}" or a decimal, in the given mode.
func FromString(mode Mode, s string) (Number, error) {
	divPos := strings.IndexByte(s, '/')
	switch mode {
	case Rational:
		q := new(big.Rat)
		if divPos >= 0 {
			if _, ok := q.SetString(s); !ok {
				return Number{}, fmt.Errorf("number: invalid rational %q", s)
			}
		} else {
			f, ok := new(big.Float).SetString(s)
			if !ok {
				return Number{}, fmt.Errorf("number: invalid decimal %q", s)
			}
			q, _ = f.Rat(q)
		}
		return Number{mode: mode, quotient: q}, nil
	default:
		var f float64
		var err error
		if divPos >= 0 {
			num, errN := strconv.ParseFloat(s[:divPos], 64)
			den, errD := strconv.ParseFloat(s[divPos+1:], 64)
			if errN != nil {
				return Number{}, fmt.Errorf("number: invalid numerator %q: %w", s[:divPos], errN)
			}
			if errD != nil {
				return Number{}, fmt.Errorf("number: invalid denominator %q: %w", s[divPos+1:], errD)
			}
			f = num / den
		} else {
			f, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return Number{}, fmt.Errorf("number: invalid float %q: %w", s, err)
			}
		}
		return Number{mode: mode, fraction: f}, nil
	}
}

// Mode reports the universe this value lives in.
func (n Number) Mode() Mode { return n.mode }

func checkModes(a, b Number, op string) error {
	if a.mode != b.mode {
		return fmt.Errorf("number: cannot %s a %s value with a %s value", op, a.mode, b.mode)
	}
	return nil
}

// Add returns a+b, or an error if a and b are in different modes.
func (a Number) Add(b Number) (Number, error) {
	if err := checkModes(a, b, "add"); err != nil {
		return Number{}, err
	}
	switch a.mode {
	case Rational:
		r := new(big.Rat).Add(a.quotient, b.quotient)
		return Number{mode: a.mode, quotient: r}, nil
	case LogFloat:
		return a.LogSumExp(b)
	default:
		return Number{mode: a.mode, fraction: a.fraction + b.fraction}, nil
	}
}

// Sub returns a-b; in log-space, the log10 of the difference of the
// represented values.
func (a Number) Sub(b Number) (Number, error) {
	if err := checkModes(a, b, "subtract"); err != nil {
		return Number{}, err
	}
	if a.mode == Rational {
		return Number{mode: a.mode, quotient: new(big.Rat).Sub(a.quotient, b.quotient)}, nil
	}
	if a.mode == LogFloat {
		if math.IsInf(b.fraction, -1) {
			return a, nil
		}
		return Number{mode: a.mode, fraction: a.fraction + math.Log10(1-math.Pow(10, b.fraction-a.fraction))}, nil
	}
	return Number{mode: a.mode, fraction: a.fraction - b.fraction}, nil
}

// Mul returns a*b; in log-space, multiplication is addition of logs.
func (a Number) Mul(b Number) (Number, error) {
	if err := checkModes(a, b, "multiply"); err != nil {
		return Number{}, err
	}
	switch a.mode {
	case Rational:
		return Number{mode: a.mode, quotient: new(big.Rat).Mul(a.quotient, b.quotient)}, nil
	case LogFloat:
		return Number{mode: a.mode, fraction: a.fraction + b.fraction}, nil
	default:
		return Number{mode: a.mode, fraction: a.fraction * b.fraction}, nil
	}
}

// AddInPlace mutates a to a+b, for accumulating a running total in place.
func (a *Number) AddInPlace(b Number) error {
	r, err := a.Add(b)
	if err != nil {
		return err
	}
	*a = r
	return nil
}

// MulInPlace mutates a to a*b.
func (a *Number) MulInPlace(b Number) error {
	r, err := a.Mul(b)
	if err != nil {
		return err
	}
	*a = r
	return nil
}

// Equal reports whether a == b.
func (a Number) Equal(b Number) (bool, error) {
	if err := checkModes(a, b, "compare"); err != nil {
		return false, err
	}
	if a.mode == Rational {
		return a.quotient.Cmp(b.quotient) == 0, nil
	}
	return a.fraction == b.fraction, nil
}

// Less reports whether a < b.
func (a Number) Less(b Number) (bool, error) {
	if err := checkModes(a, b, "compare"); err != nil {
		return false, err
	}
	if a.mode == Rational {
		return a.quotient.Cmp(b.quotient) < 0, nil
	}
	return a.fraction < b.fraction, nil
}

// LessEqual reports whether a <= b.
func (a Number) LessEqual(b Number) (bool, error) {
	lt, err := a.Less(b)
	if err != nil {
		return false, err
	}
	if lt {
		return true, nil
	}
	return a.Equal(b)
}

// GreaterEqual reports whether a >= b.
func (a Number) GreaterEqual(b Number) (bool, error) {
	lt, err := a.Less(b)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

// Log10 returns log10 of the represented value. In log-space this is the
// identity; in rational mode it avoids overflow by decomposing the value
// via big.Float's Float64 mantissa/exponent (d * 2^exponent) rather than
// converting the full-precision rational straight to float64.
func (a Number) Log10() (float64, error) {
	switch a.mode {
	case LogFloat:
		return a.fraction, nil
	case Rational:
		f := new(big.Float).SetPrec(200).SetRat(a.quotient)
		mantissa := new(big.Float).SetPrec(200)
		exp := f.MantExp(mantissa) // f == mantissa * 2^exp, mantissa in [0.5, 1)
		d, _ := mantissa.Float64()
		if d == 0 {
			return 0, fmt.Errorf("number: log10 of zero")
		}
		return math.Log10(d) + float64(exp)*math.Log10(2), nil
	default:
		if a.fraction <= 0 {
			return 0, fmt.Errorf("number: log10 of non-positive value %v", a.fraction)
		}
		return math.Log10(a.fraction), nil
	}
}

// LogSumExp returns log10(10^a + 10^b), computed stably as
// max(a,b) + log10(10^(a-M) + 10^(b-M)) with M = max(a,b). Only valid in
// LogFloat mode. -Inf (the log-space zero) absorbs the other operand.
func (a Number) LogSumExp(b Number) (Number, error) {
	if err := checkModes(a, b, "logSumExp"); err != nil {
		return Number{}, err
	}
	if a.mode != LogFloat {
		return Number{}, fmt.Errorf("number: logSumExp requires LogFloat mode, got %s", a.mode)
	}
	if math.IsInf(a.fraction, -1) {
		return b, nil
	}
	if math.IsInf(b.fraction, -1) {
		return a, nil
	}
	m := math.Max(a.fraction, b.fraction)
	sum := math.Pow(10, a.fraction-m) + math.Pow(10, b.fraction-m)
	return Number{mode: a.mode, fraction: math.Log10(sum) + m}, nil
}

// ToRational returns the exact p/q pair this value represents. Only
// meaningful (and only implemented) in Rational mode.
func (a Number) ToRational() (*big.Rat, error) {
	if a.mode != Rational {
		return nil, fmt.Errorf("number: ToRational requires Rational mode, got %s", a.mode)
	}
	return new(big.Rat).Set(a.quotient), nil
}

// String renders the value for diagnostic / DIMACS-comment output.
func (a Number) String() string {
	switch a.mode {
	case Rational:
		if a.quotient == nil {
			return "0"
		}
		return a.quotient.RatString()
	default:
		return strconv.FormatFloat(a.fraction, 'g', -1, 64)
	}
}
