// README: Common money value object used across modules. All amounts are
// integer cents; float arithmetic only ever happens inside a rounding helper.
package types

import "math"

// Cents is a monetary amount in integer euro cents.
type Cents int64

// FromEuro converts a euro amount (e.g. parsed from an env override) to cents,
// rounding half away from zero.
func FromEuro(euro float64) Cents {
	return Cents(math.Round(euro * 100))
}

// RoundCents rounds an intermediate float cent value half away from zero.
// This is the single rounding rule for the whole engine.
func RoundCents(v float64) Cents {
	return Cents(math.Round(v))
}

// MulRound multiplies an amount by a float factor and rounds half away from zero.
func (c Cents) MulRound(factor float64) Cents {
	return RoundCents(float64(c) * factor)
}

// ClampMin0 clamps a running subtotal to zero, per the pricing invariant that
// discounts may never drive a total negative.
func (c Cents) ClampMin0() Cents {
	if c < 0 {
		return 0
	}
	return c
}

func (c Cents) Min(other Cents) Cents {
	if c < other {
		return c
	}
	return other
}

func (c Cents) Max(other Cents) Cents {
	if c > other {
		return c
	}
	return other
}
