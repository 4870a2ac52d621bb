package cpu

import "dmgcore/internal/types"

// The four flags live in the high nibble of the F register; the low
// nibble is hard-wired to zero and no operation ever sets it.
const (
	flagZero      = types.Bit7
	flagSubtract  = types.Bit6
	flagHalfCarry = types.Bit5
	flagCarry     = types.Bit4
)

// setFlags rebuilds the F register from the four flag values, which
// keeps the low nibble clear by construction.
func (c *CPU) setFlags(z, n, h, carry bool) {
	c.F = 0
	if z {
		c.F |= flagZero
	}
	if n {
		c.F |= flagSubtract
	}
	if h {
		c.F |= flagHalfCarry
	}
	if carry {
		c.F |= flagCarry
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag uint8) bool {
	return c.F&flag != 0
}

// setFlag sets the given flag without touching the others.
func (c *CPU) setFlag(flag uint8) {
	c.F |= flag
}

// clearFlag clears the given flag without touching the others.
func (c *CPU) clearFlag(flag uint8) {
	c.F &^= flag
}
