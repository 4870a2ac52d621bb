// Package timer implements the DIV/TIMA timer unit. It is one of the
// external collaborators the CPU core is driven alongside: the caller
// feeds it the cycle count returned by each CPU step and it raises
// the timer interrupt when TIMA overflows.
package timer

import (
	"dmgcore/internal/interrupts"
	"dmgcore/internal/mmu"
	"dmgcore/internal/types"
)

// tacPeriods maps the two low TAC bits to the TIMA period in T-cycles.
var tacPeriods = [4]uint32{1024, 16, 64, 256}

// Controller is the timer unit. DIV is the high byte of an internal
// 16-bit counter that runs unconditionally; TIMA counts at the TAC
// rate while TAC bit 2 is set, reloading from TMA on overflow.
type Controller struct {
	irq *interrupts.Service

	divCounter  uint16
	timaCounter uint32

	tima uint8
	tma  uint8
	tac  uint8
}

// NewController returns a timer wired to the given bus and interrupt
// service. It reserves the DIV, TIMA, TMA and TAC registers.
func NewController(bus *mmu.MMU, irq *interrupts.Service) *Controller {
	t := &Controller{irq: irq}

	bus.ReserveAddress(types.DIV, func(v uint8) uint8 {
		// any write resets the whole internal counter
		t.Reset()
		return 0
	})
	bus.ReserveAddressRead(types.DIV, func() uint8 {
		return uint8(t.divCounter >> 8)
	})

	bus.ReserveAddress(types.TIMA, func(v uint8) uint8 {
		t.tima = v
		return v
	})
	bus.ReserveAddressRead(types.TIMA, func() uint8 { return t.tima })

	bus.ReserveAddress(types.TMA, func(v uint8) uint8 {
		t.tma = v
		return v
	})
	bus.ReserveAddressRead(types.TMA, func() uint8 { return t.tma })

	bus.ReserveAddress(types.TAC, func(v uint8) uint8 {
		t.tac = v & 0x07
		return t.tac | 0xF8
	})
	bus.ReserveAddressRead(types.TAC, func() uint8 { return t.tac | 0xF8 })

	return t
}

// Tick advances the timer by the given number of T-cycles.
func (t *Controller) Tick(cycles uint8) {
	t.divCounter += uint16(cycles)

	if t.tac&types.Bit2 == 0 {
		return
	}

	period := tacPeriods[t.tac&0x03]
	t.timaCounter += uint32(cycles)
	for t.timaCounter >= period {
		t.timaCounter -= period
		t.tima++
		if t.tima == 0 {
			t.tima = t.tma
			t.irq.Request(interrupts.Timer)
		}
	}
}

// Div returns the DIV register value.
func (t *Controller) Div() uint8 {
	return uint8(t.divCounter >> 8)
}

// Reset zeroes the internal divider. It backs the DIV write handler,
// which is also how the STOP instruction resets the divider.
func (t *Controller) Reset() {
	t.divCounter = 0
	t.timaCounter = 0
}
