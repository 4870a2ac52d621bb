// Package serial implements the serial port far enough for the
// conformance suites that print their progress over it: a transfer
// started with no link partner shifts out the SB byte, reads back
// 0xFF, and raises the serial interrupt. Every transferred byte is
// appended to an output buffer the harness can read.
package serial

import (
	"dmgcore/internal/interrupts"
	"dmgcore/internal/mmu"
	"dmgcore/internal/types"
)

// Controller is the serial port with no remote device attached.
type Controller struct {
	irq *interrupts.Service

	sb uint8
	sc uint8

	output []byte
}

// NewController returns a serial port wired to the given bus and
// interrupt service. It reserves the SB and SC registers.
func NewController(bus *mmu.MMU, irq *interrupts.Service) *Controller {
	s := &Controller{irq: irq}

	bus.ReserveAddress(types.SB, func(v uint8) uint8 {
		s.sb = v
		return v
	})
	bus.ReserveAddressRead(types.SB, func() uint8 { return s.sb })

	bus.ReserveAddress(types.SC, func(v uint8) uint8 {
		s.sc = v & 0x83
		// start bit + internal clock: transfer begins, and with no
		// partner it completes immediately with an open line
		if v&types.Bit7 != 0 && v&types.Bit0 != 0 {
			s.output = append(s.output, s.sb)
			s.sb = 0xFF
			s.sc &^= types.Bit7
			s.irq.Request(interrupts.Serial)
		}
		return s.sc | 0x7C
	})
	bus.ReserveAddressRead(types.SC, func() uint8 { return s.sc | 0x7C })

	return s
}

// Output returns everything shifted out since power on.
func (s *Controller) Output() []byte {
	return s.output
}
