// Package joypad implements the button matrix behind the P1
// register: write bits 4-5 to select the action or direction group,
// read bits 0-3 for the state of the selected group, pressed reading
// as 0.
package joypad

import (
	"dmgcore/internal/interrupts"
	"dmgcore/internal/mmu"
	"dmgcore/internal/types"
)

// Button identifies one of the eight buttons.
type Button = uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// State holds the button matrix. The low nibble of buttons is the
// action group, the high nibble the direction group; a set bit means
// pressed.
type State struct {
	irq *interrupts.Service

	buttons    uint8
	selectBits uint8
}

// New returns a joypad wired to the given bus and interrupt service.
// It reserves the P1 register. Both groups start selected, so an idle
// P1 reads 0xCF as it does after the boot ROM.
func New(bus *mmu.MMU, irq *interrupts.Service) *State {
	s := &State{irq: irq}

	bus.ReserveAddress(types.P1, func(v uint8) uint8 {
		s.selectBits = v & 0x30
		return s.read()
	})
	bus.ReserveAddressRead(types.P1, s.read)

	return s
}

func (s *State) read() uint8 {
	v := 0xC0 | s.selectBits | 0x0F
	if s.selectBits&types.Bit5 == 0 {
		v &^= s.buttons & 0x0F
	}
	if s.selectBits&types.Bit4 == 0 {
		v &^= s.buttons >> 4
	}
	return v
}

// Press marks a button as held. The interrupt line only fires when
// the button's group is selected through P1, as on hardware: a press
// in an unselected group cannot pull any P1 input line low.
func (s *State) Press(button Button) {
	s.buttons |= 1 << button

	selected := s.selectBits&types.Bit5 == 0 && button <= ButtonStart ||
		s.selectBits&types.Bit4 == 0 && button >= ButtonRight
	if selected {
		s.irq.Request(interrupts.Joypad)
	}
}

// Release marks a button as no longer held.
func (s *State) Release(button Button) {
	s.buttons &^= 1 << button
}
