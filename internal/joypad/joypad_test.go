package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dmgcore/internal/interrupts"
	"dmgcore/internal/mmu"
	"dmgcore/internal/types"
)

type nullCart struct{}

func (nullCart) Read(uint16) uint8   { return 0xFF }
func (nullCart) Write(uint16, uint8) {}

func testJoypad() (*State, *mmu.MMU, *interrupts.Service) {
	irq := interrupts.NewService()
	bus := mmu.NewMMU(nullCart{}, irq)
	return New(bus, irq), bus, irq
}

func TestP1_NothingSelected(t *testing.T) {
	j, bus, _ := testJoypad()
	j.Press(ButtonA)

	bus.Write(types.P1, 0x30)
	assert.Equal(t, uint8(0xFF), bus.Read(types.P1), "no group selected reads all released")
}

func TestP1_ActionGroup(t *testing.T) {
	j, bus, _ := testJoypad()
	j.Press(ButtonA)
	j.Press(ButtonStart)
	j.Press(ButtonLeft) // direction group, must not leak

	bus.Write(types.P1, 0x10) // bit 5 low selects actions
	assert.Equal(t, uint8(0xD6), bus.Read(types.P1))

	j.Release(ButtonA)
	assert.Equal(t, uint8(0xD7), bus.Read(types.P1))
}

func TestP1_DirectionGroup(t *testing.T) {
	j, bus, _ := testJoypad()
	j.Press(ButtonDown)
	j.Press(ButtonA) // action group, must not leak

	bus.Write(types.P1, 0x20) // bit 4 low selects directions
	assert.Equal(t, uint8(0xE7), bus.Read(types.P1))
}

func TestPress_RaisesInterrupt(t *testing.T) {
	t.Run("selected group", func(t *testing.T) {
		j, bus, irq := testJoypad()
		bus.Write(types.P1, 0x10) // actions selected

		j.Press(ButtonB)
		assert.NotZero(t, irq.Flag&interrupts.Joypad.Mask())
	})

	t.Run("unselected group stays quiet", func(t *testing.T) {
		j, bus, irq := testJoypad()
		bus.Write(types.P1, 0x10) // actions selected

		j.Press(ButtonUp)
		assert.Zero(t, irq.Flag&interrupts.Joypad.Mask())
	})

	t.Run("no group selected stays quiet", func(t *testing.T) {
		j, bus, irq := testJoypad()
		bus.Write(types.P1, 0x30)

		j.Press(ButtonA)
		j.Press(ButtonDown)
		assert.Zero(t, irq.Flag)
	})
}
