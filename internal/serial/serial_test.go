package serial

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

func testSerial() (*Controller, *mmu.MMU, *interrupts.Service) {
	irq := interrupts.NewService()
	bus := mmu.NewMMU(nullCart{}, irq)
	return NewController(bus, irq), bus, irq
}

func TestTransfer(t *testing.T) {
	s, bus, irq := testSerial()

	bus.Write(types.SB, 'A')
	bus.Write(types.SC, 0x81)

	assert.Equal(t, []byte("A"), s.Output())
	assert.Equal(t, uint8(0xFF), bus.Read(types.SB), "an open line shifts in 0xFF")
	assert.Zero(t, bus.Read(types.SC)&types.Bit7, "the start bit clears on completion")
	assert.NotZero(t, irq.Flag&interrupts.Serial.Mask(), "completion raises the serial interrupt")
}

func TestTransfer_TextStream(t *testing.T) {
	s, bus, _ := testSerial()

	for _, ch := range []byte("Passed") {
		bus.Write(types.SB, ch)
		bus.Write(types.SC, 0x81)
	}
	assert.Equal(t, []byte("Passed"), s.Output())
}

func TestTransfer_RequiresStartAndClock(t *testing.T) {
	s, bus, irq := testSerial()

	bus.Write(types.SB, 'A')
	bus.Write(types.SC, 0x80) // start bit without internal clock
	assert.Empty(t, s.Output(), "an external clock never arrives")
	assert.Zero(t, irq.Flag)

	bus.Write(types.SC, 0x01) // internal clock without start bit
	assert.Empty(t, s.Output())
}

func TestSC_ReadMask(t *testing.T) {
	_, bus, _ := testSerial()

	bus.Write(types.SC, 0x00)
	assert.Equal(t, uint8(0x7C), bus.Read(types.SC), "unused bits read high")
	bus.Write(types.SC, 0x01)
	assert.Equal(t, uint8(0x7D), bus.Read(types.SC))
}
