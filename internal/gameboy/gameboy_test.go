package gameboy

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmgcore/internal/cartridge"
	"dmgcore/internal/types"
)

// buildROM assembles a bootable image with the given code at the
// entry point 0x0100.
func buildROM(t *testing.T, code ...uint8) []byte {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], code)
	copy(rom[0x0134:], "DRIVERTEST")
	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x014D] = sum
	return rom
}

func TestNew_RejectsBadROM(t *testing.T) {
	_, err := New(make([]byte, 123))
	assert.ErrorIs(t, err, cartridge.ErrInvalidSize)
}

func TestNew_SkipBootState(t *testing.T) {
	gb, err := New(buildROM(t))
	require.NoError(t, err)

	s := gb.CPU.Snapshot()
	assert.Equal(t, uint8(0x01), s.A)
	assert.Equal(t, uint8(0xB0), s.F)
	assert.Equal(t, uint8(0x00), s.B)
	assert.Equal(t, uint8(0x13), s.C)
	assert.Equal(t, uint8(0x00), s.D)
	assert.Equal(t, uint8(0xD8), s.E)
	assert.Equal(t, uint8(0x01), s.H)
	assert.Equal(t, uint8(0x4D), s.L)
	assert.Equal(t, uint16(0xFFFE), s.SP)
	assert.Equal(t, uint16(0x0100), s.PC)
	assert.False(t, s.IME)

	assert.Equal(t, uint8(0xCF), gb.Read(types.P1))
	assert.Equal(t, uint8(0x91), gb.Read(types.LCDC))
	assert.Equal(t, uint8(0xFC), gb.Read(types.BGP))
	assert.Equal(t, uint8(0xE1), gb.Read(types.IF), "the boot ROM leaves a VBlank request")
	assert.Equal(t, uint8(0x00), gb.Read(types.IE))
}

func TestNew_WithBootROM(t *testing.T) {
	t.Run("starts at zero with the image mapped", func(t *testing.T) {
		image := make([]byte, 256)
		image[0] = 0x42
		gb, err := New(buildROM(t), WithBootROM(image))
		require.NoError(t, err)

		assert.Equal(t, uint16(0x0000), gb.CPU.Snapshot().PC)
		assert.Zero(t, gb.CPU.Snapshot().A, "registers are not seeded")
		assert.Equal(t, uint8(0x42), gb.Read(0x0000))
	})

	t.Run("rejects a bad image", func(t *testing.T) {
		_, err := New(buildROM(t), WithBootROM(make([]byte, 100)))
		assert.Error(t, err)
	})
}

func TestStep_RunsProgram(t *testing.T) {
	// LD A, 0x42; LD (0xC000), A
	gb, err := New(buildROM(t, 0x3E, 0x42, 0xEA, 0x00, 0xC0))
	require.NoError(t, err)

	cycles, err := gb.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(8), cycles)

	_, err = gb.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), gb.Read(0xC000))
}

func TestStep_TicksTimer(t *testing.T) {
	// an endless loop of NOPs via JR -1 would be fiddly; DIV advancing
	// across plain instruction execution is what matters
	gb, err := New(buildROM(t, 0x00, 0x18, 0xFD)) // NOP; JR -3
	require.NoError(t, err)

	var elapsed int
	for elapsed < 512 {
		cycles, err := gb.Step()
		require.NoError(t, err)
		elapsed += int(cycles)
	}
	assert.NotZero(t, gb.Read(types.DIV), "DIV advances as the CPU runs")
}

func TestStep_SurfacesFault(t *testing.T) {
	gb, err := New(buildROM(t, 0xDD))
	require.NoError(t, err)

	_, err = gb.Step()
	require.Error(t, err)
	assert.ErrorContains(t, err, "illegal opcode")
	assert.ErrorContains(t, err, "0xdd")

	err = gb.Run(1000)
	assert.Error(t, err, "the fault is sticky")
	assert.Equal(t, uint16(0x0100), gb.CPU.Snapshot().PC)
}

func TestRun_StopsAtBudget(t *testing.T) {
	gb, err := New(buildROM(t, 0x18, 0xFE)) // JR -2: spin forever
	require.NoError(t, err)
	require.NoError(t, gb.Run(10_000))
}

func TestSerialOutput(t *testing.T) {
	// LD A, 'H'; LDH (SB), A; LD A, 0x81; LDH (SC), A
	gb, err := New(buildROM(t,
		0x3E, 'H', 0xE0, 0x01,
		0x3E, 0x81, 0xE0, 0x02,
	))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := gb.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, []byte("H"), gb.SerialOutput())
}

func TestDeterminism(t *testing.T) {
	// two machines built from the same image must agree byte for byte
	// after the same number of steps
	program := []uint8{
		0x3E, 0x10, // LD A, 0x10
		0x06, 0x20, // LD B, 0x20
		0x80,       // ADD A, B
		0x21, 0x00, 0xC0, // LD HL, 0xC000
		0x22,       // LD (HL+), A
		0xCB, 0x37, // SWAP A
		0x18, 0xF3, // JR back to the start
	}

	a, err := New(buildROM(t, program...))
	require.NoError(t, err)
	b, err := New(buildROM(t, program...))
	require.NoError(t, err)

	for i := 0; i < 10_000; i++ {
		_, errA := a.Step()
		_, errB := b.Step()
		require.NoError(t, errA)
		require.NoError(t, errB)
	}

	if diff := deep.Equal(a.CPU.Snapshot(), b.CPU.Snapshot()); diff != nil {
		t.Fatalf("state diverged:\n%v\n%s", diff, spew.Sdump(a.CPU.Snapshot()))
	}
	for addr := uint16(0xC000); addr < 0xC010; addr++ {
		require.Equal(t, a.Read(addr), b.Read(addr), "WRAM at %#04x", addr)
	}
}

func TestRequestInterrupt(t *testing.T) {
	gb, err := New(buildROM(t, 0x00))
	require.NoError(t, err)

	before := gb.Read(types.IF)
	gb.RequestInterrupt(4) // Joypad
	assert.Equal(t, before|0x10, gb.Read(types.IF))
}
