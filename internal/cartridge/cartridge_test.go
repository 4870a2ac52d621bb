package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM returns a valid image of the given bank count with the
// header fields filled in and checksummed.
func buildROM(t *testing.T, banks int) []byte {
	t.Helper()
	rom := make([]byte, banks*0x4000)
	copy(rom[0x0134:], "CPUTEST")
	rom[0x0147] = uint8(ROM)
	rom[0x0148] = 0x00 // 32 KiB
	rom[0x0149] = 0x02 // 8 KiB RAM
	fixChecksum(rom)
	return rom
}

func fixChecksum(rom []byte) {
	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x014D] = sum
}

func TestNew_RejectsMalformedImages(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := New(make([]byte, 0x4000))
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("ragged size", func(t *testing.T) {
		_, err := New(make([]byte, 0x8000+1))
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("bad header checksum", func(t *testing.T) {
		rom := buildROM(t, 2)
		rom[0x014D] ^= 0xFF
		_, err := New(rom)
		assert.ErrorContains(t, err, "checksum mismatch")
	})

	t.Run("bad ROM size code", func(t *testing.T) {
		rom := buildROM(t, 2)
		rom[0x0148] = 0x52
		fixChecksum(rom)
		_, err := New(rom)
		assert.ErrorContains(t, err, "ROM size code")
	})

	t.Run("bad RAM size code", func(t *testing.T) {
		rom := buildROM(t, 2)
		rom[0x0149] = 0x01
		fixChecksum(rom)
		_, err := New(rom)
		assert.ErrorContains(t, err, "RAM size code")
	})
}

func TestHeader(t *testing.T) {
	cart, err := New(buildROM(t, 2))
	require.NoError(t, err)

	h := cart.Header()
	assert.Equal(t, "CPUTEST", h.Title)
	assert.Equal(t, ROM, h.CartridgeType)
	assert.Equal(t, uint32(32*1024), h.ROMSize)
	assert.Equal(t, uint32(8*1024), h.RAMSize)
}

func TestCartridge_Read(t *testing.T) {
	rom := buildROM(t, 2)
	rom[0x1234] = 0x42
	rom[0x5234] = 0x99
	cart, err := New(rom)
	require.NoError(t, err)

	// a two-bank image backs the whole ROM window, both banks
	assert.Equal(t, uint8(0x42), cart.Read(0x1234))
	assert.Equal(t, uint8(0x99), cart.Read(0x5234))
}

func TestCartridge_RAM(t *testing.T) {
	cart, err := New(buildROM(t, 2))
	require.NoError(t, err)

	cart.Write(0xA123, 0x42)
	assert.Equal(t, uint8(0x42), cart.Read(0xA123))

	cart.Write(0x2000, 0x99)
	assert.Equal(t, uint8(0x00), cart.Read(0x2000), "ROM writes are bank selects, not stores")
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "ROM", ROM.String())
	assert.Equal(t, "MBC1", MBC1RAMBATT.String())
	assert.Equal(t, "MBC5", MBC5.String())
	assert.Contains(t, Type(0x42).String(), "unknown")
}
