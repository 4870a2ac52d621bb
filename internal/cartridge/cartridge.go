// Package cartridge provides the game ROM side of the bus: the ROM
// banks at 0x0000 - 0x7FFF and the external RAM at 0xA000 - 0xBFFF.
//
// Bank-switching hardware (MBC1/3/5 and friends) lives on the
// cartridge, not in the console, so it is treated as an external
// collaborator: anything implementing the same read/write surface can
// be attached to the bus in place of the flat cartridge provided
// here. Writes into ROM space, which on banked cartridges select
// banks, are accepted and discarded.
package cartridge

import (
	"errors"
	"fmt"
)

const (
	bankSize = 0x4000 // one ROM bank
	ramSize  = 0x2000 // external RAM window
)

// ErrInvalidSize is returned when a ROM image is not a whole number
// of 16 KiB banks or is too small to hold a header.
var ErrInvalidSize = errors.New("cartridge: invalid ROM image size")

// Cartridge is a flat (unbanked) cartridge: the whole ROM image plus
// an 8 KiB external RAM window. ROM reads wrap modulo the image size,
// so no address computed from bus traffic can index outside the
// backing slice.
type Cartridge struct {
	rom    []byte
	ram    [ramSize]uint8
	header *Header
}

// New validates a ROM image and wraps it in a Cartridge. Malformed
// images (truncated, ragged size, bad header checksum) are rejected
// here, before any execution begins.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < 2*bankSize || len(rom)%bankSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, len(rom))
	}

	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	return &Cartridge{
		rom:    rom,
		header: header,
	}, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() *Header { return c.header }

// Read returns the byte at the given address of the cartridge's two
// bus windows. Addresses outside them read as open bus.
func (c *Cartridge) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		return c.rom[int(addr)%len(c.rom)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		return c.ram[addr&(ramSize-1)]
	}
	return 0xFF
}

// Write stores into external RAM. Writes into ROM space are bank
// select commands on MBC hardware; the flat cartridge accepts and
// ignores them.
func (c *Cartridge) Write(addr uint16, v uint8) {
	if addr >= 0xA000 && addr <= 0xBFFF {
		c.ram[addr&(ramSize-1)] = v
	}
}
