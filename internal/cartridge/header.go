package cartridge

import (
	"fmt"
	"strings"
)

// Type is the cartridge hardware type declared at 0x0147.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	MBC3        Type = 0x11
	MBC3RAM     Type = 0x12
	MBC3RAMBATT Type = 0x13
	MBC5        Type = 0x19
	MBC5RAM     Type = 0x1A
	MBC5RAMBATT Type = 0x1B
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2BATT:
		return "MBC2"
	case MBC3, MBC3RAM, MBC3RAMBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT:
		return "MBC5"
	default:
		return fmt.Sprintf("unknown (%#02x)", uint8(t))
	}
}

// Header is the cartridge header located at 0x0100 - 0x014F. It
// describes the cartridge hardware and carries a checksum over its
// own bytes that the boot ROM verifies before handing over control.
type Header struct {
	// Title of the game, at 0x0134 - 0x0143.
	Title string
	// CartridgeType at 0x0147.
	CartridgeType Type
	// ROMSize in bytes, decoded from the size code at 0x0148.
	ROMSize uint32
	// RAMSize in bytes, decoded from the size code at 0x0149.
	RAMSize uint32
	// HeaderChecksum at 0x014D.
	HeaderChecksum uint8
}

var ramSizes = map[uint8]uint32{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// parseHeader decodes and verifies the header region of a ROM image.
// The image must already be long enough to contain the header.
func parseHeader(rom []byte) (*Header, error) {
	h := &Header{
		Title:          strings.TrimRight(string(rom[0x0134:0x0144]), "\x00"),
		CartridgeType:  Type(rom[0x0147]),
		HeaderChecksum: rom[0x014D],
	}

	sizeCode := rom[0x0148]
	if sizeCode > 0x08 {
		return nil, fmt.Errorf("cartridge: invalid ROM size code %#02x", sizeCode)
	}
	h.ROMSize = (32 * 1024) << sizeCode

	ramSize, ok := ramSizes[rom[0x0149]]
	if !ok {
		return nil, fmt.Errorf("cartridge: invalid RAM size code %#02x", rom[0x0149])
	}
	h.RAMSize = ramSize

	// verify the header checksum the same way the boot ROM does
	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	if sum != h.HeaderChecksum {
		return nil, fmt.Errorf("cartridge: header checksum mismatch: computed %#02x, header declares %#02x", sum, h.HeaderChecksum)
	}

	return h, nil
}

func (h *Header) String() string {
	return fmt.Sprintf("%s (%s, %dKiB ROM, %dKiB RAM)", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
