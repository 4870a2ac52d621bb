// Package boot provides the boot ROM image that is overlaid on the
// bottom of the address space at power on. The boot ROM initialises
// the hardware, scrolls the logo and then unmaps itself by writing to
// the boot ROM disable register, after which the cartridge is visible
// at 0x0000.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// ROM is a loaded boot ROM image.
type ROM struct {
	raw      []byte
	checksum string // MD5 of the image
}

// Load validates and wraps a boot ROM image. The image must be 256
// bytes (DMG class) or 2304 bytes (CGB class); anything else is a
// construction-time error.
func Load(b []byte) (*ROM, error) {
	if len(b) != 256 && len(b) != 2304 {
		return nil, fmt.Errorf("boot: invalid boot rom length: %d", len(b))
	}

	sum := md5.Sum(b)

	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address of the image.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[int(addr)%len(b.raw)]
}

// Checksum returns the MD5 checksum of the image.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the hardware model the image belongs to, determined
// by its checksum, or "unknown" for an unrecognised image.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM found in the
	// first Japanese units; on a boot failure it flashes the screen
	// instead of hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the boot ROM found in the common
	// DMG-01 models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the Game Boy Pocket boot ROM, which
	// differs from DMG by a single byte: it loads 0xFF into the A
	// register instead of 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
)
