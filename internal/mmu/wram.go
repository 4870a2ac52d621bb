package mmu

// WRAM is the 8 KiB of work RAM at 0xC000 - 0xDFFF. The echo region
// at 0xE000 - 0xFDFF mirrors it on the address bus, so both windows
// are folded onto the same backing array by masking the address down
// to the array size; a write through either window is visible through
// the other.
type WRAM struct {
	raw [0x2000]uint8
}

// NewWRAM returns a zero-filled WRAM.
func NewWRAM() *WRAM {
	return &WRAM{}
}

// Read returns the byte at the given bus address.
func (w *WRAM) Read(addr uint16) uint8 {
	return w.raw[addr&0x1FFF]
}

// Write stores the byte at the given bus address.
func (w *WRAM) Write(addr uint16, v uint8) {
	w.raw[addr&0x1FFF] = v
}
