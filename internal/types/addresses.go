// Package types holds the bit masks and memory map constants shared by
// the various components of the emulated system.
package types

// Hardware register addresses, as mapped into the I/O region of the
// bus (0xFF00 - 0xFF7F), plus the interrupt enable register at 0xFFFF.
const (
	P1 uint16 = 0xFF00 // Joypad

	SB uint16 = 0xFF01 // Serial transfer data
	SC uint16 = 0xFF02 // Serial transfer control

	DIV  uint16 = 0xFF04 // Divider register
	TIMA uint16 = 0xFF05 // Timer counter
	TMA  uint16 = 0xFF06 // Timer modulo
	TAC  uint16 = 0xFF07 // Timer control

	IF uint16 = 0xFF0F // Interrupt flag

	LCDC uint16 = 0xFF40 // LCD control
	STAT uint16 = 0xFF41 // LCD status
	SCY  uint16 = 0xFF42 // Scroll Y
	SCX  uint16 = 0xFF43 // Scroll X
	LY   uint16 = 0xFF44 // LCD Y coordinate
	LYC  uint16 = 0xFF45 // LY compare
	DMA  uint16 = 0xFF46 // OAM DMA source
	BGP  uint16 = 0xFF47 // Background palette
	OBP0 uint16 = 0xFF48 // Object palette 0
	OBP1 uint16 = 0xFF49 // Object palette 1
	WY   uint16 = 0xFF4A // Window Y
	WX   uint16 = 0xFF4B // Window X

	BDIS uint16 = 0xFF50 // Boot ROM disable

	IE uint16 = 0xFFFF // Interrupt enable
)

// Memory region boundaries of the 16-bit address space.
const (
	ROMEnd      uint16 = 0x7FFF
	VRAMStart   uint16 = 0x8000
	VRAMEnd     uint16 = 0x9FFF
	ERAMStart   uint16 = 0xA000
	ERAMEnd     uint16 = 0xBFFF
	WRAMStart   uint16 = 0xC000
	WRAMEnd     uint16 = 0xDFFF
	EchoStart   uint16 = 0xE000
	EchoEnd     uint16 = 0xFDFF
	OAMStart    uint16 = 0xFE00
	OAMEnd      uint16 = 0xFE9F
	UnusedStart uint16 = 0xFEA0
	UnusedEnd   uint16 = 0xFEFF
	IOStart     uint16 = 0xFF00
	IOEnd       uint16 = 0xFF7F
	HRAMStart   uint16 = 0xFF80
	HRAMEnd     uint16 = 0xFFFE
)
