// Package mmu provides the memory bus for the emulated system. The
// MMU maps the full 16-bit address space onto its backing regions and
// delegates cartridge traffic through the IOBus interface; it is a
// total function over the address space and never faults. Reads from
// unbacked addresses return 0xFF, the open-bus value.
package mmu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"dmgcore/internal/boot"
	"dmgcore/internal/interrupts"
	"dmgcore/internal/types"
)

// IOBus is the read/write surface the MMU expects from the cartridge
// (or any other external collaborator attached in its place).
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Address is one entry of the dispatch table: the read and write
// functions owning an address.
type Address struct {
	Read  func(address uint16) uint8
	Write func(address uint16, value uint8)
}

// ReadHandler overrides reads of a single I/O register.
type ReadHandler func() uint8

// WriteHandler intercepts writes to a single I/O register. It returns
// the value to store back into the register file.
type WriteHandler func(v uint8) uint8

// MMU routes every address in the 16-bit space to exactly one backing
// region.
type MMU struct {
	// dispatch table over the 64 KiB address space
	raw [0x10000]*Address

	// 0x0000 - 0x00FF - boot ROM overlay until disabled
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM, 0xA000 - 0xBFFF - external RAM
	cart IOBus

	// 0x8000 - 0x9FFF - video RAM (8 KiB)
	vRAM [0x2000]uint8

	// 0xC000 - 0xDFFF - work RAM, echoed at 0xE000 - 0xFDFF
	wRAM *WRAM

	// 0xFE00 - 0xFE9F - object attribute memory
	oam [0xA0]uint8

	// 0xFF00 - 0xFF7F - I/O registers
	io            [0x80]uint8
	readHandlers  [0x80]ReadHandler
	writeHandlers [0x80]WriteHandler

	// 0xFF80 - 0xFFFE - high RAM
	hRAM [0x7F]uint8

	// 0xFF0F / 0xFFFF - interrupt flag and enable
	irq *interrupts.Service

	Log logrus.FieldLogger
}

// NewMMU returns an MMU with the given cartridge attached.
func NewMMU(cart IOBus, irq *interrupts.Service) *MMU {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	m := &MMU{
		cart: cart,
		wRAM: NewWRAM(),
		irq:  irq,
		Log:  l,
	}
	m.init()

	return m
}

func (m *MMU) init() {
	addresses := []Address{
		{Read: m.readROM, Write: m.cart.Write},
		{Read: m.cart.Read, Write: m.cart.Write},
		{Read: m.readVRAM, Write: m.writeVRAM},
		{Read: m.wRAM.Read, Write: m.wRAM.Write},
		{Read: m.readOAM, Write: m.writeOAM},
		{Read: openBus, Write: discard},
		{Read: m.readIO, Write: m.writeIO},
		{Read: m.readHRAM, Write: m.writeHRAM},
		{Read: func(uint16) uint8 { return m.irq.Enable }, Write: func(_ uint16, v uint8) { m.irq.Enable = v }},
	}

	// 0x0000 - 0x7FFF - ROM (boot overlay on the first bank)
	for i := 0x0000; i < 0x8000; i++ {
		if i < 0x100 {
			m.raw[i] = &addresses[0]
		} else {
			m.raw[i] = &addresses[1]
		}
	}
	// 0x8000 - 0x9FFF - VRAM
	for i := 0x8000; i < 0xA000; i++ {
		m.raw[i] = &addresses[2]
	}
	// 0xA000 - 0xBFFF - external RAM
	for i := 0xA000; i < 0xC000; i++ {
		m.raw[i] = &addresses[1]
	}
	// 0xC000 - 0xFDFF - work RAM and its echo
	for i := 0xC000; i < 0xFE00; i++ {
		m.raw[i] = &addresses[3]
	}
	// 0xFE00 - 0xFE9F - OAM
	for i := 0xFE00; i < 0xFEA0; i++ {
		m.raw[i] = &addresses[4]
	}
	// 0xFEA0 - 0xFEFF - unusable
	for i := 0xFEA0; i < 0xFF00; i++ {
		m.raw[i] = &addresses[5]
	}
	// 0xFF00 - 0xFF7F - I/O registers
	for i := 0xFF00; i < 0xFF80; i++ {
		m.raw[i] = &addresses[6]
	}
	// 0xFF80 - 0xFFFE - high RAM
	for i := 0xFF80; i < 0xFFFF; i++ {
		m.raw[i] = &addresses[7]
	}
	// 0xFFFF - interrupt enable
	m.raw[0xFFFF] = &addresses[8]

	// interrupt flag is owned by the interrupt service
	m.ReserveAddress(types.IF, func(v uint8) uint8 {
		m.irq.WriteFlag(v)
		return m.irq.ReadFlag()
	})
	m.ReserveAddressRead(types.IF, m.irq.ReadFlag)

	// any write disables the boot ROM overlay
	m.ReserveAddress(types.BDIS, func(v uint8) uint8 {
		if !m.bootROMDone {
			m.Log.Debugf("boot ROM disabled (write %#02x)", v)
		}
		m.bootROMDone = true
		return v | 0x01
	})
}

// SetBootROM attaches a boot ROM image, mapping it over 0x0000 -
// 0x00FF until the disable register is written.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = false
}

// DisableBootROM unmaps the boot ROM overlay, as the skip-boot
// initialiser does in place of executing the image.
func (m *MMU) DisableBootROM() {
	m.bootROMDone = true
}

// ReserveAddress registers a write handler for an I/O register. Only
// one component may own a register.
func (m *MMU) ReserveAddress(addr uint16, handler WriteHandler) {
	if h := m.writeHandlers[addr&0x7F]; h != nil {
		panic(fmt.Sprintf("mmu: address %04X has already been reserved", addr))
	}
	m.writeHandlers[addr&0x7F] = handler
}

// ReserveAddressRead registers a read handler for an I/O register.
func (m *MMU) ReserveAddressRead(addr uint16, handler ReadHandler) {
	if h := m.readHandlers[addr&0x7F]; h != nil {
		panic(fmt.Sprintf("mmu: address %04X has already been reserved for reading", addr))
	}
	m.readHandlers[addr&0x7F] = handler
}

// Read returns the value at the given address. Every address in the
// 16-bit space resolves to exactly one region; there is no error
// path.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write stores the value at the given address, routing it to the
// owning region. Writes to read-only regions are accepted and have no
// storage effect.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

// Set stores directly into the backing storage of an I/O register or
// high-RAM address, bypassing any write handler. It is used to seed
// the post-boot register state.
func (m *MMU) Set(address uint16, value uint8) {
	switch {
	case address >= types.IOStart && address <= types.IOEnd:
		m.io[address&0x7F] = value
	case address >= types.HRAMStart && address <= types.HRAMEnd:
		m.hRAM[address&0x7F] = value
	default:
		m.Write(address, value)
	}
}

func (m *MMU) readROM(address uint16) uint8 {
	if m.bootROM != nil && !m.bootROMDone && address < 0x100 {
		return m.bootROM.Read(address)
	}
	return m.cart.Read(address)
}

func (m *MMU) readVRAM(address uint16) uint8 {
	return m.vRAM[address&0x1FFF]
}

func (m *MMU) writeVRAM(address uint16, value uint8) {
	m.vRAM[address&0x1FFF] = value
}

func (m *MMU) readOAM(address uint16) uint8 {
	return m.oam[address&0xFF]
}

func (m *MMU) writeOAM(address uint16, value uint8) {
	m.oam[address&0xFF] = value
}

func (m *MMU) readIO(address uint16) uint8 {
	if h := m.readHandlers[address&0x7F]; h != nil {
		return h()
	}
	return m.io[address&0x7F]
}

func (m *MMU) writeIO(address uint16, value uint8) {
	if h := m.writeHandlers[address&0x7F]; h != nil {
		value = h(value)
	}
	m.io[address&0x7F] = value
}

func (m *MMU) readHRAM(address uint16) uint8 {
	return m.hRAM[address&0x7F]
}

func (m *MMU) writeHRAM(address uint16, value uint8) {
	m.hRAM[address&0x7F] = value
}

// openBus is the fixed value returned for unbacked addresses.
func openBus(uint16) uint8 { return 0xFF }

func discard(uint16, uint8) {}
