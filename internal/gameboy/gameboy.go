// Package gameboy assembles the CPU, bus and peripherals into a
// steppable machine. It owns the power-on sequence: either a boot ROM
// image is mapped and executed, or the post-boot register state is
// seeded directly and execution starts at the cartridge entry point.
package gameboy

import (
	"github.com/sirupsen/logrus"

	"dmgcore/internal/boot"
	"dmgcore/internal/cartridge"
	"dmgcore/internal/cpu"
	"dmgcore/internal/interrupts"
	"dmgcore/internal/joypad"
	"dmgcore/internal/mmu"
	"dmgcore/internal/serial"
	"dmgcore/internal/timer"
	"dmgcore/internal/types"
)

// GameBoy is the assembled machine.
type GameBoy struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	Timer     *timer.Controller
	Serial    *serial.Controller
	Joypad    *joypad.State
	Cartridge *cartridge.Cartridge

	irq *interrupts.Service
	Log logrus.FieldLogger

	bootROMData []byte
}

// Opt configures the machine before power on.
type Opt func(gb *GameBoy)

// WithBootROM maps the given boot ROM image at 0x0000 - 0x00FF; the
// machine then starts at PC 0 with zeroed registers, and the image is
// responsible for reaching the cartridge entry point.
func WithBootROM(data []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROMData = data
	}
}

// WithLogger replaces the default logger.
func WithLogger(log logrus.FieldLogger) Opt {
	return func(gb *GameBoy) {
		gb.Log = log
	}
}

// New builds a machine around the given cartridge image. Without a
// boot ROM option the post-boot state is seeded so that execution
// starts at 0x0100, as if the boot ROM had already run and handed
// over.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	bus := mmu.NewMMU(cart, irq)

	g := &GameBoy{
		CPU:       cpu.NewCPU(bus, irq),
		MMU:       bus,
		Timer:     timer.NewController(bus, irq),
		Serial:    serial.NewController(bus, irq),
		Joypad:    joypad.New(bus, irq),
		Cartridge: cart,
		irq:       irq,
		Log:       bus.Log,
	}

	for _, opt := range opts {
		opt(g)
	}
	bus.Log = g.Log
	g.Log.Debugf("cartridge: %s", cart.Header())

	if g.bootROMData != nil {
		b, err := boot.Load(g.bootROMData)
		if err != nil {
			return nil, err
		}
		bus.SetBootROM(b)
		g.Log.Debugf("boot ROM %s mapped (%s)", b.Checksum(), b.Model())
	} else {
		g.skipBoot()
	}

	return g, nil
}

// Step executes one unit of CPU work and advances the peripherals by
// the cycles it consumed. It returns the cycle count; once the CPU
// has latched an illegal-opcode fault the error is returned on this
// and every following call.
func (g *GameBoy) Step() (uint8, error) {
	cycles, err := g.CPU.Step()
	g.Timer.Tick(cycles)
	return cycles, err
}

// Run steps the machine until the cycle budget is spent or a fault is
// latched.
func (g *GameBoy) Run(budget uint64) error {
	var elapsed uint64
	for elapsed < budget {
		cycles, err := g.Step()
		if err != nil {
			return err
		}
		elapsed += uint64(cycles)
	}
	return nil
}

// RequestInterrupt raises the interrupt for the given source, as an
// external peripheral would.
func (g *GameBoy) RequestInterrupt(src interrupts.Source) {
	g.irq.Request(src)
}

// Resume wakes the CPU from the stop state.
func (g *GameBoy) Resume() {
	g.CPU.Resume()
}

// Read returns the value at the given bus address.
func (g *GameBoy) Read(addr uint16) uint8 {
	return g.MMU.Read(addr)
}

// Write stores the value at the given bus address.
func (g *GameBoy) Write(addr uint16, value uint8) {
	g.MMU.Write(addr, value)
}

// SerialOutput returns everything written to the serial port so far.
func (g *GameBoy) SerialOutput() []byte {
	return g.Serial.Output()
}

// skipBoot seeds the register and I/O state the DMG boot ROM leaves
// behind, then starts execution at the cartridge entry point.
func (g *GameBoy) skipBoot() {
	c := g.CPU
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100

	// I/O register values after the boot ROM has run; stored directly
	// so the write handlers do not fire
	for _, seed := range []struct {
		addr  uint16
		value uint8
	}{
		{types.SB, 0x00},
		{types.SC, 0x7E},
		{types.TIMA, 0x00},
		{types.TMA, 0x00},
		{types.TAC, 0xF8},
		{types.LCDC, 0x91},
		{types.STAT, 0x85},
		{types.SCY, 0x00},
		{types.SCX, 0x00},
		{types.LY, 0x00},
		{types.LYC, 0x00},
		{types.DMA, 0xFF},
		{types.BGP, 0xFC},
		{types.WY, 0x00},
		{types.WX, 0x00},
	} {
		g.MMU.Set(seed.addr, seed.value)
	}

	// the boot ROM leaves a VBlank request behind
	g.irq.WriteFlag(0xE1)
	g.MMU.DisableBootROM()
}
