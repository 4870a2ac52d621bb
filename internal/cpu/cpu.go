// Package cpu implements the SM83 core: the register file, the base
// and CB instruction sets, and the driver loop that sequences fetch,
// interrupt dispatch and the halt states. Time is counted in T-cycles;
// every bus access costs 4 and the per-instruction totals follow from
// the accesses each instruction performs.
package cpu

import (
	"dmgcore/internal/interrupts"
	"dmgcore/internal/mmu"
	"dmgcore/internal/types"
)

const (
	// ModeNormal is the default mode, the CPU will execute the next
	// instruction.
	ModeNormal = iota
	// ModeHalt is entered by HALT with IME set; the CPU idles until an
	// interrupt is both requested and enabled, then services it.
	ModeHalt
	// ModeStop is entered by STOP; the CPU idles until it is resumed
	// externally.
	ModeStop
	// ModeHaltBug is entered by HALT with IME clear while an interrupt
	// is already pending: the instruction after HALT has its first
	// byte fetched twice.
	ModeHaltBug
	// ModeHaltDI is entered by HALT with IME clear and nothing
	// pending; a later pending interrupt wakes the CPU without being
	// serviced.
	ModeHaltDI
	// ModeEnableIME is the one-instruction window after EI; IME is set
	// just before the next instruction executes.
	ModeEnableIME
)

// CPU is the processor core. It owns the register file and the current
// execution mode, and drives the bus for every fetch and operand
// access.
type CPU struct {
	// PC is the program counter, it points to the next instruction to
	// be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit
	// pair views over them.
	Registers

	mmu *mmu.MMU
	irq *interrupts.Service

	mode        uint8
	fault       *FaultError
	currentTick uint8
}

// NewCPU creates a new CPU instance attached to the given bus and
// interrupt service. All registers start at zero, as at power on with
// a boot ROM mapped.
func NewCPU(bus *mmu.MMU, irq *interrupts.Service) *CPU {
	c := &CPU{
		mmu: bus,
		irq: irq,
	}

	c.AF = RegisterPair{&c.A, &c.F}
	c.BC = RegisterPair{&c.B, &c.C}
	c.DE = RegisterPair{&c.D, &c.E}
	c.HL = RegisterPair{&c.H, &c.L}

	return c
}

// Step executes one unit of work: a single instruction, one interrupt
// dispatch, or one idle machine cycle when halted or stopped. It
// returns the number of T-cycles consumed.
//
// Once a fault has been latched Step performs no work and keeps
// returning the fault; PC stays on the faulting byte.
func (c *CPU) Step() (uint8, error) {
	if c.fault != nil {
		return 0, c.fault
	}
	c.currentTick = 0

	// a pending interrupt ends the halt state even with IME clear,
	// the dispatch itself still requires IME
	if (c.mode == ModeHalt || c.mode == ModeHaltDI) && c.irq.HasPending() {
		c.mode = ModeNormal
	}

	if c.mode == ModeHalt || c.mode == ModeStop {
		c.tick(4)
		return c.currentTick, nil
	}

	if c.irq.IME && c.irq.HasPending() {
		c.executeInterrupt()
		return c.currentTick, nil
	}

	switch c.mode {
	case ModeEnableIME:
		// EI takes effect after the following instruction, which has
		// already been reached here without a dispatch check
		c.irq.SetIME(true)
		c.mode = ModeNormal
		c.execute(c.readInstruction())
	case ModeHaltBug:
		opcode := c.readInstruction()
		c.PC--
		c.mode = ModeNormal
		c.execute(opcode)
	default:
		c.execute(c.readInstruction())
	}

	if c.fault != nil {
		return c.currentTick, c.fault
	}
	return c.currentTick, nil
}

// Resume leaves the stop state. It is the external wake-up that STOP
// waits for; it has no effect in any other mode.
func (c *CPU) Resume() {
	if c.mode == ModeStop {
		c.mode = ModeNormal
	}
}

// Fault returns the latched illegal-opcode fault, or nil.
func (c *CPU) Fault() *FaultError {
	return c.fault
}

// Snapshot is a copy of the programmer-visible processor state.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	Halted                 bool
	Stopped                bool
}

// Snapshot captures the current processor state for inspection.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C,
		D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME:     c.irq.IME,
		Halted:  c.mode == ModeHalt || c.mode == ModeHaltDI,
		Stopped: c.mode == ModeStop,
	}
}

// executeInterrupt transfers control to the vector of the
// highest-priority pending interrupt: 2 idle machine cycles, 2 stack
// writes, 1 cycle to load PC. 20 T-cycles in total.
func (c *CPU) executeInterrupt() {
	src, ok := c.irq.Pending()
	if !ok {
		return
	}

	c.tick(8)
	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))

	c.irq.Acknowledge(src)
	c.PC = src.Vector()
	c.tick(4)
}

// execute runs a single instruction from the base table.
func (c *CPU) execute(opcode uint8) {
	InstructionSet[opcode].fn(c)
}

// halt implements the HALT instruction's three outcomes, decided by
// IME and the pending set at the moment HALT executes.
func (c *CPU) halt() {
	if c.irq.IME {
		c.mode = ModeHalt
	} else if c.irq.HasPending() {
		c.mode = ModeHaltBug
	} else {
		c.mode = ModeHaltDI
	}
}

// stop implements the STOP instruction: consume the padding byte,
// reset the divider, and idle until resumed. With an interrupt already
// pending the stop state is not entered.
func (c *CPU) stop() {
	c.PC++
	c.mmu.Write(types.DIV, 0)
	if !c.irq.HasPending() {
		c.mode = ModeStop
	}
}

// readInstruction fetches the opcode byte at PC.
func (c *CPU) readInstruction() uint8 {
	value := c.mmu.Read(c.PC)
	c.tick(4)
	c.PC++
	return value
}

// readOperand fetches the next operand byte at PC.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 fetches a little-endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	lo := c.readOperand()
	hi := c.readOperand()
	return uint16(hi)<<8 | uint16(lo)
}

// skipOperand advances PC past an operand byte without using its
// value. The bus cycle is still paid.
func (c *CPU) skipOperand() {
	c.tick(4)
	c.PC++
}

func (c *CPU) readByte(addr uint16) uint8 {
	value := c.mmu.Read(addr)
	c.tick(4)
	return value
}

func (c *CPU) writeByte(addr uint16, value uint8) {
	c.mmu.Write(addr, value)
	c.tick(4)
}

func (c *CPU) tick(cycles uint8) {
	c.currentTick += cycles
}
