package cpu

import "fmt"

// aluOps are the eight accumulator operations of the 0x80 - 0xBF
// block, in row order. The same table feeds the d8 forms at
// 0xC6 + op<<3.
var aluOps = [8]struct {
	format string
	fn     func(*CPU, uint8)
}{
	{"ADD A, %s", func(c *CPU, v uint8) { c.add(v, false) }},
	{"ADC A, %s", func(c *CPU, v uint8) { c.add(v, true) }},
	{"SUB %s", func(c *CPU, v uint8) { c.sub(v, false) }},
	{"SBC A, %s", func(c *CPU, v uint8) { c.sub(v, true) }},
	{"AND %s", (*CPU).and},
	{"XOR %s", (*CPU).xor},
	{"OR %s", (*CPU).or},
	{"CP %s", (*CPU).compare},
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})

	// 0x01, 0x11, 0x21 - LD rr, d16 and friends; the SP variants of
	// each row are defined separately below
	for i := uint8(0); i < 3; i++ {
		i := i
		DefineInstruction(0x01+i<<4, fmt.Sprintf("LD %s, d16", pairNames[i]), func(c *CPU) {
			c.registerPair(i).SetUint16(c.readOperand16())
		})
		DefineInstruction(0x03+i<<4, fmt.Sprintf("INC %s", pairNames[i]), func(c *CPU) {
			c.incrementNN(c.registerPair(i))
		})
		DefineInstruction(0x09+i<<4, fmt.Sprintf("ADD HL, %s", pairNames[i]), func(c *CPU) {
			c.addHLRR(c.registerPair(i).Uint16())
		})
		DefineInstruction(0x0B+i<<4, fmt.Sprintf("DEC %s", pairNames[i]), func(c *CPU) {
			c.decrementNN(c.registerPair(i))
		})
	}
	DefineInstruction(0x31, "LD SP, d16", func(c *CPU) { c.SP = c.readOperand16() })
	DefineInstruction(0x33, "INC SP", func(c *CPU) { c.SP++; c.tick(4) })
	DefineInstruction(0x39, "ADD HL, SP", func(c *CPU) { c.addHLRR(c.SP) })
	DefineInstruction(0x3B, "DEC SP", func(c *CPU) { c.SP--; c.tick(4) })

	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})

	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})

	// 0x04 - 0x3E - the INC r, DEC r and LD r, d8 columns; index 6 is
	// the (HL) memory operand
	for i := uint8(0); i < 8; i++ {
		i := i
		DefineInstruction(0x04+i<<3, fmt.Sprintf("INC %s", registerNames[i]), func(c *CPU) {
			c.setRegister(i, c.increment(c.getRegister(i)))
		})
		DefineInstruction(0x05+i<<3, fmt.Sprintf("DEC %s", registerNames[i]), func(c *CPU) {
			c.setRegister(i, c.decrement(c.getRegister(i)))
		})
		DefineInstruction(0x06+i<<3, fmt.Sprintf("LD %s, d8", registerNames[i]), func(c *CPU) {
			c.setRegister(i, c.readOperand())
		})
	}

	// the accumulator rotates always clear Z, unlike their CB
	// counterparts
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(flagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(flagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(flagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(flagZero)
	})

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		addr := c.readOperand16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	})

	DefineInstruction(0x10, "STOP", (*CPU).stop)
	DefineInstruction(0x76, "HALT", (*CPU).halt)

	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(true) })
	DefineInstruction(0x20, "JR NZ, r8", func(c *CPU) { c.jumpRelative(!c.isFlagSet(flagZero)) })
	DefineInstruction(0x28, "JR Z, r8", func(c *CPU) { c.jumpRelative(c.isFlagSet(flagZero)) })
	DefineInstruction(0x30, "JR NC, r8", func(c *CPU) { c.jumpRelative(!c.isFlagSet(flagCarry)) })
	DefineInstruction(0x38, "JR C, r8", func(c *CPU) { c.jumpRelative(c.isFlagSet(flagCarry)) })

	DefineInstruction(0x27, "DAA", (*CPU).daa)
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(flagSubtract)
		c.setFlag(flagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(flagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(flagZero), false, false, !c.isFlagSet(flagCarry))
	})

	// 0x40 - 0x7F - LD r, r' (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			dst, src := dst, src
			DefineInstruction(0x40+dst<<3+src, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), func(c *CPU) {
				c.setRegister(dst, c.getRegister(src))
			})
		}
	}

	// 0x80 - 0xBF - accumulator arithmetic and logic, plus the d8
	// forms at 0xC6 + op<<3
	for op := uint8(0); op < 8; op++ {
		op := op
		for src := uint8(0); src < 8; src++ {
			src := src
			DefineInstruction(0x80+op<<3+src, fmt.Sprintf(aluOps[op].format, registerNames[src]), func(c *CPU) {
				aluOps[op].fn(c, c.getRegister(src))
			})
		}
		DefineInstruction(0xC6+op<<3, fmt.Sprintf(aluOps[op].format, "d8"), func(c *CPU) {
			aluOps[op].fn(c, c.readOperand())
		})
	}

	// conditional returns pay a cycle to evaluate the condition
	DefineInstruction(0xC0, "RET NZ", func(c *CPU) { c.tick(4); c.ret(!c.isFlagSet(flagZero)) })
	DefineInstruction(0xC8, "RET Z", func(c *CPU) { c.tick(4); c.ret(c.isFlagSet(flagZero)) })
	DefineInstruction(0xD0, "RET NC", func(c *CPU) { c.tick(4); c.ret(!c.isFlagSet(flagCarry)) })
	DefineInstruction(0xD8, "RET C", func(c *CPU) { c.tick(4); c.ret(c.isFlagSet(flagCarry)) })
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret(true) })
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret(true)
		c.irq.SetIME(true)
	})

	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.jumpAbsolute(true) })
	DefineInstruction(0xC2, "JP NZ, a16", func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(flagZero)) })
	DefineInstruction(0xCA, "JP Z, a16", func(c *CPU) { c.jumpAbsolute(c.isFlagSet(flagZero)) })
	DefineInstruction(0xD2, "JP NC, a16", func(c *CPU) { c.jumpAbsolute(!c.isFlagSet(flagCarry)) })
	DefineInstruction(0xDA, "JP C, a16", func(c *CPU) { c.jumpAbsolute(c.isFlagSet(flagCarry)) })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })

	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(true) })
	DefineInstruction(0xC4, "CALL NZ, a16", func(c *CPU) { c.call(!c.isFlagSet(flagZero)) })
	DefineInstruction(0xCC, "CALL Z, a16", func(c *CPU) { c.call(c.isFlagSet(flagZero)) })
	DefineInstruction(0xD4, "CALL NC, a16", func(c *CPU) { c.call(!c.isFlagSet(flagCarry)) })
	DefineInstruction(0xDC, "CALL C, a16", func(c *CPU) { c.call(c.isFlagSet(flagCarry)) })

	// 0xC5, 0xD5, 0xE5 - PUSH rr / 0xC1, 0xD1, 0xE1 - POP rr
	for i := uint8(0); i < 3; i++ {
		i := i
		DefineInstruction(0xC5+i<<4, fmt.Sprintf("PUSH %s", pairNames[i]), func(c *CPU) {
			c.pushNN(c.registerPair(i))
		})
		DefineInstruction(0xC1+i<<4, fmt.Sprintf("POP %s", pairNames[i]), func(c *CPU) {
			c.popNN(c.registerPair(i))
		})
	}
	DefineInstruction(0xF5, "PUSH AF", func(c *CPU) { c.pushNN(c.AF) })
	// the low nibble of F is hard-wired to zero, even through POP
	DefineInstruction(0xF1, "POP AF", func(c *CPU) {
		c.popNN(c.AF)
		c.F &= 0xF0
	})

	// 0xC7 - 0xFF - RST vectors
	for i := uint8(0); i < 8; i++ {
		i := i
		DefineInstruction(0xC7+i<<3, fmt.Sprintf("RST %02XH", i*8), func(c *CPU) {
			c.rst(uint16(i) * 8)
		})
	}

	DefineInstruction(0xCB, "CB Prefix", func(c *CPU) {
		InstructionSetCB[c.readOperand()].fn(c)
	})

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.readOperand()), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.readOperand()))
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.C))
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.A)
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.A = c.readByte(c.readOperand16())
	})

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) {
		c.SP = c.addSPSigned()
		c.tick(4)
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tick(4)
	})

	DefineInstruction(0xF3, "DI", func(c *CPU) { c.irq.SetIME(false) })
	// EI takes effect after the next instruction
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		if !c.irq.IME && c.mode != ModeEnableIME {
			c.mode = ModeEnableIME
		}
	})
}
