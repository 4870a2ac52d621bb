package cpu

import "fmt"

// shiftOps are the eight rotate/shift operations of the first CB
// quadrant, in row order.
var shiftOps = [8]struct {
	format string
	fn     func(*CPU, uint8) uint8
}{
	{"RLC %s", (*CPU).rotateLeftCarry},
	{"RRC %s", (*CPU).rotateRightCarry},
	{"RL %s", (*CPU).rotateLeftThroughCarry},
	{"RR %s", (*CPU).rotateRightThroughCarry},
	{"SLA %s", (*CPU).shiftLeftArithmetic},
	{"SRA %s", (*CPU).shiftRightArithmetic},
	{"SWAP %s", (*CPU).swap},
	{"SRL %s", (*CPU).shiftRightLogical},
}

func init() {
	// 0x00 - 0x3F - rotates and shifts
	for op := uint8(0); op < 8; op++ {
		for reg := uint8(0); reg < 8; reg++ {
			op, reg := op, reg
			DefineInstructionCB(op<<3|reg, fmt.Sprintf(shiftOps[op].format, registerNames[reg]), func(c *CPU) {
				c.setRegister(reg, shiftOps[op].fn(c, c.getRegister(reg)))
			})
		}
	}

	// 0x40 - 0x7F - BIT, 0x80 - 0xBF - RES, 0xC0 - 0xFF - SET
	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			bit, reg := bit, reg
			DefineInstructionCB(0x40|bit<<3|reg, fmt.Sprintf("BIT %d, %s", bit, registerNames[reg]), func(c *CPU) {
				c.testBit(c.getRegister(reg), 1<<bit)
			})
			DefineInstructionCB(0x80|bit<<3|reg, fmt.Sprintf("RES %d, %s", bit, registerNames[reg]), func(c *CPU) {
				c.setRegister(reg, c.getRegister(reg)&^(1<<bit))
			})
			DefineInstructionCB(0xC0|bit<<3|reg, fmt.Sprintf("SET %d, %s", bit, registerNames[reg]), func(c *CPU) {
				c.setRegister(reg, c.getRegister(reg)|1<<bit)
			})
		}
	}
}
