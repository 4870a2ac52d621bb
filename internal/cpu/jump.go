package cpu

// jumpRelative jumps PC by the signed 8-bit operand when the
// condition holds. The operand byte is consumed either way.
func (c *CPU) jumpRelative(condition bool) {
	if condition {
		offset := int8(c.readOperand())
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.tick(4)
	} else {
		c.skipOperand()
	}
}

// jumpAbsolute jumps PC to the 16-bit operand when the condition
// holds. Both operand bytes are consumed either way.
func (c *CPU) jumpAbsolute(condition bool) {
	if condition {
		c.PC = c.readOperand16()
		c.tick(4)
	} else {
		c.skipOperand()
		c.skipOperand()
	}
}

// call pushes the return address and jumps to the 16-bit operand when
// the condition holds.
func (c *CPU) call(condition bool) {
	if condition {
		addr := c.readOperand16()
		c.push(uint8(c.PC>>8), uint8(c.PC))
		c.PC = addr
	} else {
		c.skipOperand()
		c.skipOperand()
	}
}

// ret pops the return address into PC when the condition holds. The
// extra condition-check cycle of the conditional forms is ticked at
// the instruction definition.
func (c *CPU) ret(condition bool) {
	if condition {
		c.PC = c.popStack()
		c.tick(4)
	}
}

// rst pushes the return address and jumps to one of the fixed restart
// vectors.
func (c *CPU) rst(addr uint16) {
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = addr
}

// push writes two bytes onto the stack, high byte first, after the
// internal pre-decrement cycle.
func (c *CPU) push(high, low uint8) {
	c.tick(4)
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// popStack reads a little-endian 16-bit value off the stack.
func (c *CPU) popStack() uint16 {
	lo := c.readByte(c.SP)
	c.SP++
	hi := c.readByte(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// pushNN pushes the given RegisterPair onto the stack.
func (c *CPU) pushNN(register RegisterPair) {
	c.push(*register[0], *register[1])
}

// popNN pops the stack into the given RegisterPair.
func (c *CPU) popNN(register RegisterPair) {
	register.SetUint16(c.popStack())
}
