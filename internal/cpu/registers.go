package cpu

// Register is one of the eight 8-bit registers.
type Register = uint8

// RegisterPair is a 16-bit view over two 8-bit registers, high byte
// first. The pair aliases the underlying registers rather than
// storing its own value, so writing through either view is always
// visible through the other.
type RegisterPair [2]*Register

// Uint16 returns the combined 16-bit value of the pair.
func (r RegisterPair) Uint16() uint16 {
	return uint16(*r[0])<<8 | uint16(*r[1])
}

// SetUint16 writes the 16-bit value back into the two registers.
func (r RegisterPair) SetUint16(v uint16) {
	*r[0] = uint8(v >> 8)
	*r[1] = uint8(v)
}

// Registers contains the 8-bit registers and the 16-bit pair views
// over them. All values wrap modulo their bit width; no register
// operation can fail.
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	AF RegisterPair
	BC RegisterPair
	DE RegisterPair
	HL RegisterPair
}

// getRegister reads the register selected by a 3-bit operand index
// (B, C, D, E, H, L, (HL), A). Index 6 is the memory operand and
// costs a bus read.
func (c *CPU) getRegister(idx uint8) uint8 {
	switch idx & 0x7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL.Uint16())
	default:
		return c.A
	}
}

// setRegister writes the register selected by a 3-bit operand index.
// Index 6 is the memory operand and costs a bus write.
func (c *CPU) setRegister(idx uint8, v uint8) {
	switch idx & 0x7 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeByte(c.HL.Uint16(), v)
	default:
		c.A = v
	}
}
