package cpu

import "fmt"

// Instruction is a single entry of a dispatch table: a mnemonic for
// debugging and the function that performs the operation.
type Instruction struct {
	name string
	fn   func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet is the base table, indexed by opcode.
var InstructionSet [256]Instruction

// InstructionSetCB is the CB-prefixed table, indexed by the byte
// following the 0xCB prefix.
var InstructionSetCB [256]Instruction

// DefineInstruction registers an instruction in the base table. Each
// opcode may only be defined once.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	if InstructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode %#02x (%s) already defined as %s", opcode, name, InstructionSet[opcode].name))
	}
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB registers an instruction in the CB table.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	if InstructionSetCB[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: CB opcode %#02x (%s) already defined as %s", opcode, name, InstructionSetCB[opcode].name))
	}
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// registerNames maps the 3-bit operand index to its mnemonic.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// pairNames maps the 2-bit pair index to its mnemonic for the rr
// instruction rows.
var pairNames = [3]string{"BC", "DE", "HL"}

// registerPair returns the pair selected by a 2-bit index in the BC,
// DE, HL rows. SP shares the encoding slot 3 but is not a pair; the
// SP variants are defined explicitly.
func (c *CPU) registerPair(idx uint8) RegisterPair {
	switch idx {
	case 0:
		return c.BC
	case 1:
		return c.DE
	default:
		return c.HL
	}
}

// illegalOpcodes are the eleven encodings left undefined on hardware.
// Executing one latches a fault; see FaultError.
var illegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func init() {
	for _, opcode := range illegalOpcodes {
		opcode := opcode
		DefineInstruction(opcode, fmt.Sprintf("ILLEGAL(%#02x)", opcode), func(c *CPU) {
			c.PC--
			c.fault = &FaultError{Opcode: opcode, Addr: c.PC}
		})
	}
}
