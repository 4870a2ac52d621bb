package cpu

import "fmt"

// FaultError reports execution of one of the opcodes left undefined
// on hardware. The real CPU freezes when it fetches one; the core
// latches the fault, leaves PC on the faulting byte and refuses
// further steps, so the driver can observe the failure instead of the
// interpreter running off into whatever bytes follow.
type FaultError struct {
	Opcode uint8
	Addr   uint16
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode %#02x executed at %#04x", e.Opcode, e.Addr)
}
