// Package interrupts implements the interrupt controller: the IF and
// IE registers, the interrupt master enable, and the priority rule
// that decides which pending interrupt is serviced next.
package interrupts

// Source identifies one of the five interrupt sources, in priority
// order. A lower value wins when several sources are pending.
type Source uint8

const (
	// VBlank is requested every time the PPU enters the vertical
	// blanking period.
	VBlank Source = iota
	// LCD is requested by the STAT register when one of its
	// configured conditions is met.
	LCD
	// Timer is requested when TIMA overflows.
	Timer
	// Serial is requested when a serial transfer completes.
	Serial
	// Joypad is requested when a selected button line goes low.
	Joypad
)

func (s Source) String() string {
	return [...]string{"VBlank", "LCD", "Timer", "Serial", "Joypad"}[s]
}

// Mask returns the IF/IE bit for the source.
func (s Source) Mask() uint8 { return 1 << s }

// Vector returns the fixed dispatch address for the source.
func (s Source) Vector() uint16 { return 0x0040 + uint16(s)*8 }

// flagMask covers the five significant bits of IF and IE.
const flagMask = 0x1F

// Service owns the interrupt state. The Flag and Enable registers are
// exposed on the bus at 0xFF0F and 0xFFFF; IME is not memory mapped
// and is only toggled by the EI, DI and RETI instructions and by
// interrupt dispatch.
//
// External collaborators (timer, PPU, joypad, serial) call Request to
// raise their interrupt; the CPU calls Pending and Acknowledge when
// dispatching.
type Service struct {
	Flag   uint8 // IF
	Enable uint8 // IE
	IME    bool
}

// NewService returns a new Service with no interrupts pending.
func NewService() *Service {
	return &Service{}
}

// Request raises the interrupt for the given source by setting its
// bit in the Flag register.
func (s *Service) Request(src Source) {
	s.Flag |= src.Mask()
}

// HasPending reports whether any interrupt is both requested and
// enabled. IME is deliberately not consulted: a pending interrupt
// wakes the CPU from HALT even while IME is clear.
func (s *Service) HasPending() bool {
	return s.Enable&s.Flag&flagMask != 0
}

// Pending returns the highest-priority interrupt that is both
// requested and enabled, i.e. the lowest set bit of IE & IF.
func (s *Service) Pending() (Source, bool) {
	pending := s.Enable & s.Flag & flagMask
	if pending == 0 {
		return 0, false
	}
	for i := VBlank; i <= Joypad; i++ {
		if pending&i.Mask() != 0 {
			return i, true
		}
	}
	return 0, false
}

// Acknowledge clears the Flag bit for the source being serviced and
// clears IME, as the dispatch sequence does on hardware.
func (s *Service) Acknowledge(src Source) {
	s.Flag &^= src.Mask()
	s.IME = false
}

// SetIME sets the interrupt master enable directly. The
// one-instruction delay of EI is modelled by the CPU, which calls
// this only once the delay has elapsed.
func (s *Service) SetIME(v bool) {
	s.IME = v
}

// ReadFlag returns the IF register value as seen on the bus; the
// upper three bits are wired high.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag sets the IF register from a bus write; only the five
// significant bits are stored.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & flagMask
}
