// Command dmgcore runs a cartridge image headlessly and reports the
// result a conformance ROM leaves behind: the text printed over the
// serial port, and the status block the blargg suites write to
// external RAM.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"dmgcore/internal/gameboy"
)

// blargg result protocol: status byte at 0xA000 (0x80 while running),
// signature at 0xA001 - 0xA003, NUL-terminated text from 0xA004.
const (
	resultStatus = 0xA000
	resultText   = 0xA004
)

var resultSignature = [3]uint8{0xDE, 0xB0, 0x61}

func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load; without one the post-boot state is seeded")
	cycles := flag.Uint64("cycles", 100_000_000, "The T-cycle budget to run for")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if *romFile == "" {
		log.Fatal("no rom file given")
	}
	rom, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("unable to read rom: %v", err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(log)}
	if *bootROM != "" {
		boot, err := os.ReadFile(*bootROM)
		if err != nil {
			log.Fatalf("unable to read boot rom: %v", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		log.Fatalf("unable to create machine: %v", err)
	}

	runErr := gb.Run(*cycles)

	if out := gb.SerialOutput(); len(out) > 0 {
		log.Infof("serial output:\n%s", out)
	}

	if runErr != nil {
		log.Fatalf("execution faulted: %v", runErr)
	}

	// report the RAM result block when the ROM wrote one
	if sig := [3]uint8{gb.Read(0xA001), gb.Read(0xA002), gb.Read(0xA003)}; sig == resultSignature {
		status := gb.Read(resultStatus)
		var text []byte
		for addr := uint16(resultText); ; addr++ {
			b := gb.Read(addr)
			if b == 0 || addr == 0xBFFF {
				break
			}
			text = append(text, b)
		}
		log.Infof("result %#02x:\n%s", status, text)
		if status != 0 {
			os.Exit(int(status))
		}
	}
}
