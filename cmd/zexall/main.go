// Command zexall is a thin CP/M-style driver for running ZEXALL/ZEXDOC
// style .com exercisers against the z80 core. It is not part of the core
// itself (spec.md keeps the core free of host/file concerns); it exists so
// the core's correctness is exercisable end to end from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jchacon/z80/ioport"
	"github.com/jchacon/z80/memory"
	"github.com/jchacon/z80/z80"
)

var (
	startPC   uint16
	maxCycles int64
)

func main() {
	root := &cobra.Command{
		Use:   "zexall <image.com>",
		Short: "Run a CP/M-style Z80 exerciser image against the z80 core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	root.Flags().Uint16Var(&startPC, "start-pc", 0x100, "PC value the image is loaded and started at")
	root.Flags().Int64Var(&maxCycles, "max-cycles", 20_000_000_000, "T-state ceiling before the run is aborted")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bdosVector is the fixed CP/M BDOS entry point; ZEXALL-style images CALL
// here for the two functions they need (C=2 write-char, C=9 write-string
// terminated by '$') and expect a RET back to the caller.
const bdosVector = 0x0005

func run(path string) error {
	img, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	bank, err := memory.NewRAM(1<<16, nil)
	if err != nil {
		return err
	}
	bank.PowerOn()
	memory.LoadImage(bank, startPC, img)
	// 0x0000 is the CP/M warm boot vector. The driver loop stops as soon as
	// PC reaches it, so the RET placed there is never executed.
	bank.Write(0x0000, 0xc9)
	bank.Write(bdosVector, 0xc9)

	// ZEXALL/ZEXDOC-style images issue no IN/OUT of their own, but a real
	// board always has some I/O bus wired up; an empty one (every port
	// floats to 0xFF) is the accurate stand-in rather than a nil IOBus.
	io := ioport.NewBus()
	c, err := z80.New(z80.Config{Mem: bank, IO: io})
	if err != nil {
		return err
	}
	c.SetPC(startPC)
	c.SetSP(0xfffe)

	var total int64
	// ExecuteRun carries its leftover (zero or negative) budget into the
	// next call, so each call's consumption is prev+1-remaining.
	prev := 0
	for {
		pc := c.PC()
		if pc == 0x0000 {
			fmt.Println("\n[zexall] program returned to 0x0000, stopping")
			return nil
		}
		if pc == bdosVector {
			bdosCall(c, bank)
			continue
		}
		remaining := c.ExecuteRun(1)
		total += int64(prev) + 1 - int64(remaining)
		prev = remaining
		if total >= maxCycles {
			fmt.Printf("\n[zexall] aborting after %d T-states (max-cycles reached)\n", total)
			return nil
		}
	}
}

// bdosCall emulates the two CP/M BDOS functions ZEXALL/ZEXDOC actually use
// and then performs the RET the real routine would have done.
func bdosCall(c *z80.CPU, bank memory.Bank) {
	switch uint8(c.BC()) {
	case 2:
		fmt.Printf("%c", uint8(c.DE()))
	case 9:
		for addr := c.DE(); bank.Read(addr) != '$'; addr++ {
			fmt.Printf("%c", bank.Read(addr))
		}
	}
	var ret pairReader
	ret.lo = bank.Read(c.SP())
	ret.hi = bank.Read(c.SP() + 1)
	c.SetSP(c.SP() + 2)
	c.SetPC(ret.w())
}

type pairReader struct{ lo, hi uint8 }

func (p pairReader) w() uint16 { return uint16(p.hi)<<8 | uint16(p.lo) }
