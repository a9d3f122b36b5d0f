package z80

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/jchacon/z80/irqline"
)

// flatMemory is a 64KiB RAM bank used directly as a MemoryBus (and, through
// ioAdapter, as an IOBus), the same minimal shape the teacher's cpu_test.go flatMemory gives its 6502.
type flatMemory struct {
	addr [65536]uint8
	in   [256]uint8
	out  [256]uint8
}

func (m *flatMemory) Read(addr uint16) uint8       { return m.addr[addr] }
func (m *flatMemory) Write(addr uint16, v uint8)   { m.addr[addr] = v }
func (m *flatMemory) ReadIO(port uint16) uint8     { return m.in[uint8(port)] }
func (m *flatMemory) WriteIO(port uint16, v uint8) { m.out[uint8(port)] = v }

type ioAdapter struct{ m *flatMemory }

func (a ioAdapter) Read(port uint16) uint8     { return a.m.ReadIO(port) }
func (a ioAdapter) Write(port uint16, v uint8) { a.m.WriteIO(port, v) }

func setup(t *testing.T, program []uint8) (*CPU, *flatMemory) {
	t.Helper()
	mem := &flatMemory{}
	copy(mem.addr[0x0000:], program)
	c, err := New(Config{Mem: mem, IO: ioAdapter{mem}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetPC(0x0000)
	return c, mem
}

func run(c *CPU, instructions int) {
	for i := 0; i < instructions; i++ {
		c.ExecuteRun(1)
	}
}

func TestAddFlags(t *testing.T) {
	// LD A,0xF0 ; ADD A,0x10 -> A=0x00, Z set, C set, H clear.
	c, _ := setup(t, []uint8{0x3e, 0xf0, 0xc6, 0x10})
	run(c, 2)
	if got, want := c.AF()>>8, uint16(0x00); got != want {
		t.Errorf("A = %#02x, want %#02x", got, want)
	}
	f := uint8(c.AF())
	if f&FlagZ == 0 {
		t.Errorf("F = %#02x, want ZF set", f)
	}
	if f&FlagC == 0 {
		t.Errorf("F = %#02x, want CF set", f)
	}
}

func TestCPYXFromOperandNotResult(t *testing.T) {
	// LD A,0x00 ; CP 0x2A -- Y/X must come from 0x2A (bit5=1,bit3=1), not
	// from the subtraction result 0xD6 (bit5=0,bit3=0) (§4.3).
	c, _ := setup(t, []uint8{0x3e, 0x00, 0xfe, 0x2a})
	run(c, 2)
	f := uint8(c.AF())
	if f&FlagY == 0 {
		t.Errorf("F = %#02x, want YF set from operand bit 5", f)
	}
	if f&FlagX == 0 {
		t.Errorf("F = %#02x, want XF set from operand bit 3", f)
	}
}

func TestRefreshRegisterIncrementsAndWraps(t *testing.T) {
	c, mem := setup(t, nil)
	for i := range mem.addr {
		mem.addr[i] = 0x00 // NOP
	}
	c.SetR(0x7f)
	run(c, 1)
	if got, want := c.R(), uint8(0x00); got != want {
		t.Errorf("R after wrap = %#02x, want %#02x", got, want)
	}
	c.SetR(0x80) // bit 7 set, low 7 bits zero
	run(c, 1)
	if got, want := c.R(), uint8(0x81); got != want {
		t.Errorf("R = %#02x, want %#02x (bit 7 preserved)", got, want)
	}
}

func TestWZAfterLDAIndirect(t *testing.T) {
	// LD A,(0x1234) leaves WZ = 0x1235.
	c, mem := setup(t, []uint8{0x3a, 0x34, 0x12})
	mem.addr[0x1234] = 0x42
	run(c, 1)
	if got, want := c.AF()>>8, uint16(0x42); got != want {
		t.Errorf("A = %#02x, want %#02x", got, want)
	}
	if got, want := c.WZ(), uint16(0x1235); got != want {
		t.Errorf("WZ = %#04x, want %#04x", got, want)
	}
}

func TestLDIndirectHLRoundTrip(t *testing.T) {
	// LD HL,0xBEEF ; LD (0x2000),HL ; LD HL,0x0000 ; LD HL,(0x2000).
	c, _ := setup(t, []uint8{
		0x21, 0xef, 0xbe,
		0x22, 0x00, 0x20,
		0x21, 0x00, 0x00,
		0x2a, 0x00, 0x20,
	})
	run(c, 4)
	if got, want := c.HL(), uint16(0xbeef); got != want {
		t.Errorf("HL = %#04x, want %#04x", got, want)
	}
}

func TestHaltResumesOnInterrupt(t *testing.T) {
	// HALT at 0x0000, IM1 vector 0x0038 has a NOP so we can tell it fired.
	c, mem := setup(t, []uint8{0x76})
	mem.addr[0x0038] = 0x00
	c.SetIM(1)
	c.SetIFF1(true)

	haltedPC := c.PC()
	for i := 0; i < 5; i++ {
		c.ExecuteRun(1)
		if c.PC() != haltedPC {
			t.Fatalf("PC advanced to %#04x before interrupt accepted", c.PC())
		}
		if !c.Halted() {
			t.Fatalf("CPU left halt state unexpectedly")
		}
	}

	c.SetInput(irqline.IRQ0, irqline.Assert)
	c.ExecuteRun(1)
	if c.Halted() {
		t.Errorf("CPU still halted after accepted interrupt")
	}
	// The same instruction boundary that accepts the interrupt also fetches
	// and executes the NOP now sitting at the IM1 vector, so PC has already
	// moved one byte past 0x0038.
	if got, want := c.PC(), uint16(0x0039); got != want {
		t.Errorf("PC = %#04x, want %#04x (past the IM1 vector's NOP)", got, want)
	}
}

func TestNMITakesPriorityAndDoesNotClearIFF2(t *testing.T) {
	c, _ := setup(t, []uint8{0x00, 0x00, 0x00})
	c.SetIM(1)
	c.SetIFF1(true)
	c.SetIFF2(true)
	// A maskable IRQ is pending at the same boundary; NMI must win.
	c.SetInput(irqline.IRQ0, irqline.Assert)
	c.SetInput(irqline.NMI, irqline.Assert)
	run(c, 1)
	// Taking the NMI and executing the NOP now sitting at its vector happen
	// within the same instruction boundary, so PC has moved one byte past
	// the vector address itself.
	if got, want := c.PC(), uint16(0x0067); got != want {
		t.Errorf("PC = %#04x, want %#04x (past the NMI vector's NOP)", got, want)
	}
	if c.IFF1() {
		t.Errorf("IFF1 still set after NMI")
	}
	if !c.IFF2() {
		t.Errorf("IFF2 cleared by NMI, should only be IFF1")
	}
}

func TestEIDelaysInterruptSampling(t *testing.T) {
	// EI immediately followed by NOP: an IRQ pending before EI must not be
	// taken until after the instruction following EI has executed.
	c, _ := setup(t, []uint8{0xfb, 0x00, 0x00})
	c.SetIM(1)
	c.SetIFF1(false)
	c.SetInput(irqline.IRQ0, irqline.Assert)

	run(c, 1) // EI
	if c.IFF1() != true {
		t.Fatalf("IFF1 not set after EI")
	}
	run(c, 1) // the NOP EI protects; IRQ must still be pending, not taken
	if got, want := c.PC(), uint16(0x0002); got != want {
		t.Errorf("PC = %#04x, want %#04x: IRQ should not fire on the instruction right after EI", got, want)
	}
	run(c, 1) // now it may fire; the same boundary also executes the vector's NOP
	if got, want := c.PC(), uint16(0x0039); got != want {
		t.Errorf("PC = %#04x, want %#04x: IRQ should fire once the EI delay has elapsed", got, want)
	}
}

func TestCPIDecrementsBCAndAdvancesHL(t *testing.T) {
	// ED A1 = CPI. HL points at a byte equal to A; BC is the remaining count.
	c, mem := setup(t, []uint8{0xed, 0xa1})
	mem.addr[0x3000] = 0x42
	c.SetHL(0x3000)
	c.SetBC(0x0001)
	c.SetAF(0x4200) // A = 0x42
	run(c, 1)
	if got, want := c.HL(), uint16(0x3001); got != want {
		t.Errorf("HL = %#04x, want %#04x", got, want)
	}
	if got, want := c.BC(), uint16(0x0000); got != want {
		t.Errorf("BC = %#04x, want %#04x", got, want)
	}
	if f := uint8(c.AF()); f&FlagZ == 0 {
		t.Errorf("F = %#02x, want ZF set (match found)", f)
	}
}

func TestDDPrefixRemapsHLToIX(t *testing.T) {
	// DD 21 = LD IX,nn; DD 7E 02 = LD A,(IX+2).
	c, mem := setup(t, []uint8{0xdd, 0x21, 0x00, 0x40, 0xdd, 0x7e, 0x02})
	mem.addr[0x4002] = 0x99
	run(c, 2)
	if got, want := c.AF()>>8, uint16(0x99); got != want {
		t.Errorf("A = %#02x, want %#02x", got, want)
	}
}

func TestIllegalDDFallsThroughToUnprefixed(t *testing.T) {
	// DD 04 (INC B) doesn't touch H/L/(HL): it must behave exactly like
	// the unprefixed INC B, just slower, and log an illegal-opcode note.
	c, _ := setup(t, []uint8{0xdd, 0x04})
	c.SetBC(0x0100)
	var logged []string
	c.illegalLog = func(s string) { logged = append(logged, s) }
	run(c, 1)
	if got, want := c.BC(), uint16(0x0200); got != want {
		t.Errorf("BC = %#04x, want %#04x", got, want)
	}
	if len(logged) != 1 {
		t.Errorf("illegal log calls = %d, want 1: %v", len(logged), logged)
	}
}

// snapshot captures the CPU's externally visible state for deep-diff
// assertions, the same role cpu_test.go's register dump plays for the
// teacher's 6502.
type snapshot struct {
	AF, BC, DE, HL, IX, IY, WZ, PC, SP uint16
	R                                  uint8
}

func snap(c *CPU) snapshot {
	return snapshot{c.AF(), c.BC(), c.DE(), c.HL(), c.IX(), c.IY(), c.WZ(), c.PC(), c.SP(), c.R()}
}

func TestIdenticalProgramsConverge(t *testing.T) {
	a, _ := setup(t, []uint8{0x3c}) // INC A
	b, _ := setup(t, []uint8{0x3c})
	run(a, 1)
	run(b, 1)
	if diff := deep.Equal(snap(a), snap(b)); diff != nil {
		t.Errorf("identical programs diverged: %v\na=%s\nb=%s", diff, spew.Sdump(snap(a)), spew.Sdump(snap(b)))
	}
}
