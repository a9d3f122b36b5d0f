// Package z80 implements a cycle-accurate interpreter for the Zilog Z80
// 8-bit CPU: the full documented and commonly relied-upon undocumented
// opcode repertoire (main page plus CB/DD/ED/FD/DDCB/FDCB prefix pages),
// undocumented flag bits 3 and 5, the internal WZ (MEMPTR) register, the
// split R refresh register, interrupt modes 0/1/2, NMI, HALT, and
// per-instruction T-state accounting.
//
// The core is deliberately thin at its edges: it knows nothing about
// files, terminals or save states. A host binds two bus handles (memory
// and I/O) and drives the CPU by calling ExecuteRun in cycle slices.
package z80

import (
	"fmt"
	"log"

	"github.com/jchacon/z80/irqline"
)

// Flag bit layout of the F register: S Z Y H X P/V N C.
const (
	FlagC uint8 = 0x01 // Carry
	FlagN uint8 = 0x02 // Subtract
	FlagP uint8 = 0x04 // Parity/overflow
	FlagV uint8 = FlagP
	FlagX uint8 = 0x08 // Undocumented, copy of bit 3
	FlagH uint8 = 0x10 // Half carry
	FlagY uint8 = 0x20 // Undocumented, copy of bit 5
	FlagZ uint8 = 0x40 // Zero
	FlagS uint8 = 0x80 // Sign
)

// Interrupt modes.
const (
	IM0 = 0
	IM1 = 1
	IM2 = 2
)

// InvalidCPUState represents a programmer-error contract violation (§7.3
// of the spec this core implements): a malformed Config, or an internal
// precondition that should be impossible to reach from valid opcodes.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid z80 CPU state: %s", e.Reason)
}

// pair is a 16-bit register addressable as a word or as independent high
// and low bytes, the Go equivalent of the union the spec suggests for
// register-pair storage.
type pair struct {
	Hi, Lo uint8
}

func (p pair) W() uint16 {
	return uint16(p.Hi)<<8 | uint16(p.Lo)
}

func (p *pair) SetW(v uint16) {
	p.Hi = uint8(v >> 8)
	p.Lo = uint8(v)
}

// MemoryBus is the data-memory bus role (§4.1). The core also uses it by
// default for opcode-fetch and argument-fetch unless SetOpcodeBus/SetArgBus
// install a distinct handler.
type MemoryBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// IOBus is the I/O bus role; addr is the full 16-bit bus value presented
// during IN/OUT (B/C or the high byte of a 16-bit port op, per §4.1).
type IOBus interface {
	Read(port uint16) uint8
	Write(port uint16, val uint8)
}

// IRQVectorFunc supplies the IM 0 opcode stream / IM 2 device byte when an
// interrupt is accepted, per §6 and §4.5.
type IRQVectorFunc func() uint32

// Config binds a new CPU to its buses and optional interrupt vector
// callback, the Go analogue of the teacher's ChipDef construction struct.
type Config struct {
	Mem MemoryBus
	IO  IOBus

	// OpcodeBus/ArgBus override the fetch buses; both default to Mem.
	OpcodeBus MemoryBus
	ArgBus    MemoryBus

	// IRQVector supplies the device byte/opcode stream for IM 0 and IM 2
	// acceptance. May be nil (treated as returning 0).
	IRQVector IRQVectorFunc

	// IllegalLog receives one diagnostic line per illegal opcode
	// encountered, rate-limited internally. Defaults to log.Print.
	IllegalLog func(string)
}

// CPU is a single Z80 processor instance, bound to its buses for its whole
// lifetime (§3 Lifecycle). The flag tables it depends on are process-wide
// and initialized once, shared by every CPU instance (§5).
type CPU struct {
	mem    MemoryBus
	opcode MemoryBus
	arg    MemoryBus
	io     IOBus

	af, bc, de, hl pair
	ix, iy, wz     pair
	af2, bc2, de2  pair
	hl2            pair
	pc, sp         uint16

	i       uint8
	rLow7   uint8
	rHigh1  uint8
	iff1    bool
	iff2    bool
	im      int
	halt    bool
	afterEI    bool
	afterLDAIR bool

	nmiLine   irqline.State
	irqLine   irqline.State
	waitLine  irqline.State
	busrqLine irqline.State
	nmiPending bool

	irqVector IRQVectorFunc

	// ea is the effective address latched by IX/IY+d addressing, shared by
	// the DD/FD and DDCB/FDCB pages the way the reference core's m_ea is.
	ea uint16

	icount          int
	icountExecuting int

	illegalLog   func(string)
	illegalCount int

	opCB, opED, opDD, opFD, opXYCB [256]func(*CPU)
	opMain                         [256]func(*CPU)
}

// New constructs a CPU bound to the given buses. Tables are built lazily
// on first use by initTables (called from New), shared by every instance.
func New(cfg Config) (*CPU, error) {
	if cfg.Mem == nil {
		return nil, InvalidCPUState{"Config.Mem must not be nil"}
	}
	initTables()

	c := &CPU{
		mem: cfg.Mem,
		io:  cfg.IO,
	}
	c.opcode = cfg.OpcodeBus
	if c.opcode == nil {
		c.opcode = cfg.Mem
	}
	c.arg = cfg.ArgBus
	if c.arg == nil {
		c.arg = cfg.Mem
	}
	c.irqVector = cfg.IRQVector
	c.illegalLog = cfg.IllegalLog
	if c.illegalLog == nil {
		c.illegalLog = func(s string) { log.Print(s) }
	}

	c.opMain = buildMainTable()
	c.opCB = buildCBTable()
	c.opED = buildEDTable()
	c.opDD = buildXYTable(ixSelector)
	c.opFD = buildXYTable(iySelector)
	c.opXYCB = buildXYCBTable()

	c.PowerOn()
	return c, nil
}

// SetOpcodeBus overrides the opcode-fetch bus (default: the data bus).
func (c *CPU) SetOpcodeBus(b MemoryBus) { c.opcode = b }

// SetArgBus overrides the argument-fetch bus (default: the data bus).
func (c *CPU) SetArgBus(b MemoryBus) { c.arg = b }

// SetIRQVector installs the IM 0 / IM 2 device-byte callback.
func (c *CPU) SetIRQVector(f IRQVectorFunc) { c.irqVector = f }

// PowerOn resets every piece of visible state to its documented post-reset
// values (§3 Invariants): IX=IY=0xFFFF, F=ZF, everything else zeroed. PC is
// left at the caller's discretion — the spec is explicit that reset does
// not magically set PC; a host sets it via SetPC after PowerOn.
func (c *CPU) PowerOn() {
	*c = CPU{
		mem: c.mem, opcode: c.opcode, arg: c.arg, io: c.io,
		irqVector:  c.irqVector,
		illegalLog: c.illegalLog,
		opMain:     c.opMain, opCB: c.opCB, opED: c.opED, opDD: c.opDD, opFD: c.opFD, opXYCB: c.opXYCB,
	}
	c.ix.SetW(0xFFFF)
	c.iy.SetW(0xFFFF)
	c.af.Lo = FlagZ
}

// --- External register accessors (§6) ---

func (c *CPU) PC() uint16     { return c.pc }
func (c *CPU) SetPC(v uint16) { c.pc = v }
func (c *CPU) SP() uint16     { return c.sp }
func (c *CPU) SetSP(v uint16) { c.sp = v }

func (c *CPU) AF() uint16     { return c.af.W() }
func (c *CPU) SetAF(v uint16) { c.af.SetW(v) }
func (c *CPU) BC() uint16     { return c.bc.W() }
func (c *CPU) SetBC(v uint16) { c.bc.SetW(v) }
func (c *CPU) DE() uint16     { return c.de.W() }
func (c *CPU) SetDE(v uint16) { c.de.SetW(v) }
func (c *CPU) HL() uint16     { return c.hl.W() }
func (c *CPU) SetHL(v uint16) { c.hl.SetW(v) }
func (c *CPU) IX() uint16     { return c.ix.W() }
func (c *CPU) SetIX(v uint16) { c.ix.SetW(v) }
func (c *CPU) IY() uint16     { return c.iy.W() }
func (c *CPU) SetIY(v uint16) { c.iy.SetW(v) }

func (c *CPU) AFPrime() uint16     { return c.af2.W() }
func (c *CPU) SetAFPrime(v uint16) { c.af2.SetW(v) }
func (c *CPU) BCPrime() uint16     { return c.bc2.W() }
func (c *CPU) SetBCPrime(v uint16) { c.bc2.SetW(v) }
func (c *CPU) DEPrime() uint16     { return c.de2.W() }
func (c *CPU) SetDEPrime(v uint16) { c.de2.SetW(v) }
func (c *CPU) HLPrime() uint16     { return c.hl2.W() }
func (c *CPU) SetHLPrime(v uint16) { c.hl2.SetW(v) }

func (c *CPU) I() uint8     { return c.i }
func (c *CPU) SetI(v uint8) { c.i = v }

// R returns the visible refresh register: (R_low7 & 0x7F) | (R_high1 & 0x80).
func (c *CPU) R() uint8 {
	return (c.rLow7 & 0x7F) | (c.rHigh1 & 0x80)
}

// SetR writes both halves of R the way LD R,A does: low7 takes bits 0-6,
// high1 preserves bit 7.
func (c *CPU) SetR(v uint8) {
	c.rLow7 = v & 0x7F
	c.rHigh1 = v & 0x80
}

func (c *CPU) IM() int      { return c.im }
func (c *CPU) SetIM(v int)  { c.im = v }
func (c *CPU) IFF1() bool   { return c.iff1 }
func (c *CPU) SetIFF1(v bool) { c.iff1 = v }
func (c *CPU) IFF2() bool   { return c.iff2 }
func (c *CPU) SetIFF2(v bool) { c.iff2 = v }
func (c *CPU) Halted() bool { return c.halt }

// WZ exposes the internal MEMPTR register; it has no host-visible effect
// beyond the Y/X flag bits of BIT n,(HL) and block ops, but tests need to
// seed/observe it directly (§8 P4).
func (c *CPU) WZ() uint16     { return c.wz.W() }
func (c *CPU) SetWZ(v uint16) { c.wz.SetW(v) }
