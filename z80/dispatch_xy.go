package z80

import (
	"fmt"

	"github.com/jchacon/z80/disasm"
)

// xyConfig bundles what distinguishes the DD and FD pages: which index
// register pair substitutes for HL, the effective-address calculator that
// reads the displacement byte, and a label for illegal-opcode diagnostics.
type xyConfig struct {
	sel  pairSel
	ea   func(*CPU)
	name string
}

var ixSelector = xyConfig{selIX, (*CPU).eaIX, "DD"}
var iySelector = xyConfig{selIY, (*CPU).eaIY, "FD"}

// buildXYTable builds the DD/FD opcode page starting from a full copy of
// the unprefixed page (§4.6): opcodes that don't reference H, L or (HL)
// are identical to their unprefixed behavior and simply inherited, which
// is what makes the illegal-prefix fallthrough rule (§4.6) free. Opcodes
// that do reference HL are overridden to operate on the index register or
// its displaced memory form.
func buildXYTable(cfg xyConfig) [256]func(*CPU) {
	sel := cfg.sel
	eaFn := cfg.ea
	t := buildMainTable()
	var touched [256]bool
	mark := func(op uint8) { touched[op] = true }

	regs := [8]regAccessor{
		r8[0], r8[1], r8[2], r8[3],
		{func(c *CPU) uint8 { return sel(c).Hi }, func(c *CPU, v uint8) { sel(c).Hi = v }},
		{func(c *CPU) uint8 { return sel(c).Lo }, func(c *CPU, v uint8) { sel(c).Lo = v }},
		{},
		r8[7],
	}

	t[0x21] = ldPairImm(sel)
	mark(0x21)
	t[0x22] = func(c *CPU) {
		addr := c.arg16()
		c.wm16(addr, sel(c))
		c.wz.SetW(addr + 1)
	}
	mark(0x22)
	t[0x2a] = func(c *CPU) {
		addr := c.arg16()
		c.rm16(addr, sel(c))
		c.wz.SetW(addr + 1)
	}
	mark(0x2a)
	t[0x23] = incPair(sel)
	mark(0x23)
	t[0x2b] = decPair(sel)
	mark(0x2b)
	t[0x09] = addHLLike(sel, selBC)
	mark(0x09)
	t[0x19] = addHLLike(sel, selDE)
	mark(0x19)
	t[0x29] = addHLLike(sel, sel)
	mark(0x29)
	t[0x39] = func(c *CPU) { c.nomreqIR(7); c.add16(sel(c), c.sp) }
	mark(0x39)
	t[0xe1] = popPair(sel)
	mark(0xe1)
	t[0xe5] = pushPair(sel)
	mark(0xe5)
	t[0xe3] = func(c *CPU) { c.exSP(sel(c)) }
	mark(0xe3)
	t[0xe9] = func(c *CPU) { c.pc = sel(c).W() }
	mark(0xe9)
	t[0xf9] = func(c *CPU) { c.nomreqIR(2); c.sp = sel(c).W() }
	mark(0xf9)

	t[0x24] = func(c *CPU) { p := sel(c); p.Hi = c.inc8(p.Hi) }
	mark(0x24)
	t[0x2c] = func(c *CPU) { p := sel(c); p.Lo = c.inc8(p.Lo) }
	mark(0x2c)
	t[0x25] = func(c *CPU) { p := sel(c); p.Hi = c.dec8(p.Hi) }
	mark(0x25)
	t[0x2d] = func(c *CPU) { p := sel(c); p.Lo = c.dec8(p.Lo) }
	mark(0x2d)
	t[0x26] = func(c *CPU) { p := sel(c); p.Hi = c.argByte() }
	mark(0x26)
	t[0x2e] = func(c *CPU) { p := sel(c); p.Lo = c.argByte() }
	mark(0x2e)

	for dst := 0; dst < 8; dst++ {
		if dst == 6 {
			continue
		}
		for src := 0; src < 8; src++ {
			if src == 6 {
				continue
			}
			if dst != 4 && dst != 5 && src != 4 && src != 5 {
				continue
			}
			op := uint8(0x40 + dst*8 + src)
			d, s := dst, src
			t[op] = func(c *CPU) { regs[d].set(c, regs[s].get(c)) }
			mark(op)
		}
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if col != 4 && col != 5 {
				continue
			}
			op := uint8(0x80 + row*8 + col)
			r, cc := row, col
			t[op] = func(c *CPU) { aluOps[r](c, regs[cc].get(c)) }
			mark(op)
		}
	}

	for src := 0; src < 8; src++ {
		if src == 6 {
			continue
		}
		op := uint8(0x70 + src)
		if op == 0x76 {
			continue
		}
		s := src
		t[op] = func(c *CPU) {
			eaFn(c)
			c.wm(c.ea, r8[s].get(c))
		}
		mark(op)
	}
	for dst := 0; dst < 8; dst++ {
		if dst == 6 {
			continue
		}
		op := uint8(0x46 + dst*8)
		d := dst
		t[op] = func(c *CPU) {
			eaFn(c)
			r8[d].set(c, c.rm(c.ea))
		}
		mark(op)
	}
	for row := 0; row < 8; row++ {
		r := row
		op := uint8(0x80 + row*8 + 6)
		t[op] = func(c *CPU) {
			eaFn(c)
			aluOps[r](c, c.rm(c.ea))
		}
		mark(op)
	}

	t[0x34] = func(c *CPU) {
		eaFn(c)
		addr := c.ea
		v := c.rm(addr)
		c.nomreqAddr(addr, 1)
		c.wm(addr, c.inc8(v))
	}
	mark(0x34)
	t[0x35] = func(c *CPU) {
		eaFn(c)
		addr := c.ea
		v := c.rm(addr)
		c.nomreqAddr(addr, 1)
		c.wm(addr, c.dec8(v))
	}
	mark(0x35)
	t[0x36] = func(c *CPU) {
		eaFn(c)
		addr := c.ea
		n := c.argByte()
		c.wm(addr, n)
	}
	mark(0x36)

	name := cfg.name
	for i := 0; i < 256; i++ {
		op := uint8(i)
		if touched[op] || op == 0xcb || op == 0xdd || op == 0xed || op == 0xfd {
			continue
		}
		orig := t[op]
		mnemonic := disasm.Main(op)
		t[op] = func(c *CPU) {
			c.illegalLogf("Z80 ill. prefixed opcode %s %02x ($%04x): falls through to %s", name, op, c.pc-2, mnemonic)
			orig(c)
		}
	}

	return t
}

// dispatchDD handles the DD prefix: DD CB is the shared displaced-bit-op
// page (fetched specially, with no R increment on its last two bytes),
// everything else dispatches through opDD.
func (c *CPU) dispatchDD() {
	op2 := c.rop()
	if op2 == 0xcb {
		c.reserve(&ccXY, op2)
		c.eaIX()
		op3 := c.mem.Read(c.pc)
		c.t(5)
		c.pc++
		c.reserve(&ccXYCB, op3)
		c.opXYCB[op3](c)
		c.drain()
		return
	}
	c.exec(&ccXY, &c.opDD, op2)
}

// dispatchFD is dispatchDD's IY counterpart.
func (c *CPU) dispatchFD() {
	op2 := c.rop()
	if op2 == 0xcb {
		c.reserve(&ccXY, op2)
		c.eaIY()
		op3 := c.mem.Read(c.pc)
		c.t(5)
		c.pc++
		c.reserve(&ccXYCB, op3)
		c.opXYCB[op3](c)
		c.drain()
		return
	}
	c.exec(&ccXY, &c.opFD, op2)
}

// illegalLogf rate-limits and formats an illegal-opcode diagnostic.
func (c *CPU) illegalLogf(format string, args ...interface{}) {
	if c.illegalCount >= illegalLogLimit {
		return
	}
	c.illegalCount++
	c.illegalLog(fmt.Sprintf(format, args...))
}

// illegalLogLimit caps how many illegal-opcode diagnostics a single CPU
// instance will emit, so a runaway program executing garbage data doesn't
// flood the log sink.
const illegalLogLimit = 64
