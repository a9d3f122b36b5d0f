package z80

import "github.com/jchacon/z80/disasm"

// buildEDTable constructs the ED-prefixed page. Every entry defaults to
// the illegal-opcode diagnostic (ED on real hardware behaves as a pair of
// NOPs for any byte it doesn't recognize); the documented and
// commonly-relied-upon undocumented operations are then installed over
// that default.
func buildEDTable() [256]func(*CPU) {
	var t [256]func(*CPU)
	for i := range t {
		op := uint8(i)
		t[op] = func(c *CPU) { c.illegalLogf("Z80 ill. opcode ED %02x ($%04x): %s", op, c.pc-2, disasm.ED(op)) }
	}

	for row := 0; row < 8; row++ {
		r := row
		opIn := uint8(0x40 + row*8)
		opOut := uint8(0x41 + row*8)
		t[opIn] = func(c *CPU) {
			val := c.io.Read(c.bc.W())
			c.wz.SetW(c.bc.W() + 1)
			if r != 6 {
				r8[r].set(c, val)
			}
			c.af.Lo = (c.af.Lo & FlagC) | szpTable[val]
		}
		t[opOut] = func(c *CPU) {
			var val uint8
			if r != 6 {
				val = r8[r].get(c)
			}
			c.io.Write(c.bc.W(), val)
			c.wz.SetW(c.bc.W() + 1)
		}
	}

	get16 := [4]func(c *CPU) uint16{
		func(c *CPU) uint16 { return c.bc.W() },
		func(c *CPU) uint16 { return c.de.W() },
		func(c *CPU) uint16 { return c.hl.W() },
		func(c *CPU) uint16 { return c.sp },
	}
	for i := 0; i < 4; i++ {
		get := get16[i]
		t[uint8(0x42+i*0x10)] = func(c *CPU) { c.nomreqIR(7); c.sbc16(&c.hl, get(c)) }
		t[uint8(0x4a+i*0x10)] = func(c *CPU) { c.nomreqIR(7); c.adc16(&c.hl, get(c)) }
	}

	pairSels := [3]pairSel{selBC, selDE, selHL}
	for i := 0; i < 3; i++ {
		sel := pairSels[i]
		t[uint8(0x43+i*0x10)] = func(c *CPU) {
			addr := c.arg16()
			c.wm16(addr, sel(c))
			c.wz.SetW(addr + 1)
		}
		t[uint8(0x4b+i*0x10)] = func(c *CPU) {
			addr := c.arg16()
			c.rm16(addr, sel(c))
			c.wz.SetW(addr + 1)
		}
	}
	t[0x73] = func(c *CPU) {
		addr := c.arg16()
		var p pair
		p.SetW(c.sp)
		c.wm16(addr, &p)
		c.wz.SetW(addr + 1)
	}
	t[0x7b] = func(c *CPU) {
		addr := c.arg16()
		var p pair
		c.rm16(addr, &p)
		c.sp = p.W()
		c.wz.SetW(addr + 1)
	}

	for i := 0; i < 8; i++ {
		t[uint8(0x44+i*8)] = func(c *CPU) { c.neg() }
	}

	for i := 0; i < 4; i++ {
		t[uint8(0x45+i*0x10)] = func(c *CPU) { c.retn() }
		t[uint8(0x4d+i*0x10)] = func(c *CPU) { c.reti() }
	}

	t[0x46] = func(c *CPU) { c.im = IM0 }
	t[0x4e] = func(c *CPU) { c.im = IM0 }
	t[0x66] = func(c *CPU) { c.im = IM0 }
	t[0x6e] = func(c *CPU) { c.im = IM0 }
	t[0x56] = func(c *CPU) { c.im = IM1 }
	t[0x76] = func(c *CPU) { c.im = IM1 }
	t[0x5e] = func(c *CPU) { c.im = IM2 }
	t[0x7e] = func(c *CPU) { c.im = IM2 }

	t[0x47] = func(c *CPU) { c.ldIA() }
	t[0x4f] = func(c *CPU) { c.ldRA() }
	t[0x57] = func(c *CPU) { c.ldAI() }
	t[0x5f] = func(c *CPU) { c.ldAR() }

	t[0x67] = func(c *CPU) {
		addr := c.hl.W()
		v := c.rm(addr)
		c.nomreqAddr(addr, 4)
		c.wm(addr, c.rrd(v))
		c.wz.SetW(addr + 1)
	}
	t[0x6f] = func(c *CPU) {
		addr := c.hl.W()
		v := c.rm(addr)
		c.nomreqAddr(addr, 4)
		c.wm(addr, c.rld(v))
		c.wz.SetW(addr + 1)
	}

	t[0xa0] = func(c *CPU) { c.ldi() }
	t[0xa1] = func(c *CPU) { c.cpi() }
	t[0xa2] = func(c *CPU) { c.ini() }
	t[0xa3] = func(c *CPU) { c.outi() }
	t[0xa8] = func(c *CPU) { c.ldd() }
	t[0xa9] = func(c *CPU) { c.cpd() }
	t[0xaa] = func(c *CPU) { c.ind() }
	t[0xab] = func(c *CPU) { c.outd() }
	t[0xb0] = func(c *CPU) { c.ldir() }
	t[0xb1] = func(c *CPU) { c.cpir() }
	t[0xb2] = func(c *CPU) { c.inir() }
	t[0xb3] = func(c *CPU) { c.otir() }
	t[0xb8] = func(c *CPU) { c.lddr() }
	t[0xb9] = func(c *CPU) { c.cpdr() }
	t[0xba] = func(c *CPU) { c.indr() }
	t[0xbb] = func(c *CPU) { c.otdr() }

	return t
}
