package z80

// Block transfer/search/IO instructions, grounded on original_source/
// z80.py's ldi/ldd/cpi/cpd/ini/ind/outi/outd and their *ir/*dr repeat
// wrappers (§4.4). Each single-iteration helper charges its own memory
// traffic; the repeat wrappers add the extra cc_ex padding and rewind PC
// when the terminating condition hasn't been met.

func (c *CPU) ldi() {
	val := c.rm(c.hl.W())
	c.wm(c.de.W(), val)
	c.nomreqAddr(c.de.W(), 2)
	c.hl.SetW(c.hl.W() + 1)
	c.de.SetW(c.de.W() + 1)
	c.bc.SetW(c.bc.W() - 1)
	n := val + c.af.Hi
	f := c.af.Lo & (FlagS | FlagZ | FlagC)
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	if c.bc.W() != 0 {
		f |= FlagP
	}
	c.af.Lo = f
}

func (c *CPU) ldd() {
	val := c.rm(c.hl.W())
	c.wm(c.de.W(), val)
	c.nomreqAddr(c.de.W(), 2)
	c.hl.SetW(c.hl.W() - 1)
	c.de.SetW(c.de.W() - 1)
	c.bc.SetW(c.bc.W() - 1)
	n := val + c.af.Hi
	f := c.af.Lo & (FlagS | FlagZ | FlagC)
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	if c.bc.W() != 0 {
		f |= FlagP
	}
	c.af.Lo = f
}

func (c *CPU) ldir() {
	c.ldi()
	if c.bc.W() != 0 {
		c.pc -= 2
		c.nomreqAddr(c.de.W(), 5)
		c.wz.SetW(c.pc + 1)
	}
}

func (c *CPU) lddr() {
	c.ldd()
	if c.bc.W() != 0 {
		c.pc -= 2
		c.nomreqAddr(c.de.W(), 5)
		c.wz.SetW(c.pc + 1)
	}
}

func (c *CPU) cpi() {
	val := c.rm(c.hl.W())
	c.nomreqAddr(c.hl.W(), 5)
	c.hl.SetW(c.hl.W() + 1)
	c.bc.SetW(c.bc.W() - 1)
	res := c.af.Hi - val
	halfCarry := (c.af.Hi & 0x0f) < (val & 0x0f)
	f := FlagN | (c.af.Lo & FlagC)
	if res == 0 {
		f |= FlagZ
	}
	f |= res & FlagS
	if halfCarry {
		f |= FlagH
	}
	n := res
	if halfCarry {
		n--
	}
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	if c.bc.W() != 0 {
		f |= FlagP
	}
	c.af.Lo = f
	c.wz.SetW(c.wz.W() + 1)
}

func (c *CPU) cpd() {
	val := c.rm(c.hl.W())
	c.nomreqAddr(c.hl.W(), 5)
	c.hl.SetW(c.hl.W() - 1)
	c.bc.SetW(c.bc.W() - 1)
	res := c.af.Hi - val
	halfCarry := (c.af.Hi & 0x0f) < (val & 0x0f)
	f := FlagN | (c.af.Lo & FlagC)
	if res == 0 {
		f |= FlagZ
	}
	f |= res & FlagS
	if halfCarry {
		f |= FlagH
	}
	n := res
	if halfCarry {
		n--
	}
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	if c.bc.W() != 0 {
		f |= FlagP
	}
	c.af.Lo = f
	c.wz.SetW(c.wz.W() - 1)
}

func (c *CPU) cpir() {
	c.cpi()
	if c.bc.W() != 0 && c.af.Lo&FlagZ == 0 {
		c.pc -= 2
		c.nomreqAddr(c.hl.W(), 5)
		c.wz.SetW(c.pc + 1)
	}
}

func (c *CPU) cpdr() {
	c.cpd()
	if c.bc.W() != 0 && c.af.Lo&FlagZ == 0 {
		c.pc -= 2
		c.nomreqAddr(c.hl.W(), 5)
		c.wz.SetW(c.pc + 1)
	}
}

// ioBlockFlags finishes the common tail of ini/ind/outi/outd: S/Z/Y/X from
// the post-decrement B, N from bit 7 of the transferred byte, H/C from a
// carry out of val+k, and P/V from the parity of (temp&7)^b.
func ioBlockFlags(val, b uint8, k uint8) uint8 {
	var f uint8
	if b == 0 {
		f |= FlagZ
	}
	f |= b & FlagS
	f |= b & (FlagY | FlagX)
	if val&0x80 != 0 {
		f |= FlagN
	}
	temp := uint16(val) + uint16(k)
	if temp > 0xff {
		f |= FlagH | FlagC
	}
	if szpTable[uint8(temp&7)^b]&FlagP != 0 {
		f |= FlagP
	}
	return f
}

func (c *CPU) ini() {
	c.nomreqIR(1)
	val := c.io.Read(c.bc.W())
	c.wz.SetW(c.bc.W() + 1)
	c.bc.Hi--
	c.wm(c.hl.W(), val)
	c.hl.SetW(c.hl.W() + 1)
	c.af.Lo = ioBlockFlags(val, c.bc.Hi, c.bc.Lo+1)
}

func (c *CPU) ind() {
	c.nomreqIR(1)
	val := c.io.Read(c.bc.W())
	c.wz.SetW(c.bc.W() - 1)
	c.bc.Hi--
	c.wm(c.hl.W(), val)
	c.hl.SetW(c.hl.W() - 1)
	c.af.Lo = ioBlockFlags(val, c.bc.Hi, c.bc.Lo-1)
}

func (c *CPU) inir() {
	c.ini()
	if c.bc.Hi != 0 {
		c.pc -= 2
		c.nomreqAddr(c.hl.W(), 5)
	}
}

func (c *CPU) indr() {
	c.ind()
	if c.bc.Hi != 0 {
		c.pc -= 2
		c.nomreqAddr(c.hl.W(), 5)
	}
}

func (c *CPU) outi() {
	c.nomreqIR(1)
	val := c.rm(c.hl.W())
	c.bc.Hi--
	c.wz.SetW(c.bc.W() + 1)
	c.io.Write(c.bc.W(), val)
	c.hl.SetW(c.hl.W() + 1)
	c.af.Lo = ioBlockFlags(val, c.bc.Hi, c.hl.Lo)
}

func (c *CPU) outd() {
	c.nomreqIR(1)
	val := c.rm(c.hl.W())
	c.bc.Hi--
	c.wz.SetW(c.bc.W() - 1)
	c.io.Write(c.bc.W(), val)
	c.hl.SetW(c.hl.W() - 1)
	c.af.Lo = ioBlockFlags(val, c.bc.Hi, c.hl.Lo)
}

func (c *CPU) otir() {
	c.outi()
	if c.bc.Hi != 0 {
		c.pc -= 2
		c.nomreqAddr(c.bc.W(), 5)
	}
}

func (c *CPU) otdr() {
	c.outd()
	if c.bc.Hi != 0 {
		c.pc -= 2
		c.nomreqAddr(c.bc.W(), 5)
	}
}
