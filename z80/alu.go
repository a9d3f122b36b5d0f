package z80

// 8-bit arithmetic/logic, grounded on original_source/z80.py's add_a/adc_a/
// sub/sbc_a/cp/and_a/or_a/xor_a/inc/dec/daa/neg, translated to operate
// against the shared SZHVC tables built in tables.go.

// addA implements ADD A,n and (when withCarry and CF=1) ADC A,n.
func (c *CPU) addA(value uint8, withCarry bool) {
	old := c.af.Hi
	cin := 0
	if withCarry && c.af.Lo&FlagC != 0 {
		cin = 1
	}
	newval := uint8(int(old) + int(value) + cin)
	idx := int(old)*256 + int(newval)
	if cin == 1 {
		idx += 0x10000
	}
	c.af.Hi = newval
	c.af.Lo = szhvcAddTable[idx]
}

// subHelper implements SUB/SBC/CP/NEG, all of which consult szhvcSubTable
// with old as the minuend. store is false for CP (flags only, A unchanged).
func (c *CPU) subHelper(old, value uint8, withCarry, store bool) uint8 {
	cin := 0
	if withCarry && c.af.Lo&FlagC != 0 {
		cin = 1
	}
	newval := uint8(int(old) - int(value) - cin)
	idx := int(old)*256 + int(newval)
	if cin == 1 {
		idx += 0x10000
	}
	c.af.Lo = szhvcSubTable[idx]
	if store {
		c.af.Hi = newval
	}
	return newval
}

// subA implements SUB n and (when withCarry and CF=1) SBC A,n.
func (c *CPU) subA(value uint8, withCarry bool) {
	c.subHelper(c.af.Hi, value, withCarry, true)
}

// cpA implements CP n: flags as SUB, but Y/X come from the operand, not
// the result (§4.3).
func (c *CPU) cpA(value uint8) {
	c.subHelper(c.af.Hi, value, false, false)
	c.af.Lo = (c.af.Lo &^ (FlagY | FlagX)) | (value & (FlagY | FlagX))
}

// neg implements NEG: A = 0 - A.
func (c *CPU) neg() {
	old := c.af.Hi
	c.af.Hi = 0
	c.subHelper(0, old, false, true)
}

func (c *CPU) andA(value uint8) {
	c.af.Hi &= value
	c.af.Lo = szpTable[c.af.Hi] | FlagH
}

func (c *CPU) orA(value uint8) {
	c.af.Hi |= value
	c.af.Lo = szpTable[c.af.Hi]
}

func (c *CPU) xorA(value uint8) {
	c.af.Hi ^= value
	c.af.Lo = szpTable[c.af.Hi]
}

// inc8/dec8 implement INC r/DEC r and the (HL)/(IX+d)/(IY+d) memory forms;
// the carry flag is untouched (§4.3).
func (c *CPU) inc8(value uint8) uint8 {
	res := value + 1
	c.af.Lo = szhvIncTable[res] | (c.af.Lo & FlagC)
	return res
}

func (c *CPU) dec8(value uint8) uint8 {
	res := value - 1
	c.af.Lo = szhvDecTable[res] | (c.af.Lo & FlagC)
	return res
}

// daa implements DAA per the table-free MAME algorithm: correction amount
// depends on N (was the last op a subtraction), H and the low nibble, and
// on C and the pre-correction value itself.
func (c *CPU) daa() {
	a := c.af.Hi
	f := c.af.Lo
	newA := a
	if f&FlagN != 0 {
		if f&FlagH != 0 || (a&0x0f) > 9 {
			newA -= 6
		}
		if f&FlagC != 0 || a > 0x99 {
			newA -= 0x60
		}
	} else {
		if f&FlagH != 0 || (a&0x0f) > 9 {
			newA += 6
		}
		if f&FlagC != 0 || a > 0x99 {
			newA += 0x60
		}
	}
	var carry uint8
	if a > 0x99 {
		carry = FlagC
	}
	newF := (f & (FlagC | FlagN)) | carry | ((a ^ newA) & FlagH) | szpTable[newA]
	c.af.Hi = newA
	c.af.Lo = newF
}

// Rotates and shifts all route their Z/S/P output through szpTable and
// compute carry from the bit shifted out, per §4.3.

func (c *CPU) rlc(v uint8) uint8 {
	carry := v >> 7
	res := (v << 1) | carry
	c.af.Lo = szpTable[res] | carry
	return res
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v & 1
	res := (v >> 1) | (carry << 7)
	c.af.Lo = szpTable[res] | carry
	return res
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := c.af.Lo & FlagC
	carry := v >> 7
	res := (v << 1) | oldCarry
	c.af.Lo = szpTable[res] | carry
	return res
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := (c.af.Lo & FlagC) << 7
	carry := v & 1
	res := (v >> 1) | oldCarry
	c.af.Lo = szpTable[res] | carry
	return res
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v >> 7
	res := v << 1
	c.af.Lo = szpTable[res] | carry
	return res
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v & 1
	res := (v >> 1) | (v & 0x80)
	c.af.Lo = szpTable[res] | carry
	return res
}

// sll is the undocumented shift-left-logical-with-set variant: shifts left
// like SLA but forces bit 0 to 1 instead of 0.
func (c *CPU) sll(v uint8) uint8 {
	carry := v >> 7
	res := (v << 1) | 1
	c.af.Lo = szpTable[res] | carry
	return res
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v & 1
	res := v >> 1
	c.af.Lo = szpTable[res] | carry
	return res
}

// bitTest implements BIT n,x. yxSource supplies the byte Y/X are copied
// from: the register itself for BIT n,r, WZ's high byte for BIT n,(HL),
// and the IX/IY+d effective address's high byte for the indexed forms.
func (c *CPU) bitTest(n uint, v, yxSource uint8) {
	masked := v & (1 << n)
	f := szBitTable[masked] &^ (FlagY | FlagX)
	f |= yxSource & (FlagY | FlagX)
	c.af.Lo = (c.af.Lo & FlagC) | FlagH | f
}

func resBit(n uint, v uint8) uint8 { return v &^ (1 << n) }
func setBit(n uint, v uint8) uint8 { return v | (1 << n) }

// rld/rrd implement the BCD nibble rotations through (HL); hlVal is the
// byte read from (HL) before the call, and the returned value is what gets
// written back.
func (c *CPU) rld(hlVal uint8) uint8 {
	newMem := (hlVal << 4) | (c.af.Hi & 0x0f)
	c.af.Hi = (c.af.Hi & 0xf0) | (hlVal >> 4)
	c.af.Lo = szpTable[c.af.Hi] | (c.af.Lo & FlagC)
	return newMem
}

func (c *CPU) rrd(hlVal uint8) uint8 {
	newMem := (c.af.Hi << 4) | (hlVal >> 4)
	c.af.Hi = (c.af.Hi & 0xf0) | (hlVal & 0x0f)
	c.af.Lo = szpTable[c.af.Hi] | (c.af.Lo & FlagC)
	return newMem
}

// add16 implements ADD HL/IX/IY,rr: only H, N and C change; S, Z and P/V
// are left alone, and Y/X come from the high byte of the 16-bit result.
func (c *CPU) add16(dst *pair, value uint16) {
	old := dst.W()
	c.wz.SetW(old + 1)
	res := uint32(old) + uint32(value)
	newval := uint16(res)
	f := c.af.Lo & (FlagS | FlagZ | FlagP)
	if (old&0xfff)+(value&0xfff) > 0xfff {
		f |= FlagH
	}
	if res > 0xffff {
		f |= FlagC
	}
	f |= uint8(newval>>8) & (FlagY | FlagX)
	c.af.Lo = f
	dst.SetW(newval)
}

// adc16/sbc16 implement ADC/SBC HL,rr: the full flag set changes.
func (c *CPU) adc16(dst *pair, value uint16) {
	old := dst.W()
	c.wz.SetW(old + 1)
	var carry uint16
	if c.af.Lo&FlagC != 0 {
		carry = 1
	}
	res := uint32(old) + uint32(value) + uint32(carry)
	newval := uint16(res)
	var f uint8
	if newval != 0 {
		f = uint8(newval>>8) & FlagS
	} else {
		f = FlagZ
	}
	f |= uint8(newval>>8) & (FlagY | FlagX)
	if (old&0xfff)+(value&0xfff)+carry > 0xfff {
		f |= FlagH
	}
	if res > 0xffff {
		f |= FlagC
	}
	if (^(old^value))&(old^newval)&0x8000 != 0 {
		f |= FlagV
	}
	c.af.Lo = f
	dst.SetW(newval)
}

func (c *CPU) sbc16(dst *pair, value uint16) {
	old := dst.W()
	c.wz.SetW(old + 1)
	var carry int32
	if c.af.Lo&FlagC != 0 {
		carry = 1
	}
	res := int32(old) - int32(value) - carry
	newval := uint16(res)
	f := FlagN
	if newval != 0 {
		f |= uint8(newval>>8) & FlagS
	} else {
		f |= FlagZ
	}
	f |= uint8(newval>>8) & (FlagY | FlagX)
	if int32(old&0xfff)-int32(value&0xfff)-carry < 0 {
		f |= FlagH
	}
	if res < 0 {
		f |= FlagC
	}
	if (old^value)&(old^newval)&0x8000 != 0 {
		f |= FlagV
	}
	c.af.Lo = f
	dst.SetW(newval)
}

// exAF swaps AF with AF'.
func (c *CPU) exAF() { c.af, c.af2 = c.af2, c.af }

// exDEHL swaps DE and HL.
func (c *CPU) exDEHL() { c.de, c.hl = c.hl, c.de }

// exx swaps BC/DE/HL with their shadow counterparts.
func (c *CPU) exx() {
	c.bc, c.bc2 = c.bc2, c.bc
	c.de, c.de2 = c.de2, c.de
	c.hl, c.hl2 = c.hl2, c.hl
}

// exSP implements EX (SP),HL/IX/IY: reads the two bytes at (SP), writes p's
// old value back high-byte-first, and latches WZ to the value read.
func (c *CPU) exSP(p *pair) {
	var tmp pair
	c.rm16(c.sp, &tmp)
	c.nomreqAddr(c.sp+1, 1)
	old := *p
	c.icountExecuting -= mtm
	c.wm(c.sp+1, old.Hi)
	c.icountExecuting += mtm
	c.wm(c.sp, old.Lo)
	c.nomreqAddr(c.sp, 2)
	p.SetW(tmp.W())
	c.wz.SetW(tmp.W())
}
