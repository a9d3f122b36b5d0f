package z80

// Control flow, refresh-register and interrupt-mode instructions, grounded
// on original_source/z80.py's jp/jp_cond/jr/jr_cond/call/call_cond/
// ret_cond/retn/reti/rst/ld_r_a/ld_a_r/ld_i_a/ld_a_i/ei.

func (c *CPU) pushPC() {
	var p pair
	p.SetW(c.pc)
	c.push(&p)
}

func (c *CPU) popPC() {
	var p pair
	c.pop(&p)
	c.pc = p.W()
}

// jp implements JP nn.
func (c *CPU) jp() {
	addr := c.arg16()
	c.pc = addr
	c.wz.SetW(addr)
}

// jpCond implements JP cc,nn. WZ is latched unconditionally (§4.3).
func (c *CPU) jpCond(cond bool) {
	addr := c.arg16()
	c.wz.SetW(addr)
	if cond {
		c.pc = addr
	}
}

// jr implements JR d.
func (c *CPU) jr() {
	d := int8(c.argByte())
	c.nomreqAddr(c.pc, 5)
	c.pc = uint16(int32(c.pc) + int32(d))
	c.wz.SetW(c.pc)
}

// jrCond implements JR cc,d. The extra 5 T-states and WZ update only occur
// when the branch is taken.
func (c *CPU) jrCond(cond bool) {
	d := int8(c.argByte())
	if cond {
		c.nomreqAddr(c.pc, 5)
		c.pc = uint16(int32(c.pc) + int32(d))
		c.wz.SetW(c.pc)
	}
}

// call implements CALL nn.
func (c *CPU) call() {
	addr := c.arg16()
	c.wz.SetW(addr)
	c.nomreqAddr(c.pc, 1)
	c.pushPC()
	c.pc = c.wz.W()
}

// callCond implements CALL cc,nn. WZ is latched unconditionally.
func (c *CPU) callCond(cond bool) {
	addr := c.arg16()
	c.wz.SetW(addr)
	if cond {
		// Taken: reserve the extra cycles CALL nn carries over CALL cc's
		// not-taken base cost (ccOp 17 vs 10), so the stack writes below
		// are timed against a positive budget.
		c.icountExecuting += 7
		c.nomreqAddr(c.pc, 1)
		c.pushPC()
		c.pc = addr
	}
}

// ret implements the unconditional body shared by RET/RETN/RETI.
func (c *CPU) ret() {
	c.popPC()
	c.wz.SetW(c.pc)
}

// retCond implements RET cc.
func (c *CPU) retCond(cond bool) {
	c.nomreqIR(1)
	if cond {
		c.ret()
	}
}

// retn implements RETN: IFF1 is restored from IFF2.
func (c *CPU) retn() {
	c.ret()
	c.iff1 = c.iff2
}

// reti implements RETI: identical core effect to RETN, kept distinct so a
// host daisy-chain can distinguish the opcode if it cares to.
func (c *CPU) reti() {
	c.ret()
	c.iff1 = c.iff2
}

// rst implements RST p.
func (c *CPU) rst(addr uint8) {
	c.nomreqIR(1)
	c.pushPC()
	c.pc = uint16(addr)
	c.wz.SetW(c.pc)
}

// ldRA implements LD R,A.
func (c *CPU) ldRA() {
	c.nomreqIR(1)
	c.rLow7 = c.af.Hi & 0x7f
	c.rHigh1 = c.af.Hi & 0x80
}

// ldAR implements LD A,R: P/V is copied from IFF2.
func (c *CPU) ldAR() {
	c.nomreqIR(1)
	c.af.Hi = c.R()
	c.af.Lo = (c.af.Lo & FlagC) | szTable[c.af.Hi]
	if c.iff2 {
		c.af.Lo |= FlagP
	}
	c.afterLDAIR = true
}

// ldIA implements LD I,A.
func (c *CPU) ldIA() {
	c.nomreqIR(1)
	c.i = c.af.Hi
}

// ldAI implements LD A,I: P/V is copied from IFF2.
func (c *CPU) ldAI() {
	c.nomreqIR(1)
	c.af.Hi = c.i
	c.af.Lo = (c.af.Lo & FlagC) | szTable[c.af.Hi]
	if c.iff2 {
		c.af.Lo |= FlagP
	}
	c.afterLDAIR = true
}

// ei implements EI: the enable doesn't take effect until after the next
// instruction, tracked via afterEI so interrupt sampling can suppress
// itself for one opcode (§4.5).
func (c *CPU) ei() {
	c.iff1 = true
	c.iff2 = true
	c.afterEI = true
}

// di implements DI.
func (c *CPU) di() {
	c.iff1 = false
	c.iff2 = false
}

// haltOp implements HALT: PC is backed up so the fetch/refresh loop keeps
// re-executing the same address, presenting NOP to the bus, until an
// accepted interrupt or reset clears the halt state.
func (c *CPU) haltOp() {
	c.halt = true
	c.pc--
}
