package z80

import "github.com/jchacon/z80/irqline"

// ExecuteRun burns cycles T-states, executing whole instructions (it may
// run a handful of T-states past the requested budget since an
// instruction, once started, always runs to completion) and returns the
// T-states left over (zero or negative). Interrupts are sampled once per
// instruction boundary, matching the reference core's execute_run (§4.5).
func (c *CPU) ExecuteRun(cycles int) int {
	c.icount += cycles
	for {
		if c.waitLine != irqline.Clear {
			c.icount = 0
			return c.icount
		}

		c.checkInterrupts()
		c.icountExecuting = 0
		c.afterEI = false
		c.afterLDAIR = false

		op := c.rop()
		if c.halt {
			c.pc--
			op = 0x00
		}
		c.exec(&ccOp, &c.opMain, op)

		if c.icount <= 0 {
			return c.icount
		}
	}
}
