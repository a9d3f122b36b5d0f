package z80

import "github.com/jchacon/z80/irqline"

// Interrupt acceptance, grounded on original_source/z80.py's
// check_interrupts/take_interrupt/take_nmi/execute_set_input (§4.5). NMI is
// edge triggered: SetInput only latches nmiPending on a Clear->Assert
// transition. IRQ is level sensitive and gated by IFF1, the one-instruction
// EI delay, and the one-instruction LD A,I/R suppression window.

// SetInput drives one of the CPU's four external lines (§6).
func (c *CPU) SetInput(line irqline.Line, state irqline.State) {
	switch line {
	case irqline.NMI:
		if c.nmiLine != irqline.Assert && state == irqline.Assert {
			c.nmiPending = true
		}
		c.nmiLine = state
	case irqline.IRQ0:
		c.irqLine = state
	case irqline.WAIT:
		c.waitLine = state
	case irqline.BUSRQ:
		c.busrqLine = state
	}
}

// checkInterrupts is sampled once at each instruction boundary by the run
// loop. NMI takes priority over a pending maskable IRQ.
func (c *CPU) checkInterrupts() {
	if c.nmiPending {
		c.takeNmi()
		return
	}
	if c.irqLine != irqline.Clear && c.iff1 && !c.afterEI && !c.afterLDAIR {
		c.takeInterrupt()
	}
}

// takeNmi pushes PC and jumps to 0x0066, clearing IFF1 only (§4.5).
func (c *CPU) takeNmi() {
	c.halt = false
	c.nmiPending = false
	c.iff1 = false
	c.nomreqIR(5)
	c.pushPC()
	c.pc = 0x0066
	c.wz.SetW(c.pc)
}

// takeInterrupt accepts a pending maskable interrupt according to the
// current interrupt mode, consulting irqVector for the device-supplied
// byte(s) in modes 0 and 2.
func (c *CPU) takeInterrupt() {
	c.halt = false
	c.iff1 = false
	c.iff2 = false

	var vector uint32
	if c.irqVector != nil {
		vector = c.irqVector()
	}

	c.nomreqIR(2)
	switch c.im {
	case IM0:
		c.acceptIM0(vector)
	case IM1:
		c.pushPC()
		c.pc = 0x0038
		c.wz.SetW(c.pc)
	case IM2:
		lowAddr := uint16(c.i)<<8 | uint16(vector&0xff)
		c.pushPC()
		var newpc pair
		c.rm16(lowAddr, &newpc)
		c.pc = newpc.W()
		c.wz.SetW(c.pc)
	}
}

// acceptIM0 interprets the device-supplied byte stream as an instruction
// fetched directly off the interrupt acknowledge cycle: the opcode byte
// lives at bits 16-23 of vector, with the 16-bit CALL/JP target (when
// applicable) in the low 16 bits. CALL nn and JP nn are recognized by that
// opcode byte; anything else is treated as a single-byte opcode and masked
// to the nearest RST vector using its own low byte.
func (c *CPU) acceptIM0(vector uint32) {
	switch vector & 0xff0000 {
	case 0xcd0000:
		addr := uint16(vector)
		c.pushPC()
		c.pc = addr
		c.wz.SetW(addr)
	case 0xc30000:
		addr := uint16(vector)
		c.pc = addr
		c.wz.SetW(addr)
	default:
		addr := uint16(uint8(vector) & 0x38)
		c.pushPC()
		c.pc = addr
		c.wz.SetW(addr)
	}
}
