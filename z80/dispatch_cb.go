package z80

// rotateOps indexes the CB page's top 3 bits: RLC RRC RL RR SLA SRA SLL SRL.
var rotateOps = [8]func(*CPU, uint8) uint8{
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).sll, (*CPU).srl,
}

// buildCBTable constructs the CB-prefixed page: rotate/shift (0x00-0x3F),
// BIT (0x40-0x7F), RES (0x80-0xBF) and SET (0xC0-0xFF), each over the
// 8 r8 register slots.
func buildCBTable() [256]func(*CPU) {
	var t [256]func(*CPU)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			op := uint8(row*8 + col)
			r, cc := row, col
			if cc == 6 {
				t[op] = func(c *CPU) {
					addr := c.hl.W()
					v := c.rm(addr)
					c.nomreqAddr(addr, 1)
					c.wm(addr, rotateOps[r](c, v))
				}
			} else {
				t[op] = func(c *CPU) { r8[cc].set(c, rotateOps[r](c, r8[cc].get(c))) }
			}
		}
	}

	for n := 0; n < 8; n++ {
		for col := 0; col < 8; col++ {
			op := uint8(0x40 + n*8 + col)
			nn, cc := uint(n), col
			if cc == 6 {
				t[op] = func(c *CPU) {
					v := c.rmReg(c.hl.W())
					c.bitTest(nn, v, uint8(c.wz.W()>>8))
				}
			} else {
				t[op] = func(c *CPU) {
					v := r8[cc].get(c)
					c.bitTest(nn, v, v)
				}
			}
		}
	}

	for n := 0; n < 8; n++ {
		for col := 0; col < 8; col++ {
			op := uint8(0x80 + n*8 + col)
			nn, cc := uint(n), col
			if cc == 6 {
				t[op] = func(c *CPU) {
					addr := c.hl.W()
					v := c.rm(addr)
					c.nomreqAddr(addr, 1)
					c.wm(addr, resBit(nn, v))
				}
			} else {
				t[op] = func(c *CPU) { r8[cc].set(c, resBit(nn, r8[cc].get(c))) }
			}
		}
	}

	for n := 0; n < 8; n++ {
		for col := 0; col < 8; col++ {
			op := uint8(0xc0 + n*8 + col)
			nn, cc := uint(n), col
			if cc == 6 {
				t[op] = func(c *CPU) {
					addr := c.hl.W()
					v := c.rm(addr)
					c.nomreqAddr(addr, 1)
					c.wm(addr, setBit(nn, v))
				}
			} else {
				t[op] = func(c *CPU) { r8[cc].set(c, setBit(nn, r8[cc].get(c))) }
			}
		}
	}

	return t
}
