package z80

// buildXYCBTable constructs the DD CB/FD CB shared page. It always
// operates on the effective address already latched in c.ea by eaIX/eaIY;
// the undocumented behavior where the rotate/RES/SET forms also copy their
// result into a named register (when the low 3 bits select one) is
// reproduced, targeting the real H/L rather than IXH/IXL (§4.6).
func buildXYCBTable() [256]func(*CPU) {
	var t [256]func(*CPU)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			op := uint8(row*8 + col)
			r, cc := row, col
			t[op] = func(c *CPU) {
				v := c.rm(c.ea)
				c.nomreqAddr(c.ea, 1)
				res := rotateOps[r](c, v)
				c.wm(c.ea, res)
				if cc != 6 {
					r8[cc].set(c, res)
				}
			}
		}
	}

	for n := 0; n < 8; n++ {
		nn := uint(n)
		for col := 0; col < 8; col++ {
			op := uint8(0x40 + n*8 + col)
			t[op] = func(c *CPU) {
				v := c.rm(c.ea)
				c.nomreqAddr(c.ea, 1)
				c.bitTest(nn, v, uint8(c.ea>>8))
			}
		}
	}

	for n := 0; n < 8; n++ {
		for col := 0; col < 8; col++ {
			op := uint8(0x80 + n*8 + col)
			nn, cc := uint(n), col
			t[op] = func(c *CPU) {
				v := c.rm(c.ea)
				c.nomreqAddr(c.ea, 1)
				res := resBit(nn, v)
				c.wm(c.ea, res)
				if cc != 6 {
					r8[cc].set(c, res)
				}
			}
		}
	}

	for n := 0; n < 8; n++ {
		for col := 0; col < 8; col++ {
			op := uint8(0xc0 + n*8 + col)
			nn, cc := uint(n), col
			t[op] = func(c *CPU) {
				v := c.rm(c.ea)
				c.nomreqAddr(c.ea, 1)
				res := setBit(nn, v)
				c.wm(c.ea, res)
				if cc != 6 {
					r8[cc].set(c, res)
				}
			}
		}
	}

	return t
}
