package z80

import "sync"

// Precomputed flag/arithmetic tables, built once and shared by every CPU
// instance (§3 Lifecycle, §5 shared resource policy). Ported from the
// reference MAME-derived core (original_source/z80.py initialize_tables):
// the SZHVC_add/sub tables are indexed (carry<<16)|oldA<<8|newResult and
// encode the full F byte output of an 8-bit add/adc or sub/sbc/cp, with the
// undocumented Y/X bits taken from the result.
var (
	szTable     [256]uint8
	szBitTable  [256]uint8
	szpTable    [256]uint8
	szhvIncTable [256]uint8
	szhvDecTable [256]uint8
	szhvcAddTable [2 * 65536]uint8
	szhvcSubTable [2 * 65536]uint8
	s8Table     [256]int8

	tablesOnce sync.Once
)

func initTables() {
	tablesOnce.Do(func() {
		for oldval := 0; oldval < 256; oldval++ {
			for newval := 0; newval < 256; newval++ {
				idx := oldval*256 + newval
				idxc := 256*256 + oldval*256 + newval

				// add/adc without carry-in.
				val := newval - oldval
				var f uint8
				if newval != 0 {
					if newval&0x80 != 0 {
						f = FlagS
					}
				} else {
					f = FlagZ
				}
				f |= uint8(newval) & (FlagY | FlagX)
				if (newval & 0x0f) < (oldval & 0x0f) {
					f |= FlagH
				}
				if newval < oldval {
					f |= FlagC
				}
				if (val^oldval^0x80)&(val^newval)&0x80 != 0 {
					f |= FlagV
				}
				szhvcAddTable[idx] = f

				// add/adc with carry-in.
				val = newval - oldval - 1
				f = 0
				if newval != 0 {
					if newval&0x80 != 0 {
						f = FlagS
					}
				} else {
					f = FlagZ
				}
				f |= uint8(newval) & (FlagY | FlagX)
				if (newval & 0x0f) <= (oldval & 0x0f) {
					f |= FlagH
				}
				if newval <= oldval {
					f |= FlagC
				}
				if (val^oldval^0x80)&(val^newval)&0x80 != 0 {
					f |= FlagV
				}
				szhvcAddTable[idxc] = f

				// cp/sub/sbc without carry-in.
				val = oldval - newval
				f = FlagN
				if newval != 0 {
					if newval&0x80 != 0 {
						f |= FlagS
					}
				} else {
					f |= FlagZ
				}
				f |= uint8(newval) & (FlagY | FlagX)
				if (newval & 0x0f) > (oldval & 0x0f) {
					f |= FlagH
				}
				if newval > oldval {
					f |= FlagC
				}
				if (val^oldval)&(oldval^newval)&0x80 != 0 {
					f |= FlagV
				}
				szhvcSubTable[idx] = f

				// sbc with carry-in.
				val = oldval - newval - 1
				f = FlagN
				if newval != 0 {
					if newval&0x80 != 0 {
						f |= FlagS
					}
				} else {
					f |= FlagZ
				}
				f |= uint8(newval) & (FlagY | FlagX)
				if (newval & 0x0f) >= (oldval & 0x0f) {
					f |= FlagH
				}
				if newval >= oldval {
					f |= FlagC
				}
				if (val^oldval)&(oldval^newval)&0x80 != 0 {
					f |= FlagV
				}
				szhvcSubTable[idxc] = f
			}
		}

		for i := 0; i < 256; i++ {
			u := uint8(i)
			var sz uint8
			if u != 0 {
				sz = u & FlagS
			} else {
				sz = FlagZ
			}
			sz |= u & (FlagY | FlagX)
			szTable[i] = sz

			var szBit uint8
			if u != 0 {
				szBit = u & FlagS
			} else {
				szBit = FlagZ | FlagP
			}
			szBit |= u & (FlagY | FlagX)
			szBitTable[i] = szBit

			p := 0
			for b := uint(0); b < 8; b++ {
				if u&(1<<b) != 0 {
					p++
				}
			}
			szp := sz
			if p&1 == 0 {
				szp |= FlagP
			}
			szpTable[i] = szp

			inc := sz
			if i == 0x80 {
				inc |= FlagV
			}
			if i&0x0f == 0x00 {
				inc |= FlagH
			}
			szhvIncTable[i] = inc

			dec := sz | FlagN
			if i == 0x7f {
				dec |= FlagV
			}
			if i&0x0f == 0x0f {
				dec |= FlagH
			}
			szhvDecTable[i] = dec

			s8Table[i] = int8(u)
		}
	})
}
