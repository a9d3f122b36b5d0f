package z80

// Register-file accessor tables used to build the dispatch tables
// programmatically instead of hand-writing every LD r,r'/ALU A,r
// combination, mirroring the regularity of the opcode encoding itself
// (opcode = 0b01dddsss for LD r,r', 0b10xxxsss for ALU A,r).

type regAccessor struct {
	get func(c *CPU) uint8
	set func(c *CPU, v uint8)
}

// r8 indexes the 3-bit register field: B C D E H L (HL) A.
var r8 = [8]regAccessor{
	{func(c *CPU) uint8 { return c.bc.Hi }, func(c *CPU, v uint8) { c.bc.Hi = v }},
	{func(c *CPU) uint8 { return c.bc.Lo }, func(c *CPU, v uint8) { c.bc.Lo = v }},
	{func(c *CPU) uint8 { return c.de.Hi }, func(c *CPU, v uint8) { c.de.Hi = v }},
	{func(c *CPU) uint8 { return c.de.Lo }, func(c *CPU, v uint8) { c.de.Lo = v }},
	{func(c *CPU) uint8 { return c.hl.Hi }, func(c *CPU, v uint8) { c.hl.Hi = v }},
	{func(c *CPU) uint8 { return c.hl.Lo }, func(c *CPU, v uint8) { c.hl.Lo = v }},
	{func(c *CPU) uint8 { return c.rm(c.hl.W()) }, func(c *CPU, v uint8) { c.wm(c.hl.W(), v) }},
	{func(c *CPU) uint8 { return c.af.Hi }, func(c *CPU, v uint8) { c.af.Hi = v }},
}

// aluOps indexes the 3-bit ALU-op field of the 0x80-0xBF and 0xC6-0xFE
// (ALU A,n) ranges: ADD ADC SUB SBC AND XOR OR CP.
var aluOps = [8]func(c *CPU, v uint8){
	func(c *CPU, v uint8) { c.addA(v, false) },
	func(c *CPU, v uint8) { c.addA(v, true) },
	func(c *CPU, v uint8) { c.subA(v, false) },
	func(c *CPU, v uint8) { c.subA(v, true) },
	func(c *CPU, v uint8) { c.andA(v) },
	func(c *CPU, v uint8) { c.xorA(v) },
	func(c *CPU, v uint8) { c.orA(v) },
	func(c *CPU, v uint8) { c.cpA(v) },
}

// pairSel selects one of a CPU's 16-bit register pairs by address, so a
// single generic handler (ldPairImm, incPair, ...) can serve BC/DE/HL/IX/IY.
type pairSel func(c *CPU) *pair

func selBC(c *CPU) *pair { return &c.bc }
func selDE(c *CPU) *pair { return &c.de }
func selHL(c *CPU) *pair { return &c.hl }
func selAF(c *CPU) *pair { return &c.af }
func selIX(c *CPU) *pair { return &c.ix }
func selIY(c *CPU) *pair { return &c.iy }

func ldPairImm(sel pairSel) func(*CPU) {
	return func(c *CPU) { sel(c).SetW(c.arg16()) }
}

func incPair(sel pairSel) func(*CPU) {
	return func(c *CPU) {
		p := sel(c)
		c.nomreqAddr(p.W(), 2)
		p.SetW(p.W() + 1)
	}
}

func decPair(sel pairSel) func(*CPU) {
	return func(c *CPU) {
		p := sel(c)
		c.nomreqAddr(p.W(), 2)
		p.SetW(p.W() - 1)
	}
}

func addHLLike(dst, sel pairSel) func(*CPU) {
	return func(c *CPU) {
		c.nomreqIR(7)
		c.add16(dst(c), sel(c).W())
	}
}

func pushPair(sel pairSel) func(*CPU) {
	return func(c *CPU) { c.push(sel(c)) }
}

func popPair(sel pairSel) func(*CPU) {
	return func(c *CPU) { c.pop(sel(c)) }
}

// condition indexes the 3-bit cc field: NZ Z NC C PO PE P M.
var condition = [8]func(c *CPU) bool{
	func(c *CPU) bool { return c.af.Lo&FlagZ == 0 },
	func(c *CPU) bool { return c.af.Lo&FlagZ != 0 },
	func(c *CPU) bool { return c.af.Lo&FlagC == 0 },
	func(c *CPU) bool { return c.af.Lo&FlagC != 0 },
	func(c *CPU) bool { return c.af.Lo&FlagP == 0 },
	func(c *CPU) bool { return c.af.Lo&FlagP != 0 },
	func(c *CPU) bool { return c.af.Lo&FlagS == 0 },
	func(c *CPU) bool { return c.af.Lo&FlagS != 0 },
}
