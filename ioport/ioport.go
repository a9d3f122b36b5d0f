// Package ioport defines the basic interfaces for working with a Z80 I/O
// bus (IN/OUT address space), generalizing the single-direction Port8
// interface from jmchacon/6502's io package to the Z80's bidirectional,
// 16-bit-addressed port space (the full address bus, A7-A0 from C and
// A15-A8 from B/the high byte of a 16-bit port op, is presented on IN/OUT).
package ioport

// Port is a single bidirectional I/O port.
type Port interface {
	// Input returns the current value being presented on this port.
	Input() uint8
	// Output latches a value written to this port.
	Output(val uint8)
}

// Bus maps the full 16-bit port address space down to 256 addressable
// ports (indexed by the low 8 bits, as most real Z80 peripherals decode).
// Unmapped ports float to 0xFF, matching an open data bus on most home
// computers of the era.
type Bus struct {
	ports [256]Port
}

// NewBus returns an empty Bus; every port floats until Attach is called.
func NewBus() *Bus {
	return &Bus{}
}

// Attach wires a Port into the given 8-bit port address (mirrored across
// the 16-bit space at addr&0xFF).
func (b *Bus) Attach(addr uint8, p Port) {
	b.ports[addr] = p
}

// Read implements the z80.IOBus interface.
func (b *Bus) Read(port uint16) uint8 {
	if p := b.ports[uint8(port)]; p != nil {
		return p.Input()
	}
	return 0xFF
}

// Write implements the z80.IOBus interface.
func (b *Bus) Write(port uint16, val uint8) {
	if p := b.ports[uint8(port)]; p != nil {
		p.Output(val)
	}
}

// FuncPort adapts a pair of plain functions to the Port interface, useful
// for wiring the CP/M-style BDOS write-character/write-string hooks a self
// test driver needs without defining a named type per hook.
type FuncPort struct {
	In  func() uint8
	Out func(uint8)
}

// Input implements Port.
func (f FuncPort) Input() uint8 {
	if f.In == nil {
		return 0xFF
	}
	return f.In()
}

// Output implements Port.
func (f FuncPort) Output(val uint8) {
	if f.Out != nil {
		f.Out(val)
	}
}
