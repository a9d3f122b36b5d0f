// Package memory defines the basic interfaces for working with a Z80
// address space. The core (z80 package) only requires the narrow
// MemoryBus/IOBus shape it declares itself; this package provides a
// concrete, reusable implementation of that shape for hosts that just
// want a flat RAM image (as a self-test driver does).
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Bank is a byte addressable memory region. Reads/writes are infallible
// by contract (per the z80 core's bus contract); out of range addresses
// are masked into range rather than erroring.
type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM regions this is a
	// silent no-op.
	Write(addr uint16, val uint8)
	// PowerOn (re)initializes the bank's contents.
	PowerOn()
	// Parent holds a reference (if non-nil) to an enclosing memory
	// controller, for hosts that chain multiple banks together to model
	// a larger address space (bank switching, mirroring, etc).
	Parent() Bank
	// DatabusVal returns the last value that crossed this bank's data bus.
	DatabusVal() uint8
}

// LatestDatabusVal hunts up a chain of Banks until it finds the outermost
// one and returns the DatabusVal from it. Some hosts need this because Z80
// undocumented opcodes (e.g. OUT (C),0 vs OUT (C),255 variants on some
// peripherals) depend on a floating bus value.
func LatestDatabusVal(b Bank) uint8 {
	if b.Parent() != nil {
		return LatestDatabusVal(b.Parent())
	}
	return b.DatabusVal()
}

// ram implements a flat read/write Bank of the given size.
type ram struct {
	data       []uint8
	parent     Bank
	databusVal uint8
}

// NewRAM creates a R/W RAM bank of the given size. Size must be a power of
// 2 and no larger than 64KiB (the full Z80 address space); smaller sizes
// alias on Read/Write the same way real partial-decode hardware does.
func NewRAM(size int, parent Bank) (Bank, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	b := &ram{parent: parent}
	b.data = make([]uint8, size)
	return b, nil
}

// Read implements Bank.
func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.data) - 1)
	val := r.data[addr]
	r.databusVal = val
	return val
}

// Write implements Bank.
func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.data) - 1)
	r.databusVal = val
	r.data[addr] = val
}

// PowerOn implements Bank and randomizes the RAM, matching real hardware's
// undefined power-on contents (this is what ZEXALL-style exercisers expect
// to not matter — the programs under test always load their own data).
func (r *ram) PowerOn() {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.data {
		r.data[i] = uint8(src.Intn(256))
	}
}

// Parent implements Bank.
func (r *ram) Parent() Bank {
	return r.parent
}

// DatabusVal implements Bank.
func (r *ram) DatabusVal() uint8 {
	return r.databusVal
}

// LoadImage copies b into the bank starting at offset, wrapping per Write's
// own masking rules if the image runs past the bank's size.
func LoadImage(bank Bank, offset uint16, b []byte) {
	for i, v := range b {
		bank.Write(offset+uint16(i), v)
	}
}
