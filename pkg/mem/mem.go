// Package mem implements the flat, byte-addressable memory model:
// typed load/store with sign extension and the alignment checks that
// the RV32I half- and word-width accesses require.
package mem

import (
	"errors"
	"fmt"

	"github.com/bassosimone/rv32/pkg/isa"
)

// AddrBits is the number of low address bits retained by the memory
// window; the rest of the 32-bit address space is silently discarded.
// The specification leaves open whether an implementation models the
// source's four-bank layout or a flat buffer; this package implements
// the flat-buffer reading, masking exactly to 2^AddrBits-1 with no
// further division step (see DESIGN.md).
const AddrBits = 21

// Size is the size of the memory window in bytes: 2^21.
const Size = 1 << AddrBits

// addrMask is the bitmask every address is reduced to before indexing.
const addrMask = Size - 1

// ErrMisaligned indicates a half- or word-width access whose address
// did not satisfy the required alignment. This is a fatal condition:
// callers should abort the run with the wrapped diagnostic rather than
// attempt recovery.
var ErrMisaligned = errors.New("mem: misaligned access")

// ErrInvalidOp indicates that an InvalidLoad or InvalidStore sentinel
// reached Load or Store. Like ErrMisaligned, this is fatal.
var ErrInvalidOp = errors.New("mem: invalid load/store operation")

// LoadOp identifies a typed load.
type LoadOp int

// The load operations, plus InvalidLoad for mnemonics the memory
// subsystem does not recognize as loads.
const (
	InvalidLoad LoadOp = iota
	LoadByte
	LoadHalf
	LoadWord
	LoadByteUnsigned
	LoadHalfUnsigned
)

// StoreOp identifies a typed store.
type StoreOp int

// The store operations, plus InvalidStore.
const (
	InvalidStore StoreOp = iota
	StoreByte
	StoreHalf
	StoreWord
)

// Memory is a 2^21-byte zero-initialized byte-addressable buffer.
type Memory struct {
	buf [Size]byte
}

func mask(addr uint32) uint32 { return addr & addrMask }

// Fetch reads the 4 bytes at pc (after masking) and assembles them
// little-endian. There is no alignment fault on fetch; callers are
// expected to present 4-aligned program counters.
func (m *Memory) Fetch(pc uint32) uint32 {
	a := mask(pc)
	return uint32(m.buf[a]) |
		uint32(m.buf[mask(a+1)])<<8 |
		uint32(m.buf[mask(a+2)])<<16 |
		uint32(m.buf[mask(a+3)])<<24
}

// StoreByte writes the low 8 bits of value at addr. This is the
// primitive the ELF loader uses to populate memory one byte at a
// time; byte access has no alignment restriction.
func (m *Memory) StoreByte(addr uint32, value byte) {
	m.buf[mask(addr)] = value
}

// LoadByteUnsigned reads a single unsigned byte at addr.
func (m *Memory) LoadByteUnsigned(addr uint32) byte {
	return m.buf[mask(addr)]
}

// Load performs a typed load at addr. Half- and word-width loads
// require, respectively, 2- and 4-byte alignment; a violation is
// reported as ErrMisaligned. InvalidLoad always fails with
// ErrInvalidOp.
func (m *Memory) Load(op LoadOp, addr uint32) (int32, error) {
	a := mask(addr)
	switch op {
	case LoadByte:
		return int32(int8(m.buf[a])), nil
	case LoadByteUnsigned:
		return int32(m.buf[a]), nil
	case LoadHalf:
		if addr&1 != 0 {
			return 0, fmt.Errorf("%w: half load at 0x%x", ErrMisaligned, addr)
		}
		return int32(int16(m.readHalf(a))), nil
	case LoadHalfUnsigned:
		if addr&1 != 0 {
			return 0, fmt.Errorf("%w: half load at 0x%x", ErrMisaligned, addr)
		}
		return int32(m.readHalf(a)), nil
	case LoadWord:
		if addr&3 != 0 {
			return 0, fmt.Errorf("%w: word load at 0x%x", ErrMisaligned, addr)
		}
		return int32(m.readWord(a)), nil
	default:
		return 0, fmt.Errorf("%w: load at 0x%x", ErrInvalidOp, addr)
	}
}

// Store performs a typed store of value at addr. Half- and word-width
// stores require, respectively, 2- and 4-byte alignment; a violation
// is reported as ErrMisaligned. InvalidStore always fails with
// ErrInvalidOp.
func (m *Memory) Store(op StoreOp, addr uint32, value uint32) error {
	a := mask(addr)
	switch op {
	case StoreByte:
		m.buf[a] = byte(value)
		return nil
	case StoreHalf:
		if addr&1 != 0 {
			return fmt.Errorf("%w: half store at 0x%x", ErrMisaligned, addr)
		}
		m.buf[a] = byte(value)
		m.buf[mask(a+1)] = byte(value >> 8)
		return nil
	case StoreWord:
		if addr&3 != 0 {
			return fmt.Errorf("%w: word store at 0x%x", ErrMisaligned, addr)
		}
		m.buf[a] = byte(value)
		m.buf[mask(a+1)] = byte(value >> 8)
		m.buf[mask(a+2)] = byte(value >> 16)
		m.buf[mask(a+3)] = byte(value >> 24)
		return nil
	default:
		return fmt.Errorf("%w: store at 0x%x", ErrInvalidOp, addr)
	}
}

func (m *Memory) readHalf(a uint32) uint16 {
	return uint16(m.buf[a]) | uint16(m.buf[mask(a+1)])<<8
}

func (m *Memory) readWord(a uint32) uint32 {
	return uint32(m.buf[a]) |
		uint32(m.buf[mask(a+1)])<<8 |
		uint32(m.buf[mask(a+2)])<<16 |
		uint32(m.buf[mask(a+3)])<<24
}

// TranslateLoad maps a mnemonic onto its LoadOp, returning InvalidLoad
// for mnemonics that are not loads. This is a pure translation and
// never fails.
func TranslateLoad(m isa.Mnemonic) LoadOp {
	switch m {
	case isa.LB:
		return LoadByte
	case isa.LH:
		return LoadHalf
	case isa.LW:
		return LoadWord
	case isa.LBU:
		return LoadByteUnsigned
	case isa.LHU:
		return LoadHalfUnsigned
	default:
		return InvalidLoad
	}
}

// TranslateStore maps a mnemonic onto its StoreOp, returning
// InvalidStore for mnemonics that are not stores.
func TranslateStore(m isa.Mnemonic) StoreOp {
	switch m {
	case isa.SB:
		return StoreByte
	case isa.SH:
		return StoreHalf
	case isa.SW:
		return StoreWord
	default:
		return InvalidStore
	}
}
