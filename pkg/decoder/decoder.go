// Package decoder turns a raw 32-bit instruction word into a
// structured, immutable Instruction value: the field extraction and
// sign extension that the rest of the pipeline builds on.
package decoder

import (
	"github.com/bassosimone/rv32/pkg/classify"
	"github.com/bassosimone/rv32/pkg/isa"
)

// Instruction is a decoded RV32I instruction. Rd, Rs1, Rs2 and Shamt
// are nil when the format does not carry them; Imm is nil exactly when
// Shamt is populated, or when the format has no immediate at all (R
// and Invalid). Construct instances only via Decode.
type Instruction struct {
	Format   isa.Format
	Mnemonic isa.Mnemonic
	Rd       *uint32
	Rs1      *uint32
	Rs2      *uint32
	Shamt    *uint32
	Imm      *int32
}

// Decode extracts opcode, funct3 and alt_bit from word, classifies the
// instruction, and populates the fields its format and mnemonic call
// for. Decoding is total: every 32-bit word produces an Instruction,
// never an error. Unrecognized words decode to the zero-value mnemonic
// isa.Invalid with isa.FormatInvalid and no optional fields set.
func Decode(word uint32) Instruction {
	opcode := word & 0x7F
	funct3 := (word >> 12) & 0x7
	altBit := (word>>30)&1 != 0

	format, mnemonic := classify.Classify(opcode, funct3, altBit)
	inst := Instruction{Format: format, Mnemonic: mnemonic}
	if format == isa.FormatInvalid {
		return inst
	}

	if classify.HasRd(format) {
		inst.Rd = u32ptr((word >> 7) & 0x1F)
	}
	if classify.HasRs1(format) {
		inst.Rs1 = u32ptr((word >> 15) & 0x1F)
	}
	if classify.HasRs2(format) {
		inst.Rs2 = u32ptr((word >> 20) & 0x1F)
	}
	if classify.HasShamt(mnemonic) {
		inst.Shamt = u32ptr((word >> 20) & 0x1F)
		return inst
	}

	switch format {
	case isa.FormatI:
		inst.Imm = i32ptr(signExtend(word>>20, 12))
	case isa.FormatS:
		raw := ((word >> 25) << 5) | ((word >> 7) & 0x1F)
		inst.Imm = i32ptr(signExtend(raw, 12))
	case isa.FormatB:
		raw := (((word >> 31) & 1) << 12) |
			(((word >> 7) & 1) << 11) |
			(((word >> 25) & 0x3F) << 5) |
			(((word >> 8) & 0xF) << 1)
		inst.Imm = i32ptr(signExtend(raw, 13))
	case isa.FormatU:
		v := word &^ 0xFFF
		inst.Imm = i32ptr(int32(v))
	case isa.FormatJ:
		raw := (((word >> 31) & 1) << 20) |
			(((word >> 12) & 0xFF) << 12) |
			(((word >> 20) & 1) << 11) |
			(((word >> 21) & 0x3FF) << 1)
		inst.Imm = i32ptr(signExtend(raw, 21))
	}
	return inst
}

// Equal implements the spec's equality rule: two Invalid instructions
// are always equal regardless of any other bits; otherwise two
// instructions are equal iff mnemonic and every optional field match.
func (i Instruction) Equal(other Instruction) bool {
	if i.Format == isa.FormatInvalid && other.Format == isa.FormatInvalid {
		return true
	}
	if i.Format != other.Format || i.Mnemonic != other.Mnemonic {
		return false
	}
	return eqU32(i.Rd, other.Rd) && eqU32(i.Rs1, other.Rs1) &&
		eqU32(i.Rs2, other.Rs2) && eqU32(i.Shamt, other.Shamt) &&
		eqI32(i.Imm, other.Imm)
}

// signExtend sign-extends the low `bits` bits of raw to a full 32-bit
// signed value, using an arithmetic left/right shift pair.
func signExtend(raw uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(raw<<shift) >> shift
}

func u32ptr(v uint32) *uint32 { return &v }
func i32ptr(v int32) *int32   { return &v }

func eqU32(a, b *uint32) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func eqI32(a, b *int32) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
