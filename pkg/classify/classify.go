// Package classify maps the (opcode, funct3, alt_bit) triple extracted
// from a raw instruction word onto a concrete mnemonic and instruction
// format, and answers the field-presence questions the decoder needs.
package classify

import "github.com/bassosimone/rv32/pkg/isa"

// Classify implements the two-axis RV32I decode table: the major
// opcode selects the format and (for most opcodes) a sub-table keyed
// by funct3, with altBit (bit 30 of the instruction word) disambiguating
// ADD/SUB, SRL/SRA and SRLI/SRAI. Any opcode, funct3 or altBit
// combination this table does not recognize yields (FormatInvalid,
// isa.Invalid); this function never fails.
func Classify(opcode, funct3 uint32, altBit bool) (isa.Format, isa.Mnemonic) {
	switch opcode {
	case isa.OpLUI:
		return isa.FormatU, isa.LUI
	case isa.OpAUIPC:
		return isa.FormatU, isa.AUIPC
	case isa.OpJAL:
		return isa.FormatJ, isa.JAL
	case isa.OpJALR:
		if funct3 == 0 {
			return isa.FormatI, isa.JALR
		}
	case isa.OpBranch:
		switch funct3 {
		case 0:
			return isa.FormatB, isa.BEQ
		case 1:
			return isa.FormatB, isa.BNE
		case 4:
			return isa.FormatB, isa.BLT
		case 5:
			return isa.FormatB, isa.BGE
		case 6:
			return isa.FormatB, isa.BLTU
		case 7:
			return isa.FormatB, isa.BGEU
		}
	case isa.OpLoad:
		switch funct3 {
		case 0:
			return isa.FormatI, isa.LB
		case 1:
			return isa.FormatI, isa.LH
		case 2:
			return isa.FormatI, isa.LW
		case 4:
			return isa.FormatI, isa.LBU
		case 5:
			return isa.FormatI, isa.LHU
		}
	case isa.OpStore:
		switch funct3 {
		case 0:
			return isa.FormatS, isa.SB
		case 1:
			return isa.FormatS, isa.SH
		case 2:
			return isa.FormatS, isa.SW
		}
	case isa.OpOp:
		switch funct3 {
		case 0:
			if altBit {
				return isa.FormatR, isa.SUB
			}
			return isa.FormatR, isa.ADD
		case 1:
			return isa.FormatR, isa.SLL
		case 2:
			return isa.FormatR, isa.SLT
		case 3:
			return isa.FormatR, isa.SLTU
		case 4:
			return isa.FormatR, isa.XOR
		case 5:
			if altBit {
				return isa.FormatR, isa.SRA
			}
			return isa.FormatR, isa.SRL
		case 6:
			return isa.FormatR, isa.OR
		case 7:
			return isa.FormatR, isa.AND
		}
	case isa.OpImm:
		switch funct3 {
		case 0:
			return isa.FormatI, isa.ADDI
		case 1:
			return isa.FormatI, isa.SLLI
		case 2:
			return isa.FormatI, isa.SLTI
		case 3:
			return isa.FormatI, isa.SLTIU
		case 4:
			return isa.FormatI, isa.XORI
		case 5:
			if altBit {
				return isa.FormatI, isa.SRAI
			}
			return isa.FormatI, isa.SRLI
		case 6:
			return isa.FormatI, isa.ORI
		case 7:
			return isa.FormatI, isa.ANDI
		}
	}
	return isa.FormatInvalid, isa.Invalid
}

// HasRd reports whether an instruction of the given format carries a
// destination register.
func HasRd(f isa.Format) bool {
	switch f {
	case isa.FormatR, isa.FormatI, isa.FormatU, isa.FormatJ:
		return true
	default:
		return false
	}
}

// HasRs1 reports whether an instruction of the given format carries a
// first source register.
func HasRs1(f isa.Format) bool {
	switch f {
	case isa.FormatR, isa.FormatI, isa.FormatS, isa.FormatB:
		return true
	default:
		return false
	}
}

// HasRs2 reports whether an instruction of the given format carries a
// second source register.
func HasRs2(f isa.Format) bool {
	switch f {
	case isa.FormatR, isa.FormatS, isa.FormatB:
		return true
	default:
		return false
	}
}

// HasShamt reports whether mnemonic m is one of the shift-immediate
// forms, which carry a shift amount instead of a full immediate.
func HasShamt(m isa.Mnemonic) bool {
	switch m {
	case isa.SLLI, isa.SRLI, isa.SRAI:
		return true
	default:
		return false
	}
}
