// Package isa contains the compile-time constants describing the RV32I
// base integer instruction set: the major opcodes, the instruction
// formats, the mnemonic set, and the ABI register names.
//
// Everything here is a pure lookup table. No decoding logic lives in
// this package; see pkg/classify and pkg/decoder for that.
package isa

import "fmt"

// The following constants are the nine RV32I major opcodes (bits[6:0]
// of the instruction word) that this subset recognizes. Any other
// 7-bit value classifies as Invalid.
const (
	OpLUI    = 0x37
	OpAUIPC  = 0x17
	OpJAL    = 0x6F
	OpJALR   = 0x67
	OpBranch = 0x63
	OpLoad   = 0x03
	OpStore  = 0x23
	OpOp     = 0x33
	OpImm    = 0x13
)

// Format is the RISC-V encoding class of an instruction, determined
// solely by its opcode.
type Format int

// The possible instruction formats, plus Invalid for unrecognized
// opcodes.
const (
	FormatInvalid Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatU:
		return "U"
	case FormatJ:
		return "J"
	default:
		return "Invalid"
	}
}

// Mnemonic identifies one of the 37 RV32I operations, or Invalid for
// an unrecognized encoding.
type Mnemonic int

// The full RV32I mnemonic set.
const (
	Invalid Mnemonic = iota
	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI
	ADD
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND
	LB
	LH
	LW
	LBU
	LHU
	SB
	SH
	SW
	JAL
	JALR
	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU
	LUI
	AUIPC
)

var mnemonicNames = [...]string{
	Invalid: "invalid",
	ADDI:    "addi", SLTI: "slti", SLTIU: "sltiu", XORI: "xori", ORI: "ori",
	ANDI: "andi", SLLI: "slli", SRLI: "srli", SRAI: "srai",
	ADD: "add", SUB: "sub", SLL: "sll", SLT: "slt", SLTU: "sltu",
	XOR: "xor", SRL: "srl", SRA: "sra", OR: "or", AND: "and",
	LB: "lb", LH: "lh", LW: "lw", LBU: "lbu", LHU: "lhu",
	SB: "sb", SH: "sh", SW: "sw",
	JAL: "jal", JALR: "jalr",
	BEQ: "beq", BNE: "bne", BLT: "blt", BGE: "bge", BLTU: "bltu", BGEU: "bgeu",
	LUI: "lui", AUIPC: "auipc",
}

func (m Mnemonic) String() string {
	if int(m) < 0 || int(m) >= len(mnemonicNames) || mnemonicNames[m] == "" {
		return "invalid"
	}
	return mnemonicNames[m]
}

// registerNames holds the ABI name for each of the 32 architectural
// registers, per the RISC-V calling convention.
var registerNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0/fp", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterName returns the ABI name of register reg. An index outside
// 0..31 is a programming error, reported here as a non-nil error so
// that callers can abort the run with a diagnostic rather than crash.
func RegisterName(reg uint32) (string, error) {
	if reg >= uint32(len(registerNames)) {
		return "", fmt.Errorf("isa: register index %d out of range 0..31", reg)
	}
	return registerNames[reg], nil
}
