package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32/pkg/isa"
)

func TestDecodeADDIPositiveImm(t *testing.T) {
	inst := Decode(0x00f1_8213)
	assert.Equal(t, isa.FormatI, inst.Format)
	assert.Equal(t, isa.ADDI, inst.Mnemonic)
	require.NotNil(t, inst.Rd)
	assert.Equal(t, uint32(4), *inst.Rd)
	require.NotNil(t, inst.Rs1)
	assert.Equal(t, uint32(3), *inst.Rs1)
	require.NotNil(t, inst.Imm)
	assert.Equal(t, int32(15), *inst.Imm)
}

func TestDecodeADDINegativeImm(t *testing.T) {
	inst := Decode(0xff11_8213)
	assert.Equal(t, isa.ADDI, inst.Mnemonic)
	require.NotNil(t, inst.Imm)
	assert.Equal(t, int32(-15), *inst.Imm)
}

func TestDecodeSRAIWithShamt(t *testing.T) {
	inst := Decode(0x4061_d213)
	assert.Equal(t, isa.SRAI, inst.Mnemonic)
	require.NotNil(t, inst.Shamt)
	assert.Equal(t, uint32(6), *inst.Shamt)
	assert.Nil(t, inst.Imm)
}

func TestDecodeJAL(t *testing.T) {
	inst := Decode(0xf79f_f0ef)
	assert.Equal(t, isa.FormatJ, inst.Format)
	assert.Equal(t, isa.JAL, inst.Mnemonic)
	require.NotNil(t, inst.Rd)
	assert.Equal(t, uint32(1), *inst.Rd)
	require.NotNil(t, inst.Imm)
	assert.Equal(t, int32(-136), *inst.Imm)
}

func TestDecodeInvalidOpcode(t *testing.T) {
	inst := Decode(0)
	assert.Equal(t, isa.FormatInvalid, inst.Format)
	assert.Equal(t, isa.Invalid, inst.Mnemonic)
	assert.Nil(t, inst.Rd)
	assert.Nil(t, inst.Rs1)
	assert.Nil(t, inst.Rs2)
	assert.Nil(t, inst.Shamt)
	assert.Nil(t, inst.Imm)
}

func TestInvalidEqualityIgnoresOtherBits(t *testing.T) {
	a := Decode(0)          // opcode 0, unassigned
	b := Decode(0xFFFFFFFF) // opcode 0x7F, also unassigned
	assert.True(t, a.Equal(b))
}

func TestDecoderIsTotal(t *testing.T) {
	// Sparse sweep across the 32-bit space; Decode must never panic
	// and must always produce a well-formed Instruction.
	w := uint32(0)
	for i := 0; i < 4096; i++ {
		inst := Decode(w)
		if inst.Format != isa.FormatInvalid {
			_ = inst.Mnemonic.String()
		}
		w += 0x01020304
	}
}

func TestBranchImmediateLSBAlwaysZero(t *testing.T) {
	inst := Decode(0xfe00_0ee3)
	assert.Equal(t, isa.BEQ, inst.Mnemonic)
	require.NotNil(t, inst.Imm)
	assert.Equal(t, int32(0), *inst.Imm&1)
}
