package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bassosimone/rv32/pkg/isa"
)

func TestOpBranchTable(t *testing.T) {
	cases := []struct {
		funct3 uint32
		want   isa.Mnemonic
	}{
		{0, isa.BEQ}, {1, isa.BNE}, {4, isa.BLT},
		{5, isa.BGE}, {6, isa.BLTU}, {7, isa.BGEU},
	}
	for _, c := range cases {
		format, mnemonic := Classify(isa.OpBranch, c.funct3, false)
		assert.Equal(t, isa.FormatB, format)
		assert.Equal(t, c.want, mnemonic)
	}
	format, mnemonic := Classify(isa.OpBranch, 2, false)
	assert.Equal(t, isa.FormatInvalid, format)
	assert.Equal(t, isa.Invalid, mnemonic)
}

func TestAltBitDisambiguation(t *testing.T) {
	_, add := Classify(isa.OpOp, 0, false)
	_, sub := Classify(isa.OpOp, 0, true)
	assert.Equal(t, isa.ADD, add)
	assert.Equal(t, isa.SUB, sub)

	_, srl := Classify(isa.OpOp, 5, false)
	_, sra := Classify(isa.OpOp, 5, true)
	assert.Equal(t, isa.SRL, srl)
	assert.Equal(t, isa.SRA, sra)

	_, srli := Classify(isa.OpImm, 5, false)
	_, srai := Classify(isa.OpImm, 5, true)
	assert.Equal(t, isa.SRLI, srli)
	assert.Equal(t, isa.SRAI, srai)
}

func TestJALRRequiresFunct3Zero(t *testing.T) {
	format, mnemonic := Classify(isa.OpJALR, 0, false)
	assert.Equal(t, isa.FormatI, format)
	assert.Equal(t, isa.JALR, mnemonic)

	format, mnemonic = Classify(isa.OpJALR, 1, false)
	assert.Equal(t, isa.FormatInvalid, format)
	assert.Equal(t, isa.Invalid, mnemonic)
}

func TestUnknownOpcodeIsInvalid(t *testing.T) {
	format, mnemonic := Classify(0x7F, 0, false)
	assert.Equal(t, isa.FormatInvalid, format)
	assert.Equal(t, isa.Invalid, mnemonic)
}

func TestFieldPresence(t *testing.T) {
	assert.True(t, HasRd(isa.FormatR))
	assert.True(t, HasRd(isa.FormatU))
	assert.False(t, HasRd(isa.FormatS))
	assert.False(t, HasRd(isa.FormatB))

	assert.True(t, HasRs1(isa.FormatB))
	assert.False(t, HasRs1(isa.FormatU))

	assert.True(t, HasRs2(isa.FormatS))
	assert.False(t, HasRs2(isa.FormatI))

	assert.True(t, HasShamt(isa.SLLI))
	assert.True(t, HasShamt(isa.SRAI))
	assert.False(t, HasShamt(isa.ADDI))
}
