package disasm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32/pkg/decoder"
	"github.com/bassosimone/rv32/pkg/isa"
)

func regIdx(v uint32) *uint32 { return &v }
func immVal(v int32) *int32   { return &v }

func TestInvalidRendersLiteral(t *testing.T) {
	text, err := Render(decoder.Decode(0))
	require.NoError(t, err)
	assert.Equal(t, "Invalid!", text)
}

func TestNopCollapse(t *testing.T) {
	inst := decoder.Decode(0x00000013) // addi x0,x0,0
	text, err := Render(inst)
	require.NoError(t, err)
	assert.Equal(t, "nop", text)
}

func TestRetCollapse(t *testing.T) {
	inst := decoder.Decode(0x00008067) // jalr x0,x1,0
	text, err := Render(inst)
	require.NoError(t, err)
	assert.Equal(t, "ret", text)
}

func TestMvCollapse(t *testing.T) {
	inst := decoder.Decode(0x00058513) // addi a0,a1,0
	text, err := Render(inst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "mv"))
	assert.Contains(t, text, "a0,a1")
}

func TestNegCollapse(t *testing.T) {
	inst := decoder.Decode(0x40058533) // sub a0,a1,zero
	text, err := Render(inst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "neg"))
}

func TestBLTRs1ZeroPreservesNonCanonicalMapping(t *testing.T) {
	// rs1=x0, BLT rs2,off collapses to bgez per the preserved table,
	// not bltz (the ABI-canonical mapping for this shape).
	inst := decoder.Instruction{
		Format:   isa.FormatB,
		Mnemonic: isa.BLT,
		Rs1:      regIdx(0),
		Rs2:      regIdx(5),
		Imm:      immVal(16),
	}
	text, err := Render(inst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "bgez"))
}

func TestCanonicalRFormat(t *testing.T) {
	inst := decoder.Decode(0x00c58533) // add a0,a1,a2
	text, err := Render(inst)
	require.NoError(t, err)
	assert.Equal(t, "add     a0,a1,a2", text)
}

func TestByteToASCII(t *testing.T) {
	assert.Equal(t, byte('.'), ByteToASCII(128))
	assert.Equal(t, byte('a'), ByteToASCII('a'))
	assert.Equal(t, byte('A'), ByteToASCII('A'))
	assert.Equal(t, byte('.'), ByteToASCII(0))
}
