package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32/pkg/mem"
)

type fakeSupplier struct {
	chunks []Chunk
	err    error
}

func (f fakeSupplier) Load() ([]Chunk, error) { return f.chunks, f.err }

var _ ChunkSupplier = fakeSupplier{}

func TestLoadIntoCopiesBytesAtBaseAddress(t *testing.T) {
	var m mem.Memory
	supplier := fakeSupplier{chunks: []Chunk{
		{BaseAddress: 0x1000, Contents: []byte{0xde, 0xad, 0xbe, 0xef}},
	}}
	require.NoError(t, LoadInto(&m, supplier))

	got, err := m.Load(mem.LoadWord, 0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xefbeadde), uint32(got))
}

func TestLoadIntoMultipleChunks(t *testing.T) {
	var m mem.Memory
	supplier := fakeSupplier{chunks: []Chunk{
		{BaseAddress: 0, Contents: []byte{1, 2}},
		{BaseAddress: 0x2000, Contents: []byte{3, 4}},
	}}
	require.NoError(t, LoadInto(&m, supplier))

	b0, _ := m.Load(mem.LoadByteUnsigned, 0)
	b1, _ := m.Load(mem.LoadByteUnsigned, 0x2000)
	assert.Equal(t, int32(1), b0)
	assert.Equal(t, int32(3), b1)
}

func TestLoadIntoPropagatesSupplierError(t *testing.T) {
	var m mem.Memory
	supplier := fakeSupplier{err: assert.AnError}
	err := LoadInto(&m, supplier)
	require.Error(t, err)
}
