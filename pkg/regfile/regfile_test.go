package regfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWrite(t *testing.T) {
	var r RegisterFile
	r.Write(5, 42)
	v1, v2 := r.Read(5, 5)
	assert.Equal(t, int32(42), v1)
	assert.Equal(t, int32(42), v2)
}

func TestZeroRegisterIsHardwired(t *testing.T) {
	var r RegisterFile
	r.Write(0, 1234)
	v, _ := r.Read(0, 0)
	assert.Equal(t, int32(0), v)
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	var r RegisterFile
	r.Write(32, 99)
	r.Write(1000, 99)
	v1, v2 := r.Read(32, 1000)
	assert.Equal(t, int32(0), v1)
	assert.Equal(t, int32(0), v2)
}

func TestDualRead(t *testing.T) {
	var r RegisterFile
	r.Write(1, 10)
	r.Write(2, 20)
	v1, v2 := r.Read(1, 2)
	assert.Equal(t, int32(10), v1)
	assert.Equal(t, int32(20), v2)
}
