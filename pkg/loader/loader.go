// Package loader provides the ELF chunk supplier external collaborator
// and the code that copies its chunks into a mem.Memory.
//
// ELF parsing itself is explicitly out of scope for the architectural
// model this repository centers on; the specification treats it as an
// external collaborator behind a {base_address, contents} interface.
// No example repository in the retrieved reference pack imports a
// third-party ELF reader, so this package is grounded on the standard
// library's debug/elf (see DESIGN.md).
package loader

import (
	"debug/elf"
	"fmt"
	"io"

	"github.com/bassosimone/rv32/pkg/mem"
)

// Chunk is one contiguous span of initialized memory: contents is
// copied into memory starting at BaseAddress.
type Chunk struct {
	BaseAddress uint32
	Contents    []byte
}

// ChunkSupplier produces the chunks of initial memory state for a run.
// Load implementations may fail (bad path, malformed image); such
// failures are loader errors per the error taxonomy and are reported
// to the caller rather than the process aborting inside the supplier.
type ChunkSupplier interface {
	Load() ([]Chunk, error)
}

// ELFSupplier reads loadable segments out of an ELF image via the
// standard library's debug/elf reader.
type ELFSupplier struct {
	path string
}

// NewELFSupplier returns a ChunkSupplier that reads the ELF image at
// path when Load is called.
func NewELFSupplier(path string) *ELFSupplier {
	return &ELFSupplier{path: path}
}

// Load opens the ELF image and returns one Chunk per PT_LOAD program
// header whose FileSiz is non-zero (segments with no file bytes are
// skipped), in program header order, with FileSiz bytes read from the
// file and the rest of the segment (MemSiz - FileSiz, e.g. a .bss
// tail) implicitly zero-filled by the caller's zero-initialized
// memory.
func (s *ELFSupplier) Load() ([]Chunk, error) {
	f, err := elf.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", s.path, err)
	}
	defer f.Close()

	var chunks []Chunk
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD || prog.Filesz == 0 {
			continue
		}
		data := make([]byte, prog.Filesz)
		if _, err := io.ReadFull(prog.Open(), data); err != nil {
			return nil, fmt.Errorf("loader: reading segment at 0x%x: %w", prog.Vaddr, err)
		}
		chunks = append(chunks, Chunk{BaseAddress: uint32(prog.Vaddr), Contents: data})
	}
	return chunks, nil
}

// LoadInto copies every chunk the supplier produces into m, one byte
// at a time via m.StoreByte, starting at each chunk's base address,
// exactly as the specification's ELF chunk supplier contract requires.
func LoadInto(m *mem.Memory, supplier ChunkSupplier) error {
	chunks, err := supplier.Load()
	if err != nil {
		return err
	}
	for _, c := range chunks {
		for i, b := range c.Contents {
			m.StoreByte(c.BaseAddress+uint32(i), b)
		}
	}
	return nil
}
