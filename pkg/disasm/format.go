package disasm

import "fmt"

// Columns selects which columns a disassembly row includes. When every
// field is false the caller should treat that as "show everything",
// per the CLI's convention that no toggles means all four columns.
type Columns struct {
	PC          bool
	Instruction bool
	ASCII       bool
	Assembly    bool
}

// ByteToASCII renders b as its printable ASCII character, or '.' when
// b falls outside the printable range [32, 126].
func ByteToASCII(b byte) byte {
	if b < 32 || b > 126 {
		return '.'
	}
	return b
}

// FormatRow renders one disassembly row for the instruction word at
// addr, honoring cols. bytes holds the four little-endian bytes of
// word, bytes[0] being the lowest address.
func FormatRow(addr, word uint32, bytes [4]byte, text string, cols Columns) string {
	all := !(cols.PC || cols.Instruction || cols.ASCII || cols.Assembly)
	out := ""
	if cols.PC || all {
		out += fmt.Sprintf("%8x: ", addr)
	}
	if cols.Instruction || all {
		out += fmt.Sprintf("%8x ", word)
	}
	if cols.ASCII || all {
		out += fmt.Sprintf("[%c%c%c%c] ",
			ByteToASCII(bytes[3]), ByteToASCII(bytes[2]),
			ByteToASCII(bytes[1]), ByteToASCII(bytes[0]))
	}
	if cols.Assembly || all {
		out += text
	}
	return out
}
