// Package browse implements an interactive disassembly viewer: a
// scrollable table of address/hex/ascii/mnemonic rows over a loaded
// ELF chunk, for the rv32dis --browse flag.
package browse

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/bassosimone/rv32/pkg/decoder"
	"github.com/bassosimone/rv32/pkg/disasm"
	"github.com/bassosimone/rv32/pkg/loader"
)

// Row is one decoded instruction ready for display.
type Row struct {
	Address uint32
	Word    uint32
	Bytes   [4]byte
	Text    string
}

// BuildRows decodes every 4-byte-aligned word in chunk into a display
// row.
func BuildRows(chunk loader.Chunk) ([]Row, error) {
	var rows []Row
	n := len(chunk.Contents) &^ 3
	for off := 0; off < n; off += 4 {
		b := chunk.Contents[off : off+4]
		word := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		inst := decoder.Decode(word)
		text, err := disasm.Render(inst)
		if err != nil {
			return nil, fmt.Errorf("browse: rendering offset %d: %w", off, err)
		}
		rows = append(rows, Row{
			Address: chunk.BaseAddress + uint32(off),
			Word:    word,
			Bytes:   [4]byte{b[0], b[1], b[2], b[3]},
			Text:    text,
		})
	}
	return rows, nil
}

// Browser is the tview-backed interactive disassembly viewer.
type Browser struct {
	app   *tview.Application
	table *tview.Table
	rows  []Row
}

// NewBrowser builds a Browser over rows. Call Run to take over the
// terminal.
func NewBrowser(rows []Row) *Browser {
	b := &Browser{
		app:   tview.NewApplication(),
		table: tview.NewTable().SetBorders(false).SetFixed(1, 0),
		rows:  rows,
	}
	b.populate()
	b.table.SetSelectable(true, false)
	b.table.SetBorder(true).SetTitle(" rv32dis — press q to quit ")
	b.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Rune() == 'q' {
			b.app.Stop()
			return nil
		}
		return ev
	})
	b.app.SetRoot(b.table, true).SetFocus(b.table)
	return b
}

func (b *Browser) populate() {
	headers := []string{"address", "word", "bytes", "disassembly"}
	for col, h := range headers {
		cell := tview.NewTableCell(h).SetSelectable(false).SetTextColor(tcell.ColorYellow)
		b.table.SetCell(0, col, cell)
	}
	for i, r := range b.rows {
		row := i + 1
		b.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%08x", r.Address)))
		b.table.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%08x", r.Word)))
		b.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("[%c%c%c%c]",
			disasm.ByteToASCII(r.Bytes[3]), disasm.ByteToASCII(r.Bytes[2]),
			disasm.ByteToASCII(r.Bytes[1]), disasm.ByteToASCII(r.Bytes[0]))))
		b.table.SetCell(row, 3, tview.NewTableCell(r.Text))
	}
}

// Run takes over the terminal until the user quits.
func (b *Browser) Run() error {
	return b.app.Run()
}
