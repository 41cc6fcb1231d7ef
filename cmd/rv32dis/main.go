// Command rv32dis disassembles the loadable segments of an RV32I ELF
// image to stdout, or browses them interactively with --browse.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32/pkg/browse"
	"github.com/bassosimone/rv32/pkg/config"
	"github.com/bassosimone/rv32/pkg/decoder"
	"github.com/bassosimone/rv32/pkg/disasm"
	"github.com/bassosimone/rv32/pkg/loader"
)

// Version information; overridden at build time with:
//
//	go build -ldflags "-X main.version=v1.2.3 -X main.commit=<sha>"
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	log.SetFlags(0)

	var showPC, showInstruction, showASCII, showAssembly, doBrowse bool

	root := &cobra.Command{
		Use:     "rv32dis INPUTFILE",
		Short:   "Disassemble an RV32I ELF image",
		Version: fmt.Sprintf("%s (commit %s)", version, commit),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], disasm.Columns{
				PC: showPC, Instruction: showInstruction,
				ASCII: showASCII, Assembly: showAssembly,
			}, doBrowse)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&showPC, "pc", "p", false, "show the program counter column")
	flags.BoolVarP(&showInstruction, "instruction", "i", false, "show the raw instruction word column")
	flags.BoolVarP(&showAssembly, "assembly", "a", false, "show the disassembled text column")
	flags.BoolVarP(&showASCII, "ascii", "c", false, "show the ASCII gutter column")
	flags.BoolVar(&doBrowse, "browse", false, "open an interactive disassembly browser")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(path string, cols disasm.Columns, doBrowse bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cols == (disasm.Columns{}) {
		cols = disasm.Columns{
			PC: cfg.Disassembler.ShowPC, Instruction: cfg.Disassembler.ShowHex,
			ASCII: cfg.Disassembler.ShowAscii, Assembly: cfg.Disassembler.ShowAsm,
		}
	}

	supplier := loader.NewELFSupplier(path)
	chunks, err := supplier.Load()
	if err != nil {
		return err
	}

	if doBrowse {
		return browseChunks(chunks)
	}
	return printChunks(chunks, cols)
}

func printChunks(chunks []loader.Chunk, cols disasm.Columns) error {
	for _, chunk := range chunks {
		fmt.Printf("%x\n", chunk.BaseAddress)
		n := len(chunk.Contents) &^ 3
		for off := 0; off < n; off += 4 {
			b := chunk.Contents[off : off+4]
			word := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
			addr := chunk.BaseAddress + uint32(off)
			inst := decoder.Decode(word)
			text, err := disasm.Render(inst)
			if err != nil {
				return fmt.Errorf("rv32dis: %w", err)
			}
			fmt.Println(disasm.FormatRow(addr, word, [4]byte{b[0], b[1], b[2], b[3]}, text, cols))
		}
	}
	return nil
}

func browseChunks(chunks []loader.Chunk) error {
	var rows []browse.Row
	for _, chunk := range chunks {
		r, err := browse.BuildRows(chunk)
		if err != nil {
			return err
		}
		rows = append(rows, r...)
	}
	return browse.NewBrowser(rows).Run()
}
