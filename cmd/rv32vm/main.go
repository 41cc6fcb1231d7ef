// Command rv32vm loads an RV32I ELF image and runs the fetch-decode
// simulator loop against it, optionally executing register and memory
// side effects.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bassosimone/rv32/pkg/config"
	"github.com/bassosimone/rv32/pkg/loader"
	"github.com/bassosimone/rv32/pkg/mem"
	"github.com/bassosimone/rv32/pkg/sim"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	log.SetFlags(0)

	var execute, trace bool
	var entry string

	root := &cobra.Command{
		Use:     "rv32vm INPUTFILE",
		Short:   "Simulate an RV32I ELF image",
		Version: fmt.Sprintf("%s (commit %s)", version, commit),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], execute, trace, entry)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&execute, "execute", "x", false, "execute ALU/memory side effects instead of only fetch-decode-print")
	flags.BoolVarP(&trace, "trace", "t", false, "print a trace line per executed instruction to stderr")
	flags.StringVarP(&entry, "entry", "e", "", "override the default entry point (e.g. 0x1000)")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(path string, execute, trace bool, entryFlag string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var m mem.Memory
	supplier := loader.NewELFSupplier(path)
	if err := loader.LoadInto(&m, supplier); err != nil {
		return err
	}

	entry := cfg.Simulator.DefaultEntry
	if entryFlag != "" {
		entry = entryFlag
	}
	pc, err := parseAddr(entry)
	if err != nil {
		return fmt.Errorf("rv32vm: invalid entry point %q: %w", entry, err)
	}

	opts := sim.Options{
		PC:      pc,
		Execute: execute || cfg.Simulator.Execute,
		Out:     os.Stdout,
	}
	if trace || cfg.Simulator.Trace {
		opts.Trace = os.Stderr
	}

	count, err := sim.Run(&m, opts)
	if err != nil {
		return err
	}
	log.Printf("rv32vm: halted after %d instructions", count)
	return nil
}

func parseAddr(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
