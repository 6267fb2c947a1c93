package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/compiler"
	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/parser"
	"github.com/hatchlang/hatch/vm"
	"github.com/urfave/cli/v3"
)

// runCommand is the explicit `hatch run` subcommand: the same source/`.hbc`
// dispatch disasmCommand and playCommand share, plus --break for the
// interactive single-step debugger (see debug.go). The root command's bare
// `hatch <file>` invocation stays supported for convenience but never gained
// --break, keeping that flag's behavior discoverable in one place.
func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a .hatch source file or a compiled .hbc bytecode file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Usage: "write a CPU profile to this path"},
			&cli.BoolFlag{Name: "timing", Usage: "print execution time"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colored output"},
			&cli.BoolFlag{Name: "break", Usage: "pause before every instruction in an interactive debugger"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("no-color") {
				color.NoColor = true
			}
			stopProfile, err := maybeStartProfile(cmd.String("profile"))
			if err != nil {
				return err
			}
			defer stopProfile()

			filename := cmd.Args().First()
			if filename == "" {
				return fmt.Errorf("run: a file is required")
			}

			code, err := loadCode(filename)
			if err != nil {
				return err
			}

			m := newManager()
			opts := []vm.Option{vm.WithOutput(os.Stdout)}
			if cmd.Bool("break") {
				opts = append(opts, vm.WithStepHook(newBreakpointHook()))
			}
			thread := m.NewThread(opts...)

			start := time.Now()
			if err := thread.Run(code); err != nil {
				return err
			}
			if cmd.Bool("timing") {
				fmt.Printf("%.03f\n", time.Since(start).Seconds())
			}
			return nil
		},
	}
}

// loadCode compiles filename if it's hatch source, or reads it directly if
// it already carries a compiled .hbc bytecode file's extension, so run,
// disasm, and play can all accept either form.
func loadCode(filename string) (*bytecode.Code, error) {
	if filepath.Ext(filename) == ".hbc" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return bytecode.ReadFile(f)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	prog, err := parser.New(lexer.NewWithFilename(string(data), filename)).Parse()
	if err != nil {
		return nil, err
	}
	return compiler.Compile(prog, filename)
}
