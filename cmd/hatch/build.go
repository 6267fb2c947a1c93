package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/compiler"
	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/parser"
	"github.com/urfave/cli/v3"
)

// buildCommand compiles a .hatch source file to the binary bytecode format
// §6 names, the production artifact a host normally distributes rather than
// shipping source (see bytecode/file.go).
func buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "compile a .hatch source file to a binary .hbc bytecode file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output path (default: input file with a .hbc extension)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filename := cmd.Args().First()
			if filename == "" {
				return fmt.Errorf("build: a source file is required")
			}
			data, err := os.ReadFile(filename)
			if err != nil {
				return err
			}
			prog, err := parser.New(lexer.NewWithFilename(string(data), filename)).Parse()
			if err != nil {
				return err
			}
			code, err := compiler.Compile(prog, filename)
			if err != nil {
				return err
			}

			out := cmd.String("output")
			if out == "" {
				out = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".hbc"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := bytecode.WriteFile(f, code); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
}
