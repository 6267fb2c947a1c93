package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hatchlang/hatch/bytecode"
	"github.com/urfave/cli/v3"
)

// disasmCommand prints the decoded instruction stream for a .hatch source
// file (compiled on the fly) or an already-compiled .hbc bytecode file,
// grounded on Risor's dis.go/pkg/dis split between decoding and printing,
// generalized here to this op table's annotation rules (bytecode.Listing).
func disasmCommand() *cli.Command {
	return &cli.Command{
		Name:      "disasm",
		Usage:     "print the bytecode instructions for a .hatch file or a compiled .hbc file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "disable colored output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("no-color") {
				color.NoColor = true
			}
			filename := cmd.Args().First()
			if filename == "" {
				return fmt.Errorf("disasm: a file is required")
			}
			code, err := loadCode(filename)
			if err != nil {
				return err
			}
			printListing(code)
			return nil
		},
	}
}

func printListing(code *bytecode.Code) {
	header := color.New(color.Bold, color.FgMagenta).SprintFunc()
	for _, line := range strings.Split(bytecode.Listing(code), "\n") {
		if strings.HasPrefix(line, "==") {
			fmt.Println(header(line))
			continue
		}
		fmt.Println(line)
	}
}
