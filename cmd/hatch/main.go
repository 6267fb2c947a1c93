// Command hatch is the script runner's CLI: run a file, build it to a
// bytecode file, disassemble it, drive a scene script headless, or drop into
// a REPL, grounded on the teacher's main.go (flag handling, colored error
// output, optional CPU profiling) and cmd/risor's one-subcommand-per-file
// layout (dis.go, run.go, repl.go, ...), but built on urfave/cli/v3 for the
// command/flag tree rather than wonton/cli, matching the rest of the
// corpus's CLI idiom.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/fatih/color"
	"github.com/hatchlang/hatch/builtins"
	"github.com/hatchlang/hatch/compiler"
	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/parser"
	"github.com/hatchlang/hatch/script"
	"github.com/hatchlang/hatch/vm"
	"github.com/urfave/cli/v3"
)

func main() {
	red := color.New(color.FgRed).SprintfFunc()

	cmd := &cli.Command{
		Name:  "hatch",
		Usage: "run, build, and explore hatch scripts",
		Commands: []*cli.Command{
			runCommand(),
			buildCommand(),
			disasmCommand(),
			playCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "code to execute"},
			&cli.StringFlag{Name: "profile", Usage: "write a CPU profile to this path"},
			&cli.BoolFlag{Name: "timing", Usage: "print execution time"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colored output"},
		},
		// Action runs only when no subcommand matches, preserving the
		// original bare `hatch script.hatch` / `hatch -c '...'` / `hatch`
		// (REPL) entry points now that run/build/disasm/play exist as
		// explicit subcommands.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("no-color") {
				color.NoColor = true
			}
			stopProfile, err := maybeStartProfile(cmd.String("profile"))
			if err != nil {
				return err
			}
			defer stopProfile()

			code := cmd.String("code")
			filename := cmd.Args().First()

			if code == "" && filename == "" {
				return runREPL()
			}
			if code != "" && filename != "" {
				return fmt.Errorf("cannot provide both a script file and -c input")
			}

			var src string
			if filename == "" {
				filename = "-c"
				src = code
			} else {
				data, err := os.ReadFile(filename)
				if err != nil {
					return err
				}
				src = string(data)
			}

			start := time.Now()
			if err := runSource(src, filename, os.Stdout, nil); err != nil {
				return err
			}
			if cmd.Bool("timing") {
				fmt.Printf("%.03f\n", time.Since(start).Seconds())
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", red(err.Error()))
		os.Exit(1)
	}
}

// newManager builds a script.Manager with the default native globals
// installed, the one piece of setup every entry point (file run, -c run,
// REPL, play) shares.
func newManager() *script.Manager {
	m := script.New()
	builtins.Install(m)
	return m
}

// runSource compiles and runs src as filename's top-level code against a
// fresh Manager/thread. A non-nil stepHook puts the thread in single-step
// debugger mode (see debug.go).
func runSource(src, filename string, out *os.File, stepHook vm.StepHook) error {
	prog, err := parser.New(lexer.NewWithFilename(src, filename)).Parse()
	if err != nil {
		return err
	}
	code, err := compiler.Compile(prog, filename)
	if err != nil {
		return err
	}
	m := newManager()
	opts := []vm.Option{vm.WithOutput(out)}
	if stepHook != nil {
		opts = append(opts, vm.WithStepHook(stepHook))
	}
	thread := m.NewThread(opts...)
	return thread.Run(code)
}

// maybeStartProfile starts CPU profiling to path when non-empty, returning a
// no-op stop function otherwise so callers can always `defer stop()`.
func maybeStartProfile(path string) (stop func(), err error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	pprof.StartCPUProfile(f)
	return pprof.StopCPUProfile, nil
}
