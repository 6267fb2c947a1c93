package main

import (
	"bytes"
	"fmt"
	"os"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/hatchlang/hatch/compiler"
	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/parser"
	"github.com/hatchlang/hatch/vm"
)

// runREPL reads one line at a time via atomicgo.dev/keyboard's raw key
// listener (so Backspace/Ctrl+C/Ctrl+D behave like a real shell rather than
// needing a terminal-cooked-mode line reader), compiles and runs it against
// a single persistent thread so top-level vars and classes survive across
// lines, the way the teacher's own REPL keeps one long-lived VM.
func runREPL() error {
	prompt := color.New(color.FgCyan).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()

	m := newManager()
	thread := m.NewThread(vm.WithOutput(os.Stdout))

	fmt.Println("hatch REPL — Ctrl+D to exit")
	for {
		fmt.Print(prompt("hatch> "))
		line, eof, err := readLine()
		if err != nil {
			return err
		}
		if eof {
			fmt.Println()
			return nil
		}
		if line == "" {
			continue
		}

		prog, err := parser.New(lexer.New(line)).Parse()
		if err != nil {
			fmt.Println(errColor(err.Error()))
			continue
		}
		code, err := compiler.Compile(prog, "<repl>")
		if err != nil {
			fmt.Println(errColor(err.Error()))
			continue
		}
		if err := thread.Run(code); err != nil {
			fmt.Println(errColor(err.Error()))
		}
	}
}

// readLine collects runes until Enter, honoring Backspace, and reports
// eof=true on Ctrl+C/Ctrl+D so the caller can exit cleanly.
func readLine() (line string, eof bool, err error) {
	var buf bytes.Buffer
	listenErr := keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		switch key.Code {
		case keys.CtrlC, keys.CtrlD:
			eof = true
			return true, nil
		case keys.Enter:
			return true, nil
		case keys.Backspace:
			if buf.Len() > 0 {
				trimmed := buf.String()
				buf.Reset()
				buf.WriteString(trimmed[:len(trimmed)-1])
				fmt.Print("\b \b")
			}
			return false, nil
		case keys.RuneKey, keys.Space:
			fmt.Print(key.String())
			buf.WriteString(key.String())
			return false, nil
		default:
			return false, nil
		}
	})
	if listenErr != nil {
		return "", false, listenErr
	}
	fmt.Println()
	return buf.String(), eof, nil
}
