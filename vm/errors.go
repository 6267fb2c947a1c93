package vm

import (
	"strings"

	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/herr"
	"github.com/hatchlang/hatch/value"
)

// ErrorAction is the host's answer to a recoverable error's three-choice
// dialog: keep running past this one occurrence, keep running past every
// future occurrence at the same instruction, or abort the run.
type ErrorAction int

const (
	ActionContinue ErrorAction = iota
	ActionIgnoreAll
	ActionAbort
)

// ErrorPolicy is consulted for every recoverable error the VM raises. A nil
// policy (the default) always answers ActionContinue, which is what lets a
// script run to completion unattended with recoverable faults (divide by
// zero, an out-of-range index, an undefined global) simply yielding null at
// the point of failure instead of needing an interactive host.
type ErrorPolicy func(e *herr.Error) ErrorAction

// WithErrorPolicy installs the three-choice dialog handler a host (the REPL,
// --break's debugger) uses to decide how to react to a recoverable error.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(vm *VM) { vm.errorPolicy = p }
}

// ignoreKey identifies one bytecode instruction, the granularity at which
// "Ignore All" per §7 remembers a host's decision.
type ignoreKey struct {
	code *bytecode.Code
	ip   int
}

// raiseFault turns e into either nil (the caller should push value.Null and
// resume dispatch) or a trace-carrying error the caller should abort eval
// with. Fatal errors never reach the host's dialog. A recoverable error
// whose instruction was previously answered with "Ignore All" skips the
// dialog and auto-continues.
func (vm *VM) raiseFault(f *frame, instrIP int, e *herr.Error) error {
	if e.Fatal {
		traced := e.WithTrace(vm.trace())
		vm.log.Error().Str("kind", e.Kind.String()).Msg(traced.Message)
		return traced
	}
	key := ignoreKey{f.code, instrIP}
	if vm.ignoreAll[key] {
		return nil
	}
	action := ActionContinue
	if vm.errorPolicy != nil {
		action = vm.errorPolicy(e)
	}
	switch action {
	case ActionAbort:
		traced := e.WithTrace(vm.trace())
		vm.log.Error().Str("kind", e.Kind.String()).Msg(traced.Message)
		return traced
	case ActionIgnoreAll:
		if vm.ignoreAll == nil {
			vm.ignoreAll = map[ignoreKey]bool{}
		}
		vm.ignoreAll[key] = true
		vm.log.Warn().Str("kind", e.Kind.String()).Msg("ignoring all further occurrences: " + e.Message)
	default:
		vm.log.Debug().Str("kind", e.Kind.String()).Msg(e.Message)
	}
	return nil
}

// continueOrAbort classifies a VM helper's error return: nil is passed
// through untouched, a non-*herr.Error is treated as a host-level failure
// the caller must abort with, and a *herr.Error is routed through
// raiseFault — on Continue/Ignore-All this pushes value.Null (the opcode
// "yields null" per §7) and reports handled=true so the dispatch loop can
// `continue` straight to the next instruction.
func (vm *VM) continueOrAbort(f *frame, instrIP int, err error) (handled bool, abort error) {
	if err == nil {
		return false, nil
	}
	he, ok := err.(*herr.Error)
	if !ok {
		return false, err
	}
	if fault := vm.raiseFault(f, instrIP, he); fault != nil {
		return false, fault
	}
	vm.push(value.Null)
	return true, nil
}

// continueOrAbortNoPush is continueOrAbort's variant for a statement-level
// opcode that has no stack slot of its own to substitute null into —
// Continue just means "this statement's effect didn't happen" rather than
// "yields null", so nothing is pushed.
func (vm *VM) continueOrAbortNoPush(f *frame, instrIP int, err error) (handled bool, abort error) {
	if err == nil {
		return false, nil
	}
	he, ok := err.(*herr.Error)
	if !ok {
		return false, err
	}
	if fault := vm.raiseFault(f, instrIP, he); fault != nil {
		return false, fault
	}
	return true, nil
}

// continueOrAbortReset is continueOrAbort's variant for Call/Invoke/New,
// whose callee-or-receiver-plus-arguments are still sitting unconsumed on
// the stack when dispatch fails: resetSP collapses them away before the
// single null result is pushed, matching the net stack effect a successful
// dispatch would eventually have left behind.
func (vm *VM) continueOrAbortReset(f *frame, instrIP, resetSP int, err error) (handled bool, abort error) {
	if err == nil {
		return false, nil
	}
	he, ok := err.(*herr.Error)
	if !ok {
		return false, err
	}
	if fault := vm.raiseFault(f, instrIP, he); fault != nil {
		return false, fault
	}
	vm.sp = resetSP
	vm.push(value.Null)
	return true, nil
}

// trace walks every active frame, outermost first, building the call-stack
// trace a fatal error reports: function name, source module, and the line
// of the instruction each frame was about to execute.
func (vm *VM) trace() []herr.Frame {
	frames := make([]herr.Frame, 0, vm.frameIdx+1)
	for i := 0; i <= vm.frameIdx; i++ {
		fr := &vm.frames[i]
		name := fr.code.Name()
		if name == "" {
			name = "<module>"
		}
		ip := fr.ip - 1
		loc := fr.code.LocationAt(ip)
		frames = append(frames, herr.Frame{
			Function: name,
			Module:   fr.code.Filename(),
			Line:     loc.Line,
		})
	}
	return frames
}

// classifyValueError maps a script-level value.Value error's message (raised
// by arithmetic, compareOp, 'has', or a native function's C-string payload
// per §7) to the herr.Kind a host needs to react to it. Runtime arithmetic
// and comparisons tag their own messages with "ArithmeticError:"/"TypeError:"
// (see value/arithmetic.go, value/equality.go); anything else reaching this
// path is a native function signaling failure the way builtins.go's
// value.Err calls do, which §7 treats as a recoverable error without a
// dedicated kind of its own, so it falls back to TypeMismatch (a misused
// value, the same family as an explicit TypeError).
func classifyValueError(message string) herr.Kind {
	switch {
	case strings.HasPrefix(message, "ArithmeticError:"):
		return herr.Arithmetic
	case strings.HasPrefix(message, "TypeError:"), strings.HasPrefix(message, "type error:"):
		return herr.TypeMismatch
	default:
		return herr.TypeMismatch
	}
}
