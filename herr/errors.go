// Package herr defines the VM's error vocabulary: a fixed set of Kinds, each
// either recoverable or fatal by default, carrying the call-stack trace
// needed to report it. Syntax errors are a separate concern handled by the
// compiler's own github.com/hashicorp/go-multierror accumulation; this
// package only covers errors the VM itself raises while running bytecode.
package herr

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a VM error, per the error kinds a script
// host needs to classify and react to differently (log and continue vs.
// abort the run).
type Kind int

const (
	NameResolution Kind = iota
	TypeMismatch
	Arithmetic
	IndexOutOfRange
	StackOverflow
	StackUnderflow
	FrameOverflow
	AssignToConstant
	UnknownMethod
	ImportFailure
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case NameResolution:
		return "NameResolution"
	case TypeMismatch:
		return "TypeMismatch"
	case Arithmetic:
		return "Arithmetic"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case StackOverflow:
		return "StackOverflow"
	case StackUnderflow:
		return "StackUnderflow"
	case FrameOverflow:
		return "FrameOverflow"
	case AssignToConstant:
		return "AssignToConstant"
	case UnknownMethod:
		return "UnknownMethod"
	case ImportFailure:
		return "ImportFailure"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// defaultFatal holds the kinds that are fatal unless a call site overrides
// it with Fatal/Recoverable explicitly. Stack/frame exhaustion and an
// internal invariant violation mean the VM's own bookkeeping can no longer
// be trusted, so those four kinds default to fatal; every other kind defaults to
// recoverable, matching the scripted examples (undefined global, divide by
// zero, out-of-range index) that are all meant to surface a dialog rather
// than kill the run.
var defaultFatal = map[Kind]bool{
	StackOverflow:     true,
	StackUnderflow:    true,
	FrameOverflow:     true,
	InternalInvariant: true,
}

// Frame is one entry of an Error's call-stack trace: the function that was
// executing, the module it came from, and the source line of the
// instruction that was about to run.
type Frame struct {
	Function string
	Module   string
	Line     int
}

func (f Frame) String() string {
	if f.Module != "" {
		return fmt.Sprintf("at %s (%s:%d)", f.Function, f.Module, f.Line)
	}
	return fmt.Sprintf("at %s:%d", f.Function, f.Line)
}

// Error is a VM-raised error. Message is the host-facing text; Trace is
// filled in by the VM by walking Frames[0..FrameCount] at the point the
// error was raised.
type Error struct {
	Kind    Kind
	Message string
	Fatal   bool
	Trace   []Frame
}

func (e *Error) Error() string {
	return e.Message
}

// IsFatal reports whether this error should abort the run rather than be
// offered to the host's recoverable-error policy.
func (e *Error) IsFatal() bool {
	return e.Fatal
}

// WithTrace returns a copy of e with Trace set, used by the VM once it has
// walked its frame stack for the error site.
func (e *Error) WithTrace(trace []Frame) *Error {
	cp := *e
	cp.Trace = trace
	return &cp
}

// FormatStackTrace renders a call-stack trace the way a fatal error's report
// to the host includes it: function name, module path, and line per frame.
func FormatStackTrace(frames []Frame) string {
	if len(frames) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("stack trace:\n")
	for _, f := range frames {
		b.WriteString("  ")
		b.WriteString(f.String())
		b.WriteString("\n")
	}
	return b.String()
}

// New builds an Error of the given kind, defaulting Fatal from defaultFatal
// unless overridden by Recoverable/Fatal.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Fatal: defaultFatal[kind]}
}

// Recoverable builds an Error explicitly marked non-fatal, for call sites
// that need to override a kind's default (none currently do, but native
// functions signaling a caught error via Recoverable rather than New make
// that override legible at the call site).
func Recoverable(kind Kind, format string, args ...any) *Error {
	e := New(kind, format, args...)
	e.Fatal = false
	return e
}

// Fatal builds an Error explicitly marked fatal, for call sites raising a
// kind that defaults recoverable but has hit a case the VM can't safely
// continue past.
func Fatal(kind Kind, format string, args ...any) *Error {
	e := New(kind, format, args...)
	e.Fatal = true
	return e
}
