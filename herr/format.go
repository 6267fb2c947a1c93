package herr

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders an *Error for a terminal host, with optional ANSI
// coloring matching cmd/hatch's own color.New(color.FgX).SprintFunc() usage.
// cmd/hatch itself does not use it; it prints err.Error() directly.
type Formatter struct {
	UseColor bool
}

func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Format renders err's kind, message, optional suggestion, and (for fatal
// errors) its stack trace.
func (f *Formatter) Format(err *Error, suggestion string) string {
	var b strings.Builder

	label := "error"
	if err.Fatal {
		label = "fatal error"
	}
	header := fmt.Sprintf("%s[%s]: %s", label, err.Kind, err.Message)
	if f.UseColor {
		bold := color.New(color.FgRed, color.Bold).SprintFunc()
		b.WriteString(bold(header))
	} else {
		b.WriteString(header)
	}
	b.WriteString("\n")

	if suggestion != "" {
		hint := "hint: " + suggestion
		if f.UseColor {
			b.WriteString(color.New(color.FgYellow).Sprint(hint))
		} else {
			b.WriteString(hint)
		}
		b.WriteString("\n")
	}

	if len(err.Trace) > 0 {
		trace := FormatStackTrace(err.Trace)
		if f.UseColor {
			b.WriteString(color.New(color.FgHiBlack).Sprint(trace))
		} else {
			b.WriteString(trace)
		}
	}

	return b.String()
}
