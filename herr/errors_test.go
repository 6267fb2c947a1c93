package herr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultsFatalFromKind(t *testing.T) {
	e := New(TypeMismatch, "cannot index %s", "Integer")
	require.Equal(t, TypeMismatch, e.Kind)
	require.Equal(t, "cannot index Integer", e.Message)
	require.False(t, e.IsFatal())

	e = New(StackOverflow, "call depth exceeded")
	require.True(t, e.IsFatal())
}

func TestRecoverableOverridesDefaultFatal(t *testing.T) {
	e := Recoverable(FrameOverflow, "too many frames")
	require.False(t, e.IsFatal())
}

func TestFatalOverridesDefaultRecoverable(t *testing.T) {
	e := Fatal(NameResolution, "undefined global %q", "pi")
	require.True(t, e.IsFatal())
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = New(Arithmetic, "division by zero")
	require.EqualError(t, err, "division by zero")
}

func TestWithTraceReturnsCopy(t *testing.T) {
	e := New(UnknownMethod, "no method %q on %s", "fly", "Rock")
	trace := []Frame{{Function: "main", Module: "test.hatch", Line: 3}}

	traced := e.WithTrace(trace)
	require.Equal(t, trace, traced.Trace)
	require.Nil(t, e.Trace)
	require.NotSame(t, e, traced)
}

func TestFrameStringIncludesModuleWhenPresent(t *testing.T) {
	f := Frame{Function: "update", Module: "player.hatch", Line: 12}
	require.Equal(t, "at update (player.hatch:12)", f.String())

	f = Frame{Function: "<module>", Line: 1}
	require.Equal(t, "at <module>:1", f.String())
}

func TestFormatStackTraceListsFramesOutermostFirst(t *testing.T) {
	frames := []Frame{
		{Function: "<module>", Module: "main.hatch", Line: 10},
		{Function: "update", Module: "main.hatch", Line: 4},
	}
	out := FormatStackTrace(frames)
	require.Contains(t, out, "at <module> (main.hatch:10)")
	require.Contains(t, out, "at update (main.hatch:4)")
	require.Less(t,
		indexOf(out, "<module>"),
		indexOf(out, "update"),
	)
}

func TestFormatStackTraceEmpty(t *testing.T) {
	require.Equal(t, "", FormatStackTrace(nil))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Arithmetic", Arithmetic.String())
	require.Equal(t, "IndexOutOfRange", IndexOutOfRange.String())
	require.Equal(t, "Unknown", Kind(999).String())
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
