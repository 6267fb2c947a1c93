package herr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPlainRecoverableError(t *testing.T) {
	f := NewFormatter(false)
	e := New(NameResolution, "undefined global %q", "pi")
	out := f.Format(e, "")
	require.Equal(t, "error[NameResolution]: undefined global \"pi\"\n", out)
}

func TestFormatIncludesSuggestion(t *testing.T) {
	f := NewFormatter(false)
	e := New(NameResolution, "undefined global %q", "pii")
	out := f.Format(e, FormatSuggestions(SuggestSimilar("pii", []string{"pi"})))
	require.Contains(t, out, "hint: Did you mean 'pi'?")
}

func TestFormatFatalIncludesTrace(t *testing.T) {
	f := NewFormatter(false)
	e := Fatal(StackOverflow, "call depth exceeded").WithTrace([]Frame{
		{Function: "<module>", Module: "main.hatch", Line: 1},
	})
	out := f.Format(e, "")
	require.Contains(t, out, "fatal error[StackOverflow]: call depth exceeded")
	require.Contains(t, out, "stack trace:")
	require.Contains(t, out, "at <module> (main.hatch:1)")
}
