package bytecode

import (
	"bytes"
	"fmt"
	"strings"
)

// Function is a compiled function/method template: all the static
// information needed for vm to build a Closure (or bind a method to an
// instance) at runtime. Immutable after construction.
type Function struct {
	id            string
	name          string
	parameters    []string
	defaults      []any
	code          *Code
	requiredCount int
	isMethod      bool
	isEvent       bool
}

// FunctionParams contains parameters for creating a new Function.
type FunctionParams struct {
	ID         string
	Name       string
	Parameters []string
	Defaults   []any
	Code       *Code
	IsMethod   bool
	IsEvent    bool
}

// NewFunction creates a new immutable Function from the given parameters.
func NewFunction(params FunctionParams) *Function {
	parameters := copyStrings(params.Parameters)
	defaults := copyAny(params.Defaults)

	defaultsWithValue := 0
	for _, d := range defaults {
		if d != nil {
			defaultsWithValue++
		}
	}

	return &Function{
		id:            params.ID,
		name:          params.Name,
		parameters:    parameters,
		defaults:      defaults,
		code:          params.Code,
		requiredCount: len(parameters) - defaultsWithValue,
		isMethod:      params.IsMethod,
		isEvent:       params.IsEvent,
	}
}

func (f *Function) ID() string   { return f.id }
func (f *Function) Name() string { return f.name }
func (f *Function) Code() *Code  { return f.code }

func (f *Function) ParameterCount() int      { return len(f.parameters) }
func (f *Function) Parameter(i int) string   { return f.parameters[i] }
func (f *Function) DefaultCount() int        { return len(f.defaults) }
func (f *Function) Default(i int) any        { return f.defaults[i] }
func (f *Function) RequiredArgsCount() int   { return f.requiredCount }
func (f *Function) IsMethod() bool           { return f.isMethod }
func (f *Function) IsEvent() bool            { return f.isEvent }

// LocalCount returns the number of local variable slots in the function
// body, including parameter slots.
func (f *Function) LocalCount() int {
	if f.code == nil {
		return 0
	}
	return f.code.LocalCount()
}

func (f *Function) String() string {
	var out bytes.Buffer
	parameters := make([]string, 0, len(f.parameters))
	for i, name := range f.parameters {
		if i < len(f.defaults) {
			if def := f.defaults[i]; def != nil {
				name += "=" + fmt.Sprintf("%v", def)
			}
		}
		parameters = append(parameters, name)
	}
	out.WriteString("function")
	if f.name != "" {
		out.WriteString(" " + f.name)
	}
	out.WriteString("(")
	out.WriteString(strings.Join(parameters, ", "))
	out.WriteString(") {")
	var source string
	if f.code != nil {
		source = f.code.Source()
	}
	lines := strings.Split(source, "\n")
	switch {
	case len(lines) == 0:
		out.WriteString(" }")
	case len(lines) == 1:
		out.WriteString(" " + lines[0] + " }")
	default:
		for _, line := range lines {
			out.WriteString("\n    " + line)
		}
		out.WriteString("\n}")
	}
	return out.String()
}
