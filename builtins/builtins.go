// Package builtins defines the default set of native global functions
// installed into every script.Manager. Grounded on the teacher's own
// builtins/builtins.go (same function set, same `arg-count then
// type-switch` validation shape) but reshaped from Risor's
// `func(ctx, args...) (object.Object, error)` signature onto this
// runtime's `func(args []value.Value) value.Value` NativeFunction shape —
// a script-level error is a Value (value.Err), not a Go error, so there is
// no error return to plumb through.
package builtins

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/hatchlang/hatch/script"
	"github.com/hatchlang/hatch/value"
)

func lenFn(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Err("len: expected 1 argument, got %d", len(args))
	}
	switch o := args[0].Obj().(type) {
	case *value.Array:
		return value.Integer(int32(len(o.Elements)))
	case *value.String:
		return value.Integer(int32(len(o.Value)))
	case *value.Map:
		return value.Integer(int32(len(o.Keys)))
	default:
		return value.Err("type error: len() unsupported argument (%s given)", args[0].Typeof())
	}
}

func sprintfFn(args []value.Value) value.Value {
	if len(args) < 1 || len(args) > 64 {
		return value.Err("sprintf: expected 1-64 arguments, got %d", len(args))
	}
	str, ok := args[0].Obj().(*value.String)
	if !ok {
		return value.Err("type error: sprintf() expected a string format (%s given)", args[0].Typeof())
	}
	fmtArgs := make([]any, len(args)-1)
	for i, v := range args[1:] {
		fmtArgs[i] = v.String()
	}
	return value.FromObj(value.NewString(fmt.Sprintf(str.Value, fmtArgs...)))
}

func errorFn(args []value.Value) value.Value {
	if len(args) < 1 || len(args) > 64 {
		return value.Err("error: expected 1-64 arguments, got %d", len(args))
	}
	str, ok := args[0].Obj().(*value.String)
	if !ok {
		return value.Err("type error: error() expected a string format (%s given)", args[0].Typeof())
	}
	fmtArgs := make([]any, len(args)-1)
	for i, v := range args[1:] {
		fmtArgs[i] = v.String()
	}
	return value.Err(str.Value, fmtArgs...)
}

func listFn(args []value.Value) value.Value {
	if len(args) > 1 {
		return value.Err("list: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return value.FromObj(value.NewArray(nil))
	}
	switch o := args[0].Obj().(type) {
	case *value.Array:
		elems := make([]value.Value, len(o.Elements))
		copy(elems, o.Elements)
		return value.FromObj(value.NewArray(elems))
	case *value.String:
		elems := make([]value.Value, 0, len(o.Value))
		for _, r := range o.Value {
			elems = append(elems, value.FromObj(value.NewString(string(r))))
		}
		return value.FromObj(value.NewArray(elems))
	default:
		return value.Err("type error: list() expected an enumerable (%s given)", args[0].Typeof())
	}
}

func stringFn(args []value.Value) value.Value {
	if len(args) > 1 {
		return value.Err("string: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return value.FromObj(value.NewString(""))
	}
	return value.FromObj(value.NewString(args[0].String()))
}

func typeFn(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Err("type: expected 1 argument, got %d", len(args))
	}
	return value.FromObj(value.NewString(args[0].Typeof()))
}

func assertFn(args []value.Value) value.Value {
	if len(args) < 1 || len(args) > 2 {
		return value.Err("assert: expected 1-2 arguments, got %d", len(args))
	}
	if args[0].IsTruthy() {
		return value.Null
	}
	if len(args) == 2 {
		return value.Err("%s", args[1].String())
	}
	return value.Err("assertion failed")
}

func boolFn(args []value.Value) value.Value {
	if len(args) > 1 {
		return value.Err("bool: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return value.Integer(0)
	}
	if args[0].IsTruthy() {
		return value.Integer(1)
	}
	return value.Integer(0)
}

func intFn(args []value.Value) value.Value {
	if len(args) > 1 {
		return value.Err("int: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return value.Integer(0)
	}
	switch args[0].Kind() {
	case value.KindInteger, value.KindLinkedInteger:
		return value.Integer(args[0].Int())
	case value.KindDecimal, value.KindLinkedDecimal:
		return value.Integer(int32(args[0].Dec()))
	case value.KindObject:
		if s, ok := args[0].Obj().(*value.String); ok {
			if i, err := strconv.ParseInt(s.Value, 0, 32); err == nil {
				return value.Integer(int32(i))
			}
			return value.Err("value error: invalid literal for int(): %q", s.Value)
		}
	}
	return value.Err("type error: int() unsupported argument (%s given)", args[0].Typeof())
}

func floatFn(args []value.Value) value.Value {
	if len(args) > 1 {
		return value.Err("float: expected 0-1 arguments, got %d", len(args))
	}
	if len(args) == 0 {
		return value.Decimal(0)
	}
	switch args[0].Kind() {
	case value.KindInteger, value.KindLinkedInteger:
		return value.Decimal(float32(args[0].Int()))
	case value.KindDecimal, value.KindLinkedDecimal:
		return value.Decimal(args[0].Dec())
	case value.KindObject:
		if s, ok := args[0].Obj().(*value.String); ok {
			if f, err := strconv.ParseFloat(s.Value, 32); err == nil {
				return value.Decimal(float32(f))
			}
			return value.Err("value error: invalid literal for float(): %q", s.Value)
		}
	}
	return value.Err("type error: float() unsupported argument (%s given)", args[0].Typeof())
}

func coalesceFn(args []value.Value) value.Value {
	if len(args) > 64 {
		return value.Err("coalesce: expected 0-64 arguments, got %d", len(args))
	}
	for _, a := range args {
		if !a.IsNull() {
			return a
		}
	}
	return value.Null
}

func keysFn(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Err("keys: expected 1 argument, got %d", len(args))
	}
	m, ok := args[0].Obj().(*value.Map)
	if !ok {
		return value.Err("type error: keys() unsupported argument (%s given)", args[0].Typeof())
	}
	elems := make([]value.Value, len(m.Keys))
	for i, k := range m.Keys {
		elems[i] = value.FromObj(value.NewString(k))
	}
	return value.FromObj(value.NewArray(elems))
}

func reversedFn(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Err("reversed: expected 1 argument, got %d", len(args))
	}
	switch o := args[0].Obj().(type) {
	case *value.Array:
		out := make([]value.Value, len(o.Elements))
		for i, v := range o.Elements {
			out[len(out)-1-i] = v
		}
		return value.FromObj(value.NewArray(out))
	case *value.String:
		runes := []rune(o.Value)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.FromObj(value.NewString(string(runes)))
	default:
		return value.Err("type error: reversed() unsupported argument (%s given)", args[0].Typeof())
	}
}

// sorted supports the natural-order form only (integers/decimals/strings);
// the two-argument comparator-function form from the teacher's sorted()
// would need the native function to call back into the VM mid-dispatch,
// which this runtime's NativeFunction hook does not support (see
// DESIGN.md's builtins entry).
func sortedFn(args []value.Value) value.Value {
	if len(args) != 1 {
		return value.Err("sorted: expected 1 argument, got %d", len(args))
	}
	arr, ok := args[0].Obj().(*value.Array)
	if !ok {
		return value.Err("type error: sorted() unsupported argument (%s given)", args[0].Typeof())
	}
	items := make([]value.Value, len(arr.Elements))
	copy(items, arr.Elements)
	var sortErr value.Value
	sort.SliceStable(items, func(i, j int) bool {
		less, err := lessThan(items[i], items[j])
		if err {
			sortErr = value.Err("type error: sorted() elements are not comparable")
		}
		return less
	})
	if sortErr.Kind() == value.KindError {
		return sortErr
	}
	return value.FromObj(value.NewArray(items))
}

func lessThan(a, b value.Value) (less bool, typeErr bool) {
	numeric := func(v value.Value) (float64, bool) {
		switch v.Kind() {
		case value.KindInteger, value.KindLinkedInteger:
			return float64(v.Int()), true
		case value.KindDecimal, value.KindLinkedDecimal:
			return float64(v.Dec()), true
		}
		return 0, false
	}
	if af, aok := numeric(a); aok {
		if bf, bok := numeric(b); bok {
			return af < bf, false
		}
	}
	as, aok := a.Obj().(*value.String)
	bs, bok := b.Obj().(*value.String)
	if aok && bok {
		return as.Value < bs.Value, false
	}
	return false, true
}

func chunkFn(args []value.Value) value.Value {
	if len(args) != 2 {
		return value.Err("chunk: expected 2 arguments, got %d", len(args))
	}
	arr, ok := args[0].Obj().(*value.Array)
	if !ok {
		return value.Err("type error: chunk() expected a list (%s given)", args[0].Typeof())
	}
	if args[1].Kind() != value.KindInteger {
		return value.Err("type error: chunk() expected an int (%s given)", args[1].Typeof())
	}
	size := int(args[1].Int())
	if size <= 0 {
		return value.Err("value error: chunk() size must be > 0 (%d given)", size)
	}
	items := arr.Elements
	var chunks []value.Value
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		piece := make([]value.Value, end-start)
		copy(piece, items[start:end])
		chunks = append(chunks, value.FromObj(value.NewArray(piece)))
	}
	return value.FromObj(value.NewArray(chunks))
}

// Install registers every native global function under m, the adapted
// equivalent of the teacher's Builtins() map.
func Install(m *script.Manager) {
	fns := map[string]func(args []value.Value) value.Value{
		"len":      lenFn,
		"sprintf":  sprintfFn,
		"error":    errorFn,
		"list":     listFn,
		"string":   stringFn,
		"type":     typeFn,
		"assert":   assertFn,
		"bool":     boolFn,
		"int":      intFn,
		"float":    floatFn,
		"coalesce": coalesceFn,
		"keys":     keysFn,
		"reversed": reversedFn,
		"sorted":   sortedFn,
		"chunk":    chunkFn,
	}
	for name, fn := range fns {
		m.RegisterFunction(name, fn)
	}
}
