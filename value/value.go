// Package value implements the scripting runtime's tagged-union Value type
// and its heap-allocated Obj variants, along with the stop-the-world
// mark-and-sweep garbage collector that owns them. Grounded on the teacher's
// object package (object/base.go, object/closure.go) but reshaped from a
// pure-interface Object model into a tagged union: scripts here are small,
// tightly-looped game logic, so unboxed Integer/Decimal avoid an allocation
// on every arithmetic op.
package value

import "fmt"

// Kind tags which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindDecimal
	KindObject
	KindLinkedInteger
	KindLinkedDecimal
	KindError
)

// Value is a tagged union. Integer and Decimal are unboxed; Object holds a
// reference into the GC heap; LinkedInteger/LinkedDecimal are live pointers
// into host-owned storage, letting a host-registered global be written
// through without boxing. Error carries a *Obj wrapping an ErrorObject.
type Value struct {
	kind Kind
	i    int32
	d    float32
	obj  Obj
	li   *int32
	ld   *float32
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

func Integer(i int32) Value { return Value{kind: KindInteger, i: i} }
func Decimal(d float32) Value { return Value{kind: KindDecimal, d: d} }
func FromObj(o Obj) Value     { return Value{kind: KindObject, obj: o} }
func LinkedInteger(p *int32) Value { return Value{kind: KindLinkedInteger, li: p} }
func LinkedDecimal(p *float32) Value { return Value{kind: KindLinkedDecimal, ld: p} }

// Err wraps a message as an Error-kind Value; the vm checks Kind() ==
// KindError after nearly every operation to propagate a fault up to the
// nearest Failsafe handler or frame boundary.
func Err(format string, args ...any) Value {
	return Value{kind: KindError, obj: &ErrorObject{Message: fmt.Sprintf(format, args...)}}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) IsError() bool { return v.kind == KindError }

// Int returns the integer value, resolving a LinkedInteger through its
// pointer. Panics if Kind is not KindInteger/KindLinkedInteger; callers
// must check Kind first (the vm always does, via the typeof-dispatch
// arithmetic helpers in arithmetic.go).
func (v Value) Int() int32 {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindLinkedInteger:
		return *v.li
	default:
		panic("value: Int() called on non-integer Value")
	}
}

func (v Value) Dec() float32 {
	switch v.kind {
	case KindDecimal:
		return v.d
	case KindLinkedDecimal:
		return *v.ld
	default:
		panic("value: Dec() called on non-decimal Value")
	}
}

func (v Value) Obj() Obj {
	if v.kind != KindObject && v.kind != KindError {
		panic("value: Obj() called on non-object Value")
	}
	return v.obj
}

// ErrorObject returns the wrapped error, valid only when IsError().
func (v Value) ErrorObject() *ErrorObject {
	return v.obj.(*ErrorObject)
}

// IsTruthy follows the language's boolean-coercion rule: null, an Error and
// a zero Integer/Decimal are falsy, everything else (including empty
// strings and arrays) is truthy.
func (v Value) IsTruthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindInteger, KindLinkedInteger:
		return v.Int() != 0
	case KindDecimal, KindLinkedDecimal:
		return v.Dec() != 0
	case KindError:
		return false
	default:
		return true
	}
}

// Typeof returns one of the fixed typeof strings.
func (v Value) Typeof() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger, KindLinkedInteger:
		return "integer"
	case KindDecimal, KindLinkedDecimal:
		return "decimal"
	case KindError:
		return "error"
	case KindObject:
		return v.obj.Typeof()
	default:
		return "null"
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInteger, KindLinkedInteger:
		return fmt.Sprintf("%d", v.Int())
	case KindDecimal, KindLinkedDecimal:
		return fmt.Sprintf("%g", v.Dec())
	case KindError:
		return "error: " + v.obj.(*ErrorObject).Message
	case KindObject:
		return v.obj.Inspect()
	default:
		return "?"
	}
}

// Obj is the interface every heap-allocated object variant implements. It
// doubles as the GC's per-object hook (Mark walks references out of the
// object into other heap objects).
type Obj interface {
	Typeof() string
	Inspect() string
	Mark(gc *GC)
}

// ErrorObject is the payload of a KindError Value, analogous to the
// teacher's object.Error but without the Go-error-wrapping machinery this
// runtime doesn't need.
type ErrorObject struct {
	Message string
	Code    string
}

func (e *ErrorObject) Typeof() string  { return "error" }
func (e *ErrorObject) Inspect() string { return "error: " + e.Message }
func (e *ErrorObject) Mark(gc *GC)     {}
