package value

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/hatchlang/hatch/bytecode"
)

// String is an immutable, copied-on-creation string. Two Strings with equal
// bytes compare equal (see ValuesEqual) but are not required to be the same
// heap allocation.
type String struct {
	Value string
}

func NewString(s string) *String    { return &String{Value: s} }
func (s *String) Typeof() string    { return "string" }
func (s *String) Inspect() string   { return fmt.Sprintf("%q", s.Value) }
func (s *String) Mark(gc *GC)       {}

// Function is a compiled, not-yet-closed-over function/method template
// reference. vm wraps one in a Closure at the point a function literal is
// evaluated, capturing any upvalues.
type Function struct {
	Fn *bytecode.Function
}

func (f *Function) Typeof() string  { return "closure" }
func (f *Function) Inspect() string { return f.Fn.String() }
func (f *Function) Mark(gc *GC)     {}

// NativeFunction is a Go-implemented callable registered by the host
// (Script Manager component D), e.g. engine API entry points.
type NativeFunction struct {
	Name string
	Fn   func(args []Value) Value
}

func (n *NativeFunction) Typeof() string  { return "native" }
func (n *NativeFunction) Inspect() string { return "native " + n.Name + "(...)" }
func (n *NativeFunction) Mark(gc *GC)     {}

// BoundMethod pairs a receiver Instance with one of its class's methods,
// produced when a method is read as a value rather than invoked directly
// (OP_GET_PROPERTY on a method hash, as opposed to OP_INVOKE).
type BoundMethod struct {
	Receiver Value
	Method   *Closure
}

func (b *BoundMethod) Typeof() string  { return "closure" }
func (b *BoundMethod) Inspect() string { return "bound " + b.Method.Inspect() }
func (b *BoundMethod) Mark(gc *GC) {
	gc.MarkValue(b.Receiver)
	gc.MarkObj(b.Method)
}

// Closure is a runtime function instance: an immutable bytecode.Function
// template plus captured Upvalues and pre-converted parameter defaults.
// Grounded on object/closure.go, generalized from Risor's pure-Object model
// to hold Value defaults/frees instead of Object.
type Closure struct {
	Fn       *bytecode.Function
	Defaults []Value
	Frees    []*Upvalue
}

func NewClosure(fn *bytecode.Function, defaults []Value) *Closure {
	return &Closure{Fn: fn, Defaults: defaults}
}

func (c *Closure) Typeof() string  { return "closure" }
func (c *Closure) Inspect() string { return c.Fn.String() }
func (c *Closure) Mark(gc *GC) {
	for _, d := range c.Defaults {
		gc.MarkValue(d)
	}
	for _, u := range c.Frees {
		gc.MarkObj(u)
	}
}

// Upvalue is a captured variable cell, open (pointing at a live VM stack
// slot) or closed (holding its own copy after the enclosing frame returns).
type Upvalue struct {
	Location *Value // points into the VM stack while open
	Closed   Value
	isClosed bool
}

func (u *Upvalue) Get() Value {
	if u.isClosed {
		return u.Closed
	}
	return *u.Location
}

func (u *Upvalue) Set(v Value) {
	if u.isClosed {
		u.Closed = v
		return
	}
	*u.Location = v
}

func (u *Upvalue) Close() {
	if !u.isClosed {
		u.Closed = *u.Location
		u.isClosed = true
	}
}

func (u *Upvalue) Typeof() string  { return "upvalue" }
func (u *Upvalue) Inspect() string { return "upvalue" }
func (u *Upvalue) Mark(gc *GC)     { gc.MarkValue(u.Get()) }

// Class is a process-wide global keyed by NameHash. Methods/fields are keyed
// by Murmur32 hash of their identifier. PropertyGet/PropertySet/ElementGet/
// ElementSet/NewFn are optional host hooks a native class registration may
// install (grounded on wudi-hey's class-registry pattern, adapted from
// string-keyed to hash-keyed lookup per the spec's identifier-hashing rule).
type Class struct {
	Name         string
	Hash         uint32
	ParentHash   uint32
	Parent       *Class
	Methods      map[uint32]*Closure
	Fields       map[uint32]Value
	Initializer  *Closure
	PropertyGet  func(inst *Instance, nameHash uint32) (Value, bool)
	PropertySet  func(inst *Instance, nameHash uint32, v Value) bool
	ElementGet   func(inst *Instance, index Value) (Value, bool)
	ElementSet   func(inst *Instance, index Value, v Value) bool
	NewFn        func(class *Class) *Instance

	// NativeInit runs in place of a bytecode Initializer when a native
	// class needs its constructor arguments (NewFn alone only gets the
	// Class, not the call's args). `new` prefers Initializer when both are
	// set, since a script-defined `+`-extension of a native class should
	// be able to override construction entirely.
	NativeInit func(inst *Instance, args []Value)

	// ID and DebugName are bookkeeping, not language-visible state: ID is
	// assigned once at declaration and never reused even across a `+`
	// extension merge, so a fatal error's stack trace or a heap dump can
	// tell two classes with the same Name apart (two `class Entity`
	// declarations loaded from different modules, say).
	ID        uuid.UUID
	DebugName string
}

func NewClass(name string, hash uint32) *Class {
	id, debugName := newDebugIdentity("class", name)
	return &Class{
		Name:      name,
		Hash:      hash,
		Methods:   map[uint32]*Closure{},
		Fields:    map[uint32]Value{},
		ID:        id,
		DebugName: debugName,
	}
}

func (c *Class) Typeof() string  { return "class" }
func (c *Class) Inspect() string { return "class " + c.Name }
func (c *Class) Mark(gc *GC) {
	for _, m := range c.Methods {
		gc.MarkObj(m)
	}
	for _, f := range c.Fields {
		gc.MarkValue(f)
	}
	if c.Initializer != nil {
		gc.MarkObj(c.Initializer)
	}
	if c.Parent != nil {
		gc.MarkObj(c.Parent)
	}
}

// Extend merges another class's methods and fields into c (class-extension
// semantics triggered when OP_DEFINE_GLOBAL/OP_DEFINE_CONSTANT targets a
// name hash that already names a Class).
func (c *Class) Extend(other *Class) {
	for hash, m := range other.Methods {
		c.Methods[hash] = m
	}
	for hash, f := range other.Fields {
		c.Fields[hash] = f
	}
	if other.Initializer != nil {
		c.Initializer = other.Initializer
	}
}

// ResolveMethod walks the parent-hash inheritance chain looking for a
// method with the given name hash.
func (c *Class) ResolveMethod(hash uint32) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Parent {
		if m, ok := cls.Methods[hash]; ok {
			return m, true
		}
	}
	return nil, false
}

// Instance is an object created from a Class, either via the class's NewFn
// host hook or by allocating an empty fields table (see spec §3.2).
type Instance struct {
	Class       *Class
	Fields      map[uint32]Value
	PropertyGet func(nameHash uint32) (Value, bool)
	PropertySet func(nameHash uint32, v Value) bool
	Native      any // optional host-attached payload (e.g. *scene.Entity)

	// ID and DebugName identify this specific instance, not its class —
	// two Entities both named "Entity" in a stack trace or an error
	// message need to read as distinct objects.
	ID        uuid.UUID
	DebugName string
}

func NewInstance(class *Class) *Instance {
	id, debugName := newDebugIdentity("instance", class.Name)
	return &Instance{Class: class, Fields: map[uint32]Value{}, ID: id, DebugName: debugName}
}

func (i *Instance) Typeof() string  { return "instance" }
func (i *Instance) Inspect() string { return "instance of " + i.Class.Name + " (" + i.DebugName + ")" }

// newDebugIdentity mints a V4 UUID and a short human-readable tag derived
// from it, used by NewClass/NewInstance so every heap object reported in a
// stack trace or diagnostic dump carries an identity that survives name
// collisions (two `class Entity` declarations loaded from different
// modules, two Instances of the same class).
func newDebugIdentity(kind, name string) (uuid.UUID, string) {
	id := uuid.Must(uuid.NewV4())
	return id, fmt.Sprintf("%s:%s#%s", kind, name, id.String()[:8])
}
func (i *Instance) Mark(gc *GC) {
	gc.MarkObj(i.Class)
	for _, f := range i.Fields {
		gc.MarkValue(f)
	}
}

// GetField looks up hash on the instance first (fields shadow methods),
// falling back to the class's method chain, returning a BoundMethod if a
// method is found.
func (i *Instance) GetField(hash uint32) (Value, bool) {
	if v, ok := i.Fields[hash]; ok {
		return v, true
	}
	if m, ok := i.Class.ResolveMethod(hash); ok {
		return FromObj(&BoundMethod{Receiver: FromObj(i), Method: m}), true
	}
	return Value{}, false
}

// Namespace groups a set of global bindings under `namespace Name { ... }`,
// optionally merged into file scope via `using namespace Name`.
type Namespace struct {
	Name   string
	Fields map[uint32]Value
	Order  []uint32
	InUse  bool
}

func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name, Fields: map[uint32]Value{}}
}

func (n *Namespace) Typeof() string  { return "namespace" }
func (n *Namespace) Inspect() string { return "namespace " + n.Name }
func (n *Namespace) Mark(gc *GC) {
	for _, f := range n.Fields {
		gc.MarkValue(f)
	}
}

// Enum is a fixed, ordered set of name/value bindings declared with `enum`.
type Enum struct {
	Name   string
	Fields map[uint32]Value
	Order  []uint32
}

func NewEnum(name string) *Enum {
	return &Enum{Name: name, Fields: map[uint32]Value{}}
}

func (e *Enum) Typeof() string  { return "enum" }
func (e *Enum) Inspect() string { return "enum " + e.Name }
func (e *Enum) Mark(gc *GC) {
	for _, f := range e.Fields {
		gc.MarkValue(f)
	}
}

// Array is a growable, ordered list of Values.
type Array struct {
	Elements []Value
}

func NewArray(elems []Value) *Array { return &Array{Elements: elems} }
func (a *Array) Typeof() string     { return "array" }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Mark(gc *GC) {
	for _, e := range a.Elements {
		gc.MarkValue(e)
	}
}

// Map is an insertion-ordered string-keyed map (Keys records insertion
// order; Values is keyed by the same string for O(1) lookup).
type Map struct {
	Values map[string]Value
	Keys   []string
}

func NewMap() *Map { return &Map{Values: map[string]Value{}} }

func (m *Map) Set(key string, v Value) {
	if _, exists := m.Values[key]; !exists {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = v
}

func (m *Map) Typeof() string { return "map" }
func (m *Map) Inspect() string {
	parts := make([]string, 0, len(m.Keys))
	for _, k := range m.Keys {
		parts = append(parts, fmt.Sprintf("%q: %s", k, m.Values[k].String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (m *Map) Mark(gc *GC) {
	for _, v := range m.Values {
		gc.MarkValue(v)
	}
}

// Module is a compiled script's top-level namespace: the functions/methods
// produced during that compile, plus module-local storage and the
// originating filename (empty for dynamically-built modules).
type Module struct {
	Functions      []*Closure
	Locals         []Value
	SourceFilename string
}

func (m *Module) Typeof() string  { return "module" }
func (m *Module) Inspect() string { return "module " + m.SourceFilename }
func (m *Module) Mark(gc *GC) {
	for _, f := range m.Functions {
		gc.MarkObj(f)
	}
	for _, l := range m.Locals {
		gc.MarkValue(l)
	}
}

// Stream is a host-provided sequence (e.g. an async asset load or event
// feed) exposed to scripts as an opaque iterable handle.
type Stream struct {
	Name string
	Next func() (Value, bool)
}

func (s *Stream) Typeof() string  { return "stream" }
func (s *Stream) Inspect() string { return "stream " + s.Name }
func (s *Stream) Mark(gc *GC)     {}

// Material describes a rasterizer blend/tint/stencil configuration (see
// component G); exposed to scripts so gameplay code can swap an entity's
// render style without a native call per frame.
type Material struct {
	Name       string
	BlendMode  int
	TintColor  uint32
	StencilOp  int
	UseDotMask bool
}

func (m *Material) Typeof() string  { return "material" }
func (m *Material) Inspect() string { return "material " + m.Name }
func (m *Material) Mark(gc *GC)     {}
