package script

import (
	"github.com/hatchlang/hatch/value"
)

// NativeClass is a builder for registering a host-defined class, adapting
// wudi-hey's ClassDescriptor/MethodDescriptor registry pattern (compiler/
// registry/class.go) to this runtime's value.Class host hooks — Risor
// itself has no class system to borrow a native-class idiom from, so this
// is the "rewrite in the teacher's manner where it doesn't fit" case §4.4
// calls out. Methods are installed through Class.PropertyGet (the same
// fallback a script-defined method lookup already uses) rather than
// Class.Methods, since that map only ever holds bytecode-backed Closures.
type NativeClass struct {
	class   *value.Class
	methods map[uint32]func(this *value.Instance, args []value.Value) value.Value
}

// NewNativeClass starts building a native class under name. Call Build
// once all methods/fields/hooks are set, and pass its result to
// Manager.RegisterClass to publish it.
func NewNativeClass(name string) *NativeClass {
	return &NativeClass{
		class:   value.NewClass(name, value.HashIdent(name)),
		methods: map[uint32]func(this *value.Instance, args []value.Value) value.Value{},
	}
}

// Method installs a native-backed method. The host function receives the
// bound Instance plus the call's own arguments.
func (b *NativeClass) Method(name string, fn func(this *value.Instance, args []value.Value) value.Value) *NativeClass {
	b.methods[value.HashIdent(name)] = fn
	return b
}

// Field sets a class-level (static) field default.
func (b *NativeClass) Field(name string, v value.Value) *NativeClass {
	b.class.Fields[value.HashIdent(name)] = v
	return b
}

// PropertyGet/PropertySet/ElementGet/ElementSet/NewFn install the optional
// host hooks §3.2/§4.4 list for native classes. Installing a PropertyGet
// hook here composes with Method's own use of PropertyGet: the method
// lookup runs first, falling back to the caller-supplied hook.
func (b *NativeClass) PropertyGet(fn func(inst *value.Instance, nameHash uint32) (value.Value, bool)) *NativeClass {
	b.class.PropertyGet = fn
	return b
}
func (b *NativeClass) PropertySet(fn func(inst *value.Instance, nameHash uint32, v value.Value) bool) *NativeClass {
	b.class.PropertySet = fn
	return b
}
func (b *NativeClass) ElementGet(fn func(inst *value.Instance, index value.Value) (value.Value, bool)) *NativeClass {
	b.class.ElementGet = fn
	return b
}
func (b *NativeClass) ElementSet(fn func(inst *value.Instance, index value.Value, v value.Value) bool) *NativeClass {
	b.class.ElementSet = fn
	return b
}
func (b *NativeClass) NewFn(fn func(class *value.Class) *value.Instance) *NativeClass {
	b.class.NewFn = fn
	return b
}

// Init installs the native initializer `new` runs when the class has no
// bytecode Initializer, giving native classes access to the constructor's
// own arguments (NewFn alone only receives the Class).
func (b *NativeClass) Init(fn func(this *value.Instance, args []value.Value) value.Value) *NativeClass {
	b.class.NativeInit = func(inst *value.Instance, args []value.Value) { fn(inst, args) }
	return b
}

// Build returns the assembled Class, ready for Manager.RegisterClass.
func (b *NativeClass) Build() *value.Class {
	if len(b.methods) > 0 {
		userHook := b.class.PropertyGet
		methods := b.methods
		b.class.PropertyGet = func(inst *value.Instance, hash uint32) (value.Value, bool) {
			if fn, ok := methods[hash]; ok {
				bound := fn
				return value.FromObj(&value.NativeFunction{
					Name: inst.Class.Name,
					Fn:   func(args []value.Value) value.Value { return bound(inst, args) },
				}), true
			}
			if userHook != nil {
				return userHook(inst, hash)
			}
			return value.Value{}, false
		}
	}
	return b.class
}
