package vm

import (
	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/herr"
	"github.com/hatchlang/hatch/value"
)

// anyToValue converts a compiler-pool constant (an int64/float32/string/bool
// literal, nil, or a *bytecode.Function template) into a runtime Value,
// allocating through the shared GC heap where the result is a heap object.
func (vm *VM) anyToValue(v any) value.Value {
	switch t := v.(type) {
	case int64:
		return value.Integer(int32(t))
	case float32:
		return value.Decimal(t)
	case string:
		return value.FromObj(vm.gc.Register(value.NewString(t)))
	case bool:
		return boolValue(t)
	case *bytecode.Function:
		return value.FromObj(vm.gc.Register(&value.Function{Fn: t}))
	default:
		return value.Null
	}
}

// doClosure materializes a Closure from a function constant plus the
// isLocal/index upvalue-capture pairs the compiler emitted after it: a local
// pair opens (or reuses) an Upvalue over the enclosing frame's stack slot, a
// non-local pair reuses one of the enclosing closure's own Frees, chaining
// capture across nested function levels.
func (vm *VM) doClosure(f *frame) {
	fnIdx := f.fetch()
	upvalCount := f.fetch()

	fnObj := f.code.ConstantAt(int(fnIdx)).(*bytecode.Function)
	defaults := make([]value.Value, fnObj.DefaultCount())
	for i := 0; i < fnObj.DefaultCount(); i++ {
		defaults[i] = vm.anyToValue(fnObj.Default(i))
	}

	closure := value.NewClosure(fnObj, defaults)
	for i := 0; i < int(upvalCount); i++ {
		isLocal := f.fetch()
		idx := f.fetch()
		if isLocal != 0 {
			closure.Frees = append(closure.Frees, f.openUpvalue(vm, int(idx)))
		} else {
			closure.Frees = append(closure.Frees, f.closure.Frees[int(idx)])
		}
	}
	vm.push(value.FromObj(vm.gc.Register(closure)))
}

// getProperty reads name off obj: an Instance checks its own fields, then its
// class's method chain (producing a BoundMethod); a Class/Namespace/Enum
// reads its own Fields table directly. missingOK makes a not-found result
// Null instead of an error, for GetPropertyOrNil (`obj?.field`-style access
// callers may add later).
func (vm *VM) getProperty(obj value.Value, name string, missingOK bool) (value.Value, error) {
	hash := value.HashIdent(name)
	if obj.Kind() != value.KindObject {
		return vm.missingProperty(obj, name, missingOK)
	}
	switch o := obj.Obj().(type) {
	case *value.Instance:
		if o.PropertyGet != nil {
			if v, ok := o.PropertyGet(hash); ok {
				return v, nil
			}
		}
		if v, ok := o.GetField(hash); ok {
			return v, nil
		}
		if o.Class.PropertyGet != nil {
			if v, ok := o.Class.PropertyGet(o, hash); ok {
				return v, nil
			}
		}
		return vm.missingProperty(obj, name, missingOK)
	case *value.Class:
		if v, ok := o.Fields[hash]; ok {
			return v, nil
		}
		if m, ok := o.ResolveMethod(hash); ok {
			return value.FromObj(m), nil
		}
		return vm.missingProperty(obj, name, missingOK)
	case *value.Namespace:
		if v, ok := o.Fields[hash]; ok {
			return v, nil
		}
		return vm.missingProperty(obj, name, missingOK)
	case *value.Enum:
		if v, ok := o.Fields[hash]; ok {
			return v, nil
		}
		return vm.missingProperty(obj, name, missingOK)
	case *value.Array:
		if name == "length" {
			return value.Integer(int32(len(o.Elements))), nil
		}
		return vm.missingProperty(obj, name, missingOK)
	case *value.Map:
		if name == "size" {
			return value.Integer(int32(len(o.Keys))), nil
		}
		return vm.missingProperty(obj, name, missingOK)
	case *value.String:
		if name == "length" {
			return value.Integer(int32(len(o.Value))), nil
		}
		return vm.missingProperty(obj, name, missingOK)
	default:
		return vm.missingProperty(obj, name, missingOK)
	}
}

func (vm *VM) missingProperty(obj value.Value, name string, missingOK bool) (value.Value, error) {
	if missingOK {
		return value.Null, nil
	}
	return value.Null, herr.New(herr.NameResolution, "no property %q on %s", name, obj.Typeof())
}

// setProperty writes name on obj, restricted to Instance fields and
// Namespace members — Class/Enum bodies are only ever mutated by the
// Field/Method/EnumMember opcodes during their own declaration.
func (vm *VM) setProperty(obj value.Value, name string, val value.Value) error {
	if obj.Kind() != value.KindObject {
		return herr.New(herr.TypeMismatch, "cannot set property %q on %s", name, obj.Typeof())
	}
	hash := value.HashIdent(name)
	switch o := obj.Obj().(type) {
	case *value.Instance:
		if o.PropertySet != nil && o.PropertySet(hash, val) {
			return nil
		}
		if o.Class.PropertySet != nil && o.Class.PropertySet(o, hash, val) {
			return nil
		}
		o.Fields[hash] = val
		return nil
	case *value.Namespace:
		o.Fields[hash] = val
		return nil
	default:
		return herr.New(herr.TypeMismatch, "cannot set property %q on %s", name, obj.Typeof())
	}
}

// getElement implements `obj[index]` for Array (integer index) and Map
// (string key, stringified via Value.String for non-string keys).
func (vm *VM) getElement(obj, index value.Value) (value.Value, error) {
	if obj.Kind() != value.KindObject {
		return value.Null, herr.New(herr.TypeMismatch, "cannot index %s", obj.Typeof())
	}
	switch o := obj.Obj().(type) {
	case *value.Array:
		i := int(index.Int())
		if i < 0 || i >= len(o.Elements) {
			return value.Null, herr.New(herr.IndexOutOfRange, "array index %d out of range (len %d)", i, len(o.Elements))
		}
		return o.Elements[i], nil
	case *value.Map:
		v, ok := o.Values[index.String()]
		if !ok {
			return value.Null, nil
		}
		return v, nil
	case *value.Instance:
		if o.Class.ElementGet != nil {
			if v, ok := o.Class.ElementGet(o, index); ok {
				return v, nil
			}
		}
		return value.Null, herr.New(herr.TypeMismatch, "%s is not indexable", obj.Typeof())
	default:
		return value.Null, herr.New(herr.TypeMismatch, "%s is not indexable", obj.Typeof())
	}
}

func (vm *VM) setElement(obj, index, val value.Value) error {
	if obj.Kind() != value.KindObject {
		return herr.New(herr.TypeMismatch, "cannot index-assign %s", obj.Typeof())
	}
	switch o := obj.Obj().(type) {
	case *value.Array:
		i := int(index.Int())
		if i == len(o.Elements) {
			o.Elements = append(o.Elements, val)
			return nil
		}
		if i < 0 || i >= len(o.Elements) {
			return herr.New(herr.IndexOutOfRange, "array index %d out of range (len %d)", i, len(o.Elements))
		}
		o.Elements[i] = val
		return nil
	case *value.Map:
		o.Set(index.String(), val)
		return nil
	case *value.Instance:
		if o.Class.ElementSet != nil && o.Class.ElementSet(o, index, val) {
			return nil
		}
		return herr.New(herr.TypeMismatch, "%s is not index-assignable", obj.Typeof())
	default:
		return herr.New(herr.TypeMismatch, "cannot index-assign %s", obj.Typeof())
	}
}
