package vm

import (
	"github.com/hatchlang/hatch/herr"
	"github.com/hatchlang/hatch/value"
)

// doClass handles the Class opcode. A plain class declaration pushes a
// fresh Class; a `+` extension (ExtendMark immediately before Class) looks
// up the existing global of the same name and pushes that instead, so the
// following Field/Method opcodes merge members directly into it rather than
// building a second Class the later DefineGlobal would have to reconcile.
func (vm *VM) doClass(f *frame, name string) {
	if f.extendNext {
		f.extendNext = false
		if existing, ok := vm.getGlobal(name); ok {
			if cls, ok := existing.Obj().(*value.Class); ok {
				vm.push(value.FromObj(cls))
				return
			}
		}
	}
	vm.push(value.FromObj(vm.gc.Register(value.NewClass(name, value.HashIdent(name)))))
}

// doInherit sets the base class of the Class sitting on top of the stack
// (left in place; Field/Method still need it).
func (vm *VM) doInherit(name string) error {
	v := vm.peek(0)
	cls, ok := v.Obj().(*value.Class)
	if !ok {
		return herr.New(herr.TypeMismatch, "inherit target is not a class")
	}
	baseVal, ok := vm.getGlobal(name)
	if !ok {
		return herr.New(herr.NameResolution, "undefined base class %q", name)
	}
	base, ok := baseVal.Obj().(*value.Class)
	if !ok {
		return herr.New(herr.TypeMismatch, "%q is not a class", name)
	}
	cls.Parent = base
	cls.ParentHash = base.Hash
	return nil
}

// doField pops the field's initial value and assigns it on the Class left
// on top of the stack.
func (vm *VM) doField(name string) {
	val := vm.pop()
	cls := vm.peek(0).Obj().(*value.Class)
	cls.Fields[value.HashIdent(name)] = val
}

// doMethod pops the method's Closure and assigns it on the Class left on
// top of the stack. A method whose name matches the class's own name is the
// constructor, per ast.ClassDecl's Method doc comment.
func (vm *VM) doMethod(name string) {
	closureVal := vm.pop()
	cls := vm.peek(0).Obj().(*value.Class)
	closure := closureVal.Obj().(*value.Closure)
	cls.Methods[value.HashIdent(name)] = closure
	if name == cls.Name {
		cls.Initializer = closure
	}
}

// doEnum handles the Enum opcode, pushing a fresh Enum for the following
// EnumMember opcodes to populate.
func (vm *VM) doEnum(name string) {
	vm.push(value.FromObj(vm.gc.Register(value.NewEnum(name))))
}

// doEnumMember pops the member's value and assigns it on the Enum left on
// top of the stack, recording insertion order. hasValue is unused at
// runtime (the compiler already resolved auto-increment at compile time);
// it is carried through purely so the opcode's wire shape matches
// EnumMember's two-word encoding.
func (vm *VM) doEnumMember(name string, hasValue bool) {
	val := vm.pop()
	en := vm.peek(0).Obj().(*value.Enum)
	hash := value.HashIdent(name)
	if _, exists := en.Fields[hash]; !exists {
		en.Order = append(en.Order, hash)
	}
	en.Fields[hash] = val
}
