package vm

import (
	"github.com/hatchlang/hatch/op"
	"github.com/hatchlang/hatch/value"
)

// withInit pops the `with` subject and starts iterating it: a String looks
// up a registered ObjectList/ObjectRegistry by that name through the
// installed ObjectListResolver, an Array iterates its elements, anything
// else iterates as a single-member list (a lone Instance rebinds the
// receiver for one pass, per ast.WithStmt's doc comment). slot is the local
// the compiler resolved for either the `as` binding or the enclosing
// method's own `this`, or -1 when neither applies and the body only runs
// for its side effects on a single subject.
func (vm *VM) withInit(f *frame, jumpPast op.Code, slot int) {
	subject := vm.pop()
	var members []value.Value
	resolved := false
	if subject.Kind() == value.KindObject {
		switch o := subject.Obj().(type) {
		case *value.Array:
			members = o.Elements
			resolved = true
		case *value.String:
			if vm.objectListResolver != nil {
				if found, ok := vm.objectListResolver(o.Value); ok {
					members = found
					resolved = true
				} else {
					members = nil
					resolved = true
				}
			}
		}
	}
	if !resolved {
		members = []value.Value{subject}
	}

	var saved value.Value
	if slot >= 0 {
		saved = vm.stack[f.basePointer+slot]
	}
	// A cursor is pushed even for zero members so WithFinish always has
	// exactly one cursor per with-statement to pop and restore from,
	// regardless of which path (body ran, body skipped, break) reaches it.
	vm.withStack = append(vm.withStack, withCursor{members: members, index: 0, slot: slot, saved: saved})

	if len(members) == 0 {
		f.ip = int(jumpPast)
		return
	}
	if slot >= 0 {
		vm.stack[f.basePointer+slot] = members[0]
	}
}

// withIterate advances the innermost active with-cursor, jumping back to
// the loop body when members remain and otherwise letting execution fall
// through to the following WithFinish instruction.
func (vm *VM) withIterate(f *frame, jumpBack op.Code) {
	top := len(vm.withStack) - 1
	cur := &vm.withStack[top]
	cur.index++
	if cur.index < len(cur.members) {
		if cur.slot >= 0 {
			vm.stack[f.basePointer+cur.slot] = cur.members[cur.index]
		}
		f.ip = int(jumpBack)
		return
	}
	// Exhausted: fall through to the following WithFinish, which pops this
	// cursor and restores the receiver slot.
}
