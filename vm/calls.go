package vm

import (
	"github.com/hatchlang/hatch/herr"
	"github.com/hatchlang/hatch/value"
)

// call implements the Call opcode: stack is [callee, arg0..argN-1], callee
// sitting argc+1 slots below the top.
func (vm *VM) call(argc int) error {
	calleeSlot := vm.sp - argc - 1
	callee := vm.stack[calleeSlot]
	return vm.dispatchCall(callee, calleeSlot, argc)
}

// dispatchCall resolves callee to something invokable and either runs it to
// completion synchronously (NativeFunction) or pushes a new frame for eval's
// loop to continue into (Closure/BoundMethod). Calling a Class directly is a
// convenience alias for `new`.
func (vm *VM) dispatchCall(callee value.Value, calleeSlot, argc int) error {
	if callee.Kind() != value.KindObject {
		return herr.New(herr.TypeMismatch, "%s is not callable", callee.Typeof())
	}
	switch c := callee.Obj().(type) {
	case *value.Closure:
		return vm.pushCallFrame(c, nil, calleeSlot, argc, false)
	case *value.BoundMethod:
		recv := c.Receiver
		return vm.pushCallFrame(c.Method, &recv, calleeSlot, argc, false)
	case *value.NativeFunction:
		args := make([]value.Value, argc)
		copy(args, vm.stack[calleeSlot+1:calleeSlot+1+argc])
		result := c.Fn(args)
		vm.sp = calleeSlot
		vm.push(result)
		return nil
	case *value.Class:
		return vm.construct(c, calleeSlot, argc)
	default:
		return herr.New(herr.TypeMismatch, "%s is not callable", callee.Typeof())
	}
}

// invoke implements the Invoke opcode: stack is [receiver, arg0..argN-1].
// Instance receivers resolve name through the class method chain (or, for
// `super.name(...)`, starting one link up that chain); Array/Map/String
// receivers fall back to the handful of built-in methods the foreach
// desugar and collection literals rely on.
func (vm *VM) invoke(name string, argc int, isSuper bool) error {
	recvSlot := vm.sp - argc - 1
	recv := vm.stack[recvSlot]
	if recv.Kind() != value.KindObject {
		return herr.New(herr.UnknownMethod, "no method %q on %s", name, recv.Typeof())
	}
	hash := value.HashIdent(name)
	switch o := recv.Obj().(type) {
	case *value.Instance:
		class := o.Class
		if isSuper {
			class = class.Parent
		}
		if class == nil {
			return herr.New(herr.UnknownMethod, "no superclass method %q", name)
		}
		if m, ok := class.ResolveMethod(hash); ok {
			return vm.pushCallFrame(m, &recv, recvSlot, argc, false)
		}
		if class.PropertyGet != nil {
			if v, ok := class.PropertyGet(o, hash); ok {
				return vm.dispatchCall(v, recvSlot, argc)
			}
		}
		return vm.invokeBuiltin(recv, name, recvSlot, argc)
	default:
		return vm.invokeBuiltin(recv, name, recvSlot, argc)
	}
}

// invokeBuiltin backs the stateless iterate/iteratorValue protocol foreach
// compiles to, plus any other zero-declaration-needed collection method.
// These run synchronously: no frame is pushed, the result replaces the
// receiver and its arguments directly.
func (vm *VM) invokeBuiltin(recv value.Value, name string, recvSlot, argc int) error {
	args := make([]value.Value, argc)
	copy(args, vm.stack[recvSlot+1:recvSlot+1+argc])

	var result value.Value
	var err error
	switch name {
	case "iterate":
		var state value.Value
		if len(args) > 0 {
			state = args[0]
		}
		result, err = vm.builtinIterate(recv, state)
	case "iteratorValue":
		var state value.Value
		if len(args) > 0 {
			state = args[0]
		}
		result, err = vm.builtinIteratorValue(recv, state)
	default:
		return herr.New(herr.UnknownMethod, "no method %q on %s", name, recv.Typeof())
	}
	if err != nil {
		return err
	}
	vm.sp = recvSlot
	vm.push(result)
	return nil
}

func iterableLength(recv value.Value) (int, bool) {
	switch o := recv.Obj().(type) {
	case *value.Array:
		return len(o.Elements), true
	case *value.Map:
		return len(o.Keys), true
	case *value.String:
		return len(o.Value), true
	default:
		return 0, false
	}
}

func (vm *VM) builtinIterate(recv, state value.Value) (value.Value, error) {
	length, ok := iterableLength(recv)
	if !ok {
		return value.Null, herr.New(herr.TypeMismatch, "%s is not iterable", recv.Typeof())
	}
	next := int32(0)
	if !state.IsNull() {
		next = state.Int() + 1
	}
	if int(next) >= length {
		return value.Null, nil
	}
	return value.Integer(next), nil
}

func (vm *VM) builtinIteratorValue(recv, state value.Value) (value.Value, error) {
	i := int(state.Int())
	switch o := recv.Obj().(type) {
	case *value.Array:
		if i < 0 || i >= len(o.Elements) {
			return value.Null, herr.New(herr.IndexOutOfRange, "iterator index %d out of range", i)
		}
		return o.Elements[i], nil
	case *value.Map:
		if i < 0 || i >= len(o.Keys) {
			return value.Null, herr.New(herr.IndexOutOfRange, "iterator index %d out of range", i)
		}
		return value.FromObj(vm.gc.Register(value.NewString(o.Keys[i]))), nil
	case *value.String:
		if i < 0 || i >= len(o.Value) {
			return value.Null, herr.New(herr.IndexOutOfRange, "iterator index %d out of range", i)
		}
		return value.FromObj(vm.gc.Register(value.NewString(string(o.Value[i])))), nil
	default:
		return value.Null, herr.New(herr.TypeMismatch, "%s is not iterable", recv.Typeof())
	}
}

// pushCallFrame sets up a new activation record for closure at the stack
// region starting right after calleeSlot (where the callee value itself
// sat), fills missing trailing parameters from closure.Defaults, binds
// receiver into the `this` slot for methods, and zero-fills any remaining
// local slots up to the function's full local count. ctor marks the frame
// so doReturn discards the initializer's own return value in favor of the
// instance already sitting at ctorValue.
func (vm *VM) pushCallFrame(closure *value.Closure, receiver *value.Value, calleeSlot, argc int, ctor bool) error {
	fn := closure.Fn
	required := fn.RequiredArgsCount()
	total := fn.ParameterCount()
	if argc < required || argc > total {
		return herr.New(herr.TypeMismatch, "function %q expects %d to %d arguments, got %d", fn.Name(), required, total, argc)
	}

	for i := argc; i < total; i++ {
		vm.push(closure.Defaults[i])
	}
	filled := total
	if fn.IsMethod() {
		if receiver != nil {
			vm.push(*receiver)
		} else {
			vm.push(value.Null)
		}
		filled++
	}
	for i := filled; i < fn.LocalCount(); i++ {
		vm.push(value.Null)
	}

	if vm.frameIdx+1 >= len(vm.frames) {
		return herr.Fatal(herr.StackOverflow, "stack overflow: call depth exceeded")
	}
	vm.frameIdx++
	f := &vm.frames[vm.frameIdx]
	var ctorValue value.Value
	if ctor && receiver != nil {
		ctorValue = *receiver
	}
	*f = frame{closure: closure, code: fn.Code(), basePointer: calleeSlot + 1, isCtor: ctor, ctorValue: ctorValue, withBase: len(vm.withStack)}
	return nil
}

// doReturn pops the returning frame's result, closes any upvalues its
// locals were captured into, unwinds the stack back to the call site, and
// reports whether the outermost frame just returned (eval should stop).
func (vm *VM) doReturn() (bool, error) {
	f := vm.cur()
	ret := vm.pop()
	f.closeUpvaluesFrom(0)
	// A `with` left mid-iteration by this return (break/return inside its
	// body) leaks its cursor onto the caller's view of vm.withStack
	// otherwise, corrupting whichever with-statement runs next.
	vm.withStack = vm.withStack[:f.withBase]
	if f.isCtor {
		ret = f.ctorValue
	}
	if vm.frameIdx == 0 {
		vm.sp = 0
		vm.push(ret)
		return true, nil
	}
	vm.sp = f.basePointer - 1
	vm.frameIdx--
	vm.push(ret)
	return false, nil
}

// newInstance implements the New opcode: stack is [classValue, arg0..argN-1].
func (vm *VM) newInstance(argc int) error {
	classSlot := vm.sp - argc - 1
	classVal := vm.stack[classSlot]
	cls, ok := classVal.Obj().(*value.Class)
	if !ok {
		return herr.New(herr.TypeMismatch, "'new' target is not a class")
	}
	return vm.construct(cls, classSlot, argc)
}

// construct allocates an Instance (through the class's NewFn host hook when
// present) and, if the class declares an initializer method, runs it bound
// to the new instance before leaving the instance itself on the stack.
func (vm *VM) construct(cls *value.Class, slot, argc int) error {
	var inst *value.Instance
	if cls.NewFn != nil {
		inst = cls.NewFn(cls)
	} else {
		inst = value.NewInstance(cls)
	}
	instVal := value.FromObj(vm.gc.Register(inst))

	if cls.Initializer != nil {
		return vm.pushCallFrame(cls.Initializer, &instVal, slot, argc, true)
	}
	if cls.NativeInit != nil {
		args := make([]value.Value, argc)
		copy(args, vm.stack[slot+1:slot+1+argc])
		cls.NativeInit(inst, args)
	}
	vm.sp = slot
	vm.push(instVal)
	return nil
}
