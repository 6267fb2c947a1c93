package vm

import (
	"github.com/hatchlang/hatch/bytecode"
	"github.com/hatchlang/hatch/op"
	"github.com/hatchlang/hatch/value"
)

// DefaultFrameLocals is not referenced by the VM: New preallocates a fixed
// pool of maxFrames frames that never grows, and a call past it is a fatal
// StackOverflow. Locals live directly on the operand stack
// (stack[basePointer:]) rather than in a
// separate per-frame array, since value.Upvalue.Location captures a pointer
// into "the VM stack while open" and a second, disjoint locals array would
// make that capture meaningless.
const DefaultFrameLocals = 8

// frame is one call's activation record: which Closure/Code is running, the
// instruction pointer within it, and where its locals begin on the shared
// value stack.
type frame struct {
	closure     *value.Closure
	code        *bytecode.Code
	ip          int
	basePointer int

	// extendNext is set by ExtendMark and consumed by the very next Class
	// dispatch, per op.ExtendMark's doc comment.
	extendNext bool

	// isCtor/ctorValue let `new` run a class's Initializer as an ordinary
	// call while still making the `new` expression evaluate to the
	// constructed Instance rather than whatever the initializer body
	// returns (constructors conventionally return nothing meaningful).
	isCtor    bool
	ctorValue value.Value

	// withBase is vm.withStack's length when this frame was pushed, so a
	// return out of a still-iterating `with` truncates only the cursors
	// this frame opened rather than leaking them onto whatever frame
	// resumes next.
	withBase int

	// openUpvalues are upvalues this frame's locals have been captured
	// into, keyed by local slot, so repeated closures over the same slot
	// share one Upvalue and CloseUpvalue only needs a slot number.
	openUpvalues map[int]*value.Upvalue
}

func (f *frame) fetch() op.Code {
	c := f.code.InstructionAt(f.ip)
	f.ip++
	return c
}

func (f *frame) openUpvalue(vm *VM, slot int) *value.Upvalue {
	if f.openUpvalues == nil {
		f.openUpvalues = map[int]*value.Upvalue{}
	}
	if u, ok := f.openUpvalues[slot]; ok {
		return u
	}
	u := &value.Upvalue{Location: &vm.stack[f.basePointer+slot]}
	f.openUpvalues[slot] = u
	return u
}

func (f *frame) closeUpvalue(slot int) {
	if f.openUpvalues == nil {
		return
	}
	if u, ok := f.openUpvalues[slot]; ok {
		u.Close()
		delete(f.openUpvalues, slot)
	}
}

func (f *frame) closeUpvaluesFrom(slot int) {
	for s, u := range f.openUpvalues {
		if s >= slot {
			u.Close()
			delete(f.openUpvalues, s)
		}
	}
}
