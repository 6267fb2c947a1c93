// Package op defines the opcodes used by the compiler and virtual machine.
// Instructions are encoded as a flat []Code (one word per opcode or operand,
// mirroring bytecode.Code.instructions), not a packed byte stream: operands
// that refer to names (globals, properties, methods) are indices into a
// per-chunk names table, and the runtime environment hashes those names with
// Murmur32 internally for fast map lookups.
package op

// Code is an opcode, or an operand word immediately following one.
type Code uint16

const (
	Invalid Code = 0

	// Constants and simple pushes.
	Constant Code = iota + 1
	Null
	True
	False
	Pop
	PopN // operand: count

	// Arithmetic/bitwise (§4.1).
	Add
	Subtract
	Multiply
	Divide
	Modulo
	Negate
	Not
	BitAnd
	BitOr
	BitXor
	BitNot
	Shl
	Shr

	// Comparisons. `==` yields ValuesSortaEqual semantics; Has implements `has`.
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Has

	// Control flow: jump operands are absolute instruction indices,
	// resolved by the compiler's backpatching pass.
	Jump
	JumpBack
	JumpIfFalse
	JumpIfFalsePop
	JumpIfTrue

	// Locals / globals / module-locals / constants.
	GetLocal       // operand: slot
	SetLocal       // operand: slot
	GetGlobal      // operand: name index
	SetGlobal      // operand: name index
	DefineGlobal   // operand: name index
	DefineConstant // operand: name index
	GetModuleLocal // operand: slot
	SetModuleLocal // operand: slot

	// Upvalues / closures.
	Closure      // operands: function constant index, upvalue count; followed by that many isLocal/index word pairs
	GetUpvalue   // operand: index
	SetUpvalue   // operand: index
	CloseUpvalue

	// Property / element access.
	GetProperty      // operand: name index
	GetPropertyOrNil // operand: name index; missing property yields Null, not an error
	SetProperty      // operand: name index
	GetElement
	SetElement

	// Array / map construction.
	NewArray // operand: element count
	NewMap   // operand: pair count

	// Calls.
	Call   // operand: argument count
	Invoke // operands: name index, argument count, isSuper (0/1)
	Return

	// Classes.
	Class      // operand: name index
	Inherit    // operand: parent name index
	Method     // operand: name index
	Field      // operand: name index
	ExtendMark // marks the following Class as a `+` extension merge

	// Enums.
	Enum       // operand: name index (0 for anonymous)
	EnumMember // operands: member name index, hasValue (0/1)

	// Namespaces.
	Namespace    // operand: name index
	UseNamespace // operand: name index
	NamespaceEnd

	// Import.
	Import       // operand: name index
	ImportModule // operand: path constant index

	// `with` iteration state machine (§4.3).
	WithInit        // operand: jump-past-body target
	WithInitSlotted // operands: jump-past-body target, bound local slot
	WithIterate     // operand: jump-back-to-body target
	WithFinish

	// `switch`.
	Switch      // linear Equal/JumpIfTrue cascade; no dedicated opcode beyond comparisons
	SwitchTable // operand: jump-table constant index

	// Misc.
	Typeof
	New // operand: argument count
	Print
	Dup
	Increment
	Decrement
	SaveRegister // operand: register index
	LoadRegister // operand: register index
	Failsafe     // operand: absolute instruction index of the failsafe handler
	Halt
)

// Info describes one opcode: its mnemonic and how many operand words follow.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type entry struct {
		code  Code
		name  string
		count int
	}
	entries := []entry{
		{Constant, "CONSTANT", 1},
		{Null, "NULL", 0},
		{True, "TRUE", 0},
		{False, "FALSE", 0},
		{Pop, "POP", 0},
		{PopN, "POPN", 1},
		{Add, "ADD", 0},
		{Subtract, "SUBTRACT", 0},
		{Multiply, "MULTIPLY", 0},
		{Divide, "DIVIDE", 0},
		{Modulo, "MODULO", 0},
		{Negate, "NEGATE", 0},
		{Not, "NOT", 0},
		{BitAnd, "BIT_AND", 0},
		{BitOr, "BIT_OR", 0},
		{BitXor, "BIT_XOR", 0},
		{BitNot, "BIT_NOT", 0},
		{Shl, "SHL", 0},
		{Shr, "SHR", 0},
		{Equal, "EQUAL", 0},
		{NotEqual, "NOT_EQUAL", 0},
		{Less, "LESS", 0},
		{LessEqual, "LESS_EQUAL", 0},
		{Greater, "GREATER", 0},
		{GreaterEqual, "GREATER_EQUAL", 0},
		{Has, "HAS", 0},
		{Jump, "JUMP", 1},
		{JumpBack, "JUMP_BACK", 1},
		{JumpIfFalse, "JUMP_IF_FALSE", 1},
		{JumpIfFalsePop, "JUMP_IF_FALSE_POP", 1},
		{JumpIfTrue, "JUMP_IF_TRUE", 1},
		{GetLocal, "GET_LOCAL", 1},
		{SetLocal, "SET_LOCAL", 1},
		{GetGlobal, "GET_GLOBAL", 1},
		{SetGlobal, "SET_GLOBAL", 1},
		{DefineGlobal, "DEFINE_GLOBAL", 1},
		{DefineConstant, "DEFINE_CONSTANT", 1},
		{GetModuleLocal, "GET_MODULE_LOCAL", 1},
		{SetModuleLocal, "SET_MODULE_LOCAL", 1},
		{Closure, "CLOSURE", 2},
		{GetUpvalue, "GET_UPVALUE", 1},
		{SetUpvalue, "SET_UPVALUE", 1},
		{CloseUpvalue, "CLOSE_UPVALUE", 0},
		{GetProperty, "GET_PROPERTY", 1},
		{GetPropertyOrNil, "GET_PROPERTY_OR_NIL", 1},
		{SetProperty, "SET_PROPERTY", 1},
		{GetElement, "GET_ELEMENT", 0},
		{SetElement, "SET_ELEMENT", 0},
		{NewArray, "NEW_ARRAY", 1},
		{NewMap, "NEW_MAP", 1},
		{Call, "CALL", 1},
		{Invoke, "INVOKE", 3},
		{Return, "RETURN", 0},
		{Class, "CLASS", 1},
		{Inherit, "INHERIT", 1},
		{Method, "METHOD", 1},
		{Field, "FIELD", 1},
		{ExtendMark, "EXTEND_MARK", 0},
		{Enum, "ENUM", 1},
		{EnumMember, "ENUM_MEMBER", 2},
		{Namespace, "NAMESPACE", 1},
		{UseNamespace, "USE_NAMESPACE", 1},
		{NamespaceEnd, "NAMESPACE_END", 0},
		{Import, "IMPORT", 1},
		{ImportModule, "IMPORT_MODULE", 1},
		{WithInit, "WITH_INIT", 1},
		{WithInitSlotted, "WITH_INIT_SLOTTED", 2},
		{WithIterate, "WITH_ITERATE", 1},
		{WithFinish, "WITH_FINISH", 0},
		{Switch, "SWITCH", 0},
		{SwitchTable, "SWITCH_TABLE", 1},
		{Typeof, "TYPEOF", 0},
		{New, "NEW", 1},
		{Print, "PRINT", 0},
		{Dup, "DUP", 0},
		{Increment, "INCREMENT", 0},
		{Decrement, "DECREMENT", 0},
		{SaveRegister, "SAVE_REGISTER", 1},
		{LoadRegister, "LOAD_REGISTER", 1},
		{Failsafe, "FAILSAFE", 1},
		{Halt, "HALT", 0},
	}
	for _, e := range entries {
		infos[e.code] = Info{Code: e.code, Name: e.name, OperandCount: e.count}
	}
}

// GetInfo returns the Info describing opcode c.
func GetInfo(c Code) Info {
	return infos[c]
}
