package bytecode

import (
	"fmt"
	"strings"

	"github.com/hatchlang/hatch/op"
)

// Instruction is one decoded opcode plus its operand words and, where the
// operand names something (a local, a global, a name-table entry, a
// constant), a human-readable annotation — grounded on Risor's pkg/dis
// Instruction/Disassemble split between "decode the instruction stream" and
// "render it", generalized here from Risor's LOAD_FAST/LOAD_GLOBAL/LOAD_ATTR/
// LOAD_CONST set to this op table's GetLocal/GetGlobal/GetProperty/Constant
// (and their Set* counterparts).
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operands   []op.Code
	Annotation string
}

// Disassemble decodes one Code block's instruction stream (not its nested
// function bodies — to print a whole program, cmd/hatch's disasm
// subcommand uses Listing, which recurses into *Function constants).
func Disassemble(code *Code) []Instruction {
	var out []Instruction
	ip := 0
	for ip < code.InstructionCount() {
		instr := DecodeOne(code, ip)
		out = append(out, instr)
		ip = instr.Offset + 1 + len(instr.Operands)
	}
	return out
}

// DecodeOne decodes the single instruction at ip, for a caller that doesn't
// want to decode the whole block — cmd/hatch's `--break` debugger calls this
// once per paused instruction rather than redisassembling the function body
// on every step.
func DecodeOne(code *Code, ip int) Instruction {
	instr := code.InstructionAt(ip)
	info := op.GetInfo(instr)
	operands := make([]op.Code, info.OperandCount)
	for i := 0; i < info.OperandCount; i++ {
		operands[i] = code.InstructionAt(ip + 1 + i)
	}
	return Instruction{
		Offset:     ip,
		Name:       info.Name,
		Opcode:     instr,
		Operands:   operands,
		Annotation: annotate(code, instr, operands),
	}
}

func annotate(code *Code, instr op.Code, operands []op.Code) string {
	if len(operands) == 0 {
		return ""
	}
	index := int(operands[0])
	switch instr {
	case op.GetLocal, op.SetLocal:
		if index < code.LocalNameCount() {
			if name := code.LocalNameAt(index); name != "" {
				return name
			}
		}
	case op.GetGlobal, op.SetGlobal, op.DefineGlobal, op.DefineConstant:
		if index < code.GlobalNameCount() {
			if name := code.GlobalNameAt(index); name != "" {
				return name
			}
		}
	case op.GetProperty, op.GetPropertyOrNil, op.SetProperty, op.Invoke,
		op.Class, op.Inherit, op.Method, op.Field, op.Enum, op.Namespace,
		op.UseNamespace, op.Import:
		if index < code.NameCount() {
			return code.NameAt(index)
		}
	case op.Constant:
		if index < code.ConstantCount() {
			return formatConstant(code.ConstantAt(index))
		}
	}
	return ""
}

func formatConstant(v any) string {
	switch c := v.(type) {
	case string:
		if len(c) > 60 {
			c = c[:57] + "..."
		}
		return fmt.Sprintf("%q", c)
	case *Function:
		name := c.Name()
		if name == "" {
			name = "<anonymous>"
		}
		return "func:" + name
	default:
		return fmt.Sprintf("%v", c)
	}
}

// Listing renders code and every nested function body into the text format
// the `disasm` CLI subcommand prints, one "== name ==" header per Code block
// followed by its decoded instructions.
func Listing(code *Code) string {
	var out strings.Builder
	listOne(&out, code)
	return out.String()
}

func listOne(out *strings.Builder, code *Code) {
	header := "<module>"
	if code.IsNamed() {
		header = code.Name()
	}
	fmt.Fprintf(out, "== %s ==\n", header)
	for _, instr := range Disassemble(code) {
		fmt.Fprintf(out, "%04d  %-20s", instr.Offset, instr.Name)
		for _, operand := range instr.Operands {
			fmt.Fprintf(out, " %d", operand)
		}
		if instr.Annotation != "" {
			fmt.Fprintf(out, "  ; %s", instr.Annotation)
		}
		out.WriteString("\n")
	}
	for i := 0; i < code.ConstantCount(); i++ {
		if fn, ok := code.ConstantAt(i).(*Function); ok && fn.Code() != nil {
			out.WriteString("\n")
			listOne(out, fn.Code())
		}
	}
}
