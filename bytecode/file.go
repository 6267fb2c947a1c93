package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hatchlang/hatch/op"
)

// fileMagic/fileVersion identify the binary bytecode file format named in
// §6: a little-endian stream following Code's own field layout, written with
// encoding/binary the same way Function/Code's in-memory shape is defined —
// no ecosystem bytecode-serialization library appears anywhere in the
// retrieval pack, so this one marshal/unmarshal pair is stdlib (see
// DESIGN.md).
const (
	fileMagic   = "HBC\x00"
	fileVersion = uint32(1)
)

const (
	constTagNull uint8 = iota
	constTagInt
	constTagFloat
	constTagString
	constTagBool
	constTagFunction
)

// WriteFile serializes code, and every Code block reachable through a
// nested Function constant, into the binary bytecode format. Code blocks are
// written in Code.Flatten order (parent before child) so a reader can
// reconstruct children before the parent that references them by processing
// the stream in reverse.
func WriteFile(w io.Writer, code *Code) error {
	nodes := code.Flatten()
	index := make(map[*Code]int32, len(nodes))
	for i, n := range nodes {
		index[n] = int32(i)
	}

	var buf bytes.Buffer
	buf.WriteString(fileMagic)
	writeUint32(&buf, fileVersion)
	writeUint32(&buf, uint32(len(nodes)))
	for _, n := range nodes {
		if err := writeCodeNode(&buf, n, index); err != nil {
			return fmt.Errorf("bytecode: write %q: %w", n.Name(), err)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadFile deserializes a binary bytecode stream written by WriteFile and
// returns its root Code block.
func ReadFile(r io.Reader) (*Code, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewReader(data)

	magic := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(buf, magic); err != nil {
		return nil, fmt.Errorf("bytecode: read magic: %w", err)
	}
	if string(magic) != fileMagic {
		return nil, fmt.Errorf("bytecode: not a hatch bytecode file")
	}
	version, err := readUint32(buf)
	if err != nil {
		return nil, err
	}
	if version != fileVersion {
		return nil, fmt.Errorf("bytecode: unsupported file version %d", version)
	}
	count, err := readUint32(buf)
	if err != nil {
		return nil, err
	}

	raw := make([]*rawCode, count)
	for i := range raw {
		r, err := readCodeNode(buf)
		if err != nil {
			return nil, fmt.Errorf("bytecode: read node %d: %w", i, err)
		}
		raw[i] = r
	}

	// Children always have a higher flat index than their parent
	// (Code.Flatten is pre-order), so building from the end means every
	// child a node references is already a *Code by the time we reach it.
	built := make([]*Code, count)
	for i := int(count) - 1; i >= 0; i-- {
		bc, err := raw[i].build(built)
		if err != nil {
			return nil, err
		}
		built[i] = bc
	}
	return built[0], nil
}

func writeCodeNode(buf *bytes.Buffer, c *Code, index map[*Code]int32) error {
	writeString(buf, c.name)
	writeBool(buf, c.isNamed)
	writeString(buf, c.source)
	writeString(buf, c.filename)
	writeUint32(buf, uint32(c.maxCallArgs))
	writeUint32(buf, uint32(c.localCount))
	writeUint32(buf, uint32(c.globalCount))
	writeUint32(buf, uint32(c.moduleLocalCount))
	writeStrings(buf, c.names)
	writeStrings(buf, c.globalNames)
	writeStrings(buf, c.localNames)

	writeUint32(buf, uint32(len(c.instructions)))
	for _, instr := range c.instructions {
		writeUint16(buf, uint16(instr))
	}

	writeUint32(buf, uint32(len(c.locations)))
	for _, loc := range c.locations {
		writeUint32(buf, uint32(loc.Line))
		writeUint32(buf, uint32(loc.Column))
	}

	writeUint32(buf, uint32(len(c.constants)))
	for _, cst := range c.constants {
		if err := writeConstant(buf, cst, index); err != nil {
			return err
		}
	}

	childIndices := make([]int32, len(c.children))
	for i, ch := range c.children {
		childIndices[i] = index[ch]
	}
	writeUint32(buf, uint32(len(childIndices)))
	for _, ci := range childIndices {
		writeUint32(buf, uint32(ci))
	}
	return nil
}

func writeConstant(buf *bytes.Buffer, v any, index map[*Code]int32) error {
	switch c := v.(type) {
	case nil:
		buf.WriteByte(constTagNull)
	case int64:
		buf.WriteByte(constTagInt)
		writeUint64(buf, uint64(c))
	case float32:
		buf.WriteByte(constTagFloat)
		writeUint32(buf, math.Float32bits(c))
	case string:
		buf.WriteByte(constTagString)
		writeString(buf, c)
	case bool:
		buf.WriteByte(constTagBool)
		writeBool(buf, c)
	case *Function:
		buf.WriteByte(constTagFunction)
		writeString(buf, c.name)
		writeStrings(buf, c.parameters)
		writeUint32(buf, uint32(len(c.defaults)))
		for _, d := range c.defaults {
			if err := writeConstant(buf, d, index); err != nil {
				return err
			}
		}
		writeBool(buf, c.isMethod)
		writeBool(buf, c.isEvent)
		codeIndex, ok := index[c.code]
		if !ok {
			return fmt.Errorf("function %q references a Code block outside the tree", c.name)
		}
		writeUint32(buf, uint32(codeIndex))
	default:
		return fmt.Errorf("unsupported constant type %T", v)
	}
	return nil
}

// rawCode holds one Code block's fields as read off the wire, before its
// child/function Code pointers have been resolved into real *Code values.
type rawCode struct {
	name             string
	isNamed          bool
	source           string
	filename         string
	maxCallArgs      int
	localCount       int
	globalCount      int
	moduleLocalCount int
	names            []string
	globalNames      []string
	localNames       []string
	instructions     []op.Code
	locations        []SourceLocation
	constants        []rawConstant
	childIndices     []int32
}

type rawConstant struct {
	tag      uint8
	i        int64
	f        float32
	s        string
	b        bool
	fnName   string
	fnParams []string
	fnDflts  []rawConstant
	isMethod bool
	isEvent  bool
	codeIdx  int32
}

func (r *rawCode) build(built []*Code) (*Code, error) {
	children := make([]*Code, len(r.childIndices))
	for i, ci := range r.childIndices {
		if int(ci) >= len(built) || built[ci] == nil {
			return nil, fmt.Errorf("code %q: child index %d not yet built", r.name, ci)
		}
		children[i] = built[ci]
	}
	constants := make([]any, len(r.constants))
	for i, rc := range r.constants {
		v, err := rc.resolve(built)
		if err != nil {
			return nil, err
		}
		constants[i] = v
	}
	return NewCode(CodeParams{
		Name:             r.name,
		IsNamed:          r.isNamed,
		Children:         children,
		Instructions:     r.instructions,
		Constants:        constants,
		Names:            r.names,
		Source:           r.source,
		Filename:         r.filename,
		Locations:        r.locations,
		MaxCallArgs:      r.maxCallArgs,
		LocalCount:       r.localCount,
		GlobalCount:      r.globalCount,
		ModuleLocalCount: r.moduleLocalCount,
		GlobalNames:      r.globalNames,
		LocalNames:       r.localNames,
	}), nil
}

func (rc rawConstant) resolve(built []*Code) (any, error) {
	switch rc.tag {
	case constTagNull:
		return nil, nil
	case constTagInt:
		return rc.i, nil
	case constTagFloat:
		return rc.f, nil
	case constTagString:
		return rc.s, nil
	case constTagBool:
		return rc.b, nil
	case constTagFunction:
		if int(rc.codeIdx) >= len(built) || built[rc.codeIdx] == nil {
			return nil, fmt.Errorf("function %q: code index %d not yet built", rc.fnName, rc.codeIdx)
		}
		defaults := make([]any, len(rc.fnDflts))
		for i, d := range rc.fnDflts {
			v, err := d.resolve(built)
			if err != nil {
				return nil, err
			}
			defaults[i] = v
		}
		return NewFunction(FunctionParams{
			Name:       rc.fnName,
			Parameters: rc.fnParams,
			Defaults:   defaults,
			Code:       built[rc.codeIdx],
			IsMethod:   rc.isMethod,
			IsEvent:    rc.isEvent,
		}), nil
	default:
		return nil, fmt.Errorf("unknown constant tag %d", rc.tag)
	}
}

func readCodeNode(buf *bytes.Reader) (*rawCode, error) {
	r := &rawCode{}
	var err error
	if r.name, err = readString(buf); err != nil {
		return nil, err
	}
	if r.isNamed, err = readBool(buf); err != nil {
		return nil, err
	}
	if r.source, err = readString(buf); err != nil {
		return nil, err
	}
	if r.filename, err = readString(buf); err != nil {
		return nil, err
	}
	if r.maxCallArgs, err = readInt(buf); err != nil {
		return nil, err
	}
	if r.localCount, err = readInt(buf); err != nil {
		return nil, err
	}
	if r.globalCount, err = readInt(buf); err != nil {
		return nil, err
	}
	if r.moduleLocalCount, err = readInt(buf); err != nil {
		return nil, err
	}
	if r.names, err = readStrings(buf); err != nil {
		return nil, err
	}
	if r.globalNames, err = readStrings(buf); err != nil {
		return nil, err
	}
	if r.localNames, err = readStrings(buf); err != nil {
		return nil, err
	}

	instrCount, err := readUint32(buf)
	if err != nil {
		return nil, err
	}
	r.instructions = make([]op.Code, instrCount)
	for i := range r.instructions {
		v, err := readUint16(buf)
		if err != nil {
			return nil, err
		}
		r.instructions[i] = op.Code(v)
	}

	locCount, err := readUint32(buf)
	if err != nil {
		return nil, err
	}
	r.locations = make([]SourceLocation, locCount)
	for i := range r.locations {
		line, err := readInt(buf)
		if err != nil {
			return nil, err
		}
		col, err := readInt(buf)
		if err != nil {
			return nil, err
		}
		r.locations[i] = SourceLocation{Line: line, Column: col}
	}

	constCount, err := readUint32(buf)
	if err != nil {
		return nil, err
	}
	r.constants = make([]rawConstant, constCount)
	for i := range r.constants {
		c, err := readConstant(buf)
		if err != nil {
			return nil, err
		}
		r.constants[i] = c
	}

	childCount, err := readUint32(buf)
	if err != nil {
		return nil, err
	}
	r.childIndices = make([]int32, childCount)
	for i := range r.childIndices {
		v, err := readUint32(buf)
		if err != nil {
			return nil, err
		}
		r.childIndices[i] = int32(v)
	}
	return r, nil
}

func readConstant(buf *bytes.Reader) (rawConstant, error) {
	tagByte, err := buf.ReadByte()
	if err != nil {
		return rawConstant{}, err
	}
	rc := rawConstant{tag: tagByte}
	switch tagByte {
	case constTagNull:
	case constTagInt:
		v, err := readUint64(buf)
		if err != nil {
			return rc, err
		}
		rc.i = int64(v)
	case constTagFloat:
		v, err := readUint32(buf)
		if err != nil {
			return rc, err
		}
		rc.f = math.Float32frombits(v)
	case constTagString:
		rc.s, err = readString(buf)
		if err != nil {
			return rc, err
		}
	case constTagBool:
		rc.b, err = readBool(buf)
		if err != nil {
			return rc, err
		}
	case constTagFunction:
		if rc.fnName, err = readString(buf); err != nil {
			return rc, err
		}
		if rc.fnParams, err = readStrings(buf); err != nil {
			return rc, err
		}
		dfltCount, err := readUint32(buf)
		if err != nil {
			return rc, err
		}
		rc.fnDflts = make([]rawConstant, dfltCount)
		for i := range rc.fnDflts {
			d, err := readConstant(buf)
			if err != nil {
				return rc, err
			}
			rc.fnDflts[i] = d
		}
		if rc.isMethod, err = readBool(buf); err != nil {
			return rc, err
		}
		if rc.isEvent, err = readBool(buf); err != nil {
			return rc, err
		}
		idx, err := readUint32(buf)
		if err != nil {
			return rc, err
		}
		rc.codeIdx = int32(idx)
	default:
		return rc, fmt.Errorf("unknown constant tag %d", tagByte)
	}
	return rc, nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func writeStrings(buf *bytes.Buffer, ss []string) {
	writeUint32(buf, uint32(len(ss)))
	for _, s := range ss {
		writeString(buf, s)
	}
}

func readUint16(r *bytes.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func readInt(r *bytes.Reader) (int, error) {
	v, err := readUint32(r)
	return int(v), err
}

func readBool(r *bytes.Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func readStrings(r *bytes.Reader) ([]string, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
