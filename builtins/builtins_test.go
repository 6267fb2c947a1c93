package builtins

import (
	"testing"

	"github.com/hatchlang/hatch/value"
)

func str(s string) value.Value { return value.FromObj(value.NewString(s)) }

func TestLenCountsElementsBytesAndKeys(t *testing.T) {
	arr := value.FromObj(value.NewArray([]value.Value{value.Integer(1), value.Integer(2)}))
	if got := lenFn([]value.Value{arr}); got.Int() != 2 {
		t.Fatalf("len(array) = %v, want 2", got)
	}
	if got := lenFn([]value.Value{str("hello")}); got.Int() != 5 {
		t.Fatalf("len(string) = %v, want 5", got)
	}
}

func TestLenRejectsWrongArgCount(t *testing.T) {
	got := lenFn(nil)
	if !got.IsError() {
		t.Fatal("len() with no args should error")
	}
}

func TestSprintfFormatsArgs(t *testing.T) {
	got := sprintfFn([]value.Value{str("%s is %s"), str("x"), str("3")})
	s, ok := got.Obj().(*value.String)
	if !ok || s.Value != "x is 3" {
		t.Fatalf("sprintf(\"%%s is %%s\", \"x\", \"3\") = %v, want \"x is 3\"", got)
	}
}

func TestErrorFnProducesErrorKind(t *testing.T) {
	got := errorFn([]value.Value{str("boom: %s"), str("bad")})
	if !got.IsError() {
		t.Fatal("error() should return a KindError value")
	}
}

func TestListFromStringSplitsRunes(t *testing.T) {
	got := listFn([]value.Value{str("ab")})
	arr, ok := got.Obj().(*value.Array)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("list(\"ab\") = %v, want a 2-element array", got)
	}
}

func TestTypeFnReportsTypeof(t *testing.T) {
	got := typeFn([]value.Value{value.Integer(1)})
	s, ok := got.Obj().(*value.String)
	if !ok || s.Value == "" {
		t.Fatalf("type(1) = %v, want a non-empty type name string", got)
	}
}

func TestAssertFnPassesOnTruthy(t *testing.T) {
	got := assertFn([]value.Value{value.Integer(1)})
	if got.IsError() {
		t.Fatal("assert(1) should not error")
	}
}

func TestAssertFnFailsOnFalsy(t *testing.T) {
	got := assertFn([]value.Value{value.Integer(0)})
	if !got.IsError() {
		t.Fatal("assert(0) should error")
	}
}

func TestAssertFnUsesCustomMessage(t *testing.T) {
	got := assertFn([]value.Value{value.Integer(0), str("custom")})
	if !got.IsError() {
		t.Fatal("assert(0, \"custom\") should error")
	}
}

func TestIntFnParsesStringLiteral(t *testing.T) {
	got := intFn([]value.Value{str("42")})
	if got.IsError() || got.Int() != 42 {
		t.Fatalf("int(\"42\") = %v, want 42", got)
	}
}

func TestIntFnRejectsBadLiteral(t *testing.T) {
	got := intFn([]value.Value{str("nope")})
	if !got.IsError() {
		t.Fatal("int(\"nope\") should error")
	}
}

func TestFloatFnConvertsInteger(t *testing.T) {
	got := floatFn([]value.Value{value.Integer(3)})
	if got.IsError() || got.Dec() != 3 {
		t.Fatalf("float(3) = %v, want 3.0", got)
	}
}

func TestCoalesceReturnsFirstNonNull(t *testing.T) {
	got := coalesceFn([]value.Value{value.Null, value.Null, value.Integer(5)})
	if got.Int() != 5 {
		t.Fatalf("coalesce(null, null, 5) = %v, want 5", got)
	}
}

func TestCoalesceAllNullReturnsNull(t *testing.T) {
	got := coalesceFn([]value.Value{value.Null, value.Null})
	if !got.IsNull() {
		t.Fatal("coalesce(null, null) should be null")
	}
}

func TestKeysReturnsMapKeysInOrder(t *testing.T) {
	m := &value.Map{Values: map[string]value.Value{}, Keys: nil}
	m.Set("b", value.Integer(2))
	m.Set("a", value.Integer(1))
	got := keysFn([]value.Value{value.FromObj(m)})
	arr := got.Obj().(*value.Array)
	if len(arr.Elements) != 2 {
		t.Fatalf("keys() returned %d elements, want 2", len(arr.Elements))
	}
}

func TestReversedReversesArray(t *testing.T) {
	arr := value.FromObj(value.NewArray([]value.Value{value.Integer(1), value.Integer(2), value.Integer(3)}))
	got := reversedFn([]value.Value{arr})
	out := got.Obj().(*value.Array)
	if out.Elements[0].Int() != 3 || out.Elements[2].Int() != 1 {
		t.Fatalf("reversed([1,2,3]) = %v, want [3,2,1]", out.Elements)
	}
}

func TestReversedReversesString(t *testing.T) {
	got := reversedFn([]value.Value{str("abc")})
	s := got.Obj().(*value.String)
	if s.Value != "cba" {
		t.Fatalf("reversed(\"abc\") = %q, want \"cba\"", s.Value)
	}
}

func TestSortedOrdersIntegersAscending(t *testing.T) {
	arr := value.FromObj(value.NewArray([]value.Value{value.Integer(3), value.Integer(1), value.Integer(2)}))
	got := sortedFn([]value.Value{arr})
	out := got.Obj().(*value.Array)
	if out.Elements[0].Int() != 1 || out.Elements[1].Int() != 2 || out.Elements[2].Int() != 3 {
		t.Fatalf("sorted([3,1,2]) = %v, want [1,2,3]", out.Elements)
	}
}

func TestSortedRejectsIncomparableElements(t *testing.T) {
	arr := value.FromObj(value.NewArray([]value.Value{value.Integer(1), str("x")}))
	got := sortedFn([]value.Value{arr})
	if !got.IsError() {
		t.Fatal("sorted([1, \"x\"]) should error on incomparable elements")
	}
}

func TestChunkSplitsIntoFixedSizeGroups(t *testing.T) {
	arr := value.FromObj(value.NewArray([]value.Value{
		value.Integer(1), value.Integer(2), value.Integer(3), value.Integer(4), value.Integer(5),
	}))
	got := chunkFn([]value.Value{arr, value.Integer(2)})
	out := got.Obj().(*value.Array)
	if len(out.Elements) != 3 {
		t.Fatalf("chunk of 5 by 2 produced %d chunks, want 3", len(out.Elements))
	}
	last := out.Elements[2].Obj().(*value.Array)
	if len(last.Elements) != 1 {
		t.Fatalf("last chunk has %d elements, want 1", len(last.Elements))
	}
}

func TestChunkRejectsNonPositiveSize(t *testing.T) {
	arr := value.FromObj(value.NewArray(nil))
	got := chunkFn([]value.Value{arr, value.Integer(0)})
	if !got.IsError() {
		t.Fatal("chunk(list, 0) should error")
	}
}
