package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArithmeticIntegerStaysInteger(t *testing.T) {
	sum := Add(Integer(2), Integer(3))
	require.Equal(t, KindInteger, sum.Kind())
	require.Equal(t, int32(5), sum.Int())
}

func TestArithmeticDecimalPromotion(t *testing.T) {
	sum := Add(Integer(2), Decimal(1.5))
	require.Equal(t, KindDecimal, sum.Kind())
	require.InDelta(t, 3.5, float64(sum.Dec()), 0.0001)
}

func TestArithmeticStringConcat(t *testing.T) {
	result := Add(FromObj(NewString("x=")), Integer(7))
	require.Equal(t, "x=7", result.Obj().(*String).Value)
}

func TestDivisionByZeroIsRecoverable(t *testing.T) {
	result := Divide(Integer(1), Integer(0))
	require.True(t, result.IsError())
}

func TestValuesEqualStrict(t *testing.T) {
	require.False(t, ValuesEqual(Integer(1), Decimal(1)))
	require.True(t, ValuesEqual(Integer(1), Integer(1)))
}

func TestValuesSortaEqualPromotes(t *testing.T) {
	require.True(t, ValuesSortaEqual(Integer(1), Decimal(1)))
	require.True(t, ValuesSortaEqual(FromObj(NewString("a")), FromObj(NewString("a"))))
}

func TestInstanceFieldShadowsMethod(t *testing.T) {
	hash := HashIdent("speed")
	class := NewClass("Player", HashIdent("Player"))
	class.Methods[hash] = &Closure{}
	inst := NewInstance(class)
	inst.Fields[hash] = Integer(99)

	got, ok := inst.GetField(hash)
	require.True(t, ok)
	require.Equal(t, KindInteger, got.Kind())
	require.Equal(t, int32(99), got.Int())
}

func TestClassAndInstanceGetDistinctDebugIdentity(t *testing.T) {
	classA := NewClass("Entity", HashIdent("Entity"))
	classB := NewClass("Entity", HashIdent("Entity"))
	require.NotEqual(t, classA.ID, classB.ID)
	require.NotEqual(t, classA.DebugName, classB.DebugName)

	instA := NewInstance(classA)
	instB := NewInstance(classA)
	require.NotEqual(t, instA.ID, instB.ID)
	require.Contains(t, instA.Inspect(), instA.DebugName)
}

func TestClassExtendMergesMethods(t *testing.T) {
	base := NewClass("Enemy", HashIdent("Enemy"))
	base.Methods[HashIdent("attack")] = &Closure{}

	extension := NewClass("Enemy", HashIdent("Enemy"))
	extension.Methods[HashIdent("flee")] = &Closure{}

	base.Extend(extension)
	require.Len(t, base.Methods, 2)
}

func TestGCCollectsUnreachable(t *testing.T) {
	gc := NewGC()
	kept := gc.Register(NewString("kept"))
	gc.Register(NewString("discarded"))

	reclaimed := gc.Collect([]Value{FromObj(kept)})
	require.Equal(t, 1, reclaimed)
	require.Equal(t, 1, gc.Count())
}

func TestGCPinSurvivesCollection(t *testing.T) {
	gc := NewGC()
	pinned := gc.Register(NewString("native-class"))
	gc.Pin(pinned)

	reclaimed := gc.Collect(nil)
	require.Equal(t, 0, reclaimed)
}
