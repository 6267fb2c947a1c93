package value

// Add implements `+`, including string concatenation: any String operand
// makes the result a String, stringifying the other side first (§4.1).
func Add(a, b Value) Value {
	if as, ok := stringOf(a); ok {
		return FromObj(NewString(as + b.String()))
	}
	if bs, ok := stringOf(b); ok {
		return FromObj(NewString(a.String() + bs))
	}
	return numericBinOp(a, b, func(x, y int32) int32 { return x + y }, func(x, y float32) float32 { return x + y })
}

func Subtract(a, b Value) Value {
	return numericBinOp(a, b, func(x, y int32) int32 { return x - y }, func(x, y float32) float32 { return x - y })
}

func Multiply(a, b Value) Value {
	return numericBinOp(a, b, func(x, y int32) int32 { return x * y }, func(x, y float32) float32 { return x * y })
}

// Divide reports ArithmeticError (a recoverable Value, see §7) on division
// by zero rather than panicking.
func Divide(a, b Value) Value {
	if isZero(b) {
		return Err("ArithmeticError: division by zero")
	}
	return numericBinOp(a, b, func(x, y int32) int32 { return x / y }, func(x, y float32) float32 { return x / y })
}

func Modulo(a, b Value) Value {
	if isZero(b) {
		return Err("ArithmeticError: modulo by zero")
	}
	return numericBinOp(a, b, func(x, y int32) int32 { return x % y }, nil)
}

func Negate(a Value) Value {
	switch a.kind {
	case KindInteger, KindLinkedInteger:
		return Integer(-a.Int())
	case KindDecimal, KindLinkedDecimal:
		return Decimal(-a.Dec())
	default:
		return Err("TypeError: cannot negate %s", a.Typeof())
	}
}

// Bitwise ops truncate decimal operands to 32-bit integers first (§4.1).
func BitAnd(a, b Value) Value { return Integer(toInt32(a) & toInt32(b)) }
func BitOr(a, b Value) Value  { return Integer(toInt32(a) | toInt32(b)) }
func BitXor(a, b Value) Value { return Integer(toInt32(a) ^ toInt32(b)) }
func BitNot(a Value) Value    { return Integer(^toInt32(a)) }
func Shl(a, b Value) Value    { return Integer(toInt32(a) << uint32(toInt32(b))) }
func Shr(a, b Value) Value    { return Integer(toInt32(a) >> uint32(toInt32(b))) }

func toInt32(v Value) int32 {
	switch v.kind {
	case KindInteger, KindLinkedInteger:
		return v.Int()
	case KindDecimal, KindLinkedDecimal:
		return int32(v.Dec())
	default:
		return 0
	}
}

func isZero(v Value) bool {
	switch v.kind {
	case KindInteger, KindLinkedInteger:
		return v.Int() == 0
	case KindDecimal, KindLinkedDecimal:
		return v.Dec() == 0
	default:
		return false
	}
}

func stringOf(v Value) (string, bool) {
	if v.kind != KindObject {
		return "", false
	}
	if s, ok := v.obj.(*String); ok {
		return s.Value, true
	}
	return "", false
}

// numericBinOp implements integer-stays-integer, decimal-promotes-the-rest
// arithmetic. If decFn is nil (modulo has no meaningful float form here),
// a Decimal operand yields a TypeError.
func numericBinOp(a, b Value, intFn func(x, y int32) int32, decFn func(x, y float32) float32) Value {
	aIsDec := a.kind == KindDecimal || a.kind == KindLinkedDecimal
	bIsDec := b.kind == KindDecimal || b.kind == KindLinkedDecimal
	if aIsDec || bIsDec {
		if decFn == nil {
			return Err("TypeError: operator not supported for decimal operands")
		}
		return Decimal(decFn(toFloat32(a), toFloat32(b)))
	}
	if !isIntegerKind(a) || !isIntegerKind(b) {
		return Err("TypeError: unsupported operand types %s and %s", a.Typeof(), b.Typeof())
	}
	return Integer(intFn(a.Int(), b.Int()))
}

func isIntegerKind(v Value) bool {
	return v.kind == KindInteger || v.kind == KindLinkedInteger
}

func toFloat32(v Value) float32 {
	switch v.kind {
	case KindDecimal, KindLinkedDecimal:
		return v.Dec()
	case KindInteger, KindLinkedInteger:
		return float32(v.Int())
	default:
		return 0
	}
}
