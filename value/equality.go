package value

// ValuesEqual is strict on type: an Integer never equals a Decimal, and two
// object values are equal only if their dynamic types match and their
// contents (or, for reference types without a natural content equality,
// their identity) match.
func ValuesEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindInteger, KindLinkedInteger:
		return a.Int() == b.Int()
	case KindDecimal, KindLinkedDecimal:
		return a.Dec() == b.Dec()
	case KindObject:
		return objEqual(a.obj, b.obj)
	case KindError:
		return a.obj.(*ErrorObject).Message == b.obj.(*ErrorObject).Message
	default:
		return false
	}
}

// ValuesSortaEqual promotes Integer<->Decimal for numeric comparison and
// compares Strings byte-wise regardless of identity; used by `==` and by
// switch-case matching (§4.1).
func ValuesSortaEqual(a, b Value) bool {
	an, aIsNum := numericOf(a)
	bn, bIsNum := numericOf(b)
	if aIsNum && bIsNum {
		return an == bn
	}
	as, aIsStr := a.obj.(*String)
	bs, bIsStr := b.obj.(*String)
	if a.kind == KindObject && b.kind == KindObject && aIsStr && bIsStr {
		return as.Value == bs.Value
	}
	return ValuesEqual(a, b)
}

// Compare orders two numeric values for `<`/`<=`/`>`/`>=`; ok is false when
// either operand isn't numeric, in which case the caller raises a
// TypeError rather than trusting the returned ordering.
func Compare(a, b Value) (int, bool) {
	af, aok := numericOf(a)
	bf, bok := numericOf(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

func numericOf(v Value) (float64, bool) {
	switch v.kind {
	case KindInteger, KindLinkedInteger:
		return float64(v.Int()), true
	case KindDecimal, KindLinkedDecimal:
		return float64(v.Dec()), true
	default:
		return 0, false
	}
}

func objEqual(a, b Obj) bool {
	if a == b {
		return true
	}
	as, aok := a.(*String)
	bs, bok := b.(*String)
	if aok && bok {
		return as.Value == bs.Value
	}
	aa, aok := a.(*Array)
	ba, bok := b.(*Array)
	if aok && bok {
		if len(aa.Elements) != len(ba.Elements) {
			return false
		}
		for i := range aa.Elements {
			if !ValuesEqual(aa.Elements[i], ba.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}
