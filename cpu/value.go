package cpu

import (
	"cmp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValueKind selects which variant a Value holds.
type ValueKind int

//go:generate go tool stringer -linecomment -type=ValueKind
const (
	VALUE_INTEGER = ValueKind(0) // integer
	VALUE_TEXT    = ValueKind(1) // text
)

const (
	TEXT_LIMIT = 1 << 16 // Maximum byte length of a text value.
)

// Value is a machine word: a 64-bit signed integer or a text string.
// The zero Value is the integer 0.
type Value struct {
	Kind ValueKind
	Int  int64
	Text string
}

// Integer returns an integer Value.
func Integer(v int64) Value {
	return Value{Kind: VALUE_INTEGER, Int: v}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{Kind: VALUE_TEXT, Text: s}
}

// String renders the value as it is written in source: decimal for
// integers, quoted for text.
func (v Value) String() string {
	if v.Kind == VALUE_TEXT {
		return strconv.Quote(v.Text)
	}

	return strconv.FormatInt(v.Int, 10)
}

// Add returns v + o. Integers add; text concatenates.
func (v Value) Add(o Value) (Value, error) {
	switch {
	case v.Kind == VALUE_INTEGER && o.Kind == VALUE_INTEGER:
		return Integer(v.Int + o.Int), nil
	case v.Kind == VALUE_TEXT && o.Kind == VALUE_TEXT:
		if len(v.Text)+len(o.Text) > TEXT_LIMIT {
			return Value{}, ErrTextOverflow
		}
		return Text(v.Text + o.Text), nil
	}

	return Value{}, ErrTypeMismatch{v, o}
}

// Sub returns v - o for integers.
func (v Value) Sub(o Value) (Value, error) {
	if v.Kind != VALUE_INTEGER || o.Kind != VALUE_INTEGER {
		return Value{}, ErrTypeMismatch{v, o}
	}

	return Integer(v.Int - o.Int), nil
}

// Mul returns v * o. Text times an integer repeats the text; a repeat
// count of zero or less yields the empty text.
func (v Value) Mul(o Value) (Value, error) {
	switch {
	case v.Kind == VALUE_INTEGER && o.Kind == VALUE_INTEGER:
		return Integer(v.Int * o.Int), nil
	case v.Kind == VALUE_TEXT && o.Kind == VALUE_INTEGER:
		return repeatText(v.Text, o.Int)
	case v.Kind == VALUE_INTEGER && o.Kind == VALUE_TEXT:
		return repeatText(o.Text, v.Int)
	}

	return Value{}, ErrTypeMismatch{v, o}
}

func repeatText(s string, count int64) (Value, error) {
	if count <= 0 || len(s) == 0 {
		return Text(""), nil
	}
	// The first clause keeps the product from overflowing.
	if count > TEXT_LIMIT || int64(len(s))*count > TEXT_LIMIT {
		return Value{}, ErrTextOverflow
	}

	return Text(strings.Repeat(s, int(count))), nil
}

// Div returns v / o, truncated toward zero. Dividing text by text
// yields the difference of the operands' lengths in runes.
func (v Value) Div(o Value) (Value, error) {
	switch {
	case v.Kind == VALUE_INTEGER && o.Kind == VALUE_INTEGER:
		if o.Int == 0 {
			return Value{}, ErrDivideByZero
		}
		return Integer(v.Int / o.Int), nil
	case v.Kind == VALUE_TEXT && o.Kind == VALUE_TEXT:
		return Integer(int64(utf8.RuneCountInString(v.Text) - utf8.RuneCountInString(o.Text))), nil
	}

	return Value{}, ErrTypeMismatch{v, o}
}

// And returns the bitwise AND of two integers.
func (v Value) And(o Value) (Value, error) {
	if v.Kind != VALUE_INTEGER || o.Kind != VALUE_INTEGER {
		return Value{}, ErrTypeMismatch{v, o}
	}

	return Integer(v.Int & o.Int), nil
}

// Or returns the bitwise OR of two integers.
func (v Value) Or(o Value) (Value, error) {
	if v.Kind != VALUE_INTEGER || o.Kind != VALUE_INTEGER {
		return Value{}, ErrTypeMismatch{v, o}
	}

	return Integer(v.Int | o.Int), nil
}

// Xor returns the bitwise XOR of two integers.
func (v Value) Xor(o Value) (Value, error) {
	if v.Kind != VALUE_INTEGER || o.Kind != VALUE_INTEGER {
		return Value{}, ErrTypeMismatch{v, o}
	}

	return Integer(v.Int ^ o.Int), nil
}

// Not returns the bitwise complement of an integer.
func (v Value) Not() (Value, error) {
	if v.Kind != VALUE_INTEGER {
		return Value{}, ErrTypeMismatch{v}
	}

	return Integer(^v.Int), nil
}

// Compare applies a comparison operator. Integers compare numerically,
// text compares byte-wise; kinds never compare across, not even for
// equality.
func (v Value) Compare(o Value, op CompareOp) (ok bool, err error) {
	var ord int
	switch {
	case v.Kind == VALUE_INTEGER && o.Kind == VALUE_INTEGER:
		ord = cmp.Compare(v.Int, o.Int)
	case v.Kind == VALUE_TEXT && o.Kind == VALUE_TEXT:
		ord = strings.Compare(v.Text, o.Text)
	default:
		err = ErrTypeMismatch{v, o}
		return
	}

	switch op {
	case CMP_EQ:
		ok = ord == 0
	case CMP_NE:
		ok = ord != 0
	case CMP_LT:
		ok = ord < 0
	case CMP_LE:
		ok = ord <= 0
	case CMP_GT:
		ok = ord > 0
	case CMP_GE:
		ok = ord >= 0
	}

	return
}
