package cpu

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueZero(t *testing.T) {
	assert := assert.New(t)

	var v Value
	assert.Equal(VALUE_INTEGER, v.Kind)
	assert.Equal(Integer(0), v)
	assert.Equal("0", v.String())
}

func TestValueKindNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("integer", VALUE_INTEGER.String())
	assert.Equal("text", VALUE_TEXT.String())
}

func TestValueString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value Value
		text  string
	}){
		{Integer(42), "42"},
		{Integer(-9), "-9"},
		{Text("hi"), `"hi"`},
		{Text(""), `""`},
		{Text("a\nb"), `"a\nb"`},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.value.String())
	}
}

func TestValueAdd(t *testing.T) {
	assert := assert.New(t)

	v, err := Integer(2).Add(Integer(3))
	assert.NoError(err)
	assert.Equal(Integer(5), v)

	v, err = Text("foo").Add(Text("bar"))
	assert.NoError(err)
	assert.Equal(Text("foobar"), v)

	// Integer arithmetic wraps.
	v, err = Integer(math.MaxInt64).Add(Integer(1))
	assert.NoError(err)
	assert.Equal(Integer(math.MinInt64), v)

	_, err = Integer(1).Add(Text("x"))
	assert.ErrorIs(err, ErrTypeMismatch{})
	_, err = Text("x").Add(Integer(1))
	assert.ErrorIs(err, ErrTypeMismatch{})
}

func TestValueSub(t *testing.T) {
	assert := assert.New(t)

	v, err := Integer(2).Sub(Integer(5))
	assert.NoError(err)
	assert.Equal(Integer(-3), v)

	_, err = Text("ab").Sub(Text("a"))
	assert.ErrorIs(err, ErrTypeMismatch{})
	_, err = Integer(1).Sub(Text("a"))
	assert.ErrorIs(err, ErrTypeMismatch{})
}

func TestValueMul(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		left  Value
		right Value
		want  Value
	}){
		{Integer(6), Integer(7), Integer(42)},
		{Integer(-6), Integer(7), Integer(-42)},
		{Text("ab"), Integer(3), Text("ababab")},
		{Integer(3), Text("ab"), Text("ababab")},
		{Text("ab"), Integer(0), Text("")},
		{Text("ab"), Integer(-2), Text("")},
		{Text(""), Integer(5), Text("")},
	}

	for _, entry := range table {
		v, err := entry.left.Mul(entry.right)
		assert.NoError(err)
		assert.Equal(entry.want, v)
	}

	_, err := Text("a").Mul(Text("b"))
	assert.ErrorIs(err, ErrTypeMismatch{})
}

func TestValueDiv(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		left  Value
		right Value
		want  Value
	}){
		{Integer(10), Integer(2), Integer(5)},
		{Integer(7), Integer(2), Integer(3)},
		{Integer(-7), Integer(2), Integer(-3)},
		{Integer(7), Integer(-2), Integer(-3)},
		{Text("abc"), Text("a"), Integer(2)},
		{Text("a"), Text("abc"), Integer(-2)},
		{Text("héllo"), Text(""), Integer(5)},
	}

	for _, entry := range table {
		v, err := entry.left.Div(entry.right)
		assert.NoError(err)
		assert.Equal(entry.want, v, entry.left.String())
	}

	_, err := Integer(1).Div(Integer(0))
	assert.ErrorIs(err, ErrDivideByZero)

	_, err = Text("a").Div(Integer(1))
	assert.ErrorIs(err, ErrTypeMismatch{})
	_, err = Integer(1).Div(Text("a"))
	assert.ErrorIs(err, ErrTypeMismatch{})
}

func TestValueBitwise(t *testing.T) {
	assert := assert.New(t)

	v, err := Integer(0b1100).And(Integer(0b1010))
	assert.NoError(err)
	assert.Equal(Integer(0b1000), v)

	v, err = Integer(0b1100).Or(Integer(0b1010))
	assert.NoError(err)
	assert.Equal(Integer(0b1110), v)

	v, err = Integer(0b1100).Xor(Integer(0b1010))
	assert.NoError(err)
	assert.Equal(Integer(0b0110), v)

	v, err = Integer(0).Not()
	assert.NoError(err)
	assert.Equal(Integer(-1), v)

	_, err = Text("a").And(Integer(1))
	assert.ErrorIs(err, ErrTypeMismatch{})
	_, err = Integer(1).Or(Text("a"))
	assert.ErrorIs(err, ErrTypeMismatch{})
	_, err = Text("a").Xor(Text("b"))
	assert.ErrorIs(err, ErrTypeMismatch{})
	_, err = Text("a").Not()
	assert.ErrorIs(err, ErrTypeMismatch{})
}

func TestValueCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		left  Value
		op    CompareOp
		right Value
		want  bool
	}){
		{Integer(1), CMP_EQ, Integer(1), true},
		{Integer(1), CMP_EQ, Integer(2), false},
		{Integer(1), CMP_NE, Integer(2), true},
		{Integer(1), CMP_LT, Integer(2), true},
		{Integer(2), CMP_LE, Integer(2), true},
		{Integer(3), CMP_GT, Integer(2), true},
		{Integer(2), CMP_GE, Integer(3), false},
		{Integer(-1), CMP_LT, Integer(0), true},
		{Text("abc"), CMP_LT, Text("abd"), true},
		{Text("b"), CMP_GT, Text("ab"), true},
		{Text("x"), CMP_EQ, Text("x"), true},
		{Text(""), CMP_LT, Text("a"), true},
		{Text("aa"), CMP_NE, Text("ab"), true},
	}

	for _, entry := range table {
		ok, err := entry.left.Compare(entry.right, entry.op)
		assert.NoError(err)
		assert.Equal(entry.want, ok, "%v %v %v", entry.left, entry.op, entry.right)
	}

	// Kinds never compare across, equality included.
	for _, op := range []CompareOp{CMP_EQ, CMP_NE, CMP_LT, CMP_LE, CMP_GT, CMP_GE} {
		_, err := Integer(1).Compare(Text("1"), op)
		assert.ErrorIs(err, ErrTypeMismatch{}, op.String())
	}
}

func TestValueTextOverflow(t *testing.T) {
	assert := assert.New(t)

	big := Text(strings.Repeat("x", TEXT_LIMIT))

	v, err := big.Add(Text(""))
	assert.NoError(err)
	assert.Equal(big, v)

	_, err = big.Add(Text("y"))
	assert.ErrorIs(err, ErrTextOverflow)

	_, err = big.Mul(Integer(2))
	assert.ErrorIs(err, ErrTextOverflow)

	_, err = Text("xy").Mul(Integer(TEXT_LIMIT))
	assert.ErrorIs(err, ErrTextOverflow)

	// A huge count must not overflow the size check itself.
	_, err = Text("xy").Mul(Integer(math.MaxInt64))
	assert.ErrorIs(err, ErrTextOverflow)
}
