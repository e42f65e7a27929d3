package cpu

import (
	"errors"
	"strings"

	"github.com/cogwork/cogvm/translate"
)

var f = translate.From

var (
	ErrDivideByZero      = errors.New(f("divide by zero"))
	ErrStackEmpty        = errors.New(f("stack empty"))
	ErrCallStackEmpty    = errors.New(f("call stack empty"))
	ErrLimit             = errors.New(f("instruction limit exceeded"))
	ErrTextOverflow      = errors.New(f("text too long"))
	ErrOpcodeMixedCase   = errors.New(f("opcode mixes upper and lower case"))
	ErrOperandMissing    = errors.New(f("operand missing"))
	ErrOperandExtra      = errors.New(f("excessive operands"))
	ErrTargetInvalid     = errors.New(f("target invalid"))
	ErrLabelDuplicate    = errors.New(f("label duplicated"))
	ErrConstantDuplicate = errors.New(f("constant duplicated"))
	ErrDefineSyntax      = errors.New(f("DEFINE syntax"))
	ErrCompareSyntax     = errors.New(f("comparison syntax"))
	ErrRegisterInvalid   = errors.New(f("register invalid"))
)

// ErrOpcodeUnknown reports a mnemonic the machine does not have.
type ErrOpcodeUnknown string

func (e ErrOpcodeUnknown) Error() string {
	return f("'%v' is not an opcode", string(e))
}

func (e ErrOpcodeUnknown) Is(err error) bool {
	_, ok := err.(ErrOpcodeUnknown)
	return ok
}

// ErrLabelMissing reports a jump or call to a label never declared.
type ErrLabelMissing string

func (e ErrLabelMissing) Error() string {
	return f("label %v missing", string(e))
}

func (e ErrLabelMissing) Is(err error) bool {
	_, ok := err.(ErrLabelMissing)
	return ok
}

// ErrConstantMissing reports a .name with no DEFINE anywhere in the
// source.
type ErrConstantMissing string

func (e ErrConstantMissing) Error() string {
	return f("constant .%v missing", string(e))
}

func (e ErrConstantMissing) Is(err error) bool {
	_, ok := err.(ErrConstantMissing)
	return ok
}

// ErrParseNumber reports a malformed integer literal.
type ErrParseNumber string

func (e ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(e))
}

func (e ErrParseNumber) Is(err error) bool {
	_, ok := err.(ErrParseNumber)
	return ok
}

// ErrParseString reports an unterminated text literal.
type ErrParseString string

func (e ErrParseString) Error() string {
	return f("'%v' is not a complete string", string(e))
}

func (e ErrParseString) Is(err error) bool {
	_, ok := err.(ErrParseString)
	return ok
}

// ErrParseExpression reports a $() expression that would not evaluate.
type ErrParseExpression string

func (e ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(e))
}

func (e ErrParseExpression) Is(err error) bool {
	_, ok := err.(ErrParseExpression)
	return ok
}

// ErrOperandInvalid reports a token that fits no addressing mode.
type ErrOperandInvalid string

func (e ErrOperandInvalid) Error() string {
	return f("'%v' is not a value or register", string(e))
}

func (e ErrOperandInvalid) Is(err error) bool {
	_, ok := err.(ErrOperandInvalid)
	return ok
}

// ErrTypeMismatch reports an operation applied to value kinds it does
// not accept. It carries the offending values.
type ErrTypeMismatch []Value

func (e ErrTypeMismatch) Error() string {
	text := []string{}
	for _, v := range e {
		text = append(text, v.String())
	}

	return f("type mismatch on %v", strings.Join(text, ", "))
}

func (e ErrTypeMismatch) Is(err error) bool {
	_, ok := err.(ErrTypeMismatch)
	return ok
}

// ErrAddressRange reports a memory access outside the bank.
type ErrAddressRange int64

func (e ErrAddressRange) Error() string {
	return f("address %v out of range", int64(e))
}

func (e ErrAddressRange) Is(err error) bool {
	_, ok := err.(ErrAddressRange)
	return ok
}

// ErrInstruction carries the instruction that failed, joined ahead of
// the cause.
type ErrInstruction Instruction

func (e ErrInstruction) Error() string {
	return f("instruction '%v'", Instruction(e))
}

func (e ErrInstruction) Is(err error) bool {
	_, ok := err.(ErrInstruction)
	return ok
}

// ErrSyntax wraps any parse error with the source line it came from.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (e *ErrSyntax) Error() string {
	return f("line %d '%v' %v", e.LineNo, e.Line, e.Err)
}

func (e *ErrSyntax) Unwrap() error {
	return e.Err
}
