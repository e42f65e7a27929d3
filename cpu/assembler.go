// Copyright 2025, The cogvm Authors

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// sysDefine holds the constants every program begins with.
var sysDefine = map[string]Value{
	"MEM_SIZE": Integer(MEM_SIZE),
}

// SysDefines returns a copy of the predeclared constants.
func SysDefines() map[string]Value {
	return maps.Clone(sysDefine)
}

// Assembler translates source text into a Program. The zero value is
// ready to use; Labels and Constants are filled in by Parse.
type Assembler struct {
	Verbose bool

	Labels    map[string]int
	Constants map[string]Value

	predefine map[string]Value
}

// Predefine adds a constant for the next Parse, ahead of any DEFINE in
// the source. A predefined name may shadow a system constant.
func (asm *Assembler) Predefine(name string, value Value) {
	if asm.predefine == nil {
		asm.predefine = map[string]Value{}
	}
	asm.predefine[name] = value
}

// token is one source word. Quoted tokens keep their escapes raw and
// drop the surrounding quotes.
type token struct {
	text   string
	quoted bool
}

type statement struct {
	lineNo int
	line   string
	tokens []token
}

// stripComment cuts the line at the first ';' outside a string.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			return line[:i]
		}
	}

	return line
}

// tokenize splits a line on spaces, tabs, and commas. Quoted spans
// hold together as single tokens.
func tokenize(line string) (tokens []token, err error) {
	var tok strings.Builder
	var quote byte
	quoted := false
	open := false

	flush := func() {
		if open {
			tokens = append(tokens, token{text: tok.String(), quoted: quoted})
		}
		tok.Reset()
		quoted = false
		open = false
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(line) {
				tok.WriteByte(c)
				i++
				tok.WriteByte(line[i])
				continue
			}
			if c == quote {
				quote = 0
				continue
			}
			tok.WriteByte(c)
		case c == '"' || c == '\'':
			quote = c
			quoted = true
			open = true
		case c == ' ' || c == '\t' || c == ',':
			flush()
		default:
			tok.WriteByte(c)
			open = true
		}
	}

	if quote != 0 {
		err = ErrParseString(tok.String())
		return
	}
	flush()

	return
}

// unescapeText decodes the escape sequences of a quoted token. An
// escape it does not know passes through with its backslash.
func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			out.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\\', '"', '\'':
			out.WriteByte(s[i])
		default:
			out.WriteByte('\\')
			out.WriteByte(s[i])
		}
	}

	return out.String()
}

// parseInteger accepts decimal, 0x hex, and 0b binary, with an
// optional sign ahead of the prefix.
func parseInteger(text string) (int64, error) {
	sign, body := "", text
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		sign, body = body[:1], body[1:]
	}

	base := 10
	switch lower := strings.ToLower(body); {
	case strings.HasPrefix(lower, "0x"):
		base, body = 16, body[2:]
	case strings.HasPrefix(lower, "0b"):
		base, body = 2, body[2:]
	}

	value, err := strconv.ParseInt(sign+body, base, 64)
	if err != nil {
		return 0, ErrParseNumber(text)
	}

	return value, nil
}

func isIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

func numericStart(text string) bool {
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}

	return len(text) > 0 && text[0] >= '0' && text[0] <= '9'
}

// opcodeCase rejects mnemonics that mix upper and lower case.
func opcodeCase(text string) error {
	hasUpper, hasLower := false, false
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		}
	}
	if hasUpper && hasLower {
		return ErrOpcodeMixedCase
	}

	return nil
}

// parenEval evaluates a $() expression. The integer constants defined
// so far and LINENO are in scope.
func (asm *Assembler) parenEval(expr string, lineno int) (int64, error) {
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineno),
	}
	for name, value := range asm.Constants {
		if value.Kind != VALUE_INTEGER {
			continue
		}
		pred[name] = starlark.MakeInt64(value.Int)
	}

	var thread starlark.Thread
	ret, err := starlark.ExecFileOptions(&syntax.FileOptions{}, &thread, "expr", "rc="+expr+"\n", pred)
	if err != nil {
		return 0, ErrParseExpression(expr)
	}

	rc, ok := ret["rc"].(starlark.Int)
	if !ok {
		return 0, ErrParseExpression(expr)
	}

	value, ok := rc.Int64()
	if !ok {
		return 0, ErrParseExpression(expr)
	}

	return value, nil
}

// expandExpressions replaces every $() outside a string with its
// evaluated decimal form.
func (asm *Assembler) expandExpressions(line string, lineno int) (string, error) {
	if !strings.Contains(line, "$(") {
		return line, nil
	}

	var out strings.Builder
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(line) {
				out.WriteByte(c)
				i++
				out.WriteByte(line[i])
				continue
			}
			if c == quote {
				quote = 0
			}
			out.WriteByte(c)
		case c == '"' || c == '\'':
			quote = c
			out.WriteByte(c)
		case c == '$' && i+1 < len(line) && line[i+1] == '(':
			end := strings.IndexByte(line[i+2:], ')')
			if end < 0 {
				return "", ErrParseExpression(line[i+2:])
			}
			value, err := asm.parenEval(line[i+2:i+2+end], lineno)
			if err != nil {
				return "", err
			}
			out.WriteString(strconv.FormatInt(value, 10))
			i += 2 + end
		default:
			out.WriteByte(c)
		}
	}

	return out.String(), nil
}

// Parse assembles the source into a Program. The first fault stops the
// assembly, and comes back wrapped in an ErrSyntax naming the line.
//
// Labels may be used before they are declared, and constants may be
// used in operands before their DEFINE. A DEFINE itself only sees
// constants declared above it, as do $() expressions.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lineno := 0
	line := ""
	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Labels == nil {
		asm.Labels = map[string]int{}
	} else {
		clear(asm.Labels)
	}
	asm.Constants = maps.Clone(sysDefine)
	maps.Copy(asm.Constants, asm.predefine)

	stmts := []statement{}

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lineno++
		line = scanner.Text()
		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		text := strings.TrimSpace(stripComment(line))
		if text == "" {
			continue
		}

		expanded, err := asm.expandExpressions(text, lineno)
		if err != nil {
			return nil, err
		}

		tokens, err := tokenize(expanded)
		if err != nil {
			return nil, err
		}

		// Peel off the label declarations, which index the next
		// instruction.
		for len(tokens) > 0 && !tokens[0].quoted && strings.HasSuffix(tokens[0].text, ":") {
			label := strings.TrimSuffix(tokens[0].text, ":")
			if !isIdentifier(label) {
				return nil, ErrOperandInvalid(tokens[0].text)
			}
			if _, ok := asm.Labels[label]; ok {
				return nil, ErrLabelDuplicate
			}
			asm.Labels[label] = len(stmts)
			tokens = tokens[1:]
		}

		if len(tokens) == 0 {
			continue
		}

		if !tokens[0].quoted {
			if err := opcodeCase(tokens[0].text); err != nil {
				return nil, err
			}
			if strings.ToLower(tokens[0].text) == "define" {
				if err := asm.define(tokens[1:]); err != nil {
					return nil, err
				}
				continue
			}
		}

		stmts = append(stmts, statement{lineNo: lineno, line: line, tokens: tokens})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	instructions := make([]Instruction, 0, len(stmts))
	for _, stmt := range stmts {
		lineno, line = stmt.lineNo, stmt.line
		inst, err := asm.decode(stmt)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}

	for i := range instructions {
		inst := &instructions[i]
		if inst.Op != OP_JMP && inst.Op != OP_CALL {
			continue
		}
		label := inst.Operands[0].Name
		pc, ok := asm.Labels[label]
		if !ok {
			lineno, line = stmts[i].lineNo, stmts[i].line
			return nil, ErrLabelMissing(label)
		}
		inst.Target = pc
	}

	prog = &Program{
		Instructions: instructions,
		Labels:       maps.Clone(asm.Labels),
		Constants:    maps.Clone(asm.Constants),
	}

	return prog, nil
}

// define records a DEFINE .name value statement.
func (asm *Assembler) define(tokens []token) error {
	if len(tokens) < 2 {
		return ErrDefineSyntax
	}
	if len(tokens) > 2 {
		return ErrOperandExtra
	}

	name := tokens[0]
	if name.quoted || !strings.HasPrefix(name.text, ".") || !isIdentifier(name.text[1:]) {
		return ErrDefineSyntax
	}

	value, err := asm.defineValue(tokens[1])
	if err != nil {
		return err
	}

	key := name.text[1:]
	if _, ok := asm.Constants[key]; ok {
		return ErrConstantDuplicate
	}
	asm.Constants[key] = value

	return nil
}

// defineValue accepts an integer, a quoted text, or an earlier
// constant.
func (asm *Assembler) defineValue(tok token) (Value, error) {
	text := tok.text
	switch {
	case tok.quoted:
		return Text(unescapeText(text)), nil
	case strings.HasPrefix(text, "."):
		name := text[1:]
		if !isIdentifier(name) {
			return Value{}, ErrDefineSyntax
		}
		value, ok := asm.Constants[name]
		if !ok {
			return Value{}, ErrConstantMissing(name)
		}
		return value, nil
	}

	value, err := parseInteger(text)
	if err != nil {
		return Value{}, err
	}

	return Integer(value), nil
}

// decode turns one statement into an Instruction.
func (asm *Assembler) decode(stmt statement) (inst Instruction, err error) {
	mnemonic := stmt.tokens[0]
	op, ok := opMap[strings.ToLower(mnemonic.text)]
	if mnemonic.quoted || !ok {
		err = ErrOpcodeUnknown(mnemonic.text)
		return
	}

	inst = Instruction{Op: op, Target: -1, LineNo: stmt.lineNo}
	tokens := stmt.tokens[1:]

	switch op {
	case OP_SET:
		if inst.Operands, err = asm.operands(tokens, 2); err != nil {
			return
		}
		err = needWritable(inst.Operands[0])
	case OP_STORE:
		if inst.Operands, err = asm.operands(tokens, 2); err != nil {
			return
		}
		if err = needRegister(inst.Operands[0]); err != nil {
			return
		}
		err = needMemory(inst.Operands[1])
	case OP_LOAD:
		if inst.Operands, err = asm.operands(tokens, 2); err != nil {
			return
		}
		if err = needMemory(inst.Operands[0]); err != nil {
			return
		}
		err = needRegister(inst.Operands[1])
	case OP_CLEAR:
		if inst.Operands, err = asm.operands(tokens, 1); err != nil {
			return
		}
		err = needWritable(inst.Operands[0])
	case OP_MOV:
		if inst.Operands, err = asm.operands(tokens, 2); err != nil {
			return
		}
		err = needWritable(inst.Operands[1])
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_AND, OP_OR, OP_XOR:
		inst.Operands, err = asm.operands(tokens, 2)
	case OP_NOT:
		inst.Operands, err = asm.operands(tokens, 1)
	case OP_INC, OP_DEC:
		if inst.Operands, err = asm.operands(tokens, 1); err != nil {
			return
		}
		err = needWritable(inst.Operands[0])
	case OP_JMP:
		err = asm.decodeJump(&inst, tokens)
	case OP_CALL:
		if len(tokens) < 1 {
			err = ErrOperandMissing
			return
		}
		if len(tokens) > 1 {
			err = ErrOperandExtra
			return
		}
		var dest Operand
		if dest, err = target(tokens[0]); err != nil {
			return
		}
		inst.Operands = []Operand{dest}
	case OP_RET, OP_HALT:
		if len(tokens) > 0 {
			err = ErrOperandExtra
		}
	case OP_PUSH:
		inst.Operands, err = asm.operands(tokens, 1)
	case OP_POP:
		switch len(tokens) {
		case 0:
		case 1:
			if inst.Operands, err = asm.operands(tokens, 1); err != nil {
				return
			}
			err = needWritable(inst.Operands[0])
		default:
			err = ErrOperandExtra
		}
	}

	return
}

// decodeJump decodes a target and an optional guard clause.
func (asm *Assembler) decodeJump(inst *Instruction, tokens []token) error {
	if len(tokens) < 1 {
		return ErrOperandMissing
	}

	dest, err := target(tokens[0])
	if err != nil {
		return err
	}
	inst.Operands = []Operand{dest}

	if len(tokens) == 1 {
		return nil
	}

	cmp, err := asm.comparison(tokens[1:])
	if err != nil {
		return err
	}
	inst.Compare = cmp

	return nil
}

// clausePart is a comparison fragment: an operand token or an
// operator.
type clausePart struct {
	isOp bool
	op   CompareOp
	tok  token
}

// findCompareOp locates the first comparison operator in unquoted
// text.
func findCompareOp(text string) (at int, op CompareOp, width int) {
	for i := 0; i < len(text); i++ {
		for _, c := range compareOps {
			if strings.HasPrefix(text[i:], c.text) {
				return i, c.op, len(c.text)
			}
		}
	}

	return -1, 0, 0
}

// splitClause breaks guard tokens apart around their operators, so
// that "r0<5" and "r0 < 5" read the same.
func splitClause(tokens []token) []clausePart {
	parts := []clausePart{}
	for _, tok := range tokens {
		if tok.quoted {
			parts = append(parts, clausePart{tok: tok})
			continue
		}

		text := tok.text
		for len(text) > 0 {
			at, op, width := findCompareOp(text)
			if at < 0 {
				parts = append(parts, clausePart{tok: token{text: text}})
				break
			}
			if at > 0 {
				parts = append(parts, clausePart{tok: token{text: text[:at]}})
			}
			parts = append(parts, clausePart{isOp: true, op: op})
			text = text[at+width:]
		}
	}

	return parts
}

func (asm *Assembler) comparison(tokens []token) (*Comparison, error) {
	parts := splitClause(tokens)
	if len(parts) != 3 || parts[0].isOp || !parts[1].isOp || parts[2].isOp {
		return nil, ErrCompareSyntax
	}

	left, err := asm.operand(parts[0].tok)
	if err != nil {
		return nil, err
	}
	right, err := asm.operand(parts[2].tok)
	if err != nil {
		return nil, err
	}

	return &Comparison{Left: left, Op: parts[1].op, Right: right}, nil
}

// operands resolves an exact count of operand tokens.
func (asm *Assembler) operands(tokens []token, want int) ([]Operand, error) {
	if len(tokens) < want {
		return nil, ErrOperandMissing
	}
	if len(tokens) > want {
		return nil, ErrOperandExtra
	}

	ops := make([]Operand, 0, want)
	for _, tok := range tokens {
		op, err := asm.operand(tok)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}

// operand classifies one token: text literal, memory reference,
// constant, register, or integer literal.
func (asm *Assembler) operand(tok token) (Operand, error) {
	text := tok.text
	switch {
	case tok.quoted:
		return LiteralOperand(Text(unescapeText(text))), nil
	case strings.HasPrefix(text, "%"):
		return addressOperand(text)
	case strings.HasPrefix(text, "."):
		name := text[1:]
		if !isIdentifier(name) {
			return Operand{}, ErrOperandInvalid(text)
		}
		value, ok := asm.Constants[name]
		if !ok {
			return Operand{}, ErrConstantMissing(name)
		}
		return ConstantOperand(name, value), nil
	}

	if reg, ok := registerMap[strings.ToLower(text)]; ok {
		return RegisterOperand(reg), nil
	}

	if numericStart(text) {
		value, err := parseInteger(text)
		if err != nil {
			return Operand{}, err
		}
		return LiteralOperand(Integer(value)), nil
	}

	return Operand{}, ErrOperandInvalid(text)
}

// addressOperand decodes a % memory reference: an r-numbered register
// for indirect, otherwise a direct address. Only r0 through r8 can
// index memory.
func addressOperand(text string) (Operand, error) {
	body := strings.ToLower(text[1:])
	if strings.HasPrefix(body, "r") && len(body) > 1 && body[1] >= '0' && body[1] <= '9' {
		reg, ok := registerMap[body]
		if !ok {
			return Operand{}, ErrRegisterInvalid
		}
		return IndirectOperand(reg), nil
	}

	addr, err := parseInteger(body)
	if err != nil {
		return Operand{}, ErrParseNumber(text)
	}

	return DirectOperand(addr), nil
}

// target accepts any identifier as a jump or call destination. The
// name is resolved against the label table after decoding.
func target(tok token) (Operand, error) {
	if tok.quoted || !isIdentifier(tok.text) {
		return Operand{}, ErrTargetInvalid
	}

	return LabelOperand(tok.text), nil
}

func needWritable(op Operand) error {
	if !op.Writable() {
		return ErrTargetInvalid
	}

	return nil
}

func needRegister(op Operand) error {
	if op.Mode != MODE_REGISTER {
		return ErrOperandInvalid(op.String())
	}

	return nil
}

func needMemory(op Operand) error {
	if !op.Memory() {
		return ErrOperandInvalid(op.String())
	}

	return nil
}

// Parse assembles source text with a default Assembler.
func Parse(source string) (*Program, error) {
	asm := Assembler{}
	return asm.Parse(strings.NewReader(source))
}

// ParseLiteral decodes a single literal token, an integer or a quoted
// text.
func ParseLiteral(text string) (Value, error) {
	tokens, err := tokenize(strings.TrimSpace(text))
	if err != nil {
		return Value{}, err
	}
	if len(tokens) != 1 {
		return Value{}, ErrOperandInvalid(text)
	}

	tok := tokens[0]
	if tok.quoted {
		return Text(unescapeText(tok.text)), nil
	}

	value, err := parseInteger(tok.text)
	if err != nil {
		return Value{}, err
	}

	return Integer(value), nil
}
