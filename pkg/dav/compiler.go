package dav

import (
	"io"
	"os"
	"strings"
)

// compiler is the single owning context for one compilation: the token
// stream and its cursor, the arena backing it, the output emitter, the
// two-scope symbol table, and the diagnostics collected so far. Every
// parser method hangs off this one struct instead of touching package-level
// mutable state.
type compiler struct {
	toks  []Token
	arena *Arena
	pos   int

	emitter *Emitter
	symtab  *SymbolTable
	diags   []Diagnostic

	currentFnRet Type
	filename     string
}

func newCompiler(toks []Token, arena *Arena, filename string) *compiler {
	return &compiler{
		toks:     toks,
		arena:    arena,
		emitter:  NewEmitter(),
		symtab:   NewSymbolTable(),
		filename: filename,
	}
}

// Result is the outcome of compiling one Dav source file: the generated C
// text and any diagnostics raised along the way. Parsing continues past
// each diagnostic, so C is always filled in, but when Diagnostics is
// non-empty C may be incomplete or not valid C: some parsers stop a
// construct part-way when a required token is missing, and type errors
// are emitted as written.
type Result struct {
	C           string
	Diagnostics []Diagnostic
}

// Compile lexes and parses src (named filename only for diagnostics) and
// returns the full generated C translation unit: includes, runtime
// prototypes, the translation of every global declaration in source order,
// then the runtime helper definitions. A non-nil error here is always a
// fatal lexer error; a non-empty Diagnostics slice on a non-nil Result is
// not an error by itself. See the CLI driver for the policy that turns
// diagnostics into a withheld file and a non-zero exit code.
func Compile(src io.Reader, filename string) (*Result, error) {
	lexer := NewLexer(src, filename)
	toks, arena, err := lexer.Run()
	if err != nil {
		return nil, err
	}

	c := newCompiler(toks, arena, filename)
	c.parseProgram()

	var out strings.Builder
	out.WriteString(cIncludes)
	out.WriteString(cPrototypes)
	out.WriteString(c.emitter.String())
	out.WriteString(cHelpers)

	return &Result{C: out.String(), Diagnostics: c.diags}, nil
}

// CompileFile reads inputPath, compiles it, and returns the Result. I/O
// errors are annotated with github.com/juju/errors so the caller can still
// inspect the underlying cause.
func CompileFile(inputPath string) (*Result, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, wrapIOError("open", inputPath, err)
	}
	defer f.Close()

	return Compile(f, inputPath)
}

// WriteOutput writes generated C text to outputPath.
func WriteOutput(outputPath, c string) error {
	if err := os.WriteFile(outputPath, []byte(c), 0o644); err != nil {
		return wrapIOError("write", outputPath, err)
	}
	return nil
}

// --- token cursor -----------------------------------------------------

// peekTok returns the next unconsumed token without advancing. The token
// stream always ends in exactly one TokenEOF, so this is always valid.
func (c *compiler) peekTok() Token {
	return c.toks[c.pos]
}

// nextTok consumes and returns the next token. Once TokenEOF is reached the
// cursor stops advancing, so callers can never run off the end of the
// slice, which is what guarantees the top-level parse loop terminates.
func (c *compiler) nextTok() Token {
	tok := c.toks[c.pos]
	if tok.Kind != TokenEOF {
		c.pos++
	}
	return tok
}

func (c *compiler) checkTok(k TokenKind) bool {
	return c.peekTok().Kind == k
}

// expectTokOrDiag consumes the next token and raises a diagnostic if it
// isn't of kind k. Unlike a semantic mismatch, this always reports via the
// generic "expected X" message since expectTokOrDiag is only used at
// structural points in the grammar.
func (c *compiler) expectTokOrDiag(k TokenKind, msg string) (Token, bool) {
	tok := c.nextTok()
	if tok.Kind != k {
		c.errorf(tok, "%s", msg)
		return tok, false
	}
	return tok, true
}

func (c *compiler) errorf(tok Token, format string, args ...interface{}) {
	c.diags = append(c.diags, newDiagnostic(tok, format, args...))
}

func (c *compiler) value(tok Token) string {
	return tok.Value(c.arena)
}

// --- the peek facility --------------------------------------------------

// peekCode implements the peek-and-rewind mechanism: mark the emitter, run
// level (which both consumes tokens and appends C text), capture what it
// emitted, and rewind the emitter buffer back to where it started. Token
// consumption is never undone; only the emitter's output is speculative.
// level is whichever recursive-descent method the caller wants to run
// speculatively (expr, relational, additive, ...).
func (c *compiler) peekCode(level func() Type) (string, Type) {
	start := c.emitter.Mark()
	t := level()
	text := c.emitter.Since(start)
	c.emitter.Rewind(start)
	return text, t
}

// --- statement dispatch --------------------------------------------------

// parseStatements runs statement() until the stop token (or EOF) is next.
// Every iteration is guaranteed to make progress: if a statement consumed
// no tokens at all (a syntax error at a position statement() couldn't
// recover from), one token is forced off the stream so the loop always
// terminates.
func (c *compiler) parseStatements(stop TokenKind) {
	for !c.checkTok(stop) && !c.checkTok(TokenEOF) {
		before := c.pos
		c.statement()
		if c.pos == before {
			c.nextTok()
		}
	}
}

func (c *compiler) parseProgram() {
	for !c.checkTok(TokenEOF) {
		before := c.pos
		c.globalDecl()
		if c.pos == before {
			c.nextTok()
		}
	}
}

func (c *compiler) globalDecl() {
	switch c.peekTok().Kind {
	case TokenFn:
		c.fnDecl()
	case TokenLet:
		c.letStmt(true)
	default:
		tok := c.peekTok()
		c.errorf(tok, "unexpected top-level token %s", tok.Kind)
	}
}

func (c *compiler) statement() {
	switch c.peekTok().Kind {
	case TokenLet:
		c.letStmt(false)
	case TokenPrint:
		c.printStmt()
	case TokenIf:
		c.ifStmt()
	case TokenWhile:
		c.whileStmt()
	case TokenReturn:
		c.returnStmt()
	case TokenIdentifier:
		c.idStmt()
	default:
		tok := c.peekTok()
		c.errorf(tok, "unexpected statement: %s", tok.Kind)
	}
}

// --- declarations ---------------------------------------------------------

// declaredType consumes an optional leading TYPE token, returning
// TypeUndefined if none was present.
func (c *compiler) declaredType() Type {
	if !c.checkTok(TokenType) {
		return TypeUndefined
	}

	tok := c.nextTok()
	t, _ := typeFromName(c.value(tok))
	return t
}

// maybePromote consumes an optional trailing MUL and promotes base one
// pointer level (int->int*, char->char*, char*->char**), raising a
// diagnostic for any other base type.
func (c *compiler) maybePromote(anchor Token, base Type) Type {
	if !c.checkTok(TokenMul) {
		return base
	}

	c.nextTok()
	promoted, ok := base.PromotePointer()
	if !ok {
		c.errorf(anchor, "cannot make pointer of type %s", base)
		return base
	}

	return promoted
}

// fnDecl parses a function declaration or definition. It records the
// function's return type and parameter types (the latter enables call-site
// argument checking, see symtab.go) before either emitting a bare prototype
// or parsing a full definition.
func (c *compiler) fnDecl() {
	fnTok := c.nextTok() // "ah"

	fnType := c.maybePromote(fnTok, c.declaredType())
	if fnType == TypeUndefined {
		fnType = TypeVoid
	}

	nameTok, ok := c.expectTokOrDiag(TokenIdentifier, "expected function name")
	if !ok {
		return
	}
	name := c.value(nameTok)

	if _, exists := c.symtab.LookupGlobal(name); exists {
		c.errorf(nameTok, "Redefinition of function %s", name)
	}

	if _, ok := c.expectTokOrDiag(TokenLParen, "expected '(' after function name"); !ok {
		return
	}

	c.emitter.Emit(fnType.String())
	c.emitter.Emit(" ")
	c.emitter.Emit(name)
	c.emitter.Emit("(")

	var paramTypes []Type
	var paramNames []string
	for i := 0; !c.checkTok(TokenRParen) && !c.checkTok(TokenEOF); i++ {
		if i > 0 {
			c.expectTokOrDiag(TokenComma, "expected ',' between parameters")
			c.emitter.Emit(", ")
		}

		paramTok := c.peekTok()
		pType := c.declaredType()
		if pType == TypeUndefined {
			pType = TypeInt
		}
		pType = c.maybePromote(paramTok, pType)

		pNameTok, ok := c.expectTokOrDiag(TokenIdentifier, "expected parameter name")
		if !ok {
			break
		}
		pName := c.value(pNameTok)

		c.emitter.Emit(pType.String())
		c.emitter.Emit(" ")
		c.emitter.Emit(pName)

		storedType := pType
		if c.checkTok(TokenLSquare) {
			c.nextTok()
			if c.checkTok(TokenNumber) {
				sizeTok := c.nextTok()
				c.emitter.Emit("[")
				c.emitter.Emit(c.value(sizeTok))
				c.emitter.Emit("]")
			} else {
				c.emitter.Emit("[]")
			}
			c.expectTokOrDiag(TokenRSquare, "expected ']'")

			promoted, ok := pType.PromotePointer()
			if !ok {
				c.errorf(pNameTok, "cannot make array of type %s", pType)
			} else {
				storedType = promoted
			}
		}

		paramTypes = append(paramTypes, storedType)
		paramNames = append(paramNames, pName)
	}

	c.expectTokOrDiag(TokenRParen, "expected ')'")
	c.emitter.Emit(")")

	c.symtab.AddGlobal(Symbol{Name: name, Type: fnType, IsFunc: true, Params: paramTypes})

	switch {
	case c.checkTok(TokenSemicol):
		c.nextTok()
		c.emitter.Emit(";\n")
	case c.checkTok(TokenLBrace):
		c.nextTok()
		c.emitter.Emit(" {\n")

		c.symtab.ClearLocal()
		for i, pName := range paramNames {
			c.symtab.AddLocal(Symbol{Name: pName, Type: paramTypes[i]})
		}

		prevRet := c.currentFnRet
		c.currentFnRet = fnType
		c.parseStatements(TokenRBrace)
		c.currentFnRet = prevRet

		c.expectTokOrDiag(TokenRBrace, "expected '}'")
		c.emitter.Emit("}\n")
	default:
		c.errorf(fnTok, "expected ';' or '{' after function signature")
	}
}

// letStmt parses a variable declaration, with or without an initializer or
// array size. Redefinition and type-inference errors are recorded as
// diagnostics, but the full declaration shape is always consumed (rather
// than abandoning the statement mid-parse) so a single semantic error
// produces exactly one diagnostic instead of cascading into the tokens
// that follow.
func (c *compiler) letStmt(isGlobal bool) {
	letTok := c.nextTok() // "beg"

	varType := c.maybePromote(letTok, c.declaredType())

	nameTok, ok := c.expectTokOrDiag(TokenIdentifier, "expected variable name")
	if !ok {
		return
	}
	name := c.value(nameTok)

	redefined := false
	if isGlobal {
		_, redefined = c.symtab.LookupGlobal(name)
	} else {
		_, redefined = c.symtab.LookupLocal(name)
	}
	if redefined {
		c.errorf(nameTok, "Redefinition of variable %s", name)
	}

	commit := func(t Type) {
		if redefined {
			return
		}
		if isGlobal {
			c.symtab.AddGlobal(Symbol{Name: name, Type: t})
		} else {
			c.symtab.AddLocal(Symbol{Name: name, Type: t})
		}
	}

	switch {
	case c.checkTok(TokenAssign):
		c.nextTok()
		c.emitter.Emit(varType.String())
		c.emitter.Emit(" ")
		c.emitter.Emit(name)
		c.emitter.Emit(" = ")
		rhsType := c.expr()
		c.emitter.Emit(";\n")
		c.expectTokOrDiag(TokenSemicol, "expected ';'")

		switch {
		case varType == TypeUndefined && (rhsType == TypeUndefined || rhsType == TypeVoid):
			c.errorf(nameTok, "cannot infer type of %s from an untyped expression", name)
		case varType == TypeUndefined:
			commit(rhsType)
		case varType != rhsType:
			c.errorf(nameTok, "incompatible type %s to %s", rhsType, varType)
		default:
			commit(varType)
		}

	case c.checkTok(TokenLSquare):
		c.nextTok()
		if varType == TypeUndefined {
			c.errorf(nameTok, "array declaration must have an explicit type")
			varType = TypeInt
		}

		sizeTok, _ := c.expectTokOrDiag(TokenNumber, "expected array size")
		c.expectTokOrDiag(TokenRSquare, "expected ']'")
		c.expectTokOrDiag(TokenSemicol, "expected ';'")

		arrayType, promOk := varType.PromotePointer()
		if !promOk {
			c.errorf(nameTok, "cannot make array of type %s", varType)
			arrayType = TypeIntPtr
		}
		commit(arrayType)

		c.emitter.Emit(varType.String())
		c.emitter.Emit(" ")
		c.emitter.Emit(name)
		c.emitter.Emit("[")
		c.emitter.Emit(c.value(sizeTok))
		c.emitter.Emit("];\n")

	case c.checkTok(TokenSemicol):
		c.nextTok()
		if varType == TypeUndefined {
			c.errorf(nameTok, "declaration without assignment must have an explicit type")
			varType = TypeInt
		}
		commit(varType)

		c.emitter.Emit(varType.String())
		c.emitter.Emit(" ")
		c.emitter.Emit(name)
		c.emitter.Emit(";\n")

	default:
		c.errorf(nameTok, "expected '=', '[', or ';' after variable name")
	}
}

// --- statements ------------------------------------------------------------

func (c *compiler) printStmt() {
	printTok := c.nextTok() // "boo"
	if _, ok := c.expectTokOrDiag(TokenLParen, "expected '(' after boo"); !ok {
		return
	}

	exprText, exprType := c.peekCode(c.expr)

	var format string
	switch exprType {
	case TypeInt:
		format = "printf(\"%d\\n\", "
	case TypeChar:
		format = "printf(\"%c\\n\", "
	case TypeCharPtr:
		format = "printf(\"%s\\n\", "
	default:
		c.errorf(printTok, "unprintable type '%s'", exprType)
		format = "printf(\"%d\\n\", "
	}

	c.emitter.Emit(format)
	c.emitter.Emit(exprText)
	c.emitter.Emit(");\n")

	c.expectTokOrDiag(TokenRParen, "expected ')'")
	c.expectTokOrDiag(TokenSemicol, "expected ';'")
}

func (c *compiler) ifStmt() {
	c.nextTok() // IF
	c.emitter.Emit("if (")
	c.expr()
	c.emitter.Emit(") {\n")

	c.expectTokOrDiag(TokenLBrace, "expected '{'")
	c.parseStatements(TokenRBrace)
	c.expectTokOrDiag(TokenRBrace, "expected '}'")
	c.emitter.Emit("}\n")

	if !c.checkTok(TokenElse) {
		return
	}
	c.nextTok()
	c.emitter.Emit("else ")

	switch {
	case c.checkTok(TokenIf):
		c.ifStmt()
	case c.checkTok(TokenLBrace):
		c.nextTok()
		c.emitter.Emit("{\n")
		c.parseStatements(TokenRBrace)
		c.expectTokOrDiag(TokenRBrace, "expected '}'")
		c.emitter.Emit("}\n")
	default:
		c.errorf(c.peekTok(), "expected 'if' or '{' after 'else'")
	}
}

func (c *compiler) whileStmt() {
	c.nextTok() // WHILE
	c.emitter.Emit("while (")
	c.expr()
	c.emitter.Emit(") {\n")

	c.expectTokOrDiag(TokenLBrace, "expected '{'")
	c.parseStatements(TokenRBrace)
	c.expectTokOrDiag(TokenRBrace, "expected '}'")
	c.emitter.Emit("}\n")
}

func (c *compiler) returnStmt() {
	retTok := c.nextTok() // RETURN
	c.emitter.Emit("return ")
	t := c.expr()
	c.emitter.Emit(";\n")
	c.expectTokOrDiag(TokenSemicol, "expected ';'")

	if t != c.currentFnRet {
		c.errorf(retTok, "incompatible %s to %s conversion", t, c.currentFnRet)
	}
}

// checkCallArgs validates arity and per-argument types for a call to sym.
func (c *compiler) checkCallArgs(tok Token, name string, sym Symbol, known bool, argTypes []Type) {
	if !known {
		return
	}
	if !sym.IsFunc {
		c.errorf(tok, "'%s' is not callable", name)
		return
	}
	if len(argTypes) != len(sym.Params) {
		c.errorf(tok, "function '%s' expects %d argument(s), got %d", name, len(sym.Params), len(argTypes))
		return
	}
	for i, at := range argTypes {
		if at != sym.Params[i] {
			c.errorf(tok, "argument %d to '%s' has type %s, expected %s", i+1, name, at, sym.Params[i])
		}
	}
}

func (c *compiler) idStmt() {
	tok := c.nextTok() // ID
	name := c.value(tok)
	sym, known := c.symtab.Lookup(name)
	if !known {
		c.errorf(tok, "undeclared identifier '%s'", name)
	}

	switch {
	case c.checkTok(TokenAssign):
		c.nextTok()
		c.emitter.Emit(name)
		c.emitter.Emit(" = ")
		rt := c.expr()
		c.emitter.Emit(";\n")
		c.expectTokOrDiag(TokenSemicol, "expected ';'")

		if known && rt != sym.Type {
			c.errorf(tok, "incompatible %s to %s conversion", rt, sym.Type)
		}

	case c.checkTok(TokenLParen):
		c.nextTok()
		c.emitter.Emit(name)
		c.emitter.Emit("(")

		var argTypes []Type
		for i := 0; !c.checkTok(TokenRParen) && !c.checkTok(TokenEOF); i++ {
			if i > 0 {
				c.expectTokOrDiag(TokenComma, "expected ','")
				c.emitter.Emit(", ")
			}
			argTypes = append(argTypes, c.expr())
		}
		c.expectTokOrDiag(TokenRParen, "expected ')'")
		c.emitter.Emit(");\n")
		c.expectTokOrDiag(TokenSemicol, "expected ';'")

		c.checkCallArgs(tok, name, sym, known, argTypes)

	case c.checkTok(TokenLSquare):
		c.nextTok()
		if known && !sym.Type.IsPointer() {
			c.errorf(tok, "variable '%s' is not an array and cannot be indexed", name)
		}

		c.emitter.Emit(name)
		c.emitter.Emit("[")
		idxType := c.expr()
		c.emitter.Emit("] = ")
		if idxType != TypeInt {
			c.errorf(tok, "array index must be an integer")
		}

		c.expectTokOrDiag(TokenRSquare, "expected ']'")
		c.expectTokOrDiag(TokenAssign, "expected '='")

		rt := c.expr()
		c.emitter.Emit(";\n")
		c.expectTokOrDiag(TokenSemicol, "expected ';'")

		if known {
			base, ok := sym.Type.Pointee()
			if !ok {
				base = TypeInt
			}
			if rt != base {
				c.errorf(tok, "cannot assign %s to array element of type %s", rt, base)
			}
		}

	default:
		c.errorf(tok, "invalid statement start after identifier '%s'", name)
	}
}

// --- expressions -------------------------------------------------------

// cOp maps an operator token kind to its C operator text.
func cOp(k TokenKind) string {
	switch k {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMul:
		return "*"
	case TokenDiv:
		return "/"
	case TokenEq:
		return "=="
	case TokenNe:
		return "!="
	case TokenLt:
		return "<"
	case TokenGt:
		return ">"
	case TokenLe:
		return "<="
	case TokenGe:
		return ">="
	case TokenAnd:
		return "&&"
	case TokenOr:
		return "||"
	default:
		return ""
	}
}

func isRelOp(k TokenKind) bool {
	switch k {
	case TokenEq, TokenNe, TokenLt, TokenGt, TokenLe, TokenGe:
		return true
	default:
		return false
	}
}

func isAddOp(k TokenKind) bool {
	return k == TokenPlus || k == TokenMinus
}

// expr is the expression grammar's entry point.
func (c *compiler) expr() Type {
	return c.logical()
}

// logical requires int on both sides of && and ||; always plain infix.
func (c *compiler) logical() Type {
	leftType := c.relational()

	for c.checkTok(TokenAnd) || c.checkTok(TokenOr) {
		opTok := c.nextTok()
		c.emitter.Emit(" ")
		c.emitter.Emit(cOp(opTok.Kind))
		c.emitter.Emit(" ")

		rightType := c.relational()
		if leftType != TypeInt || rightType != TypeInt {
			c.errorf(opTok, "logical operators '&&' and '||' require integer operands")
		}
		leftType = TypeInt
	}

	return leftType
}

// relational implements the string-comparison rewrites via the peek
// facility: each operand is obtained as (text, type) before any C is
// committed, so the operator-appropriate wrapper can be chosen once both
// sides are known. Left-associative folding accumulates the composed text
// across a chain of relational operators (a==b!=c), each comparison
// becoming the left operand of the next.
func (c *compiler) relational() Type {
	leftText, leftType := c.peekCode(c.additive)

	for isRelOp(c.peekTok().Kind) {
		opTok := c.nextTok()
		op := cOp(opTok.Kind)
		rightText, rightType := c.peekCode(c.additive)

		var combined string
		switch {
		case leftType == TypeCharPtr && rightType == TypeCharPtr:
			switch op {
			case "==":
				combined = "strcmp(" + leftText + ", " + rightText + ") == 0"
			case "!=":
				combined = "strcmp(" + leftText + ", " + rightText + ") != 0"
			default:
				c.errorf(opTok, "operator '%s' not allowed on strings", op)
				combined = leftText
			}
		case (leftType == TypeCharPtr && rightType == TypeInt) || (leftType == TypeInt && rightType == TypeCharPtr):
			if op == "==" || op == "!=" {
				combined = leftText + " " + op + " " + rightText
			} else {
				c.errorf(opTok, "operator '%s' not allowed on strings", op)
				combined = leftText
			}
		case leftType == TypeCharPtr || rightType == TypeCharPtr:
			c.errorf(opTok, "comparison between string and non-string")
			combined = leftText
		default:
			combined = leftText + " " + op + " " + rightText
		}

		leftText, leftType = combined, TypeInt
	}

	c.emitter.Emit(leftText)
	return leftType
}

// additive implements the pointer arithmetic algebra and the
// char*+char* -> concat(...) overload, via the same peek-then-compose
// pattern as relational.
func (c *compiler) additive() Type {
	leftText, leftType := c.peekCode(c.multiplicative)

	for isAddOp(c.peekTok().Kind) {
		opTok := c.nextTok()
		op := cOp(opTok.Kind)
		rightText, rightType := c.peekCode(c.multiplicative)

		var combined string
		var resultType Type
		switch {
		case leftType == TypeInt && rightType == TypeInt:
			combined = leftText + " " + op + " " + rightText
			resultType = TypeInt
		case leftType.IsPointer() && rightType == TypeInt:
			combined = leftText + " " + op + " " + rightText
			resultType = leftType
		case leftType == TypeInt && rightType.IsPointer():
			if op == "+" {
				combined = leftText + op + rightText
				resultType = rightType
			} else {
				c.errorf(opTok, "cannot subtract a pointer from an integer")
				combined = leftText
				resultType = leftType
			}
		case leftType == TypeCharPtr && rightType == TypeCharPtr && op == "+":
			combined = "concat(" + leftText + ", " + rightText + ")"
			resultType = TypeCharPtr
		default:
			c.errorf(opTok, "operator '%s' not allowed between '%s' and '%s'", op, leftType, rightType)
			combined = leftText
			resultType = leftType
		}

		leftText, leftType = combined, resultType
	}

	c.emitter.Emit(leftText)
	return leftType
}

// multiplicative requires int on both sides of * and /; always plain infix.
func (c *compiler) multiplicative() Type {
	leftType := c.unary()

	for c.checkTok(TokenMul) || c.checkTok(TokenDiv) {
		opTok := c.nextTok()
		c.emitter.Emit(" ")
		c.emitter.Emit(cOp(opTok.Kind))
		c.emitter.Emit(" ")

		rightType := c.unary()
		if leftType != TypeInt || rightType != TypeInt {
			c.errorf(opTok, "operators '*' and '/' require integer operands")
		}
		leftType = TypeInt
	}

	return leftType
}

func (c *compiler) unary() Type {
	if c.checkTok(TokenMinus) {
		opTok := c.nextTok()
		c.emitter.Emit("-")

		t := c.unary()
		if t != TypeInt {
			c.errorf(opTok, "unary '-' requires an integer operand")
		}
		return TypeInt
	}

	return c.atom()
}

// atom parses the grammar's terminal forms: literals, a parenthesized
// expression, and the three identifier sub-forms (call, index, bare
// variable).
func (c *compiler) atom() Type {
	tok := c.nextTok()

	switch tok.Kind {
	case TokenNumber:
		c.emitter.Emit(c.value(tok))
		return TypeInt

	case TokenChar:
		c.emitter.Emit("'")
		c.emitter.Emit(c.value(tok))
		c.emitter.Emit("'")
		return TypeChar

	case TokenString:
		c.emitter.Emit("\"")
		c.emitter.Emit(c.value(tok))
		c.emitter.Emit("\"")
		return TypeCharPtr

	case TokenLParen:
		c.emitter.Emit("(")
		t := c.expr()
		c.emitter.Emit(")")
		c.expectTokOrDiag(TokenRParen, "expected ')'")
		return t

	case TokenIdentifier:
		return c.atomIdentifier(tok)

	default:
		c.errorf(tok, "unexpected token '%s' in expression", tok.Kind)
		return TypeUndefined
	}
}

func (c *compiler) atomIdentifier(tok Token) Type {
	name := c.value(tok)
	sym, known := c.symtab.Lookup(name)
	if !known {
		c.errorf(tok, "undeclared identifier '%s'", name)
	}

	switch {
	case c.checkTok(TokenLParen):
		c.nextTok()
		c.emitter.Emit(name)
		c.emitter.Emit("(")

		var argTypes []Type
		for i := 0; !c.checkTok(TokenRParen) && !c.checkTok(TokenEOF); i++ {
			if i > 0 {
				c.expectTokOrDiag(TokenComma, "expected ','")
				c.emitter.Emit(", ")
			}
			argTypes = append(argTypes, c.expr())
		}
		c.expectTokOrDiag(TokenRParen, "expected ')'")
		c.emitter.Emit(")")

		c.checkCallArgs(tok, name, sym, known, argTypes)
		return sym.Type

	case c.checkTok(TokenLSquare):
		c.nextTok()
		if known && !sym.Type.IsPointer() {
			c.errorf(tok, "variable '%s' is not an array and cannot be indexed", name)
		}

		c.emitter.Emit(name)
		c.emitter.Emit("[")
		idxType := c.expr()
		if idxType != TypeInt {
			c.errorf(tok, "array index must be an integer")
		}
		c.expectTokOrDiag(TokenRSquare, "expected ']'")
		c.emitter.Emit("]")

		pointee, ok := sym.Type.Pointee()
		if !ok {
			return TypeInt
		}
		return pointee

	default:
		c.emitter.Emit(name)
		return sym.Type
	}
}
