package parser

import (
	"fmt"
	"strconv"

	"github.com/kolkov/bigo/ast"
	"github.com/kolkov/bigo/internal/lexer"
	"github.com/kolkov/bigo/token"
)

// kindName returns a human-readable name for a token kind.
func kindName(k token.Kind) string {
	switch k {
	case token.ILLEGAL:
		return "illegal"
	case token.EOF:
		return "end of file"
	case token.ASSIGN:
		return "←"
	case token.ADD:
		return "+"
	case token.SUB:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.IDIV:
		return "div"
	case token.MOD:
		return "mod"
	case token.EQ:
		return "="
	case token.NEQ:
		return "≠"
	case token.LT:
		return "<"
	case token.LTE:
		return "≤"
	case token.GT:
		return ">"
	case token.GTE:
		return "≥"
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.NOT:
		return "not"
	case token.LPAREN:
		return "("
	case token.RPAREN:
		return ")"
	case token.LBRACKET:
		return "["
	case token.RBRACKET:
		return "]"
	case token.COMMA:
		return ","
	case token.FUNCTION:
		return "FUNCTION"
	case token.FOR:
		return "FOR"
	case token.TO:
		return "TO"
	case token.DO:
		return "DO"
	case token.WHILE:
		return "WHILE"
	case token.REPEAT:
		return "REPEAT"
	case token.UNTIL:
		return "UNTIL"
	case token.IF:
		return "IF"
	case token.THEN:
		return "THEN"
	case token.ELSEIF:
		return "ELSEIF"
	case token.ELSE:
		return "ELSE"
	case token.END:
		return "END"
	case token.CALL:
		return "CALL"
	case token.RETURN:
		return "RETURN"
	case token.IDENT:
		return "identifier"
	case token.NUMBER:
		return "number"
	default:
		return fmt.Sprintf("token(%d)", k)
	}
}

// Parser is a recursive descent parser for pseudocode programs.
// The grammar is LL(1): the leading keyword of every statement form
// selects the production, so a single token of lookahead suffices
// (with one two-token peek to disambiguate a bare RETURN).
type Parser struct {
	toks []lexer.Token // Complete token stream
	i    int           // Index of the current token
	tok  lexer.Token   // Current token

	maxDepth int          // Nesting-depth budget (0 = unlimited)
	depth    int          // Current statement nesting depth
	blocks   []blockFrame // Open block stack for END matching
}

// blockFrame records an open block for closer diagnostics.
type blockFrame struct {
	kind token.Kind
	pos  token.Position
}

// bailout is the panic sentinel used for single-error-first parsing:
// the first structural violation aborts the whole parse, so no partial
// AST can ever be surfaced.
type bailout struct {
	err error
}

// Parse parses a pseudocode program from source code.
// Returns the AST root or the first syntax error encountered.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize([]byte(src), 0)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks, 0)
}

// ParseTokens parses a complete token stream produced by lexer.Tokenize.
// maxDepth bounds statement nesting (0 = unlimited); exceeding it fails
// with *LimitError.
func ParseTokens(toks []lexer.Token, maxDepth int) (prog *ast.Program, err error) {
	if len(toks) == 0 {
		return nil, errorf(token.NoPos, "empty token stream")
	}

	p := &Parser{toks: toks, maxDepth: maxDepth}
	p.tok = toks[0]

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	return p.parseProgram(), nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (expr ast.Expr, err error) {
	toks, terr := lexer.Tokenize([]byte(src), 0)
	if terr != nil {
		return nil, terr
	}
	p := &Parser{toks: toks}
	p.tok = toks[0]

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			expr, err = nil, b.err
		}
	}()

	e := p.parseExpr()
	if p.tok.Kind != token.EOF {
		p.fail(expectedError(p.tok.Pos, "end of file", p.tokenDesc()))
	}
	return e, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	if p.i+1 < len(p.toks) {
		p.i++
		p.tok = p.toks[p.i]
	}
}

// peek returns the token after the current one without consuming anything.
func (p *Parser) peek() lexer.Token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.tok
}

// expect checks that the current token is kind and advances.
// The first mismatch aborts the parse.
func (p *Parser) expect(kind token.Kind) lexer.Token {
	if p.tok.Kind != kind {
		p.fail(expectedError(p.tok.Pos, kindName(kind), p.tokenDesc()))
	}
	tok := p.tok
	p.next()
	return tok
}

// expectIdent expects an IDENT token and returns it as an ast.Ident.
func (p *Parser) expectIdent() *ast.Ident {
	tok := p.expect(token.IDENT)
	return &ast.Ident{
		BaseExpr: ast.MakeBaseExpr(tok.Pos, p.tok.Pos),
		Name:     tok.Value,
	}
}

// match returns true if the current token matches any of the given kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Kind {
	case token.IDENT, token.NUMBER, token.ILLEGAL:
		return p.tok.Value
	case token.EOF:
		return "end of file"
	default:
		return kindName(p.tok.Kind)
	}
}

// fail aborts the parse with the given error (single-error-first policy).
func (p *Parser) fail(err error) {
	panic(bailout{err: err})
}

// failf aborts the parse with a formatted error at the current position.
func (p *Parser) failf(format string, args ...any) {
	p.fail(errorf(p.tok.Pos, format, args...))
}

// -----------------------------------------------------------------------------
// Depth budget and block stack
// -----------------------------------------------------------------------------

// enter tracks statement nesting against the depth budget.
func (p *Parser) enter() {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.fail(&LimitError{Pos: p.tok.Pos, Limit: p.maxDepth})
	}
}

func (p *Parser) leave() {
	p.depth--
}

// openBlock pushes a block opener onto the explicit block stack.
func (p *Parser) openBlock(kind token.Kind, pos token.Position) {
	p.blocks = append(p.blocks, blockFrame{kind: kind, pos: pos})
}

// closeBlock expects "END <kind>" for the innermost open block and pops it.
func (p *Parser) closeBlock(kind token.Kind) {
	frame := p.blocks[len(p.blocks)-1]
	if p.tok.Kind != token.END {
		p.fail(expectedError(p.tok.Pos,
			fmt.Sprintf("END %s to close %s opened at %s", kindName(kind), kindName(frame.kind), frame.pos),
			p.tokenDesc()))
	}
	p.next()
	if p.tok.Kind != kind {
		p.fail(expectedError(p.tok.Pos, kindName(kind), p.tokenDesc()))
	}
	p.next()
	p.blocks = p.blocks[:len(p.blocks)-1]
}

// popBlock pops the innermost open block without consuming a closer
// (REPEAT blocks close with UNTIL, not END).
func (p *Parser) popBlock() {
	p.blocks = p.blocks[:len(p.blocks)-1]
}

// -----------------------------------------------------------------------------
// Program parsing
// -----------------------------------------------------------------------------

// parseProgram parses a complete program: routine declarations
// interleaved with top-level statements.
func (p *Parser) parseProgram() *ast.Program {
	startPos := p.tok.Pos
	prog := &ast.Program{
		StartPos: startPos,
		Main: &ast.BlockStmt{
			BaseStmt: ast.MakeBaseStmt(startPos, startPos),
		},
	}

	for p.tok.Kind != token.EOF {
		if p.tok.Kind == token.FUNCTION {
			prog.Functions = append(prog.Functions, p.parseFunction())
			continue
		}
		prog.Main.Stmts = append(prog.Main.Stmts, p.parseStatement())
	}

	prog.EndPos = p.tok.Pos
	prog.Main.EndPos = p.tok.Pos
	return prog
}

// parseFunction parses a routine declaration.
//
//	FUNCTION name "(" [param ("," param)*] ")" Statement* END FUNCTION
func (p *Parser) parseFunction() *ast.FuncDecl {
	startPos := p.tok.Pos
	p.openBlock(token.FUNCTION, startPos)
	p.next() // consume FUNCTION

	nameTok := p.expect(token.IDENT)
	fn := &ast.FuncDecl{
		Name:     nameTok.Value,
		NamePos:  nameTok.Pos,
		StartPos: startPos,
	}

	p.expect(token.LPAREN)
	for p.tok.Kind != token.RPAREN {
		if len(fn.Params) > 0 {
			p.expect(token.COMMA)
		}
		param := p.expect(token.IDENT)
		fn.Params = append(fn.Params, param.Value)
	}
	p.expect(token.RPAREN)

	fn.Body = p.parseBlockBody(token.END)
	p.closeBlock(token.FUNCTION)
	fn.EndPos = p.tok.Pos
	return fn
}

// parseBlockBody parses statements until one of the stop kinds is seen.
// Reaching EOF first means an open block was never closed; the closer
// diagnostic is produced by the caller via closeBlock/expect.
func (p *Parser) parseBlockBody(stop ...token.Kind) *ast.BlockStmt {
	block := &ast.BlockStmt{
		BaseStmt: ast.MakeBaseStmt(p.tok.Pos, p.tok.Pos),
	}
	for !p.match(stop...) && p.tok.Kind != token.EOF {
		block.Stmts = append(block.Stmts, p.parseStatement())
	}
	block.EndPos = p.tok.Pos
	return block
}

// -----------------------------------------------------------------------------
// Statement parsing
// -----------------------------------------------------------------------------

// parseStatement parses a single statement. The leading token always
// disambiguates which production applies.
func (p *Parser) parseStatement() ast.Stmt {
	p.enter()
	defer p.leave()

	switch p.tok.Kind {
	case token.IDENT:
		return p.parseAssign()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.REPEAT:
		return p.parseRepeat()
	case token.IF:
		return p.parseIf()
	case token.CALL:
		return p.parseCall()
	case token.RETURN:
		return p.parseReturn()
	case token.END, token.ELSE, token.ELSEIF, token.UNTIL:
		// A closer with no matching opener.
		p.fail(errorf(p.tok.Pos, "unexpected %s: no open block to close", kindName(p.tok.Kind)))
		return nil
	default:
		p.fail(expectedError(p.tok.Pos, "statement", p.tokenDesc()))
		return nil
	}
}

// parseAssign parses an assignment statement.
//
//	name [ "[" Expr ("," Expr)* "]" ] ← Expr
func (p *Parser) parseAssign() *ast.AssignStmt {
	startPos := p.tok.Pos
	target := p.expectIdent()

	stmt := &ast.AssignStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, startPos),
		Target:   target,
	}

	if p.tok.Kind == token.LBRACKET {
		p.next()
		stmt.Index = p.parseExprList(token.RBRACKET)
		p.expect(token.RBRACKET)
	}

	p.expect(token.ASSIGN)
	stmt.Value = p.parseExpr()
	stmt.EndPos = stmt.Value.End()
	return stmt
}

// parseFor parses a counted loop.
//
//	FOR name ← Expr TO Expr DO Statement* END FOR
func (p *Parser) parseFor() *ast.ForStmt {
	startPos := p.tok.Pos
	p.openBlock(token.FOR, startPos)
	p.next() // consume FOR

	stmt := &ast.ForStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, startPos),
		Var:      p.expectIdent(),
	}
	p.expect(token.ASSIGN)
	stmt.From = p.parseExpr()
	p.expect(token.TO)
	stmt.To = p.parseExpr()
	p.expect(token.DO)

	stmt.Body = p.parseBlockBody(token.END)
	p.closeBlock(token.FOR)
	stmt.EndPos = p.tok.Pos
	return stmt
}

// parseWhile parses a pre-tested loop.
//
//	WHILE Expr DO Statement* END WHILE
func (p *Parser) parseWhile() *ast.WhileStmt {
	startPos := p.tok.Pos
	p.openBlock(token.WHILE, startPos)
	p.next() // consume WHILE

	stmt := &ast.WhileStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, startPos),
		Cond:     p.parseExpr(),
	}
	p.expect(token.DO)

	stmt.Body = p.parseBlockBody(token.END)
	p.closeBlock(token.WHILE)
	stmt.EndPos = p.tok.Pos
	return stmt
}

// parseRepeat parses a post-tested loop.
//
//	REPEAT Statement* UNTIL Expr
func (p *Parser) parseRepeat() *ast.RepeatStmt {
	startPos := p.tok.Pos
	p.openBlock(token.REPEAT, startPos)
	p.next() // consume REPEAT

	stmt := &ast.RepeatStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, startPos),
	}
	stmt.Body = p.parseBlockBody(token.UNTIL)

	if p.tok.Kind != token.UNTIL {
		frame := p.blocks[len(p.blocks)-1]
		p.fail(expectedError(p.tok.Pos,
			fmt.Sprintf("UNTIL to close REPEAT opened at %s", frame.pos),
			p.tokenDesc()))
	}
	p.next()
	p.popBlock()

	stmt.Cond = p.parseExpr()
	stmt.EndPos = stmt.Cond.End()
	return stmt
}

// parseIf parses a conditional.
//
//	IF Expr THEN Statement*
//	(ELSEIF Expr THEN Statement*)*
//	[ELSE Statement*]
//	END IF
func (p *Parser) parseIf() *ast.IfStmt {
	startPos := p.tok.Pos
	p.openBlock(token.IF, startPos)
	p.next() // consume IF

	stmt := &ast.IfStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, startPos),
	}

	cond := p.parseExpr()
	p.expect(token.THEN)
	body := p.parseBlockBody(token.ELSEIF, token.ELSE, token.END)
	stmt.Branches = append(stmt.Branches, ast.Branch{Cond: cond, Body: body})

	for p.tok.Kind == token.ELSEIF {
		p.next()
		cond := p.parseExpr()
		p.expect(token.THEN)
		body := p.parseBlockBody(token.ELSEIF, token.ELSE, token.END)
		stmt.Branches = append(stmt.Branches, ast.Branch{Cond: cond, Body: body})
	}

	if p.tok.Kind == token.ELSE {
		p.next()
		stmt.Else = p.parseBlockBody(token.END)
	}

	p.closeBlock(token.IF)
	stmt.EndPos = p.tok.Pos
	return stmt
}

// parseCall parses a routine call statement.
//
//	CALL name "(" [Expr ("," Expr)*] ")"
func (p *Parser) parseCall() *ast.CallStmt {
	startPos := p.tok.Pos
	p.next() // consume CALL

	nameTok := p.expect(token.IDENT)
	stmt := &ast.CallStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, startPos),
		Name:     nameTok.Value,
	}

	p.expect(token.LPAREN)
	if p.tok.Kind != token.RPAREN {
		stmt.Args = p.parseExprList(token.RPAREN)
	}
	p.expect(token.RPAREN)
	stmt.EndPos = p.tok.Pos
	return stmt
}

// parseReturn parses a return statement with an optional value.
// A bare RETURN directly followed by an assignment ("RETURN" / "x ← 1"
// on the next source line) is disambiguated with a two-token peek.
func (p *Parser) parseReturn() *ast.ReturnStmt {
	startPos := p.tok.Pos
	p.next() // consume RETURN

	stmt := &ast.ReturnStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, p.tok.Pos),
	}

	switch p.tok.Kind {
	case token.NUMBER, token.LPAREN, token.SUB, token.NOT:
		stmt.Value = p.parseExpr()
	case token.IDENT:
		if p.peek().Kind != token.ASSIGN {
			stmt.Value = p.parseExpr()
		}
	}
	if stmt.Value != nil {
		stmt.EndPos = stmt.Value.End()
	}
	return stmt
}

// -----------------------------------------------------------------------------
// Expression parsing (precedence climbing)
// -----------------------------------------------------------------------------

// parseExpr parses an expression. Precedence, loosest first:
// or, and, comparison, additive, multiplicative, unary, primary.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	expr := p.parseAnd()
	for p.tok.Kind == token.OR {
		op := p.tok.Kind
		p.next()
		right := p.parseAnd()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseAnd() ast.Expr {
	expr := p.parseComparison()
	for p.tok.Kind == token.AND {
		op := p.tok.Kind
		p.next()
		right := p.parseComparison()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseAdditive()
	for p.match(token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE) {
		op := p.tok.Kind
		p.next()
		right := p.parseAdditive()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseAdditive() ast.Expr {
	expr := p.parseMultiplicative()
	for p.match(token.ADD, token.SUB) {
		op := p.tok.Kind
		p.next()
		right := p.parseMultiplicative()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseMultiplicative() ast.Expr {
	expr := p.parseUnary()
	for p.match(token.MUL, token.DIV, token.IDIV, token.MOD) {
		op := p.tok.Kind
		p.next()
		right := p.parseUnary()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expr {
	if p.match(token.SUB, token.NOT) {
		startPos := p.tok.Pos
		op := p.tok.Kind
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{
			BaseExpr: ast.MakeBaseExpr(startPos, operand.End()),
			Op:       op,
			Expr:     operand,
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	startPos := p.tok.Pos

	switch p.tok.Kind {
	case token.NUMBER:
		raw := p.tok.Value
		p.next()
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.fail(errorf(startPos, "invalid number %q", raw))
		}
		return &ast.NumLit{
			BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos),
			Value:    val,
			Raw:      raw,
		}

	case token.IDENT:
		name := p.tok.Value
		p.next()

		switch p.tok.Kind {
		case token.LPAREN:
			// Routine call in expression position
			p.next()
			call := &ast.CallExpr{
				BaseExpr: ast.MakeBaseExpr(startPos, startPos),
				Name:     name,
			}
			if p.tok.Kind != token.RPAREN {
				call.Args = p.parseExprList(token.RPAREN)
			}
			p.expect(token.RPAREN)
			call.EndPos = p.tok.Pos
			return call

		case token.LBRACKET:
			p.next()
			idx := &ast.IndexExpr{
				BaseExpr: ast.MakeBaseExpr(startPos, startPos),
				Array: &ast.Ident{
					BaseExpr: ast.MakeBaseExpr(startPos, startPos),
					Name:     name,
				},
				Index: p.parseExprList(token.RBRACKET),
			}
			p.expect(token.RBRACKET)
			idx.EndPos = p.tok.Pos
			return idx

		default:
			return &ast.Ident{
				BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos),
				Name:     name,
			}
		}

	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return &ast.GroupExpr{
			BaseExpr: ast.MakeBaseExpr(startPos, p.tok.Pos),
			Expr:     inner,
		}

	default:
		p.fail(expectedError(p.tok.Pos, "expression", p.tokenDesc()))
		return nil
	}
}

// parseExprList parses a comma-separated expression list up to (but not
// consuming) the given closing kind.
func (p *Parser) parseExprList(closer token.Kind) []ast.Expr {
	var exprs []ast.Expr
	for {
		exprs = append(exprs, p.parseExpr())
		if p.tok.Kind != token.COMMA {
			break
		}
		p.next()
		if p.tok.Kind == closer {
			p.fail(expectedError(p.tok.Pos, "expression", p.tokenDesc()))
		}
	}
	return exprs
}
