// parser.go: the Pratt (precedence-climbing) parser (spec.md §4.3)
//
// Direct port of original_source/src/lang/parser.cpp's Pratt parser: the
// Prec table, `_parseExpr`'s prefix+infix loop, every `_parse*` production,
// `_peekPrec`/`_parseInfix`'s precedence dispatch, and `_intoAssign`'s
// assignment-target desugaring. Diagnostic codes E0100-E0112/E0200 match
// spec.md §4.2 and original_source/src/tests/test-diagnostics.cpp exactly.
package luna

import "strconv"

// Prec is the operator-precedence ladder of spec.md §4.3, extended (see
// DESIGN.md's "Bitwise `|`" resolution / spec.md §9) with two bitwise
// levels so that `&`/`|` are reachable as infix operators at all — the
// original grammar defines BinAnd/BinOr AST nodes but wires no token to
// them.
type Prec int

const (
	PLowest Prec = iota
	PAssign
	POr
	PAnd
	PBitOr
	PBitAnd
	PEquality
	PType
	PComparison
	PTerm
	PFactor
	PUnary
	PCall
	PHighest
)

type Parser struct {
	tokens []Token
	pos    int
	diag   *Collector
}

// NewParser builds a Parser over an already-lexed token stream.
func NewParser(tokens []Token, diag *Collector) *Parser {
	return &Parser{tokens: tokens, diag: diag}
}

func (p *Parser) peek() Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(n int) Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k TokenKind) bool { return p.peek().Kind == k }

// expect consumes a token of kind k or emits E0100 ("expected X, found Y").
func (p *Parser) expect(k TokenKind) (Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return Token{}, p.expected(k.kindName())
}

func (p *Parser) expected(what string) bool {
	got := p.peek()
	p.diag.Fatal(Diagnostic{
		Code:    "E0100",
		Message: "expected " + what + ", found " + got.Kind.kindName(),
		Primary: Label{Span: got.Span, Text: "expected " + what + " here"},
	})
	return false
}

// Parse lexes and parses the full program, wrapped in an unscoped top-level
// BlockNode (spec.md §4.3). ok is false if lexing or parsing failed; errors
// are available via diag.
func Parse(source string, diag *Collector) (Value, bool) {
	lx := NewLexer(source, diag)
	tokens, ok := lx.Lex()
	if !ok {
		return None, false
	}
	p := NewParser(tokens, diag)
	return p.parseTopLevel()
}

func (p *Parser) parseTopLevel() (Value, bool) {
	var exprs []Value
	for !p.check(TEOF) {
		e, ok := p.parseExpr(PLowest)
		if !ok {
			return None, false
		}
		exprs = append(exprs, e)
		if p.check(TSemicolon) {
			p.advance()
			continue
		}
		break
	}
	if !p.check(TEOF) {
		return None, p.expected("end of file")
	}
	return ObjVal(&BlockNode{Exprs: exprs, Scoped: false}), true
}

// parseExpr implements the precedence-climbing loop of spec.md §4.3.
func (p *Parser) parseExpr(minPrec Prec) (Value, bool) {
	left, ok := p.parsePrefix()
	if !ok {
		return None, false
	}
	for {
		prec := p.peekPrec(p.peek().Kind)
		if prec <= minPrec {
			break
		}
		opTok := p.advance()
		var result bool
		left, result = p.parseInfix(left, opTok, prec)
		if !result {
			return None, false
		}
	}
	return left, true
}

func (p *Parser) peekPrec(k TokenKind) Prec {
	switch k {
	case TAssign:
		return PAssign
	case TOr:
		return POr
	case TAnd:
		return PAnd
	case TPipe:
		return PBitOr
	case TAmp:
		return PBitAnd
	case TEq, TNeq:
		return PEquality
	case TIs, TAs:
		return PType
	case TLt, TLtEq, TGt, TGtEq:
		return PComparison
	case TPlus, TMinus:
		return PTerm
	case TStar, TSlash, TPercent:
		return PFactor
	case TLParen, TDot, TLBracket:
		return PCall
	default:
		return PLowest
	}
}

// MARK: Prefix forms --------------------------------------------------------

func (p *Parser) parsePrefix() (Value, bool) {
	tok := p.peek()
	switch tok.Kind {
	case TLParen:
		return p.parseParen()
	case TLBrace:
		if p.isTableHead() {
			return p.parseTable()
		}
		return p.parseBlock()
	case TLBracket:
		return p.parseList()
	case TNot:
		p.advance()
		operand, ok := p.parseExpr(PUnary)
		if !ok {
			return None, false
		}
		return ObjVal(&UnaryNode{Op: "not", Operand: operand}), true
	case TMinus:
		p.advance()
		operand, ok := p.parseExpr(PUnary)
		if !ok {
			return None, false
		}
		return ObjVal(&UnaryNode{Op: "neg", Operand: operand}), true
	case TTilde:
		p.advance()
		operand, ok := p.parseExpr(PUnary)
		if !ok {
			return None, false
		}
		return ObjVal(&UnaryNode{Op: "binnot", Operand: operand}), true
	case THash:
		p.advance()
		inner, ok := p.parseExpr(PUnary)
		if !ok {
			return None, false
		}
		return ObjVal(&QuoteNode{Inner: inner}), true
	case TTypeof:
		p.advance()
		operand, ok := p.parseExpr(PUnary)
		if !ok {
			return None, false
		}
		return ObjVal(&UnaryNode{Op: "typeof", Operand: operand}), true
	case TIdent:
		p.advance()
		return Sym(Intern(tok.Lexeme)), true
	case TVar:
		return p.parseVar()
	case TReturn, TContinue, TBreak, TThrow:
		return p.parseControlFlow(tok.Kind)
	case TIf:
		return p.parseIf()
	case TWhile:
		return p.parseWhile()
	case TTry:
		return p.parseTry()
	case TAssert:
		return p.parseAssert()
	case TFn:
		return p.parseFunc()
	default:
		return p.parseValue()
	}
}

func (p *Parser) parseValue() (Value, bool) {
	tok := p.peek()
	switch tok.Kind {
	case TNone:
		p.advance()
		return None, true
	case TTrue:
		p.advance()
		return Bool(true), true
	case TFalse:
		p.advance()
		return Bool(false), true
	case TInteger:
		p.advance()
		n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return Int(n), true
	case TNumber:
		p.advance()
		f, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return Num(f), true
	case TLStr:
		return p.parseStringLiteral()
	default:
		return None, p.expected("a value")
	}
}

func (p *Parser) parseStringLiteral() (Value, bool) {
	p.advance() // LSTR
	body := ""
	if p.check(TSpan) {
		body = p.advance().Lexeme
	}
	if !p.check(TRStr) {
		// Defensive, currently unreachable: the lexer's own unterminated-
		// string handling (E0001) already forecloses LSTR+SPAN with no
		// trailing RSTR (SPEC_FULL.md §3).
		got := p.peek()
		p.diag.Fatal(Diagnostic{
			Code:    "E0102",
			Message: "expected closing '\"', found " + got.Kind.kindName(),
			Primary: Label{Span: got.Span, Text: "expected closing '\"' here"},
		})
		return None, false
	}
	p.advance()
	return Str(body), true
}

// _parseIdentOrValue: used for table-entry keys and `.`-access keys. An
// identifier becomes a Symbol Value; anything else falls back to a literal
// value.
func (p *Parser) parseIdentOrValue() (Value, bool) {
	if p.check(TIdent) {
		tok := p.advance()
		return Sym(Intern(tok.Lexeme)), true
	}
	return p.parseValue()
}

func (p *Parser) parseVar() (Value, bool) {
	p.advance() // 'var'
	nameTok, ok := p.expect(TIdent)
	if !ok {
		return None, false
	}
	if !p.check(TAssign) {
		got := p.peek()
		p.diag.Fatal(Diagnostic{
			Code:      "E0103",
			Message:   "expected '=' in variable declaration",
			Primary:   Label{Span: got.Span, Text: "expected '=' here"},
			Secondary: []Label{{Span: nameTok.Span, Text: "variable declared here"}},
			Help:      "add '=' followed by an initial value",
		})
		return None, false
	}
	p.advance() // '='
	rhs, ok := p.parseExpr(PAssign - 1)
	if !ok {
		return None, false
	}
	return ObjVal(&DeclNode{Key: Intern(nameTok.Lexeme), RHS: rhs}), true
}

// parseControlFlow handles return/continue/break/throw: spec.md §4.3.1 gives
// the argument as optional with no further detail, so the argument is
// treated as absent whenever the next token can't start an expression
// (closes the enclosing block/call/list, or ends the statement) rather than
// only before ';' — this lets `{ return }` and `f(break)` parse without
// requiring a trailing semicolon.
func (p *Parser) parseControlFlow(kind TokenKind) (Value, bool) {
	p.advance()
	arg := None
	if !p.check(TSemicolon) && !p.check(TRBrace) && !p.check(TEOF) && !p.check(TRParen) && !p.check(TRBracket) && !p.check(TComma) {
		var ok bool
		arg, ok = p.parseExpr(PLowest)
		if !ok {
			return None, false
		}
	}
	switch kind {
	case TReturn:
		return ObjVal(&ReturnNode{Arg: arg}), true
	case TContinue:
		return ObjVal(&ContinueNode{Arg: arg}), true
	case TBreak:
		return ObjVal(&BreakNode{Arg: arg}), true
	default:
		return ObjVal(&ThrowNode{Arg: arg}), true
	}
}

func (p *Parser) parseIf() (Value, bool) {
	p.advance() // 'if'
	cond, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	then, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	elseVal := None
	if p.check(TElse) {
		p.advance()
		elseVal, ok = p.parseExpr(PLowest)
		if !ok {
			return None, false
		}
	}
	return ObjVal(&IfNode{Cond: cond, Then: then, Else: elseVal}), true
}

func (p *Parser) parseWhile() (Value, bool) {
	p.advance() // 'while'
	cond, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	body, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	return ObjVal(&WhileNode{Cond: cond, Body: body}), true
}

func (p *Parser) parseTry() (Value, bool) {
	tryTok := p.advance() // 'try'
	tryExpr, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	if !p.check(TCatch) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0104",
			Message:   "expected 'catch' after try block",
			Primary:   Label{Span: p.peek().Span, Text: "expected 'catch' here"},
			Secondary: []Label{{Span: tryTok.Span, Text: "'try' starts here"}},
		})
		return None, false
	}
	p.advance() // 'catch'
	if _, ok := p.expect(TLParen); !ok {
		return None, false
	}
	nameTok, ok := p.expect(TIdent)
	if !ok {
		return None, false
	}
	if _, ok := p.expect(TRParen); !ok {
		return None, false
	}
	catchExpr, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	return ObjVal(&TryNode{Try: tryExpr, CatchName: Intern(nameTok.Lexeme), Catch: catchExpr}), true
}

func (p *Parser) parseAssert() (Value, bool) {
	p.advance() // 'assert'
	startIdx := p.pos
	expr, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	source := renderTokenRange(p.tokens, startIdx, p.pos)
	return ObjVal(&AssertNode{Expr: expr, Source: source}), true
}

func (p *Parser) parseFunc() (Value, bool) {
	fnTok := p.advance() // 'fn'
	if !p.check(TLParen) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0105",
			Message:   "expected '(' after 'fn'",
			Primary:   Label{Span: p.peek().Span, Text: "expected '(' here"},
			Secondary: []Label{{Span: fnTok.Span, Text: "'fn' starts here"}},
			Help:      "function syntax: fn(param1, param2) { body }",
		})
		return None, false
	}
	p.advance() // '('
	var sig []ParamSpec
	for !p.check(TRParen) {
		nameTok, ok := p.expect(TIdent)
		if !ok {
			return None, false
		}
		spec := ParamSpec{Key: Intern(nameTok.Lexeme)}
		if p.check(TColon) {
			p.advance()
			def, ok := p.parseExpr(PAssign)
			if !ok {
				return None, false
			}
			spec.DefaultExp = def
			spec.HasDefault = true
		}
		sig = append(sig, spec)
		if p.check(TComma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(TRParen); !ok {
		return None, false
	}
	body, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	return ObjVal(&FuncLitNode{Sig: sig, Body: body}), true
}

func (p *Parser) parseParen() (Value, bool) {
	openTok := p.advance() // '('
	inner, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	if !p.check(TRParen) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0106",
			Message:   "unclosed parenthesis",
			Primary:   Label{Span: p.peek().Span, Text: "expected ')' here"},
			Secondary: []Label{{Span: openTok.Span, Text: "opening '(' here"}},
		})
		return None, false
	}
	p.advance()
	return inner, true
}

// isTableHead implements `{` <lookahead> per spec.md §4.3.1: `} | <ident-
// or-literal> :`.
func (p *Parser) isTableHead() bool {
	if p.peekAt(1).Kind == TRBrace {
		return true
	}
	switch p.peekAt(1).Kind {
	case TIdent, TInteger, TNumber, TLStr, TNone, TTrue, TFalse:
		return p.peekAt(2).Kind == TColon
	default:
		return false
	}
}

func (p *Parser) parseTable() (Value, bool) {
	openTok := p.advance() // '{'
	var keys, vals []Value
	for !p.check(TRBrace) {
		key, ok := p.parseIdentOrValue()
		if !ok {
			return None, false
		}
		if !p.check(TColon) {
			p.diag.Fatal(Diagnostic{
				Code:    "E0107",
				Message: "expected ':' in table entry",
				Primary: Label{Span: p.peek().Span, Text: "expected ':' here"},
			})
			return None, false
		}
		p.advance() // ':'
		val, ok := p.parseExpr(PAssign)
		if !ok {
			return None, false
		}
		keys = append(keys, key)
		vals = append(vals, val)
		if p.check(TComma) {
			p.advance()
			continue
		}
		break
	}
	if !p.check(TRBrace) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0108",
			Message:   "unclosed table",
			Primary:   Label{Span: p.peek().Span, Text: "expected '}' here"},
			Secondary: []Label{{Span: openTok.Span, Text: "opening '{' here"}},
		})
		return None, false
	}
	p.advance()
	return ObjVal(&TableLitNode{Keys: keys, Vals: vals}), true
}

func (p *Parser) parseBlock() (Value, bool) {
	openTok := p.advance() // '{'
	var exprs []Value
	for !p.check(TRBrace) {
		e, ok := p.parseExpr(PLowest)
		if !ok {
			return None, false
		}
		exprs = append(exprs, e)
		if p.check(TSemicolon) {
			p.advance()
			continue
		}
		break
	}
	if !p.check(TRBrace) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0109",
			Message:   "unclosed block",
			Primary:   Label{Span: p.peek().Span, Text: "expected '}' here"},
			Secondary: []Label{{Span: openTok.Span, Text: "opening '{' here"}},
			Help:      "separate statements with ';' and close blocks with '}'",
		})
		return None, false
	}
	p.advance()
	return ObjVal(&BlockNode{Exprs: exprs, Scoped: true}), true
}

func (p *Parser) parseList() (Value, bool) {
	openTok := p.advance() // '['
	var items []Value
	for !p.check(TRBracket) {
		e, ok := p.parseExpr(PAssign)
		if !ok {
			return None, false
		}
		items = append(items, e)
		if p.check(TComma) {
			p.advance()
			continue
		}
		break
	}
	if !p.check(TRBracket) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0110",
			Message:   "unclosed list",
			Primary:   Label{Span: p.peek().Span, Text: "expected ']' here"},
			Secondary: []Label{{Span: openTok.Span, Text: "opening '[' here"}},
		})
		return None, false
	}
	p.advance()
	return ObjVal(&ListLitNode{Items: items}), true
}

// MARK: Infix forms -----------------------------------------------------------

func (p *Parser) parseInfix(left Value, op Token, prec Prec) (Value, bool) {
	switch op.Kind {
	case TAssign:
		rhs, ok := p.parseExpr(prec - 1) // right-assoc
		if !ok {
			return None, false
		}
		return p.intoAssign(left, rhs, op.Span)
	case TOr:
		rhs, ok := p.parseExpr(prec)
		if !ok {
			return None, false
		}
		return ObjVal(&BinaryNode{Op: "or", Left: left, Right: rhs}), true
	case TAnd:
		rhs, ok := p.parseExpr(prec)
		if !ok {
			return None, false
		}
		return ObjVal(&BinaryNode{Op: "and", Left: left, Right: rhs}), true
	case TPipe:
		rhs, ok := p.parseExpr(prec)
		if !ok {
			return None, false
		}
		return ObjVal(&BinaryNode{Op: "binor", Left: left, Right: rhs}), true
	case TAmp:
		rhs, ok := p.parseExpr(prec)
		if !ok {
			return None, false
		}
		return ObjVal(&BinaryNode{Op: "binand", Left: left, Right: rhs}), true
	case TEq:
		return p.binOpRHS(left, "==", prec)
	case TNeq:
		return p.binOpRHS(left, "!=", prec)
	case TLt:
		return p.binOpRHS(left, "<", prec)
	case TLtEq:
		return p.binOpRHS(left, "<=", prec)
	case TGt:
		return p.binOpRHS(left, ">", prec)
	case TGtEq:
		return p.binOpRHS(left, ">=", prec)
	case TPlus:
		return p.binOpRHS(left, "+", prec)
	case TMinus:
		return p.binOpRHS(left, "-", prec)
	case TStar:
		return p.binOpRHS(left, "*", prec)
	case TSlash:
		return p.binOpRHS(left, "/", prec)
	case TPercent:
		return p.binOpRHS(left, "%", prec)
	case TIs:
		sym, ok := p.parseTypeTag()
		if !ok {
			return None, false
		}
		return ObjVal(&IsNode{Left: left, Type: sym}), true
	case TAs:
		sym, ok := p.parseTypeTag()
		if !ok {
			return None, false
		}
		return ObjVal(&AsNode{Left: left, Type: sym}), true
	case TDot:
		key, ok := p.parseIdentOrValue()
		if !ok {
			return None, false
		}
		return ObjVal(&GetNode{Target: left, Key: ObjVal(&QuoteNode{Inner: key})}), true
	case TLParen:
		return p.parseCall(left, op)
	case TLBracket:
		return p.parseIndex(left, op)
	default:
		return None, p.unexpectedOk(op)
	}
}

func (p *Parser) unexpectedOk(op Token) bool {
	p.diag.Fatal(Diagnostic{
		Code:    "E0101",
		Message: "unexpected " + op.Kind.kindName() + " in infix position",
		Primary: Label{Span: op.Span, Text: "unexpected token"},
	})
	return false
}

func (p *Parser) binOpRHS(left Value, op string, prec Prec) (Value, bool) {
	rhs, ok := p.parseExpr(prec)
	if !ok {
		return None, false
	}
	return ObjVal(&BinaryNode{Op: op, Left: left, Right: rhs}), true
}

// parseTypeTag parses the identifier naming a type tag for `is`/`as`,
// without evaluating it (it is a raw type symbol, not a variable
// reference — see ast.go's GetNode doc).
func (p *Parser) parseTypeTag() (*Symbol, bool) {
	tok, ok := p.expect(TIdent)
	if !ok {
		return nil, false
	}
	return Intern(tok.Lexeme), true
}

func (p *Parser) parseCall(callee Value, openTok Token) (Value, bool) {
	var args []CallArg
	for !p.check(TRParen) {
		var key *Symbol
		if p.check(TIdent) && p.peekAt(1).Kind == TColon {
			nameTok := p.advance()
			p.advance() // ':'
			key = Intern(nameTok.Lexeme)
		}
		val, ok := p.parseExpr(PAssign)
		if !ok {
			return None, false
		}
		args = append(args, CallArg{Key: key, Val: val})
		if p.check(TComma) {
			p.advance()
			continue
		}
		break
	}
	if !p.check(TRParen) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0111",
			Message:   "unclosed function call",
			Primary:   Label{Span: p.peek().Span, Text: "expected ')' here"},
			Secondary: []Label{{Span: openTok.Span, Text: "opening '(' here"}},
		})
		return None, false
	}
	p.advance()
	return ObjVal(&CallNode{Callee: callee, Args: args}), true
}

func (p *Parser) parseIndex(target Value, openTok Token) (Value, bool) {
	key, ok := p.parseExpr(PLowest)
	if !ok {
		return None, false
	}
	if !p.check(TRBracket) {
		p.diag.Fatal(Diagnostic{
			Code:      "E0112",
			Message:   "unclosed index expression",
			Primary:   Label{Span: p.peek().Span, Text: "expected ']' here"},
			Secondary: []Label{{Span: openTok.Span, Text: "opening '[' here"}},
		})
		return None, false
	}
	p.advance()
	return ObjVal(&GetNode{Target: target, Key: key}), true
}

// intoAssign implements spec.md §4.3.3's assignment desugaring.
func (p *Parser) intoAssign(lhs, rhs Value, span Span) (Value, bool) {
	if lhs.Kind == KindSymbol {
		return ObjVal(&SetEnvNode{Key: lhs.Sym, RHS: rhs}), true
	}
	if lhs.Kind == KindObject {
		if g, ok := lhs.Obj.(*GetNode); ok {
			return ObjVal(&SetNode{Target: g.Target, Key: g.Key, RHS: rhs}), true
		}
	}
	p.diag.Fatal(Diagnostic{
		Code:    "E0200",
		Message: "expression is not assignable",
		Primary: Label{Span: span, Text: "cannot assign to this expression"},
		Note:    "only variables and object properties can be assigned to",
	})
	return None, false
}

// renderTokenRange reconstructs a source-like string for the token range
// [from, to) by joining lexemes with single spaces — used only for the
// `assert` failure message (spec.md §4.4 "assertion failed <printed
// expr>"); it need not round-trip exactly, only be recognizable.
func renderTokenRange(tokens []Token, from, to int) string {
	s := ""
	for i := from; i < to && i < len(tokens); i++ {
		if i > from {
			s += " "
		}
		if tokens[i].Kind == TLStr {
			s += "\""
			continue
		}
		if tokens[i].Kind == TRStr {
			s += "\""
			continue
		}
		s += tokens[i].Lexeme
	}
	return s
}
