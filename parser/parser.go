// Package parser turns a token stream into an *ast.Program using
// precedence-climbing (Pratt) expression parsing, grounded on the teacher's
// precedence-table approach (risor's parser/precedence.go) rebuilt against
// this language's grammar and AST.
package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hatchlang/hatch/ast"
	"github.com/hatchlang/hatch/lexer"
	"github.com/hatchlang/hatch/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = += -= etc, right-associative
	TERNARY     // ?:
	OR          // || or
	AND         // && and
	BITOR       // |
	BITXOR      // ^
	BITAND      // &
	EQUALS      // == !=
	RELATIONAL  // < <= > >= has
	SHIFT       // << >>
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x ~x typeof x new X()
	POSTFIX     // x++ x--
	CALL        // f(x)
	INDEX       // x[i] x.y
)

var precedences = map[token.Type]int{
	token.ASSIGN:          ASSIGN,
	token.PLUS_EQUALS:     ASSIGN,
	token.MINUS_EQUALS:    ASSIGN,
	token.ASTERISK_EQUALS: ASSIGN,
	token.SLASH_EQUALS:    ASSIGN,
	token.PERCENT_EQUALS:  ASSIGN,
	token.LSHIFT_EQUALS:   ASSIGN,
	token.RSHIFT_EQUALS:   ASSIGN,
	token.AMP_EQUALS:      ASSIGN,
	token.CARET_EQUALS:    ASSIGN,
	token.PIPE_EQUALS:     ASSIGN,
	token.QUESTION:        TERNARY,
	token.OR:              OR,
	token.OR_KW:           OR,
	token.AND:             AND,
	token.AND_KW:          AND,
	token.PIPE:            BITOR,
	token.CARET:           BITXOR,
	token.AMP:             BITAND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.LT:              RELATIONAL,
	token.LT_EQ:           RELATIONAL,
	token.GT:              RELATIONAL,
	token.GT_EQ:           RELATIONAL,
	token.HAS:             RELATIONAL,
	token.LSHIFT:          SHIFT,
	token.RSHIFT:          SHIFT,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.PERCENT:         PRODUCT,
	token.PLUS_PLUS:       POSTFIX,
	token.MINUS_MINUS:     POSTFIX,
	token.LPAREN:          CALL,
	token.PERIOD:          INDEX,
	token.LBRACKET:        INDEX,
}

var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_EQUALS: true, token.MINUS_EQUALS: true,
	token.ASTERISK_EQUALS: true, token.SLASH_EQUALS: true, token.PERCENT_EQUALS: true,
	token.LSHIFT_EQUALS: true, token.RSHIFT_EQUALS: true, token.AMP_EQUALS: true,
	token.CARET_EQUALS: true, token.PIPE_EQUALS: true,
}

// Parser consumes tokens from a lexer.Lexer and builds an *ast.Program.
// Parse errors are accumulated (not fatal-on-first) via go-multierror so a
// caller can report every syntax error found in one pass, mirroring how
// compiler.Compile accumulates diagnostics.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	peek token.Token

	errs *multierror.Error
}

func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	next, err := p.lex.Next()
	for err == nil && next.Type == token.NEWLINE {
		next, err = p.lex.Next()
	}
	if err != nil {
		p.errorf("lex error: %v", err)
		next = token.Token{Type: token.EOF}
	}
	p.peek = next
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = multierror.Append(p.errs, fmt.Errorf(format, args...))
}

func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("line %d: expected %s, got %s (%q)", p.cur.StartPosition.LineNumber(), t, p.cur.Type, p.cur.Literal)
	}
	p.advance()
	return tok
}

func (p *Parser) at(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) atPeek(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) accept(t token.Type) bool {
	if p.at(t) {
		p.advance()
		return true
	}
	return false
}

// Parse parses the full token stream into a Program. Returns the partial
// program and a non-nil error if any syntax errors were accumulated.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	if p.errs != nil {
		return prog, p.errs.ErrorOrNil()
	}
	return prog, nil
}
