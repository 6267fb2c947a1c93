package lexer

import (
	"testing"

	"github.com/hatchlang/hatch/token"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestPunctuators(t *testing.T) {
	toks := collect(t, "%=+(){},;?||&&++--**=.&")
	types := []token.Type{
		token.PERCENT_EQUALS, token.PLUS, token.LPAREN, token.RPAREN,
		token.LBRACE, token.RBRACE, token.COMMA, token.SEMICOLON,
		token.QUESTION, token.OR, token.AND, token.PLUS_PLUS,
		token.MINUS_MINUS, token.ASTERISK, token.ASTERISK_EQUALS, token.PERIOD, token.AMP, token.EOF,
	}
	require.Len(t, toks, len(types))
	for i, typ := range types {
		require.Equalf(t, typ, toks[i].Type, "token %d", i)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := collect(t, "class Enemy { Enemy() { this.hp = 3; } }")
	require.Equal(t, token.CLASS, toks[0].Type)
	require.Equal(t, token.IDENT, toks[1].Type)
	require.Equal(t, "Enemy", toks[1].Literal)
	require.Equal(t, token.THIS, toks[7].Type)
}

func TestNumbers(t *testing.T) {
	toks := collect(t, "10 3.5 0x1F")
	require.Equal(t, token.INT, toks[0].Type)
	require.Equal(t, "10", toks[0].Literal)
	require.Equal(t, token.FLOAT, toks[1].Type)
	require.Equal(t, "3.5", toks[1].Literal)
	require.Equal(t, token.HEXINT, toks[2].Type)
	require.Equal(t, "0x1F", toks[2].Literal)
}

func TestStringEscapes(t *testing.T) {
	toks := collect(t, `"a\nb" 'c\'d'`)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, "a\nb", toks[0].Literal)
	require.Equal(t, token.STRING, toks[1].Type)
	require.Equal(t, "c'd", toks[1].Literal)
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := collect(t, "1 // comment\n/* block */ 2")
	require.Equal(t, token.INT, toks[0].Type)
	require.Equal(t, token.NEWLINE, toks[1].Type)
	require.Equal(t, token.INT, toks[2].Type)
	require.Equal(t, "2", toks[2].Literal)
}

func TestMaximalMunch(t *testing.T) {
	toks := collect(t, "<<= >>= &= ^= |=")
	types := []token.Type{token.LSHIFT_EQUALS, token.RSHIFT_EQUALS, token.AMP_EQUALS, token.CARET_EQUALS, token.PIPE_EQUALS, token.EOF}
	for i, typ := range types {
		require.Equal(t, typ, toks[i].Type)
	}
}
