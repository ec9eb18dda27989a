// Copyright © 2026 The ELPS authors

package lexer

import (
	"errors"
	"testing"

	"github.com/haerfest/nextlisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []*token.Token
	}{
		{``, nil},
		{" \t\n", nil},
		{`abc`, []*token.Token{
			testToken(token.ATOM, "abc"),
		}},
		{`(a b)`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.ATOM, "a"),
			testToken(token.ATOM, "b"),
			testToken(token.PAREN_R, ")"),
		}},
		{`'(x . y)`, []*token.Token{
			testToken(token.QUOTE, "'"),
			testToken(token.PAREN_L, "("),
			testToken(token.ATOM, "x"),
			testToken(token.DOT, "."),
			testToken(token.ATOM, "y"),
			testToken(token.PAREN_R, ")"),
		}},
		{`-12 +3 a.b a'b`, []*token.Token{
			testToken(token.ATOM, "-12"),
			testToken(token.ATOM, "+3"),
			testToken(token.ATOM, "a.b"),
			testToken(token.ATOM, "a'b"),
		}},
		{`"abc" "" "a b(c)"`, []*token.Token{
			testToken(token.ATOM, `"abc"`),
			testToken(token.ATOM, `""`),
			testToken(token.ATOM, `"a b(c)"`),
		}},
		{`"say \"hi\"" "\\"`, []*token.Token{
			testToken(token.ATOM, `"say \"hi\""`),
			testToken(token.ATOM, `"\\"`),
		}},
		{`"abc"def`, []*token.Token{
			testToken(token.ATOM, `"abc"`),
			testToken(token.ATOM, `def`),
		}},
		{"(a\n\tb)", []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.ATOM, "a"),
			testToken(token.ATOM, "b"),
			testToken(token.PAREN_R, ")"),
		}},
	}
	for i, test := range tests {
		tokens, err := Tokenize(test.input)
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		for _, tok := range tokens {
			tok.Source = nil
		}
		assert.Equal(t, test.tokens, tokens, "test %d: %q", i, test.input)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, `(a "b`, `"abc\"`, `"\`} {
		tokens, err := Tokenize(input)
		assert.Nil(t, tokens, "%q", input)
		require.Error(t, err, "%q", input)
		assert.True(t, errors.Is(err, ErrUnterminatedString), "%q: %v", input, err)
	}
}

func TestLexerErrorIsSticky(t *testing.T) {
	lex := New(token.NewScanner("", `"abc`))
	assert.Equal(t, token.ERROR, lex.ReadToken().Type)
	assert.Equal(t, token.ERROR, lex.ReadToken().Type)
	assert.Error(t, lex.Err())
}

func TestLexerLocations(t *testing.T) {
	tokens, err := TokenizeFile("stdin", "(car\n  'x)")
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, "stdin:1:1", tokens[0].Source.String())
	assert.Equal(t, "stdin:1:2", tokens[1].Source.String())
	assert.Equal(t, "stdin:2:3", tokens[2].Source.String())
	assert.Equal(t, "stdin:2:4", tokens[3].Source.String())
	assert.Equal(t, "stdin:2:5", tokens[4].Source.String())
}

func testToken(typ token.Type, text string) *token.Token {
	return &token.Token{
		Type: typ,
		Text: text,
	}
}
