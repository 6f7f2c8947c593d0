package lexer

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

func lex(t *testing.T, src string) ([]tokens.Token, *diagnostics.Bag) {
	t.Helper()
	bag := diagnostics.NewBag()
	l := New("test.clt", src, bag)
	return l.Tokenize(false), bag
}

func kinds(toks []tokens.Token) []tokens.TOKEN {
	out := make([]tokens.TOKEN, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks, bag := lex(t, "fn main let letter varx var")
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, kinds(toks), []tokens.TOKEN{
		tokens.FUNCTION_TOKEN,
		tokens.IDENTIFIER_TOKEN,
		tokens.LET_TOKEN,
		tokens.IDENTIFIER_TOKEN,
		tokens.IDENTIFIER_TOKEN,
		tokens.VAR_TOKEN,
		tokens.EOF_TOKEN,
	})
}

func TestNumberBases(t *testing.T) {
	tests := []struct {
		src    string
		base   int
		digits string
	}{
		{"42", 10, "42"},
		{"0x1F", 16, "1F"},
		{"0b1010", 2, "1010"},
		{"0o755", 8, "755"},
		{"1_000_000", 10, "1000000"},
	}
	for _, tt := range tests {
		toks, bag := lex(t, tt.src)
		be.Equal(t, bag.HasErrors(), false)
		be.Equal(t, toks[0].Kind, tokens.NUMBER_TOKEN)
		be.Equal(t, toks[0].Numeric.Base, tt.base)
		be.Equal(t, toks[0].Numeric.Digits, tt.digits)
	}
}

func TestNumberSuffixes(t *testing.T) {
	toks, bag := lex(t, "1i8 2u64 3.5f32 10f64")
	be.Equal(t, bag.HasErrors(), false)

	be.Equal(t, toks[0].Numeric.Suffix, "i8")
	be.Equal(t, toks[0].Numeric.IsFloat, false)
	be.Equal(t, toks[1].Numeric.Suffix, "u64")
	be.Equal(t, toks[2].Numeric.Suffix, "f32")
	be.Equal(t, toks[2].Numeric.IsFloat, true)
	be.Equal(t, toks[3].Numeric.Suffix, "f64")
	be.Equal(t, toks[3].Numeric.IsFloat, false)
}

func TestHexSuffixes(t *testing.T) {
	toks, bag := lex(t, "0xFFu8 0x10i32")
	be.Equal(t, bag.HasErrors(), false)

	be.Equal(t, toks[0].Numeric.Base, 16)
	be.Equal(t, toks[0].Numeric.Digits, "FF")
	be.Equal(t, toks[0].Numeric.Suffix, "u8")
	be.Equal(t, toks[1].Numeric.Digits, "10")
	be.Equal(t, toks[1].Numeric.Suffix, "i32")

	// f16 is all hex digits, so it stays part of the body
	toks, bag = lex(t, "0xf16")
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, toks[0].Numeric.Digits, "f16")
	be.Equal(t, toks[0].Numeric.Suffix, "")
}

func TestFloatWithExponent(t *testing.T) {
	toks, bag := lex(t, "1.5e10 2e-3")
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, toks[0].Numeric.IsFloat, true)
	be.Equal(t, toks[1].Numeric.IsFloat, true)
}

func TestRangeDoesNotEatFloat(t *testing.T) {
	// 1..10 must stay three tokens, not a malformed float
	toks, bag := lex(t, "1..10 0..=5")
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, kinds(toks), []tokens.TOKEN{
		tokens.NUMBER_TOKEN, tokens.RANGE_TOKEN, tokens.NUMBER_TOKEN,
		tokens.NUMBER_TOKEN, tokens.RANGE_INCLUSIVE_TOKEN, tokens.NUMBER_TOKEN,
		tokens.EOF_TOKEN,
	})
}

func TestOperatorsLongestFirst(t *testing.T) {
	toks, bag := lex(t, "a <<= b") // no <<= operator: lexes as << then =
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, toks[1].Kind, tokens.SHIFT_LEFT_TOKEN)
	be.Equal(t, toks[2].Kind, tokens.EQUALS_TOKEN)

	toks, _ = lex(t, "x::y->z")
	be.Equal(t, toks[1].Kind, tokens.SCOPE_TOKEN)
	be.Equal(t, toks[3].Kind, tokens.ARROW_TOKEN)
}

func TestStringEscapes(t *testing.T) {
	toks, bag := lex(t, `"a\nb\t\"c\""`)
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, toks[0].Kind, tokens.STRING_TOKEN)
	be.Equal(t, toks[0].Value, "a\nb\t\"c\"")
}

func TestUnterminatedString(t *testing.T) {
	_, bag := lex(t, "\"never closed\nlet x;")
	be.Equal(t, bag.HasErrors(), true)
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diagnostics.ErrUnterminatedString {
			found = true
		}
	}
	be.True(t, found)
}

func TestCommentsSkipped(t *testing.T) {
	toks, bag := lex(t, "let x; // trailing\n/* block\ncomment */ let y;")
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, kinds(toks), []tokens.TOKEN{
		tokens.LET_TOKEN, tokens.IDENTIFIER_TOKEN, tokens.SEMICOLON_TOKEN,
		tokens.LET_TOKEN, tokens.IDENTIFIER_TOKEN, tokens.SEMICOLON_TOKEN,
		tokens.EOF_TOKEN,
	})
}

func TestGarbageInputTerminates(t *testing.T) {
	// every unmatched byte must produce a diagnostic and advance
	toks, bag := lex(t, "let @ # ` x;")
	be.Equal(t, bag.HasErrors(), true)
	be.Equal(t, toks[len(toks)-1].Kind, tokens.EOF_TOKEN)
}

func TestPositionsAdvance(t *testing.T) {
	toks, _ := lex(t, "a\n  b")
	be.Equal(t, toks[0].Start.Line, 1)
	be.Equal(t, toks[1].Start.Line, 2)
	be.Equal(t, toks[1].Start.Column, 3)
}

func TestLongSourceStaysLinear(t *testing.T) {
	src := strings.Repeat("let x; ", 500)
	toks, bag := lex(t, src)
	be.Equal(t, bag.HasErrors(), false)
	be.Equal(t, len(toks), 500*3+1)
}
