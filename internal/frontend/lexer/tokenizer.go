package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Cloth-Foundation/Cloth-sub001/internal/diagnostics"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/tokens"
)

type regexHandler func(lex *Lexer, regex *regexp.Regexp)

type regexPattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

// numberPattern matches hex, binary, octal, decimal, and float literals
// with optional underscore separators and an optional type suffix.
const numberPattern = `(0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|[0-9][0-9_]*(\.[0-9_]+)?([eE][+-]?[0-9]+)?)(i8|i16|i32|i64|u8|u16|u32|u64|f16|f32|f64)?`

type Lexer struct {
	diagnostics *diagnostics.Bag
	Tokens      []tokens.Token
	Position    source.Position
	sourceCode  []byte
	patterns    []regexPattern
	FilePath    string
}

func (lex *Lexer) advance(match string) {
	lex.Position.Advance(match)
}

func (lex *Lexer) push(token tokens.Token) {
	lex.Tokens = append(lex.Tokens, token)
}

func (lex *Lexer) remainder() string {
	return string(lex.sourceCode)[lex.Position.Index:]
}

func (lex *Lexer) atEOF() bool {
	return lex.Position.Index >= len(lex.sourceCode)
}

func New(filepath, content string, diag *diagnostics.Bag) *Lexer {
	lex := &Lexer{
		sourceCode: []byte(content),
		Tokens:     make([]tokens.Token, 0),
		Position: source.Position{
			Line:   1,
			Column: 1,
			Index:  0,
		},

		diagnostics: diag,

		FilePath: filepath,

		patterns: []regexPattern{
			{regexp.MustCompile(`\s+`), skipHandler},
			{regexp.MustCompile(`\/\/.*`), skipHandler},
			{regexp.MustCompile(`\/\*[\s\S]*?\*\/`), skipHandler},
			{regexp.MustCompile(`\/\*[\s\S]*`), unterminatedCommentHandler},
			{regexp.MustCompile(`"(\\.|[^"\\\n])*"`), stringHandler},
			{regexp.MustCompile(`"(\\.|[^"\\\n])*`), unterminatedStringHandler},
			{regexp.MustCompile(`'(\\.|[^'\\])'`), charHandler},
			{regexp.MustCompile(numberPattern), numberHandler},
			{regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`), identifierHandler},
			{regexp.MustCompile(`\+\+`), defaultHandler(tokens.PLUS_PLUS_TOKEN)},
			{regexp.MustCompile(`\-\-`), defaultHandler(tokens.MINUS_MINUS_TOKEN)},
			{regexp.MustCompile(`\->`), defaultHandler(tokens.ARROW_TOKEN)},
			{regexp.MustCompile(`::`), defaultHandler(tokens.SCOPE_TOKEN)},
			{regexp.MustCompile(`!=`), defaultHandler(tokens.NOT_EQUAL_TOKEN)},
			{regexp.MustCompile(`\+=`), defaultHandler(tokens.PLUS_EQUALS_TOKEN)},
			{regexp.MustCompile(`-=`), defaultHandler(tokens.MINUS_EQUALS_TOKEN)},
			{regexp.MustCompile(`\*=`), defaultHandler(tokens.MUL_EQUALS_TOKEN)},
			{regexp.MustCompile(`/=`), defaultHandler(tokens.DIV_EQUALS_TOKEN)},
			{regexp.MustCompile(`%=`), defaultHandler(tokens.MOD_EQUALS_TOKEN)},
			{regexp.MustCompile(`\.\.=`), defaultHandler(tokens.RANGE_INCLUSIVE_TOKEN)},
			{regexp.MustCompile(`\.\.`), defaultHandler(tokens.RANGE_TOKEN)},
			{regexp.MustCompile(`&&`), defaultHandler(tokens.AND_TOKEN)},
			{regexp.MustCompile(`\|\|`), defaultHandler(tokens.OR_TOKEN)},
			{regexp.MustCompile(`<<`), defaultHandler(tokens.SHIFT_LEFT_TOKEN)},
			{regexp.MustCompile(`>>`), defaultHandler(tokens.SHIFT_RIGHT_TOKEN)},
			{regexp.MustCompile(`<=`), defaultHandler(tokens.LESS_EQUAL_TOKEN)},
			{regexp.MustCompile(`>=`), defaultHandler(tokens.GREATER_EQUAL_TOKEN)},
			{regexp.MustCompile(`==`), defaultHandler(tokens.DOUBLE_EQUAL_TOKEN)},
			{regexp.MustCompile(`&`), defaultHandler(tokens.BIT_AND_TOKEN)},
			{regexp.MustCompile(`\|`), defaultHandler(tokens.BIT_OR_TOKEN)},
			{regexp.MustCompile(`\^`), defaultHandler(tokens.BIT_XOR_TOKEN)},
			{regexp.MustCompile(`~`), defaultHandler(tokens.BIT_NOT_TOKEN)},
			{regexp.MustCompile(`!`), defaultHandler(tokens.NOT_TOKEN)},
			{regexp.MustCompile(`\-`), defaultHandler(tokens.MINUS_TOKEN)},
			{regexp.MustCompile(`\+`), defaultHandler(tokens.PLUS_TOKEN)},
			{regexp.MustCompile(`\*`), defaultHandler(tokens.MUL_TOKEN)},
			{regexp.MustCompile(`/`), defaultHandler(tokens.DIV_TOKEN)},
			{regexp.MustCompile(`%`), defaultHandler(tokens.MOD_TOKEN)},
			{regexp.MustCompile(`<`), defaultHandler(tokens.LESS_TOKEN)},
			{regexp.MustCompile(`>`), defaultHandler(tokens.GREATER_TOKEN)},
			{regexp.MustCompile(`=`), defaultHandler(tokens.EQUALS_TOKEN)},
			{regexp.MustCompile(`:`), defaultHandler(tokens.COLON_TOKEN)},
			{regexp.MustCompile(`;`), defaultHandler(tokens.SEMICOLON_TOKEN)},
			{regexp.MustCompile(`\(`), defaultHandler(tokens.OPEN_PAREN)},
			{regexp.MustCompile(`\)`), defaultHandler(tokens.CLOSE_PAREN)},
			{regexp.MustCompile(`\[`), defaultHandler(tokens.OPEN_BRACKET)},
			{regexp.MustCompile(`\]`), defaultHandler(tokens.CLOSE_BRACKET)},
			{regexp.MustCompile(`\{`), defaultHandler(tokens.OPEN_CURLY)},
			{regexp.MustCompile(`\}`), defaultHandler(tokens.CLOSE_CURLY)},
			{regexp.MustCompile(","), defaultHandler(tokens.COMMA_TOKEN)},
			{regexp.MustCompile(`\.`), defaultHandler(tokens.DOT_TOKEN)},
			{regexp.MustCompile(`\?`), defaultHandler(tokens.QUESTION_TOKEN)},
		},
	}
	return lex
}

func defaultHandler(token tokens.TOKEN) regexHandler {
	return func(lex *Lexer, _ *regexp.Regexp) {
		start := lex.Position
		lex.advance(string(token))
		end := lex.Position
		lex.push(tokens.NewToken(token, string(token), start, end))
	}
}

func identifierHandler(lex *Lexer, regex *regexp.Regexp) {
	identifier := regex.FindString(lex.remainder())
	start := lex.Position
	lex.advance(identifier)
	end := lex.Position
	if tokens.IsKeyword(identifier) {
		lex.push(tokens.NewToken(tokens.TOKEN(identifier), identifier, start, end))
	} else {
		lex.push(tokens.NewToken(tokens.IDENTIFIER_TOKEN, identifier, start, end))
	}
}

var suffixPattern = regexp.MustCompile(`(i8|i16|i32|i64|u8|u16|u32|u64|f16|f32|f64)$`)

func isHexBodyByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' || c == '_'
}

func numberHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	end := lex.Position

	body := match
	suffix := ""
	// hex digits are consumed greedily, so only a suffix starting with a
	// non-hex letter (i or u) can follow a hex body; an f suffix stays
	// part of the digits
	if strings.HasPrefix(match, "0x") || strings.HasPrefix(match, "0X") {
		i := 2
		for i < len(match) && isHexBodyByte(match[i]) {
			i++
		}
		body, suffix = match[:i], match[i:]
	} else if s := suffixPattern.FindString(body); s != "" {
		suffix = s
		body = body[:len(body)-len(s)]
	}

	base := 10
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		base = 16
		body = body[2:]
	case strings.HasPrefix(body, "0b"), strings.HasPrefix(body, "0B"):
		base = 2
		body = body[2:]
	case strings.HasPrefix(body, "0o"), strings.HasPrefix(body, "0O"):
		base = 8
		body = body[2:]
	}

	digits := strings.ReplaceAll(body, "_", "")
	isFloat := base == 10 && (strings.Contains(digits, ".") || strings.ContainsAny(digits, "eE"))

	if digits == "" {
		lex.diagnostics.Add(
			diagnostics.NewError("invalid numeric literal").
				WithCode(diagnostics.ErrInvalidNumber).
				WithPrimaryLabel(source.NewLocation(&lex.FilePath, &start, &end), "no digits after base prefix"),
		)
	}

	tok := tokens.NewToken(tokens.NUMBER_TOKEN, match, start, end)
	tok.Numeric = &tokens.NumericLiteral{
		Digits:  digits,
		Base:    base,
		IsFloat: isFloat,
		Suffix:  suffix,
	}
	lex.push(tok)
}

func stringHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	end := lex.Position
	value, ok := unescape(match[1 : len(match)-1])
	if !ok {
		lex.diagnostics.Add(
			diagnostics.NewError("invalid escape sequence in string literal").
				WithCode(diagnostics.ErrInvalidEscape).
				WithPrimaryLabel(source.NewLocation(&lex.FilePath, &start, &end), ""),
		)
	}
	lex.push(tokens.NewToken(tokens.STRING_TOKEN, value, start, end))
}

func unterminatedStringHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	end := lex.Position
	lex.diagnostics.Add(
		diagnostics.NewError("unterminated string literal").
			WithCode(diagnostics.ErrUnterminatedString).
			WithPrimaryLabel(source.NewLocation(&lex.FilePath, &start, &end), "string opened here is never closed").
			WithHelp(`add a closing '"'`),
	)
	lex.push(tokens.NewToken(tokens.STRING_TOKEN, match[1:], start, end))
}

func unterminatedCommentHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	end := lex.Position
	lex.diagnostics.Add(
		diagnostics.NewError("unterminated block comment").
			WithCode(diagnostics.ErrUnterminatedComment).
			WithPrimaryLabel(source.NewLocation(&lex.FilePath, &start, &end), "comment opened here is never closed"),
	)
}

func charHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	start := lex.Position
	lex.advance(match)
	end := lex.Position
	value, ok := unescape(match[1 : len(match)-1])
	if !ok || len([]rune(value)) != 1 {
		lex.diagnostics.Add(
			diagnostics.NewError("invalid char literal").
				WithCode(diagnostics.ErrUnterminatedChar).
				WithPrimaryLabel(source.NewLocation(&lex.FilePath, &start, &end), "must contain exactly one character"),
		)
		value = "\x00"
	}
	lex.push(tokens.NewToken(tokens.CHAR_TOKEN, value, start, end))
}

func skipHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	lex.advance(match)
}

// unescape resolves backslash escapes. The second result is false when
// an unknown escape was found.
func unescape(s string) (string, bool) {
	if !strings.Contains(s, "\\") {
		return s, true
	}
	var b strings.Builder
	ok := true
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
			ok = false
		}
	}
	return b.String(), ok
}

// Tokenize scans the whole source and returns the token slice, always
// terminated by an EOF token.
func (lex *Lexer) Tokenize(debug bool) []tokens.Token {
	for !lex.atEOF() {
		matched := false
		for _, pattern := range lex.patterns {
			loc := pattern.regex.FindStringIndex(lex.remainder())
			if loc != nil && loc[0] == 0 {
				pattern.handler(lex, pattern.regex)
				matched = true
				break
			}
		}

		if !matched {
			tok := lex.remainder()[0]
			errMsg := fmt.Sprintf("unrecognized character '%c'", tok)
			pos := lex.Position
			lex.advance(string(tok))
			lex.diagnostics.Add(
				diagnostics.NewError(errMsg).
					WithCode(diagnostics.ErrUnexpectedCharacter).
					WithPrimaryLabel(source.NewLocation(&lex.FilePath, &pos, &lex.Position), ""),
			)
		}
	}

	lex.push(tokens.NewToken(tokens.EOF_TOKEN, "end of file", lex.Position, lex.Position))

	if debug {
		for _, token := range lex.Tokens {
			token.Debug(lex.FilePath)
		}
	}

	return lex.Tokens
}
