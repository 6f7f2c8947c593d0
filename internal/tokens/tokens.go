package tokens

import (
	"fmt"
	"os"

	"github.com/Cloth-Foundation/Cloth-sub001/colors"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

type TOKEN string

const (
	//keywords
	MODULE_TOKEN    TOKEN = "mod"
	IMPORT_TOKEN    TOKEN = "import"
	AS_TOKEN        TOKEN = "as"
	PUBLIC_TOKEN    TOKEN = "pub"
	PRIVATE_TOKEN   TOKEN = "priv"
	PROTECTED_TOKEN TOKEN = "prot"
	FINAL_TOKEN     TOKEN = "final"
	FUNCTION_TOKEN  TOKEN = "fn"
	CLASS_TOKEN     TOKEN = "class"
	STRUCT_TOKEN    TOKEN = "struct"
	ENUM_TOKEN      TOKEN = "enum"
	BUILDER_TOKEN   TOKEN = "builder"
	LET_TOKEN       TOKEN = "let"
	VAR_TOKEN       TOKEN = "var"
	IF_TOKEN        TOKEN = "if"
	ELIF_TOKEN      TOKEN = "elif"
	ELSE_TOKEN      TOKEN = "else"
	WHILE_TOKEN     TOKEN = "while"
	DO_TOKEN        TOKEN = "do"
	LOOP_TOKEN      TOKEN = "loop"
	REV_TOKEN       TOKEN = "rev"
	STEP_TOKEN      TOKEN = "step"
	RETURN_TOKEN    TOKEN = "ret"
	BREAK_TOKEN     TOKEN = "break"
	CONTINUE_TOKEN  TOKEN = "continue"
	TRUE_TOKEN      TOKEN = "true"
	FALSE_TOKEN     TOKEN = "false"
	NULL_TOKEN      TOKEN = "null"

	IDENTIFIER_TOKEN TOKEN = "identifier"

	//literal classes
	NUMBER_TOKEN TOKEN = "numeric literal"
	STRING_TOKEN TOKEN = "string literal"
	CHAR_TOKEN   TOKEN = "char literal"

	//range operators
	RANGE_TOKEN           TOKEN = ".."  // exclusive end (0..10 -> 0,1,...,9)
	RANGE_INCLUSIVE_TOKEN TOKEN = "..=" // inclusive end (0..=10 -> 0,1,...,10)
	//increment and decrement
	PLUS_PLUS_TOKEN   TOKEN = "++"
	MINUS_MINUS_TOKEN TOKEN = "--"
	//logical operators
	AND_TOKEN TOKEN = "&&"
	OR_TOKEN  TOKEN = "||"
	NOT_TOKEN TOKEN = "!"
	//bitwise operators
	BIT_AND_TOKEN     TOKEN = "&"
	BIT_OR_TOKEN      TOKEN = "|"
	BIT_XOR_TOKEN     TOKEN = "^"
	BIT_NOT_TOKEN     TOKEN = "~"
	SHIFT_LEFT_TOKEN  TOKEN = "<<"
	SHIFT_RIGHT_TOKEN TOKEN = ">>"
	//arithmetic operators
	PLUS_TOKEN  TOKEN = "+"
	MINUS_TOKEN TOKEN = "-"
	MUL_TOKEN   TOKEN = "*"
	DIV_TOKEN   TOKEN = "/"
	MOD_TOKEN   TOKEN = "%"
	//comparison operators
	LESS_EQUAL_TOKEN    TOKEN = "<="
	GREATER_EQUAL_TOKEN TOKEN = ">="
	NOT_EQUAL_TOKEN     TOKEN = "!="
	DOUBLE_EQUAL_TOKEN  TOKEN = "=="
	LESS_TOKEN          TOKEN = "<"
	GREATER_TOKEN       TOKEN = ">"
	//assignment
	EQUALS_TOKEN       TOKEN = "="
	PLUS_EQUALS_TOKEN  TOKEN = "+="
	MINUS_EQUALS_TOKEN TOKEN = "-="
	MUL_EQUALS_TOKEN   TOKEN = "*="
	DIV_EQUALS_TOKEN   TOKEN = "/="
	MOD_EQUALS_TOKEN   TOKEN = "%="
	//delimiters
	SCOPE_TOKEN     TOKEN = "::"
	COLON_TOKEN     TOKEN = ":"
	OPEN_PAREN      TOKEN = "("
	CLOSE_PAREN     TOKEN = ")"
	OPEN_BRACKET    TOKEN = "["
	CLOSE_BRACKET   TOKEN = "]"
	OPEN_CURLY      TOKEN = "{"
	CLOSE_CURLY     TOKEN = "}"
	COMMA_TOKEN     TOKEN = ","
	DOT_TOKEN       TOKEN = "."
	SEMICOLON_TOKEN TOKEN = ";"
	ARROW_TOKEN     TOKEN = "->"
	QUESTION_TOKEN  TOKEN = "?"

	INVALID_TOKEN TOKEN = "invalid"
	EOF_TOKEN     TOKEN = "end_of_file"
)

var keyWordsMap map[TOKEN]bool = map[TOKEN]bool{
	MODULE_TOKEN:    true,
	IMPORT_TOKEN:    true,
	AS_TOKEN:        true,
	PUBLIC_TOKEN:    true,
	PRIVATE_TOKEN:   true,
	PROTECTED_TOKEN: true,
	FINAL_TOKEN:     true,
	FUNCTION_TOKEN:  true,
	CLASS_TOKEN:     true,
	STRUCT_TOKEN:    true,
	ENUM_TOKEN:      true,
	BUILDER_TOKEN:   true,
	LET_TOKEN:       true,
	VAR_TOKEN:       true,
	IF_TOKEN:        true,
	ELIF_TOKEN:      true,
	ELSE_TOKEN:      true,
	WHILE_TOKEN:     true,
	DO_TOKEN:        true,
	LOOP_TOKEN:      true,
	REV_TOKEN:       true,
	STEP_TOKEN:      true,
	RETURN_TOKEN:    true,
	BREAK_TOKEN:     true,
	CONTINUE_TOKEN:  true,
	TRUE_TOKEN:      true,
	FALSE_TOKEN:     true,
	NULL_TOKEN:      true,
}

var builtinTypes map[string]bool = map[string]bool{
	"i8":  true,
	"i16": true,
	"i32": true,
	"i64": true,

	"u8":  true,
	"u16": true,
	"u32": true,
	"u64": true,

	"f16": true,
	"f32": true,
	"f64": true,

	"bool":   true,
	"bit":    true,
	"byte":   true,
	"char":   true,
	"string": true,
	"void":   true,
}

func IsKeyword(token string) bool {
	_, ok := keyWordsMap[TOKEN(token)]
	return ok
}

func IsBuiltinType(token string) bool {
	_, ok := builtinTypes[token]
	return ok
}

// NumericLiteral is the structured payload the scanner attaches to a
// NUMBER_TOKEN: digits with separators stripped, the radix they are
// written in, and the optional type suffix (i8..u64, f16..f64).
type NumericLiteral struct {
	Digits  string
	Base    int // 2, 8, 10, or 16
	IsFloat bool
	Suffix  string
}

type Token struct {
	Kind    TOKEN
	Value   string
	Numeric *NumericLiteral // non-nil only for NUMBER_TOKEN
	Start   source.Position
	End     source.Position
}

func (t *Token) Debug(filename string) {
	colors.GREY.Fprintf(os.Stderr, "%s:%d:%d ", filename, t.Start.Line, t.Start.Column)
	if t.Value == string(t.Kind) {
		fmt.Fprintf(os.Stderr, "%q\n", t.Value)
	} else {
		fmt.Fprintf(os.Stderr, "%q ('%v')\n", t.Value, t.Kind)
	}
}

func NewToken(kind TOKEN, value string, start source.Position, end source.Position) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Start: start,
		End:   end,
	}
}
