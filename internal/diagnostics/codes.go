package diagnostics

// Error codes for the Cloth compiler
const (
	// Lexer errors (L prefix)
	ErrUnexpectedCharacter = "L0001"
	ErrUnterminatedString  = "L0002"
	ErrInvalidNumber       = "L0003"
	ErrInvalidEscape       = "L0004"
	ErrUnterminatedComment = "L0005"
	ErrUnterminatedChar    = "L0006"

	// Parser errors (P prefix)
	ErrUnexpectedToken      = "P0001"
	ErrExpectedToken        = "P0002"
	ErrInvalidExpression    = "P0003"
	ErrInvalidStatement     = "P0004"
	ErrInvalidDeclaration   = "P0005"
	ErrMissingIdentifier    = "P0006"
	ErrMissingType          = "P0007"
	ErrMissingSemiCol       = "P0008"
	ErrInvalidAssignTarget  = "P0009"
	ErrDanglingModifier     = "P0010"
	ErrInvalidProjection    = "P0011"
	ErrMaxNestingDepth      = "P0012"

	// Scope/name errors (S prefix)
	ErrRedeclaredSymbol = "S0001"
	ErrUndefinedSymbol  = "S0002"
	ErrAccessViolation  = "S0003"

	// Type errors (T prefix)
	ErrTypeMismatch       = "T0001"
	ErrUnknownType        = "T0002"
	ErrInvalidOperation   = "T0003"
	ErrNotCallable        = "T0004"
	ErrWrongArgumentCount = "T0005"
	ErrInvalidAssignment  = "T0006"
	ErrNotIndexable       = "T0007"
	ErrFieldNotFound      = "T0008"
	ErrMissingField       = "T0009"
	ErrUnexpectedField    = "T0010"
	ErrEnumArity          = "T0011"
	ErrInvalidCast        = "T0012"
	ErrInvalidReturn      = "T0013"
	ErrMissingReturn      = "T0014"
	ErrLiteralOutOfRange  = "T0015"
	ErrConditionNotBool   = "T0016"
	ErrTernaryBranches    = "T0017"
	ErrNullAssignment     = "T0018"
	ErrFinalReassignment  = "T0019"
	ErrMissingBuilder     = "T0020"

	// Module/import errors (M prefix)
	ErrModuleNotFound    = "M0001"
	ErrCyclicImport      = "M0002"
	ErrInvalidImportPath = "M0003"
	ErrSymbolNotExported = "M0004"
	ErrVersionConstraint = "M0005"

	// Warnings (W prefix)
	WarnUnreachableCode = "W0001"
	WarnUnusedVariable  = "W0002"
)
