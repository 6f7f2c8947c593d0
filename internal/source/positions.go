package source

// Position is a location in a source file. Line and Column are 1-based,
// Index is the byte offset from the start of the file.
type Position struct {
	Line   int
	Column int
	Index  int
}

// Advance moves the position past the bytes of the given text, tracking
// newlines. Tabs advance the column by a fixed width of 4.
func (p *Position) Advance(text string) *Position {
	for _, r := range text {
		switch r {
		case '\n':
			p.Line++
			p.Column = 1
			p.Index++
		case '\t':
			p.Column += 4
			p.Index++
		default:
			p.Column++
			p.Index += len(string(r))
		}
	}
	return p
}

// Before reports whether p comes before other in the same file.
func (p *Position) Before(other *Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
