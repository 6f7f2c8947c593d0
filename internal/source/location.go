package source

import (
	"bufio"
	"fmt"
	"os"
)

// Location is a span of source text with inclusive start and end positions.
type Location struct {
	Start    *Position
	End      *Position
	Filename *string
}

func NewLocation(filename *string, start, end *Position) *Location {
	return &Location{
		Filename: filename,
		Start:    start,
		End:      end,
	}
}

// Merge returns the union span of a and b. Both must belong to the same
// file; the result runs from the earlier start to the later end so that a
// composite node's span always covers its first and last child exactly.
func Merge(a, b *Location) *Location {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := &Location{Filename: a.Filename, Start: a.Start, End: a.End}
	if b.Start != nil && (merged.Start == nil || b.Start.Before(merged.Start)) {
		merged.Start = b.Start
	}
	if b.End != nil && (merged.End == nil || merged.End.Before(b.End)) {
		merged.End = b.End
	}
	return merged
}

// Contains reports whether pos falls inside this span.
func (l *Location) Contains(pos *Position) bool {
	if l.Start.Line > pos.Line || (l.Start.Line == pos.Line && l.Start.Column > pos.Column) {
		return false
	}
	if l.End.Line < pos.Line || (l.End.Line == pos.Line && l.End.Column < pos.Column) {
		return false
	}
	return true
}

func (l *Location) String() string {
	if l.Start == nil || l.End == nil {
		return "location(unknown)"
	}
	return fmt.Sprintf("location(%d:%d - %d:%d)", l.Start.Line, l.Start.Column, l.End.Line, l.End.Column)
}

// GetSourceLines reads a file and splits it into lines.
func GetSourceLines(filepath string) ([]string, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return []string{}, nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, string(content[start:i]))
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, string(content[start:]))
	}
	return lines, nil
}

// GetSourceLinesRange reads only the given 1-indexed inclusive line range.
func GetSourceLinesRange(filepath string, startLine, endLine int) ([]string, error) {
	if startLine < 1 || endLine < startLine {
		return nil, fmt.Errorf("invalid line range: %d-%d", startLine, endLine)
	}

	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := make([]string, 0, endLine-startLine+1)
	currentLine := 0
	for scanner.Scan() {
		currentLine++
		if currentLine < startLine {
			continue
		}
		if currentLine > endLine {
			break
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 && currentLine < startLine {
		return nil, fmt.Errorf("line %d out of range (file has %d lines)", startLine, currentLine)
	}
	return lines, nil
}
