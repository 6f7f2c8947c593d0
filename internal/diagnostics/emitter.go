package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Cloth-Foundation/Cloth-sub001/colors"
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// AddSource registers in-memory content for a path.
func (sc *SourceCache) AddSource(filepath, content string) {
	sc.files[filepath] = strings.Split(content, "\n")
}

// GetLine retrieves a specific 1-indexed line from a source file.
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	if lines, ok := sc.files[filepath]; ok {
		if line > 0 && line <= len(lines) {
			return lines[line-1], nil
		}
		return "", fmt.Errorf("line %d out of range", line)
	}

	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	sc.files[filepath] = lines

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

// Emitter renders diagnostics with source excerpts and caret underlines.
type Emitter struct {
	cache  *SourceCache
	writer io.Writer
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{
		cache:  NewSourceCache(),
		writer: w,
	}
}

func severityColor(s Severity) colors.COLOR {
	switch s {
	case Error:
		return colors.BOLD_RED
	case Warning:
		return colors.BOLD_YELLOW
	default:
		return colors.BOLD_CYAN
	}
}

func (e *Emitter) Emit(diag *Diagnostic) {
	header := diag.Severity.String()
	if diag.Code != "" {
		header += "[" + diag.Code + "]"
	}
	severityColor(diag.Severity).Fprintf(e.writer, "%s", header)
	colors.BOLD.Fprintf(e.writer, ": %s\n", diag.Message)

	width := e.lineNumWidth(diag)
	for i, label := range diag.Labels {
		e.emitLabel(diag.Severity, label, width, i == 0)
	}

	gutter := strings.Repeat(" ", width+1)
	for _, note := range diag.Notes {
		colors.GREY.Fprintf(e.writer, "%s= ", gutter)
		fmt.Fprintf(e.writer, "note: %s\n", note.Message)
	}
	if diag.Help != "" {
		colors.GREY.Fprintf(e.writer, "%s= ", gutter)
		colors.CYAN.Fprintf(e.writer, "help: ")
		fmt.Fprintf(e.writer, "%s\n", diag.Help)
	}
	fmt.Fprintln(e.writer)
}

// lineNumWidth is the gutter width needed for the widest line number
// shown by any label of the diagnostic.
func (e *Emitter) lineNumWidth(diag *Diagnostic) int {
	maxLine := 1
	for _, label := range diag.Labels {
		if label.Location != nil && label.Location.End != nil && label.Location.End.Line > maxLine {
			maxLine = label.Location.End.Line
		}
	}
	return len(fmt.Sprintf("%d", maxLine))
}

func (e *Emitter) emitLabel(sev Severity, label Label, width int, first bool) {
	loc := label.Location
	if loc == nil || loc.Start == nil || loc.Filename == nil {
		if label.Message != "" {
			fmt.Fprintf(e.writer, "%s%s\n", strings.Repeat(" ", width+1), label.Message)
		}
		return
	}
	filepath := *loc.Filename
	gutter := strings.Repeat(" ", width)

	if first {
		colors.BLUE.Fprintf(e.writer, "%s--> ", gutter)
		fmt.Fprintf(e.writer, "%s:%d:%d\n", filepath, loc.Start.Line, loc.Start.Column)
	}
	colors.BLUE.Fprintf(e.writer, "%s |\n", gutter)

	end := loc.End
	if end == nil {
		end = loc.Start
	}
	for line := loc.Start.Line; line <= end.Line; line++ {
		text, err := e.cache.GetLine(filepath, line)
		if err != nil {
			continue
		}
		colors.BLUE.Fprintf(e.writer, "%*d | ", width, line)
		fmt.Fprintln(e.writer, text)

		startCol := 1
		if line == loc.Start.Line {
			startCol = loc.Start.Column
		}
		endCol := len(text) + 1
		if line == end.Line {
			endCol = end.Column
		}
		if endCol <= startCol {
			endCol = startCol + 1
		}

		marker := "^"
		markerColor := severityColor(sev)
		if label.Style == Secondary {
			marker = "-"
			markerColor = colors.BLUE
		}
		colors.BLUE.Fprintf(e.writer, "%s | ", gutter)
		underline := strings.Repeat(" ", startCol-1) + strings.Repeat(marker, endCol-startCol)
		if line == end.Line && label.Message != "" {
			markerColor.Fprintf(e.writer, "%s %s\n", underline, label.Message)
		} else {
			markerColor.Fprintf(e.writer, "%s\n", underline)
		}
	}
}
