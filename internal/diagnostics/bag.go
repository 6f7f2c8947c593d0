package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Cloth-Foundation/Cloth-sub001/colors"
)

const (
	compileFailedMsg          = "\nCompilation failed with %d error(s)"
	andWarningMsg             = " and %d warning(s)"
	compileSuccessWithWarning = "\nCompilation succeeded with %d warning(s)\n"
)

// Bag collects diagnostics across every front-end pass. Diagnostics are
// appended in pass order and never abort the pipeline.
type Bag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
	sourceCache *SourceCache
}

func NewBag() *Bag {
	return &Bag{
		diagnostics: make([]*Diagnostic, 0),
		sourceCache: NewSourceCache(),
	}
}

// AddSourceContent registers in-memory source text for a path so the
// emitter can render excerpts without touching the filesystem.
func (b *Bag) AddSourceContent(filepath, content string) {
	b.sourceCache.AddSource(filepath, content)
}

func (b *Bag) Add(diag *Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diagnostics = append(b.diagnostics, diag)

	switch diag.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
}

func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a copy of all collected diagnostics.
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*Diagnostic, len(b.diagnostics))
	copy(result, b.diagnostics)
	return result
}

func (b *Bag) EmitAll() {
	emitter := &Emitter{cache: b.sourceCache, writer: os.Stderr}

	b.mu.Lock()
	diagnostics := make([]*Diagnostic, len(b.diagnostics))
	copy(diagnostics, b.diagnostics)
	b.mu.Unlock()

	for _, diag := range diagnostics {
		emitter.Emit(diag)
	}
	b.printSummary(os.Stderr)
}

// EmitAllToString renders all diagnostics to a string (with ANSI codes
// when color is enabled).
func (b *Bag) EmitAllToString() string {
	var buf bytes.Buffer
	emitter := &Emitter{cache: b.sourceCache, writer: &buf}

	b.mu.Lock()
	diagnostics := make([]*Diagnostic, len(b.diagnostics))
	copy(diagnostics, b.diagnostics)
	b.mu.Unlock()

	for _, diag := range diagnostics {
		emitter.Emit(diag)
	}
	b.printSummary(&buf)
	return buf.String()
}

func (b *Bag) printSummary(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.errorCount > 0 {
		colors.RED.Fprintf(w, compileFailedMsg, b.errorCount)
		if b.warnCount > 0 {
			colors.RED.Fprintf(w, andWarningMsg, b.warnCount)
		}
		fmt.Fprintln(w)
	} else if b.warnCount > 0 {
		colors.YELLOW.Fprintf(w, compileSuccessWithWarning, b.warnCount)
	}
}

// Clear removes all diagnostics.
func (b *Bag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = make([]*Diagnostic, 0)
	b.errorCount = 0
	b.warnCount = 0
}
