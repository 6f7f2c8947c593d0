package diagnostics

import (
	"github.com/Cloth-Foundation/Cloth-sub001/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Label marks a span of code inside a diagnostic
type Label struct {
	Location *source.Location
	Message  string
	Style    LabelStyle
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // the main error location (underlined with ^)
	Secondary                   // additional context (underlined with -)
)

// Note carries extra information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic is one reported problem: a severity, a message, labeled
// source spans, and an optional fix-it hint.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // error code like "P0001"
	Labels   []Label
	Notes    []Note
	Help     string
}

func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

func NewWarning(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Warning,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

func NewInfo(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Info,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

func (d *Diagnostic) WithLabel(loc *source.Location, message string, style LabelStyle) *Diagnostic {
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
		Style:    style,
	})
	return d
}

// WithPrimaryLabel adds the main labeled location. A diagnostic carries at
// most one primary label; repeated calls keep the first.
func (d *Diagnostic) WithPrimaryLabel(loc *source.Location, message string) *Diagnostic {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return d
		}
	}
	d.Labels = append([]Label{{
		Location: loc,
		Message:  message,
		Style:    Primary,
	}}, d.Labels...)
	return d
}

// WithSecondaryLabel adds a context label. The primary label must exist.
func (d *Diagnostic) WithSecondaryLabel(loc *source.Location, message string) *Diagnostic {
	hasPrimary := false
	for _, label := range d.Labels {
		if label.Style == Primary {
			hasPrimary = true
			break
		}
	}
	if !hasPrimary {
		panic("cannot add secondary label without primary label")
	}
	return d.WithLabel(loc, message, Secondary)
}

func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// PrimaryLocation returns the span of the primary label, or nil.
func (d *Diagnostic) PrimaryLocation() *source.Location {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return label.Location
		}
	}
	return nil
}
