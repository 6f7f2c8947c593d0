package colors

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type COLOR string

const (
	RESET  COLOR = "\033[0m"
	BOLD   COLOR = "\033[1m"
	RED    COLOR = "\033[31m"
	GREEN  COLOR = "\033[32m"
	YELLOW COLOR = "\033[33m"
	BLUE   COLOR = "\033[34m"
	PURPLE COLOR = "\033[35m"
	CYAN   COLOR = "\033[36m"
	WHITE  COLOR = "\033[37m"
	GREY   COLOR = "\033[90m"

	BOLD_RED    COLOR = "\033[1;31m"
	BOLD_YELLOW COLOR = "\033[1;33m"
	BOLD_BLUE   COLOR = "\033[1;34m"
	BOLD_CYAN   COLOR = "\033[1;36m"
)

// enabled is true when stdout is a terminal. Disable() turns color off for
// the whole process (the --no-color flag).
var enabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func Disable() { enabled = false }

func Enabled() bool { return enabled }

func (c COLOR) code() string {
	if !enabled {
		return ""
	}
	return string(c)
}

func (c COLOR) reset() string {
	if !enabled {
		return ""
	}
	return string(RESET)
}

func (c COLOR) Printf(format string, args ...any) {
	fmt.Printf(c.code()+format+c.reset(), args...)
}

func (c COLOR) Println(args ...any) {
	fmt.Print(c.code())
	fmt.Println(args...)
	fmt.Print(c.reset())
}

func (c COLOR) Print(args ...any) {
	fmt.Print(c.code())
	fmt.Print(args...)
	fmt.Print(c.reset())
}

func (c COLOR) Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, c.code()+format+c.reset(), args...)
}

func (c COLOR) Fprintln(w io.Writer, args ...any) {
	fmt.Fprint(w, c.code())
	fmt.Fprintln(w, args...)
	fmt.Fprint(w, c.reset())
}

func (c COLOR) Fprint(w io.Writer, args ...any) {
	fmt.Fprint(w, c.code())
	fmt.Fprint(w, args...)
	fmt.Fprint(w, c.reset())
}

func (c COLOR) Sprintf(format string, args ...any) string {
	return c.code() + fmt.Sprintf(format, args...) + c.reset()
}

func (c COLOR) Sprint(args ...any) string {
	return c.code() + fmt.Sprint(args...) + c.reset()
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	result := ""
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			if (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z') {
				inEscape = false
			}
			continue
		}
		result += string(s[i])
	}
	return result
}
