package errors

import (
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

// Format renders the error for terminal display.
func (e *MVVMError) Format() string {
	var b strings.Builder

	b.WriteString(color(colorRed+colorBold, "ERROR"))
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	b.WriteString(": " + e.Message + "\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "\n  %s\n", color(colorCyan, e.Location.String()))
		start := e.Location.Line - len(e.Context)/2
		for i, line := range e.Context {
			n := start + i
			marker := "  "
			if n == e.Location.Line {
				marker = color(colorRed, "→ ")
			}
			fmt.Fprintf(&b, "  %s%4d%s%s\n", marker, n, color(colorGray, " │ "), line)
		}
	}

	if e.Wrapped != nil {
		fmt.Fprintf(&b, "\n  %s\n", e.Wrapped.Error())
	}
	if e.Detail != "" {
		b.WriteString("\n")
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  " + line + "\n")
		}
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s%s\n", color(colorCyan, "Hint: "), e.Suggestion)
	}
	return b.String()
}

// FormatCompact returns a single-line rendering.
func (e *MVVMError) FormatCompact() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String() + ": ")
	}
	b.WriteString(e.Error())
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// Print writes err to w, formatted if it is an *MVVMError.
func Print(w io.Writer, err error) {
	if me, ok := err.(*MVVMError); ok {
		fmt.Fprint(w, me.Format())
		return
	}
	fmt.Fprintf(w, "%s %s\n", color(colorRed+colorBold, "ERROR:"), err.Error())
}
