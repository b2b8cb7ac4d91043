package diag

import "strings"

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

func red(text string) string  { return color(colorRed, text) }
func cyan(text string) string { return color(colorCyan, text) }
func gray(text string) string { return color(colorGray, text) }
func bold(text string) string { return color(colorBold, text) }

// Format returns a multi-line rendering for terminal display.
func (d *Diagnostic) Format() string {
	var b strings.Builder

	b.WriteString(red(bold("ERROR ")))
	if d.Code != "" {
		b.WriteString(bold(d.Code + ": "))
	}
	b.WriteString(d.Message)
	b.WriteString("\n")

	if d.ElementID != "" || d.Component != "" {
		b.WriteString("  ")
		b.WriteString(gray("element: "))
		b.WriteString(cyan("#" + d.ElementID))
		if d.Component != "" {
			b.WriteString(gray(" component: "))
			b.WriteString(cyan(d.Component))
		}
		b.WriteString("\n")
	}

	if d.Detail != "" {
		for _, line := range wrapText(d.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if d.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(gray("cause: "))
		b.WriteString(d.Wrapped.Error())
		b.WriteString("\n")
	}

	if d.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(d.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a single-line rendering.
func (d *Diagnostic) FormatCompact() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(d.Category))
	b.WriteString("] ")
	if d.ElementID != "" {
		b.WriteString("#")
		b.WriteString(d.ElementID)
		b.WriteString(" ")
	}
	b.WriteString(d.Error())
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

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
