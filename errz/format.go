package errz

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with colors and source context.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorError    = color.New(color.FgRed)
	colorErrorHdr = color.New(color.FgHiRed, color.Bold)
	colorLocation = color.New(color.FgCyan)
	colorLineNum  = color.New(color.FgHiBlack)
	colorPipe     = color.New(color.FgHiBlack)
	colorSource   = color.New(color.FgWhite)
	colorCaret    = color.New(color.FgHiRed)
	colorNote     = color.New(color.FgHiBlue)
)

// FormattedError represents an error ready for display.
type FormattedError struct {
	Kind        string // "syntax error", "division by zero", etc.
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int               // For multi-character underlines
	SourceLines []SourceLineEntry // Lines of source shown for context
	Note        string            // Additional context
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // True if this is the line with the error
}

// Format formats the error as a string using a consistent Rust-like style.
func (f *Formatter) Format(err *FormattedError) string {
	var b strings.Builder

	// Line number width for consistent alignment
	lineNumWidth := 2
	if err.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", err.Line))
	}

	// Error header: "syntax error: message"
	f.writeHeader(&b, err)

	// Location arrow: "  --> file.abacus:10:5"
	f.writeLocation(&b, err, lineNumWidth)

	// Source context with line numbers
	f.writeSource(&b, err, lineNumWidth)

	// Note
	if err.Note != "" {
		f.writeNote(&b, err.Note, lineNumWidth)
	}

	return b.String()
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	if f.UseColor {
		b.WriteString(colorErrorHdr.Sprint(label))
		b.WriteString(colorError.Sprint(": "))
	} else {
		b.WriteString(label)
		b.WriteString(": ")
	}
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}

	padding := strings.Repeat(" ", lineNumWidth)

	loc := ""
	if err.Filename != "" {
		loc = err.Filename
		if err.Line > 0 {
			loc += fmt.Sprintf(":%d:%d", err.Line, err.Column)
		}
	} else if err.Line > 0 {
		loc = fmt.Sprintf("%d:%d", err.Line, err.Column)
	}

	if f.UseColor {
		b.WriteString(colorLineNum.Sprint(padding))
		b.WriteString(colorLocation.Sprint("--> "))
		b.WriteString(colorLocation.Sprint(loc))
	} else {
		b.WriteString(padding)
		b.WriteString("--> ")
		b.WriteString(loc)
	}
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, lineNumWidth int) {
	if len(err.SourceLines) == 0 {
		return
	}

	padding := strings.Repeat(" ", lineNumWidth)

	// Empty pipe line for visual separation
	if f.UseColor {
		b.WriteString(colorLineNum.Sprint(padding))
		b.WriteString(colorPipe.Sprint(" |\n"))
	} else {
		b.WriteString(padding)
		b.WriteString(" |\n")
	}

	for _, line := range err.SourceLines {
		// Line number: " 6 |"
		lineNumStr := fmt.Sprintf("%*d", lineNumWidth, line.Number)
		if f.UseColor {
			b.WriteString(colorLineNum.Sprint(lineNumStr))
			b.WriteString(colorPipe.Sprint(" | "))
			b.WriteString(colorSource.Sprint(line.Text))
		} else {
			b.WriteString(lineNumStr)
			b.WriteString(" | ")
			b.WriteString(line.Text)
		}
		b.WriteString("\n")

		// Caret line for the main error line
		if line.IsMain && err.Column > 0 {
			if f.UseColor {
				b.WriteString(colorLineNum.Sprint(padding))
				b.WriteString(colorPipe.Sprint(" | "))
			} else {
				b.WriteString(padding)
				b.WriteString(" | ")
			}

			// Spaces to reach the error column
			b.WriteString(strings.Repeat(" ", err.Column-1))

			// Carets under the error
			caretLen := 1
			if err.EndColumn > err.Column {
				caretLen = err.EndColumn - err.Column + 1
			}
			carets := strings.Repeat("^", caretLen)
			if f.UseColor {
				b.WriteString(colorCaret.Sprint(carets))
			} else {
				b.WriteString(carets)
			}
			b.WriteString("\n")
		}
	}
}

func (f *Formatter) writeNote(b *strings.Builder, note string, lineNumWidth int) {
	padding := strings.Repeat(" ", lineNumWidth)

	if f.UseColor {
		b.WriteString(colorLineNum.Sprint(padding))
		b.WriteString(colorPipe.Sprint(" = "))
		b.WriteString(colorNote.Sprint("note: "))
	} else {
		b.WriteString(padding)
		b.WriteString(" = ")
		b.WriteString("note: ")
	}
	b.WriteString(note)
	b.WriteString("\n")
}
