package frugurt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// formatCodeFrame shows the line holding span.Start and underlines the span.
// Spans that continue past the end of the line are underlined to its end.
func formatCodeFrame(source string, span Span) string {
	pos := span.Start
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineText = strings.ReplaceAll(lineText, "\t", " ")
	lineLen := utf8.RuneCountInString(lineText)

	column := max(pos.Column, 1)
	column = min(column, lineLen+1)

	width := 1
	if span.End.Line == pos.Line && span.End.Column > column {
		width = span.End.Column - column
	} else if span.End.Line > pos.Line {
		width = max(lineLen+1-column, 1)
	}

	label := strconv.Itoa(pos.Line)
	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s%s",
		pos.Line,
		column,
		label,
		lineText,
		strings.Repeat(" ", len(label)),
		strings.Repeat(" ", column-1),
		strings.Repeat("^", width),
	)
}
