package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	tableCellMaxWidth = 50
	tableCellEllipsis = "..."
)

// TableBuilder collects rows and renders them as an aligned table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated row capacity.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (b *TableBuilder) AddRow(row []string) {
	b.rows = append(b.rows, row)
}

// String renders the collected rows.
func (b *TableBuilder) String() string {
	return FormatTable(b.headers, b.rows)
}

// FormatTable renders headers and rows as columns separated by two spaces.
// Styled cells are measured by their visible width, not their byte length.
func FormatTable(headers []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, sanitizeRow(headers))
	for _, row := range rows {
		table = append(table, sanitizeRow(row))
	}

	widths := make([]int, len(headers))
	for _, row := range table {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var out strings.Builder
	for _, row := range table {
		for i, cell := range row {
			out.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			out.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)+2))
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// TruncateTableCell limits cell width while preserving any styling escapes.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	keep := tableCellMaxWidth - len(tableCellEllipsis)
	return truncateVisible(value, keep) + tableCellEllipsis
}

func sanitizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = normalizeTableCell(cell)
	}
	return out
}

// normalizeTableCell flattens line breaks and tabs so a cell stays on one row.
func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

func displayWidth(value string) int {
	return lipgloss.Width(value)
}

// truncateVisible cuts value down to max visible characters. SGR escape
// sequences pass through uncounted so truncated cells keep their styling
// (including any trailing reset).
func truncateVisible(value string, max int) string {
	if max <= 0 {
		return ""
	}

	var out strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if rest := value[i:]; strings.HasPrefix(rest, "\x1b[") {
			end := strings.IndexByte(rest, 'm')
			if end < 0 {
				end = len(rest) - 1
			}
			out.WriteString(rest[:end+1])
			i += end + 1
			continue
		}

		r, size := utf8.DecodeRuneInString(value[i:])
		if visible >= max {
			i += size
			continue
		}
		out.WriteRune(r)
		visible++
		i += size
	}
	return out.String()
}

func stripANSICodes(value string) string {
	var out strings.Builder
	for i := 0; i < len(value); {
		if rest := value[i:]; strings.HasPrefix(rest, "\x1b[") {
			end := strings.IndexByte(rest, 'm')
			if end < 0 {
				break
			}
			i += end + 1
			continue
		}
		out.WriteByte(value[i])
		i++
	}
	return out.String()
}
