package ui

import (
	"strings"
	"testing"
	"time"
)

func secondsToDuration(seconds int64) time.Duration {
	return time.Duration(seconds) * time.Second
}

func TestFormatTable(t *testing.T) {
	got := FormatTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"1", "short"},
			{"23", "a longer name"},
		},
	)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "ID  ") {
		t.Errorf("header not padded: %q", lines[0])
	}
	if !strings.Contains(lines[2], "23  a longer name") {
		t.Errorf("row misaligned: %q", lines[2])
	}
}

func TestFormatTable_ANSIWidths(t *testing.T) {
	styled := "\x1b[1mAB\x1b[0m"
	got := FormatTable([]string{"X", "Y"}, [][]string{{styled, "z"}})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// The styled cell is 2 visible characters wide; padding must ignore the
	// escape bytes.
	if !strings.Contains(stripANSICodes(lines[1]), "AB  z") {
		t.Errorf("ANSI-aware padding wrong: %q", lines[1])
	}
}

func TestTruncateTableCell(t *testing.T) {
	if got := TruncateTableCell("short"); got != "short" {
		t.Errorf("short cell should pass through, got %q", got)
	}

	long := strings.Repeat("x", 80)
	got := TruncateTableCell(long)
	if displayWidth(got) != tableCellMaxWidth {
		t.Errorf("expected width %d, got %d (%q)", tableCellMaxWidth, displayWidth(got), got)
	}
	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}

	if got := TruncateTableCell("a\nb\tc"); got != "a b c" {
		t.Errorf("newlines and tabs should normalize to spaces, got %q", got)
	}
}

func TestFormatDurationShort(t *testing.T) {
	for _, tc := range []struct {
		seconds int64
		want    string
	}{
		{30, "30s"},
		{90, "1m"},
		{3 * 3600, "3h"},
		{49 * 3600, "2d"},
	} {
		if got := FormatDurationShort(secondsToDuration(tc.seconds)); got != tc.want {
			t.Errorf("FormatDurationShort(%ds): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	for _, tc := range []struct {
		minutes int
		want    string
	}{
		{0, "-"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
	} {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d): expected %q, got %q", tc.minutes, tc.want, got)
		}
	}
}
