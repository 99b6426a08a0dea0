package markdown

import (
	"strings"
	"testing"
)

func TestRender_Empty(t *testing.T) {
	if got := Render(80, "   \n\n"); got != "" {
		t.Errorf("blank input should render empty, got %q", got)
	}
}

func TestRender_PlainText(t *testing.T) {
	got := Render(80, "hello world")
	if !strings.Contains(got, "hello world") {
		t.Errorf("expected text to survive rendering, got %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("trailing newlines should be trimmed, got %q", got)
	}
}

func TestRender_ListItems(t *testing.T) {
	got := Render(80, "- first\n- second")
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("list items lost: %q", got)
	}
}

func TestRender_NarrowWidth(t *testing.T) {
	got := Render(10, "a reasonably long sentence that must wrap")
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 20 {
			t.Errorf("line too long for narrow width: %q", line)
		}
	}
}
