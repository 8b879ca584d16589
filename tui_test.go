package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"chatty/dictation"
	"chatty/render"
)

func TestWrapText(t *testing.T) {
	got := wrapText("hello brave new world", 11)
	want := []string{"hello brave", "new world"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	if got := wrapText("", 5); len(got) != 1 || got[0] != "" {
		t.Fatalf("wrapText(\"\") = %q", got)
	}
}

func TestIndicatorRowsAndBlocks(t *testing.T) {
	m := tuiModel{styles: make(map[[2]string]lipgloss.Style)}
	m.frame = render.Frame{
		State:   dictation.StateRecording,
		Circles: []render.Circle{{Center: render.Point{X: 60, Y: 20}, Radius: 6, Fill: "#00ff88"}},
	}
	out := m.indicator()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != tuiRows/2 {
		t.Fatalf("got %d rows, want %d", len(lines), tuiRows/2)
	}
	if !strings.Contains(out, "█") {
		t.Fatal("filled circle rendered no full blocks")
	}
}

func TestViewShowsStatusAndText(t *testing.T) {
	m := tuiModel{styles: make(map[[2]string]lipgloss.Style), width: 80, height: 30}
	m.frame = render.Frame{
		Status: dictation.Status{Text: "Auto-copying...", Color: "#ffaa00"},
		Text:   "hello world",
	}
	v := m.View()
	if !strings.Contains(v, "Auto-copying...") || !strings.Contains(v, "hello world") {
		t.Fatalf("view missing status or text:\n%s", v)
	}
}
