package tui

import "testing"

func TestWrapTextBreaksAtWidth(t *testing.T) {
	out := wrapText("the quick brown fox", 9)
	want := "the quick\nbrown fox"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestWrapTextKeepsShortText(t *testing.T) {
	out := wrapText("hello world", 40)
	if out != "hello world" {
		t.Fatalf("expected single line, got %q", out)
	}
}

func TestWrapTextSplitsOverwideWord(t *testing.T) {
	out := wrapText("abcdefgh", 3)
	want := "abc\ndef\ngh"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestWrapTextMeasuresWideRunes(t *testing.T) {
	// Full-width characters occupy two cells each.
	out := wrapText("ああ ああ", 4)
	want := "ああ\nああ"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestWrapTextZeroWidthPassthrough(t *testing.T) {
	out := wrapText("anything at all", 0)
	if out != "anything at all" {
		t.Fatalf("expected passthrough, got %q", out)
	}
}
