package render

import "testing"

func TestStatsCountText(t *testing.T) {
	var s Stats
	s.CountText("hello world foo")
	if s.WordCount != 3 {
		t.Errorf("expected 3 words, got %d", s.WordCount)
	}
	if s.CharCount != len("helloworldfoo") {
		t.Errorf("expected %d non-whitespace chars, got %d", len("helloworldfoo"), s.CharCount)
	}
}

func TestStatsMerge(t *testing.T) {
	a := Stats{PageCount: 1, ParagraphCount: 2, WordCount: 10}
	b := Stats{PageCount: 2, ParagraphCount: 3, WordCount: 5}
	a.Merge(b)
	if a.PageCount != 3 || a.ParagraphCount != 5 || a.WordCount != 15 {
		t.Fatalf("unexpected merged stats: %+v", a)
	}
}

func TestResultContentOnly(t *testing.T) {
	r := ContentOnly("hello")
	if r.Content != "hello" {
		t.Errorf("expected content 'hello', got %q", r.Content)
	}
	if r.Stats.PageCount != 0 {
		t.Error("expected zero stats for ContentOnly result")
	}
}

func TestResultContentLen(t *testing.T) {
	r := ContentOnly("hello")
	if r.ContentLen() != 5 {
		t.Errorf("expected length 5, got %d", r.ContentLen())
	}
}
