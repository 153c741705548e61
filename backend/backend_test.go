package backend

import (
	"testing"
	"time"
)

func TestParsePDFDateFull(t *testing.T) {
	got := parsePDFDate("D:20240102030405")
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsePDFDate() = %v, want %v", got, want)
	}
}

func TestParsePDFDateYearOnly(t *testing.T) {
	got := parsePDFDate("D:2024")
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsePDFDate() = %v, want %v", got, want)
	}
}

func TestParsePDFDateEmpty(t *testing.T) {
	if got := parsePDFDate(""); !got.IsZero() {
		t.Errorf("parsePDFDate(\"\") = %v, want zero time", got)
	}
}

func TestParsePDFDateGarbage(t *testing.T) {
	if got := parsePDFDate("not a date"); !got.IsZero() {
		t.Errorf("parsePDFDate(garbage) = %v, want zero time", got)
	}
}
