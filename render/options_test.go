package render

import "testing"

func TestPageSelectionIncludes(t *testing.T) {
	all := AllPages()
	if !all.Includes(1) || !all.Includes(999) {
		t.Fatal("AllPages should include every page")
	}

	rng := PageRange(2, 4)
	if rng.Includes(1) || !rng.Includes(2) || !rng.Includes(3) || !rng.Includes(4) || rng.Includes(5) {
		t.Fatal("PageRange(2,4) should include exactly 2..4")
	}

	list := PageList([]int{1, 3, 5})
	if !list.Includes(1) || list.Includes(2) || !list.Includes(3) {
		t.Fatal("PageList should include exactly its members")
	}
}

func TestParsePageSelectionAll(t *testing.T) {
	sel, err := ParsePageSelection("all")
	if err != nil || sel.Kind != SelectAll {
		t.Fatalf("expected SelectAll, got %+v, err=%v", sel, err)
	}

	sel, err = ParsePageSelection("")
	if err != nil || sel.Kind != SelectAll {
		t.Fatalf("empty string should parse as SelectAll, got %+v, err=%v", sel, err)
	}
}

func TestParsePageSelectionBareRange(t *testing.T) {
	sel, err := ParsePageSelection("3-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Kind != SelectRange || sel.RangeStart != 3 || sel.RangeEnd != 7 {
		t.Fatalf("expected Range{3,7}, got %+v", sel)
	}
}

func TestParsePageSelectionList(t *testing.T) {
	sel, err := ParsePageSelection("5, 1, 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Kind != SelectPages {
		t.Fatalf("expected SelectPages, got %+v", sel)
	}
	want := []int{1, 3, 5}
	if len(sel.Pages) != len(want) {
		t.Fatalf("expected %v, got %v", want, sel.Pages)
	}
	for i, p := range want {
		if sel.Pages[i] != p {
			t.Fatalf("expected sorted-deduped %v, got %v", want, sel.Pages)
		}
	}
}

func TestParsePageSelectionMixedDedup(t *testing.T) {
	sel, err := ParsePageSelection("1-3,2,4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 4}
	if len(sel.Pages) != len(want) {
		t.Fatalf("expected %v, got %v", want, sel.Pages)
	}
	for i, p := range want {
		if sel.Pages[i] != p {
			t.Fatalf("expected %v, got %v", want, sel.Pages)
		}
	}
}

func TestParsePageSelectionInvalid(t *testing.T) {
	if _, err := ParsePageSelection("x-3"); err == nil {
		t.Fatal("expected error for non-numeric range bound")
	}
	if _, err := ParsePageSelection("0"); err == nil {
		t.Fatal("expected error for page number below 1")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.TableFallback != TableMarkdown {
		t.Errorf("expected markdown table fallback by default, got %v", opts.TableFallback)
	}
	if opts.MaxHeadingLevel != 6 {
		t.Errorf("expected max heading level 6, got %d", opts.MaxHeadingLevel)
	}
	if opts.PageSelection.Kind != SelectAll {
		t.Error("expected default page selection to be all pages")
	}
}
