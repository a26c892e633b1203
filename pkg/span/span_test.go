package span

import "testing"

func TestSpanWholeCoversAllText(t *testing.T) {
	src := NewSourceFromString("main", "hello world")
	sp := src.Whole()

	if sp.Text() != "hello world" {
		t.Errorf("expected whole span to cover entire text, got %q", sp.Text())
	}
}

func TestSpanSliceIsRelative(t *testing.T) {
	src := NewSourceFromString("main", "hello world")
	sp := src.Whole().Slice(6, 11)

	if sp.Text() != "world" {
		t.Errorf("expected sliced span %q, got %q", "world", sp.Text())
	}
}

func TestSpanLenAndEmpty(t *testing.T) {
	src := NewSourceFromString("main", "abc")
	sp := New(src, 1, 1)

	if !sp.IsEmpty() {
		t.Errorf("expected empty span")
	}

	if sp.Len() != 0 {
		t.Errorf("expected zero length, got %d", sp.Len())
	}
}

func TestSpanContextClampsToBounds(t *testing.T) {
	src := NewSourceFromString("main", "0123456789")
	sp := New(src, 4, 6)
	pre, mid, post := sp.Context(2)

	if pre != "23" || mid != "45" || post != "67" {
		t.Errorf("unexpected context: %q %q %q", pre, mid, post)
	}
}

func TestSpanContextClampsAtStartOfSource(t *testing.T) {
	src := NewSourceFromString("main", "0123456789")
	sp := New(src, 0, 2)
	pre, _, _ := sp.Context(300)

	if pre != "" {
		t.Errorf("expected no pre-context at start of source, got %q", pre)
	}
}

func TestNewErrorRendersKindAndContext(t *testing.T) {
	src := NewSourceFromString("main", "Q(x) :- P(x)")
	sp := New(src, 0, 4)
	err := NewError(Structural, sp, "example failure")

	if err.Kind() != Structural {
		t.Errorf("expected structural kind")
	}

	if err.Message() != "example failure" {
		t.Errorf("unexpected message: %q", err.Message())
	}

	got := err.Error()
	if got == "" {
		t.Errorf("expected non-empty rendered error")
	}
}
