package logica

import (
	"testing"

	"github.com/EvgSkv/logica/pkg/span"
)

func TestSplitRawIgnoresNestedSeparators(t *testing.T) {
	parts := SplitRaw(spanOf("f(1, 2), g(3; 4)"), ',')

	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d: %#v", len(parts), texts(parts))
	}

	if Strip(parts[0]).Text() != "f(1, 2)" || Strip(parts[1]).Text() != "g(3; 4)" {
		t.Errorf("unexpected split: %#v", texts(parts))
	}
}

func TestSplitRawIgnoresSeparatorsInStrings(t *testing.T) {
	parts := SplitRaw(spanOf(`"a,b", "c,d"`), ',')
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d: %#v", len(parts), texts(parts))
	}
}

func TestStripTrimsWhitespace(t *testing.T) {
	got := Strip(spanOf("  hello world  ")).Text()
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestStripPeelsOuterWholeParens(t *testing.T) {
	got := Strip(spanOf("  ( X + 1 )  ")).Text()
	if got != "X + 1" {
		t.Errorf("got %q", got)
	}
}

func TestStripPeelsNestedParens(t *testing.T) {
	got := Strip(spanOf("((X))")).Text()
	if got != "X" {
		t.Errorf("got %q", got)
	}
}

func TestStripLeavesUnbalancedInteriorAlone(t *testing.T) {
	got := Strip(spanOf("(X}")).Text()
	if got != "(X}" {
		t.Errorf("got %q", got)
	}
}

func TestStripLeavesTupleParensAlone(t *testing.T) {
	got := Strip(spanOf("(X), (Y)")).Text()
	if got != "(X), (Y)" {
		t.Errorf("got %q", got)
	}
}

func TestStripWordRequiresBoundary(t *testing.T) {
	if _, ok := StripWord(spanOf("distinctly P(x)"), "distinct"); ok {
		t.Errorf("expected 'distinctly' not to match keyword 'distinct'")
	}

	rest, ok := StripWord(spanOf("distinct P(x)"), "distinct")
	if !ok {
		t.Fatalf("expected match")
	}

	if Strip(rest).Text() != "P(x)" {
		t.Errorf("got %q", Strip(rest).Text())
	}
}

func TestSplitInTwoRequiresExactlyOneSeparator(t *testing.T) {
	if _, _, err := SplitInTwo(spanOf("a = b = c"), '='); err == nil {
		t.Errorf("expected error for multiple separators")
	}

	left, right, err := SplitInTwo(spanOf("a = b"), '=')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if Strip(left).Text() != "a" || Strip(right).Text() != "b" {
		t.Errorf("got %q / %q", Strip(left).Text(), Strip(right).Text())
	}
}

func texts(spans []span.Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text()
	}

	return out
}
