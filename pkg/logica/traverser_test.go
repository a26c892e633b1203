package logica

import (
	"testing"

	"github.com/EvgSkv/logica/pkg/span"
)

func spanOf(text string) span.Span {
	return span.NewSourceFromString("test", text).Whole()
}

func TestIsWholeAcceptsBalancedBrackets(t *testing.T) {
	if !IsWhole(spanOf("P(x, [1, 2], {a: 1})")) {
		t.Errorf("expected balanced brackets to be whole")
	}
}

func TestIsWholeRejectsUnmatchedBracket(t *testing.T) {
	if IsWhole(spanOf("P(x, [1, 2)")) {
		t.Errorf("expected mismatched brackets to be rejected")
	}
}

func TestIsWholeRejectsUnterminatedString(t *testing.T) {
	if IsWhole(spanOf(`P("abc)`)) {
		t.Errorf("expected unterminated double-quoted string to be rejected")
	}
}

func TestIsWholeIgnoresBracketsInsideStrings(t *testing.T) {
	if !IsWhole(spanOf(`P("(unbalanced")`)) {
		t.Errorf("expected brackets inside a string literal not to affect balance")
	}
}

func TestIsWholeIgnoresBracketsInsideComments(t *testing.T) {
	if !IsWhole(spanOf("P(x) # a comment with ( unmatched\n")) {
		t.Errorf("expected brackets inside a line comment not to affect balance")
	}
}

func TestIsWholeHandlesSingleQuoteEscapes(t *testing.T) {
	if !IsWhole(spanOf(`P('it\'s (fine)')`)) {
		t.Errorf("expected an escaped quote inside a single-quoted string not to close it early")
	}
}

func TestIsWholeHandlesBlockComments(t *testing.T) {
	if !IsWhole(spanOf("P(x) /* ( unmatched */ Q(y)")) {
		t.Errorf("expected brackets inside a block comment not to affect balance")
	}
}

func TestRemoveCommentsStripsLineAndBlockComments(t *testing.T) {
	got, err := RemoveComments(spanOf("P(x) # trailing\nQ(y) /* mid */ R(z)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "P(x) Q(y)  R(z)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemoveCommentsReportsUnmatchedBracket(t *testing.T) {
	if _, err := RemoveComments(spanOf("P(x))")); err == nil {
		t.Errorf("expected an error for an unmatched closing bracket")
	}
}
