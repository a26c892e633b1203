package logica

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePropositionConjunctionAndDisjunction(t *testing.T) {
	p, err := ParseProposition(spanOf("P(x), Q(y)"), false)
	require.NoError(t, err)
	conj, ok := p.(*Conjunction)
	require.True(t, ok)
	require.Len(t, conj.Conjuncts, 2)

	p, err = ParseProposition(spanOf("P(x) | Q(y)"), false)
	require.NoError(t, err)
	disj, ok := p.(*Disjunction)
	require.True(t, ok)
	require.Len(t, disj.Alternatives, 2)
}

func TestParsePropositionUnificationAndInclusion(t *testing.T) {
	p, err := ParseProposition(spanOf("X == 5"), false)
	require.NoError(t, err)
	_, ok := p.(*Unification)
	require.True(t, ok)

	p, err = ParseProposition(spanOf("X in [1, 2, 3]"), false)
	require.NoError(t, err)
	_, ok = p.(*Inclusion)
	require.True(t, ok)
}

func TestParsePropositionNegation(t *testing.T) {
	p, err := ParseProposition(spanOf("~P(x)"), false)
	require.NoError(t, err)
	neg, ok := p.(*Negation)
	require.True(t, ok)
	_, ok = neg.Operand.(*Predicate)
	require.True(t, ok)
}

func TestParsePropositionNotIsNotAKeyword(t *testing.T) {
	_, err := ParseProposition(spanOf("not P(x)"), false)
	require.Error(t, err)
}

func TestParsePropositionRestrictedInfix(t *testing.T) {
	p, err := ParseProposition(spanOf("X > 0 && Y < 5"), false)
	require.NoError(t, err)

	pred, ok := p.(*Predicate)
	require.True(t, ok)
	require.Equal(t, "&&", pred.Call.Name)
}

func TestParsePropositionalImplication(t *testing.T) {
	p, err := ParseProposition(spanOf("P(x) => Q(x)"), false)
	require.NoError(t, err)

	neg, ok := p.(*Negation)
	require.True(t, ok)

	conj, ok := neg.Operand.(*Conjunction)
	require.True(t, ok)
	require.Len(t, conj.Conjuncts, 2)
}

func TestParsePropositionalEquivalence(t *testing.T) {
	p, err := ParseProposition(spanOf("P(x) <=> Q(x)"), true)
	require.NoError(t, err)

	_, ok := p.(*Conjunction)
	require.True(t, ok)
}

func TestParsePropositionPredicateCall(t *testing.T) {
	p, err := ParseProposition(spanOf("P(x, y)"), false)
	require.NoError(t, err)
	pred, ok := p.(*Predicate)
	require.True(t, ok)
	require.Equal(t, "P", pred.Call.Name)
}

func TestParsePropositionParenthesisedGroup(t *testing.T) {
	p, err := ParseProposition(spanOf("(P(x) | Q(x)), R(x)"), false)
	require.NoError(t, err)
	conj, ok := p.(*Conjunction)
	require.True(t, ok)
	require.Len(t, conj.Conjuncts, 2)
	_, ok = conj.Conjuncts[0].(*Disjunction)
	require.True(t, ok)
}
