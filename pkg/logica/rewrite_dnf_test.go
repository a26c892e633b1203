package logica

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteDNFExpandsTopLevelDisjunction(t *testing.T) {
	rule, err := ParseRule(spanOf("R(X) :- P(X) | Q(X)"), false)
	require.NoError(t, err)

	branches := RewriteDNF(rule)
	require.Len(t, branches, 2)

	for _, b := range branches {
		require.Equal(t, "R", b.Head.Name)
		_, isDisjunction := b.Body.(*Disjunction)
		require.False(t, isDisjunction, "no branch body should still contain a disjunction")
	}
}

func TestRewriteDNFDistributesConjunctionOverDisjunction(t *testing.T) {
	rule, err := ParseRule(spanOf("R(X) :- (P(X) | Q(X)), S(X)"), false)
	require.NoError(t, err)

	branches := RewriteDNF(rule)
	require.Len(t, branches, 2)
}

func TestRewriteDNFLeavesSingleBranchRuleUnchanged(t *testing.T) {
	rule, err := ParseRule(spanOf("R(X) :- P(X), Q(X)"), false)
	require.NoError(t, err)

	branches := RewriteDNF(rule)
	require.Len(t, branches, 1)
	require.Same(t, rule, branches[0])
}

func TestRewriteDNFDoesNotDescendIntoCombine(t *testing.T) {
	rule, err := ParseRule(spanOf("R{v: {Sum(Y) :- P(Y) | Q(Y)}} :- X = 1"), false)
	require.NoError(t, err)

	branches := RewriteDNF(rule)
	require.Len(t, branches, 1)

	field := branches[0].Head.Record.Fields[0]
	combine, ok := field.Value.(*Combine)
	require.True(t, ok)

	// The nested Combine's own body disjunction must survive untouched:
	// only the outer rule body is put into DNF.
	_, stillDisjunction := combine.Rule.Body.(*Disjunction)
	require.True(t, stillDisjunction)
}
