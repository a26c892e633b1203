package logica

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRuleFact(t *testing.T) {
	rule, err := ParseRule(spanOf("Edge(1, 2)"), false)
	require.NoError(t, err)
	require.Equal(t, "Edge", rule.Head.Name)
	require.Nil(t, rule.Body)
}

func TestParseRuleWithBody(t *testing.T) {
	rule, err := ParseRule(spanOf("Path(X, Y) :- Edge(X, Y)"), false)
	require.NoError(t, err)
	require.Equal(t, "Path", rule.Head.Name)
	require.NotNil(t, rule.Body)

	pred, ok := rule.Body.(*Predicate)
	require.True(t, ok)
	require.Equal(t, "Edge", pred.Call.Name)
}

func TestParseRuleDistinct(t *testing.T) {
	rule, err := ParseRule(spanOf("distinct Node(X) :- Edge(X, _)"), false)
	require.NoError(t, err)
	require.True(t, rule.Distinct)
	require.Equal(t, "Node", rule.Head.Name)
}

func TestParseRuleDenotations(t *testing.T) {
	rule, err := ParseRule(spanOf("Top(X) order_by(X) limit(10) :- Edge(X, _)"), false)
	require.NoError(t, err)
	require.Equal(t, "Top", rule.Head.Name)
	require.Len(t, rule.Annotations, 2)

	names := []string{rule.Annotations[0].Name, rule.Annotations[1].Name}
	require.Contains(t, names, "OrderBy")
	require.Contains(t, names, "Limit")
}

func TestParseRuleMultipleImplicationsIsAnError(t *testing.T) {
	_, err := ParseRule(spanOf("P(X) :- Q(X) :- R(X)"), false)
	require.Error(t, err)
}

func TestParseRuleRejectsNonCallHead(t *testing.T) {
	_, err := ParseRule(spanOf("42 :- Q(X)"), false)
	require.Error(t, err)
}

func TestParseRuleHeadValueSuffix(t *testing.T) {
	rule, err := ParseRule(spanOf("Double(X) = X * 2 :- Edge(X, _)"), false)
	require.NoError(t, err)
	require.False(t, rule.Distinct)
	require.NotNil(t, rule.Head.Record)

	last := rule.Head.Record.Fields[len(rule.Head.Record.Fields)-1]
	require.Equal(t, "logica_value", last.Name)
	require.NotNil(t, last.Value)
	require.Nil(t, last.Aggregation)
}

func TestParseRuleHeadAggregatedValueSuffix(t *testing.T) {
	rule, err := ParseRule(spanOf("Total() += X :- Edge(X, _)"), false)
	require.NoError(t, err)
	require.True(t, rule.Distinct, "an aggregated head implicitly denotes distinct")

	last := rule.Head.Record.Fields[len(rule.Head.Record.Fields)-1]
	require.Equal(t, "logica_value", last.Name)
	require.Nil(t, last.Value)
	require.NotNil(t, last.Aggregation)
	require.Equal(t, "+", last.Aggregation.Name)
}

func TestParseRuleHeadValueSuffixTooManyEqualsIsAnError(t *testing.T) {
	_, err := ParseRule(spanOf("Total() = X = Y :- Edge(X, Y)"), false)
	require.Error(t, err)
}
