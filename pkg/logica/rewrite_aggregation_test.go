package logica

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAggregationSlotsFlattensBareAggregation(t *testing.T) {
	rule, err := ParseRule(spanOf("Stats{total? Sum= X} :- P(X)"), false)
	require.NoError(t, err)
	require.NotNil(t, rule.Head.Record.Fields[0].Aggregation)

	NormalizeAggregationSlots(rule)

	field := rule.Head.Record.Fields[0]
	require.Nil(t, field.Aggregation)
	require.NotNil(t, field.Value)

	call, ok := field.Value.(*Call)
	require.True(t, ok)
	require.Equal(t, "Sum", call.Name)
}

func TestNormalizeAggregationSlotsDescendsIntoNestedCombine(t *testing.T) {
	rule, err := ParseRule(spanOf("R{v: {R2{inner? Sum= Y} :- Q(Y)}} :- X = 1"), false)
	require.NoError(t, err)

	NormalizeAggregationSlots(rule)

	combine := rule.Head.Record.Fields[0].Value.(*Combine)
	innerField := combine.Rule.Head.Record.Fields[0]
	require.Nil(t, innerField.Aggregation)
	require.NotNil(t, innerField.Value)
}

func TestLiftMultiBodyAggregationsSeparatesCombineFields(t *testing.T) {
	rule, err := ParseRule(spanOf("Report{K, total? Sum= X, other: {Count(Y) :- Q(K, Y)}} :- P(K, X)"), false)
	require.NoError(t, err)

	counter := 0
	main, aux := LiftMultiBodyAggregations(rule, &counter)

	require.Len(t, aux, 1)
	require.Equal(t, "_MultBodyAggAux1", aux[0].Head.Name)

	found := false

	for _, f := range main.Head.Record.Fields {
		if f.Name == "other" {
			found = true

			call, ok := f.Value.(*Call)
			require.True(t, ok)
			require.Equal(t, "Element", call.Name)
		}
	}

	require.True(t, found)
}

func TestNormalizeAggregationSlotsMapsPlusOperatorToAggPlus(t *testing.T) {
	rule, err := ParseRule(spanOf("Total() += X :- Edge(X, _)"), false)
	require.NoError(t, err)

	NormalizeAggregationSlots(rule)

	last := rule.Head.Record.Fields[len(rule.Head.Record.Fields)-1]
	require.Nil(t, last.Aggregation)

	call, ok := last.Value.(*Call)
	require.True(t, ok)
	require.Equal(t, "Agg+", call.Name)
}

func TestLiftMultiBodyAggregationsNoopWithoutMix(t *testing.T) {
	rule, err := ParseRule(spanOf("Stats{total: Sum(X)} :- P(X)"), false)
	require.NoError(t, err)

	counter := 0
	main, aux := LiftMultiBodyAggregations(rule, &counter)

	require.Nil(t, aux)
	require.Same(t, rule, main)
}
