package logica

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseExpressionLiteralsAndVariables(t *testing.T) {
	e, err := ParseExpression(spanOf("42"), false)
	require.NoError(t, err)
	lit, ok := e.(*Literal)
	require.True(t, ok)
	require.Equal(t, "int", lit.Kind)
	require.Equal(t, "42", lit.Text)

	e, err = ParseExpression(spanOf("X"), false)
	require.NoError(t, err)
	v, ok := e.(*Variable)
	require.True(t, ok)
	require.Equal(t, "X", v.Name)
}

func TestParseExpressionInfixPrecedence(t *testing.T) {
	e, err := ParseExpression(spanOf("1 + 2 * 3"), false)
	require.NoError(t, err)

	call, ok := e.(*Call)
	require.True(t, ok)
	require.Equal(t, "+", call.Name)
	require.Len(t, call.Record.Fields, 2)
	require.Equal(t, "right", call.Record.Fields[1].Name)

	right, ok := call.Record.Fields[1].Value.(*Call)
	require.True(t, ok)
	require.Equal(t, "*", right.Name)
}

func TestParseExpressionSubscriptDesugarsToElementCall(t *testing.T) {
	e, err := ParseExpression(spanOf("A[1]"), false)
	require.NoError(t, err)

	call, ok := e.(*Call)
	require.True(t, ok)
	require.Equal(t, "Element", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseExpressionRecordCall(t *testing.T) {
	e, err := ParseExpression(spanOf("Point{x: 1, y: 2}"), false)
	require.NoError(t, err)

	call, ok := e.(*Call)
	require.True(t, ok)
	require.Equal(t, "Point", call.Name)
	require.NotNil(t, call.Record)
	require.Len(t, call.Record.Fields, 2)
}

func TestParseExpressionImplication(t *testing.T) {
	e, err := ParseExpression(spanOf("if X > 0 then 1 else -1"), false)
	require.NoError(t, err)

	impl, ok := e.(*Implication)
	require.True(t, ok)
	require.Len(t, impl.IfThen, 1)
	require.NotNil(t, impl.IfThen[0].Condition)
	require.NotNil(t, impl.IfThen[0].Consequence)
	require.NotNil(t, impl.Otherwise)
}

func TestParseExpressionImplicationChain(t *testing.T) {
	e, err := ParseExpression(spanOf("if X > 0 then 1 else if X < 0 then -1 else 0"), false)
	require.NoError(t, err)

	impl, ok := e.(*Implication)
	require.True(t, ok)
	require.Len(t, impl.IfThen, 2)
	require.NotNil(t, impl.Otherwise)
}

func TestParseExpressionUnaryMinus(t *testing.T) {
	e, err := ParseExpression(spanOf("-X"), false)
	require.NoError(t, err)

	call, ok := e.(*Call)
	require.True(t, ok)
	require.Equal(t, "-", call.Name)
	require.NotNil(t, call.Record)
}

func TestParseExpressionTooMuchExtraOperator(t *testing.T) {
	e, err := ParseExpression(spanOf("X ---Y"), true)
	require.NoError(t, err)

	call, ok := e.(*Call)
	require.True(t, ok)
	require.Equal(t, "---", call.Name)
}

func TestParseExpressionCombine(t *testing.T) {
	e, err := ParseExpression(spanOf("{Sum(X) :- P(X)}"), false)
	require.NoError(t, err)

	combine, ok := e.(*Combine)
	require.True(t, ok)
	require.Equal(t, "Sum", combine.Rule.Head.Name)
	require.NotNil(t, combine.Rule.Body)
}

func TestParseExpressionSingleQuoteEscapes(t *testing.T) {
	e, err := ParseExpression(spanOf(`'it\'s here'`), false)
	require.NoError(t, err)

	lit, ok := e.(*Literal)
	require.True(t, ok)
	require.Equal(t, "it's here", lit.Text)
}

func TestParseExpressionList(t *testing.T) {
	e, err := ParseExpression(spanOf("[1, 2, 3]"), false)
	require.NoError(t, err)

	list, ok := e.(*ListExpr)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
}
