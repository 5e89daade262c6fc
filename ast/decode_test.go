package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProgramSimpleExpression(t *testing.T) {
	src := `{"body":[
		{"type":"ExpressionStatement","expression":
			{"type":"BinaryExpression","operator":"+",
			 "left":{"type":"NumericLiteral","value":2},
			 "right":{"type":"NumericLiteral","value":3}}}
	]}`
	prog, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	stmt, ok := prog.Body[0].(*ExpressionStatement)
	require.True(t, ok)
	bin, ok := stmt.Expression.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)

	left, ok := bin.Left.(*NumericLiteral)
	require.True(t, ok)
	assert.Equal(t, float64(2), left.Value)
}

func TestDecodeProgramFunctionDeclarationAndCall(t *testing.T) {
	src := `{"body":[
		{"type":"FunctionDeclaration","id":{"type":"Identifier","name":"add"},
		 "params":[{"type":"Identifier","name":"a"},{"type":"Identifier","name":"b"}],
		 "body":{"type":"BlockStatement","body":[
			{"type":"ReturnStatement","argument":
				{"type":"BinaryExpression","operator":"+",
				 "left":{"type":"Identifier","name":"a"},
				 "right":{"type":"Identifier","name":"b"}}}
		 ]}},
		{"type":"ExpressionStatement","expression":
			{"type":"CallExpression","callee":{"type":"Identifier","name":"add"},
			 "arguments":[{"type":"NumericLiteral","value":1},{"type":"NumericLiteral","value":2}]}}
	]}`
	prog, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)

	fn, ok := prog.Body[0].(*FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Id.Name)
	require.Len(t, fn.Params, 2)

	call, ok := prog.Body[1].(*ExpressionStatement)
	require.True(t, ok)
	callExpr, ok := call.Expression.(*CallExpression)
	require.True(t, ok)
	require.Len(t, callExpr.Arguments, 2)
}

func TestDecodeProgramVariableDeclarationRejectsDestructuring(t *testing.T) {
	src := `{"body":[
		{"type":"VariableDeclaration","kind":"var","declarations":[
			{"id":{"type":"ArrayPattern"},"init":null}
		]}
	]}`
	_, err := DecodeProgram([]byte(src))
	assert.Error(t, err)
}

func TestDecodeProgramForInStatement(t *testing.T) {
	src := `{"body":[
		{"type":"ForInStatement",
		 "left":{"type":"VariableDeclaration","kind":"var","declarations":[
			{"id":{"type":"Identifier","name":"k"},"init":null}
		 ]},
		 "right":{"type":"Identifier","name":"obj"},
		 "body":{"type":"BlockStatement","body":[]}}
	]}`
	prog, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	forIn, ok := prog.Body[0].(*ForInStatement)
	require.True(t, ok)
	_, ok = forIn.Left.(*VariableDeclaration)
	assert.True(t, ok)
}

func TestDecodeProgramUnknownNodeTypeErrors(t *testing.T) {
	src := `{"body":[{"type":"DebuggerStatement"}]}`
	_, err := DecodeProgram([]byte(src))
	assert.Error(t, err)
}
