/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/codegen"
	"github.com/rulego/exprgen/schema"
	"github.com/rulego/exprgen/types"
)

func testBindings() []codegen.Binding {
	return []codegen.Binding{{
		Name: "input",
		Desc: schema.NewRowDescriptor(
			schema.Field{Name: "id", Type: types.Long},
			schema.Field{Name: "temperature", Type: types.Double},
			schema.Field{Name: "device", Type: types.String},
			schema.Field{Name: "count", Type: types.Int},
		),
	}}
}

func mustParse(t *testing.T, src string) ast.Expression {
	t.Helper()
	node, err := Parse(src, testBindings())
	require.NoError(t, err)
	return node
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected ast.Literal
	}{
		{"Small Integer Is Int", "42", ast.Literal{Value: int64(42), Type: types.Int}},
		{"Wide Integer Is Long", "3000000000", ast.Literal{Value: int64(3000000000), Type: types.Long}},
		{"Float Is Double", "1.5", ast.Literal{Value: 1.5, Type: types.Double}},
		{"Bool", "true", ast.Literal{Value: true, Type: types.Boolean}},
		{"String", `"hello"`, ast.Literal{Value: "hello", Type: types.String}},
		{"Nil Is Null Composite", "nil", ast.Literal{Value: nil, Type: types.Composite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.src)
			lit, ok := node.(*ast.Literal)
			require.True(t, ok, "expected literal, got %T", node)
			assert.Equal(t, tt.expected, *lit)
		})
	}
}

func TestParseFieldRef(t *testing.T) {
	node := mustParse(t, "temperature")
	field, ok := node.(*ast.FieldRef)
	require.True(t, ok)
	assert.Equal(t, "temperature", field.Name)
	assert.Equal(t, types.Double, field.Type)

	_, err := Parse("unknown_field", testBindings())
	assert.Error(t, err)
}

func TestParseBinaryOperators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		op   ast.BinaryOp
		kind types.Kind
	}{
		{"Plus", "count + count", ast.OpPlus, types.Int},
		{"Minus", "count - count", ast.OpMinus, types.Int},
		{"Mul", "temperature * temperature", ast.OpMul, types.Double},
		{"Div", "temperature / temperature", ast.OpDiv, types.Double},
		{"Mod", "count % count", ast.OpMod, types.Int},
		{"GreaterThan", "count > count", ast.OpGreaterThan, types.Boolean},
		{"EqualTo", "device == device", ast.OpEqualTo, types.Boolean},
		{"NotEqualTo", "device != device", ast.OpNotEqualTo, types.Boolean},
		{"And", "true && false", ast.OpAnd, types.Boolean},
		{"And Keyword", "true and false", ast.OpAnd, types.Boolean},
		{"Or", "true || false", ast.OpOr, types.Boolean},
		{"Bitwise Xor", "count ^ count", ast.OpBitwiseXor, types.Int},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.src)
			bin, ok := node.(*ast.Binary)
			require.True(t, ok, "expected binary, got %T", node)
			assert.Equal(t, tt.op, bin.Op)
			assert.Equal(t, tt.kind, bin.Kind())
		})
	}
}

func TestArithmeticPromotion(t *testing.T) {
	// Long + Double widens to Double and wraps the narrower side in a cast.
	node := mustParse(t, "id + temperature")
	bin, ok := node.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, types.Double, bin.Kind())

	castNode, ok := bin.Left.(*ast.Cast)
	require.True(t, ok, "narrower operand is explicitly cast")
	assert.Equal(t, types.Double, castNode.Target)
	assert.Equal(t, types.Long, castNode.Child.Kind())

	_, ok = bin.Right.(*ast.FieldRef)
	assert.True(t, ok, "operand already at the promoted width stays bare")
}

func TestComparisonPromotion(t *testing.T) {
	node := mustParse(t, "count < id")
	bin, ok := node.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, types.Boolean, bin.Kind())

	castNode, ok := bin.Left.(*ast.Cast)
	require.True(t, ok, "mixed-width comparison operands are widened")
	assert.Equal(t, types.Long, castNode.Target)

	// Same-type comparisons need no casts.
	node = mustParse(t, "device == device")
	bin = node.(*ast.Binary)
	_, leftIsCast := bin.Left.(*ast.Cast)
	assert.False(t, leftIsCast)
}

func TestArithmeticOverNonNumericFails(t *testing.T) {
	_, err := Parse("device + device", testBindings())
	assert.Error(t, err)
}

func TestParseUnary(t *testing.T) {
	node := mustParse(t, "-temperature")
	un, ok := node.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.OpUnaryMinus, un.Op)
	assert.Equal(t, types.Double, un.Kind())

	node = mustParse(t, "!true")
	un = node.(*ast.Unary)
	assert.Equal(t, ast.OpNot, un.Op)

	node = mustParse(t, "not true")
	un = node.(*ast.Unary)
	assert.Equal(t, ast.OpNot, un.Op)

	// Unary plus is a no-op.
	node = mustParse(t, "+count")
	_, ok = node.(*ast.FieldRef)
	assert.True(t, ok)
}

func TestParseCastFunctions(t *testing.T) {
	tests := []struct {
		src    string
		target types.Kind
	}{
		{"int(temperature)", types.Int},
		{"long(count)", types.Long},
		{"short(count)", types.Short},
		{"byte(count)", types.Byte},
		{"float(temperature)", types.Float},
		{"double(count)", types.Double},
		{"bool(device)", types.Boolean},
		{"string(count)", types.String},
		{"char(device)", types.Char},
		{"date(device)", types.Date},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			node := mustParse(t, tt.src)
			castNode, ok := node.(*ast.Cast)
			require.True(t, ok, "expected cast, got %T", node)
			assert.Equal(t, tt.target, castNode.Target)
		})
	}

	_, err := Parse("int(count, count)", testBindings())
	assert.Error(t, err, "casts take exactly one argument")
}

func TestParseBuiltinFunctions(t *testing.T) {
	node := mustParse(t, "abs(temperature)")
	_, ok := node.(*ast.Abs)
	assert.True(t, ok)

	node = mustParse(t, "is_null(device)")
	_, ok = node.(*ast.IsNull)
	assert.True(t, ok)

	node = mustParse(t, "is_not_null(device)")
	_, ok = node.(*ast.IsNotNull)
	assert.True(t, ok)

	_, err := Parse("abs(temperature, count)", testBindings())
	assert.Error(t, err)
	_, err = Parse("frobnicate(device)", testBindings())
	assert.Error(t, err)
}

func TestParseReservedFunctionNames(t *testing.T) {
	// expr-lang parses some of these names into builtin nodes rather than
	// plain calls; both shapes must translate identically.
	for _, src := range []string{
		"int(device)", "float(count)", "string(count)", "date(device)",
		"long(count)", "char(device)",
	} {
		t.Run(src, func(t *testing.T) {
			node := mustParse(t, src)
			_, ok := node.(*ast.Cast)
			assert.True(t, ok, "expected cast, got %T", node)
		})
	}

	node := mustParse(t, "abs(count)")
	_, ok := node.(*ast.Abs)
	assert.True(t, ok)

	// A chain mixing both shapes.
	node = mustParse(t, "string(date(device))")
	outer, ok := node.(*ast.Cast)
	require.True(t, ok)
	assert.Equal(t, types.String, outer.Target)
	inner, ok := outer.Child.(*ast.Cast)
	require.True(t, ok)
	assert.Equal(t, types.Date, inner.Target)
}

func TestParseSubstring(t *testing.T) {
	node := mustParse(t, "substring(device, 1, 3)")
	sub, ok := node.(*ast.Substring)
	require.True(t, ok)
	assert.Equal(t, types.String, sub.Kind())

	// The two-argument form binds the to-end sentinel.
	node = mustParse(t, "substring(device, 2)")
	sub = node.(*ast.Substring)
	end, ok := sub.End.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(math.MaxInt32), end.Value)

	_, err := Parse("substring(device)", testBindings())
	assert.Error(t, err)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("count +", testBindings())
	assert.Error(t, err)
}
