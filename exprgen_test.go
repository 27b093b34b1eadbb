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

package exprgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/codegen"
	"github.com/rulego/exprgen/config"
	"github.com/rulego/exprgen/logger"
	"github.com/rulego/exprgen/schema"
	"github.com/rulego/exprgen/types"
)

func sensorBinding() codegen.Binding {
	return codegen.Binding{
		Name: "input",
		Desc: schema.NewRowDescriptor(
			schema.Field{Name: "temperature", Type: types.Double},
			schema.Field{Name: "device", Type: types.String},
			schema.Field{Name: "count", Type: types.Int},
		),
	}
}

func row(temperature interface{}, device interface{}, count interface{}) []interface{} {
	return []interface{}{temperature, device, count}
}

func TestGeneratorDefaults(t *testing.T) {
	gen := New()
	assert.True(t, gen.NullCheck())
	assert.Equal(t, "UTC", gen.TimeZone())
}

func TestOptions(t *testing.T) {
	gen := New(
		WithNullCheck(false),
		WithTimeZone("Asia/Shanghai"),
		WithDiscardLog(),
	)
	assert.False(t, gen.NullCheck())
	assert.Equal(t, "Asia/Shanghai", gen.TimeZone())
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.NullCheck = false
	cfg.TimeZone = "America/New_York"
	cfg.LogLevel = "off"

	gen := New(WithLogger(logger.NewDiscardLogger()), WithConfig(cfg))
	assert.False(t, gen.NullCheck())
	assert.Equal(t, "America/New_York", gen.TimeZone())
}

func TestCompileString(t *testing.T) {
	gen := New(WithDiscardLog())
	res, err := gen.CompileString("temperature * 2.0", sensorBinding())
	require.NoError(t, err)

	assert.NotEmpty(t, res.Root.ResultTerm)
	assert.NotEmpty(t, res.Root.NullTerm)
	assert.Contains(t, res.Unit, "package genexpr")
	assert.Contains(t, res.Unit, "func Eval(rows ...interface{})")
}

func TestCompileStringErrors(t *testing.T) {
	gen := New(WithDiscardLog())

	_, err := gen.CompileString("temperature +", sensorBinding())
	assert.Error(t, err, "syntax errors surface")

	_, err = gen.CompileString("no_such_field + 1", sensorBinding())
	assert.Error(t, err, "unresolved fields surface")
}

func TestEndToEndEvaluation(t *testing.T) {
	gen := New(WithDiscardLog())

	tests := []struct {
		name     string
		expr     string
		input    []interface{}
		expected interface{}
	}{
		{"Temperature Conversion", "temperature * 1.8 + 32.0",
			row(25.5, "sensor001", int32(1)), 77.9},
		{"Integer Arithmetic", "count + 1",
			row(0.0, "x", int32(2)), int32(3)},
		{"Substring", `substring(device, 0, 3)`,
			row(0.0, "sensor001", int32(0)), "sen"},
		{"Substring To End", `substring(device, 6)`,
			row(0.0, "sensor001", int32(0)), "001"},
		{"Comparison", "temperature > 30.0",
			row(25.5, "x", int32(0)), false},
		{"Null Test On Present Value", "is_null(temperature)",
			row(25.5, "x", int32(0)), false},
		{"Null Test On Absent Value", "is_null(temperature)",
			row(nil, "x", int32(0)), true},
		{"String Parse Cast", "int(device)",
			row(0.0, "42", int32(0)), int32(42)},
		{"Abs", "abs(count)",
			row(0.0, "x", int32(-5)), int32(5)},
		{"Null Literal Cast", "int(nil)",
			row(0.0, "x", int32(0)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := gen.CompileFunc(tt.expr, sensorBinding())
			require.NoError(t, err)

			out, err := eval(tt.input)
			require.NoError(t, err)
			switch expected := tt.expected.(type) {
			case float64:
				assert.InDelta(t, expected, out, 0.0001)
			default:
				assert.Equal(t, expected, out)
			}
		})
	}
}

func TestEndToEndNullPropagation(t *testing.T) {
	gen := New(WithDiscardLog())
	eval, err := gen.CompileFunc("temperature * 2.0", sensorBinding())
	require.NoError(t, err)

	out, err := eval(row(nil, "x", int32(0)))
	require.NoError(t, err)
	assert.Nil(t, out, "null operand makes the expression null")

	out, err = eval(row(3.5, "x", int32(0)))
	require.NoError(t, err)
	assert.InDelta(t, 7.0, out, 0.0001)
}

func TestEndToEndWithoutNullCheck(t *testing.T) {
	gen := New(WithDiscardLog(), WithNullCheck(false))
	eval, err := gen.CompileFunc("count * 2", sensorBinding())
	require.NoError(t, err)

	out, err := eval(row(0.0, "x", int32(4)))
	require.NoError(t, err)
	assert.Equal(t, int32(8), out)
}

func TestEndToEndDateRoundTrip(t *testing.T) {
	gen := New(WithDiscardLog())
	eval, err := gen.CompileFunc("string(date(device))", sensorBinding())
	require.NoError(t, err)

	out, err := eval(row(0.0, "2026-08-25", int32(0)))
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25 00:00:00.000", out)
}

func TestCompileTreeFunc(t *testing.T) {
	gen := New(WithDiscardLog())
	root := &ast.FieldRef{Name: "count", Type: types.Int}

	eval, err := gen.CompileTreeFunc(root, sensorBinding())
	require.NoError(t, err)
	out, err := eval(row(0.0, "x", int32(9)))
	require.NoError(t, err)
	assert.Equal(t, int32(9), out)
}

func TestSessionSharedAcrossExpressions(t *testing.T) {
	gen := New(WithDiscardLog())
	session := gen.NewSession(sensorBinding())

	lit := &ast.Literal{Value: int64(1), Type: types.Int}
	first, err := session.Compile(lit)
	require.NoError(t, err)
	second, err := session.Compile(lit)
	require.NoError(t, err)
	assert.NotEqual(t, first.ResultTerm, second.ResultTerm,
		"one session never reuses identifiers")
}
