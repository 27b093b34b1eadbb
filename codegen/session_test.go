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

package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/schema"
	"github.com/rulego/exprgen/types"
)

func sensorBinding() Binding {
	return Binding{
		Name: "input",
		Desc: schema.NewRowDescriptor(
			schema.Field{Name: "id", Type: types.Long},
			schema.Field{Name: "temperature", Type: types.Double},
			schema.Field{Name: "device", Type: types.String},
			schema.Field{Name: "active", Type: types.Boolean},
			schema.Field{Name: "readings", Type: types.DoubleArray},
			schema.Field{Name: "observedAt", Type: types.Date},
		),
	}
}

func newTestSession(nullCheck bool) *Session {
	return NewSession([]Binding{sensorBinding()}, nullCheck, "UTC", nil)
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession([]Binding{sensorBinding()}, true, "", nil)

	assert.True(t, s.NullCheck())
	assert.Equal(t, "UTC", s.TimeZone(), "empty zone defaults to UTC")
	assert.NotNil(t, s.Registry())
	assert.Empty(t, s.Declarations())
	require.Len(t, s.Bindings(), 1)
	assert.Equal(t, "input", s.Bindings()[0].Name)
}

func TestSessionKeepsConfiguredZone(t *testing.T) {
	s := NewSession(nil, false, "Asia/Shanghai", nil)
	assert.False(t, s.NullCheck())
	assert.Equal(t, "Asia/Shanghai", s.TimeZone())
}

func TestFreshIdentifiersNeverCollide(t *testing.T) {
	s := newTestSession(true)
	lit := &ast.Literal{Value: int64(1), Type: types.Int}

	seen := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		code, err := s.Compile(lit)
		require.NoError(t, err)
		_, dup := seen[code.ResultTerm]
		assert.False(t, dup, "result identifier %s reused", code.ResultTerm)
		seen[code.ResultTerm] = struct{}{}
		_, dup = seen[code.NullTerm]
		assert.False(t, dup, "null identifier %s reused", code.NullTerm)
		seen[code.NullTerm] = struct{}{}
	}
}
