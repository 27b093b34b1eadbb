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

// Package compiler is the downstream compiler collaborator: it turns an
// assembled generation unit (Go source text) into an invocable evaluator
// by interpreting it with yaegi. Each unit gets a fresh interpreter, so
// units stay isolated from each other exactly like sessions do.
package compiler

import (
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/rulego/exprgen/codegen"
)

// Evaluator is the invocable unit produced from one assembled source
// text. It is called with the bound inputs in binding order and returns
// the root expression's value, nil when the value is null, or an error
// when the generated code failed at runtime.
type Evaluator func(rows ...interface{}) (interface{}, error)

// Compile interprets src and extracts its entry point. The installed
// symbol sets (Go standard library plus the exprrt runtime support
// package) are the unit's loading context; src must be a complete unit as
// produced by Session.AssembleUnit.
func Compile(src string) (Evaluator, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("compiler: installing stdlib symbols: %w", err)
	}
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("compiler: installing runtime symbols: %w", err)
	}
	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("compiler: unit does not compile: %w", err)
	}
	v, err := i.Eval(codegen.EntryPoint)
	if err != nil {
		return nil, fmt.Errorf("compiler: extracting entry point %s: %w", codegen.EntryPoint, err)
	}
	fn, ok := v.Interface().(func(...interface{}) (interface{}, error))
	if !ok {
		return nil, fmt.Errorf("compiler: entry point has unexpected type %T", v.Interface())
	}
	return Evaluator(fn), nil
}
