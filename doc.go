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

/*
Package exprgen generates and runs Go code for typed row expressions.

It takes a typed expression tree over tabular inputs, emits Go statements
evaluating it, assembles them into a self-contained source unit and
interprets that unit into an invocable function. It is the expression
evaluation layer for query engines that compile predicates and projections
per query instead of interpreting trees row by row.

# Features

• Typed expression trees - literals, field access, arithmetic, comparison,
logical and bitwise operators, casts, substring, abs, null tests
• Null propagation - a configurable discipline where operator nodes are
null iff an operand is null, with per-type default values
• Field access strategies - index, getter-method and struct-member access
resolved from composite type descriptors, including alias renaming
• Shared declarations - date/time formatters and date constants registered
once per session no matter how often they are referenced
• Textual front end - an expression dialect parsed and type-resolved
against the input bindings
• In-process execution - assembled units interpreted with yaegi, no
external toolchain

# Example

Compile and run an expression over a positional row:

	package main

	import (
		"fmt"

		"github.com/rulego/exprgen"
		"github.com/rulego/exprgen/codegen"
		"github.com/rulego/exprgen/schema"
		"github.com/rulego/exprgen/types"
	)

	func main() {
		desc := schema.NewRowDescriptor(
			schema.Field{Name: "temperature", Type: types.Double},
			schema.Field{Name: "device", Type: types.String},
		)
		binding := codegen.Binding{Name: "input", Desc: desc}

		gen := exprgen.New()
		eval, err := gen.CompileFunc("temperature * 1.8 + 32.0", binding)
		if err != nil {
			panic(err)
		}

		out, err := eval([]interface{}{25.5, "sensor001"})
		fmt.Println(out, err) // 77.9 <nil>
	}

A null field simply makes the result null:

	out, _ = eval([]interface{}{nil, "sensor001"})
	fmt.Println(out) // <nil>

# Packages

The tree types live in ast, composite type descriptors in schema, the
generator core in codegen, the textual front end in parser and the yaegi
bridge in compiler. The exprrt package is the runtime support library that
generated units link against.
*/
package exprgen
