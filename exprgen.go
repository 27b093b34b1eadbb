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
	"fmt"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/codegen"
	"github.com/rulego/exprgen/compiler"
	"github.com/rulego/exprgen/logger"
	"github.com/rulego/exprgen/parser"
)

// Generator is the main entry point of the expression code generator. It
// holds the configuration shared by all compile requests; each request
// gets its own single-use session, so one Generator can serve concurrent
// compiles.
//
// Usage:
//
//	gen := exprgen.New()
//	eval, err := gen.CompileFunc("temperature * 2.0", binding)
//	out, err := eval(row)
type Generator struct {
	nullCheck bool
	timeZone  string
	log       logger.Logger
}

// New creates a Generator. Null checking is on and the time zone is UTC
// unless options say otherwise.
//
// Example:
//
//	// null-permissive generator in local time
//	gen := exprgen.New(
//	    exprgen.WithNullCheck(true),
//	    exprgen.WithTimeZone("Asia/Shanghai"),
//	)
func New(options ...Option) *Generator {
	g := &Generator{
		nullCheck: true,
		timeZone:  "UTC",
		log:       logger.GetDefault(),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// NewSession opens a generation session bound to the given inputs. Use it
// when driving codegen directly, e.g. to compile several expressions into
// one unit against a shared declaration registry.
func (g *Generator) NewSession(bindings ...codegen.Binding) *codegen.Session {
	return codegen.NewSession(bindings, g.nullCheck, g.timeZone, g.log)
}

// Result is the output of one compile request.
type Result struct {
	// Root is the generated fragment for the root expression.
	Root codegen.GeneratedCode
	// Declarations are the reusable members the fragment depends on.
	Declarations []codegen.Declaration
	// Unit is the complete assembled source text.
	Unit string
}

// Compile generates a complete unit evaluating root against the bindings.
func (g *Generator) Compile(root ast.Expression, bindings ...codegen.Binding) (*Result, error) {
	session := g.NewSession(bindings...)
	code, err := session.Compile(root)
	if err != nil {
		return nil, fmt.Errorf("generating expression: %w", err)
	}
	return &Result{
		Root:         code,
		Declarations: session.Declarations(),
		Unit:         session.AssembleUnit(code),
	}, nil
}

// CompileString parses src into a typed expression tree and compiles it.
//
// Example:
//
//	res, err := gen.CompileString("substring(name, 0, 3)", binding)
func (g *Generator) CompileString(src string, bindings ...codegen.Binding) (*Result, error) {
	root, err := parser.Parse(src, bindings)
	if err != nil {
		return nil, fmt.Errorf("parsing expression: %w", err)
	}
	return g.Compile(root, bindings...)
}

// CompileFunc compiles src all the way down to an invocable evaluator,
// handing the assembled unit to the downstream compiler.
//
// Example:
//
//	eval, err := gen.CompileFunc("a + b", binding)
//	out, err := eval([]interface{}{int32(1), int32(2)})
func (g *Generator) CompileFunc(src string, bindings ...codegen.Binding) (compiler.Evaluator, error) {
	res, err := g.CompileString(src, bindings...)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(res.Unit)
}

// CompileTreeFunc is CompileFunc over an already-built expression tree.
func (g *Generator) CompileTreeFunc(root ast.Expression, bindings ...codegen.Binding) (compiler.Evaluator, error) {
	res, err := g.Compile(root, bindings...)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(res.Unit)
}

// NullCheck reports whether generated code carries null propagation.
func (g *Generator) NullCheck() bool { return g.nullCheck }

// TimeZone returns the zone binding generated date/time formatters.
func (g *Generator) TimeZone() string { return g.timeZone }
