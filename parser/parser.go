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

// Package parser is the textual front end over the typed expression tree.
// It parses an expression with expr-lang/expr's parser and translates the
// resulting AST into ast nodes, resolving field types against the input
// bindings and promoting numeric operand types. The code generator itself
// never sees untyped nodes; this package is a convenience layer on top of
// it.
package parser

import (
	"fmt"
	"math"

	exprast "github.com/expr-lang/expr/ast"
	exprparser "github.com/expr-lang/expr/parser"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/codegen"
	"github.com/rulego/exprgen/types"
)

// Parse translates src into a typed expression tree. Field references are
// typed by the first binding whose descriptor declares them.
func Parse(src string, bindings []codegen.Binding) (ast.Expression, error) {
	tree, err := exprparser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	t := &translator{bindings: bindings}
	return t.translate(tree.Node)
}

type translator struct {
	bindings []codegen.Binding
}

func (t *translator) translate(node exprast.Node) (ast.Expression, error) {
	switch n := node.(type) {
	case *exprast.NilNode:
		return &ast.Literal{Value: nil, Type: types.Composite}, nil
	case *exprast.IntegerNode:
		if n.Value >= math.MinInt32 && n.Value <= math.MaxInt32 {
			return &ast.Literal{Value: int64(n.Value), Type: types.Int}, nil
		}
		return &ast.Literal{Value: int64(n.Value), Type: types.Long}, nil
	case *exprast.FloatNode:
		return &ast.Literal{Value: n.Value, Type: types.Double}, nil
	case *exprast.BoolNode:
		return &ast.Literal{Value: n.Value, Type: types.Boolean}, nil
	case *exprast.StringNode:
		return &ast.Literal{Value: n.Value, Type: types.String}, nil
	case *exprast.IdentifierNode:
		return t.fieldRef(n.Value)
	case *exprast.UnaryNode:
		return t.unary(n)
	case *exprast.BinaryNode:
		return t.binary(n)
	case *exprast.CallNode:
		return t.call(n)
	case *exprast.BuiltinNode:
		// expr-lang reserves several function names (int, float, string,
		// date, abs, ...) and parses them into builtin nodes instead of
		// calls. They mean the same thing here.
		return t.function(n.Name, n.Arguments)
	default:
		return nil, fmt.Errorf("unsupported syntax %T", node)
	}
}

func (t *translator) fieldRef(name string) (ast.Expression, error) {
	for _, b := range t.bindings {
		if b.Desc.HasField(name) {
			return &ast.FieldRef{Name: name, Type: b.Desc.FieldType(name)}, nil
		}
	}
	return nil, fmt.Errorf("unknown field %q", name)
}

func (t *translator) unary(n *exprast.UnaryNode) (ast.Expression, error) {
	child, err := t.translate(n.Node)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		return &ast.Unary{Op: ast.OpUnaryMinus, Child: child, Type: child.Kind()}, nil
	case "+":
		return child, nil
	case "!", "not":
		return &ast.Unary{Op: ast.OpNot, Child: child, Type: types.Boolean}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %q", n.Operator)
	}
}

var binaryOps = map[string]ast.BinaryOp{
	"+":   ast.OpPlus,
	"-":   ast.OpMinus,
	"*":   ast.OpMul,
	"/":   ast.OpDiv,
	"%":   ast.OpMod,
	">":   ast.OpGreaterThan,
	">=":  ast.OpGreaterThanOrEqual,
	"<":   ast.OpLessThan,
	"<=":  ast.OpLessThanOrEqual,
	"==":  ast.OpEqualTo,
	"!=":  ast.OpNotEqualTo,
	"&&":  ast.OpAnd,
	"and": ast.OpAnd,
	"||":  ast.OpOr,
	"or":  ast.OpOr,
	// The dialect reads ^ as bitwise xor, not exponentiation.
	"^": ast.OpBitwiseXor,
}

func (t *translator) binary(n *exprast.BinaryNode) (ast.Expression, error) {
	op, ok := binaryOps[n.Operator]
	if !ok {
		return nil, fmt.Errorf("unsupported binary operator %q", n.Operator)
	}
	left, err := t.translate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.translate(n.Right)
	if err != nil {
		return nil, err
	}

	node := &ast.Binary{Op: op, Left: left, Right: right}
	switch {
	case op.IsArithmetic() || op.IsBitwise():
		kind, err := promote(left.Kind(), right.Kind())
		if err != nil {
			return nil, fmt.Errorf("operator %q: %w", n.Operator, err)
		}
		node.Type = kind
		node.Left = coerce(left, kind)
		node.Right = coerce(right, kind)
	case op.IsComparison() || op.IsEquality():
		// Mixed-width numeric operands are widened with explicit casts so
		// the declared types line up.
		if left.Kind().IsNumeric() && right.Kind().IsNumeric() && left.Kind() != right.Kind() {
			kind, err := promote(left.Kind(), right.Kind())
			if err != nil {
				return nil, fmt.Errorf("operator %q: %w", n.Operator, err)
			}
			node.Left = coerce(left, kind)
			node.Right = coerce(right, kind)
		}
		node.Type = types.Boolean
	default:
		node.Type = types.Boolean
	}
	return node, nil
}

// coerce wraps e in an explicit cast when its declared type differs from
// kind.
func coerce(e ast.Expression, kind types.Kind) ast.Expression {
	if e.Kind() == kind {
		return e
	}
	return &ast.Cast{Child: e, Target: kind}
}

func (t *translator) call(n *exprast.CallNode) (ast.Expression, error) {
	callee, ok := n.Callee.(*exprast.IdentifierNode)
	if !ok {
		return nil, fmt.Errorf("unsupported call target %T", n.Callee)
	}
	return t.function(callee.Value, n.Arguments)
}

func (t *translator) function(name string, argNodes []exprast.Node) (ast.Expression, error) {
	args := make([]ast.Expression, len(argNodes))
	for i, a := range argNodes {
		arg, err := t.translate(a)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	if target, ok := castTargets[name]; ok {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		return &ast.Cast{Child: args[0], Target: target}, nil
	}

	switch name {
	case "abs":
		if len(args) != 1 {
			return nil, fmt.Errorf("abs expects 1 argument, got %d", len(args))
		}
		return &ast.Abs{Child: args[0]}, nil
	case "is_null":
		if len(args) != 1 {
			return nil, fmt.Errorf("is_null expects 1 argument, got %d", len(args))
		}
		return &ast.IsNull{Child: args[0]}, nil
	case "is_not_null":
		if len(args) != 1 {
			return nil, fmt.Errorf("is_not_null expects 1 argument, got %d", len(args))
		}
		return &ast.IsNotNull{Child: args[0]}, nil
	case "substring":
		switch len(args) {
		case 2:
			// Two-argument substring runs to the end of the string.
			end := &ast.Literal{Value: int64(math.MaxInt32), Type: types.Int}
			return &ast.Substring{Str: args[0], Begin: args[1], End: end}, nil
		case 3:
			return &ast.Substring{Str: args[0], Begin: args[1], End: args[2]}, nil
		default:
			return nil, fmt.Errorf("substring expects 2 or 3 arguments, got %d", len(args))
		}
	default:
		return nil, fmt.Errorf("unknown function %q", name)
	}
}

// castTargets maps conversion function names to their semantic target
// types.
var castTargets = map[string]types.Kind{
	"int":    types.Int,
	"long":   types.Long,
	"short":  types.Short,
	"byte":   types.Byte,
	"float":  types.Float,
	"double": types.Double,
	"bool":   types.Boolean,
	"string": types.String,
	"char":   types.Char,
	"date":   types.Date,
}

var numericRank = map[types.Kind]int{
	types.Byte:   1,
	types.Short:  2,
	types.Int:    3,
	types.Long:   4,
	types.Float:  5,
	types.Double: 6,
}

// promote picks the wider of two numeric operand types.
func promote(left, right types.Kind) (types.Kind, error) {
	lr, lok := numericRank[left]
	rr, rok := numericRank[right]
	if !lok || !rok {
		return types.Unknown, fmt.Errorf("non-numeric operands %s and %s", left, right)
	}
	if lr >= rr {
		return left, nil
	}
	return right, nil
}
