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

// Package ast defines the immutable typed expression tree consumed by the
// code generator. Every node carries an authoritative semantic type tag;
// the generator never re-infers types.
package ast

import "github.com/rulego/exprgen/types"

// Expression is the closed node union. Concrete variants are the pointer
// structs below; codegen dispatches on them exhaustively and rejects any
// shape it does not recognize.
type Expression interface {
	// Kind returns the node's declared semantic type.
	Kind() types.Kind
}

// BinaryOp enumerates the binary operator variants.
type BinaryOp int

const (
	OpPlus BinaryOp = iota
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual
	OpEqualTo
	OpNotEqualTo
	OpAnd
	OpOr
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
)

var binaryTokens = map[BinaryOp]string{
	OpPlus:               "+",
	OpMinus:              "-",
	OpMul:                "*",
	OpDiv:                "/",
	OpMod:                "%",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpEqualTo:            "==",
	OpNotEqualTo:         "!=",
	OpAnd:                "&&",
	OpOr:                 "||",
	OpBitwiseAnd:         "&",
	OpBitwiseOr:          "|",
	OpBitwiseXor:         "^",
}

// Token returns the Go operator token for op.
func (op BinaryOp) Token() string { return binaryTokens[op] }

func (op BinaryOp) String() string { return binaryTokens[op] }

// IsArithmetic reports whether op is +, -, *, / or %.
func (op BinaryOp) IsArithmetic() bool { return op >= OpPlus && op <= OpMod }

// IsComparison reports whether op is an ordering comparison (not equality).
func (op BinaryOp) IsComparison() bool { return op >= OpGreaterThan && op <= OpLessThanOrEqual }

// IsEquality reports whether op is == or !=.
func (op BinaryOp) IsEquality() bool { return op == OpEqualTo || op == OpNotEqualTo }

// IsLogical reports whether op is a boolean connective.
func (op BinaryOp) IsLogical() bool { return op == OpAnd || op == OpOr }

// IsBitwise reports whether op is &, | or ^.
func (op BinaryOp) IsBitwise() bool { return op >= OpBitwiseAnd && op <= OpBitwiseXor }

// UnaryOp enumerates the unary operator variants.
type UnaryOp int

const (
	OpUnaryMinus UnaryOp = iota
	OpNot
	OpBitwiseNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpUnaryMinus:
		return "-"
	case OpNot:
		return "!"
	case OpBitwiseNot:
		return "^"
	}
	return "?"
}

// Literal is a constant value. A nil Value denotes the null literal.
type Literal struct {
	Value interface{}
	Type  types.Kind
}

func (n *Literal) Kind() types.Kind { return n.Type }

// FieldRef reads a named field from the first input binding declaring it.
type FieldRef struct {
	Name string
	Type types.Kind
}

func (n *FieldRef) Kind() types.Kind { return n.Type }

// Binary applies a binary operator. Type is the declared result type for
// arithmetic and bitwise operators; comparisons, equality and logical
// connectives always yield Boolean.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
	Type  types.Kind
}

func (n *Binary) Kind() types.Kind {
	if n.Op.IsComparison() || n.Op.IsEquality() || n.Op.IsLogical() {
		return types.Boolean
	}
	return n.Type
}

// Unary applies a unary operator. Not yields Boolean; negation variants
// yield the declared Type.
type Unary struct {
	Op    UnaryOp
	Child Expression
	Type  types.Kind
}

func (n *Unary) Kind() types.Kind {
	if n.Op == OpNot {
		return types.Boolean
	}
	return n.Type
}

// Cast converts the child value to the target type.
type Cast struct {
	Child  Expression
	Target types.Kind
}

func (n *Cast) Kind() types.Kind { return n.Target }

// Substring extracts str[begin:end]. An End literal equal to math.MaxInt32
// selects the substring-to-end form.
type Substring struct {
	Str   Expression
	Begin Expression
	End   Expression
}

func (n *Substring) Kind() types.Kind { return types.String }

// IsNull tests whether the child value is absent.
type IsNull struct {
	Child Expression
}

func (n *IsNull) Kind() types.Kind { return types.Boolean }

// IsNotNull is the complement of IsNull.
type IsNotNull struct {
	Child Expression
}

func (n *IsNotNull) Kind() types.Kind { return types.Boolean }

// Abs is the absolute-value function over a numeric child.
type Abs struct {
	Child Expression
}

func (n *Abs) Kind() types.Kind { return n.Child.Kind() }

// Naming attaches an output alias to its child. It is transparent for code
// generation and must be unwrapped before dispatch.
type Naming struct {
	Child Expression
	Alias string
}

func (n *Naming) Kind() types.Kind { return n.Child.Kind() }

// Unwrap strips any Naming wrappers around e.
func Unwrap(e Expression) Expression {
	for {
		n, ok := e.(*Naming)
		if !ok {
			return e
		}
		e = n.Child
	}
}
