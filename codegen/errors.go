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
	"fmt"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/types"
)

// ErrorKind classifies generation failures.
type ErrorKind int

const (
	// ErrUnknownNode means the expression node matches no recognized
	// variant/type combination.
	ErrUnknownNode ErrorKind = iota
	// ErrUnresolvedField means no input binding's descriptor declares the
	// referenced field name.
	ErrUnresolvedField
	// ErrIllegalCast means the cast's source/target type pair is not
	// allowed.
	ErrIllegalCast
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownNode:
		return "UNKNOWN_NODE"
	case ErrUnresolvedField:
		return "UNRESOLVED_FIELD"
	case ErrIllegalCast:
		return "ILLEGAL_CAST"
	default:
		return "UNKNOWN_ERROR"
	}
}

// GenError is the single generation-error type. It carries the offending
// node and aborts the entire compile for its root expression; no partial
// code is returned alongside it.
type GenError struct {
	Kind    ErrorKind
	Node    ast.Expression
	Message string
}

func (e *GenError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("[%s] %s (node %T)", e.Kind, e.Message, e.Node)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func errUnknownNode(node ast.Expression, format string, args ...interface{}) *GenError {
	return &GenError{Kind: ErrUnknownNode, Node: node, Message: fmt.Sprintf(format, args...)}
}

func errUnresolvedField(node ast.Expression, name string) *GenError {
	return &GenError{
		Kind:    ErrUnresolvedField,
		Node:    node,
		Message: fmt.Sprintf("no input binding declares field %q", name),
	}
}

func errIllegalCast(node ast.Expression, from, to types.Kind) *GenError {
	return &GenError{
		Kind:    ErrIllegalCast,
		Node:    node,
		Message: fmt.Sprintf("cannot cast %s to %s", from, to),
	}
}
