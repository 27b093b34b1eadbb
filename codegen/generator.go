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
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cast"

	"github.com/rulego/exprgen/ast"
	"github.com/rulego/exprgen/schema"
	"github.com/rulego/exprgen/types"
)

// GeneratedCode is the result of compiling one expression node: the
// emitted statements, the identifier bound to the computed value, and the
// identifier bound to the nullity flag. ResultTerm is always bound after
// Code executes; NullTerm is bound only in null-check mode.
type GeneratedCode struct {
	Code       string
	ResultTerm string
	NullTerm   string
}

// Compile generates the statements evaluating root against the session's
// input bindings. It recurses depth-first; compound nodes compile their
// children first and combine the children's result and nullity
// identifiers. Generation errors abort the whole compile; no partial code
// is returned.
func (s *Session) Compile(root ast.Expression) (GeneratedCode, error) {
	s.log.Debug("compiling expression (nullCheck=%v, timeZone=%s):\n%s",
		s.nullCheck, s.timeZone, spew.Sdump(root))
	code, err := s.compile(root)
	if err != nil {
		s.log.Error("expression generation failed: %v", err)
		return GeneratedCode{}, err
	}
	return code, nil
}

func (s *Session) compile(node ast.Expression) (GeneratedCode, error) {
	switch n := ast.Unwrap(node).(type) {
	case *ast.Literal:
		return s.compileLiteral(n)
	case *ast.FieldRef:
		return s.compileFieldRef(n)
	case *ast.Binary:
		return s.compileBinary(n)
	case *ast.Unary:
		return s.compileUnary(n)
	case *ast.Cast:
		return s.compileCast(n)
	case *ast.Substring:
		return s.compileSubstring(n)
	case *ast.IsNull:
		return s.compileNullTest(n, n.Child, false)
	case *ast.IsNotNull:
		return s.compileNullTest(n, n.Child, true)
	case *ast.Abs:
		return s.compileAbs(n)
	default:
		return GeneratedCode{}, errUnknownNode(node, "unrecognized expression node")
	}
}

// declareResult writes a typed var declaration for res and records the
// imports its spelling needs.
func (s *Session) declareResult(buf *strings.Builder, res string, kind types.Kind) {
	if kind == types.Date {
		s.registry.AddImport("time")
	}
	fmt.Fprintf(buf, "var %s %s\n", res, kind.Spelling())
}

func (s *Session) compileLiteral(n *ast.Literal) (GeneratedCode, error) {
	if n.Value == nil {
		return s.compileNullLiteral(n)
	}
	res := s.fresh("res")
	var term string
	switch n.Type {
	case types.Int, types.Long, types.Short, types.Byte:
		v, err := cast.ToInt64E(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported %s literal value %v", n.Type, n.Value)
		}
		term = fmt.Sprintf("%s(%d)", n.Type.Spelling(), v)
	case types.Float:
		v, err := cast.ToFloat64E(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported float literal value %v", n.Value)
		}
		term = fmt.Sprintf("float32(%s)", strconv.FormatFloat(v, 'g', -1, 32))
	case types.Double:
		v, err := cast.ToFloat64E(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported double literal value %v", n.Value)
		}
		term = fmt.Sprintf("float64(%s)", strconv.FormatFloat(v, 'g', -1, 64))
	case types.Boolean:
		v, err := cast.ToBoolE(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported boolean literal value %v", n.Value)
		}
		term = strconv.FormatBool(v)
	case types.String:
		v, err := cast.ToStringE(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported string literal value %v", n.Value)
		}
		term = strconv.Quote(v)
	case types.Char:
		r, err := charValue(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported char literal value %v", n.Value)
		}
		term = strconv.QuoteRune(r)
	case types.Date:
		t, err := cast.ToTimeE(n.Value)
		if err != nil {
			return GeneratedCode{}, errUnknownNode(n, "unsupported date literal value %v", n.Value)
		}
		term = s.registry.EnsureDateConstant(t)
	default:
		return GeneratedCode{}, errUnknownNode(n, "unsupported literal type %s", n.Type)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%s := %s\n", res, term)
	out := GeneratedCode{ResultTerm: res}
	if s.nullCheck {
		out.NullTerm = s.fresh("null")
		fmt.Fprintf(&buf, "%s := false\n", out.NullTerm)
	}
	out.Code = buf.String()
	return out, nil
}

// compileNullLiteral binds the type's default-on-null value. With null
// checking off no nullity statement is emitted; callers in that mode
// guarantee null values never flow at runtime.
func (s *Session) compileNullLiteral(n *ast.Literal) (GeneratedCode, error) {
	res := s.fresh("res")
	var buf strings.Builder
	if def := n.Type.DefaultTerm(); def != "" {
		fmt.Fprintf(&buf, "%s := %s\n", res, def)
	} else {
		s.declareResult(&buf, res, n.Type)
	}
	out := GeneratedCode{ResultTerm: res}
	if s.nullCheck {
		out.NullTerm = s.fresh("null")
		fmt.Fprintf(&buf, "%s := true\n", out.NullTerm)
	}
	out.Code = buf.String()
	return out, nil
}

func (s *Session) compileFieldRef(n *ast.FieldRef) (GeneratedCode, error) {
	var binding *Binding
	for i := range s.bindings {
		if s.bindings[i].Desc.HasField(n.Name) {
			binding = &s.bindings[i]
			break
		}
	}
	if binding == nil {
		return GeneratedCode{}, errUnresolvedField(n, n.Name)
	}
	accessor, err := schema.Resolve(binding.Desc, n.Name)
	if err != nil {
		return GeneratedCode{}, &GenError{Kind: ErrUnresolvedField, Node: n, Message: err.Error()}
	}

	raw := s.fresh("raw")
	res := s.fresh("res")
	spelling := n.Type.Spelling()
	var buf strings.Builder
	// The raw binding is interface-typed so absence is a uniform nil test
	// regardless of the access strategy.
	fmt.Fprintf(&buf, "var %s interface{} = %s\n", raw, accessor.Render(binding.Name))

	out := GeneratedCode{ResultTerm: res}
	if s.nullCheck {
		out.NullTerm = s.fresh("null")
		fmt.Fprintf(&buf, "%s := %s == nil\n", out.NullTerm, raw)
		s.declareResult(&buf, res, n.Type)
		if spelling == "interface{}" {
			fmt.Fprintf(&buf, "if !%s {\n\t%s = %s\n}\n", out.NullTerm, res, raw)
		} else {
			fmt.Fprintf(&buf, "if !%s {\n\t%s = %s.(%s)\n}\n", out.NullTerm, res, raw, spelling)
		}
	} else {
		if n.Type == types.Date {
			s.registry.AddImport("time")
		}
		if spelling == "interface{}" {
			fmt.Fprintf(&buf, "%s := %s\n", res, raw)
		} else {
			fmt.Fprintf(&buf, "%s := %s.(%s)\n", res, raw, spelling)
		}
	}
	out.Code = buf.String()
	return out, nil
}

func (s *Session) compileBinary(n *ast.Binary) (GeneratedCode, error) {
	left, err := s.compile(n.Left)
	if err != nil {
		return GeneratedCode{}, err
	}
	right, err := s.compile(n.Right)
	if err != nil {
		return GeneratedCode{}, err
	}
	term, err := s.binaryTerm(n, left.ResultTerm, right.ResultTerm)
	if err != nil {
		return GeneratedCode{}, err
	}
	return s.emitBinary(n.Kind(), left, right, term), nil
}

// binaryTerm renders the operator application over the operands' result
// identifiers.
func (s *Session) binaryTerm(n *ast.Binary, l, r string) (string, error) {
	op := n.Op
	switch {
	case op.IsArithmetic():
		kind := n.Kind()
		if !kind.IsNumeric() {
			return "", errUnknownNode(n, "arithmetic %s over non-numeric type %s", op, kind)
		}
		if op == ast.OpMod && (kind == types.Float || kind == types.Double) {
			s.registry.AddImport("math")
			if kind == types.Float {
				return fmt.Sprintf("float32(math.Mod(float64(%s), float64(%s)))", l, r), nil
			}
			return fmt.Sprintf("math.Mod(%s, %s)", l, r), nil
		}
		return fmt.Sprintf("%s %s %s", l, op.Token(), r), nil
	case op.IsComparison():
		operandKind := n.Left.Kind()
		if !operandKind.IsComparable() {
			return "", errUnknownNode(n, "comparison %s over non-comparable type %s", op, operandKind)
		}
		return fmt.Sprintf("%s %s %s", l, op.Token(), r), nil
	case op.IsEquality():
		operandKind := n.Left.Kind()
		switch {
		case operandKind == types.Date:
			// Value equality, never identity.
			if op == ast.OpNotEqualTo {
				return fmt.Sprintf("!%s.Equal(%s)", l, r), nil
			}
			return fmt.Sprintf("%s.Equal(%s)", l, r), nil
		case operandKind.IsArray() || operandKind == types.Composite:
			s.registry.AddImport("reflect")
			if op == ast.OpNotEqualTo {
				return fmt.Sprintf("!reflect.DeepEqual(%s, %s)", l, r), nil
			}
			return fmt.Sprintf("reflect.DeepEqual(%s, %s)", l, r), nil
		default:
			return fmt.Sprintf("%s %s %s", l, op.Token(), r), nil
		}
	case op.IsLogical():
		return fmt.Sprintf("%s %s %s", l, op.Token(), r), nil
	case op.IsBitwise():
		kind := n.Kind()
		if !kind.IsIntegral() {
			return "", errUnknownNode(n, "bitwise %s over non-integral type %s", op, kind)
		}
		// Operands are coerced to integer width before the bit operation.
		return fmt.Sprintf("%s(int64(%s) %s int64(%s))", kind.Spelling(), l, op.Token(), r), nil
	default:
		return "", errUnknownNode(n, "unrecognized binary operator %s", op)
	}
}

// emitBinary surrounds the operator term with the null-propagation
// discipline: the node is null iff either operand is null; when null the
// result takes the type's default-on-null value and the operator is not
// evaluated.
func (s *Session) emitBinary(kind types.Kind, left, right GeneratedCode, term string) GeneratedCode {
	var buf strings.Builder
	buf.WriteString(left.Code)
	buf.WriteString(right.Code)
	res := s.fresh("res")

	if !s.nullCheck {
		fmt.Fprintf(&buf, "%s := %s\n", res, term)
		return GeneratedCode{Code: buf.String(), ResultTerm: res}
	}

	null := s.fresh("null")
	fmt.Fprintf(&buf, "%s := %s || %s\n", null, left.NullTerm, right.NullTerm)
	s.declareResult(&buf, res, kind)
	if def := kind.DefaultTerm(); def != "" {
		fmt.Fprintf(&buf, "if %s {\n\t%s = %s\n} else {\n\t%s = %s\n}\n", null, res, def, res, term)
	} else {
		fmt.Fprintf(&buf, "if !%s {\n\t%s = %s\n}\n", null, res, term)
	}
	return GeneratedCode{Code: buf.String(), ResultTerm: res, NullTerm: null}
}

func (s *Session) compileUnary(n *ast.Unary) (GeneratedCode, error) {
	child, err := s.compile(n.Child)
	if err != nil {
		return GeneratedCode{}, err
	}
	kind := n.Kind()
	var term string
	switch n.Op {
	case ast.OpUnaryMinus:
		if !kind.IsNumeric() {
			return GeneratedCode{}, errUnknownNode(n, "negation over non-numeric type %s", kind)
		}
		term = "-" + child.ResultTerm
	case ast.OpNot:
		term = "!" + child.ResultTerm
	case ast.OpBitwiseNot:
		if !kind.IsIntegral() {
			return GeneratedCode{}, errUnknownNode(n, "bitwise not over non-integral type %s", kind)
		}
		term = fmt.Sprintf("%s(^int64(%s))", kind.Spelling(), child.ResultTerm)
	default:
		return GeneratedCode{}, errUnknownNode(n, "unrecognized unary operator %s", n.Op)
	}
	return s.emitUnary(kind, child, term), nil
}

// emitUnary wraps a single-operand term; the node's nullity is exactly the
// child's, so the child's nullity identifier is reused.
func (s *Session) emitUnary(kind types.Kind, child GeneratedCode, term string) GeneratedCode {
	var buf strings.Builder
	buf.WriteString(child.Code)
	res := s.fresh("res")

	if !s.nullCheck {
		fmt.Fprintf(&buf, "%s := %s\n", res, term)
		return GeneratedCode{Code: buf.String(), ResultTerm: res}
	}

	s.declareResult(&buf, res, kind)
	if def := kind.DefaultTerm(); def != "" {
		fmt.Fprintf(&buf, "if %s {\n\t%s = %s\n} else {\n\t%s = %s\n}\n",
			child.NullTerm, res, def, res, term)
	} else {
		fmt.Fprintf(&buf, "if !%s {\n\t%s = %s\n}\n", child.NullTerm, res, term)
	}
	return GeneratedCode{Code: buf.String(), ResultTerm: res, NullTerm: child.NullTerm}
}

func (s *Session) compileAbs(n *ast.Abs) (GeneratedCode, error) {
	kind := n.Kind()
	if !kind.IsNumeric() {
		return GeneratedCode{}, errUnknownNode(n, "abs over non-numeric type %s", kind)
	}
	child, err := s.compile(n.Child)
	if err != nil {
		return GeneratedCode{}, err
	}

	if kind == types.Float || kind == types.Double {
		s.registry.AddImport("math")
		var term string
		if kind == types.Float {
			term = fmt.Sprintf("float32(math.Abs(float64(%s)))", child.ResultTerm)
		} else {
			term = fmt.Sprintf("math.Abs(%s)", child.ResultTerm)
		}
		return s.emitUnary(kind, child, term), nil
	}

	// Integral abs has no single-expression form; emit compare-and-negate.
	var buf strings.Builder
	buf.WriteString(child.Code)
	res := s.fresh("res")

	if !s.nullCheck {
		fmt.Fprintf(&buf, "%s := %s\nif %s < 0 {\n\t%s = -%s\n}\n",
			res, child.ResultTerm, res, res, res)
		return GeneratedCode{Code: buf.String(), ResultTerm: res}, nil
	}

	s.declareResult(&buf, res, kind)
	fmt.Fprintf(&buf, "if %s {\n\t%s = %s\n} else {\n\t%s = %s\n\tif %s < 0 {\n\t\t%s = -%s\n\t}\n}\n",
		child.NullTerm, res, kind.DefaultTerm(), res, child.ResultTerm, res, res, res)
	return GeneratedCode{Code: buf.String(), ResultTerm: res, NullTerm: child.NullTerm}, nil
}

func (s *Session) compileNullTest(node ast.Expression, childExpr ast.Expression, negate bool) (GeneratedCode, error) {
	child, err := s.compile(childExpr)
	if err != nil {
		return GeneratedCode{}, err
	}
	res := s.fresh("res")
	var buf strings.Builder
	buf.WriteString(child.Code)
	// The child's value identifier may go unreferenced when only its
	// nullity is consumed.
	fmt.Fprintf(&buf, "_ = %s\n", child.ResultTerm)

	out := GeneratedCode{ResultTerm: res}
	if s.nullCheck {
		// The child's nullity flag already answers the question; no new
		// null test is emitted.
		term := child.NullTerm
		if negate {
			term = "!" + term
		}
		fmt.Fprintf(&buf, "%s := %s\n", res, term)
		out.NullTerm = s.fresh("null")
		fmt.Fprintf(&buf, "%s := false\n", out.NullTerm)
	} else {
		test := childExpr.Kind().NullTest(child.ResultTerm)
		if negate {
			test = "!(" + test + ")"
		}
		fmt.Fprintf(&buf, "%s := %s\n", res, test)
	}
	out.Code = buf.String()
	return out, nil
}

func (s *Session) compileCast(n *ast.Cast) (GeneratedCode, error) {
	from := n.Child.Kind()
	target := n.Target

	// Casting the null literal refines it: bind the target type's
	// default-on-null value and nullity directly.
	if lit, ok := ast.Unwrap(n.Child).(*ast.Literal); ok && lit.Value == nil {
		return s.compileNullLiteral(&ast.Literal{Value: nil, Type: target})
	}

	child, err := s.compile(n.Child)
	if err != nil {
		return GeneratedCode{}, err
	}
	if from == target {
		return child, nil
	}

	var term string
	switch {
	case from == types.Date && target == types.String:
		formatter := s.registry.EnsureFormatter(FormatterTimestamp, s.timeZone)
		term = fmt.Sprintf("%s.Format(%s)", formatter, child.ResultTerm)
	case from == types.Date && target == types.Long:
		term = fmt.Sprintf("%s.UnixMilli()", child.ResultTerm)
	case from == types.Date:
		return GeneratedCode{}, errIllegalCast(n, from, target)
	case target == types.Date && from == types.Long:
		s.registry.AddImport("time")
		term = fmt.Sprintf("time.UnixMilli(%s)", child.ResultTerm)
	case target == types.Date && from == types.String:
		// Strict fallback order: timestamp, date, time, integer epoch.
		// All three formatters are registered regardless of which pattern
		// ends up matching at runtime.
		ts := s.registry.EnsureFormatter(FormatterTimestamp, s.timeZone)
		date := s.registry.EnsureFormatter(FormatterDate, s.timeZone)
		clock := s.registry.EnsureFormatter(FormatterTime, s.timeZone)
		term = fmt.Sprintf("exprrt.ParseDate(%s, %s, %s, %s)", child.ResultTerm, ts, date, clock)
	case target == types.Date:
		return GeneratedCode{}, errIllegalCast(n, from, target)
	case from == types.String:
		conv, ok := stringConversions[target]
		if !ok {
			return GeneratedCode{}, errIllegalCast(n, from, target)
		}
		s.registry.AddImport(exprrtImport)
		term = fmt.Sprintf("exprrt.%s(%s)", conv, child.ResultTerm)
	case target == types.String:
		if from == types.Char {
			term = fmt.Sprintf("string(%s)", child.ResultTerm)
		} else if from.IsNumeric() || from == types.Boolean {
			s.registry.AddImport(exprrtImport)
			term = fmt.Sprintf("exprrt.ToString(%s)", child.ResultTerm)
		} else {
			return GeneratedCode{}, errIllegalCast(n, from, target)
		}
	case (from.IsNumeric() || from == types.Char) && (target.IsNumeric() || target == types.Char):
		term = fmt.Sprintf("%s(%s)", target.Spelling(), child.ResultTerm)
	default:
		return GeneratedCode{}, errIllegalCast(n, from, target)
	}

	return s.emitUnary(target, child, term), nil
}

// stringConversions maps a cast target to its exprrt parse helper.
var stringConversions = map[types.Kind]string{
	types.Int:     "ToInt32",
	types.Long:    "ToInt64",
	types.Short:   "ToInt16",
	types.Byte:    "ToInt8",
	types.Float:   "ToFloat32",
	types.Double:  "ToFloat64",
	types.Boolean: "ToBool",
	types.Char:    "ToChar",
}

func (s *Session) compileSubstring(n *ast.Substring) (GeneratedCode, error) {
	if kind := n.Str.Kind(); kind != types.String {
		return GeneratedCode{}, errUnknownNode(n, "substring over non-string type %s", kind)
	}
	if !n.Begin.Kind().IsIntegral() || !n.End.Kind().IsIntegral() {
		return GeneratedCode{}, errUnknownNode(n, "substring bounds over non-integral types %s and %s",
			n.Begin.Kind(), n.End.Kind())
	}
	str, err := s.compile(n.Str)
	if err != nil {
		return GeneratedCode{}, err
	}
	begin, err := s.compile(n.Begin)
	if err != nil {
		return GeneratedCode{}, err
	}

	var buf strings.Builder
	buf.WriteString(str.Code)
	buf.WriteString(begin.Code)
	res := s.fresh("res")

	if isMaxIntSentinel(n.End) {
		// Substring-to-end form: the sentinel end operand is not compiled
		// and contributes no nullity.
		term := fmt.Sprintf("%s[int(%s):]", str.ResultTerm, begin.ResultTerm)
		if !s.nullCheck {
			fmt.Fprintf(&buf, "%s := %s\n", res, term)
			return GeneratedCode{Code: buf.String(), ResultTerm: res}, nil
		}
		null := s.fresh("null")
		fmt.Fprintf(&buf, "%s := %s || %s\n", null, str.NullTerm, begin.NullTerm)
		fmt.Fprintf(&buf, "var %s string\nif %s {\n\t%s = %s\n} else {\n\t%s = %s\n}\n",
			res, null, res, types.String.DefaultTerm(), res, term)
		return GeneratedCode{Code: buf.String(), ResultTerm: res, NullTerm: null}, nil
	}

	end, err := s.compile(n.End)
	if err != nil {
		return GeneratedCode{}, err
	}
	buf.WriteString(end.Code)
	term := fmt.Sprintf("%s[int(%s):int(%s)]", str.ResultTerm, begin.ResultTerm, end.ResultTerm)
	if !s.nullCheck {
		fmt.Fprintf(&buf, "%s := %s\n", res, term)
		return GeneratedCode{Code: buf.String(), ResultTerm: res}, nil
	}
	null := s.fresh("null")
	// Null iff any of the three operands is null.
	fmt.Fprintf(&buf, "%s := %s || %s || %s\n", null, str.NullTerm, begin.NullTerm, end.NullTerm)
	fmt.Fprintf(&buf, "var %s string\nif %s {\n\t%s = %s\n} else {\n\t%s = %s\n}\n",
		res, null, res, types.String.DefaultTerm(), res, term)
	return GeneratedCode{Code: buf.String(), ResultTerm: res, NullTerm: null}, nil
}

// isMaxIntSentinel reports whether the end operand is a literal equal to
// the one maximum-integer sentinel selecting the substring-to-end form.
func isMaxIntSentinel(end ast.Expression) bool {
	lit, ok := ast.Unwrap(end).(*ast.Literal)
	if !ok || lit.Value == nil {
		return false
	}
	v, err := cast.ToInt64E(lit.Value)
	if err != nil {
		return false
	}
	return v == math.MaxInt32
}

func charValue(v interface{}) (rune, error) {
	switch c := v.(type) {
	case rune:
		return c, nil
	case string:
		if c == "" {
			return 0, fmt.Errorf("empty char literal")
		}
		r, _ := utf8.DecodeRuneInString(c)
		return r, nil
	case int:
		return rune(c), nil
	case int64:
		return rune(c), nil
	default:
		return 0, fmt.Errorf("unsupported char value %T", v)
	}
}
