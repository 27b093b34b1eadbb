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

// Package types defines the closed set of semantic value types carried by
// expression nodes, together with the lookup tables that map each type to
// its Go spelling, its default-on-null value and its absent-value test.
// The tables are the single source of truth for code generation; nothing
// in the generator inspects values with reflection.
package types

import "strconv"

// Kind is a semantic type tag. The set is closed: every expression node
// carries exactly one Kind and the generator dispatches on it exhaustively.
type Kind int

const (
	Unknown Kind = iota
	Int
	Long
	Short
	Byte
	Float
	Double
	Boolean
	String
	Char
	Date
	IntArray
	LongArray
	ShortArray
	ByteArray
	FloatArray
	DoubleArray
	BooleanArray
	StringArray
	CharArray
	Composite
)

// NullString is the sentinel bound to string-typed results when the value
// is null. Generated absent-value tests on strings compare against it.
const NullString = "<null>"

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var kindNames = map[Kind]string{
	Int:          "int",
	Long:         "long",
	Short:        "short",
	Byte:         "byte",
	Float:        "float",
	Double:       "double",
	Boolean:      "boolean",
	String:       "string",
	Char:         "char",
	Date:         "date",
	IntArray:     "int[]",
	LongArray:    "long[]",
	ShortArray:   "short[]",
	ByteArray:    "byte[]",
	FloatArray:   "float[]",
	DoubleArray:  "double[]",
	BooleanArray: "boolean[]",
	StringArray:  "string[]",
	CharArray:    "char[]",
	Composite:    "composite",
}

var spellings = map[Kind]string{
	Int:          "int32",
	Long:         "int64",
	Short:        "int16",
	Byte:         "int8",
	Float:        "float32",
	Double:       "float64",
	Boolean:      "bool",
	String:       "string",
	Char:         "rune",
	Date:         "time.Time",
	IntArray:     "[]int32",
	LongArray:    "[]int64",
	ShortArray:   "[]int16",
	ByteArray:    "[]int8",
	FloatArray:   "[]float32",
	DoubleArray:  "[]float64",
	BooleanArray: "[]bool",
	StringArray:  "[]string",
	CharArray:    "[]rune",
}

// Spelling returns the Go type term for k. Composite and unknown kinds
// spell as the empty interface.
func (k Kind) Spelling() string {
	if s, ok := spellings[k]; ok {
		return s
	}
	return "interface{}"
}

// DefaultTerm returns the typed Go expression bound to a result identifier
// when its value is null. An empty string means the declared zero value
// already is the absent value and no assignment is needed.
func (k Kind) DefaultTerm() string {
	switch k {
	case Int, Long, Short, Byte:
		return k.Spelling() + "(-1)"
	case Float, Double:
		return k.Spelling() + "(-1.0)"
	case Boolean:
		return "false"
	case String:
		return strconv.Quote(NullString)
	case Char:
		return "rune(0)"
	default:
		return ""
	}
}

// NullTest returns a Go boolean expression testing whether term holds the
// absent value of kind k. Primitive kinds cannot carry an absent value, so
// their test is the constant false.
func (k Kind) NullTest(term string) string {
	switch {
	case k == Date:
		return term + ".IsZero()"
	case k == String:
		return term + " == " + strconv.Quote(NullString)
	case k.IsArray() || k == Composite || k == Unknown:
		return term + " == nil"
	default:
		return "false"
	}
}

// IsNumeric reports whether k supports arithmetic.
func (k Kind) IsNumeric() bool {
	switch k {
	case Int, Long, Short, Byte, Float, Double:
		return true
	}
	return false
}

// IsIntegral reports whether k is a fixed-width integer type.
func (k Kind) IsIntegral() bool {
	switch k {
	case Int, Long, Short, Byte:
		return true
	}
	return false
}

// IsComparable reports whether k supports ordering comparisons.
func (k Kind) IsComparable() bool {
	return k.IsNumeric() || k == String || k == Char
}

// IsArray reports whether k is one of the primitive-array variants.
func (k Kind) IsArray() bool {
	switch k {
	case IntArray, LongArray, ShortArray, ByteArray, FloatArray,
		DoubleArray, BooleanArray, StringArray, CharArray:
		return true
	}
	return false
}
