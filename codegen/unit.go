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
	"sort"
	"strconv"
	"strings"
)

const (
	// UnitPackage is the package name of every assembled generation unit.
	UnitPackage = "genexpr"
	// UnitFunc is the unit's entry point, invoked with the bound inputs in
	// binding order.
	UnitFunc = "Eval"
)

// EntryPoint is the qualified name the downstream compiler extracts after
// interpreting a unit.
const EntryPoint = UnitPackage + "." + UnitFunc

// AssembleUnit embeds a compiled root fragment into a complete generation
// unit: a Go source file whose Eval function asserts the inputs out of the
// generic row slots, declares and initializes the session's reusable
// members, executes the fragment and returns the root value. Member
// declarations precede init statements, init statements precede the
// fragment. Runtime panics in generated code are recovered into the error
// return; a null root yields (nil, nil).
func (s *Session) AssembleUnit(root GeneratedCode) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "package %s\n\n", UnitPackage)

	imports := append([]string{"fmt"}, s.registry.Imports()...)
	sort.Strings(imports)
	imports = dedupSorted(imports)
	buf.WriteString("import (\n")
	for _, path := range imports {
		fmt.Fprintf(&buf, "\t%s\n", strconv.Quote(path))
	}
	buf.WriteString(")\n\n")

	fmt.Fprintf(&buf, "func %s(rows ...interface{}) (out interface{}, err error) {\n", UnitFunc)
	buf.WriteString("\tdefer func() {\n")
	buf.WriteString("\t\tif r := recover(); r != nil {\n")
	buf.WriteString("\t\t\terr = fmt.Errorf(\"runtime evaluation error: %v\", r)\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}()\n")
	buf.WriteString("\t_ = rows\n")
	for i, b := range s.bindings {
		fmt.Fprintf(&buf, "\t%s := rows[%d].(%s)\n\t_ = %s\n", b.Name, i, b.Desc.TypeTerm(), b.Name)
	}

	decls := s.registry.Declarations()
	for _, d := range decls {
		buf.WriteString(indent(d.Member))
	}
	for _, d := range decls {
		if d.Init != "" {
			buf.WriteString(indent(d.Init))
		}
	}

	buf.WriteString(indent(root.Code))
	if s.nullCheck && root.NullTerm != "" {
		fmt.Fprintf(&buf, "\tif %s {\n\t\treturn nil, nil\n\t}\n", root.NullTerm)
	}
	fmt.Fprintf(&buf, "\treturn %s, nil\n}\n", root.ResultTerm)
	return buf.String()
}

// indent shifts every non-empty line of code one tab to the right and
// guarantees a trailing newline.
func indent(code string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	var buf strings.Builder
	for _, line := range lines {
		if line == "" {
			buf.WriteString("\n")
			continue
		}
		buf.WriteString("\t")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.String()
}

func dedupSorted(paths []string) []string {
	out := paths[:0]
	for i, p := range paths {
		if i == 0 || paths[i-1] != p {
			out = append(out, p)
		}
	}
	return out
}
