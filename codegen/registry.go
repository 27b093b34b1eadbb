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
	"time"
)

// exprrtImport is the runtime support package generated units import for
// formatters, parse fallbacks and string conversions.
const exprrtImport = "github.com/rulego/exprgen/exprrt"

// Declaration is one reusable member declaration plus its one-time init
// statement. Member declarations are emitted before init statements, init
// statements before any code depending on them.
type Declaration struct {
	Member string
	Init   string
}

// Registry is the session-scoped deduplicated store of reusable
// declarations, required imports and named date constants. Membership is
// by exact member text; emission order is insertion order.
type Registry struct {
	decls      []Declaration
	seen       map[string]struct{}
	imports    []string
	importSeen map[string]struct{}
	dates      map[int64]string
}

func NewRegistry() *Registry {
	return &Registry{
		seen:       make(map[string]struct{}),
		importSeen: make(map[string]struct{}),
		dates:      make(map[int64]string),
	}
}

// Ensure registers the (member, init) pair once. It reports whether the
// pair was newly added; re-registering identical text is a no-op.
func (r *Registry) Ensure(member, init string) bool {
	if _, ok := r.seen[member]; ok {
		return false
	}
	r.seen[member] = struct{}{}
	r.decls = append(r.decls, Declaration{Member: member, Init: init})
	return true
}

// AddImport records an import path needed by registered or generated code.
func (r *Registry) AddImport(path string) {
	if _, ok := r.importSeen[path]; ok {
		return
	}
	r.importSeen[path] = struct{}{}
	r.imports = append(r.imports, path)
}

// Declarations returns the registered pairs in insertion order.
func (r *Registry) Declarations() []Declaration {
	out := make([]Declaration, len(r.decls))
	copy(out, r.decls)
	return out
}

// Imports returns the recorded import paths, sorted.
func (r *Registry) Imports() []string {
	out := make([]string, len(r.imports))
	copy(out, r.imports)
	sort.Strings(out)
	return out
}

// FormatterKind identifies one of the reusable date/time formatter
// declarations.
type FormatterKind int

const (
	FormatterDate FormatterKind = iota
	FormatterTime
	FormatterTimestamp
)

func (k FormatterKind) ident() string {
	switch k {
	case FormatterDate:
		return "fmtDate"
	case FormatterTime:
		return "fmtTime"
	default:
		return "fmtTimestamp"
	}
}

func (k FormatterKind) layoutTerm() string {
	switch k {
	case FormatterDate:
		return "exprrt.LayoutDate"
	case FormatterTime:
		return "exprrt.LayoutTime"
	default:
		return "exprrt.LayoutTimestamp"
	}
}

// EnsureFormatter registers the member/init pair for the formatter kind,
// bound to the session time zone, exactly once per session. It always
// returns the formatter's identifier.
func (r *Registry) EnsureFormatter(kind FormatterKind, zone string) string {
	ident := kind.ident()
	member := fmt.Sprintf("var %s exprrt.Formatter", ident)
	init := fmt.Sprintf("%s = exprrt.NewFormatter(%s, %q)", ident, kind.layoutTerm(), zone)
	r.AddImport(exprrtImport)
	r.Ensure(member, init)
	return ident
}

// EnsureDateConstant registers a session-wide named constant for the exact
// date value, deduplicated by its epoch-millisecond value.
func (r *Registry) EnsureDateConstant(t time.Time) string {
	ms := t.UnixMilli()
	if ident, ok := r.dates[ms]; ok {
		return ident
	}
	ident := fmt.Sprintf("dateConst%d", len(r.dates))
	r.dates[ms] = ident
	r.AddImport("time")
	r.Ensure(
		fmt.Sprintf("var %s time.Time", ident),
		fmt.Sprintf("%s = time.UnixMilli(%d)", ident, ms),
	)
	return ident
}
