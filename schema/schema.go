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

// Package schema describes how named, typed fields are read out of the
// composite record representations an input binding may carry. Each record
// representation has its own descriptor; the resolver in accessor.go maps a
// (descriptor, field name) pair to the access strategy the generated code
// must use.
package schema

import (
	"fmt"

	"github.com/rulego/exprgen/types"
)

// Field pairs a field name with its semantic type.
type Field struct {
	Name string
	Type types.Kind
}

// Descriptor exposes the read-only field layout queries the generator
// needs. Implementations must answer consistently: FieldIndex returns -1
// exactly when HasField is false.
type Descriptor interface {
	HasField(name string) bool
	FieldIndex(name string) int
	FieldType(name string) types.Kind
	FieldNames() []string
	// TypeTerm is the Go spelling of a value bound to this descriptor,
	// used when asserting the input out of the generic row slot.
	TypeTerm() string
}

// fieldSet is the shared name/index/type bookkeeping of the concrete
// descriptors.
type fieldSet struct {
	fields []Field
	index  map[string]int
}

func newFieldSet(fields []Field) fieldSet {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return fieldSet{fields: fields, index: idx}
}

func (s *fieldSet) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *fieldSet) FieldIndex(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

func (s *fieldSet) FieldType(name string) types.Kind {
	if i, ok := s.index[name]; ok {
		return s.fields[i].Type
	}
	return types.Unknown
}

func (s *fieldSet) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// RowDescriptor describes a positional record: a []interface{} whose fields
// are read by index.
type RowDescriptor struct {
	fieldSet
}

func NewRowDescriptor(fields ...Field) *RowDescriptor {
	return &RowDescriptor{fieldSet: newFieldSet(fields)}
}

func (d *RowDescriptor) TypeTerm() string { return "[]interface{}" }

// AccessorDescriptor describes a record whose fields are read through
// accessor methods, e.g. generated getters. typeTerm names the concrete Go
// type of the bound input.
type AccessorDescriptor struct {
	fieldSet
	typeTerm string
}

func NewAccessorDescriptor(typeTerm string, fields ...Field) *AccessorDescriptor {
	return &AccessorDescriptor{fieldSet: newFieldSet(fields), typeTerm: typeTerm}
}

func (d *AccessorDescriptor) TypeTerm() string { return d.typeTerm }

// MemberDescriptor describes a tuple-like record with exported value
// members named after its fields.
type MemberDescriptor struct {
	fieldSet
	typeTerm string
}

func NewMemberDescriptor(typeTerm string, fields ...Field) *MemberDescriptor {
	return &MemberDescriptor{fieldSet: newFieldSet(fields), typeTerm: typeTerm}
}

func (d *MemberDescriptor) TypeTerm() string { return d.typeTerm }

// StructDescriptor describes an arbitrary bean-like struct with exported
// public members. It resolves exactly like MemberDescriptor; it exists as a
// distinct variant because upstream schema providers distinguish the two
// record representations.
type StructDescriptor struct {
	fieldSet
	typeTerm string
}

func NewStructDescriptor(typeTerm string, fields ...Field) *StructDescriptor {
	return &StructDescriptor{fieldSet: newFieldSet(fields), typeTerm: typeTerm}
}

func (d *StructDescriptor) TypeTerm() string { return d.typeTerm }

// AliasDescriptor renames the underlying descriptor's fields positionally:
// names[i] aliases the underlying field at index i. Alias chains are
// acyclic by construction of the upstream schema layer; the resolver relies
// on that invariant without verifying it.
type AliasDescriptor struct {
	underlying Descriptor
	names      []string
	index      map[string]int
}

func NewAliasDescriptor(underlying Descriptor, names ...string) (*AliasDescriptor, error) {
	underlyingNames := underlying.FieldNames()
	if len(names) != len(underlyingNames) {
		return nil, fmt.Errorf("alias descriptor: %d names for %d underlying fields",
			len(names), len(underlyingNames))
	}
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return &AliasDescriptor{underlying: underlying, names: names, index: idx}, nil
}

func (d *AliasDescriptor) HasField(name string) bool {
	_, ok := d.index[name]
	return ok
}

func (d *AliasDescriptor) FieldIndex(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

func (d *AliasDescriptor) FieldType(name string) types.Kind {
	i, ok := d.index[name]
	if !ok {
		return types.Unknown
	}
	return d.underlying.FieldType(d.underlying.FieldNames()[i])
}

func (d *AliasDescriptor) FieldNames() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

func (d *AliasDescriptor) TypeTerm() string { return d.underlying.TypeTerm() }

// Underlying returns the wrapped descriptor.
func (d *AliasDescriptor) Underlying() Descriptor { return d.underlying }

// UnderlyingField maps an alias name to the underlying field name at the
// corresponding index.
func (d *AliasDescriptor) UnderlyingField(name string) (string, bool) {
	i, ok := d.index[name]
	if !ok {
		return "", false
	}
	return d.underlying.FieldNames()[i], true
}
