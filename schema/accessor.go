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

package schema

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Accessor renders the Go expression reading one field out of a bound
// input identifier. The three implementations are the closed set of access
// strategies.
type Accessor interface {
	Render(term string) string
}

// IndexAccessor reads a positional field: term[index].
type IndexAccessor struct {
	Index int
}

func (a *IndexAccessor) Render(term string) string {
	return fmt.Sprintf("%s[%d]", term, a.Index)
}

// MethodAccessor reads a field through its accessor method: term.Name().
type MethodAccessor struct {
	Name string
}

func (a *MethodAccessor) Render(term string) string {
	return term + "." + exportName(a.Name) + "()"
}

// MemberAccessor reads an exported public member: term.Name.
type MemberAccessor struct {
	Name string
}

func (a *MemberAccessor) Render(term string) string {
	return term + "." + exportName(a.Name)
}

// Resolve determines the access strategy for fieldName on desc. Alias
// descriptors are resolved by mapping the requested name to the underlying
// field and recursing; alias chains are acyclic by upstream construction.
func Resolve(desc Descriptor, fieldName string) (Accessor, error) {
	switch d := desc.(type) {
	case *RowDescriptor:
		idx := d.FieldIndex(fieldName)
		if idx < 0 {
			return nil, fmt.Errorf("field %q not declared by positional descriptor", fieldName)
		}
		return &IndexAccessor{Index: idx}, nil
	case *AccessorDescriptor:
		if !d.HasField(fieldName) {
			return nil, fmt.Errorf("field %q not declared by accessor descriptor", fieldName)
		}
		return &MethodAccessor{Name: fieldName}, nil
	case *MemberDescriptor:
		if !d.HasField(fieldName) {
			return nil, fmt.Errorf("field %q not declared by member descriptor", fieldName)
		}
		return &MemberAccessor{Name: fieldName}, nil
	case *StructDescriptor:
		if !d.HasField(fieldName) {
			return nil, fmt.Errorf("field %q not declared by struct descriptor", fieldName)
		}
		return &MemberAccessor{Name: fieldName}, nil
	case *AliasDescriptor:
		underlyingName, ok := d.UnderlyingField(fieldName)
		if !ok {
			return nil, fmt.Errorf("field %q not declared by alias descriptor", fieldName)
		}
		return Resolve(d.Underlying(), underlyingName)
	default:
		return nil, fmt.Errorf("unsupported descriptor %T", desc)
	}
}

// exportName upper-cases the first rune so field names map onto exported
// Go members and methods.
func exportName(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
