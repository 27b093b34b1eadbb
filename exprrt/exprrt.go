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

// Package exprrt is the runtime support library imported by generated
// units. Its helpers fail by panicking: generated code runs inside a
// recover wrapper that turns runtime failures into the unit's error
// return.
package exprrt

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Layouts of the three date/time formatter kinds. LayoutTimestamp is the
// render pattern for Date-to-String casts.
const (
	LayoutTimestamp = "2006-01-02 15:04:05.000"
	LayoutDate      = "2006-01-02"
	LayoutTime      = "15:04:05"
)

// Formatter renders and parses dates with a fixed layout in a fixed zone.
// One Formatter per (layout, zone) pair is declared once per generated
// unit and shared by every expression in it.
type Formatter struct {
	layout string
	loc    *time.Location
}

// NewFormatter binds layout to the named zone. An unknown zone falls back
// to UTC so a generated unit never fails to initialize.
func NewFormatter(layout, zone string) Formatter {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	return Formatter{layout: layout, loc: loc}
}

// Format renders t in the formatter's zone.
func (f Formatter) Format(t time.Time) string {
	return t.In(f.loc).Format(f.layout)
}

// Parse reads s with the formatter's layout in its zone.
func (f Formatter) Parse(s string) (time.Time, error) {
	return time.ParseInLocation(f.layout, s, f.loc)
}

// ParseDate tries each formatter in order, each attempt made only after
// the previous one failed, then falls back to reading s as an integer
// epoch-millisecond value. Nothing matching is a runtime parse error.
func ParseDate(s string, formatters ...Formatter) time.Time {
	for _, f := range formatters {
		if t, err := f.Parse(s); err == nil {
			return t
		}
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as date", s))
	}
	return time.UnixMilli(ms)
}

// String-to-primitive conversions used by generated String casts.

func ToInt32(s string) int32 {
	v, err := cast.ToInt32E(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as int: %v", s, err))
	}
	return v
}

func ToInt64(s string) int64 {
	v, err := cast.ToInt64E(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as long: %v", s, err))
	}
	return v
}

func ToInt16(s string) int16 {
	v, err := cast.ToInt16E(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as short: %v", s, err))
	}
	return v
}

func ToInt8(s string) int8 {
	v, err := cast.ToInt8E(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as byte: %v", s, err))
	}
	return v
}

func ToFloat32(s string) float32 {
	v, err := cast.ToFloat32E(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as float: %v", s, err))
	}
	return v
}

func ToFloat64(s string) float64 {
	v, err := cast.ToFloat64E(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as double: %v", s, err))
	}
	return v
}

func ToBool(s string) bool {
	v, err := cast.ToBoolE(s)
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q as boolean: %v", s, err))
	}
	return v
}

// ToChar returns the first rune of s.
func ToChar(s string) rune {
	if s == "" {
		panic("cannot convert empty string to char")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// ToString renders any primitive value as its canonical string form.
func ToString(v interface{}) string {
	return cast.ToString(v)
}
