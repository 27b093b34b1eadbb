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

package compiler

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/rulego/exprgen/exprrt"
)

// Symbols exposes the exprrt runtime support package to interpreted
// units. Generated units import it for formatters, date parsing and
// string conversions.
var Symbols = interp.Exports{
	"github.com/rulego/exprgen/exprrt/exprrt": {
		"LayoutTimestamp": reflect.ValueOf(exprrt.LayoutTimestamp),
		"LayoutDate":      reflect.ValueOf(exprrt.LayoutDate),
		"LayoutTime":      reflect.ValueOf(exprrt.LayoutTime),
		"NewFormatter":    reflect.ValueOf(exprrt.NewFormatter),
		"ParseDate":       reflect.ValueOf(exprrt.ParseDate),
		"ToInt32":         reflect.ValueOf(exprrt.ToInt32),
		"ToInt64":         reflect.ValueOf(exprrt.ToInt64),
		"ToInt16":         reflect.ValueOf(exprrt.ToInt16),
		"ToInt8":          reflect.ValueOf(exprrt.ToInt8),
		"ToFloat32":       reflect.ValueOf(exprrt.ToFloat32),
		"ToFloat64":       reflect.ValueOf(exprrt.ToFloat64),
		"ToBool":          reflect.ValueOf(exprrt.ToBool),
		"ToChar":          reflect.ValueOf(exprrt.ToChar),
		"ToString":        reflect.ValueOf(exprrt.ToString),
		"Formatter":       reflect.ValueOf((*exprrt.Formatter)(nil)),
	},
}
