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

	"github.com/rulego/exprgen/logger"
	"github.com/rulego/exprgen/schema"
)

// Binding attaches an input identifier to the descriptor of the composite
// record it carries at runtime.
type Binding struct {
	Name string
	Desc schema.Descriptor
}

// Session is the single-use generation context for one compile request: it
// owns the input bindings, the configuration, the fresh-name counter and
// the declaration registry. A session must not be shared across concurrent
// compiles; no state survives it.
type Session struct {
	bindings  []Binding
	nullCheck bool
	timeZone  string
	counter   int
	registry  *Registry
	log       logger.Logger
}

// NewSession creates a generation session. An empty timeZone defaults to
// UTC; a nil log discards debug output.
func NewSession(bindings []Binding, nullCheck bool, timeZone string, log logger.Logger) *Session {
	if timeZone == "" {
		timeZone = "UTC"
	}
	if log == nil {
		log = logger.NewDiscardLogger()
	}
	return &Session{
		bindings:  bindings,
		nullCheck: nullCheck,
		timeZone:  timeZone,
		registry:  NewRegistry(),
		log:       log,
	}
}

// NullCheck reports whether null-propagation code paths are generated.
func (s *Session) NullCheck() bool { return s.nullCheck }

// TimeZone returns the zone binding all date/time formatter declarations.
func (s *Session) TimeZone() string { return s.timeZone }

// Registry returns the session's declaration registry.
func (s *Session) Registry() *Registry { return s.registry }

// Declarations returns the reusable declarations accumulated so far.
func (s *Session) Declarations() []Declaration { return s.registry.Declarations() }

// Bindings returns the session's input bindings in declaration order.
func (s *Session) Bindings() []Binding { return s.bindings }

// fresh issues an identifier unique within the session.
func (s *Session) fresh(prefix string) string {
	s.counter++
	return fmt.Sprintf("%s%d", prefix, s.counter)
}
