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

/*
Package codegen turns typed expression trees into executable Go statements.

A Session is the generation context for one compile request. It is bound to
an ordered list of input bindings (identifier + composite type descriptor)
and a configuration (null-check mode, time zone), and owns the fresh-name
counter and the reusable declaration registry. Sessions are single-use and
single-owner: allocate one per concurrent compile and discard it once its
output has been consumed.

Compile walks the tree depth-first and returns one GeneratedCode fragment
for the whole expression: the statement text, the identifier holding the
computed value, and — in null-check mode — the identifier holding the
nullity flag. In null-check mode every binary arithmetic, comparison and
logical node is null iff either operand is null; a null node binds its
type's default-on-null value and skips the operator. With null checking
off, no nullity statements are emitted at all and callers guarantee null
values never occur.

Shared helpers such as date/time formatters and date constants are
registered in the session's Registry exactly once, no matter how many
expressions reference them. AssembleUnit splices a root fragment together
with the registry's member and init declarations into a complete unit for
the downstream compiler.

Generation failures (unknown node shapes, unresolvable fields, illegal
casts) are returned as *GenError and abort the compile; runtime failures
such as malformed date strings belong to the generated code itself, which
panics into the unit's recover wrapper.
*/
package codegen
