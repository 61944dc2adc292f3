// Copyright 2023 Mantle Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

// NestedPathField is the internal field every nested sub document is tagged
// with; its term is the nested type term of the owning object mapper. Scoped
// filters join nested documents back to their roots through it.
const NestedPathField = "_nested_path"

// ObjectMapper describes a declared object field. Only objects marked nested
// index their sub documents as separate units; sorting inside a non nested
// object needs no scope resolution at all.
type ObjectMapper struct {
	path   string
	nested bool
}

func NewObjectMapper(path string, nested bool) *ObjectMapper {
	return &ObjectMapper{path: path, nested: nested}
}

// Path returns the full dotted path of the object field.
func (o *ObjectMapper) Path() string { return o.path }

// IsNested reports whether sub documents under the path are indexed as
// separate nested units.
func (o *ObjectMapper) IsNested() bool { return o.nested }

// NestedTypeTerm is the term identifying this mapper's nested documents in
// the NestedPathField.
func (o *ObjectMapper) NestedTypeTerm() string { return "__" + o.path }
