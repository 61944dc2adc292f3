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

package query

import (
	"github.com/mantledata/mantle/index"
	"github.com/mantledata/mantle/schema"
)

// ShardContext is the per shard view query and sort compilation runs
// against: the schema of the shard, its reader snapshot and the version the
// index was created with.
type ShardContext interface {
	// IndexVersionCreated returns the format generation the index was
	// created with; it gates legacy query shapes.
	IndexVersionCreated() index.Version

	// Reader returns the snapshot the compiled artifacts bind to.
	Reader() index.Reader

	// GetFieldType resolves a field name to its frozen descriptor, nil when
	// the schema does not declare the field.
	GetFieldType(name string) *schema.FieldTypeDescriptor

	// GetObjectMapper resolves a dotted path to a declared object field,
	// nil when the path is not an object.
	GetObjectMapper(path string) *schema.ObjectMapper

	// BitsetFilter compiles a query into a reusable document set filter,
	// cached per reader snapshot.
	BitsetFilter(q index.Query) (index.DocSetFilter, error)

	// NestedScope tracks the nesting level while filters inside nested
	// scopes are compiled one level at a time.
	NestedScope() *NestedScope
}

// NestedScope is a stack of object mappers recording how deep inside nested
// documents the current compilation is.
type NestedScope struct {
	levels []*schema.ObjectMapper
}

func NewNestedScope() *NestedScope {
	return &NestedScope{}
}

// NextLevel descends into the given nested object.
func (s *NestedScope) NextLevel(o *schema.ObjectMapper) {
	s.levels = append(s.levels, o)
}

// PreviousLevel pops back out of the current nested object.
func (s *NestedScope) PreviousLevel() {
	if len(s.levels) > 0 {
		s.levels = s.levels[:len(s.levels)-1]
	}
}

// Current returns the innermost nested object, nil at root level.
func (s *NestedScope) Current() *schema.ObjectMapper {
	if len(s.levels) == 0 {
		return nil
	}
	return s.levels[len(s.levels)-1]
}
