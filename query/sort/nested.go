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

package sort

import (
	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/index"
	"github.com/mantledata/mantle/query"
	"github.com/mantledata/mantle/schema"
)

// FilterParser compiles the raw nested_filter fragment of a sort clause into
// a query, one nesting level deeper than the surrounding request. The
// structured request parser owning query grammars registers it at startup.
type FilterParser func(raw []byte, sctx query.ShardContext) (index.Query, error)

var filterParser FilterParser

// SetFilterParser registers the compiler for raw nested_filter fragments.
func SetFilterParser(p FilterParser) { filterParser = p }

// resolveNested turns a clause's nested scope into the filter pair the
// comparator needs: a root document filter and an in-scope nested document
// filter. The path must resolve to a declared object field that is actually
// marked nested.
func resolveNested(sctx query.ShardContext, nestedPath string, nestedFilter index.Query, nestedFilterRaw []byte) (*index.Nested, error) {
	if len(nestedPath) == 0 {
		return nil, nil
	}

	rootFilter, err := sctx.BitsetFilter(&query.NonNestedQuery{})
	if err != nil {
		return nil, err
	}

	mapper := sctx.GetObjectMapper(nestedPath)
	if mapper == nil {
		return nil, errors.QueryShape("[nested] failed to find nested object under path [%s]", nestedPath)
	}
	if !mapper.IsNested() {
		return nil, errors.QueryShape("[nested] nested object under path [%s] is not of nested type", nestedPath)
	}

	inner := nestedFilter
	if inner == nil && len(nestedFilterRaw) > 0 {
		if filterParser == nil {
			return nil, errors.QueryShape("[nested] cannot compile the inner filter under path [%s], no filter parser registered", nestedPath)
		}
		// the inner filter evaluates one nesting level deeper
		sctx.NestedScope().NextLevel(mapper)
		inner, err = filterParser(nestedFilterRaw, sctx)
		sctx.NestedScope().PreviousLevel()
		if err != nil {
			return nil, err
		}
	}
	if inner == nil {
		inner = &query.TermQuery{
			Field: schema.NestedPathField,
			Term:  []byte(mapper.NestedTypeTerm()),
		}
	}

	return &index.Nested{RootFilter: rootFilter, InnerFilter: inner}, nil
}
