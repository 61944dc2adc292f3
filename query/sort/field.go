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
	"github.com/mantledata/mantle/query/parse"
	"github.com/mantledata/mantle/schema"
)

const (
	// MissingLast sorts documents without a value to the end, the default.
	MissingLast = "_last"
	// MissingFirst sorts documents without a value to the front.
	MissingFirst = "_first"
)

// FieldSortBuilder sorts by a field's doc values, optionally scoped to
// values inside nested sub documents.
type FieldSortBuilder struct {
	field           string
	order           Order
	missing         any
	unmappedType    string
	nestedPath      string
	nestedFilter    index.Query
	nestedFilterRaw []byte
}

func NewFieldSortBuilder(field string, order Order) *FieldSortBuilder {
	return &FieldSortBuilder{field: field, order: order, missing: MissingLast}
}

func (b *FieldSortBuilder) Field() string { return b.field }

func (b *FieldSortBuilder) Order() Order { return b.order }

// WithNested scopes the sort to nested documents under path, optionally
// narrowed by an already built inner filter.
func (b *FieldSortBuilder) WithNested(path string, filter index.Query) *FieldSortBuilder {
	b.nestedPath = path
	b.nestedFilter = filter
	return b
}

// WithMissing sets the missing value treatment: MissingLast, MissingFirst or
// a concrete substitute value.
func (b *FieldSortBuilder) WithMissing(missing any) *FieldSortBuilder {
	b.missing = missing
	return b
}

func (b *FieldSortBuilder) Build(sctx query.ShardContext) (index.SortField, error) {
	ft := sctx.GetFieldType(b.field)
	if ft == nil {
		if len(b.unmappedType) == 0 {
			return index.SortField{}, errors.QueryShape("no mapping found for [%s] in order to sort on", b.field)
		}
		// unmapped_type sorts the field as if every document missed it
		unmapped := schema.NewFieldTypeDescriptor(b.field, schema.ToFieldType(b.unmappedType, "", ""))
		unmapped.Freeze()
		ft = unmapped
	}

	if err := ft.RequireDocValues(); err != nil {
		return index.SortField{}, err
	}

	nested, err := resolveNested(sctx, b.nestedPath, b.nestedFilter, b.nestedFilterRaw)
	if err != nil {
		return index.SortField{}, err
	}

	return index.SortField{
		Field:   b.field,
		Type:    index.SortByField,
		Reverse: b.order == Desc,
		Missing: b.missing,
		Nested:  nested,
	}, nil
}

func parseFieldSort(pctx *parse.Context, name string) (SortBuilder, error) {
	b := NewFieldSortBuilder(name, Asc)
	for tok := pctx.NextToken(); tok != parse.EndObject; tok = pctx.NextToken() {
		if tok != parse.FieldName {
			return nil, errors.MalformedSort("malformed sort object for field [%s]", name)
		}

		param := pctx.CurrentName()
		tok = pctx.NextToken()
		switch param {
		case orderField:
			order, err := ParseOrder(pctx.Text())
			if err != nil {
				return nil, err
			}
			b.order = order
		case missingField:
			b.missing = pctx.Text()
		case unmappedTypeField:
			b.unmappedType = pctx.Text()
		case nestedPathField:
			b.nestedPath = pctx.Text()
		case nestedFilterField:
			if tok != parse.StartObject {
				return nil, errors.MalformedSort("[%s] must be an object in sort on field [%s]", nestedFilterField, name)
			}
			b.nestedFilterRaw = pctx.RawValue()
			pctx.SkipChildren()
		default:
			return nil, errors.MalformedSort("sort on field [%s] does not support the parameter [%s]", name, param)
		}
	}
	return b, nil
}
