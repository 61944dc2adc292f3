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

// Package sort parses heterogeneous sort request syntax into an ordered list
// of sort clause builders and compiles them into executable sort keys.
//
// Accepted shapes, mixed freely inside a top level array:
//
//	"price"                          ascending sort on the field
//	{"price": "desc"}                explicit order
//	{"price": {"order": "desc"}}     kind specific configuration object
//	{"_score": {}}                   relevance score sort
//	{"_script": {...}}               script sort
//	{"_geo_distance": {...}}         geo distance sort
//
// Unknown object names fall back to a field sort on that name so newer field
// paths keep parsing on older nodes.
package sort

import (
	"context"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/index"
	"github.com/mantledata/mantle/query"
	"github.com/mantledata/mantle/query/parse"
	"github.com/mantledata/mantle/server/config"
)

const (
	// ScoreSortName is the reserved name denoting sort by relevance score.
	ScoreSortName = "_score"

	orderField        = "order"
	missingField      = "missing"
	unmappedTypeField = "unmapped_type"
	nestedPathField   = "nested_path"
	nestedFilterField = "nested_filter"
)

// Order is the direction of one sort clause.
type Order uint8

const (
	// Asc is the default order.
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

func ParseOrder(s string) (Order, error) {
	switch s {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return Asc, errors.MalformedSort("sort order can only be `asc` or `desc`, not `%s`", s)
	}
}

// SortBuilder is one parsed sort clause. Builders are immutable once parsed
// and compile once per query execution into a primitive sort key bound to a
// reader snapshot.
type SortBuilder interface {
	// Order returns the clause direction.
	Order() Order
	// Build compiles the clause against the shard's schema and snapshot.
	Build(sctx query.ShardContext) (index.SortField, error)
}

// parserFunc parses the configuration object of a registered sort kind. The
// cursor sits on the object start and must be left on its end.
type parserFunc func(pctx *parse.Context, name string) (SortBuilder, error)

// parsers maps registered kind names to their parsers. Field sorts get
// involved when the name isn't one of these.
var parsers = map[string]parserFunc{
	ScoreSortName:          parseScoreSort,
	ScriptSortName:         parseScriptSort,
	GeoDistanceSortName:    parseGeoDistanceSort,
	GeoDistanceSortAltName: parseGeoDistanceSort,
}

// ParseSort parses a sort request fragment positioned at the cursor of pctx.
// Clause order is preserved; ties between clauses break on later clauses.
func ParseSort(pctx *parse.Context) ([]SortBuilder, error) {
	token := pctx.CurrentToken()
	if token == parse.NoToken {
		token = pctx.NextToken()
	}

	var sorts []SortBuilder
	switch token {
	case parse.StartArray:
		for tok := pctx.NextToken(); tok != parse.EndArray; tok = pctx.NextToken() {
			switch tok {
			case parse.StartObject:
				if err := parseCompoundSortField(pctx, &sorts); err != nil {
					return nil, err
				}
			case parse.StringValue:
				sorts = append(sorts, fieldOrScoreSort(pctx.Text(), Asc))
			default:
				return nil, errors.MalformedSort("malformed sort format, within the sort array, an object, or an actual string are allowed")
			}
			if err := checkClauseLimit(len(sorts)); err != nil {
				return nil, err
			}
		}
	case parse.StringValue:
		sorts = append(sorts, fieldOrScoreSort(pctx.Text(), Asc))
	case parse.StartObject:
		if err := parseCompoundSortField(pctx, &sorts); err != nil {
			return nil, err
		}
		if err := checkClauseLimit(len(sorts)); err != nil {
			return nil, err
		}
	default:
		return nil, errors.MalformedSort("malformed sort format, either start with array, object, or an actual string")
	}

	return sorts, nil
}

func checkClauseLimit(n int) error {
	if limit := config.DefaultConfig.Search.MaxSortClauses; limit > 0 && n > limit {
		return errors.InvalidArgument("sorting can support up to `%d` fields only", limit)
	}
	return nil
}

func fieldOrScoreSort(name string, order Order) SortBuilder {
	if name == ScoreSortName {
		return NewScoreSortBuilder(order)
	}
	return NewFieldSortBuilder(name, order)
}

// parseCompoundSortField parses one object element: every field name inside
// maps either to an order string or to a kind specific configuration object.
func parseCompoundSortField(pctx *parse.Context, sorts *[]SortBuilder) error {
	for tok := pctx.NextToken(); tok != parse.EndObject; tok = pctx.NextToken() {
		if tok != parse.FieldName {
			return errors.MalformedSort("malformed sort format, expected a field name inside the sort object")
		}

		name := pctx.CurrentName()
		switch pctx.NextToken() {
		case parse.StringValue:
			order, err := ParseOrder(pctx.Text())
			if err != nil {
				return err
			}
			*sorts = append(*sorts, fieldOrScoreSort(name, order))
		case parse.StartObject:
			parser, ok := parsers[name]
			if !ok {
				parser = parseFieldSort
			}
			b, err := parser(pctx, name)
			if err != nil {
				return err
			}
			*sorts = append(*sorts, b)
		default:
			return errors.MalformedSort("malformed sort format, [%s] must map to an order or a configuration object", name)
		}
	}
	return nil
}

// BuildSort compiles parsed clauses into one executable sort, in clause
// order. A trivial single clause sort by relevance score in natural (not
// reversed) order returns nil: relevance is the engine's natural order and an
// explicit key only adds overhead. Compilation checks ctx between clauses so
// a long multi clause compile stays cancellable.
func BuildSort(ctx context.Context, builders []SortBuilder, sctx query.ShardContext) (*index.Sort, error) {
	fields := make([]index.SortField, 0, len(builders))
	for _, b := range builders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := b.Build(sctx)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) == 1 && fields[0].Type == index.SortByScore && !fields[0].Reverse {
		return nil, nil
	}
	return &index.Sort{Fields: fields}, nil
}
