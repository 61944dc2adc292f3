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
)

// ScoreSortBuilder sorts by relevance score.
type ScoreSortBuilder struct {
	order Order
}

func NewScoreSortBuilder(order Order) *ScoreSortBuilder {
	return &ScoreSortBuilder{order: order}
}

func (b *ScoreSortBuilder) Order() Order { return b.order }

func (b *ScoreSortBuilder) Build(_ query.ShardContext) (index.SortField, error) {
	return index.NewScoreSortField(b.order == Desc), nil
}

func parseScoreSort(pctx *parse.Context, name string) (SortBuilder, error) {
	b := &ScoreSortBuilder{}
	for tok := pctx.NextToken(); tok != parse.EndObject; tok = pctx.NextToken() {
		if tok != parse.FieldName {
			return nil, errors.MalformedSort("malformed [%s] sort object", name)
		}

		param := pctx.CurrentName()
		pctx.NextToken()
		switch param {
		case orderField:
			order, err := ParseOrder(pctx.Text())
			if err != nil {
				return nil, err
			}
			b.order = order
		default:
			return nil, errors.MalformedSort("[%s] sort does not support the parameter [%s]", name, param)
		}
	}
	return b, nil
}
