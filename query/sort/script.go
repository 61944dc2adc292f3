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
	jsoniter "github.com/json-iterator/go"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/index"
	"github.com/mantledata/mantle/query"
	"github.com/mantledata/mantle/query/parse"
)

// ScriptSortName is the reserved object name for script sorts.
const ScriptSortName = "_script"

const (
	ScriptSortNumber = "number"
	ScriptSortString = "string"
)

// Script is a sort expression evaluated per document by an external script
// engine.
type Script struct {
	Source string              `json:"source"`
	Lang   string              `json:"lang,omitempty"`
	Params jsoniter.RawMessage `json:"params,omitempty"`
}

// ScriptEngine evaluates sort scripts. The engine is an external
// collaborator registered at startup.
type ScriptEngine interface {
	Values(script Script, reader index.Reader) (index.ValuesReader, error)
}

var scriptEngine ScriptEngine

// SetScriptEngine registers the engine script sorts execute on. Call once
// during setup, before queries are served.
func SetScriptEngine(e ScriptEngine) { scriptEngine = e }

// ScriptComparatorSource carries a parsed sort script onto the compiled sort
// key; evaluation is deferred to the registered engine at execution time.
type ScriptComparatorSource struct {
	Script Script
	Kind   string
}

func (s *ScriptComparatorSource) Values(reader index.Reader) (index.ValuesReader, error) {
	if scriptEngine == nil {
		return nil, errors.Unsupported("cannot execute script sort, no script engine registered")
	}
	return scriptEngine.Values(s.Script, reader)
}

// ScriptSortBuilder sorts by a script computed value.
type ScriptSortBuilder struct {
	script          Script
	kind            string
	order           Order
	nestedPath      string
	nestedFilter    index.Query
	nestedFilterRaw []byte
}

func NewScriptSortBuilder(script Script, kind string, order Order) *ScriptSortBuilder {
	return &ScriptSortBuilder{script: script, kind: kind, order: order}
}

func (b *ScriptSortBuilder) Order() Order { return b.order }

func (b *ScriptSortBuilder) WithNested(path string, filter index.Query) *ScriptSortBuilder {
	b.nestedPath = path
	b.nestedFilter = filter
	return b
}

func (b *ScriptSortBuilder) Build(sctx query.ShardContext) (index.SortField, error) {
	if len(b.script.Source) == 0 {
		return index.SortField{}, errors.QueryShape("[%s] sort requires a script", ScriptSortName)
	}

	nested, err := resolveNested(sctx, b.nestedPath, b.nestedFilter, b.nestedFilterRaw)
	if err != nil {
		return index.SortField{}, err
	}

	return index.SortField{
		Type:       index.SortByCustom,
		Reverse:    b.order == Desc,
		Nested:     nested,
		Comparator: &ScriptComparatorSource{Script: b.script, Kind: b.kind},
	}, nil
}

func parseScriptSort(pctx *parse.Context, name string) (SortBuilder, error) {
	b := &ScriptSortBuilder{kind: ScriptSortNumber}
	for tok := pctx.NextToken(); tok != parse.EndObject; tok = pctx.NextToken() {
		if tok != parse.FieldName {
			return nil, errors.MalformedSort("malformed [%s] sort object", name)
		}

		param := pctx.CurrentName()
		tok = pctx.NextToken()
		switch param {
		case "script":
			switch tok {
			case parse.StringValue:
				b.script = Script{Source: pctx.Text()}
			case parse.StartObject:
				if err := jsoniter.Unmarshal(pctx.RawValue(), &b.script); err != nil {
					return nil, errors.MalformedSort("malformed script in [%s] sort: %s", name, err.Error())
				}
				pctx.SkipChildren()
			default:
				return nil, errors.MalformedSort("script in [%s] sort must be a string or an object", name)
			}
		case "type":
			switch kind := pctx.Text(); kind {
			case ScriptSortNumber, ScriptSortString:
				b.kind = kind
			default:
				return nil, errors.MalformedSort("[%s] sort type can only be `%s` or `%s`", name, ScriptSortNumber, ScriptSortString)
			}
		case orderField:
			order, err := ParseOrder(pctx.Text())
			if err != nil {
				return nil, err
			}
			b.order = order
		case nestedPathField:
			b.nestedPath = pctx.Text()
		case nestedFilterField:
			if tok != parse.StartObject {
				return nil, errors.MalformedSort("[%s] must be an object in [%s] sort", nestedFilterField, name)
			}
			b.nestedFilterRaw = pctx.RawValue()
			pctx.SkipChildren()
		default:
			return nil, errors.MalformedSort("[%s] sort does not support the parameter [%s]", name, param)
		}
	}
	return b, nil
}
