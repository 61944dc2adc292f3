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
	"fmt"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/index"
	"github.com/mantledata/mantle/schema"
	"github.com/mantledata/mantle/value"
)

// capability is the fixed function set a field kind contributes to query
// building. Dispatch goes through the table below keyed by the closed type
// tag, so an unhandled kind is a missing table row, not a missing subclass.
type capability struct {
	// encodeTerm maps a value to the byte level term used for term lookups.
	encodeTerm func(v any) ([]byte, error)
	// numeric kinds reject term expansion by pattern.
	numeric bool
}

func typedEncoder(t schema.FieldType) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) { return value.Encode(t, v) }
}

// rawEncoder is the fallback mapping: the plain string rendering of the
// value.
func rawEncoder(v any) ([]byte, error) {
	if raw, ok := v.([]byte); ok {
		return raw, nil
	}
	return []byte(fmt.Sprint(v)), nil
}

var capabilities = map[schema.FieldType]capability{
	schema.BoolType:     {encodeTerm: typedEncoder(schema.BoolType)},
	schema.Int32Type:    {encodeTerm: typedEncoder(schema.Int32Type), numeric: true},
	schema.Int64Type:    {encodeTerm: typedEncoder(schema.Int64Type), numeric: true},
	schema.DoubleType:   {encodeTerm: typedEncoder(schema.DoubleType), numeric: true},
	schema.TextType:     {encodeTerm: typedEncoder(schema.TextType)},
	schema.KeywordType:  {encodeTerm: typedEncoder(schema.KeywordType)},
	schema.ByteType:     {encodeTerm: typedEncoder(schema.ByteType)},
	schema.UUIDType:     {encodeTerm: typedEncoder(schema.UUIDType)},
	schema.DateTimeType: {encodeTerm: typedEncoder(schema.DateTimeType)},
}

func capabilityFor(t schema.FieldType) capability {
	if c, ok := capabilities[t]; ok {
		return c
	}
	return capability{encodeTerm: rawEncoder}
}

// Translator builds primitive queries for one field, dispatching on the
// field's type tag. Translators are read only over the frozen descriptor and
// safe for concurrent use.
type Translator struct {
	ft   *schema.FieldTypeDescriptor
	caps capability
}

func NewTranslator(ft *schema.FieldTypeDescriptor) *Translator {
	return &Translator{ft: ft, caps: capabilityFor(ft.Type())}
}

// IndexedValueForSearch maps a value to the exact byte level term used for
// term lookups on this field.
func (t *Translator) IndexedValueForSearch(v any) ([]byte, error) {
	return t.caps.encodeTerm(v)
}

// TermQuery builds an exact term query. The field boost is applied as a
// wrapper only when it deviates from the default and the index was created
// at or after the boost wrap version; older indexes keep the legacy
// unboosted shape so their query plans stay bit identical.
func (t *Translator) TermQuery(v any, ctx ShardContext) (index.Query, error) {
	term, err := t.IndexedValueForSearch(v)
	if err != nil {
		return nil, err
	}

	q := &TermQuery{Field: t.ft.Name(), Term: term}
	if t.ft.Boost() == 1.0 || (ctx != nil && ctx.IndexVersionCreated().Before(index.VersionBoostWrapMin)) {
		return q, nil
	}
	return &BoostQuery{Query: q, Boost: t.ft.Boost()}, nil
}

// TermsQuery builds a term membership query over the encoded form of each
// value.
func (t *Translator) TermsQuery(values []any, _ ShardContext) (index.Query, error) {
	terms := make([][]byte, len(values))
	for i, v := range values {
		term, err := t.IndexedValueForSearch(v)
		if err != nil {
			return nil, err
		}
		terms[i] = term
	}
	return &TermsQuery{Field: t.ft.Name(), Terms: terms}, nil
}

// RangeQuery builds an ordered range query over encoded terms. A nil bound
// is unbounded on that side.
func (t *Translator) RangeQuery(lower, upper any, includeLower, includeUpper bool) (index.Query, error) {
	var err error
	var lowerTerm, upperTerm []byte
	if lower != nil {
		if lowerTerm, err = t.IndexedValueForSearch(lower); err != nil {
			return nil, err
		}
	}
	if upper != nil {
		if upperTerm, err = t.IndexedValueForSearch(upper); err != nil {
			return nil, err
		}
	}

	return &TermRangeQuery{
		Field:        t.ft.Name(),
		Lower:        lowerTerm,
		Upper:        upperTerm,
		IncludeLower: includeLower,
		IncludeUpper: includeUpper,
	}, nil
}

// FuzzyQuery builds a term expansion query bounded by maxExpansions. The
// edit distance is resolved from the textual form of the value.
func (t *Translator) FuzzyQuery(v any, fuzziness Fuzziness, prefixLength, maxExpansions int, transpositions bool) (index.Query, error) {
	term, err := t.IndexedValueForSearch(v)
	if err != nil {
		return nil, err
	}

	return &FuzzyQuery{
		Field:          t.ft.Name(),
		Term:           term,
		MaxEdits:       fuzziness.AsDistance(fmt.Sprint(v)),
		PrefixLength:   prefixLength,
		MaxExpansions:  maxExpansions,
		Transpositions: transpositions,
	}, nil
}

// PrefixQuery builds a term expansion query over all terms with the prefix.
func (t *Translator) PrefixQuery(v string) (index.Query, error) {
	term, err := t.IndexedValueForSearch(v)
	if err != nil {
		return nil, err
	}
	return &PrefixQuery{Field: t.ft.Name(), Prefix: term}, nil
}

// RegexpQuery builds a term expansion query over all terms matching the
// pattern. Rejected before construction for numeric kinds, where patterns
// over encoded terms carry no meaning.
func (t *Translator) RegexpQuery(pattern string, flags, maxDeterminizedStates int) (index.Query, error) {
	if t.caps.numeric {
		return nil, errors.QueryShape("cannot use regular expression to filter numeric field [%s]", t.ft.Name())
	}

	return &RegexpQuery{
		Field:                 t.ft.Name(),
		Pattern:               pattern,
		Flags:                 flags,
		MaxDeterminizedStates: maxDeterminizedStates,
	}, nil
}

// NullValueQuery matches documents indexed with the field's null
// substitution, wrapped so it never contributes to scoring. Returns nil when
// no substitution is configured.
func (t *Translator) NullValueQuery() (index.Query, error) {
	if t.ft.NullValue() == nil {
		return nil, nil
	}

	q, err := t.TermQuery(t.ft.NullValue(), nil)
	if err != nil {
		return nil, err
	}
	return &ConstantScoreQuery{Query: q}, nil
}
