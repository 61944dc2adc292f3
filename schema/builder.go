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

import (
	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/lib/container"
)

// SupportedMappingProperties are the keys a field mapping declaration may
// carry. Anything else is rejected up front so typos don't silently drop
// configuration.
var SupportedMappingProperties = container.NewHashSet(
	"type",
	"format",
	"contentEncoding",
	"description",
	"index",
	"store",
	"doc_values",
	"norms",
	"term_vector",
	"boost",
	"analyzer",
	"search_analyzer",
	"search_quote_analyzer",
	"similarity",
	"null_value",
	"eager_global_ordinals",
	"nested",
	"properties",
)

const (
	termVectorNo                      = "no"
	termVectorYes                     = "yes"
	termVectorWithPositions           = "with_positions"
	termVectorWithOffsets             = "with_offsets"
	termVectorWithPositionsOffsets    = "with_positions_offsets"
	termVectorWithPositionsOffsetsPay = "with_positions_offsets_payloads"
)

// FieldTypeBuilder is the parsed form of one field mapping declaration. Build
// turns it into a mutable descriptor; the schema update path configures and
// freezes the descriptor before publishing it.
type FieldTypeBuilder struct {
	FieldName           string
	Type                string              `json:"type,omitempty"`
	Format              string              `json:"format,omitempty"`
	Encoding            string              `json:"contentEncoding,omitempty"`
	Index               *bool               `json:"index,omitempty"`
	Store               *bool               `json:"store,omitempty"`
	DocValues           *bool               `json:"doc_values,omitempty"`
	Norms               *bool               `json:"norms,omitempty"`
	TermVector          string              `json:"term_vector,omitempty"`
	Boost               *float64            `json:"boost,omitempty"`
	Analyzer            string              `json:"analyzer,omitempty"`
	SearchAnalyzer      string              `json:"search_analyzer,omitempty"`
	SearchQuoteAnalyzer string              `json:"search_quote_analyzer,omitempty"`
	Similarity          string              `json:"similarity,omitempty"`
	NullValue           any                 `json:"null_value,omitempty"`
	EagerGlobalOrdinals *bool               `json:"eager_global_ordinals,omitempty"`
	Nested              *bool               `json:"nested,omitempty"`
	Properties          jsoniter.RawMessage `json:"properties,omitempty"`
}

// NewFieldTypeBuilder parses a single field's mapping fragment.
func NewFieldTypeBuilder(name string, raw jsoniter.RawMessage) (*FieldTypeBuilder, error) {
	if !ValidFieldNamePattern.MatchString(name) {
		return nil, errors.InvalidArgument(MsgFieldNameInvalidPattern, name)
	}

	var unknown []string
	err := jsonparser.ObjectEach(raw, func(k []byte, v []byte, vt jsonparser.ValueType, offset int) error {
		if !SupportedMappingProperties.Contains(string(k)) {
			unknown = append(unknown, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, errors.InvalidArgument("invalid mapping for field '%s': %s", name, err.Error())
	}
	if len(unknown) > 0 {
		return nil, errors.InvalidArgument("unsupported property '%s' in mapping for field '%s'", unknown[0], name)
	}

	b := &FieldTypeBuilder{FieldName: name}
	if err := jsoniter.Unmarshal(raw, b); err != nil {
		return nil, errors.InvalidArgument("invalid mapping for field '%s': %s", name, err.Error())
	}

	return b, nil
}

// Build returns a mutable descriptor carrying the declaration. Freezing is
// left to the schema update path once all fields of the update validated.
func (b *FieldTypeBuilder) Build() (*FieldTypeDescriptor, error) {
	fieldType := ToFieldType(b.Type, b.Encoding, b.Format)
	if fieldType == UnknownType {
		return nil, errors.InvalidArgument("unsupported type declaration for field '%s' (type: %q, format: %q)",
			b.FieldName, b.Type, b.Format)
	}

	ft := NewFieldTypeDescriptor(b.FieldName, fieldType)
	if b.Index != nil {
		ft.SetIndexed(*b.Index)
	}
	if b.Store != nil {
		ft.SetStored(*b.Store)
	}
	if b.DocValues != nil {
		ft.SetHasDocValues(*b.DocValues)
	}
	if b.Norms != nil {
		ft.SetOmitNorms(!*b.Norms)
	}
	if b.Boost != nil {
		ft.SetBoost(*b.Boost)
	}
	if len(b.Analyzer) > 0 {
		ft.SetIndexAnalyzer(NewAnalyzer(b.Analyzer))
	}
	if len(b.SearchAnalyzer) > 0 {
		ft.SetSearchAnalyzer(NewAnalyzer(b.SearchAnalyzer))
	}
	if len(b.SearchQuoteAnalyzer) > 0 {
		ft.SetSearchQuoteAnalyzer(NewAnalyzer(b.SearchQuoteAnalyzer))
	}
	if len(b.Similarity) > 0 {
		ft.SetSimilarity(NewSimilarity(b.Similarity))
	}
	if b.NullValue != nil {
		ft.SetNullValue(b.NullValue)
	}
	if b.EagerGlobalOrdinals != nil {
		ft.SetEagerGlobalOrdinals(*b.EagerGlobalOrdinals)
	}

	if len(b.TermVector) > 0 {
		if err := applyTermVector(ft, b.TermVector); err != nil {
			return nil, err
		}
	}

	if fieldType == ObjectType && b.Boost != nil {
		// boost on an object carries no meaning, flag it loudly during
		// development instead of silently ignoring
		log.Warn().Str("field", b.FieldName).Msg("ignoring boost on object field")
	}

	return ft, nil
}

func applyTermVector(ft *FieldTypeDescriptor, variant string) error {
	switch variant {
	case termVectorNo:
	case termVectorYes:
		ft.SetStoreTermVectors(true)
	case termVectorWithPositions:
		ft.SetStoreTermVectors(true)
		ft.SetStoreTermVectorPositions(true)
	case termVectorWithOffsets:
		ft.SetStoreTermVectors(true)
		ft.SetStoreTermVectorOffsets(true)
	case termVectorWithPositionsOffsets:
		ft.SetStoreTermVectors(true)
		ft.SetStoreTermVectorPositions(true)
		ft.SetStoreTermVectorOffsets(true)
	case termVectorWithPositionsOffsetsPay:
		ft.SetStoreTermVectors(true)
		ft.SetStoreTermVectorPositions(true)
		ft.SetStoreTermVectorOffsets(true)
		ft.SetStoreTermVectorPayloads(true)
	default:
		return errors.InvalidArgument("unknown term_vector variant '%s' for field '%s'", variant, ft.Name())
	}
	return nil
}
