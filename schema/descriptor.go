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
	"fmt"
	"reflect"

	"github.com/mantledata/mantle/errors"
)

// Similarity is a named reference to a scoring model. Equal named
// similarities may be distinct instances, so comparisons go by name.
type Similarity struct {
	name string
}

func NewSimilarity(name string) *Similarity {
	return &Similarity{name: name}
}

func (s *Similarity) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// FieldTypeDescriptor holds the per field configuration of how raw values map
// to indexable terms and how query operators translate to primitive queries.
//
// A descriptor is built mutably during schema parsing, frozen before it is
// published into the active schema, and value immutable from then on. Frozen
// descriptors are read concurrently by query and sort executions without
// locking; a schema update supersedes a descriptor with a new one rather than
// mutating it, gated by CheckCompatibility.
type FieldTypeDescriptor struct {
	name      string
	fieldType FieldType

	indexed                  bool
	tokenized                bool
	stored                   bool
	docValues                bool
	storeTermVectors         bool
	storeTermVectorOffsets   bool
	storeTermVectorPositions bool
	storeTermVectorPayloads  bool
	omitNorms                bool
	boost                    float64
	eagerGlobalOrdinals      bool

	indexAnalyzer       *Analyzer
	searchAnalyzer      *Analyzer
	searchQuoteAnalyzer *Analyzer
	similarity          *Similarity

	nullValue         any
	nullValueAsString string

	frozen bool
}

// NewFieldTypeDescriptor returns a mutable descriptor with the defaults of
// the given kind: indexed, boost 1.0, tokenization only for analyzed text,
// doc values wherever the kind is sortable by default.
func NewFieldTypeDescriptor(name string, fieldType FieldType) *FieldTypeDescriptor {
	return &FieldTypeDescriptor{
		name:      name,
		fieldType: fieldType,
		indexed:   SupportedIndexableType(fieldType),
		tokenized: TokenizedByDefault(fieldType),
		docValues: DefaultSortableType(fieldType),
		boost:     1.0,
	}
}

// Clone returns an unfrozen copy, the starting point of a schema update that
// supersedes this descriptor.
func (ft *FieldTypeDescriptor) Clone() *FieldTypeDescriptor {
	c := *ft
	c.frozen = false
	return &c
}

// Freeze makes the descriptor permanently immutable. One way.
func (ft *FieldTypeDescriptor) Freeze() {
	ft.frozen = true
}

func (ft *FieldTypeDescriptor) IsFrozen() bool {
	return ft.frozen
}

// checkIfFrozen guards every mutator. Mutating a frozen descriptor is a bug
// in the calling code, not a recoverable condition.
func (ft *FieldTypeDescriptor) checkIfFrozen() {
	if ft.frozen {
		panic(errors.FrozenState("field type of [%s] is frozen and cannot be changed", ft.name))
	}
}

func (ft *FieldTypeDescriptor) Name() string { return ft.name }

func (ft *FieldTypeDescriptor) SetName(name string) {
	ft.checkIfFrozen()
	ft.name = name
}

// Type returns the immutable type tag.
func (ft *FieldTypeDescriptor) Type() FieldType { return ft.fieldType }

// TypeName returns the type tag as it appears in mapping properties.
func (ft *FieldTypeDescriptor) TypeName() string { return FieldTypeNames[ft.fieldType] }

func (ft *FieldTypeDescriptor) IsIndexed() bool { return ft.indexed }

func (ft *FieldTypeDescriptor) SetIndexed(indexed bool) {
	ft.checkIfFrozen()
	ft.indexed = indexed
}

func (ft *FieldTypeDescriptor) IsTokenized() bool { return ft.tokenized }

func (ft *FieldTypeDescriptor) SetTokenized(tokenized bool) {
	ft.checkIfFrozen()
	ft.tokenized = tokenized
}

func (ft *FieldTypeDescriptor) IsStored() bool { return ft.stored }

func (ft *FieldTypeDescriptor) SetStored(stored bool) {
	ft.checkIfFrozen()
	ft.stored = stored
}

func (ft *FieldTypeDescriptor) HasDocValues() bool { return ft.docValues }

func (ft *FieldTypeDescriptor) SetHasDocValues(docValues bool) {
	ft.checkIfFrozen()
	ft.docValues = docValues
}

func (ft *FieldTypeDescriptor) StoreTermVectors() bool { return ft.storeTermVectors }

func (ft *FieldTypeDescriptor) SetStoreTermVectors(v bool) {
	ft.checkIfFrozen()
	ft.storeTermVectors = v
}

func (ft *FieldTypeDescriptor) StoreTermVectorOffsets() bool { return ft.storeTermVectorOffsets }

func (ft *FieldTypeDescriptor) SetStoreTermVectorOffsets(v bool) {
	ft.checkIfFrozen()
	ft.storeTermVectorOffsets = v
}

func (ft *FieldTypeDescriptor) StoreTermVectorPositions() bool { return ft.storeTermVectorPositions }

func (ft *FieldTypeDescriptor) SetStoreTermVectorPositions(v bool) {
	ft.checkIfFrozen()
	ft.storeTermVectorPositions = v
}

func (ft *FieldTypeDescriptor) StoreTermVectorPayloads() bool { return ft.storeTermVectorPayloads }

func (ft *FieldTypeDescriptor) SetStoreTermVectorPayloads(v bool) {
	ft.checkIfFrozen()
	ft.storeTermVectorPayloads = v
}

func (ft *FieldTypeDescriptor) OmitNorms() bool { return ft.omitNorms }

func (ft *FieldTypeDescriptor) SetOmitNorms(omit bool) {
	ft.checkIfFrozen()
	ft.omitNorms = omit
}

func (ft *FieldTypeDescriptor) Boost() float64 { return ft.boost }

func (ft *FieldTypeDescriptor) SetBoost(boost float64) {
	ft.checkIfFrozen()
	ft.boost = boost
}

func (ft *FieldTypeDescriptor) IndexAnalyzer() *Analyzer { return ft.indexAnalyzer }

func (ft *FieldTypeDescriptor) SetIndexAnalyzer(a *Analyzer) {
	ft.checkIfFrozen()
	ft.indexAnalyzer = a
}

func (ft *FieldTypeDescriptor) SearchAnalyzer() *Analyzer { return ft.searchAnalyzer }

func (ft *FieldTypeDescriptor) SetSearchAnalyzer(a *Analyzer) {
	ft.checkIfFrozen()
	ft.searchAnalyzer = a
}

// SearchQuoteAnalyzer falls back to the search analyzer when unset.
func (ft *FieldTypeDescriptor) SearchQuoteAnalyzer() *Analyzer {
	if ft.searchQuoteAnalyzer == nil {
		return ft.searchAnalyzer
	}
	return ft.searchQuoteAnalyzer
}

func (ft *FieldTypeDescriptor) SetSearchQuoteAnalyzer(a *Analyzer) {
	ft.checkIfFrozen()
	ft.searchQuoteAnalyzer = a
}

func (ft *FieldTypeDescriptor) Similarity() *Similarity { return ft.similarity }

func (ft *FieldTypeDescriptor) SetSimilarity(s *Similarity) {
	ft.checkIfFrozen()
	ft.similarity = s
}

func (ft *FieldTypeDescriptor) EagerGlobalOrdinals() bool { return ft.eagerGlobalOrdinals }

func (ft *FieldTypeDescriptor) SetEagerGlobalOrdinals(eager bool) {
	ft.checkIfFrozen()
	ft.eagerGlobalOrdinals = eager
}

// NullValue returns the value substituted when a document carries an explicit
// null, nil when no substitution is configured.
func (ft *FieldTypeDescriptor) NullValue() any { return ft.nullValue }

// NullValueAsString returns the string rendering of the null substitution,
// derived once on assignment. Empty when no substitution is configured.
func (ft *FieldTypeDescriptor) NullValueAsString() string { return ft.nullValueAsString }

// SetNullValue sets the substitution and its string rendering as a pair.
// Passing nil clears both.
func (ft *FieldTypeDescriptor) SetNullValue(nullValue any) {
	ft.checkIfFrozen()
	ft.nullValue = nullValue
	if nullValue == nil {
		ft.nullValueAsString = ""
	} else {
		ft.nullValueAsString = fmt.Sprintf("%v", nullValue)
	}
}

// ValueForIndex maps an application level value to the representation stored
// in the index. Identity for every kind; value normalization to index terms
// happens in the value package.
func (ft *FieldTypeDescriptor) ValueForIndex(v any) any { return v }

// ValueForSearch maps a stored value back to the representation returned to
// callers. Identity by default.
func (ft *FieldTypeDescriptor) ValueForSearch(v any) any { return v }

// RequireDocValues fails when a caller needs random access values but the
// field has doc values disabled.
func (ft *FieldTypeDescriptor) RequireDocValues() error {
	if !ft.docValues {
		return errors.Unsupported(
			"can't load field data on [%s] because random access values are unsupported on fields of type [%s], use doc values instead",
			ft.name, ft.TypeName())
	}
	return nil
}

// Equal reports attribute wise equality. Similarity and analyzers compare by
// name since equal named instances may be distinct objects.
func (ft *FieldTypeDescriptor) Equal(other *FieldTypeDescriptor) bool {
	if other == nil {
		return false
	}
	if ft.similarity.Name() != other.similarity.Name() {
		return false
	}

	return ft.name == other.name &&
		ft.fieldType == other.fieldType &&
		ft.indexed == other.indexed &&
		ft.tokenized == other.tokenized &&
		ft.stored == other.stored &&
		ft.docValues == other.docValues &&
		ft.storeTermVectors == other.storeTermVectors &&
		ft.storeTermVectorOffsets == other.storeTermVectorOffsets &&
		ft.storeTermVectorPositions == other.storeTermVectorPositions &&
		ft.storeTermVectorPayloads == other.storeTermVectorPayloads &&
		ft.omitNorms == other.omitNorms &&
		ft.boost == other.boost &&
		ft.eagerGlobalOrdinals == other.eagerGlobalOrdinals &&
		analyzerName(ft.indexAnalyzer) == analyzerName(other.indexAnalyzer) &&
		analyzerName(ft.searchAnalyzer) == analyzerName(other.searchAnalyzer) &&
		analyzerName(ft.SearchQuoteAnalyzer()) == analyzerName(other.SearchQuoteAnalyzer()) &&
		reflect.DeepEqual(ft.nullValue, other.nullValue) &&
		ft.nullValueAsString == other.nullValueAsString
}
