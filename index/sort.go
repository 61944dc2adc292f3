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

package index

// SortFieldType tags the comparator a compiled sort key selects.
type SortFieldType uint8

const (
	// SortByScore orders documents by relevance score.
	SortByScore SortFieldType = iota
	// SortByDoc orders documents by document number.
	SortByDoc
	// SortByField orders documents by a field's doc values.
	SortByField
	// SortByCustom orders documents through a caller supplied comparator
	// source, used for script and geo distance sorts.
	SortByCustom
)

// ComparatorSource produces per document sort values for custom sort keys.
// It is opaque to this core beyond being carried on the sort field.
type ComparatorSource interface {
	// Values binds the source to one reader snapshot.
	Values(reader Reader) (ValuesReader, error)
}

// Nested scopes a sort key to values inside nested sub documents. RootFilter
// selects the root level documents, InnerFilter the in-scope nested ones; the
// comparator picks, per root document, the nested value winning under the
// key's order.
type Nested struct {
	RootFilter  DocSetFilter
	InnerFilter Query
}

// SortField is one compiled, executable sort key. Keys compare documents in
// slice order with standard lexicographic multi key semantics.
type SortField struct {
	Field      string
	Type       SortFieldType
	Reverse    bool
	Missing    any
	Nested     *Nested
	Comparator ComparatorSource
}

// Sort is an ordered list of compiled sort keys bound to a query execution.
type Sort struct {
	Fields []SortField
}

// NewScoreSortField returns the relevance score key. Score order is naturally
// descending, so reverse is set for an ascending request.
func NewScoreSortField(reverse bool) SortField {
	return SortField{Type: SortByScore, Reverse: reverse}
}

func NewDocSortField(reverse bool) SortField {
	return SortField{Type: SortByDoc, Reverse: reverse}
}
