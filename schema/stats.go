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
	"bytes"

	"github.com/mantledata/mantle/index"
)

// FieldStats are aggregate term statistics of one field across a reader
// snapshot.
type FieldStats struct {
	MaxDoc           int
	DocCount         int64
	SumDocFreq       int64
	SumTotalTermFreq int64
	MinTerm          []byte
	MaxTerm          []byte
}

// FieldStats reads the field's term statistics from the given snapshot. The
// returned stats are nil when the snapshot holds no terms for the field. I/O
// faults from the reader propagate to the caller.
func (ft *FieldTypeDescriptor) FieldStats(reader index.Reader) (*FieldStats, error) {
	terms, err := reader.Terms(ft.name)
	if err != nil {
		return nil, err
	}
	if terms == nil {
		return nil, nil
	}

	minTerm, err := terms.Min()
	if err != nil {
		return nil, err
	}
	maxTerm, err := terms.Max()
	if err != nil {
		return nil, err
	}

	return &FieldStats{
		MaxDoc:           reader.MaxDoc(),
		DocCount:         terms.DocCount(),
		SumDocFreq:       terms.SumDocFreq(),
		SumTotalTermFreq: terms.SumTotalTermFreq(),
		MinTerm:          minTerm,
		MaxTerm:          maxTerm,
	}, nil
}

// Relation describes how the field's indexed value range across a snapshot
// relates to a query range.
type Relation uint8

const (
	// RelationIntersects is the conservative answer: the ranges may overlap.
	// Always safe to return; an incorrect Within or Disjoint would corrupt
	// query skipping optimizations.
	RelationIntersects Relation = iota
	// RelationWithin means every indexed value lies inside the query range.
	RelationWithin
	// RelationDisjoint means no indexed value lies inside the query range.
	RelationDisjoint
)

func (r Relation) String() string {
	switch r {
	case RelationWithin:
		return "WITHIN"
	case RelationDisjoint:
		return "DISJOINT"
	default:
		return "INTERSECTS"
	}
}

// IsFieldWithinRange reports whether the field's indexed values across the
// whole snapshot lie fully inside, overlap, or lie fully outside the query
// range given by encoded term bounds. A nil bound is unbounded on that side.
// Kinds without totally ordered term encodings answer RelationIntersects.
func (ft *FieldTypeDescriptor) IsFieldWithinRange(reader index.Reader, lower, upper []byte, includeLower, includeUpper bool) (Relation, error) {
	if !RangeComparableType(ft.fieldType) {
		return RelationIntersects, nil
	}

	terms, err := reader.Terms(ft.name)
	if err != nil {
		return RelationIntersects, err
	}
	if terms == nil {
		// no values in this snapshot, nothing can match
		return RelationDisjoint, nil
	}

	minTerm, err := terms.Min()
	if err != nil {
		return RelationIntersects, err
	}
	maxTerm, err := terms.Max()
	if err != nil {
		return RelationIntersects, err
	}
	if minTerm == nil || maxTerm == nil {
		return RelationIntersects, nil
	}

	// fully outside the query range
	if lower != nil {
		if cmp := bytes.Compare(maxTerm, lower); cmp < 0 || (cmp == 0 && !includeLower) {
			return RelationDisjoint, nil
		}
	}
	if upper != nil {
		if cmp := bytes.Compare(minTerm, upper); cmp > 0 || (cmp == 0 && !includeUpper) {
			return RelationDisjoint, nil
		}
	}

	// fully inside the query range
	lowerOK := lower == nil
	if !lowerOK {
		if cmp := bytes.Compare(minTerm, lower); cmp > 0 || (cmp == 0 && includeLower) {
			lowerOK = true
		}
	}
	upperOK := upper == nil
	if !upperOK {
		if cmp := bytes.Compare(maxTerm, upper); cmp < 0 || (cmp == 0 && includeUpper) {
			upperOK = true
		}
	}
	if lowerOK && upperOK {
		return RelationWithin, nil
	}

	return RelationIntersects, nil
}
