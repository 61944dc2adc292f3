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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantledata/mantle/index"
)

type mockTerms struct {
	docCount         int64
	sumDocFreq       int64
	sumTotalTermFreq int64
	min              []byte
	max              []byte
}

func (m *mockTerms) DocCount() int64         { return m.docCount }
func (m *mockTerms) SumDocFreq() int64       { return m.sumDocFreq }
func (m *mockTerms) SumTotalTermFreq() int64 { return m.sumTotalTermFreq }
func (m *mockTerms) Min() ([]byte, error)    { return m.min, nil }
func (m *mockTerms) Max() ([]byte, error)    { return m.max, nil }

type mockReader struct {
	maxDoc int
	terms  map[string]*mockTerms
}

func (m *mockReader) MaxDoc() int { return m.maxDoc }

func (m *mockReader) Terms(field string) (index.Terms, error) {
	t, ok := m.terms[field]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (m *mockReader) TermIterator(string) (index.TermIterator, error) { return nil, nil }

func (m *mockReader) DocCount(field string) (int64, error) {
	if t, ok := m.terms[field]; ok {
		return t.docCount, nil
	}
	return 0, nil
}

func (m *mockReader) DocValues(string) (index.ValuesReader, error) { return nil, nil }

func TestFieldStats(t *testing.T) {
	reader := &mockReader{
		maxDoc: 100,
		terms: map[string]*mockTerms{
			"sku": {
				docCount:         80,
				sumDocFreq:       120,
				sumTotalTermFreq: 150,
				min:              []byte("aaa"),
				max:              []byte("zzz"),
			},
		},
	}

	t.Run("present field", func(t *testing.T) {
		ft := NewFieldTypeDescriptor("sku", KeywordType)
		stats, err := ft.FieldStats(reader)
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, 100, stats.MaxDoc)
		assert.Equal(t, int64(80), stats.DocCount)
		assert.Equal(t, int64(120), stats.SumDocFreq)
		assert.Equal(t, int64(150), stats.SumTotalTermFreq)
		assert.Equal(t, []byte("aaa"), stats.MinTerm)
		assert.Equal(t, []byte("zzz"), stats.MaxTerm)
	})

	t.Run("absent field", func(t *testing.T) {
		ft := NewFieldTypeDescriptor("missing", KeywordType)
		stats, err := ft.FieldStats(reader)
		require.NoError(t, err)
		assert.Nil(t, stats)
	})
}

func TestIsFieldWithinRange(t *testing.T) {
	reader := &mockReader{
		maxDoc: 10,
		terms: map[string]*mockTerms{
			"sku": {min: []byte("ccc"), max: []byte("mmm")},
		},
	}

	ft := NewFieldTypeDescriptor("sku", KeywordType)

	cases := []struct {
		name                       string
		lower, upper               []byte
		includeLower, includeUpper bool
		expected                   Relation
	}{
		{"fully inside", []byte("aaa"), []byte("zzz"), true, true, RelationWithin},
		{"exact bounds inclusive", []byte("ccc"), []byte("mmm"), true, true, RelationWithin},
		{"exact bounds exclusive", []byte("ccc"), []byte("mmm"), false, false, RelationIntersects},
		{"overlap lower", []byte("ddd"), []byte("zzz"), true, true, RelationIntersects},
		{"overlap upper", []byte("aaa"), []byte("kkk"), true, true, RelationIntersects},
		{"below all terms", nil, []byte("aaa"), true, true, RelationDisjoint},
		{"above all terms", []byte("nnn"), nil, true, true, RelationDisjoint},
		{"touching lower exclusive", []byte("mmm"), nil, false, false, RelationDisjoint},
		{"touching lower inclusive", []byte("mmm"), nil, true, false, RelationIntersects},
		{"touching upper exclusive", nil, []byte("ccc"), false, false, RelationDisjoint},
		{"unbounded", nil, nil, false, false, RelationWithin},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rel, err := ft.IsFieldWithinRange(reader, c.lower, c.upper, c.includeLower, c.includeUpper)
			require.NoError(t, err)
			assert.Equal(t, c.expected, rel)
		})
	}

	t.Run("non comparable kind", func(t *testing.T) {
		text := NewFieldTypeDescriptor("body", TextType)
		rel, err := text.IsFieldWithinRange(reader, []byte("a"), []byte("z"), true, true)
		require.NoError(t, err)
		assert.Equal(t, RelationIntersects, rel)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		absent := NewFieldTypeDescriptor("missing", KeywordType)
		rel, err := absent.IsFieldWithinRange(reader, []byte("a"), []byte("z"), true, true)
		require.NoError(t, err)
		assert.Equal(t, RelationDisjoint, rel)
	})
}

func TestRelationString(t *testing.T) {
	assert.Equal(t, "WITHIN", RelationWithin.String())
	assert.Equal(t, "DISJOINT", RelationDisjoint.String())
	assert.Equal(t, "INTERSECTS", RelationIntersects.String())
}
