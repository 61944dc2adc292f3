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
)

func TestNewFieldTypeBuilder(t *testing.T) {
	t.Run("full declaration", func(t *testing.T) {
		raw := []byte(`{
			"type": "string",
			"store": true,
			"doc_values": true,
			"boost": 2.5,
			"analyzer": "english",
			"search_analyzer": "english",
			"similarity": "bm25",
			"null_value": "n/a",
			"term_vector": "with_positions_offsets"
		}`)

		b, err := NewFieldTypeBuilder("title", raw)
		require.NoError(t, err)

		ft, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, TextType, ft.Type())
		assert.True(t, ft.IsStored())
		assert.True(t, ft.HasDocValues())
		assert.Equal(t, 2.5, ft.Boost())
		assert.Equal(t, "english", ft.IndexAnalyzer().Name())
		assert.Equal(t, "bm25", ft.Similarity().Name())
		assert.Equal(t, "n/a", ft.NullValue())
		assert.Equal(t, "n/a", ft.NullValueAsString())
		assert.True(t, ft.StoreTermVectors())
		assert.True(t, ft.StoreTermVectorPositions())
		assert.True(t, ft.StoreTermVectorOffsets())
		assert.False(t, ft.StoreTermVectorPayloads())
		assert.False(t, ft.IsFrozen())
	})

	t.Run("typed declarations", func(t *testing.T) {
		cases := []struct {
			raw      string
			expected FieldType
		}{
			{`{"type": "integer"}`, Int64Type},
			{`{"type": "integer", "format": "int32"}`, Int32Type},
			{`{"type": "number"}`, DoubleType},
			{`{"type": "boolean"}`, BoolType},
			{`{"type": "string"}`, TextType},
			{`{"type": "string", "format": "keyword"}`, KeywordType},
			{`{"type": "string", "format": "uuid"}`, UUIDType},
			{`{"type": "string", "format": "date-time"}`, DateTimeType},
			{`{"type": "string", "format": "byte"}`, ByteType},
			{`{"type": "string", "contentEncoding": "base64"}`, ByteType},
			{`{"type": "object"}`, ObjectType},
		}

		for _, c := range cases {
			b, err := NewFieldTypeBuilder("f", []byte(c.raw))
			require.NoError(t, err)
			ft, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, c.expected, ft.Type(), c.raw)
		}
	})

	t.Run("norms inverts to omit", func(t *testing.T) {
		b, err := NewFieldTypeBuilder("f", []byte(`{"type": "string", "norms": false}`))
		require.NoError(t, err)
		ft, err := b.Build()
		require.NoError(t, err)
		assert.True(t, ft.OmitNorms())
	})

	t.Run("invalid field name", func(t *testing.T) {
		_, err := NewFieldTypeBuilder("0bad", []byte(`{"type": "string"}`))
		assert.Error(t, err)

		_, err = NewFieldTypeBuilder("bad.name", []byte(`{"type": "string"}`))
		assert.Error(t, err)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := NewFieldTypeBuilder("f", []byte(`{"type": "string", "fielddata": true}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fielddata")
	})

	t.Run("unknown type", func(t *testing.T) {
		b, err := NewFieldTypeBuilder("f", []byte(`{"type": "decimal"}`))
		require.NoError(t, err)
		_, err = b.Build()
		assert.Error(t, err)
	})

	t.Run("unknown term_vector variant", func(t *testing.T) {
		b, err := NewFieldTypeBuilder("f", []byte(`{"type": "string", "term_vector": "sometimes"}`))
		require.NoError(t, err)
		_, err = b.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sometimes")
	})
}
