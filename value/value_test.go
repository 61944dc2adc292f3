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

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantledata/mantle/schema"
)

func TestNewValue(t *testing.T) {
	t.Run("typed parsing", func(t *testing.T) {
		cases := []struct {
			fieldType schema.FieldType
			raw       string
			expected  any
		}{
			{schema.BoolType, "true", true},
			{schema.Int64Type, "42", int64(42)},
			{schema.DoubleType, "4.5", 4.5},
			{schema.KeywordType, "alpha", "alpha"},
		}

		for _, c := range cases {
			v, err := NewValue(c.fieldType, []byte(c.raw))
			require.NoError(t, err)
			require.NotNil(t, v)
			assert.Equal(t, c.expected, v.AsInterface())
			assert.Equal(t, c.fieldType, v.DataType())
		}
	})

	t.Run("null forms", func(t *testing.T) {
		for _, raw := range [][]byte{nil, {}, []byte("null")} {
			v, err := NewValue(schema.Int64Type, raw)
			require.NoError(t, err)
			assert.Nil(t, v)
		}
	})

	t.Run("mismatched literal", func(t *testing.T) {
		_, err := NewValue(schema.Int64Type, []byte("4.5"))
		assert.Error(t, err)
		_, err = NewValue(schema.BoolType, []byte("yes please"))
		assert.Error(t, err)
	})
}

func TestValueCompareTo(t *testing.T) {
	mk := func(ft schema.FieldType, raw string) Value {
		v, err := NewValue(ft, []byte(raw))
		require.NoError(t, err)
		return v
	}

	t.Run("numeric order", func(t *testing.T) {
		a := mk(schema.Int64Type, "-5")
		b := mk(schema.Int64Type, "10")

		cmp, err := a.CompareTo(b)
		require.NoError(t, err)
		assert.Negative(t, cmp)

		cmp, err = b.CompareTo(a)
		require.NoError(t, err)
		assert.Positive(t, cmp)

		cmp, err = a.CompareTo(mk(schema.Int64Type, "-5"))
		require.NoError(t, err)
		assert.Zero(t, cmp)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		a := mk(schema.Int64Type, "5")
		b := mk(schema.DoubleType, "5")
		_, err := a.CompareTo(b)
		assert.Error(t, err)
	})

	t.Run("nil comparand", func(t *testing.T) {
		a := mk(schema.Int64Type, "5")
		_, err := a.CompareTo(nil)
		assert.Error(t, err)
	})
}
