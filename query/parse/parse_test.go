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

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStream(t *testing.T) {
	t.Run("scalar fragment", func(t *testing.T) {
		c, err := NewContext([]byte(`"price"`))
		require.NoError(t, err)

		assert.Equal(t, NoToken, c.CurrentToken())
		assert.Equal(t, StringValue, c.NextToken())
		assert.Equal(t, "price", c.Text())
		assert.Equal(t, NoToken, c.NextToken())
	})

	t.Run("object fragment", func(t *testing.T) {
		c, err := NewContext([]byte(`{"order": "desc", "missing": 10, "flag": true, "gone": null}`))
		require.NoError(t, err)

		require.Equal(t, StartObject, c.NextToken())

		require.Equal(t, FieldName, c.NextToken())
		assert.Equal(t, "order", c.CurrentName())
		require.Equal(t, StringValue, c.NextToken())
		assert.Equal(t, "desc", c.Text())
		assert.Equal(t, "order", c.CurrentName())

		require.Equal(t, FieldName, c.NextToken())
		assert.Equal(t, "missing", c.CurrentName())
		require.Equal(t, NumberValue, c.NextToken())
		assert.Equal(t, "10", c.Text())

		require.Equal(t, FieldName, c.NextToken())
		require.Equal(t, BoolValue, c.NextToken())
		assert.Equal(t, "true", c.Text())

		require.Equal(t, FieldName, c.NextToken())
		require.Equal(t, NullValue, c.NextToken())

		assert.Equal(t, EndObject, c.NextToken())
		assert.Equal(t, NoToken, c.NextToken())
	})

	t.Run("array fragment", func(t *testing.T) {
		c, err := NewContext([]byte(`["a", {"b": 1}]`))
		require.NoError(t, err)

		require.Equal(t, StartArray, c.NextToken())
		require.Equal(t, StringValue, c.NextToken())
		assert.Equal(t, "a", c.Text())
		require.Equal(t, StartObject, c.NextToken())
		require.Equal(t, FieldName, c.NextToken())
		require.Equal(t, NumberValue, c.NextToken())
		require.Equal(t, EndObject, c.NextToken())
		assert.Equal(t, EndArray, c.NextToken())
	})

	t.Run("escaped strings", func(t *testing.T) {
		c, err := NewContext([]byte(`{"msg": "say \"hi\""}`))
		require.NoError(t, err)

		require.Equal(t, StartObject, c.NextToken())
		require.Equal(t, FieldName, c.NextToken())
		require.Equal(t, StringValue, c.NextToken())
		assert.Equal(t, `say "hi"`, c.Text())
	})

	t.Run("empty fragment", func(t *testing.T) {
		c, err := NewContext([]byte("   "))
		require.NoError(t, err)
		assert.Equal(t, NoToken, c.NextToken())
	})

	t.Run("malformed fragment", func(t *testing.T) {
		_, err := NewContext([]byte(`{"a": `))
		assert.Error(t, err)
	})
}

func TestSkipChildren(t *testing.T) {
	t.Run("object subtree", func(t *testing.T) {
		c, err := NewContext([]byte(`{"filter": {"term": {"a": 1}}, "order": "asc"}`))
		require.NoError(t, err)

		require.Equal(t, StartObject, c.NextToken())
		require.Equal(t, FieldName, c.NextToken())
		assert.Equal(t, "filter", c.CurrentName())
		require.Equal(t, StartObject, c.NextToken())

		c.SkipChildren()
		assert.Equal(t, EndObject, c.CurrentToken())

		// the enclosing loop continues at the next field
		require.Equal(t, FieldName, c.NextToken())
		assert.Equal(t, "order", c.CurrentName())
		require.Equal(t, StringValue, c.NextToken())
		assert.Equal(t, "asc", c.Text())
	})

	t.Run("array subtree", func(t *testing.T) {
		c, err := NewContext([]byte(`{"points": [1, 2], "unit": "km"}`))
		require.NoError(t, err)

		require.Equal(t, StartObject, c.NextToken())
		require.Equal(t, FieldName, c.NextToken())
		require.Equal(t, StartArray, c.NextToken())

		c.SkipChildren()
		assert.Equal(t, EndArray, c.CurrentToken())
		require.Equal(t, FieldName, c.NextToken())
		assert.Equal(t, "unit", c.CurrentName())
	})

	t.Run("no-op on scalars", func(t *testing.T) {
		c, err := NewContext([]byte(`"x"`))
		require.NoError(t, err)
		c.NextToken()
		c.SkipChildren()
		assert.Equal(t, StringValue, c.CurrentToken())
	})
}

func TestRawValue(t *testing.T) {
	c, err := NewContext([]byte(`{"filter": {"term": {"a": 1}}}`))
	require.NoError(t, err)

	require.Equal(t, StartObject, c.NextToken())
	require.Equal(t, FieldName, c.NextToken())
	require.Equal(t, StartObject, c.NextToken())

	raw := c.RawValue()
	assert.JSONEq(t, `{"term": {"a": 1}}`, string(raw))
}

func TestTokenTypeIsValue(t *testing.T) {
	assert.True(t, StringValue.IsValue())
	assert.True(t, NumberValue.IsValue())
	assert.True(t, BoolValue.IsValue())
	assert.True(t, NullValue.IsValue())
	assert.False(t, StartObject.IsValue())
	assert.False(t, FieldName.IsValue())
	assert.False(t, NoToken.IsValue())
}
