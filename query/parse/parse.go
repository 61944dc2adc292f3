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

// Package parse exposes an already lexed request fragment as a token stream.
// Request bodies reach this core pre parsed; the grammar layers (sort, query
// operators) consume tokens instead of raw bytes, and can hand whole value
// subtrees back out for kind specific parsing.
package parse

import (
	"bytes"

	"github.com/buger/jsonparser"

	"github.com/mantledata/mantle/errors"
)

// TokenType is the shape of the current token.
type TokenType int

const (
	NoToken TokenType = iota
	StartObject
	EndObject
	StartArray
	EndArray
	FieldName
	StringValue
	NumberValue
	BoolValue
	NullValue
)

func (t TokenType) String() string {
	switch t {
	case StartObject:
		return "start_object"
	case EndObject:
		return "end_object"
	case StartArray:
		return "start_array"
	case EndArray:
		return "end_array"
	case FieldName:
		return "field_name"
	case StringValue:
		return "string"
	case NumberValue:
		return "number"
	case BoolValue:
		return "boolean"
	case NullValue:
		return "null"
	default:
		return "none"
	}
}

// IsValue reports whether the token is a scalar value.
func (t TokenType) IsValue() bool {
	switch t {
	case StringValue, NumberValue, BoolValue, NullValue:
		return true
	default:
		return false
	}
}

type token struct {
	typ  TokenType
	text string
	raw  []byte
	// skip is the token index just past this value's subtree, used by
	// SkipChildren on container starts.
	skip int
}

// Context is a cursor over the token stream of one request fragment.
type Context struct {
	tokens  []token
	pos     int
	curName string
}

// NewContext tokenizes the fragment. The cursor starts before the first
// token; the first NextToken call lands on it.
func NewContext(raw []byte) (*Context, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &Context{pos: -1}, nil
	}

	vt := detectValueType(trimmed)
	var tokens []token
	if err := tokenizeValue(trimmed, vt, &tokens); err != nil {
		return nil, err
	}
	return &Context{tokens: tokens, pos: -1}, nil
}

// CurrentToken returns the token under the cursor, NoToken before the first
// NextToken call and after exhaustion.
func (c *Context) CurrentToken() TokenType {
	if c.pos < 0 || c.pos >= len(c.tokens) {
		return NoToken
	}
	return c.tokens[c.pos].typ
}

// NextToken advances the cursor and returns the new token, NoToken once the
// stream is exhausted.
func (c *Context) NextToken() TokenType {
	if c.pos < len(c.tokens) {
		c.pos++
	}
	t := c.CurrentToken()
	if t == FieldName {
		c.curName = c.tokens[c.pos].text
	}
	return t
}

// Text returns the textual form of the current token: the string, the
// number or boolean literal, or the field name.
func (c *Context) Text() string {
	if c.pos < 0 || c.pos >= len(c.tokens) {
		return ""
	}
	return c.tokens[c.pos].text
}

// CurrentName returns the most recently seen field name.
func (c *Context) CurrentName() string {
	return c.curName
}

// RawValue returns the raw bytes of the current value; for a container start
// the whole subtree. Useful to hand fragments to kind specific parsers.
func (c *Context) RawValue() []byte {
	if c.pos < 0 || c.pos >= len(c.tokens) {
		return nil
	}
	return c.tokens[c.pos].raw
}

// SkipChildren moves the cursor onto the matching end token of the current
// container start; a no-op on any other token.
func (c *Context) SkipChildren() {
	if c.pos < 0 || c.pos >= len(c.tokens) {
		return
	}
	t := c.tokens[c.pos]
	if t.typ == StartObject || t.typ == StartArray {
		c.pos = t.skip - 1
	}
}

func detectValueType(raw []byte) jsonparser.ValueType {
	switch raw[0] {
	case '{':
		return jsonparser.Object
	case '[':
		return jsonparser.Array
	case '"':
		return jsonparser.String
	case 't', 'f':
		return jsonparser.Boolean
	case 'n':
		return jsonparser.Null
	default:
		return jsonparser.Number
	}
}

func tokenizeValue(raw []byte, vt jsonparser.ValueType, out *[]token) error {
	switch vt {
	case jsonparser.Object:
		start := len(*out)
		*out = append(*out, token{typ: StartObject, raw: raw})
		err := jsonparser.ObjectEach(raw, func(k []byte, v []byte, kvt jsonparser.ValueType, offset int) error {
			name, err := jsonparser.ParseString(k)
			if err != nil {
				return err
			}
			*out = append(*out, token{typ: FieldName, text: name})
			return tokenizeValue(v, kvt, out)
		})
		if err != nil {
			return errors.InvalidArgument("malformed request fragment: %s", err.Error())
		}
		*out = append(*out, token{typ: EndObject})
		(*out)[start].skip = len(*out)
	case jsonparser.Array:
		start := len(*out)
		*out = append(*out, token{typ: StartArray, raw: raw})
		var inner error
		_, err := jsonparser.ArrayEach(raw, func(item []byte, ivt jsonparser.ValueType, offset int, errEach error) {
			if inner != nil {
				return
			}
			if errEach != nil {
				inner = errEach
				return
			}
			inner = tokenizeValue(item, ivt, out)
		})
		if err == nil {
			err = inner
		}
		if err != nil {
			return errors.InvalidArgument("malformed request fragment: %s", err.Error())
		}
		*out = append(*out, token{typ: EndArray})
		(*out)[start].skip = len(*out)
	case jsonparser.String:
		// container callbacks hand string values unquoted, the top level
		// fragment keeps its quotes
		if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
			raw = raw[1 : len(raw)-1]
		}
		text, err := jsonparser.ParseString(raw)
		if err != nil {
			return errors.InvalidArgument("malformed request fragment: %s", err.Error())
		}
		*out = append(*out, token{typ: StringValue, text: text, raw: raw})
	case jsonparser.Number:
		*out = append(*out, token{typ: NumberValue, text: string(raw), raw: raw})
	case jsonparser.Boolean:
		*out = append(*out, token{typ: BoolValue, text: string(raw), raw: raw})
	case jsonparser.Null:
		*out = append(*out, token{typ: NullValue, raw: raw})
	default:
		return errors.InvalidArgument("malformed request fragment")
	}
	return nil
}
