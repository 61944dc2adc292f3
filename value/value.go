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
	"bytes"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/schema"
)

type Comparable interface {
	// CompareTo returns a negative integer, zero, or a positive integer as
	// the receiver is less than, equal to, or greater than the parameter.
	CompareTo(v Value) (int, error)
}

// Value is a typed application level value. Two values of the same kind
// compare through their encoded terms, so value order and index term order
// never diverge.
type Value interface {
	fmt.Stringer
	Comparable

	// AsInterface returns the underlying Go value.
	AsInterface() any
	DataType() schema.FieldType
	// Term returns the encoded index term of the value.
	Term() ([]byte, error)
}

type typedValue struct {
	fieldType schema.FieldType
	raw       any
}

func (t *typedValue) String() string { return fmt.Sprint(t.raw) }

func (t *typedValue) AsInterface() any { return t.raw }

func (t *typedValue) DataType() schema.FieldType { return t.fieldType }

func (t *typedValue) Term() ([]byte, error) { return Encode(t.fieldType, t.raw) }

func (t *typedValue) CompareTo(v Value) (int, error) {
	if v == nil {
		return 0, errors.InvalidArgument("cannot compare to a nil value")
	}
	if t.fieldType != v.DataType() {
		return 0, errors.InvalidArgument("cannot compare [%s] value to [%s] value",
			schema.FieldTypeNames[t.fieldType], schema.FieldTypeNames[v.DataType()])
	}

	left, err := t.Term()
	if err != nil {
		return 0, err
	}
	right, err := v.Term()
	if err != nil {
		return 0, err
	}
	return bytes.Compare(left, right), nil
}

// NewValue builds a typed value from the raw JSON bytes of a request, using
// the field kind to pick the representation.
func NewValue(fieldType schema.FieldType, raw []byte) (Value, error) {
	if isNull(fieldType, raw) {
		return nil, nil
	}

	switch fieldType {
	case schema.BoolType:
		b, err := strconv.ParseBool(string(raw))
		if err != nil {
			return nil, errors.InvalidArgument("unsupported value type: %s", err.Error())
		}
		return &typedValue{fieldType: fieldType, raw: b}, nil
	case schema.Int32Type, schema.Int64Type:
		i, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil, errors.InvalidArgument("unsupported value type: %s", err.Error())
		}
		return &typedValue{fieldType: fieldType, raw: i}, nil
	case schema.DoubleType:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return nil, errors.InvalidArgument("unsupported value type: %s", err.Error())
		}
		return &typedValue{fieldType: fieldType, raw: f}, nil
	case schema.TextType, schema.KeywordType, schema.UUIDType, schema.DateTimeType, schema.ByteType:
		parsed, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, errors.InvalidArgument("unsupported value type: %s", err.Error())
		}
		return &typedValue{fieldType: fieldType, raw: parsed}, nil
	default:
		return nil, errors.InvalidArgument("unsupported value type [%s]", schema.FieldTypeNames[fieldType])
	}
}

func isNull(fieldType schema.FieldType, raw []byte) bool {
	return fieldType == schema.NullType || len(raw) == 0 || string(raw) == "null"
}
