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

// Package value maps application level values to the byte level terms stored
// in the inverted index. Encodings are order preserving within a field kind,
// so byte comparison of two encoded terms matches comparison of the values
// they came from. That property is what range queries and the range relation
// check rely on.
package value

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/lib/date"
	"github.com/mantledata/mantle/schema"
)

// Encode returns the exact byte level term for a value of the given field
// kind, the unit of comparison in the inverted index.
func Encode(fieldType schema.FieldType, v any) ([]byte, error) {
	if v == nil {
		return nil, errors.InvalidArgument("cannot encode null as a term of type [%s]", schema.FieldTypeNames[fieldType])
	}

	switch fieldType {
	case schema.BoolType:
		b, ok := v.(bool)
		if !ok {
			var err error
			if b, err = strconv.ParseBool(fmt.Sprint(v)); err != nil {
				return nil, errors.InvalidArgument("expected a boolean, got '%v'", v)
			}
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case schema.Int32Type, schema.Int64Type:
		i, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return EncodeInt64(i), nil
	case schema.DoubleType:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return EncodeDouble(f), nil
	case schema.TextType, schema.KeywordType:
		return []byte(fmt.Sprint(v)), nil
	case schema.DateTimeType:
		nanos, err := toUnixNano(v)
		if err != nil {
			return nil, err
		}
		return EncodeInt64(nanos), nil
	case schema.UUIDType:
		u, err := uuid.Parse(fmt.Sprint(v))
		if err != nil {
			return nil, errors.InvalidArgument("expected a uuid, got '%v'", v)
		}
		b := u // canonical 16 byte form
		return b[:], nil
	case schema.ByteType:
		if raw, ok := v.([]byte); ok {
			return raw, nil
		}
		decoded, err := base64.StdEncoding.DecodeString(fmt.Sprint(v))
		if err != nil {
			return nil, errors.InvalidArgument("expected base64 encoded bytes, got '%v'", v)
		}
		return decoded, nil
	default:
		return nil, errors.InvalidArgument("values of type [%s] have no term encoding", schema.FieldTypeNames[fieldType])
	}
}

// EncodeInt64 encodes a signed integer so that unsigned byte order matches
// numeric order: big endian with the sign bit flipped.
func EncodeInt64(i int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i)^(1<<63))
	return b[:]
}

// EncodeDouble encodes a float so that unsigned byte order matches numeric
// order: positive values get the sign bit set, negative values are inverted.
func EncodeDouble(f float64) []byte {
	bits := math.Float64bits(f)
	if bits&(1<<63) == 0 {
		bits |= 1 << 63
	} else {
		bits = ^bits
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], bits)
	return b[:]
}

func toInt64(v any) (int64, error) {
	switch i := v.(type) {
	case int:
		return int64(i), nil
	case int32:
		return int64(i), nil
	case int64:
		return i, nil
	case float64:
		if i != math.Trunc(i) {
			return 0, errors.InvalidArgument("expected an integer, got '%v'", v)
		}
		return int64(i), nil
	case string:
		parsed, err := strconv.ParseInt(i, 10, 64)
		if err != nil {
			return 0, errors.InvalidArgument("expected an integer, got '%v'", v)
		}
		return parsed, nil
	default:
		return 0, errors.InvalidArgument("expected an integer, got '%v'", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, errors.InvalidArgument("expected a number, got '%v'", v)
		}
		return parsed, nil
	default:
		return 0, errors.InvalidArgument("expected a number, got '%v'", v)
	}
}

func toUnixNano(v any) (int64, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UnixNano(), nil
	case int64:
		return d, nil
	case string:
		nanos, err := date.ToUnixNano(time.RFC3339Nano, d)
		if err != nil {
			return 0, errors.InvalidArgument("expected an RFC 3339 datetime, got '%v'", v)
		}
		return nanos, nil
	default:
		return 0, errors.InvalidArgument("expected an RFC 3339 datetime, got '%v'", v)
	}
}
