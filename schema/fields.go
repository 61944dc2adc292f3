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
	"regexp"
	"strings"
)

// FieldType is the closed set of field kinds a schema can declare. Query
// translation dispatches on this tag through a capability table instead of
// open subclassing, so adding a kind means extending the enum and the table.
type FieldType int

const (
	UnknownType FieldType = iota
	NullType
	BoolType
	Int32Type
	Int64Type
	DoubleType
	// TextType is analyzed, tokenized full text.
	TextType
	// KeywordType is an untokenized string indexed as a single term.
	KeywordType
	// ByteType is a base64 encoded binary value; it is decoded before being
	// used as an index term.
	ByteType
	UUIDType
	// DateTimeType is a date as defined by RFC 3339, indexed as unix nanos.
	DateTimeType
	GeoPointType
	// ObjectType is a sub document; when declared nested its documents are
	// indexed as separate units joined back through scoped filters.
	ObjectType
	// MaxType for internal querying usage.
	MaxType
)

var FieldTypeNames = [...]string{
	UnknownType:  "unknown",
	NullType:     "null",
	BoolType:     "bool",
	Int32Type:    "int32",
	Int64Type:    "int64",
	DoubleType:   "double",
	TextType:     "text",
	KeywordType:  "keyword",
	ByteType:     "byte",
	UUIDType:     "uuid",
	DateTimeType: "datetime",
	GeoPointType: "geopoint",
	ObjectType:   "object",
}

var (
	MsgFieldNameInvalidPattern = "Invalid field name, field name can only contain [a-zA-Z0-9_$] and it can only start with [a-zA-Z_$] for fieldName = '%s'"
	ValidFieldNamePattern      = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)
)

const (
	jsonSpecNull   = "null"
	jsonSpecBool   = "boolean"
	jsonSpecInt    = "integer"
	jsonSpecDouble = "number"
	jsonSpecString = "string"
	jsonSpecObject = "object"

	jsonSpecEncodingB64    = "base64"
	jsonSpecFormatUUID     = "uuid"
	jsonSpecFormatDateTime = "date-time"
	jsonSpecFormatByte     = "byte"
	jsonSpecFormatInt32    = "int32"
	jsonSpecFormatInt64    = "int64"
	jsonSpecFormatKeyword  = "keyword"
	jsonSpecFormatGeo      = "geopoint"
)

// ToFieldType maps a mapping declaration (json type plus optional encoding
// and format) to a field kind. Unrecognized combinations yield UnknownType.
func ToFieldType(jsonType string, encoding string, format string) FieldType {
	jsonType = strings.ToLower(jsonType)
	switch jsonType {
	case jsonSpecNull:
		return NullType
	case jsonSpecBool:
		return BoolType
	case jsonSpecInt:
		if len(format) == 0 {
			return Int64Type
		}

		switch format {
		case jsonSpecFormatInt32:
			return Int32Type
		case jsonSpecFormatInt64:
			return Int64Type
		}
		return UnknownType
	case jsonSpecDouble:
		return DoubleType
	case jsonSpecString:
		// if encoding is set
		switch encoding {
		case jsonSpecEncodingB64:
			return ByteType
		default:
			if len(encoding) > 0 {
				return UnknownType
			}
		}

		// if format is specified
		switch format {
		case jsonSpecFormatUUID:
			return UUIDType
		case jsonSpecFormatDateTime:
			return DateTimeType
		case jsonSpecFormatByte:
			return ByteType
		case jsonSpecFormatKeyword:
			return KeywordType
		case jsonSpecFormatGeo:
			return GeoPointType
		default:
			if len(format) > 0 {
				return UnknownType
			}
		}

		return TextType
	case jsonSpecObject:
		return ObjectType
	default:
		return UnknownType
	}
}

// IsNumericType gates term expansion queries; regular expressions carry no
// meaning over numeric terms.
func IsNumericType(t FieldType) bool {
	switch t {
	case Int32Type, Int64Type, DoubleType:
		return true
	default:
		return false
	}
}

func IsPrimitiveType(t FieldType) bool {
	switch t {
	case BoolType, Int32Type, Int64Type, DoubleType, TextType, KeywordType, ByteType, UUIDType, DateTimeType:
		return true
	default:
		return false
	}
}

// SupportedIndexableType are the kinds whose values map to inverted index
// terms.
func SupportedIndexableType(t FieldType) bool {
	switch t {
	case BoolType, Int32Type, Int64Type, DoubleType, TextType, KeywordType, ByteType, UUIDType, DateTimeType:
		return true
	default:
		return false
	}
}

// DefaultSortableType are the kinds for which doc values are enabled by
// default, making the field sortable without further configuration.
func DefaultSortableType(t FieldType) bool {
	switch t {
	case Int32Type, Int64Type, DoubleType, DateTimeType, BoolType, KeywordType:
		return true
	default:
		return false
	}
}

// TokenizedByDefault is true only for analyzed full text.
func TokenizedByDefault(t FieldType) bool {
	return t == TextType
}

// RangeComparableType are the kinds whose encoded terms are totally ordered,
// allowing the range relation of a reader snapshot to be computed from the
// term dictionary min and max instead of the conservative answer.
func RangeComparableType(t FieldType) bool {
	switch t {
	case Int32Type, Int64Type, DoubleType, DateTimeType, KeywordType, ByteType:
		return true
	default:
		return false
	}
}
