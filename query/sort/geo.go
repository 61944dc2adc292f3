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

package sort

import (
	"strconv"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/index"
	"github.com/mantledata/mantle/query"
	"github.com/mantledata/mantle/query/parse"
)

// Reserved object names for geo distance sorts; the camel case alternative
// is kept for older request syntax.
const (
	GeoDistanceSortName    = "_geo_distance"
	GeoDistanceSortAltName = "_geoDistance"
)

// GeoPoint is a wgs84 coordinate.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// GeoDistanceComparatorSource orders documents by the distance between the
// field's points and the closest of the reference points.
type GeoDistanceComparatorSource struct {
	Field  string
	Points []GeoPoint
	Unit   string
}

func (g *GeoDistanceComparatorSource) Values(reader index.Reader) (index.ValuesReader, error) {
	return reader.DocValues(g.Field)
}

// GeoDistanceSortBuilder sorts by distance from one or more reference
// points.
type GeoDistanceSortBuilder struct {
	field           string
	points          []GeoPoint
	unit            string
	order           Order
	nestedPath      string
	nestedFilter    index.Query
	nestedFilterRaw []byte
}

func NewGeoDistanceSortBuilder(field string, order Order, points ...GeoPoint) *GeoDistanceSortBuilder {
	return &GeoDistanceSortBuilder{field: field, order: order, points: points, unit: "m"}
}

func (b *GeoDistanceSortBuilder) Order() Order { return b.order }

func (b *GeoDistanceSortBuilder) WithNested(path string, filter index.Query) *GeoDistanceSortBuilder {
	b.nestedPath = path
	b.nestedFilter = filter
	return b
}

func (b *GeoDistanceSortBuilder) Build(sctx query.ShardContext) (index.SortField, error) {
	if len(b.field) == 0 || len(b.points) == 0 {
		return index.SortField{}, errors.QueryShape("[%s] sort requires a field with at least one reference point", GeoDistanceSortName)
	}

	ft := sctx.GetFieldType(b.field)
	if ft == nil {
		return index.SortField{}, errors.QueryShape("no mapping found for [%s] in order to sort on", b.field)
	}
	if err := ft.RequireDocValues(); err != nil {
		return index.SortField{}, err
	}

	nested, err := resolveNested(sctx, b.nestedPath, b.nestedFilter, b.nestedFilterRaw)
	if err != nil {
		return index.SortField{}, err
	}

	return index.SortField{
		Field:   b.field,
		Type:    index.SortByCustom,
		Reverse: b.order == Desc,
		Nested:  nested,
		Comparator: &GeoDistanceComparatorSource{
			Field:  b.field,
			Points: b.points,
			Unit:   b.unit,
		},
	}, nil
}

func parseGeoDistanceSort(pctx *parse.Context, name string) (SortBuilder, error) {
	b := &GeoDistanceSortBuilder{unit: "m"}
	for tok := pctx.NextToken(); tok != parse.EndObject; tok = pctx.NextToken() {
		if tok != parse.FieldName {
			return nil, errors.MalformedSort("malformed [%s] sort object", name)
		}

		param := pctx.CurrentName()
		tok = pctx.NextToken()
		switch param {
		case orderField:
			order, err := ParseOrder(pctx.Text())
			if err != nil {
				return nil, err
			}
			b.order = order
		case "unit":
			b.unit = pctx.Text()
		case nestedPathField:
			b.nestedPath = pctx.Text()
		case nestedFilterField:
			if tok != parse.StartObject {
				return nil, errors.MalformedSort("[%s] must be an object in [%s] sort", nestedFilterField, name)
			}
			b.nestedFilterRaw = pctx.RawValue()
			pctx.SkipChildren()
		default:
			// any other name is the geo field with its reference points
			if len(b.field) > 0 {
				return nil, errors.MalformedSort("[%s] sort supports a single geo field, found [%s] and [%s]", name, b.field, param)
			}
			b.field = param
			points, err := parseGeoPoints(pctx, tok)
			if err != nil {
				return nil, err
			}
			b.points = points
		}
	}
	return b, nil
}

func parseGeoPoints(pctx *parse.Context, tok parse.TokenType) ([]GeoPoint, error) {
	switch tok {
	case parse.StringValue:
		pt, err := parseGeoPointString(pctx.Text())
		if err != nil {
			return nil, err
		}
		return []GeoPoint{pt}, nil
	case parse.StartObject:
		pt, err := parseGeoPointObject(pctx.RawValue())
		pctx.SkipChildren()
		if err != nil {
			return nil, err
		}
		return []GeoPoint{pt}, nil
	case parse.StartArray:
		points, err := parseGeoPointArray(pctx.RawValue())
		pctx.SkipChildren()
		return points, err
	default:
		return nil, errors.MalformedSort("geo points must be a string, an object, or an array")
	}
}

// parseGeoPointString parses the "lat,lon" form.
func parseGeoPointString(s string) (GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GeoPoint{}, errors.MalformedSort("malformed geo point '%s', expected 'lat,lon'", s)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return GeoPoint{}, errors.MalformedSort("malformed geo point '%s', expected 'lat,lon'", s)
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}

func parseGeoPointObject(raw []byte) (GeoPoint, error) {
	lat, err := jsonparser.GetFloat(raw, "lat")
	if err != nil {
		return GeoPoint{}, errors.MalformedSort("malformed geo point object, missing [lat]")
	}
	lon, err := jsonparser.GetFloat(raw, "lon")
	if err != nil {
		return GeoPoint{}, errors.MalformedSort("malformed geo point object, missing [lon]")
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}

// parseGeoPointArray accepts either one [lon, lat] pair or an array of
// points in any supported form.
func parseGeoPointArray(raw []byte) ([]GeoPoint, error) {
	var points []GeoPoint
	var numbers []float64
	var inner error

	_, err := jsonparser.ArrayEach(raw, func(item []byte, vt jsonparser.ValueType, offset int, errEach error) {
		if inner != nil {
			return
		}
		if errEach != nil {
			inner = errEach
			return
		}

		switch vt {
		case jsonparser.Number:
			f, errNum := strconv.ParseFloat(string(item), 64)
			if errNum != nil {
				inner = errors.MalformedSort("malformed geo point array")
				return
			}
			numbers = append(numbers, f)
		case jsonparser.String:
			text, errStr := jsonparser.ParseString(item)
			if errStr != nil {
				inner = errStr
				return
			}
			pt, errPt := parseGeoPointString(text)
			if errPt != nil {
				inner = errPt
				return
			}
			points = append(points, pt)
		case jsonparser.Object:
			pt, errPt := parseGeoPointObject(item)
			if errPt != nil {
				inner = errPt
				return
			}
			points = append(points, pt)
		default:
			inner = errors.MalformedSort("malformed geo point array")
		}
	})
	if err == nil {
		err = inner
	}
	if err != nil {
		return nil, errors.MalformedSort("malformed geo point array: %s", err.Error())
	}

	if len(numbers) > 0 {
		if len(points) > 0 || len(numbers) != 2 {
			return nil, errors.MalformedSort("geo point array must be [lon, lat] or a list of points")
		}
		// GeoJSON order, longitude first
		points = append(points, GeoPoint{Lat: numbers[1], Lon: numbers[0]})
	}
	if len(points) == 0 {
		return nil, errors.MalformedSort("geo distance sort requires at least one point")
	}
	return points, nil
}
