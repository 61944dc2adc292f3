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
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/mantledata/mantle/errors"
	"github.com/mantledata/mantle/server/config"
)

// CheckCompatibility compares this descriptor against a candidate replacement
// for the same field and returns every detected conflict, in detection order.
// It never stops at the first mismatch so a single schema update call can
// report everything wrong at once; callers decide whether a non empty list
// blocks the update.
//
// A type tag mismatch is fatal and returned as an error, never as a soft
// conflict. The always checked attributes are the ones an index physically
// depends on; the strict only attributes are safe to change for a single
// document type but risky when the field is shared across types.
func (ft *FieldTypeDescriptor) CheckCompatibility(other *FieldTypeDescriptor, strict bool) ([]string, error) {
	if ft.fieldType != other.fieldType {
		return nil, errors.TypeConflict("field [%s] cannot be changed from type [%s] to [%s]",
			ft.name, ft.TypeName(), other.TypeName())
	}

	var conflicts []string
	add := func(format string, args ...any) {
		conflicts = append(conflicts, fmt.Sprintf(format, args...))
	}

	if ft.indexed != other.indexed || ft.tokenized != other.tokenized {
		add("field [%s] has different [index] values", ft.name)
	}
	if ft.stored != other.stored {
		add("field [%s] has different [store] values", ft.name)
	}
	if ft.docValues != other.docValues {
		add("field [%s] has different [doc_values] values", ft.name)
	}
	// norms may be relaxed from omitted to included, never the other way
	if ft.omitNorms && !other.omitNorms {
		add("field [%s] has different [norms] values, cannot change from disable to enabled", ft.name)
	}
	if ft.storeTermVectors != other.storeTermVectors {
		add("field [%s] has different [store_term_vector] values", ft.name)
	}
	if ft.storeTermVectorOffsets != other.storeTermVectorOffsets {
		add("field [%s] has different [store_term_vector_offsets] values", ft.name)
	}
	if ft.storeTermVectorPositions != other.storeTermVectorPositions {
		add("field [%s] has different [store_term_vector_positions] values", ft.name)
	}
	if ft.storeTermVectorPayloads != other.storeTermVectorPayloads {
		add("field [%s] has different [store_term_vector_payloads] values", ft.name)
	}

	// an unset index analyzer and one named "default" both mean the default
	if ft.indexAnalyzer.IsDefault() != other.indexAnalyzer.IsDefault() {
		add("field [%s] has different [analyzer]", ft.name)
	} else if !ft.indexAnalyzer.IsDefault() && ft.indexAnalyzer.Name() != other.indexAnalyzer.Name() {
		add("field [%s] has different [analyzer]", ft.name)
	}

	if ft.similarity.Name() != other.similarity.Name() {
		add("field [%s] has different [similarity]", ft.name)
	}

	if strict {
		if ft.omitNorms != other.omitNorms {
			add("field [%s] is used by multiple types with different [omit_norms] values", ft.name)
		}
		if ft.boost != other.boost {
			add("field [%s] is used by multiple types with different [boost] values", ft.name)
		}
		if analyzerName(ft.searchAnalyzer) != analyzerName(other.searchAnalyzer) {
			add("field [%s] is used by multiple types with different [search_analyzer] values", ft.name)
		}
		if analyzerName(ft.SearchQuoteAnalyzer()) != analyzerName(other.SearchQuoteAnalyzer()) {
			add("field [%s] is used by multiple types with different [search_quote_analyzer] values", ft.name)
		}
		if ft.nullValueAsString != other.nullValueAsString {
			add("field [%s] is used by multiple types with different [null_value] values", ft.name)
		}
		if ft.eagerGlobalOrdinals != other.eagerGlobalOrdinals {
			add("field [%s] is used by multiple types with different [eager_global_ordinals] values", ft.name)
		}
	}

	return conflicts, nil
}

// Merge validates that candidate may supersede existing and returns the
// frozen candidate. All conflicts are aggregated into a single error; with
// schema.allow_incompatible set, conflicts are logged and the update goes
// through anyway.
func Merge(existing *FieldTypeDescriptor, candidate *FieldTypeDescriptor, strict bool) (*FieldTypeDescriptor, error) {
	conflicts, err := existing.CheckCompatibility(candidate, strict)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 && !config.DefaultConfig.Schema.AllowIncompatible {
		var merr error
		for _, c := range conflicts {
			merr = multierror.Append(merr, errors.InvalidArgument("%s", c))
		}
		return nil, merr
	}

	for _, c := range conflicts {
		log.Warn().Str("field", existing.Name()).Msg(c)
	}

	frozen := candidate.Clone()
	frozen.Freeze()
	return frozen, nil
}
