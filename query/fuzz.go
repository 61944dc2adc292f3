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

package query

import (
	"strconv"
	"strings"
)

// Fuzziness is the requested looseness of a fuzzy query: "AUTO" or an edit
// distance. The mapping to a concrete edit distance depends on the textual
// form of the compared value and is a pluggable policy; the only contract is
// larger fuzziness means a looser bound.
type Fuzziness string

const (
	FuzzinessAuto Fuzziness = "AUTO"
	FuzzinessZero Fuzziness = "0"
	FuzzinessOne  Fuzziness = "1"
	FuzzinessTwo  Fuzziness = "2"
)

// maxSupportedEdits bounds the automaton size of term expansion.
const maxSupportedEdits = 2

// FuzzinessPolicy resolves a fuzziness to an edit distance for a concrete
// term text.
type FuzzinessPolicy func(f Fuzziness, text string) int

// DistancePolicy is the active fuzziness resolution. Replaceable during
// setup, before queries are served.
var DistancePolicy FuzzinessPolicy = autoDistance

// AsDistance resolves the fuzziness to an edit distance for the given text.
func (f Fuzziness) AsDistance(text string) int {
	return DistancePolicy(f, text)
}

func autoDistance(f Fuzziness, text string) int {
	if strings.EqualFold(string(f), string(FuzzinessAuto)) {
		switch n := len([]rune(text)); {
		case n <= 2:
			return 0
		case n <= 5:
			return 1
		default:
			return maxSupportedEdits
		}
	}

	edits, err := strconv.ParseFloat(string(f), 64)
	if err != nil || edits < 0 {
		return maxSupportedEdits
	}
	if edits > maxSupportedEdits {
		return maxSupportedEdits
	}
	return int(edits)
}
