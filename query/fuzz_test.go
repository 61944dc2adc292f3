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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzinessAsDistance(t *testing.T) {
	cases := []struct {
		name      string
		fuzziness Fuzziness
		text      string
		expected  int
	}{
		{"auto short", FuzzinessAuto, "ab", 0},
		{"auto medium", FuzzinessAuto, "abcde", 1},
		{"auto long", FuzzinessAuto, "abcdef", 2},
		{"auto lowercase", "auto", "abcdef", 2},
		{"auto multibyte runes", FuzzinessAuto, "héllo", 1},
		{"explicit zero", FuzzinessZero, "whatever", 0},
		{"explicit one", FuzzinessOne, "whatever", 1},
		{"explicit two", FuzzinessTwo, "whatever", 2},
		{"fractional", "1.5", "whatever", 1},
		{"above cap", "7", "whatever", 2},
		{"negative", "-1", "whatever", 2},
		{"garbage", "lots", "whatever", 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.fuzziness.AsDistance(c.text))
		})
	}
}

func TestDistancePolicyOverride(t *testing.T) {
	orig := DistancePolicy
	defer func() { DistancePolicy = orig }()

	DistancePolicy = func(f Fuzziness, text string) int { return 1 }
	assert.Equal(t, 1, FuzzinessAuto.AsDistance("ab"))
}
