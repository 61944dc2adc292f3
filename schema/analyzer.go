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

// DefaultAnalyzerName is the name of the implicit analyzer; an unset analyzer
// and one explicitly named "default" are equivalent for compatibility checks.
const DefaultAnalyzerName = "default"

// Analyzer is a named reference to a text analysis chain. The chain itself is
// owned by the analysis registry, which is an external collaborator; the
// schema layer only ever compares analyzers by name.
type Analyzer struct {
	name string
}

func NewAnalyzer(name string) *Analyzer {
	return &Analyzer{name: name}
}

func (a *Analyzer) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// IsDefault reports whether the analyzer resolves to the implicit default.
func (a *Analyzer) IsDefault() bool {
	return a == nil || a.name == DefaultAnalyzerName
}

func analyzerName(a *Analyzer) string {
	if a == nil {
		return ""
	}
	return a.name
}
