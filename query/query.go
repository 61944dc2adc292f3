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

// Package query builds the primitive query objects handed to the index
// engine. The shapes here are deliberately dumb carriers; all schema aware
// decisions happen in the Translator.
package query

import (
	"fmt"

	"github.com/mantledata/mantle/index"
)

// TermQuery matches documents containing the exact term.
type TermQuery struct {
	Field string
	Term  []byte
}

func (q *TermQuery) String() string { return fmt.Sprintf("term(%s:%q)", q.Field, q.Term) }

// TermsQuery matches documents containing any of the terms. Membership test,
// term order carries no meaning.
type TermsQuery struct {
	Field string
	Terms [][]byte
}

func (q *TermsQuery) String() string { return fmt.Sprintf("terms(%s:%d)", q.Field, len(q.Terms)) }

// TermRangeQuery matches documents whose terms fall in the byte ordered
// range. A nil bound is unbounded on that side.
type TermRangeQuery struct {
	Field        string
	Lower        []byte
	Upper        []byte
	IncludeLower bool
	IncludeUpper bool
}

func (q *TermRangeQuery) String() string {
	lb, ub := "(", ")"
	if q.IncludeLower {
		lb = "["
	}
	if q.IncludeUpper {
		ub = "]"
	}
	return fmt.Sprintf("range(%s:%s%q,%q%s)", q.Field, lb, q.Lower, q.Upper, ub)
}

// FuzzyQuery expands to terms within MaxEdits of the term, bounded by
// MaxExpansions.
type FuzzyQuery struct {
	Field          string
	Term           []byte
	MaxEdits       int
	PrefixLength   int
	MaxExpansions  int
	Transpositions bool
}

func (q *FuzzyQuery) String() string {
	return fmt.Sprintf("fuzzy(%s:%q~%d)", q.Field, q.Term, q.MaxEdits)
}

// PrefixQuery expands to all terms starting with the prefix.
type PrefixQuery struct {
	Field  string
	Prefix []byte
}

func (q *PrefixQuery) String() string { return fmt.Sprintf("prefix(%s:%q*)", q.Field, q.Prefix) }

// RegexpQuery expands to all terms matched by the pattern.
type RegexpQuery struct {
	Field                 string
	Pattern               string
	Flags                 int
	MaxDeterminizedStates int
}

func (q *RegexpQuery) String() string { return fmt.Sprintf("regexp(%s:/%s/)", q.Field, q.Pattern) }

// BoostQuery scales the score of the wrapped query.
type BoostQuery struct {
	Query index.Query
	Boost float64
}

func (q *BoostQuery) String() string { return fmt.Sprintf("boost(%s,%g)", q.Query, q.Boost) }

// ConstantScoreQuery matches what the wrapped query matches but never
// contributes to relevance scoring.
type ConstantScoreQuery struct {
	Query index.Query
}

func (q *ConstantScoreQuery) String() string { return fmt.Sprintf("constant_score(%s)", q.Query) }

// NonNestedQuery selects root level documents, excluding every nested sub
// document. Used as the root side of nested scope resolution.
type NonNestedQuery struct{}

func (q *NonNestedQuery) String() string { return "non_nested()" }
