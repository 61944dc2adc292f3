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

// Package index declares the narrow interfaces through which the schema and
// query translation core talks to the physical index engine, plus the opaque
// primitives (queries, sort keys) handed back to it for execution. The engine
// itself, postings lists, doc values storage and segment handling live behind
// these interfaces and are out of scope here.
package index

// Terms is the aggregate view of a single field's term dictionary across one
// reader snapshot.
type Terms interface {
	// DocCount returns the number of documents that have at least one term
	// for the field.
	DocCount() int64
	// SumDocFreq returns the total number of (term, document) postings.
	SumDocFreq() int64
	// SumTotalTermFreq returns the total number of term occurrences, or -1
	// when frequencies are not recorded.
	SumTotalTermFreq() int64
	// Min returns the smallest indexed term in byte order.
	Min() ([]byte, error)
	// Max returns the largest indexed term in byte order.
	Max() ([]byte, error)
}

// TermIterator walks a field's term dictionary in byte order.
type TermIterator interface {
	// Next returns the next term and its document frequency. ok is false
	// once the dictionary is exhausted.
	Next() (term []byte, docFreq int64, ok bool, err error)
}

// ValuesReader provides random access to per document values of a field,
// backed by the columnar doc values store.
type ValuesReader interface {
	// Get returns the raw value of the field for the given document, nil if
	// the document has no value.
	Get(docID int) ([]byte, error)
}

// Reader is a point in time snapshot of an index. All methods may fail with
// I/O faults from local storage; such errors are propagated to callers
// unmodified and never retried inside this core.
type Reader interface {
	// MaxDoc returns one greater than the largest document number.
	MaxDoc() int

	// Terms returns the term dictionary view for a field, nil when the
	// snapshot holds no terms for it.
	Terms(field string) (Terms, error)

	// TermIterator returns an iterator over a field's terms, nil when the
	// field is absent.
	TermIterator(field string) (TermIterator, error)

	// DocCount returns the number of documents bearing the field.
	DocCount(field string) (int64, error)

	// DocValues returns a random access reader over the field's per
	// document values.
	DocValues(field string) (ValuesReader, error)
}
