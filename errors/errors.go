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

package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error produced by the schema and query translation core.
type Code int

const (
	CodeUnknown Code = iota
	// CodeInvalidArgument is a generic bad request from the caller.
	CodeInvalidArgument
	// CodeInternal is an unexpected server side failure.
	CodeInternal
	// CodeFrozenState is raised when a mutator runs against a frozen field
	// type descriptor. This is a programming error, not a request error.
	CodeFrozenState
	// CodeTypeConflict is raised when a schema update changes the type tag
	// of an existing field. Never accumulated as a soft conflict.
	CodeTypeConflict
	// CodeQueryShape is a malformed or type-inapplicable query or sort
	// request, for example a regexp query against a numeric field.
	CodeQueryShape
	// CodeMalformedSort is a sort request that does not match any accepted
	// grammar shape.
	CodeMalformedSort
	// CodeUnsupported is an operation the field configuration cannot serve,
	// for example random access values on a field without doc values.
	CodeUnsupported
)

// IndexError is the error type produced by this module. Soft compatibility
// conflicts are not errors, they are returned as data by the checker.
type IndexError struct {
	ErrCode Code
	Msg     string
}

func (e *IndexError) Error() string { return e.Msg }

func (e *IndexError) Code() Code { return e.ErrCode }

func Errorf(c Code, format string, args ...any) *IndexError {
	return &IndexError{ErrCode: c, Msg: fmt.Sprintf(format, args...)}
}

// InvalidArgument constructs a bad request error.
func InvalidArgument(format string, args ...any) error {
	return Errorf(CodeInvalidArgument, format, args...)
}

// Internal constructs an internal error.
func Internal(format string, args ...any) error {
	return Errorf(CodeInternal, format, args...)
}

// FrozenState constructs the error carried by the panic raised when a frozen
// descriptor is mutated.
func FrozenState(format string, args ...any) error {
	return Errorf(CodeFrozenState, format, args...)
}

// TypeConflict constructs the fatal error for a field changing its type tag.
func TypeConflict(format string, args ...any) error {
	return Errorf(CodeTypeConflict, format, args...)
}

// QueryShape constructs a malformed query or sort request error.
func QueryShape(format string, args ...any) error {
	return Errorf(CodeQueryShape, format, args...)
}

// MalformedSort constructs a sort grammar error.
func MalformedSort(format string, args ...any) error {
	return Errorf(CodeMalformedSort, format, args...)
}

// Unsupported constructs an error for operations the field cannot serve.
func Unsupported(format string, args ...any) error {
	return Errorf(CodeUnsupported, format, args...)
}

// CodeOf extracts the classification of err, CodeUnknown for foreign errors
// such as I/O faults propagated from the index engine.
func CodeOf(err error) Code {
	var ie *IndexError
	if errors.As(err, &ie) {
		return ie.ErrCode
	}
	return CodeUnknown
}

// Convenience helpers.

var (
	As = errors.As
	Is = errors.Is
)
