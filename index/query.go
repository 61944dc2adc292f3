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

package index

import "fmt"

// Query is a primitive query handed to the engine's execution path. Concrete
// shapes are built by the query package; the engine treats them as opaque
// execution plans.
type Query interface {
	fmt.Stringer
}

// DocSetFilter is a compiled, reusable document set produced from a query,
// typically bitset backed and cached per reader snapshot.
type DocSetFilter interface {
	// Contains reports whether the document is in the set.
	Contains(docID int) bool
}
