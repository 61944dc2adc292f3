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

// Version identifies the on-disk format generation an index was created with.
// Encoded as major*10000 + minor*100 + patch so versions compare numerically.
type Version int32

const (
	Version4_0_0 Version = 4_00_00
	Version4_6_0 Version = 4_06_00
	Version5_0_0 Version = 5_00_00

	// VersionBoostWrapMin is the first index version for which term queries
	// wrap a non-default field boost in an explicit boost query. Indexes
	// created before it keep the legacy unboosted query shape so that query
	// plans stay bit identical with what those indexes were built against.
	VersionBoostWrapMin = Version5_0_0

	// VersionCurrent is the format generation written by this release.
	VersionCurrent = Version5_0_0
)

func (v Version) Before(other Version) bool { return v < other }

func (v Version) OnOrAfter(other Version) bool { return v >= other }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v/10000, (v/100)%100, v%100)
}
