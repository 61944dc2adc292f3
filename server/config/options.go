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

package config

import (
	"github.com/mantledata/mantle/util/log"
)

type Config struct {
	Log    log.LogConfig
	Schema SchemaConfig `yaml:"schema" json:"schema"`
	Search SearchConfig `yaml:"search" json:"search"`
}

// SchemaConfig controls how schema updates treat compatibility conflicts.
type SchemaConfig struct {
	// AllowIncompatible lets updates with soft conflicts through, logging
	// each conflict instead of failing the update. Type tag changes are
	// always fatal regardless.
	AllowIncompatible bool `mapstructure:"allow_incompatible" yaml:"allow_incompatible" json:"allow_incompatible"`
}

type SearchConfig struct {
	// MaxSortClauses caps the number of clauses one sort request may carry,
	// 0 for no cap.
	MaxSortClauses int `mapstructure:"max_sort_clauses" yaml:"max_sort_clauses" json:"max_sort_clauses"`
}

var DefaultConfig = Config{
	Log: log.LogConfig{
		Level: "info",
	},
	Schema: SchemaConfig{
		AllowIncompatible: false,
	},
	Search: SearchConfig{
		MaxSortClauses: 0,
	},
}
