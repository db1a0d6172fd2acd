// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textdiff

import "znkr.io/multidiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Minimal finds a minimal line alignment irrespective of the cost. By default, the alignment is
// computed with heuristics that limit the cost for large inputs with many differences.
func Minimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeMinimal
		return config.Minimal
	}
}

// Cutoff sets the minimal similarity in [0, 1] for two lines to be paired up and annotated with
// intraline markers. The similarity is twice the number of common characters divided by the total
// number of characters in both lines. The default is 0.75.
func Cutoff(f float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Cutoff = min(max(0, f), 1)
		return config.Cutoff
	}
}
