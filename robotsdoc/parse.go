// Copyright 2020 Jim Smart
// Copyright 1999 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package robotsdoc

import (
	"log/slog"

	"github.com/repverdict/robotsverdict/internal/directive"
)

// Parse tokenizes body and builds a sealed Document from the resulting
// events. Parsing never fails: malformed lines are tolerated per §4.2,
// and a nil or empty body yields a Document with a single empty group
// (which contributes nothing to any verdict).
//
// logger receives one record per tolerated anomaly (unknown keys,
// corrected typos, missing separators, truncated values); a nil logger
// falls back to slog.Default().
func Parse(body []byte, logger *slog.Logger) *Document {
	p := directive.NewParser(logger)
	b := &builder{}
	p.Parse(body, b)
	return b.doc
}
