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

// Package directive implements the byte-level directive-stream parser
// (tokenizer) for robots.txt: it walks a raw input buffer and emits
// (Type, value) events for each valid line, tolerating malformed input.
package directive

import "strings"

// Type is the closed enumeration of directive kinds a robots.txt line
// can carry. Zero value is Unknown so that unrecognized keys get a
// sane default rather than accidentally aliasing a recognized one.
type Type int

const (
	Unknown Type = iota
	UserAgent
	Allow
	Disallow
	Sitemap
)

func (t Type) String() string {
	switch t {
	case UserAgent:
		return "user-agent"
	case Allow:
		return "allow"
	case Disallow:
		return "disallow"
	case Sitemap:
		return "sitemap"
	default:
		return "unknown"
	}
}

// Rule is an immutable (Type, value) pair. Equality is structural over
// both fields.
type Rule struct {
	Type  Type
	Value string
}

// Handler receives parse events in the order they occur in the input.
// Implementations accumulate state; the tokenizer never backtracks or
// re-emits.
type Handler interface {
	Start()
	End()
	UserAgent(line int, value string)
	Allow(line int, value string)
	Disallow(line int, value string)
	Sitemap(line int, value string)
	Unknown(line int, key, value string)
}

// classify maps a trimmed key to its Type, tolerating the common typos
// documented for "disallow" and "user-agent". info reports a
// human-readable note when a typo was corrected or the key went
// unrecognized, for callers that want to log it; info is empty for a
// clean match.
func classify(key string) (typ Type, info string) {
	lower := strings.ToLower(key)
	switch {
	case lower == "user-agent":
		return UserAgent, ""
	case lower == "useragent" || lower == "user agent":
		return UserAgent, "corrected typo " + key + " to user-agent"
	case lower == "allow":
		return Allow, ""
	case lower == "disallow":
		return Disallow, ""
	case isDisallowTypo(lower):
		return Disallow, "corrected typo " + key + " to disallow"
	case lower == "sitemap" || lower == "site-map":
		return Sitemap, ""
	default:
		return Unknown, "unrecognized directive key " + key
	}
}

func isDisallowTypo(lower string) bool {
	switch lower {
	case "dissallow", "dissalow", "disalow", "diasllow", "disallaw":
		return true
	default:
		return false
	}
}
