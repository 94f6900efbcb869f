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

// Package robotsdoc holds the parsed document model for a robots.txt
// file — an ordered list of groups, each a set of user-agent tokens
// plus a list of Allow/Disallow/Sitemap/Unknown rules in parse order
// (repeated lines are kept) — and the parse-event consumer that builds one from the
// directive-stream parser's events.
package robotsdoc

import (
	"strings"

	"github.com/repverdict/robotsverdict/internal/directive"
)

// Rule re-exports the tokenizer's (type, value) pair; a Document's
// groups hold these in parse order.
type Rule = directive.Rule

// Group is a cluster of directives that share one or more declared
// user-agents. A group is "global" if any of its user-agent lines was
// the wildcard '*' (possibly followed by other whitespace-delimited
// text); it may be global and name concrete agents at once.
//
// Agents is case-preserving storage; membership tests are always
// case-insensitive (see Group.HasAgent).
type Group struct {
	Agents []string
	Global bool
	Rules  []Rule

	agentSet map[string]struct{} // lowercased, for de-duplication and HasAgent
}

func newGroup() *Group {
	return &Group{agentSet: make(map[string]struct{})}
}

// HasAgent reports whether agent case-insensitively matches one of the
// group's declared user-agent tokens.
func (g *Group) HasAgent(agent string) bool {
	_, ok := g.agentSet[strings.ToLower(agent)]
	return ok
}

// addAgent adds token to the group's user-agent set, deduplicating
// case-insensitively while preserving the first-seen casing.
func (g *Group) addAgent(token string) {
	key := strings.ToLower(token)
	if _, seen := g.agentSet[key]; seen {
		return
	}
	g.agentSet[key] = struct{}{}
	g.Agents = append(g.Agents, token)
}

// Contributes reports whether the group can ever affect a verdict: it
// needs at least one rule and either a declared agent or the global
// flag (an empty or ownerless group is inert).
func (g *Group) Contributes() bool {
	return len(g.Rules) > 0 && (len(g.Agents) > 0 || g.Global)
}

// hasRule reports whether an identical rule already exists in the
// group, used to suppress duplicate index-page normalization rules.
func (g *Group) hasRule(r Rule) bool {
	for _, existing := range g.Rules {
		if existing == r {
			return true
		}
	}
	return false
}

// Document is the sealed, ordered list of groups produced by parsing a
// robots.txt body. Once returned from Parse, a Document is immutable
// and safe to share across goroutines.
type Document struct {
	Groups []*Group

	// PreferredHost carries the value of the first "host:" directive
	// seen, if any. It is additive sugar (§ Supplemented features):
	// host lines are always tokenized as Unknown and never influence
	// Allowed/AllowedAgent/AllowedIgnoreGlobal verdicts.
	PreferredHost string
}
