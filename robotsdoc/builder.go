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
	"strings"

	"github.com/repverdict/robotsverdict/internal/directive"
)

// builder is the parse-event consumer: it implements directive.Handler
// and accumulates tokenizer events into a sealed Document, applying the
// canonicalization rules of §4.3 (percent-encoding normalization,
// index-page normalization, user-agent token trimming, global-wildcard
// detection).
type builder struct {
	doc        *Document
	current    *Group
	hasContent bool // true once the current group has seen any directive past user-agent lines
}

var _ directive.Handler = (*builder)(nil)

func (b *builder) Start() {
	b.doc = &Document{}
	b.current = newGroup()
	b.hasContent = false
}

func (b *builder) End() {
	b.doc.Groups = append(b.doc.Groups, b.current)
}

func (b *builder) UserAgent(_ int, value string) {
	if b.hasContent {
		b.doc.Groups = append(b.doc.Groups, b.current)
		b.current = newGroup()
		b.hasContent = false
	}

	if isGlobalToken(value) {
		b.current.Global = true
		return
	}
	if token := extractAgentToken(value); token != "" {
		b.current.addAgent(token)
	}
}

func (b *builder) Allow(_ int, value string) {
	b.hasContent = true
	if len(b.current.Agents) == 0 && !b.current.Global {
		return
	}
	v := escapePattern(value)
	b.current.Rules = append(b.current.Rules, Rule{Type: directive.Allow, Value: v})
	b.addIndexPageRule(v)
}

func (b *builder) Disallow(_ int, value string) {
	b.hasContent = true
	if len(b.current.Agents) == 0 && !b.current.Global {
		return
	}
	v := escapePattern(value)
	b.current.Rules = append(b.current.Rules, Rule{Type: directive.Disallow, Value: v})
}

func (b *builder) Sitemap(_ int, value string) {
	b.hasContent = true
	b.current.Rules = append(b.current.Rules, Rule{Type: directive.Sitemap, Value: value})
}

func (b *builder) Unknown(_ int, key, value string) {
	b.hasContent = true
	if value != "" && b.doc.PreferredHost == "" && strings.EqualFold(key, "host") {
		b.doc.PreferredHost = value
	}
	b.current.Rules = append(b.current.Rules, Rule{Type: directive.Unknown, Value: value})
}

// addIndexPageRule implements the index-page normalization of §4.3: an
// Allow rule ending in "/index.htm" or "/index.html" also gets an
// equivalent Allow anchored at its directory, so that a request for the
// bare directory matches the same as a request for its index page.
func (b *builder) addIndexPageRule(value string) {
	slash := strings.LastIndexByte(value, '/')
	if slash == -1 {
		return
	}
	tail := value[slash:]
	if tail != "/index.htm" && tail != "/index.html" {
		return
	}
	extra := Rule{Type: directive.Allow, Value: value[:slash+1] + "$"}
	if !b.current.hasRule(extra) {
		b.current.Rules = append(b.current.Rules, extra)
	}
}
