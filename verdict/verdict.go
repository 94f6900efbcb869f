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

// Package verdict implements the allow/disallow decision engine: given
// one or more candidate user-agent strings and a URL, it walks a parsed
// robotsdoc.Document and decides whether the URL may be fetched.
package verdict

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/repverdict/robotsverdict/internal/directive"
	"github.com/repverdict/robotsverdict/internal/pattern"
	"github.com/repverdict/robotsverdict/robotsdoc"
)

// ErrMalformedURL is returned by Allowed/AllowedAgent/AllowedIgnoreGlobal
// when the supplied URL cannot be decomposed into a path component.
var ErrMalformedURL = errors.New("robotsverdict: malformed URL")

// Matcher is a cheap, read-only handle over a sealed Document. A
// Document's groups never mutate once parsed, so any number of Matchers
// — and any number of concurrent calls on one Matcher — may query it in
// parallel.
type Matcher struct {
	doc *robotsdoc.Document
}

// New returns a Matcher over doc.
func New(doc *robotsdoc.Document) *Matcher {
	return &Matcher{doc: doc}
}

// Allowed reports whether a crawler identifying as agents may fetch
// rawURL. The rules of every applicable group are pooled into one
// longest-match decision; the result is not a per-agent "any of them is
// allowed" check. A group applies if it is specific to one of agents, or if it
// is global (declared with a "*" user-agent line) and no group was
// specific to this query — specific groups fully shadow global ones.
func (m *Matcher) Allowed(agents []string, rawURL string) (bool, error) {
	path, err := urlToPath(rawURL)
	if err != nil {
		return false, err
	}
	return m.decide(agents, path, false), nil
}

// AllowedAgent is equivalent to Allowed([]string{agent}, rawURL).
func (m *Matcher) AllowedAgent(agent string, rawURL string) (bool, error) {
	return m.Allowed([]string{agent}, rawURL)
}

// AllowedIgnoreGlobal is like Allowed, but global groups never
// contribute to the decision, even when no specific group matches.
func (m *Matcher) AllowedIgnoreGlobal(agents []string, rawURL string) (bool, error) {
	path, err := urlToPath(rawURL)
	if err != nil {
		return false, err
	}
	return m.decide(agents, path, true), nil
}

// priorities tracks the best (highest) Allow/Disallow match length seen
// so far, split by whether it came from a group specific to the
// queried agents or from a global group.
type priorities struct {
	specific int
	global   int
}

func (m *Matcher) decide(agents []string, path string, ignoreGlobal bool) bool {
	var allow, disallow priorities
	sawSpecificGroup := false

	for _, g := range m.doc.Groups {
		if !g.Contributes() {
			continue
		}
		specific := matchesAnyAgent(g, agents)
		if specific {
			sawSpecificGroup = true
		}
		applicable := specific || (g.Global && !ignoreGlobal)
		if !applicable {
			continue
		}
		for _, r := range g.Rules {
			switch r.Type {
			case directive.Allow:
				accumulate(&allow, path, r.Value, specific, g.Global)
			case directive.Disallow:
				accumulate(&disallow, path, r.Value, specific, g.Global)
			}
		}
	}

	if sawSpecificGroup {
		// Specific groups fully shadow global ones.
		allow.global, disallow.global = 0, 0
	}

	switch {
	case allow.specific > 0 || disallow.specific > 0:
		return allow.specific >= disallow.specific
	case allow.global > 0 || disallow.global > 0:
		return allow.global >= disallow.global
	default:
		return true // default permissive: no rule applies.
	}
}

func accumulate(p *priorities, path, value string, specific, global bool) {
	prio := pattern.Priority(path, value)
	if prio <= 0 {
		return
	}
	if specific && prio > p.specific {
		p.specific = prio
	}
	if global && prio > p.global {
		p.global = prio
	}
}

func matchesAnyAgent(g *robotsdoc.Group, agents []string) bool {
	for _, a := range agents {
		if g.HasAgent(a) {
			return true
		}
	}
	return false
}

// urlToPath extracts the path (plus query, if any) component of rawURL,
// per the common URL grammar scheme://authority/path?query#frag → path.
// Fragments are dropped. "/" is used when no path is present. Index
// pages ("/foo/index.htm" or "/foo/index.html") are normalized to their
// containing directory, mirroring the parser-side index-page
// normalization so "/dir/" and "/dir/index.html" resolve identically.
func urlToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	path = normalizeIndexPage(path)
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path, nil
}

func normalizeIndexPage(path string) string {
	for _, suffix := range [...]string{"/index.html", "/index.htm"} {
		if strings.HasSuffix(path, suffix) {
			return path[:len(path)-len(suffix)+1]
		}
	}
	return path
}
