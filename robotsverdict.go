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

// Package robotsverdict decides, for a crawler identity and an absolute
// request URL, whether a robots.txt document permits the fetch. It
// reproduces Google's production parser/matcher behavior: a
// subset-construction glob matcher (internal/pattern), a tolerant
// byte-level tokenizer (internal/directive), a sealed document model and
// parse-event consumer (robotsdoc), and a longest-match verdict engine
// (verdict). This package is the thin façade that wires the three
// together for callers who just want Parse + a Matcher.
package robotsverdict

import (
	"log/slog"

	"github.com/repverdict/robotsverdict/internal/directive"
	"github.com/repverdict/robotsverdict/robotsdoc"
	"github.com/repverdict/robotsverdict/verdict"
)

// Document is a sealed, ordered list of groups parsed from a robots.txt
// body. It is immutable after Parse returns and safe to share across
// goroutines.
type Document = robotsdoc.Document

// Matcher is a cheap, read-only handle over a Document; any number of
// Matchers, and any number of concurrent calls on one Matcher, may query
// a Document in parallel.
type Matcher = verdict.Matcher

// ErrMalformedURL is returned by a Matcher's Allowed methods when the
// supplied URL cannot be decomposed into a path component.
var ErrMalformedURL = verdict.ErrMalformedURL

// Parse tokenizes and canonicalizes body into a sealed Document.
// Parsing never fails: malformed lines, typos, and runaway values are
// tolerated per the documented recovery rules. Anomalies are logged to
// logger (nil falls back to slog.Default()).
func Parse(body []byte, logger *slog.Logger) *Document {
	return robotsdoc.Parse(body, logger)
}

// NewMatcher returns a Matcher over doc.
func NewMatcher(doc *Document) *Matcher {
	return verdict.New(doc)
}

// Sitemaps returns every Sitemap: value seen while parsing doc, in
// document order, one entry per line (no de-duplication) — mirroring
// the teacher library's standalone sitemap extractor, rebuilt here to
// walk a sealed Document instead of re-scanning raw bytes.
func Sitemaps(doc *Document) []string {
	var out []string
	for _, g := range doc.Groups {
		for _, r := range g.Rules {
			if r.Type == directive.Sitemap {
				out = append(out, r.Value)
			}
		}
	}
	return out
}

// PreferredHost returns the value of the first "host:" directive seen
// while parsing doc, if any. This is additive sugar: host lines are
// always tokenized as unknown and never influence a Matcher's verdicts.
func PreferredHost(doc *Document) (string, bool) {
	return doc.PreferredHost, doc.PreferredHost != ""
}
