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

package directive

import (
	"context"
	"log/slog"
)

// maxValueBytes is 2083-2: browsers historically cap URLs at 2083
// bytes, and robots.txt values are patterns built from URL paths. Two
// bytes are reserved so a truncation that would otherwise split a
// multi-byte UTF-8 sequence can instead land on the last whole
// codepoint boundary at or before the limit.
const maxValueBytes = 2083 - 2

// whitespace byte classification: exactly SP and HT, per the Robots
// Exclusion Protocol grammar — not unicode.IsSpace.
func isWSByte(b byte) bool {
	return b == ' ' || b == '\t'
}

// Parser walks a raw robots.txt byte buffer and emits directive events
// to a Handler. It never returns an error: malformed lines, missing
// separators, and truncated values are tolerated and recorded as log
// records rather than surfaced as failures.
//
// A Parser is not safe for concurrent use while a Parse call is in
// flight (the handler reference is scoped to that call).
type Parser struct {
	Logger *slog.Logger

	handler Handler
}

// NewParser returns a Parser that logs tolerated anomalies to logger.
// A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{Logger: logger}
}

// Parse walks body, a robots.txt document, and drives handler with one
// event per recognized line. Lines with no key/value separator, an
// empty key or an empty value are skipped; of these, only a line with
// no separator but some non-whitespace content is logged (at warning
// level).
func (p *Parser) Parse(body []byte, handler Handler) {
	p.handler = handler
	defer func() { p.handler = nil }()

	body = skipBOM(body)

	handler.Start()

	lineNum := 0
	var line []byte
	afterCR := false

	emit := func() {
		lineNum++
		p.parseAndEmitLine(lineNum, line)
		line = line[:0]
	}

	for _, b := range body {
		switch b {
		case '\n':
			if afterCR && len(line) == 0 {
				// \r\n pair: the \n is absorbed, no second empty line.
				afterCR = false
				continue
			}
			emit()
			afterCR = false
		case '\r':
			emit()
			afterCR = true
		default:
			line = append(line, b)
			afterCR = false
		}
	}
	// Flush any pending content after the last line terminator.
	emit()

	handler.End()
}

func skipBOM(body []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	n := len(bom)
	if len(body) < n {
		n = len(body)
	}
	for i := 0; i < n; i++ {
		if body[i] != bom[i] {
			return body
		}
	}
	return body[n:]
}

func (p *Parser) parseAndEmitLine(lineNum int, raw []byte) {
	line := raw
	if i := indexByte(line, '#'); i != -1 {
		line = line[:i]
	}

	key, value, ok := splitKeyValue(line)
	if !ok {
		if hasNonWhitespace(line) {
			p.log(context.Background(), slog.LevelWarn, "robots.txt line has no key/value separator", lineNum, string(line))
		}
		return
	}
	if key == "" || value == "" {
		return
	}
	if truncated := truncateValue(value); truncated != value {
		p.log(context.Background(), slog.LevelWarn, "robots.txt value exceeded 2081 bytes and was truncated", lineNum, key)
		value = truncated
	}

	typ, info := classify(key)
	if info != "" {
		// Typo corrections are informational; a wholly unrecognized key
		// is worth a warning, per §4.2.
		level := slog.LevelInfo
		if typ == Unknown {
			level = slog.LevelWarn
		}
		p.log(context.Background(), level, info, lineNum, value)
	}

	switch typ {
	case UserAgent:
		p.handler.UserAgent(lineNum, value)
	case Allow:
		p.handler.Allow(lineNum, value)
	case Disallow:
		p.handler.Disallow(lineNum, value)
	case Sitemap:
		p.handler.Sitemap(lineNum, value)
	default:
		p.handler.Unknown(lineNum, key, value)
	}
}

func (p *Parser) log(ctx context.Context, level slog.Level, msg string, lineNum int, value string) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(ctx, level, msg, "line", lineNum, "value", value)
}

// splitKeyValue finds the key/value separator in line per §4.2: the
// first ':'; failing that, a single interior run of whitespace flanked
// by exactly one non-whitespace run on each side (Google-specific
// leniency for operators who forget the colon).
func splitKeyValue(line []byte) (key, value string, ok bool) {
	sep := indexByte(line, ':')
	if sep != -1 {
		return trimWS(string(line[:sep])), trimWS(string(line[sep+1:])), true
	}

	// No colon: look for a whitespace boundary that splits the
	// non-comment content into exactly two non-whitespace runs.
	i := 0
	for i < len(line) && isWSByte(line[i]) {
		i++
	}
	if i == len(line) {
		return "", "", false
	}
	start := i
	for i < len(line) && !isWSByte(line[i]) {
		i++
	}
	firstRun := line[start:i]
	rest := i
	for rest < len(line) && isWSByte(line[rest]) {
		rest++
	}
	if rest == len(line) {
		return "", "", false
	}
	tail := trimWS(string(line[rest:]))
	if tail == "" {
		return "", "", false
	}
	if hasInteriorWhitespace(tail) {
		// More than two non-whitespace runs: not an accepted implicit
		// separator (ambiguous which boundary is the real one).
		return "", "", false
	}
	return string(firstRun), tail, true
}

func hasInteriorWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		if isWSByte(s[i]) {
			return true
		}
	}
	return false
}

func hasNonWhitespace(line []byte) bool {
	for _, b := range line {
		if !isWSByte(b) {
			return true
		}
	}
	return false
}

func trimWS(s string) string {
	start := 0
	for start < len(s) && isWSByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isWSByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// truncateValue enforces the 2081-byte cap on directive values,
// trimming at the last whole UTF-8 codepoint boundary at or before the
// limit rather than splitting a multi-byte sequence.
func truncateValue(value string) string {
	if len(value) <= maxValueBytes {
		return value
	}
	cut := maxValueBytes
	// Back off while we're inside a multi-byte UTF-8 continuation
	// sequence (continuation bytes match 10xxxxxx).
	for cut > 0 && isUTF8Continuation(value[cut]) {
		cut--
	}
	return value[:cut]
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}
