package directive_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/repverdict/robotsverdict/internal/directive"
)

type event struct {
	kind  string
	key   string
	value string
}

type recorder struct {
	events []event
	ended  bool
}

func (r *recorder) Start() { r.events = nil; r.ended = false }
func (r *recorder) End()   { r.ended = true }
func (r *recorder) UserAgent(_ int, v string) { r.events = append(r.events, event{"user-agent", "", v}) }
func (r *recorder) Allow(_ int, v string)     { r.events = append(r.events, event{"allow", "", v}) }
func (r *recorder) Disallow(_ int, v string)  { r.events = append(r.events, event{"disallow", "", v}) }
func (r *recorder) Sitemap(_ int, v string)   { r.events = append(r.events, event{"sitemap", "", v}) }
func (r *recorder) Unknown(_ int, k, v string) {
	r.events = append(r.events, event{"unknown", k, v})
}

func parse(body string) *recorder {
	r := &recorder{}
	directive.NewParser(nil).Parse([]byte(body), r)
	return r
}

var _ = Describe("Parser", func() {

	It("emits one event per key/value line and calls Start/End", func() {
		r := parse("user-agent: FooBot\ndisallow: /\n")
		Expect(r.ended).To(BeTrue())
		Expect(r.events).To(Equal([]event{
			{"user-agent", "", "FooBot"},
			{"disallow", "", "/"},
		}))
	})

	It("skips a leading UTF-8 BOM", func() {
		r := parse("\xEF\xBB\xBFuser-agent: FooBot\n")
		Expect(r.events).To(Equal([]event{{"user-agent", "", "FooBot"}}))
	})

	It("truncates a comment at the first '#'", func() {
		r := parse("disallow: /a # trailing comment\n")
		Expect(r.events).To(Equal([]event{{"disallow", "", "/a"}}))
	})

	It("treats a lone CRLF pair as a single line terminator", func() {
		r := parse("user-agent: FooBot\r\ndisallow: /\r\n")
		Expect(r.events).To(Equal([]event{
			{"user-agent", "", "FooBot"},
			{"disallow", "", "/"},
		}))
	})

	It("terminates a line at a bare CR or bare LF alike", func() {
		r1 := parse("disallow: /a\rdisallow: /b\r")
		r2 := parse("disallow: /a\ndisallow: /b\n")
		Expect(r1.events).To(Equal(r2.events))
	})

	It("accepts a whitespace separator when the colon is missing", func() {
		r := parse("user-agent FooBot\ndisallow /x/y\n")
		Expect(r.events).To(Equal([]event{
			{"user-agent", "", "FooBot"},
			{"disallow", "", "/x/y"},
		}))
	})

	It("ignores a line with more than two whitespace-separated runs and no colon", func() {
		r := parse("foo bar baz\n")
		Expect(r.events).To(BeEmpty())
	})

	It("ignores a line with no separator at all", func() {
		r := parse("justonetokennowhitespace\n")
		Expect(r.events).To(BeEmpty())
	})

	It("corrects documented disallow typos", func() {
		for _, typo := range []string{"dissallow", "dissalow", "disalow", "diasllow", "disallaw"} {
			r := parse(typo + ": /a\n")
			Expect(r.events).To(Equal([]event{{"disallow", "", "/a"}}), "typo %q", typo)
		}
	})

	It("corrects user-agent typos", func() {
		r1 := parse("useragent: FooBot\n")
		r2 := parse("user agent: FooBot\n")
		Expect(r1.events).To(Equal([]event{{"user-agent", "", "FooBot"}}))
		Expect(r2.events).To(Equal([]event{{"user-agent", "", "FooBot"}}))
	})

	It("classifies sitemap and site-map", func() {
		r := parse("sitemap: http://example.com/s.xml\nsite-map: http://example.com/s2.xml\n")
		Expect(r.events).To(Equal([]event{
			{"sitemap", "", "http://example.com/s.xml"},
			{"sitemap", "", "http://example.com/s2.xml"},
		}))
	})

	It("classifies an unrecognized key as unknown, preserving the original key text", func() {
		r := parse("crawl-delay: 10\n")
		Expect(r.events).To(Equal([]event{{"unknown", "crawl-delay", "10"}}))
	})

	It("truncates an over-length value to 2081 bytes at a UTF-8 boundary", func() {
		value := strings.Repeat("a", 2081) + "\xc3\xa9" + "tail"
		r := parse("disallow: " + value + "\n")
		Expect(r.events).To(HaveLen(1))
		got := r.events[0].value
		Expect(len(got)).To(BeNumerically("<=", 2081))
		Expect(got).To(Equal(strings.Repeat("a", 2081)))
	})

	It("ignores a line whose value is empty after trimming", func() {
		r := parse("disallow:   \n")
		Expect(r.events).To(BeEmpty())
	})

	It("ignores a line whose key is empty after trimming", func() {
		r := parse("  : /a\n")
		Expect(r.events).To(BeEmpty())
	})
})
