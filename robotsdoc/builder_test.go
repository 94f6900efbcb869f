package robotsdoc_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/repverdict/robotsverdict/internal/directive"
	"github.com/repverdict/robotsverdict/robotsdoc"
)

var _ = Describe("Parse", func() {

	It("yields a single inert group for empty input", func() {
		doc := robotsdoc.Parse(nil, nil)
		Expect(doc.Groups).To(HaveLen(1))
		Expect(doc.Groups[0].Contributes()).To(BeFalse())
	})

	It("groups rules under the user-agent lines that precede them", func() {
		doc := robotsdoc.Parse([]byte("user-agent: FooBot\ndisallow: /x/\nallow: /x/y\n"), nil)
		Expect(doc.Groups).To(HaveLen(1))
		g := doc.Groups[0]
		Expect(g.Agents).To(Equal([]string{"FooBot"}))
		Expect(g.Global).To(BeFalse())
		Expect(g.Rules).To(Equal([]robotsdoc.Rule{
			{Type: directive.Disallow, Value: "/x/"},
			{Type: directive.Allow, Value: "/x/y"},
		}))
	})

	It("starts a new group once a user-agent line follows content", func() {
		doc := robotsdoc.Parse([]byte(
			"user-agent: *\ndisallow: /x/\nuser-agent: FooBot\ndisallow: /y/\n"), nil)
		Expect(doc.Groups).To(HaveLen(2))
		Expect(doc.Groups[0].Global).To(BeTrue())
		Expect(doc.Groups[1].Agents).To(Equal([]string{"FooBot"}))
	})

	It("keeps consecutive user-agent lines in one group until content is seen", func() {
		doc := robotsdoc.Parse([]byte(
			"user-agent: FooBot\nuser-agent: BarBot\ndisallow: /x/\n"), nil)
		Expect(doc.Groups).To(HaveLen(1))
		Expect(doc.Groups[0].Agents).To(Equal([]string{"FooBot", "BarBot"}))
	})

	It("detects the global wildcard with or without trailing text", func() {
		doc := robotsdoc.Parse([]byte("user-agent: * ignore-this\ndisallow: /\n"), nil)
		Expect(doc.Groups[0].Global).To(BeTrue())
	})

	It("does not treat '*suffix' as global", func() {
		doc := robotsdoc.Parse([]byte("user-agent: *bot\ndisallow: /\n"), nil)
		Expect(doc.Groups[0].Global).To(BeFalse())
		Expect(doc.Groups[0].Agents).To(BeEmpty())
	})

	It("truncates a user-agent token at the first non [A-Za-z_-] byte", func() {
		doc := robotsdoc.Parse([]byte("user-agent: FooBot/2.0\ndisallow: /\n"), nil)
		Expect(doc.Groups[0].Agents).To(Equal([]string{"FooBot"}))
	})

	It("drops a rule with no owning group", func() {
		doc := robotsdoc.Parse([]byte("disallow: /x/\n"), nil)
		Expect(doc.Groups).To(HaveLen(1))
		Expect(doc.Groups[0].Rules).To(BeEmpty())
		Expect(doc.Groups[0].Contributes()).To(BeFalse())
	})

	It("percent-encodes non-ASCII bytes and uppercases existing hex escapes", func() {
		doc := robotsdoc.Parse([]byte("user-agent: *\ndisallow: /Sanjos\xc3\xa9Sellers\ndisallow: /%2f\n"), nil)
		Expect(doc.Groups[0].Rules).To(Equal([]robotsdoc.Rule{
			{Type: directive.Disallow, Value: "/Sanjos%C3%A9Sellers"},
			{Type: directive.Disallow, Value: "/%2F"},
		}))
	})

	It("normalizes an index-page Allow to also anchor its containing directory", func() {
		doc := robotsdoc.Parse([]byte("user-agent: FooBot\nallow: /dir/index.html\n"), nil)
		Expect(doc.Groups[0].Rules).To(Equal([]robotsdoc.Rule{
			{Type: directive.Allow, Value: "/dir/index.html"},
			{Type: directive.Allow, Value: "/dir/$"},
		}))
	})

	It("does not duplicate the index-page rule if it already exists", func() {
		doc := robotsdoc.Parse([]byte(
			"user-agent: FooBot\nallow: /dir/$\nallow: /dir/index.html\n"), nil)
		count := 0
		for _, r := range doc.Groups[0].Rules {
			if r == (robotsdoc.Rule{Type: directive.Allow, Value: "/dir/$"}) {
				count++
			}
		}
		Expect(count).To(Equal(1))
	})

	It("records the first host directive as PreferredHost without affecting rules semantics", func() {
		doc := robotsdoc.Parse([]byte("host: example.com\nuser-agent: *\ndisallow: /\n"), nil)
		Expect(doc.PreferredHost).To(Equal("example.com"))
	})

	It("recognizes sitemap lines regardless of any open group", func() {
		doc := robotsdoc.Parse([]byte("sitemap: http://example.com/s.xml\n"), nil)
		found := false
		for _, r := range doc.Groups[0].Rules {
			if r.Type == directive.Sitemap && r.Value == "http://example.com/s.xml" {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})
})

var _ = Describe("Group", func() {
	It("is case-insensitive when testing agent membership", func() {
		doc := robotsdoc.Parse([]byte("user-agent: FooBot\ndisallow: /\n"), nil)
		g := doc.Groups[0]
		Expect(g.HasAgent("foobot")).To(BeTrue())
		Expect(g.HasAgent("FOOBOT")).To(BeTrue())
		Expect(g.HasAgent("BarBot")).To(BeFalse())
	})

	It("deduplicates repeated agent tokens while preserving first-seen casing", func() {
		doc := robotsdoc.Parse([]byte("user-agent: FooBot\nuser-agent: foobot\ndisallow: /\n"), nil)
		Expect(doc.Groups[0].Agents).To(Equal([]string{"FooBot"}))
	})
})
