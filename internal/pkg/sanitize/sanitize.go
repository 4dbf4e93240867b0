package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Description sanitizes rich-text listing markup. The policy keeps the
// formatting the editor produces and strips everything executable.
type Description struct {
	policy *bluemonday.Policy
}

func NewDescription() *Description {
	policy := bluemonday.NewPolicy()

	policy.AllowElements("p", "br", "div", "span")
	policy.AllowElements("strong", "b", "em", "i", "u", "s")
	policy.AllowElements("ul", "ol", "li", "blockquote")
	policy.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")

	policy.AllowAttrs("href").OnElements("a")
	policy.RequireParseableURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")

	return &Description{policy: policy}
}

func (d *Description) Clean(html string) string {
	return strings.TrimSpace(d.policy.Sanitize(html))
}

// PlainText strips all markup, for plain-text rendering of a description.
func PlainText(html string) string {
	text := bluemonday.StrictPolicy().Sanitize(html)
	return strings.TrimSpace(text)
}
