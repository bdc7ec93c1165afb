package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func textPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripHTML removes all markup from user supplied text.
// Entities produced by the policy are decoded so the result is plain text again.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textPolicy().Sanitize(s)))
}

// PlainText strips markup and collapses whitespace.
var PlainText = Compose(StripHTML, NormalizeWhitespace)
