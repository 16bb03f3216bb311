package structurer

import (
	"regexp"
	"strings"
)

// Navigational noise patterns removed before content ever reaches the
// model. Markdown links keep their label text; bare URLs are dropped.
var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	bareURLRe      = regexp.MustCompile(`https?://\S+`)
	wwwURLRe       = regexp.MustCompile(`www\.\S+`)
)

// StripLinks removes hyperlinks, markdown link syntax, and bare URLs from
// raw content. This is a pure text transform applied before the generative
// call — never delegated to the model.
func StripLinks(content string) string {
	if content == "" {
		return ""
	}
	out := markdownLinkRe.ReplaceAllString(content, "$1")
	out = bareURLRe.ReplaceAllString(out, "")
	out = wwwURLRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
