package render

import (
	"regexp"
	"strings"
)

var (
	codeBlockRe    = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~")
	inlineCodeRe   = regexp.MustCompile("`[^`]+`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingRe      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	commentRe      = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTagRe      = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>[ \t]*`)
	ruleRe         = regexp.MustCompile(`(?m)^[-*_]{3,}[ \t]*$`)
	listMarkerRe   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedListRe = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	emphasisMarks  = strings.NewReplacer("**", "", "__", "", "*", "", "~~", "")
)

// StripMarkup removes markdown syntax, HTML tags and comments, keeping the
// readable text.
func StripMarkup(content string) string {
	content = codeBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = commentRe.ReplaceAllString(content, "")
	content = htmlTagRe.ReplaceAllString(content, "")
	content = headingRe.ReplaceAllString(content, "")
	content = blockquoteRe.ReplaceAllString(content, "")
	content = ruleRe.ReplaceAllString(content, "")
	content = listMarkerRe.ReplaceAllString(content, "")
	content = numberedListRe.ReplaceAllString(content, "")
	content = emphasisMarks.Replace(content)
	content = multiNewlineRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
