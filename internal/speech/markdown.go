package speech

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSpokenLength caps how much of a reply gets voiced. Long replies are
// better read than listened to.
const maxSpokenLength = 2000

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	emphasisRe   = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	ruleRe       = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown reduces a markdown reply to plain prose suitable for a
// speech engine. Code blocks are dropped entirely; links and emphasis
// keep only their visible text.
func StripMarkdown(text string) string {
	text = fencedCodeRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "$1")
	text = ruleRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if len(text) > maxSpokenLength {
		cut := maxSpokenLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
