package field

import (
	"html"
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// CleanFieldText normalizes raw note field markup for lookups: HTML line
// breaks become spaces, all remaining markup is stripped, entities are
// decoded and internal whitespace collapses to single spaces.
func CleanFieldText(text string) string {
	text = strings.ReplaceAll(text, "<br>", " ")
	text = strings.ReplaceAll(text, "<br />", " ")
	text = strings.ReplaceAll(text, "<br/>", " ")
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
