package analyzer

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
)

// Tags whose text content is never user-visible.
var invisibleTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
}

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// visibleText extracts user-visible text from the body subtree only.
// Head metadata is deliberately excluded: injection rewrites the head, and
// extraction restricted to the body keeps analyze-after-inject identical to
// analyze-before-inject.
func visibleText(doc *htmldoc.Document) string {
	body := doc.FindFirst("body", nil)
	if body == nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && invisibleTags[strings.ToLower(n.Data)] {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)

	return collapseWhitespace(sb.String())
}

// headingText returns the collapsed text of all h1-h3 elements in the body.
func headingText(doc *htmldoc.Document) string {
	body := doc.FindFirst("body", nil)
	if body == nil {
		return ""
	}

	var parts []string
	for _, tag := range []string{"h1", "h2", "h3"} {
		for _, h := range doc.FindAllTag(tag, body) {
			text := collapseWhitespace(htmldoc.Text(h))
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// collapseWhitespace trims and collapses internal whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tokenize lowercases and splits text into alphabetic tokens of at least
// minTokenLength runes. Stop words are kept; callers filter where needed so
// phrase windows can still see them.
func tokenize(text string) []string {
	matches := wordPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) < minTokenLength {
			continue
		}
		tokens = append(tokens, strings.ToLower(m))
	}
	return tokens
}

// summarize extracts up to three readable sentences from visible text for
// use as a description fallback.
func summarize(text string) string {
	var sentences []string
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		s := strings.TrimSpace(raw)
		if len(s) < minSummarySentence || len(s) > maxSummarySentence {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == maxSummarySentences {
			break
		}
	}
	return strings.Join(sentences, ". ")
}

// detectLanguage reads html[lang], falling back to the content-language meta.
// Returns the primary subtag only ("en" from "en-US"), or "".
func detectLanguage(doc *htmldoc.Document) string {
	if root := doc.FindFirst("html", nil); root != nil {
		if lang := htmldoc.Attr(root, "lang"); lang != "" {
			return primarySubtag(lang)
		}
	}
	for _, meta := range doc.FindAllTag("meta", nil) {
		if strings.EqualFold(htmldoc.Attr(meta, "http-equiv"), "content-language") {
			if content := htmldoc.Attr(meta, "content"); content != "" {
				return primarySubtag(content)
			}
		}
	}
	return ""
}

func primarySubtag(lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
