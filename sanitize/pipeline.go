// Package sanitize converts arbitrary stored content into plain text safe
// for both indexing and verbatim display. The pipeline is fail-closed: a
// field that cannot be made safe is excluded from the index entirely.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultMaxFieldLength bounds a single sanitized field before storage.
	DefaultMaxFieldLength = 10000

	// maxPasses bounds the de-escaping fixpoint loop. Nested entity
	// encodings collapse one layer per pass.
	maxPasses = 5

	// longFormThreshold switches body-sized markup onto the readability
	// extractor instead of plain paragraph collection.
	longFormThreshold = 4096
)

var scriptSchemeRe = regexp.MustCompile(`(?i)(javascript|vbscript|data)\s*:`)

var eventHandlerRe = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)

// Pipeline sanitizes content fields. Safe for concurrent use; the
// bluemonday policy is immutable after construction.
type Pipeline struct {
	maxFieldLength int
	policy         *bluemonday.Policy
}

// NewPipeline builds a Pipeline with the given per-field length bound.
func NewPipeline(maxFieldLength int) *Pipeline {
	if maxFieldLength <= 0 {
		maxFieldLength = DefaultMaxFieldLength
	}
	return &Pipeline{
		maxFieldLength: maxFieldLength,
		policy:         contentPolicy(),
	}
}

// contentPolicy allows structural markup through the de-tagging passes and
// blocks everything executable. Only http, https and mailto links survive;
// img is excluded because of its event-handler attack surface.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("article", "section", "div", "p", "span", "br")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("ul", "ol", "li", "dl", "dt", "dd")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowElements("b", "strong", "i", "em", "u", "s", "del", "ins", "mark", "sub", "sup")
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption")
	p.AllowElements("hr", "figure", "figcaption")

	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")

	return p
}

// Sanitize renders markup to plain text. The result is a fixpoint:
// Sanitize(Sanitize(x)) == Sanitize(x), regardless of how deeply the input
// nests tags or entity encodings. Hostile input degrades toward the empty
// string, never toward raw markup.
func (p *Pipeline) Sanitize(raw string) string {
	s := removeControlChars(raw)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for i := 0; i < maxPasses; i++ {
		next := p.pass(s)
		if next == s {
			break
		}
		s = next
	}

	// Scheme removal loops so splice attacks cannot reassemble a payload
	// out of the removed pieces.
	for prev := ""; prev != s; {
		prev = s
		s = scriptSchemeRe.ReplaceAllString(s, "")
		s = eventHandlerRe.ReplaceAllString(s, "")
	}
	return p.truncate(normalizeWhitespace(s))
}

// SanitizeField sanitizes one named field, failing closed. The error carries
// the field name so the caller can exclude exactly that field and log it.
func (p *Pipeline) SanitizeField(field, raw string) (string, error) {
	if ok, reason := p.Validate(raw); !ok {
		return "", fmt.Errorf("sanitize field %s: %s", field, reason)
	}
	return p.Sanitize(raw), nil
}

// SanitizeTags sanitizes a tag list, dropping tags that sanitize to nothing
// and deduplicating while preserving order.
func (p *Pipeline) SanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		clean := p.Sanitize(tag)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

// Validate reports whether content can be accepted for indexing, with a
// reason when it cannot. It is cheap enough to call before every index write.
func (p *Pipeline) Validate(raw string) (bool, string) {
	if len(raw) > p.maxFieldLength*8 {
		return false, fmt.Sprintf("content exceeds hard input bound of %d bytes", p.maxFieldLength*8)
	}

	s := strings.TrimSpace(removeControlChars(raw))
	if s == "" {
		return true, ""
	}

	for i := 0; i < maxPasses; i++ {
		next := p.pass(s)
		if next == s {
			return true, ""
		}
		s = next
	}

	// Still changing after the pass budget means encodings are nested
	// deeper than anything legitimate produces.
	if p.pass(s) != s {
		return false, "content did not stabilize during sanitization"
	}
	return true, ""
}

// pass performs one render-then-de-tag step. Markup goes through the policy
// and a structural text extraction; bare text has one entity layer folded so
// encoded markup cannot hide from the next pass.
func (p *Pipeline) pass(s string) string {
	if strings.Contains(s, "<") {
		safe := p.policy.Sanitize(s)
		if len(safe) > longFormThreshold {
			if text := extractLongForm(safe); text != "" {
				return text
			}
		}
		return extractText(safe)
	}
	return unescapeEntities(s)
}

// extractLongForm runs readability over body-sized markup to keep the main
// content and shed boilerplate, then collects its paragraphs.
func extractLongForm(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return ""
	}

	var htmlBuf strings.Builder
	if err := article.RenderHTML(&htmlBuf); err == nil {
		if rendered := strings.TrimSpace(htmlBuf.String()); rendered != "" {
			return extractParagraphs(rendered)
		}
	}

	var textBuf strings.Builder
	if err := article.RenderText(&textBuf); err != nil {
		return ""
	}
	return normalizeWhitespace(textBuf.String())
}

// extractText extracts plain text from already policy-sanitized markup,
// preserving paragraph order.
func extractText(html string) string {
	if !strings.Contains(html, "<") {
		return unescapeEntities(html)
	}
	return extractParagraphs(html)
}

// extractParagraphs walks the document structure and joins block-level text.
// Falls back to raw tag stripping when goquery cannot parse.
func extractParagraphs(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeWhitespace(StripTags(html))
	}

	var paragraphs []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, pre, li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		doc.Find("div, article, section, span").Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	if len(paragraphs) == 0 {
		return normalizeWhitespace(StripTags(html))
	}
	return strings.Join(paragraphs, " ")
}

// truncate bounds a field at a word boundary. The result, ellipsis
// included, never exceeds the configured maximum, so re-truncation is a
// no-op and the pipeline stays idempotent.
func (p *Pipeline) truncate(s string) string {
	if len(s) <= p.maxFieldLength {
		return s
	}

	cut := p.maxFieldLength - len("...")
	// Unspaced text (CJK prose) has no word boundary to fall back on, so
	// the cut itself must land on a rune boundary to keep the output valid
	// UTF-8 and the pipeline idempotent.
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if idx := strings.LastIndex(s[:cut], " "); idx > cut-50 {
		return s[:idx] + "..."
	}
	return s[:cut] + "..."
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func removeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF', '\u200E', '\u200F':
			return -1
		}
		return r
	}, s)
}
