// Package normalize turns raw query input into a canonical domain.Query.
// It implements comprehensive protection against query injection attacks
// before any term reaches an adapter.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"search-hub/domain"
)

// Config bounds normalization cost. Values come from the service
// configuration, not ambient globals.
type Config struct {
	// MaxQueryLength is the maximum accepted raw query length in bytes.
	MaxQueryLength int
	// MaxTerms caps the term list to bound scoring cost.
	MaxTerms int
	// DefaultPageSize applies when the caller omits page_size.
	DefaultPageSize int
	// MaxPageSize clamps caller-supplied page sizes.
	MaxPageSize int
}

// DefaultConfig returns the bounds used in production.
func DefaultConfig() Config {
	return Config{
		MaxQueryLength:  1000,
		MaxTerms:        20,
		DefaultPageSize: 20,
		MaxPageSize:     50,
	}
}

// Normalizer cleans and tokenizes raw queries. Safe for concurrent use.
type Normalizer struct {
	cfg Config
	tok *tokenizer.Tokenizer
}

// NewNormalizer builds a Normalizer. The kagome dictionary load is the
// expensive part, so construct once at bootstrap.
func NewNormalizer(cfg Config) (*Normalizer, error) {
	if cfg.MaxQueryLength <= 0 || cfg.MaxTerms <= 0 {
		return nil, fmt.Errorf("normalizer config must have positive bounds")
	}
	if cfg.DefaultPageSize <= 0 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("normalizer page size bounds are inconsistent")
	}

	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}

	return &Normalizer{cfg: cfg, tok: t}, nil
}

// Normalize produces a canonical Query from raw caller input. A query with
// no usable terms and no category filter fails with InvalidQueryError.
func (n *Normalizer) Normalize(rawQuery string, categories []string, page, pageSize int) (domain.Query, error) {
	if len(rawQuery) > n.cfg.MaxQueryLength {
		return domain.Query{}, domain.NewInvalidQueryError("query exceeds maximum length")
	}
	if err := validateControlChars(rawQuery); err != nil {
		return domain.Query{}, err
	}

	cleaned := Clean(rawQuery)
	terms := n.terms(cleaned)
	if len(terms) > n.cfg.MaxTerms {
		terms = terms[:n.cfg.MaxTerms]
	}

	filter, err := normalizeCategories(categories)
	if err != nil {
		return domain.Query{}, domain.NewInvalidQueryError(err.Error())
	}

	if len(terms) == 0 && len(filter) == 0 {
		return domain.Query{}, domain.NewInvalidQueryError("nothing to search: no terms and no category filter")
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = n.cfg.DefaultPageSize
	}
	if pageSize > n.cfg.MaxPageSize {
		pageSize = n.cfg.MaxPageSize
	}

	return domain.Query{
		RawText:        rawQuery,
		Terms:          terms,
		CategoryFilter: filter,
		Page:           page,
		PageSize:       pageSize,
	}, nil
}

// NormalizePrefix cleans an autocomplete prefix. The returned prefix is
// lowercased with inner whitespace collapsed; length checks are the
// caller's concern.
func (n *Normalizer) NormalizePrefix(raw string) string {
	if len(raw) > n.cfg.MaxQueryLength {
		raw = raw[:n.cfg.MaxQueryLength]
	}
	return strings.ToLower(Clean(raw))
}

// terms splits cleaned text into deduplicated, order-preserving lowercase
// terms. Japanese runs are segmented with kagome instead of the
// punctuation splitter, which would otherwise keep them as one giant token.
func (n *Normalizer) terms(cleaned string) []string {
	lowered := strings.ToLower(cleaned)

	var raw []string
	for _, chunk := range splitTerms(lowered) {
		if containsJapanese(chunk) {
			raw = append(raw, n.tok.Wakati(chunk)...)
			continue
		}
		raw = append(raw, chunk)
	}

	seen := make(map[string]struct{}, len(raw))
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}

// Clean removes injection vectors from raw query text: encoded payloads,
// zero-width characters, markup, script schemes. It never errors; hostile
// input degrades to fewer usable characters.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	// URL decode to catch encoded attack vectors
	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}

	raw = removeZeroWidthChars(raw)
	raw = stripMarkup(raw)
	raw = removeScriptSchemes(raw)
	return normalizeWhitespace(raw)
}

func splitTerms(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func containsJapanese(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

func normalizeCategories(categories []string) ([]string, error) {
	trimmed := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		trimmed = append(trimmed, c)
	}
	if len(trimmed) == 0 {
		return nil, nil
	}

	if err := domain.ValidateCategoryFilters(trimmed); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(trimmed))
	out := make([]string, 0, len(trimmed))
	for _, c := range trimmed {
		c = strings.ToLower(c)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func validateControlChars(query string) error {
	for _, r := range query {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return domain.NewInvalidQueryError("query contains null byte or control character")
		}
	}
	return nil
}

// stripMarkup removes script blocks including their content, then any
// remaining angle-bracket tags.
func stripMarkup(input string) string {
	for {
		start := strings.Index(strings.ToLower(input), "<script")
		if start == -1 {
			break
		}
		end := strings.Index(strings.ToLower(input[start:]), "</script>")
		if end == -1 {
			input = input[:start]
			break
		}
		end += start + len("</script>")
		input = input[:start] + input[end:]
	}

	for {
		start := strings.Index(input, "<")
		if start == -1 {
			break
		}
		end := strings.Index(input[start:], ">")
		if end == -1 {
			input = input[:start]
			break
		}
		end += start + 1
		input = input[:start] + input[end:]
	}

	return input
}

func removeScriptSchemes(input string) string {
	patterns := []string{
		"javascript:",
		"data:",
		"vbscript:",
		"onload=",
		"onerror=",
		"onclick=",
		"onmouseover=",
	}

	lowered := strings.ToLower(input)
	for _, pattern := range patterns {
		lowered = strings.ReplaceAll(lowered, pattern, "")
	}
	return lowered
}

func normalizeWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func removeZeroWidthChars(input string) string {
	zeroWidthChars := []rune{
		'\u200B', // Zero width space
		'\u200C', // Zero width non-joiner
		'\u200D', // Zero width joiner
		'\uFEFF', // Zero width no-break space (BOM)
		'\u200E', // Left-to-right mark
		'\u200F', // Right-to-left mark
	}

	for _, char := range zeroWidthChars {
		input = strings.ReplaceAll(input, string(char), "")
	}
	return input
}
