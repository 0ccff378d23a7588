// Package compose turns the raw output of the meta call into a title and
// exactly four follow-up suggestions. Composition never fails: when the model
// output cannot be used, both fields are derived locally from the query.
package compose

import (
	"encoding/json"
	"fmt"
	"strings"

	"snapwort/internal/language"
	"snapwort/internal/llm"
)

// SuggestionCount is the number of suggestions every Meta carries.
const SuggestionCount = 4

const (
	maxTitleRunes = 30
	titleWords    = 3
	ellipsis      = "..."
)

// Meta is the structured half of a lookup response.
type Meta struct {
	Title       string   `json:"title"`
	Suggestions []string `json:"suggestions"`
	// Derived is set when any field was fabricated from the query rather
	// than taken from model output.
	Derived bool `json:"-"`
}

// Parse strictly decodes model output. Code fences and surrounding prose are
// tolerated; anything else yields ErrMalformedResponse.
func Parse(raw string) (Meta, error) {
	body := stripFences(strings.TrimSpace(raw))
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return Meta{}, fmt.Errorf("%w: no JSON object in meta output", llm.ErrMalformedResponse)
	}
	var m Meta
	if err := json.Unmarshal([]byte(body[start:end+1]), &m); err != nil {
		return Meta{}, fmt.Errorf("%w: %w", llm.ErrMalformedResponse, err)
	}
	m.Title = strings.TrimSpace(m.Title)
	return m, nil
}

// Compose parses raw and repairs the result so that the title is non-empty
// and there are exactly SuggestionCount suggestions.
func Compose(raw, query string, lang language.Code) Meta {
	m, err := Parse(raw)
	if err != nil {
		return Derive(query, lang)
	}
	if m.Title == "" {
		m.Title = DeriveTitle(query)
		m.Derived = true
	}
	m.Suggestions = normalize(m.Suggestions, m.Title, lang)
	return m
}

// Derive builds Meta from the query alone. It is used when the meta call
// failed outright or returned unusable output.
//
// The suggestions are templates and know nothing about the answer text.
func Derive(query string, lang language.Code) Meta {
	title := DeriveTitle(query)
	return Meta{
		Title:       title,
		Suggestions: normalize(templateSuggestions(title, lang), title, lang),
		Derived:     true,
	}
}

// DeriveTitle returns the first three words of query, shortened to 30
// characters with a trailing ellipsis when longer.
func DeriveTitle(query string) string {
	words := strings.Fields(query)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return truncate(strings.Join(words, " "), maxTitleRunes)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-len(ellipsis)]) + ellipsis
}

func normalize(in []string, title string, lang language.Code) []string {
	out := make([]string, 0, SuggestionCount)
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if len(out) == SuggestionCount {
			return out
		}
	}
	for len(out) < SuggestionCount {
		out = append(out, padding(title, lang))
	}
	return out
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
