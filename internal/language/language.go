package language

import (
	"fmt"
	"strings"
)

// Code identifies a supported target language.
type Code string

const (
	English Code = "en"
	German  Code = "de"
)

// Parse normalizes s and returns the matching Code.
func Parse(s string) (Code, error) {
	switch Code(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case German:
		return German, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", s)
	}
}

// Name returns the English display name of the language.
func (c Code) Name() string {
	switch c {
	case German:
		return "German"
	default:
		return "English"
	}
}
