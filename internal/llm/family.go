package llm

import (
	"fmt"
	"strings"
)

// Family is a selectable backend vendor.
type Family string

const (
	FamilyOpenAI  Family = "openai"
	FamilyGroq    Family = "groq"
	FamilyMistral Family = "mistral"
)

// legacyHuggingFace is accepted from older clients and served by Mistral.
const legacyHuggingFace = "huggingface"

// ParseFamily maps a request value to a Family.
func ParseFamily(s string) (Family, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case string(FamilyOpenAI):
		return FamilyOpenAI, nil
	case string(FamilyGroq):
		return FamilyGroq, nil
	case string(FamilyMistral), legacyHuggingFace:
		return FamilyMistral, nil
	default:
		return "", fmt.Errorf("unknown provider: %q", s)
	}
}
