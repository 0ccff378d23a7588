package compose

import (
	"fmt"

	"snapwort/internal/language"
)

var suggestionTemplates = map[language.Code][]string{
	language.English: {
		`What are some synonyms for "%s"?`,
		`Can you give me more example sentences with "%s"?`,
		`Is "%s" used differently in formal and informal English?`,
		`What is the origin of "%s"?`,
	},
	language.German: {
		`What is the gender and plural of "%s"?`,
		`How does "%s" change across the German cases?`,
		`Can you give me more German example sentences with "%s"?`,
		`What are common synonyms for "%s" in German?`,
	},
}

func templateSuggestions(title string, lang language.Code) []string {
	tmpls, ok := suggestionTemplates[lang]
	if !ok {
		tmpls = suggestionTemplates[language.English]
	}
	out := make([]string, len(tmpls))
	for i, t := range tmpls {
		out[i] = fmt.Sprintf(t, title)
	}
	return out
}

func padding(title string, lang language.Code) string {
	if lang == language.German {
		return fmt.Sprintf(`Tell me more about the German word "%s"`, title)
	}
	return fmt.Sprintf(`Tell me more about "%s"`, title)
}

// Instruction is the system prompt for the meta call.
func Instruction(lang language.Code) string {
	return fmt.Sprintf(`You extract metadata for a %[1]s language-learning query.
Respond with a single JSON object and nothing else:
{"title": "<string>", "suggestions": ["<string>", "<string>", "<string>", "<string>"]}
- "title": the primary %[1]s word or phrase the query is about, at most 30 characters.
- "suggestions": exactly four short follow-up questions a learner could ask next to understand that word or phrase better.`, lang.Name())
}
