// Package conversation linearizes a question/answer history into the message
// sequence sent to a language model.
package conversation

import (
	"snapwort/internal/language"
	"snapwort/internal/llm"
)

// Turn is one completed question/answer pair.
type Turn struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	ModelUsed string `json:"modelUsed,omitempty"`
}

// Build returns the tutor instruction for lang, every prior turn as a
// user/assistant pair, and the new question. The result always has
// 2*len(turns)+2 entries and is freshly allocated per call.
func Build(lang language.Code, turns []Turn, question string) []llm.Message {
	return BuildWith(Instruction(lang), turns, question)
}

// BuildWith is Build with a caller-provided system instruction.
func BuildWith(instruction string, turns []Turn, question string) []llm.Message {
	msgs := make([]llm.Message, 0, 2*len(turns)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: instruction})
	for _, t := range turns {
		msgs = append(msgs,
			llm.Message{Role: llm.RoleUser, Content: t.Question},
			llm.Message{Role: llm.RoleAssistant, Content: t.Answer},
		)
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: question})
}

// Instruction returns the system prompt for answering questions about lang.
func Instruction(lang language.Code) string {
	if lang == language.German {
		return germanInstruction
	}
	return englishInstruction
}

const englishInstruction = `You are a friendly English language tutor helping a learner understand English words, phrases and grammar.
Answer in English using markdown:
- the part of speech in **bold**
- example sentences in *italics*
- separate meanings as bullet points
Keep answers concise and practical. When the learner asks a follow-up question, stay consistent with your earlier answers in this conversation.`

const germanInstruction = `You are a friendly German language tutor helping a learner understand German words, phrases and grammar.
Answer using markdown:
- gender and part of speech in **bold** (for nouns include the article, e.g. **der Hund**)
- German example sentences in *italics*, each followed by an English translation
- separate meanings as bullet points
Explain in English unless the learner writes in German. Keep answers concise and practical. When the learner asks a follow-up question, stay consistent with your earlier answers in this conversation.`
