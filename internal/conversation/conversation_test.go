package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapwort/internal/language"
	"snapwort/internal/llm"
)

func makeTurns(n int) []Turn {
	turns := make([]Turn, n)
	for i := range turns {
		turns[i] = Turn{Question: fmt.Sprintf("q%d", i), Answer: fmt.Sprintf("a%d", i)}
	}
	return turns
}

func TestBuildLengthAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("%d turns", n), func(t *testing.T) {
			msgs := Build(language.English, makeTurns(n), "new question")
			require.Len(t, msgs, 2*n+2)

			assert.Equal(t, llm.RoleSystem, msgs[0].Role)
			for i := 1; i < len(msgs)-1; i += 2 {
				assert.Equal(t, llm.RoleUser, msgs[i].Role, "index %d", i)
				assert.Equal(t, llm.RoleAssistant, msgs[i+1].Role, "index %d", i+1)
				assert.Equal(t, fmt.Sprintf("q%d", (i-1)/2), msgs[i].Content)
				assert.Equal(t, fmt.Sprintf("a%d", (i-1)/2), msgs[i+1].Content)
			}
			last := msgs[len(msgs)-1]
			assert.Equal(t, llm.RoleUser, last.Role)
			assert.Equal(t, "new question", last.Content)
		})
	}
}

func TestBuildUsesLanguageInstruction(t *testing.T) {
	en := Build(language.English, nil, "run")
	de := Build(language.German, nil, "laufen")

	assert.Contains(t, en[0].Content, "English language tutor")
	assert.Contains(t, de[0].Content, "German language tutor")
}

func TestBuildDoesNotShareBackingArrays(t *testing.T) {
	turns := makeTurns(1)
	a := Build(language.English, turns, "x")
	b := Build(language.English, turns, "y")
	a[0].Content = "mutated"
	assert.NotEqual(t, "mutated", b[0].Content)
}

func TestBuildWith(t *testing.T) {
	msgs := BuildWith("custom", makeTurns(2), "q")
	require.Len(t, msgs, 6)
	assert.Equal(t, "custom", msgs[0].Content)
}
