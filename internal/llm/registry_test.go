package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	primary := &MockClient{ModelName: "primary"}
	secondary := &MockClient{ModelName: "secondary"}

	r.Register(FamilyGroq, primary, secondary)
	r.Register(FamilyOpenAI, &MockClient{ModelName: "gpt"})
	r.Register(FamilyMistral) // unavailable, omitted
	r.Register(FamilyMistral, nil)

	assert.True(t, r.Has(FamilyGroq))
	assert.True(t, r.Has(FamilyOpenAI))
	assert.False(t, r.Has(FamilyMistral))
	assert.Equal(t, []Family{FamilyGroq, FamilyOpenAI}, r.Families())

	variants := r.Variants(FamilyGroq)
	if assert.Len(t, variants, 2) {
		assert.Equal(t, "primary", variants[0].Model())
		assert.Equal(t, "secondary", variants[1].Model())
	}
	assert.Empty(t, r.Variants(FamilyMistral))
}

func TestRegistryReRegisterKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(FamilyOpenAI, &MockClient{ModelName: "a"})
	r.Register(FamilyGroq, &MockClient{ModelName: "b"})
	r.Register(FamilyOpenAI, &MockClient{ModelName: "c"})

	assert.Equal(t, []Family{FamilyOpenAI, FamilyGroq}, r.Families())
	assert.Equal(t, "c", r.Variants(FamilyOpenAI)[0].Model())
}
