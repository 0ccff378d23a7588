package llm

import "testing"

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    Family
		wantErr bool
	}{
		{"openai", FamilyOpenAI, false},
		{"groq", FamilyGroq, false},
		{"mistral", FamilyMistral, false},
		{"huggingface", FamilyMistral, false}, // legacy alias
		{"Groq", FamilyGroq, false},
		{"anthropic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFamily(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFamily(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFamily(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
