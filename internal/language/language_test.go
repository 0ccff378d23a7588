package language

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Code
		wantErr bool
	}{
		{"en", English, false},
		{"DE", German, false},
		{" de ", German, false},
		{"fr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if English.Name() != "English" {
		t.Errorf("got %s", English.Name())
	}
	if German.Name() != "German" {
		t.Errorf("got %s", German.Name())
	}
}
