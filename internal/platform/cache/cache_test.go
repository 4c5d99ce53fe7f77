package cache

import (
	"testing"
)

func TestConnect_BadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"invalid", "not-a-url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Connect(t.Context(), tt.url)
			if err == nil {
				t.Errorf("Connect(%q) expected error", tt.url)
			}
		})
	}
}

func TestKeyConventions(t *testing.T) {
	if got := codeKey("a@b.com"); got != "satprep:code:a@b.com" {
		t.Errorf("codeKey = %q", got)
	}
	if got := stateKey("u1"); got != "satprep:state:u1" {
		t.Errorf("stateKey = %q", got)
	}
}
