package redis

import "testing"

func TestNormalizeQuery(t *testing.T) {
	tests := map[string]string{
		"  Smith ": "smith",
		"ACME":     "acme",
		"   ":      "",
		"":         "",
	}
	for in, want := range tests {
		if got := NormalizeQuery(in); got != want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}
