package dsn

import (
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	got := FromEnv()
	want := "host=localhost port=5432 user=postgres password=postgres dbname=contacts sslmode=disable"
	if got != want {
		t.Fatalf("FromEnv() = %q, want %q", got, want)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "search")

	got := FromEnv()
	if !strings.Contains(got, "host=db.internal") || !strings.Contains(got, "dbname=search") {
		t.Fatalf("FromEnv() = %q, overrides not applied", got)
	}
}
