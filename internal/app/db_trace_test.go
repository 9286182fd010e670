package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace(" SELECT   *\nFROM fixtures \t WHERE season_public_id = $1 ")
	want := "SELECT * FROM fixtures WHERE season_public_id = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("x, ", maxTracedQueryLength))
	if len(long) != maxTracedQueryLength+len("...") || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got length %d", len(long))
	}
}
