package querybuilder

import (
	"strings"
	"testing"
)

type fixtureRow struct {
	PublicID  string `db:"public_id"`
	Matchday  int    `db:"matchday"`
	HomeScore *int   `db:"home_score,omitempty"`
	note      string
	Ignored   string `db:"-"`
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	query, args, err := InsertModel("fixtures", &fixtureRow{PublicID: "f1", Matchday: 3, Ignored: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO fixtures (public_id, matchday, home_score) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "f1" || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	t.Parallel()

	rows := []fixtureRow{
		{PublicID: "f1", Matchday: 1},
		{PublicID: "f2", Matchday: 2},
	}
	query, args, err := InsertModels("fixtures", rows, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO fixtures (public_id, matchday, home_score) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "f2" || args[4] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelsRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertModels[fixtureRow]("fixtures", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestInsertModelsRejectsTooManyParameters(t *testing.T) {
	t.Parallel()

	rows := make([]fixtureRow, MaxBindParameters/3+1)
	_, _, err := InsertModels("fixtures", rows, "")
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Fatalf("expected bind parameter limit error, got %v", err)
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertModel("fixtures", "f1", ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *fixtureRow
	if _, _, err := InsertModel("fixtures", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
