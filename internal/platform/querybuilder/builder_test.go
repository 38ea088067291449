package querybuilder

import (
	"database/sql"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("player_id", "name").
		From("profiles").
		Where(Eq("position", "QB")).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_id, name FROM profiles WHERE position = $1 ORDER BY player_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "QB" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_QuestionFormat(t *testing.T) {
	query, args, err := InsertInto("profiles").
		Columns("player_id", "name").
		Values(int64(1), "A B").
		Values(int64(2), "C D").
		Format(Question).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO profiles (player_id, name) VALUES (?, ?), (?, ?)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != int64(2) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("profiles").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("game_stats").Where(Eq("player_id", 7)).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM game_stats WHERE player_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = DeleteFrom("profiles").ToSQL()
	if err != nil || query != "DELETE FROM profiles" {
		t.Fatalf("unexpected unconditional delete: %q %v", query, err)
	}
}

type testRow struct {
	ID      int64          `db:"player_id"`
	Name    string         `db:"name"`
	College sql.NullString `db:"college"`
	skipped string
	Ignored string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []testRow{
		{ID: 1, Name: "A B", College: sql.NullString{String: "X", Valid: true}},
		{ID: 2, Name: "C D", skipped: "x"},
	}

	query, args, err := InsertModels("profiles", rows, Dollar)
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO profiles (player_id, name, college) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols, err := Columns(testRow{})
	if err != nil || len(cols) != 3 {
		t.Fatalf("unexpected columns: %v %v", cols, err)
	}

	if _, _, err := InsertModels[testRow]("profiles", nil, Dollar); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
