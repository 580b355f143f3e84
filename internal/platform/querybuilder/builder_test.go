package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("match_id", "season_id").
		From("matches").
		Where(Eq("season_id", int64(3)), Eq("status", "completed")).
		OrderBy("match_date DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT match_id, season_id FROM matches WHERE season_id = $1 AND status = $2 ORDER BY match_date DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(3) || args[1] != "completed" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_JoinOrForUpdate(t *testing.T) {
	query, args, err := Select("s.team_id", "t.team_name").
		From("standings s").
		Join("JOIN teams t ON t.team_id = s.team_id").
		Where(
			Eq("s.season_id", int64(1)),
			Or(
				And(Eq("home_team_id", int64(2)), Eq("away_team_id", int64(3))),
				And(Eq("home_team_id", int64(3)), Eq("away_team_id", int64(2))),
			),
		).
		Limit(5).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT s.team_id, t.team_name FROM standings s JOIN teams t ON t.team_id = s.team_id " +
		"WHERE s.season_id = $1 AND ((home_team_id = $2 AND away_team_id = $3) OR (home_team_id = $4 AND away_team_id = $5)) " +
		"LIMIT 5 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("status").From("matches").Where(In("status", Strings(nil))).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT status FROM matches WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("standings").
		Columns("season_id", "team_id").
		Values(int64(1), int64(7)).
		Values(int64(1), int64(8)).
		Suffix("ON CONFLICT (season_id, team_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO standings (season_id, team_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (season_id, team_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != int64(7) || args[3] != int64(8) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("standings").
		Set("position", 2).
		SetExpr("played", "played + ?", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("season_id", int64(1)), Eq("team_id", int64(4))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE standings SET position = $1, played = played + $2, updated_at = NOW() WHERE season_id = $3 AND team_id = $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != 2 || args[1] != 1 || args[3] != int64(4) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("matches").Where(Eq("match_id", int64(9))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM matches WHERE match_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("matches").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		SeasonID int64  `db:"season_id"`
		Venue    string `db:"venue"`
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("matches", row{SeasonID: 2, Venue: "GBK"}, "RETURNING match_id")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if query != "INSERT INTO matches (season_id, venue) VALUES ($1, $2) RETURNING match_id" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "GBK" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateModel(t *testing.T) {
	type row struct {
		Status    string `db:"status"`
		HomeGoals *int   `db:"home_team_goals"`
		internal  string
	}

	goals := 2
	builder, err := UpdateModel("matches", &row{Status: "Completed", HomeGoals: &goals, internal: "x"})
	if err != nil {
		t.Fatalf("build update model: %v", err)
	}
	query, args, err := builder.SetExpr("updated_at", "NOW()").Where(Eq("match_id", int64(7))).ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	want := "UPDATE matches SET status = $1, home_team_goals = $2, updated_at = NOW() WHERE match_id = $3"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "Completed" || args[2] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, err := UpdateModel("matches", struct{ Name string }{Name: "x"}); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
	var nilRow *row
	if _, err := UpdateModel("matches", nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
