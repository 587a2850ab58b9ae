package querybuilder

import "testing"

func TestSelectBuilder_WithJoinAndIn(t *testing.T) {
	query, args, err := Select("ft.fixture_public_id", "t.public_id", "t.name").
		From("fixture_teams ft").
		Join("teams t", "t.public_id = ft.team_public_id").
		Where(InStrings("ft.fixture_public_id", []string{"fx-1", "fx-2"}), IsNull("t.deleted_at")).
		OrderBy("ft.fixture_public_id", "t.public_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT ft.fixture_public_id, t.public_id, t.name FROM fixture_teams ft JOIN teams t ON t.public_id = ft.team_public_id WHERE ft.fixture_public_id IN ($1, $2) AND t.deleted_at IS NULL ORDER BY ft.fixture_public_id, t.public_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "fx-1" || args[1] != "fx-2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInNeverMatches(t *testing.T) {
	query, args, err := Select("*").From("scores").Where(InStrings("fixture_public_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT * FROM scores WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModels("teams", []row{
		{PublicID: "t1", Name: "Harriers"},
		{PublicID: "t2", Name: "Rovers", internal: "x"},
	}, "ON CONFLICT (public_id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (public_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "t2" || args[3] != "Rovers" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("roster_members").
		Set("availability", "AVAILABLE").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "rm-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE roster_members SET availability = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "AVAILABLE" || args[1] != "rm-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("roster_members").Set("availability", "UNKNOWN").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where clause")
	}
}

func TestExprPlaceholders(t *testing.T) {
	query, args, err := Select("public_id").
		From("fixtures").
		Where(Eq("tournament_public_id", "cup"), Expr("starts_at BETWEEN ? AND ?", 1, 2)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	want := "SELECT public_id FROM fixtures WHERE tournament_public_id = $1 AND starts_at BETWEEN $2 AND $3"
	if query != want || len(args) != 3 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}
