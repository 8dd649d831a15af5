//go:build dbtest
// +build dbtest

package horn

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/mailstepcz/slice"
	"github.com/stretchr/testify/require"

	// import PG
	_ "github.com/lib/pq"
)

func TestLoadSQL(t *testing.T) {
	req := require.New(t)

	db, err := sql.Open("postgres", os.Getenv("DB_DSN"))
	req.NoError(err)
	defer db.Close()

	_, err = db.Exec(`DROP TABLE IF EXISTS dummy_relation`)
	req.NoError(err)
	_, err = db.Exec(`CREATE TABLE dummy_relation (name TEXT, age INTEGER, height REAL)`)
	req.NoError(err)
	_, err = db.Exec(`INSERT INTO dummy_relation (name, age, height) VALUES ('name1', 18, 1.5)`)
	req.NoError(err)
	_, err = db.Exec(`INSERT INTO dummy_relation (name, age, height) VALUES ('name2', 19, NULL)`)
	req.NoError(err)

	e := NewEngine()
	n, err := e.LoadSQL(context.Background(), db, "person", "dummy_relation", []string{"name::string", "age::int", "height::float"})
	req.NoError(err)
	req.Equal(2, n)
	req.Equal([]string{
		"[$n = name1, $a = 18, $h = 1.5]",
		"[$n = name2, $a = 19, $h = nil]",
	}, answers(t, e, `person($n, $a, $h)`, 0))

	_, err = e.LoadSQL(context.Background(), db, "person", "dummy_relation", []string{"name::string"})
	req.ErrorAs(err, new(*ArityMismatchError))
}

func TestLoadSQLGroups(t *testing.T) {
	req := require.New(t)

	db, err := sql.Open("postgres", os.Getenv("DB_DSN"))
	req.NoError(err)
	defer db.Close()

	_, err = db.Exec(`DROP TABLE IF EXISTS dummy_subgroups`)
	req.NoError(err)
	_, err = db.Exec(`CREATE TABLE dummy_subgroups (subgroup UUID, supergroup UUID)`)
	req.NoError(err)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, uuid.New())
	}
	for i := 0; i < len(ids)-1; i++ {
		_, err = db.Exec(`INSERT INTO dummy_subgroups (subgroup, supergroup) VALUES ($1, $2)`, ids[i], ids[i+1])
		req.NoError(err)
	}

	e := NewEngine()
	_, err = e.LoadSQL(context.Background(), db, "sub", "dummy_subgroups", []string{"subgroup::uuid", "supergroup::uuid"})
	req.NoError(err)
	req.NoError(e.Exec(`
		within($x, $y) <- sub($x, $y)
		within($x, $z) <- sub($x, $y), within($y, $z)
	`, nil))

	req.Empty(answers(t, e, `within(unknown, $g)`, 0))

	s, err := e.Query(NewAtom("within", NewAtom(ids[0].String()), NewVar("g")))
	req.NoError(err)
	sols, err := s.Take(0)
	req.NoError(err)
	got := slice.Fmap(func(sol Substitution) string {
		b := Answer(s.Vars(), sol)
		return b[0].Value.String()
	}, sols)
	req.Equal(slice.Fmap(func(id uuid.UUID) string { return id.String() }, ids[1:]), got)
}
