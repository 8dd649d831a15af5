package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRun(t *testing.T) {
	t.Run("rules", func(t *testing.T) {
		req := require.New(t)

		path := writeFile(t, "peano.horn", `
			num(z)
			num(s($x)) <- num($x)
			?num($n)
		`)
		out, err := execute(t, "run", "--limit", "2", path)
		req.NoError(err)
		req.Equal("?num($n)\n[$n = z]\n[$n = s(z)]\nStopped after 2 answers.\n", out)
	})

	t.Run("mixed sources", func(t *testing.T) {
		req := require.New(t)

		facts := writeFile(t, "facts.yaml", `
predicates:
- functor: edge
  args: [a, b]
- functor: edge
  args: [b, c]
`)
		rules := writeFile(t, "rules.sexp", `(
			((path X Y) (edge X Y))
			((path X Y) (edge X Z) (path Z Y))
		)`)
		query := writeFile(t, "query.horn", `?path(a, $y)`)

		out, err := execute(t, "run", "--format", "json", facts, rules, query)
		req.NoError(err)
		req.Equal("?path(a, $y)\n[\n  {\n    \"$y\": \"b\"\n  },\n  {\n    \"$y\": \"c\"\n  }\n]\nNo answer remains.\n", out)
	})

	t.Run("environment", func(t *testing.T) {
		req := require.New(t)

		t.Setenv("HORN_RUN_LIMIT", "1")
		path := writeFile(t, "p.horn", `p(a) p(b) ?p($x)`)
		out, err := execute(t, "run", path)
		req.NoError(err)
		req.Equal("?p($x)\n[$x = a]\nStopped after 1 answer.\n", out)
	})

	t.Run("errors", func(t *testing.T) {
		req := require.New(t)

		path := writeFile(t, "bad.horn", `num(z) ?num(a, b)`)
		_, err := execute(t, "run", path)
		req.ErrorContains(err, "arity of predicate 'num' is expected to be 1, but is 2")

		_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.horn"))
		req.Error(err)

		_, err = execute(t, "run")
		req.Error(err)

		_, err = execute(t, "run", "--format", "xml", path)
		req.EqualError(err, "unknown output format: xml")

		_, err = execute(t, "run", "--log-format", "xml", path)
		req.EqualError(err, "invalid log format: xml")

		_, err = execute(t, "run", "--log-level", "loud", path)
		req.EqualError(err, "invalid log level: loud")

		_, err = execute(t, "run", "--table", "p=t:c::string", path)
		req.EqualError(err, "--table requires --dsn")
	})
}

func TestParseTable(t *testing.T) {
	req := require.New(t)

	src, err := parseTable("person=people:name::string,age::int")
	req.NoError(err)
	req.Equal(&tableSource{
		predicate: "person",
		table:     "people",
		columns:   []string{"name::string", "age::int"},
	}, src)

	_, err = parseTable("people:name::string")
	req.Error(err)
	_, err = parseTable("person=people")
	req.Error(err)
	_, err = parseTable("person=:name::string")
	req.Error(err)
}
