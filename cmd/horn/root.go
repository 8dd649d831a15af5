package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailstepcz/horn"
	"github.com/mailstepcz/horn/internal/env"
	"github.com/mailstepcz/horn/internal/logging"
	"github.com/mailstepcz/horn/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootParams struct {
	limit     int
	format    string
	logLevel  string
	logFormat string
	dsn       string
	tables    []string
}

func newRootCommand() *cobra.Command {
	var params rootParams

	root := &cobra.Command{
		Use:   "horn",
		Short: "Horn clause inference engine",
		Long: `An inference engine for Horn clauses.

Programs consist of facts, rules and queries:

	num(z)
	num(s($x)) <- num($x)
	?num($n)
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.CheckEnvironmentVariables(cmd); err != nil {
				return err
			}
			switch params.format {
			case repl.FormatPretty, repl.FormatTable, repl.FormatJSON:
			default:
				return fmt.Errorf("unknown output format: %s", params.format)
			}
			if _, err := logging.GetLevel(params.logLevel); err != nil {
				return err
			}
			if err := logging.CheckFormat(params.logFormat); err != nil {
				return err
			}
			if params.limit < 0 {
				return fmt.Errorf("invalid limit: %d", params.limit)
			}
			return nil
		},
	}

	root.PersistentFlags().IntVarP(&params.limit, "limit", "n", repl.DefaultLimit, "maximum number of answers printed per query (0 for all)")
	root.PersistentFlags().StringVarP(&params.format, "format", "f", repl.FormatPretty, "set the output format {pretty,table,json}")
	root.PersistentFlags().StringVar(&params.logLevel, "log-level", "info", "set log level {trace,debug,info,warn,error}")
	root.PersistentFlags().StringVar(&params.logFormat, "log-format", "text", "set log format {text,json,json-pretty}")
	root.PersistentFlags().StringVar(&params.dsn, "dsn", "", "Postgres connection string to load facts from")
	root.PersistentFlags().StringArrayVar(&params.tables, "table", nil, "load facts from a table as predicate=table:column::type,... (repeatable)")

	root.AddCommand(newRunCommand(&params), newREPLCommand(&params))
	return root
}

// setup creates an engine, loads the configured tables and the given files into it.
func setup(ctx context.Context, params *rootParams, stdout, stderr io.Writer, files []string, opts ...repl.Option) (*horn.Engine, *repl.REPL, error) {
	log, err := logging.New(stderr, params.logLevel, params.logFormat)
	if err != nil {
		return nil, nil, err
	}
	e := horn.NewEngine(horn.WithEngineLogger(log))
	opts = append([]repl.Option{repl.WithFormat(params.format), repl.WithLimit(params.limit)}, opts...)
	r := repl.New(e, stdout, opts...)

	if err := loadTables(ctx, e, params.dsn, params.tables); err != nil {
		return nil, nil, err
	}

	handler := func(q *horn.Query, s *horn.Solver) error {
		fmt.Fprintln(stdout, q)
		return r.PrintAnswers(q, s)
	}
	for _, file := range files {
		if err := loadFile(e, file, handler); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", file, err)
		}
		log.WithFields(logrus.Fields{
			"file":  file,
			"rules": e.KnowledgeBase().Len(),
		}).Debug("file loaded")
	}
	return e, r, nil
}

func loadFile(e *horn.Engine, path string, handler horn.QueryHandler) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return e.LoadYAML(f, handler)
	case ".sexp":
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return e.ExecSymbolicExpression(string(code), handler)
	default:
		code, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return e.Exec(string(code), handler)
	}
}

type tableSource struct {
	predicate string
	table     string
	columns   []string
}

// parseTable parses 'predicate=table:column::type,...'.
func parseTable(def string) (*tableSource, error) {
	pred, rest, ok := strings.Cut(def, "=")
	if !ok || pred == "" {
		return nil, fmt.Errorf("invalid table definition (missing predicate): %s", def)
	}
	table, cols, ok := strings.Cut(rest, ":")
	if !ok || table == "" || cols == "" {
		return nil, fmt.Errorf("invalid table definition (missing columns): %s", def)
	}
	return &tableSource{
		predicate: pred,
		table:     table,
		columns:   strings.Split(cols, ","),
	}, nil
}

func loadTables(ctx context.Context, e *horn.Engine, dsn string, defs []string) error {
	if len(defs) == 0 {
		return nil
	}
	if dsn == "" {
		return errors.New("--table requires --dsn")
	}
	sources := make([]*tableSource, len(defs))
	for i, def := range defs {
		src, err := parseTable(def)
		if err != nil {
			return err
		}
		sources[i] = src
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, src := range sources {
		if _, err := e.LoadSQL(ctx, db, src.predicate, src.table, src.columns); err != nil {
			return fmt.Errorf("loading table %s: %w", src.table, err)
		}
	}
	return nil
}
