package horn

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/fealsamh/go-utils/dbutils"
	"github.com/google/uuid"
	"github.com/mailstepcz/slice"
)

// Nil is the constant standing for SQL NULL in facts loaded from a database.
const Nil = "nil"

func columnData(def string) (string, string, error) {
	col, typ, ok := strings.Cut(def, "::")
	if !ok {
		return "", "", fmt.Errorf("invalid column definition (bad structure): %s", def)
	}
	switch typ {
	case "string", "int", "float", "uuid":
		return col, typ, nil
	}
	return "", "", fmt.Errorf("unknown column type: %s", typ)
}

// LoadSQL defines one fact per row of a table. Columns are given as 'name::type'
// where type is one of string, int, float and uuid; the columns become the fact's
// arguments in the given order. It returns the number of facts defined.
func (e *Engine) LoadSQL(ctx context.Context, db dbutils.Querier, predicate, table string, columns []string) (int, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns for predicate '%s'", predicate)
	}
	columnNames, columnTypes := make([]string, len(columns)), make([]string, len(columns))
	for i, c := range columns {
		n, t, err := columnData(c)
		if err != nil {
			return 0, err
		}
		columnNames[i] = n
		columnTypes[i] = t
	}

	rows, err := db.QueryContext(ctx, `SELECT `+
		strings.Join(slice.Fmap(func(name string) string {
			return strconv.Quote(name)
		}, columnNames), ", ")+
		` FROM `+strconv.Quote(table))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	r := make([]interface{}, len(columns))
	for i, typ := range columnTypes {
		switch typ {
		case "string":
			r[i] = new(sql.Null[string])
		case "int":
			r[i] = new(sql.Null[int])
		case "float":
			r[i] = new(sql.Null[float64])
		case "uuid":
			r[i] = new(uuid.NullUUID)
		}
	}

	var n int
	for rows.Next() {
		if err := rows.Scan(r...); err != nil {
			return n, err
		}
		args := slice.Fmap(func(x any) Term {
			return &Atom{Name: sqlConstant(x)}
		}, r)
		if err := e.Define(NewFact(predicate, args...)); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, err
	}
	e.log.WithField("predicate", predicate).WithField("facts", n).Info("facts loaded from database")
	return n, nil
}

func sqlConstant(x any) string {
	switch x := x.(type) {
	case *sql.Null[string]:
		if !x.Valid {
			return Nil
		}
		return x.V
	case *sql.Null[int]:
		if !x.Valid {
			return Nil
		}
		return strconv.Itoa(x.V)
	case *sql.Null[float64]:
		if !x.Valid {
			return Nil
		}
		return strconv.FormatFloat(x.V, 'f', -1, 64)
	case *uuid.NullUUID:
		if !x.Valid {
			return Nil
		}
		return x.UUID.String()
	}
	panic("unknown value type")
}
