package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLClient runs queries against a *sqlx.DB (MySQL or ClickHouse).
type SQLClient struct {
	db      *sqlx.DB
	dialect Dialect
}

func NewSQLClient(db *sqlx.DB, dialect Dialect) *SQLClient {
	return &SQLClient{db: db, dialect: dialect}
}

var _ Client = (*SQLClient)(nil)

func (c *SQLClient) Select(ctx context.Context, q *Query) ([]Row, error) {
	stmt, args, err := compileSelect(c.dialect, q)
	if err != nil {
		return nil, err
	}
	stmt, args, err = c.expand(stmt, args)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryxContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		raw := make(map[string]any)
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.Table, err)
		}
		out = append(out, nest(raw, q.Joins))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", q.Table, err)
	}
	return out, nil
}

func (c *SQLClient) Count(ctx context.Context, q *Query) (*int64, error) {
	stmt, args, err := compileCount(c.dialect, q)
	if err != nil {
		return nil, err
	}
	stmt, args, err = c.expand(stmt, args)
	if err != nil {
		return nil, err
	}

	var n int64
	if err := c.db.QueryRowxContext(ctx, stmt, args...).Scan(&n); err != nil {
		return nil, fmt.Errorf("count %s: %w", q.Table, err)
	}
	return &n, nil
}

func (c *SQLClient) expand(stmt string, args []any) (string, []any, error) {
	if !strings.Contains(stmt, " IN (?)") {
		return stmt, args, nil
	}
	stmt, args, err := sqlx.In(stmt, args...)
	if err != nil {
		return "", nil, err
	}
	return c.db.Rebind(stmt), args, nil
}

// nest moves "relation.column" keys under their relation. A relation whose
// columns are all NULL (no match on a LEFT JOIN) becomes nil.
func nest(raw map[string]any, joins []Join) Row {
	row := make(Row, len(raw))
	for k, v := range raw {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		rel, col, ok := strings.Cut(k, ".")
		if !ok {
			row[k] = v
			continue
		}
		sub, _ := row[rel].(Row)
		if sub == nil {
			sub = make(Row)
			row[rel] = sub
		}
		sub[col] = v
	}

	for _, j := range joins {
		sub, ok := row[j.Relation].(Row)
		if !ok {
			continue
		}
		empty := true
		for _, v := range sub {
			if v != nil {
				empty = false
				break
			}
		}
		if empty {
			row[j.Relation] = nil
		}
	}
	return row
}
