package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrEmptyTable = errors.New("query: no table")

// compileSelect renders q as a SELECT for d. Joined columns are aliased as
// "relation.column" so the client can nest them afterwards.
func compileSelect(d Dialect, q *Query) (string, []any, error) {
	if q.Table == "" {
		return "", nil, ErrEmptyTable
	}

	cols := make([]string, 0, len(q.Columns))
	for _, c := range q.Columns {
		cols = append(cols, qualify(q.Table, c)+" AS "+quoteIdent(c))
	}
	for _, j := range q.Joins {
		for _, c := range j.Columns {
			cols = append(cols, quoteIdent(j.Relation)+"."+quoteIdent(c)+" AS "+quoteIdent(j.Relation+"."+c))
		}
	}
	if len(cols) == 0 {
		cols = append(cols, quoteIdent(q.Table)+".*")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))

	args, err := writeFromWhere(&sb, d, q)
	if err != nil {
		return "", nil, err
	}

	if len(q.Orders) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range q.Orders {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(qualify(q.Table, o.Column))
			if o.Dir == Desc {
				sb.WriteString(" DESC")
			} else {
				sb.WriteString(" ASC")
			}
		}
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
		if q.Offset > 0 {
			sb.WriteString(" OFFSET " + strconv.Itoa(q.Offset))
		}
	}
	return sb.String(), args, nil
}

// compileCount renders q as an exact COUNT(*) ignoring columns, order and range.
func compileCount(d Dialect, q *Query) (string, []any, error) {
	if q.Table == "" {
		return "", nil, ErrEmptyTable
	}
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*)")
	args, err := writeFromWhere(&sb, d, q)
	if err != nil {
		return "", nil, err
	}
	return sb.String(), args, nil
}

func writeFromWhere(sb *strings.Builder, d Dialect, q *Query) ([]any, error) {
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(q.Table))

	for _, j := range q.Joins {
		if j.Relation == "" || j.Table == "" || j.LocalKey == "" || j.ForeignKey == "" {
			return nil, fmt.Errorf("query: incomplete join on %q", q.Table)
		}
		if j.Inner {
			sb.WriteString(" INNER JOIN ")
		} else {
			sb.WriteString(" LEFT JOIN ")
		}
		sb.WriteString(quoteIdent(j.Table) + " AS " + quoteIdent(j.Relation))
		sb.WriteString(" ON " + quoteIdent(j.Relation) + "." + quoteIdent(j.ForeignKey))
		sb.WriteString(" = " + qualify(q.Table, j.LocalKey))
	}

	var args []any
	if len(q.Filters) > 0 {
		parts := make([]string, 0, len(q.Filters))
		for _, f := range q.Filters {
			expr, fargs, err := compileFilter(d, q.Table, f)
			if err != nil {
				return nil, err
			}
			parts = append(parts, expr)
			args = append(args, fargs...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}
	return args, nil
}

func compileFilter(d Dialect, table string, f Filter) (string, []any, error) {
	switch f.Op {
	case OpEq:
		return qualify(table, f.Column) + " = ?", []any{f.Value}, nil
	case OpILike:
		s, _ := f.Value.(string)
		return d.ilike(qualify(table, f.Column)), []any{containsPattern(s)}, nil
	case OpIn:
		if len(f.Values) == 0 {
			return "1 = 0", nil, nil
		}
		// expanded by sqlx.In before execution
		return qualify(table, f.Column) + " IN (?)", []any{f.Values}, nil
	case OpAny:
		if len(f.Any) == 0 {
			return "1 = 0", nil, nil
		}
		parts := make([]string, 0, len(f.Any))
		var args []any
		for _, sub := range f.Any {
			expr, sargs, err := compileFilter(d, table, sub)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, expr)
			args = append(args, sargs...)
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}
	return "", nil, fmt.Errorf("query: unknown filter op %d", f.Op)
}

// qualify quotes col, prefixing the base table unless col names a relation.
func qualify(table, col string) string {
	if rel, c, ok := strings.Cut(col, "."); ok {
		return quoteIdent(rel) + "." + quoteIdent(c)
	}
	return quoteIdent(table) + "." + quoteIdent(col)
}
