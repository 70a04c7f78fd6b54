// Package query is a small table-scoped query builder and the Client
// capability the dashboard reads through. A Query describes what to read;
// a Client (SQLClient, BreakerClient, or a test fake) decides how.
package query

import "context"

// Client reads rows from a relational backend. Implementations return
// either a payload or an error, never both.
type Client interface {
	// Select returns the rows matching q.
	Select(ctx context.Context, q *Query) ([]Row, error)
	// Count returns the exact number of rows matching q without transferring
	// them. A nil count means the backend reported none.
	Count(ctx context.Context, q *Query) (*int64, error)
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

type Order struct {
	Column string
	Dir    Direction
}

// Join pulls a related record in under Relation. LocalKey is a column of
// the base table and ForeignKey a column of Table.
type Join struct {
	Relation   string
	Table      string
	LocalKey   string
	ForeignKey string
	Columns    []string
	Inner      bool // drop base rows without a match
}

// Query is built with From and the chained methods below. Column names are
// relative to the base table; "relation.column" addresses a joined column.
type Query struct {
	Table   string
	Columns []string
	Joins   []Join
	Filters []Filter
	Orders  []Order
	Limit   int // 0 = no limit
	Offset  int
}

func From(table string) *Query {
	return &Query{Table: table}
}

func (q *Query) Select(cols ...string) *Query {
	q.Columns = append(q.Columns, cols...)
	return q
}

func (q *Query) Join(j Join) *Query {
	q.Joins = append(q.Joins, j)
	return q
}

// Where adds filters; all of them must hold.
func (q *Query) Where(filters ...Filter) *Query {
	q.Filters = append(q.Filters, filters...)
	return q
}

func (q *Query) Order(col string, dir Direction) *Query {
	q.Orders = append(q.Orders, Order{Column: col, Dir: dir})
	return q
}

func (q *Query) Take(n int) *Query {
	q.Limit = n
	return q
}

// Range restricts the result to rows from..to, zero-based and inclusive.
func (q *Query) Range(from, to int) *Query {
	if from < 0 {
		from = 0
	}
	q.Offset = from
	q.Limit = to - from + 1
	if q.Limit < 0 {
		q.Limit = 0
	}
	return q
}
