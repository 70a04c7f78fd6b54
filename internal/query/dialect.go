package query

import "strings"

// Dialect captures the SQL differences between the supported backends.
type Dialect struct {
	Name string
	// ilike renders a case-insensitive LIKE of col against one placeholder.
	ilike func(col string) string
}

var (
	MySQL = Dialect{
		Name:  "mysql",
		ilike: func(col string) string { return "LOWER(" + col + ") LIKE LOWER(?)" },
	}
	ClickHouse = Dialect{
		Name:  "clickhouse",
		ilike: func(col string) string { return col + " ILIKE ?" },
	}
)

// DialectFor maps a driver name to its Dialect; unknown names get MySQL.
func DialectFor(driver string) Dialect {
	if driver == ClickHouse.Name {
		return ClickHouse
	}
	return MySQL
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user text into a LIKE pattern matching it anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func quoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}
