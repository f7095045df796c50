package dbutil

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// gendry emits MySQL-style "LIMIT offset, count".
var mysqlLimit = regexp.MustCompile(`(?i)LIMIT\s+\?\s*,\s*\?`)

const uniqueViolation = "23505"

// Finalize rewrites a gendry-built query for Postgres: the MySQL limit
// clause becomes LIMIT/OFFSET (with its two args swapped to match) and the
// ? placeholders become $n.
func Finalize(query string, args []interface{}) (string, []interface{}) {
	query, args = fixLimit(query, args)
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

func fixLimit(query string, args []interface{}) (string, []interface{}) {
	loc := mysqlLimit.FindStringIndex(query)
	if loc == nil {
		return query, args
	}
	// args are positional; the limit pair sits after every ? before the clause
	offsetIdx := strings.Count(query[:loc[0]], "?")
	if offsetIdx+1 >= len(args) {
		return query, args
	}
	args[offsetIdx], args[offsetIdx+1] = args[offsetIdx+1], args[offsetIdx]
	return mysqlLimit.ReplaceAllString(query, "LIMIT ? OFFSET ?"), args
}

// IsConflict reports whether err is a Postgres unique-constraint violation.
func IsConflict(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
