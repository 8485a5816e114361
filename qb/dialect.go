package qb

import (
	"fmt"
	"strings"
)

type Dialect struct {
	DriverName                string
	PlaceholderChar           string
	IncludeIndexInPlaceholder bool
	QuoteChar                 string
	PlaceHolderGenerator      func(n int) []string
}

var Dialects = &struct {
	MySQL      *Dialect
	PostgreSQL *Dialect
	SQLite3    *Dialect
}{
	MySQL: &Dialect{
		DriverName:                "mysql",
		PlaceholderChar:           "?",
		IncludeIndexInPlaceholder: false,
		QuoteChar:                 "`",
		PlaceHolderGenerator:      questionMarks,
	},
	PostgreSQL: &Dialect{
		DriverName:                "postgres",
		PlaceholderChar:           "$",
		IncludeIndexInPlaceholder: true,
		QuoteChar:                 `"`,
		PlaceHolderGenerator:      postgresPlaceholder,
	},
	SQLite3: &Dialect{
		DriverName:                "sqlite3",
		PlaceholderChar:           "?",
		IncludeIndexInPlaceholder: false,
		QuoteChar:                 "`",
		PlaceHolderGenerator:      questionMarks,
	},
}

// Quote wraps an identifier in the dialect quote character. Dotted
// identifiers are quoted per segment, a bare or trailing * is kept as is,
// and already quoted identifiers are not quoted twice.
func (d *Dialect) Quote(identifier string) string {
	if identifier == "" || identifier == "*" {
		return identifier
	}
	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		if part == "*" || strings.HasPrefix(part, d.QuoteChar) {
			continue
		}
		parts[i] = d.QuoteChar + part + d.QuoteChar
	}
	return strings.Join(parts, ".")
}

func postgresPlaceholder(n int) []string {
	output := []string{}
	for i := 1; i < n+1; i++ {
		output = append(output, fmt.Sprintf("$%d", i))
	}
	return output
}

func questionMarks(n int) []string {
	output := []string{}
	for i := 0; i < n; i++ {
		output = append(output, "?")
	}

	return output
}
