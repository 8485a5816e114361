package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	t.Run("sqlite and mysql use backticks", func(t *testing.T) {
		assert.Equal(t, "`users`", Dialects.SQLite3.Quote("users"))
		assert.Equal(t, "`users`", Dialects.MySQL.Quote("users"))
	})
	t.Run("postgres uses double quotes", func(t *testing.T) {
		assert.Equal(t, `"users"`, Dialects.PostgreSQL.Quote("users"))
	})
	t.Run("dotted identifiers quote per segment", func(t *testing.T) {
		assert.Equal(t, "`users`.`id`", Dialects.SQLite3.Quote("users.id"))
		assert.Equal(t, "`users`.*", Dialects.SQLite3.Quote("users.*"))
	})
	t.Run("star and empty pass through", func(t *testing.T) {
		assert.Equal(t, "*", Dialects.SQLite3.Quote("*"))
		assert.Equal(t, "", Dialects.SQLite3.Quote(""))
	})
	t.Run("already quoted stays put", func(t *testing.T) {
		assert.Equal(t, "`users`", Dialects.SQLite3.Quote("`users`"))
	})
}

func TestQueryBuilder(t *testing.T) {
	d := Dialects.SQLite3
	t.Run("append chain", func(t *testing.T) {
		q := NewQueryBuilder(d).Append("SELECT * ").Append("FROM ").AppendQuoted("users").AppendSpace()
		assert.Equal(t, "SELECT * FROM `users` ", q.String())
	})
	t.Run("qualifier with value", func(t *testing.T) {
		q := NewQueryBuilder(d).AppendQualifier("LIMIT", "1")
		assert.Equal(t, "LIMIT 1 ", q.String())
	})
	t.Run("qualifier without value is a no-op", func(t *testing.T) {
		q := NewQueryBuilder(d).Append("x ").AppendQualifier("WHERE", "")
		assert.Equal(t, "x ", q.String())
	})
	t.Run("quoted list", func(t *testing.T) {
		q := NewQueryBuilder(d).AppendQuotedList([]string{"id", "name"})
		assert.Equal(t, "`id`, `name`", q.String())
	})
}
