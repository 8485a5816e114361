package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCond(t *testing.T) {
	d := Dialects.SQLite3
	t.Run("equal binds the value", func(t *testing.T) {
		sql, args := Cond{Column: "name", Op: Eq, Rhs: "Alice"}.ToSql(d)
		assert.Equal(t, "`name` = ?", sql)
		assert.EqualValues(t, []any{"Alice"}, args)
	})
	t.Run("comparison operators", func(t *testing.T) {
		sql, args := Cond{Column: "age", Op: GE, Rhs: 18}.ToSql(d)
		assert.Equal(t, "`age` >= ?", sql)
		assert.EqualValues(t, []any{18}, args)

		sql, _ = Cond{Column: "age", Op: NE, Rhs: 18}.ToSql(d)
		assert.Equal(t, "`age` != ?", sql)

		sql, _ = Cond{Column: "name", Op: Like, Rhs: "A%"}.ToSql(d)
		assert.Equal(t, "`name` LIKE ?", sql)
	})
	t.Run("in expands one placeholder per value", func(t *testing.T) {
		sql, args := Cond{Column: "id", Op: In, Rhs: []any{1, 2, 3}}.ToSql(d)
		assert.Equal(t, "`id` IN (?, ?, ?)", sql)
		assert.EqualValues(t, []any{1, 2, 3}, args)
	})
	t.Run("in expands typed slices element-wise", func(t *testing.T) {
		sql, args := Cond{Column: "id", Op: In, Rhs: []int{1, 2, 3}}.ToSql(d)
		assert.Equal(t, "`id` IN (?, ?, ?)", sql)
		assert.EqualValues(t, []any{1, 2, 3}, args)

		sql, args = Cond{Column: "name", Op: In, Rhs: []string{"Alice", "Bob"}}.ToSql(d)
		assert.Equal(t, "`name` IN (?, ?)", sql)
		assert.EqualValues(t, []any{"Alice", "Bob"}, args)
	})
	t.Run("byte slices bind as one blob value", func(t *testing.T) {
		sql, args := Cond{Column: "digest", Op: Eq, Rhs: []byte{0x1, 0x2}}.ToSql(d)
		assert.Equal(t, "`digest` = ?", sql)
		assert.EqualValues(t, []any{[]byte{0x1, 0x2}}, args)
	})
	t.Run("between binds both bounds", func(t *testing.T) {
		sql, args := Cond{Column: "age", Op: Between, Rhs: []any{18, 65}}.ToSql(d)
		assert.Equal(t, "`age` BETWEEN ? AND ?", sql)
		assert.EqualValues(t, []any{18, 65}, args)
	})
	t.Run("null checks bind nothing", func(t *testing.T) {
		sql, args := Cond{Column: "deleted_at", Op: IsNull}.ToSql(d)
		assert.Equal(t, "`deleted_at` IS NULL", sql)
		assert.Empty(t, args)

		sql, _ = Cond{Column: "deleted_at", Op: IsNotNull}.ToSql(d)
		assert.Equal(t, "`deleted_at` IS NOT NULL", sql)
	})
	t.Run("column reference is quoted not bound", func(t *testing.T) {
		sql, args := Cond{Column: "posts.user_id", Op: Eq, Rhs: Column("users.id")}.ToSql(d)
		assert.Equal(t, "`posts`.`user_id` = `users`.`id`", sql)
		assert.Empty(t, args)
	})
	t.Run("between wants exactly two values", func(t *testing.T) {
		assert.Error(t, Cond{Column: "id", Op: Between, Rhs: 5}.Check())
		assert.Error(t, Cond{Column: "id", Op: Between, Rhs: []any{1}}.Check())
		assert.NoError(t, Cond{Column: "id", Op: Between, Rhs: []any{1, 9}}.Check())
	})
	t.Run("group check sees nested members", func(t *testing.T) {
		g := And(
			Cond{Column: "a", Op: Eq, Rhs: 1},
			And(Cond{Column: "b", Op: Between, Rhs: 2}),
		)
		assert.Error(t, g.Check())
	})
	t.Run("postgres placeholders", func(t *testing.T) {
		sql, _ := Cond{Column: "name", Op: Eq, Rhs: "Alice"}.ToSql(Dialects.PostgreSQL)
		assert.Equal(t, `"name" = $1`, sql)
	})
}

func TestCondGroup(t *testing.T) {
	d := Dialects.SQLite3
	t.Run("and combines in insertion order", func(t *testing.T) {
		g := And(
			Cond{Column: "name", Op: Eq, Rhs: "Alice"},
			Cond{Column: "age", Op: GT, Rhs: 18},
		)
		sql, args := g.ToSql(d)
		assert.Equal(t, "`name` = ? AND `age` > ?", sql)
		assert.EqualValues(t, []any{"Alice", 18}, args)
	})
	t.Run("or keeps explicit separators", func(t *testing.T) {
		g := And(Cond{Column: "a", Op: Eq, Rhs: 1}).Or(Cond{Column: "b", Op: Eq, Rhs: 2})
		sql, args := g.ToSql(d)
		assert.Equal(t, "`a` = ? OR `b` = ?", sql)
		assert.Len(t, args, 2)
	})
	t.Run("nested group is parenthesized", func(t *testing.T) {
		inner := And(Cond{Column: "b", Op: Eq, Rhs: 2}).Or(Cond{Column: "c", Op: Eq, Rhs: 3})
		g := And(Cond{Column: "a", Op: Eq, Rhs: 1}).And(inner)
		sql, args := g.ToSql(d)
		assert.Equal(t, "`a` = ? AND (`b` = ? OR `c` = ?)", sql)
		assert.EqualValues(t, []any{1, 2, 3}, args)
	})
	t.Run("raw clause is spliced verbatim", func(t *testing.T) {
		g := And(Raw{Clause: "length(name) > ?", Args: []any{3}})
		sql, args := g.ToSql(d)
		assert.Equal(t, "length(name) > ?", sql)
		assert.EqualValues(t, []any{3}, args)
	})
}
