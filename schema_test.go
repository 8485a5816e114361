package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsql/flow/qb"
)

type invoice struct {
	ID        int64
	AccountID int64
	Total     int64
}

func (i invoice) ConfigureEntity(e *EntityConfigurator) {}

type renamed struct {
	ID   int64
	Body string
}

func (r renamed) ConfigureEntity(e *EntityConfigurator) {
	e.Table("docs")
	e.Field("Body").ColumnName("content")
}

type ledgerEntry struct {
	Account string
	Seq     int64
	Amount  int64
}

func (l ledgerEntry) ConfigureEntity(e *EntityConfigurator) {
	e.Field("Account").IsPrimaryKey()
	e.Field("Seq").IsPrimaryKey()
}

func TestTableNameInference(t *testing.T) {
	assert.Equal(t, "invoices", tableNameOf(invoice{}))
	assert.Equal(t, "docs", tableNameOf(renamed{}))
	assert.Equal(t, "ledger_entries", tableNameOf(ledgerEntry{}))
}

func TestFieldInference(t *testing.T) {
	t.Run("snake case column names", func(t *testing.T) {
		fields := fieldsOf(invoice{})
		require.Len(t, fields, 3)
		assert.Equal(t, "id", fields[0].Name)
		assert.Equal(t, "account_id", fields[1].Name)
		assert.Equal(t, "total", fields[2].Name)
	})
	t.Run("id is the implicit primary key", func(t *testing.T) {
		fields := fieldsOf(invoice{})
		assert.True(t, fields[0].IsPK)
		assert.False(t, fields[1].IsPK)
	})
	t.Run("configured column name wins", func(t *testing.T) {
		fields := fieldsOf(renamed{})
		assert.Equal(t, "content", fields[1].Name)
	})
	t.Run("explicit keys suppress the id default", func(t *testing.T) {
		fields := fieldsOf(ledgerEntry{})
		assert.True(t, fields[0].IsPK)
		assert.True(t, fields[1].IsPK)
		assert.False(t, fields[2].IsPK)
	})
}

func TestPrimaryKeyColumns(t *testing.T) {
	s := schemaOf(ledgerEntry{})
	assert.Equal(t, []string{"account", "seq"}, s.pkColumns())

	s.dialect = qb.Dialects.SQLite3
	sql, args := s.pkCond([]any{"acme", 7}).ToSql(s.dialect)
	assert.Equal(t, "`account` = ? AND `seq` = ?", sql)
	assert.EqualValues(t, []any{"acme", 7}, args)
}

func TestSchemaColumns(t *testing.T) {
	s := schemaOf(invoice{})
	assert.Equal(t, []string{"id", "account_id", "total"}, s.Columns(true))
	assert.Equal(t, []string{"account_id", "total"}, s.Columns(false))
}
