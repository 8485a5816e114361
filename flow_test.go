package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowsql/flow"
)

type User struct {
	ID   int64
	Name string
}

func (u User) ConfigureEntity(e *flow.EntityConfigurator) {
	e.Table("users")
}

type Post struct {
	ID     int64
	UserID int64
	Body   string
}

func (p Post) ConfigureEntity(e *flow.EntityConfigurator) {
	e.Table("posts")
}

// OrderLine has a composite primary key, declared in field order.
type OrderLine struct {
	OrderID int64
	LineNo  int64
	Sku     string
}

func (o OrderLine) ConfigureEntity(e *flow.EntityConfigurator) {
	e.Table("order_lines")
	e.Field("OrderID").IsPrimaryKey()
	e.Field("LineNo").IsPrimaryKey()
}

// Ghost is never registered on any connection.
type Ghost struct {
	ID int64
}

func (g Ghost) ConfigureEntity(e *flow.EntityConfigurator) {
	e.Table("ghosts")
}

func setup(t *testing.T) *flow.Connection {
	t.Helper()
	err := flow.Initialize(flow.ConnectionConfig{
		Name:             "default",
		Driver:           "sqlite3",
		ConnectionString: ":memory:",
		Entities:         []flow.Entity{User{}, Post{}, OrderLine{}},
	})
	require.NoError(t, err)

	conn := flow.GetConnection("default")
	// A fresh pool connection would see its own empty :memory: database.
	conn.DB.SetMaxOpenConns(1)
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE IF NOT EXISTS posts (id INTEGER PRIMARY KEY, user_id INTEGER, body TEXT)`,
		`CREATE TABLE IF NOT EXISTS order_lines (order_id INTEGER, line_no INTEGER, sku TEXT, PRIMARY KEY(order_id, line_no))`,
	} {
		_, err := conn.DB.Exec(ddl)
		require.NoError(t, err)
	}
	return conn
}

func seedUsers(t *testing.T, conn *flow.Connection, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := conn.DB.Exec(`INSERT INTO users (name) VALUES (?)`, name)
		require.NoError(t, err)
	}
}
