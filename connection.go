package flow

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jedib0t/go-pretty/table"

	"github.com/flowsql/flow/qb"

	// Drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Connection struct {
	Name    string
	Dialect *qb.Dialect
	DB      *sql.DB
	Schemas map[string]*schema
	Changes *ChangeBus
	logger  Logger
}

var globalConnections = map[string]*Connection{}

func GetConnection(name string) *Connection {
	return globalConnections[name]
}

type ConnectionConfig struct {
	// Name of the connection, "default" when there is only one.
	Name string
	// Driver name, one of sqlite3, mysql, postgres. Ignored when DB and
	// Dialect are given directly.
	Driver           string
	ConnectionString string
	DB               *sql.DB
	Dialect          *qb.Dialect
	Entities         []Entity
	// LogLevel selects the zap config for this connection's logger.
	LogLevel LogLevel
}

func Initialize(confs ...ConnectionConfig) error {
	for _, conf := range confs {
		var dialect *qb.Dialect
		var db *sql.DB
		var err error
		if conf.DB != nil && conf.Dialect != nil {
			dialect = conf.Dialect
			db = conf.DB
		} else {
			dialect, err = getDialect(conf.Driver)
			if err != nil {
				return err
			}
			db, err = sql.Open(conf.Driver, conf.ConnectionString)
			if err != nil {
				return err
			}
		}
		name := conf.Name
		if name == "" {
			name = "default"
		}
		logger, err := newZapLogger(conf.LogLevel)
		if err != nil {
			return err
		}
		initialize(name, dialect, db, conf.Entities, logger)
	}
	return nil
}

func initialize(name string, dialect *qb.Dialect, db *sql.DB, entities []Entity, logger Logger) *Connection {
	if logger == nil {
		logger = nopLogger{}
	}
	schemas := map[string]*schema{}
	for _, entity := range entities {
		s := schemaOf(entity)
		if s.dialect == nil {
			s.dialect = dialect
		}
		s.Connection = name
		schemas[s.Table] = s
	}
	c := &Connection{
		Name:    name,
		Dialect: dialect,
		DB:      db,
		Schemas: schemas,
		Changes: NewChangeBus(),
		logger:  logger,
	}
	globalConnections[name] = c
	return c
}

func (c *Connection) getSchema(t string) *schema {
	return c.Schemas[t]
}

// connectionFor picks the connection an entity is registered on. With a
// single connection everything maps there; with more than one the entity
// must name its connection.
func connectionFor(e Entity) (*Connection, error) {
	if len(globalConnections) == 0 {
		return nil, &ConfigurationError{
			Entity: reflect.TypeOf(e).String(),
			Reason: "no connection registered, call Initialize first",
		}
	}
	if len(globalConnections) == 1 {
		for _, c := range globalConnections {
			return c, nil
		}
	}
	configurator := newEntityConfigurator()
	e.ConfigureEntity(configurator)
	if c, exists := globalConnections[configurator.connection]; exists {
		return c, nil
	}
	return nil, &ConfigurationError{
		Entity: reflect.TypeOf(e).String(),
		Reason: "entity names no connection while multiple are registered",
	}
}

// Schematic prints a table per registered schema on every connection.
func Schematic() {
	for name, c := range globalConnections {
		fmt.Printf("----------------%s---------------\n", name)
		c.Schematic()
		fmt.Println("-----------------------------------")
	}
}

func (c *Connection) Schematic() {
	fmt.Printf("SQL Dialect: %s\n", c.Dialect.DriverName)
	for t, s := range c.Schemas {
		fmt.Printf("Table: %s\n", t)
		w := table.NewWriter()
		w.AppendHeader(table.Row{"SQL Name", "Type", "Is Primary Key", "Is Virtual"})
		for _, f := range s.fields {
			w.AppendRow(table.Row{f.Name, f.Type, f.IsPK, f.Virtual})
		}
		fmt.Println(w.Render())
		fmt.Println("")
	}
}
