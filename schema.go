package flow

import (
	"database/sql"
	"reflect"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"

	"github.com/flowsql/flow/qb"
)

type schema struct {
	Connection string
	Table      string
	dialect    *qb.Dialect
	fields     []*field
}

// tableNameOf resolves the table an entity maps to, either from its
// configurator or inferred from the pluralized snake case struct name.
func tableNameOf(e Entity) string {
	configurator := newEntityConfigurator()
	e.ConfigureEntity(configurator)
	if configurator.table != "" {
		return configurator.table
	}
	t := reflect.TypeOf(e)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return pluralize.NewClient().Plural(strcase.ToSnake(t.Name()))
}

func schemaOf(e Entity) *schema {
	configurator := newEntityConfigurator()
	e.ConfigureEntity(configurator)

	s := &schema{
		Connection: configurator.connection,
		Table:      tableNameOf(e),
		fields:     fieldsOf(e),
	}
	if s.Connection == "" {
		s.Connection = "default"
	}
	return s
}

// schemaFor looks the entity's schema up in the connection registry. An
// entity whose table was never registered through Initialize has no
// mapping and yields a ConfigurationError.
func schemaFor(e Entity) (*schema, error) {
	c, err := connectionFor(e)
	if err != nil {
		return nil, err
	}
	s := c.getSchema(tableNameOf(e))
	if s == nil {
		return nil, &ConfigurationError{
			Entity: reflect.TypeOf(e).String(),
			Reason: "entity is not registered on connection " + c.Name,
		}
	}
	return s, nil
}

func (s *schema) Columns(withPK bool) []string {
	var cols []string
	for _, f := range s.fields {
		if f.Virtual {
			continue
		}
		if !withPK && f.IsPK {
			continue
		}
		cols = append(cols, f.Name)
	}
	return cols
}

// pkColumns returns the primary key columns in struct declaration order.
func (s *schema) pkColumns() []string {
	var cols []string
	for _, f := range s.fields {
		if f.IsPK {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// pkCond builds the primary key match condition, binding each value to its
// column positionally.
func (s *schema) pkCond(ids []any) *qb.CondGroup {
	g := qb.And()
	for i, col := range s.pkColumns() {
		g.And(qb.Cond{Column: col, Op: qb.Eq, Rhs: ids[i]})
	}
	return g
}

func (s *schema) getField(name string) *field {
	for _, f := range s.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (s *schema) getDialect() *qb.Dialect {
	return s.dialect
}

func (s *schema) getSQLDB() *sql.DB {
	return s.getConnection().DB
}

func (s *schema) getConnection() *Connection {
	if len(globalConnections) == 1 {
		for _, c := range globalConnections {
			return c
		}
	}
	return globalConnections[s.Connection]
}
