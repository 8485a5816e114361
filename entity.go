package flow

// Entity is any struct that describes its own table mapping. The mapping
// layer turns it into a schema: quoted table name, ordered columns and the
// ordered list of primary key columns.
type Entity interface {
	ConfigureEntity(e *EntityConfigurator)
}

type EntityConfigurator struct {
	connection        string
	table             string
	columnConstraints []*FieldConfigurator
}

func newEntityConfigurator() *EntityConfigurator {
	return &EntityConfigurator{}
}

// Table sets the table name. When it is never called the table name is
// inferred from the struct name.
func (ec *EntityConfigurator) Table(name string) *EntityConfigurator {
	ec.table = name
	return ec
}

// Connection names the connection this entity belongs to. Only needed when
// more than one connection is registered.
func (ec *EntityConfigurator) Connection(name string) *EntityConfigurator {
	ec.connection = name
	return ec
}

// Field starts configuring a single struct field by its Go name.
func (ec *EntityConfigurator) Field(name string) *FieldConfigurator {
	cc := &FieldConfigurator{fieldName: name}
	ec.columnConstraints = append(ec.columnConstraints, cc)
	return cc
}

type FieldConfigurator struct {
	fieldName  string
	primaryKey bool
	column     string
}

// IsPrimaryKey marks the field as part of the primary key. Declaration
// order of primary key fields in the struct is the order ByIds substitutes
// values in.
func (fc *FieldConfigurator) IsPrimaryKey() *FieldConfigurator {
	fc.primaryKey = true
	return fc
}

func (fc *FieldConfigurator) ColumnName(name string) *FieldConfigurator {
	fc.column = name
	return fc
}
