package flow

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type field struct {
	Name    string
	IsPK    bool
	Virtual bool
	Type    reflect.Type
	idx     int
}

func getFieldConfiguratorFor(fieldConfigurators []*FieldConfigurator, name string) *FieldConfigurator {
	for _, fc := range fieldConfigurators {
		if fc.fieldName == name {
			return fc
		}
	}
	return &FieldConfigurator{}
}

// fieldsOf derives column metadata for every struct field. Column names
// come from the field configurator or fall back to the snake case of the
// field name. A field named ID is a primary key unless the entity
// configures keys explicitly. Struct, slice and pointer fields that do not
// scan as a single column are virtual and never rendered.
func fieldsOf(e Entity) []*field {
	configurator := newEntityConfigurator()
	e.ConfigureEntity(configurator)

	t := reflect.TypeOf(e)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	explicitPK := false
	for _, fc := range configurator.columnConstraints {
		if fc.primaryKey {
			explicitPK = true
		}
	}

	var fms []*field
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i)
		fc := getFieldConfiguratorFor(configurator.columnConstraints, ft.Name)
		fm := &field{Type: ft.Type, idx: i}
		if fc.column != "" {
			fm.Name = fc.column
		} else {
			fm.Name = strcase.ToSnake(ft.Name)
		}
		if fc.primaryKey || (!explicitPK && strings.ToLower(ft.Name) == "id") {
			fm.IsPK = true
		}
		switch ft.Type.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Ptr:
			if !ft.Type.Implements(valuerType) {
				fm.Virtual = true
			}
		}
		fms = append(fms, fm)
	}
	return fms
}
