package flow

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
)

var valuerType = reflect.TypeOf((*driver.Valuer)(nil)).Elem()

// binder decodes cursor rows into entity values using the schema's column
// metadata. Columns without a matching field scan into a discard slot.
type binder struct {
	s *schema
}

func newBinder(s *schema) *binder {
	return &binder{s: s}
}

// ptrsFor builds the scan destination list for one row, matching result
// columns to the addressable fields of v by column name.
func (b *binder) ptrsFor(v reflect.Value, columns []string) []any {
	byName := map[string]any{}
	for _, f := range b.s.fields {
		if f.Virtual {
			continue
		}
		byName[f.Name] = v.Field(f.idx).Addr().Interface()
	}
	ptrs := make([]any, 0, len(columns))
	for _, c := range columns {
		if p, exists := byName[c]; exists {
			ptrs = append(ptrs, p)
		} else {
			ptrs = append(ptrs, new(any))
		}
	}
	return ptrs
}

// bind scans all rows into obj, which must be a pointer to an entity
// struct or to a slice of them. The cursor is left for the caller to
// release.
func (b *binder) bind(rows *sql.Rows, obj any) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("bind target should be a pointer")
	}
	v = v.Elem()

	if v.Kind() == reflect.Slice {
		elemType := v.Type().Elem()
		for rows.Next() {
			rowValue := reflect.New(elemType).Elem()
			if err := rows.Scan(b.ptrsFor(rowValue, columns)...); err != nil {
				return err
			}
			v.Set(reflect.Append(v, rowValue))
		}
		return rows.Err()
	}

	for rows.Next() {
		if err := rows.Scan(b.ptrsFor(v, columns)...); err != nil {
			return err
		}
	}
	return rows.Err()
}

// window is one fully drained result set: column names plus raw row
// values. Live lists hold exactly one window at a time and swap it
// atomically on refresh.
type window struct {
	columns []string
	records [][]any
}

// captureWindow drains a cursor into a window. The cursor itself is left
// for the caller to release.
func captureWindow(rows *sql.Rows) (*window, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	w := &window{columns: columns}
	for rows.Next() {
		ptrs := make([]any, len(columns))
		for i := range ptrs {
			ptrs[i] = new(any)
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make([]any, len(columns))
		for i, p := range ptrs {
			record[i] = *(p.(*any))
		}
		w.records = append(w.records, record)
	}
	return w, rows.Err()
}

// decodeRecord materializes row i of a window into out, a pointer to an
// entity struct.
func (b *binder) decodeRecord(w *window, i int, out any) error {
	v := reflect.ValueOf(out).Elem()
	for ci, col := range w.columns {
		f := b.s.getField(col)
		if f == nil || f.Virtual {
			continue
		}
		raw := w.records[i][ci]
		if raw == nil {
			continue
		}
		target := v.Field(f.idx)
		rv := reflect.ValueOf(raw)
		switch {
		case rv.Type().AssignableTo(target.Type()):
			target.Set(rv)
		case rv.Type().ConvertibleTo(target.Type()):
			target.Set(rv.Convert(target.Type()))
		default:
			return fmt.Errorf("cannot decode column %s of type %s into field of type %s", col, rv.Type(), target.Type())
		}
	}
	return nil
}
