package qb

import (
	"fmt"
	"reflect"
	"strings"
)

type binaryOp string

const (
	Eq        binaryOp = "="
	GT        binaryOp = ">"
	LT        binaryOp = "<"
	GE        binaryOp = ">="
	LE        binaryOp = "<="
	NE        binaryOp = "!="
	Like      binaryOp = "LIKE"
	In        binaryOp = "IN"
	Between   binaryOp = "BETWEEN"
	IsNull    binaryOp = "IS NULL"
	IsNotNull binaryOp = "IS NOT NULL"
)

// SQLCondition is a single predicate or a group of predicates that renders
// itself into clause text plus the values to bind.
type SQLCondition interface {
	ToSql(d *Dialect) (string, []any)
}

// Cond is a structured predicate. The column is quoted for the dialect and
// the right hand side values are always bound as placeholders, never
// rendered into the clause text.
type Cond struct {
	Column string
	Op     binaryOp
	Rhs    any
}

func (c Cond) ToSql(d *Dialect) (string, []any) {
	lhs := d.Quote(c.Column)
	switch c.Op {
	case In:
		values := toAnySlice(c.Rhs)
		phs := d.PlaceHolderGenerator(len(values))
		return fmt.Sprintf("%s IN (%s)", lhs, strings.Join(phs, ", ")), values
	case Between:
		values := toAnySlice(c.Rhs)
		phs := d.PlaceHolderGenerator(len(values))
		return fmt.Sprintf("%s BETWEEN %s AND %s", lhs, phs[0], phs[1]), values
	case IsNull, IsNotNull:
		return fmt.Sprintf("%s %s", lhs, c.Op), nil
	default:
		if col, is := c.Rhs.(Column); is {
			return fmt.Sprintf("%s %s %s", lhs, c.Op, d.Quote(string(col))), nil
		}
		phs := d.PlaceHolderGenerator(1)
		return fmt.Sprintf("%s %s %s", lhs, c.Op, phs[0]), []any{c.Rhs}
	}
}

// Check reports a shape mismatch in the predicate's values that would
// make it unrenderable.
func (c Cond) Check() error {
	if c.Op == Between {
		if n := len(toAnySlice(c.Rhs)); n != 2 {
			return fmt.Errorf("BETWEEN takes exactly 2 values, got %d", n)
		}
	}
	return nil
}

// Column marks a right hand side as a column reference. It renders as a
// quoted identifier instead of a bound placeholder, which is what ON
// clauses comparing two columns need.
type Column string

// toAnySlice flattens the right hand side into bindable values. Any slice
// kind expands element-wise, everything else binds as a single value.
func toAnySlice(rhs any) []any {
	if values, is := rhs.([]any); is {
		return values
	}
	// A byte slice is one blob value, not a list.
	if _, is := rhs.([]byte); is {
		return []any{rhs}
	}
	v := reflect.ValueOf(rhs)
	if v.Kind() == reflect.Slice {
		values := make([]any, v.Len())
		for i := range values {
			values[i] = v.Index(i).Interface()
		}
		return values
	}
	return []any{rhs}
}

// Raw is a caller-trusted clause template with positional arguments. The
// template is spliced into the statement verbatim, only the arguments are
// bound safely. It is the escape hatch for clause shapes the structured
// predicates cannot express.
type Raw struct {
	Clause string
	Args   []any
}

func (r Raw) ToSql(d *Dialect) (string, []any) {
	return r.Clause, r.Args
}

// CondGroup combines conditions with explicit AND/OR separators, in
// insertion order. A nested group renders inside parentheses.
type CondGroup struct {
	conds []SQLCondition
	seps  []string
}

// And starts a group combining the given conditions conjunctively.
func And(conds ...SQLCondition) *CondGroup {
	g := &CondGroup{}
	for _, c := range conds {
		g.And(c)
	}
	return g
}

func (g *CondGroup) And(c SQLCondition) *CondGroup {
	if len(g.conds) > 0 {
		g.seps = append(g.seps, "AND")
	}
	g.conds = append(g.conds, c)
	return g
}

func (g *CondGroup) Or(c SQLCondition) *CondGroup {
	if len(g.conds) > 0 {
		g.seps = append(g.seps, "OR")
	}
	g.conds = append(g.conds, c)
	return g
}

func (g *CondGroup) Empty() bool {
	return len(g.conds) == 0
}

// Check validates every member predicate, nested groups included.
func (g *CondGroup) Check() error {
	for _, c := range g.conds {
		if checked, is := c.(interface{ Check() error }); is {
			if err := checked.Check(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *CondGroup) ToSql(d *Dialect) (string, []any) {
	var sb strings.Builder
	var args []any
	for i, c := range g.conds {
		if i > 0 {
			sb.WriteString(" " + g.seps[i-1] + " ")
		}
		sql, condArgs := c.ToSql(d)
		if nested, is := c.(*CondGroup); is && len(nested.conds) > 1 {
			sql = "(" + sql + ")"
		}
		sb.WriteString(sql)
		args = append(args, condArgs...)
	}
	return sb.String(), args
}
