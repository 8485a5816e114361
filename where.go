package flow

import (
	"fmt"
	"strings"

	"github.com/flowsql/flow/qb"
)

// Where accumulates everything that follows the FROM section of one
// statement: conditions (combined conjunctively), grouping, having,
// ordering, limit and offset. Repeated condition calls are additive, never
// replacing.
type Where[E Entity] struct {
	from     *From[E]
	set      []qb.SQLCondition
	conds    []qb.SQLCondition
	groupBy  *qb.GroupBy
	having   qb.SQLCondition
	orderBys []qb.OrderBy
	limit    *qb.Limit
	offset   *qb.Offset
	err      error
}

// Set appends column assignments for an UPDATE statement, rendered comma
// separated between the table and the WHERE clause.
func (w *Where[E]) Set(conds ...qb.SQLCondition) *Where[E] {
	w.check("Set", conds)
	w.set = append(w.set, conds...)
	return w
}

// And appends conditions, each combined with AND. A condition whose
// values do not fit its operator is an ArgumentError surfaced by the
// next finisher, before any rendering or backend round-trip.
func (w *Where[E]) And(conds ...qb.SQLCondition) *Where[E] {
	w.check("Where", conds)
	w.conds = append(w.conds, conds...)
	return w
}

// check records a value-shape mismatch as the accumulator's error.
func (w *Where[E]) check(op string, conds []qb.SQLCondition) {
	if w.err != nil {
		return
	}
	for _, c := range conds {
		if checked, is := c.(interface{ Check() error }); is {
			if err := checked.Check(); err != nil {
				w.err = &ArgumentError{Op: op, Reason: err.Error()}
				return
			}
		}
	}
}

// AndRaw appends a caller-trusted clause template with positional
// arguments. The argument count must match the placeholders in the
// template; a mismatch is an ArgumentError surfaced by the next finisher.
func (w *Where[E]) AndRaw(clause string, args ...any) *Where[E] {
	if w.err == nil {
		if err := checkRawArity(w.dialect(), clause, args); err != nil {
			w.err = err
			return w
		}
	}
	w.conds = append(w.conds, qb.Raw{Clause: clause, Args: args})
	return w
}

func (w *Where[E]) GroupBy(columns ...string) *Where[E] {
	if w.groupBy == nil {
		w.groupBy = &qb.GroupBy{Columns: columns}
		return w
	}
	w.groupBy.Columns = append(w.groupBy.Columns, columns...)
	return w
}

func (w *Where[E]) Having(cond qb.SQLCondition) *Where[E] {
	w.check("Having", []qb.SQLCondition{cond})
	w.having = cond
	return w
}

// OrderBy appends order entries for the given columns, all in the same
// direction. Entries render in insertion order.
func (w *Where[E]) OrderBy(ascending bool, columns ...string) *Where[E] {
	order := qb.OrderByDesc
	if ascending {
		order = qb.OrderByASC
	}
	for _, c := range columns {
		w.orderBys = append(w.orderBys, qb.OrderBy{Column: c, Order: order})
	}
	return w
}

func (w *Where[E]) Limit(n int) *Where[E] {
	w.limit = &qb.Limit{N: n}
	return w
}

func (w *Where[E]) Offset(n int) *Where[E] {
	w.offset = &qb.Offset{N: n}
	return w
}

func (w *Where[E]) dialect() *qb.Dialect {
	if w.from.schema == nil {
		return qb.Dialects.SQLite3
	}
	return w.from.schema.getDialect()
}

// ToSql renders the full statement text plus bound arguments. Clauses
// always render in the order WHERE, GROUP BY, HAVING, ORDER BY, LIMIT,
// OFFSET; absent ones are skipped, present ones never reorder.
func (w *Where[E]) ToSql() (string, []any, error) {
	return w.toSql(w.from.base)
}

func (w *Where[E]) toSql(base statementBase) (string, []any, error) {
	if w.err != nil {
		return "", nil, w.err
	}
	fromSql, args, err := w.from.render(base)
	if err != nil {
		return "", nil, err
	}
	d := w.dialect()
	builder := qb.NewQueryBuilder(d).Append(fromSql)

	if base.Kind() == KindUpdate && len(w.set) > 0 {
		parts := make([]string, len(w.set))
		for i, c := range w.set {
			sql, setArgs := c.ToSql(d)
			parts[i] = sql
			args = append(args, setArgs...)
		}
		builder.AppendQualifier("SET", strings.Join(parts, ", "))
	}
	if len(w.conds) > 0 {
		var condSql string
		var condArgs []any
		if len(w.conds) == 1 {
			condSql, condArgs = w.conds[0].ToSql(d)
		} else {
			condSql, condArgs = qb.And(w.conds...).ToSql(d)
		}
		builder.AppendQualifier("WHERE", condSql)
		args = append(args, condArgs...)
	}
	if w.groupBy != nil {
		builder.AppendQualifier("GROUP BY", w.groupBy.String(d))
	}
	if w.having != nil {
		havingSql, havingArgs := w.having.ToSql(d)
		builder.AppendQualifier("HAVING", havingSql)
		args = append(args, havingArgs...)
	}
	if len(w.orderBys) > 0 {
		parts := make([]string, len(w.orderBys))
		for i, o := range w.orderBys {
			parts[i] = o.String(d)
		}
		builder.AppendQualifier("ORDER BY", strings.Join(parts, ", "))
	}
	if w.limit != nil {
		builder.AppendQualifier("LIMIT", w.limit.String())
	}
	if w.offset != nil {
		builder.AppendQualifier("OFFSET", w.offset.String())
	}
	return builder.String(), args, nil
}

// checkRawArity compares positional placeholders in a raw clause template
// against the supplied argument count. Placeholder characters inside
// single-quoted string literals do not count. Indexed placeholder dialects
// are not checked, the template owns its numbering there.
func checkRawArity(d *qb.Dialect, clause string, args []any) error {
	if d.IncludeIndexInPlaceholder {
		return nil
	}
	if n := countPlaceholders(clause, d.PlaceholderChar); n != len(args) {
		return &ArgumentError{
			Op:     "WhereRaw",
			Reason: fmt.Sprintf("clause has %d placeholders but %d args given", n, len(args)),
		}
	}
	return nil
}

func countPlaceholders(clause, placeholder string) int {
	n := 0
	inString := false
	for i := 0; i < len(clause); i++ {
		switch {
		case clause[i] == '\'':
			inString = !inString
		case !inString && strings.HasPrefix(clause[i:], placeholder):
			n++
		}
	}
	return n
}
