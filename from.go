package flow

import (
	"database/sql"
	"fmt"

	"github.com/flowsql/flow/qb"
)

// From binds a statement base to the table of one entity type. It owns the
// alias, the ordered join list and an optional INDEXED BY hint, and hands
// everything below the FROM section to a Where accumulator.
//
// A From and the Where it produces are single-owner values: build and
// render them from one goroutine, and treat the tree as consumed once it
// is handed to a finisher.
type From[E Entity] struct {
	base      statementBase
	schema    *schema
	alias     string
	joins     []*Join[E]
	indexedBy string
	err       error
}

// Select starts a SELECT statement for the entity's table, projecting the
// given columns or * when none are given.
func Select[E Entity](columns ...string) *From[E] {
	return attach[E](selectBase{columns: columns})
}

// SelectDistinct is Select with a DISTINCT qualifier.
func SelectDistinct[E Entity](columns ...string) *From[E] {
	return attach[E](selectBase{columns: columns, distinct: true})
}

func Insert[E Entity]() *From[E] {
	return attach[E](insertBase{})
}

func Update[E Entity]() *From[E] {
	return attach[E](updateBase{})
}

func Delete[E Entity]() *From[E] {
	return attach[E](deleteBase{})
}

// attach resolves the entity's registered schema. A missing mapping is
// recorded on the From and returned by the first finisher, keeping the
// chain usable without a backend round-trip ever happening.
func attach[E Entity](base statementBase) *From[E] {
	var e E
	s, err := schemaFor(e)
	f := &From[E]{base: base, schema: s, err: err}
	if err == nil {
		if sb, is := base.(selectBase); is && len(sb.columns) > 0 {
			quoted := make([]string, len(sb.columns))
			for i, c := range sb.columns {
				quoted[i] = s.getDialect().Quote(c)
			}
			sb.columns = quoted
			f.base = sb
		}
	}
	return f
}

// As sets the display alias for the target table. Alias uniqueness across
// a statement is the caller's responsibility.
func (f *From[E]) As(alias string) *From[E] {
	f.alias = alias
	return f
}

// Join appends a join against another entity's table and returns it for
// ON completion. Joins render in insertion order.
func (f *From[E]) Join(target Entity, kind JoinKind) *Join[E] {
	j := &Join[E]{from: f, kind: kind}
	ts, err := schemaFor(target)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
	} else {
		j.table = ts.Table
	}
	f.joins = append(f.joins, j)
	return j
}

// IndexedBy attaches an INDEXED BY rendering hint.
func (f *From[E]) IndexedBy(indexName string) *From[E] {
	f.indexedBy = indexName
	return f
}

// Where returns the statement's condition accumulator, seeding it with the
// given conditions combined conjunctively. Calling it with no conditions
// yields an empty accumulator.
func (f *From[E]) Where(conds ...qb.SQLCondition) *Where[E] {
	w := &Where[E]{from: f, err: f.err}
	return w.And(conds...)
}

// Set starts the accumulator with column assignments for an UPDATE
// statement.
func (f *From[E]) Set(conds ...qb.SQLCondition) *Where[E] {
	return f.Where().Set(conds...)
}

// WhereRaw starts the condition accumulator from a caller-trusted clause
// template plus positional arguments. The template bypasses structural
// quoting, only the argument values are bound safely.
func (f *From[E]) WhereRaw(clause string, args ...any) *Where[E] {
	return f.Where().AndRaw(clause, args...)
}

// ByIds builds a WHERE clause binding each id positionally to the entity's
// declared primary key columns. The number of ids must equal the primary
// key arity exactly.
func (f *From[E]) ByIds(ids ...any) (*Where[E], error) {
	if f.err != nil {
		return nil, f.err
	}
	pks := f.schema.pkColumns()
	if len(ids) != len(pks) {
		return nil, &ArgumentError{
			Op:     "ByIds",
			Reason: fmt.Sprintf("%d ids given for %d primary key columns", len(ids), len(pks)),
		}
	}
	return f.Where(f.schema.pkCond(ids)), nil
}

func (f *From[E]) OrderBy(ascending bool, columns ...string) *Where[E] {
	return f.Where().OrderBy(ascending, columns...)
}

func (f *From[E]) GroupBy(columns ...string) *Where[E] {
	return f.Where().GroupBy(columns...)
}

// render produces the From section of the statement text under the given
// base: leading keyword, FROM unless UPDATE, quoted table, then alias and
// joins for SELECT or a single trailing space for everything else.
func (f *From[E]) render(base statementBase) (string, []any, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	d := f.schema.getDialect()
	builder := qb.NewQueryBuilder(d)
	builder.Append(base.Query())
	if base.Kind() != KindUpdate {
		builder.Append("FROM ")
	}
	builder.AppendQuoted(f.schema.Table)

	var args []any
	if base.Kind() == KindSelect {
		builder.AppendSpace()
		builder.AppendQualifier("AS", d.Quote(f.alias))
		for _, j := range f.joins {
			jsql, jargs, err := j.toSql(d)
			if err != nil {
				return "", nil, err
			}
			builder.Append(jsql)
			args = append(args, jargs...)
		}
	} else {
		builder.AppendSpace()
	}

	if f.indexedBy != "" {
		builder.Append("INDEXED BY ").AppendQuoted(f.indexedBy).AppendSpace()
	}
	return builder.String(), args, nil
}

// ToSql renders the statement without any accumulated conditions.
func (f *From[E]) ToSql() (string, []any, error) {
	return f.render(f.base)
}

// Finishers on a bare From delegate through an empty Where.

func (f *From[E]) Query() (*sql.Rows, error)          { return f.Where().Query() }
func (f *From[E]) QueryList() ([]E, error)            { return f.Where().QueryList() }
func (f *From[E]) QuerySingle() (E, bool, error)      { return f.Where().QuerySingle() }
func (f *From[E]) QueryClose() error                  { return f.Where().QueryClose() }
func (f *From[E]) Count() (int64, error)              { return f.Where().Count() }
func (f *From[E]) Exists() (bool, error)              { return f.Where().Exists() }
func (f *From[E]) QueryCursorList() (*CursorList[E], error) {
	return f.Where().QueryCursorList()
}
func (f *From[E]) QueryTableList() (*QueryList[E], error) {
	return f.Where().QueryTableList()
}
