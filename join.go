package flow

import "github.com/flowsql/flow/qb"

type JoinKind string

const (
	JoinInner     JoinKind = "INNER"
	JoinLeftOuter JoinKind = "LEFT OUTER"
	JoinOuter     JoinKind = "OUTER"
	JoinCross     JoinKind = "CROSS"
)

// Join is one typed edge of a From: join kind, target table and the ON
// condition. A Join without an ON condition at render time makes the tree
// structurally invalid.
type Join[E Entity] struct {
	from  *From[E]
	kind  JoinKind
	table string
	alias string
	on    qb.SQLCondition
}

func (j *Join[E]) As(alias string) *Join[E] {
	j.alias = alias
	return j
}

// On completes the join and hands the chain back to the owning From.
// Multiple conditions combine conjunctively.
func (j *Join[E]) On(conds ...qb.SQLCondition) *From[E] {
	g := qb.And(conds...)
	if err := g.Check(); err != nil && j.from.err == nil {
		j.from.err = &ArgumentError{Op: "On", Reason: err.Error()}
	}
	if !g.Empty() {
		j.on = g
	}
	return j.from
}

func (j *Join[E]) toSql(d *qb.Dialect) (string, []any, error) {
	if j.on == nil {
		return "", nil, &StructuralError{
			Reason: "join on " + j.table + " has no ON condition",
		}
	}
	builder := qb.NewQueryBuilder(d)
	builder.Append(string(j.kind)).AppendSpaceSeparated("JOIN").AppendQuoted(j.table).AppendSpace()
	builder.AppendQualifier("AS", d.Quote(j.alias))
	onSql, args := j.on.ToSql(d)
	builder.Append("ON ").Append(onSql).AppendSpace()
	return builder.String(), args, nil
}
