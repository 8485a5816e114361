package qb

import "strings"

// QueryBuilder accumulates SQL text with the spacing and identifier
// quoting rules of a dialect. All Append methods return the receiver
// for chaining.
type QueryBuilder struct {
	dialect *Dialect
	sb      strings.Builder
}

func NewQueryBuilder(d *Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: d}
}

func (q *QueryBuilder) Append(s string) *QueryBuilder {
	q.sb.WriteString(s)
	return q
}

func (q *QueryBuilder) AppendSpace() *QueryBuilder {
	return q.Append(" ")
}

// AppendSpaceSeparated appends the given text surrounded by single spaces.
func (q *QueryBuilder) AppendSpaceSeparated(s string) *QueryBuilder {
	return q.AppendSpace().Append(s).AppendSpace()
}

// AppendQuoted appends an identifier quoted for the dialect.
func (q *QueryBuilder) AppendQuoted(identifier string) *QueryBuilder {
	return q.Append(q.dialect.Quote(identifier))
}

// AppendQuotedList appends a comma separated list of quoted identifiers.
func (q *QueryBuilder) AppendQuotedList(identifiers []string) *QueryBuilder {
	for i, identifier := range identifiers {
		if i > 0 {
			q.Append(", ")
		}
		q.AppendQuoted(identifier)
	}
	return q
}

// AppendQualifier appends `<name> <value> ` when value is non-empty and is
// a no-op otherwise. It is the building block for the optional trailing
// clauses of a statement.
func (q *QueryBuilder) AppendQualifier(name, value string) *QueryBuilder {
	if value == "" {
		return q
	}
	return q.Append(name).AppendSpace().Append(value).AppendSpace()
}

func (q *QueryBuilder) String() string {
	return q.sb.String()
}
