package qb

import (
	"fmt"
	"strings"
)

type orderByOrder string

const (
	OrderByASC  orderByOrder = "ASC"
	OrderByDesc orderByOrder = "DESC"
)

// OrderBy is one column plus direction entry of an ORDER BY clause.
type OrderBy struct {
	Column string
	Order  orderByOrder
}

func (o OrderBy) String(d *Dialect) string {
	return fmt.Sprintf("%s %s", d.Quote(o.Column), o.Order)
}

type GroupBy struct {
	Columns []string
}

func (g GroupBy) String(d *Dialect) string {
	quoted := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		quoted[i] = d.Quote(c)
	}
	return strings.Join(quoted, ", ")
}

type Limit struct {
	N int
}

func (l Limit) String() string {
	return fmt.Sprintf("%d", l.N)
}

type Offset struct {
	N int
}

func (o Offset) String() string {
	return fmt.Sprintf("%d", o.N)
}
