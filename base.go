package flow

import "strings"

// StatementKind tags the root of a statement tree. Exactly one base exists
// per tree and it selects the rendering branches downstream.
type StatementKind int

const (
	KindSelect StatementKind = iota
	KindInsert
	KindUpdate
	KindDelete
)

// statementBase renders the leading keyword of a statement, trailing space
// included.
type statementBase interface {
	Kind() StatementKind
	Query() string
}

type selectBase struct {
	columns  []string
	distinct bool
	count    bool
}

func (s selectBase) Kind() StatementKind { return KindSelect }

func (s selectBase) Query() string {
	if s.count {
		return "SELECT COUNT(*) "
	}
	columns := "*"
	if len(s.columns) > 0 {
		columns = strings.Join(s.columns, ", ")
	}
	if s.distinct {
		return "SELECT DISTINCT " + columns + " "
	}
	return "SELECT " + columns + " "
}

type insertBase struct{}

func (insertBase) Kind() StatementKind { return KindInsert }
func (insertBase) Query() string       { return "INSERT " }

type updateBase struct{}

func (updateBase) Kind() StatementKind { return KindUpdate }
func (updateBase) Query() string       { return "UPDATE " }

type deleteBase struct{}

func (deleteBase) Kind() StatementKind { return KindDelete }
func (deleteBase) Query() string       { return "DELETE " }
