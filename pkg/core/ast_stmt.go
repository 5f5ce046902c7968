package core

import (
	"fmt"

	"github.com/leapstack-labs/csvql/pkg/token"
)

// ---------- Statement Types ----------

// ImportStmt binds a name to a source path: IMPORT name FROM 'path'.
type ImportStmt struct {
	Name   Expr
	Source Expr
	Start  token.Position
}

// Pos implements Node.
func (s *ImportStmt) Pos() token.Position { return s.Start }

func (s *ImportStmt) String() string {
	return fmt.Sprintf("(IMPORT %s %s)", s.Name, s.Source)
}

// SelectStmt reads every row of Source, optionally filtered by Where.
type SelectStmt struct {
	Source Expr
	Where  *WhereClause // nil when the query has no WHERE
	Start  token.Position
}

// Pos implements Node.
func (s *SelectStmt) Pos() token.Position { return s.Start }

func (s *SelectStmt) String() string {
	if s.Where == nil {
		return fmt.Sprintf("(SELECT %s)", s.Source)
	}
	return fmt.Sprintf("(SELECT %s %s)", s.Source, s.Where)
}

// WhereClause wraps the filter condition of a SELECT.
type WhereClause struct {
	Condition Expr
	Start     token.Position
}

// Pos implements Node.
func (w *WhereClause) Pos() token.Position { return w.Start }

func (w *WhereClause) String() string {
	return fmt.Sprintf("(WHERE %s)", w.Condition)
}
