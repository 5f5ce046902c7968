// Package core defines the shared language of the csvql system.
//
// This package contains:
//   - The query AST (ImportStmt, SelectStmt, WhereClause, expressions)
//   - Record, the decoded form of one CSV row
//   - Error, the tagged error returned by every compiler and engine stage
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
