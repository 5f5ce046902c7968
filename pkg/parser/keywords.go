package parser

import "github.com/leapstack-labs/csvql/pkg/token"

// Language describes csvql for editors and completion: the words to
// highlight, the operators, and the bracket pairs.
type Language struct {
	Keywords         []string    `json:"keywords" yaml:"keywords"`
	Operators        []string    `json:"operators" yaml:"operators"`
	Brackets         [][2]string `json:"brackets" yaml:"brackets"`
	AutoClosingPairs [][2]string `json:"autoClosingPairs" yaml:"autoClosingPairs"`
	SurroundingPairs [][2]string `json:"surroundingPairs" yaml:"surroundingPairs"`
	Completions      []string    `json:"completions" yaml:"completions"`
}

// highlightedKeywords are the statement and logic keywords. TRUE and FALSE
// are literals and are left out.
var highlightedKeywords = []string{"IMPORT", "FROM", "SELECT", "WHERE", "AND", "OR"}

// DescribeLanguage returns the editor description of csvql.
func DescribeLanguage() Language {
	kw := make([]string, 0, len(highlightedKeywords))
	for _, k := range highlightedKeywords {
		if token.IsKeyword(token.LookupIdent(k)) {
			kw = append(kw, k)
		}
	}

	return Language{
		Keywords:         kw,
		Operators:        []string{"=", "!=", ">", "<", ">=", "<="},
		Brackets:         [][2]string{{"(", ")"}},
		AutoClosingPairs: [][2]string{{"'", "'"}, {"(", ")"}},
		SurroundingPairs: [][2]string{{"'", "'"}, {"(", ")"}},
		Completions:      append([]string(nil), kw...),
	}
}
