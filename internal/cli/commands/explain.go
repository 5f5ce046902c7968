package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvql/pkg/parser"
	"github.com/leapstack-labs/csvql/pkg/plan"
	"github.com/leapstack-labs/csvql/pkg/token"
)

// Compiler stages shown by explain.
const (
	StageTokens = "tokens"
	StageAST    = "ast"
	StagePlan   = "plan"
)

// ExplainOptions holds options for the explain command.
type ExplainOptions struct {
	Stage string
	Input string
}

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	opts := &ExplainOptions{}

	cmd := &cobra.Command{
		Use:   "explain [QUERY]",
		Short: "Show how a query compiles",
		Long: `Show the output of one compiler stage for a query: its tokens, its syntax
tree, or the execution plan. No files are read.`,
		Example: `  csvql explain "SELECT * FROM 'sales.csv' WHERE amount > 100"
  csvql explain --stage tokens "IMPORT s FROM 'sales.csv'"
  csvql explain --stage ast --input report.csvql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQueryText(cmd, args, opts.Input)
			if err != nil {
				return err
			}
			return runExplain(cmd.OutOrStdout(), query, opts.Stage)
		},
	}

	cmd.Flags().StringVarP(&opts.Stage, "stage", "s", StagePlan, "Compiler stage: tokens, ast, plan")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read the query from file")

	_ = cmd.RegisterFlagCompletionFunc("stage", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{StageTokens, StageAST, StagePlan}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExplain(w io.Writer, query, stage string) error {
	switch stage {
	case StageTokens:
		tokens, err := parser.Tokenize(query)
		if err != nil {
			return err
		}
		renderTokens(w, tokens)
		return nil

	case StageAST:
		prog, err := parser.ParseString(query)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, prog.String())
		return nil

	case StagePlan:
		prog, err := parser.ParseString(query)
		if err != nil {
			return err
		}
		p, err := plan.Generate(prog)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, p.String())
		return nil
	}

	return fmt.Errorf("unknown stage %q (expected tokens, ast or plan)", stage)
}

func renderTokens(w io.Writer, tokens []token.Token) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pos", "Type", "Literal"})
	for _, tok := range tokens {
		t.AppendRow(table.Row{tok.Pos.String(), tok.Type.String(), tok.Literal})
	}
	t.Render()
}
