package plan

import (
	"github.com/leapstack-labs/csvql/pkg/core"
)

// Generate lowers prog into a plan, processing statements in order. Names
// bound by IMPORT are visible to the statements after it.
func Generate(prog core.Program) (*Plan, error) {
	g := &generator{bindings: make(map[string]string)}
	p := &Plan{Steps: make([]Step, 0, len(prog))}

	for _, node := range prog {
		step, err := g.statement(node)
		if err != nil {
			return nil, err
		}
		p.Steps = append(p.Steps, step)
	}

	return p, nil
}

// generator holds the bindings of one Generate call.
type generator struct {
	bindings map[string]string
}

func (g *generator) statement(node core.Node) (Step, error) {
	switch n := node.(type) {
	case *core.ImportStmt:
		return g.importStmt(n)
	case *core.SelectStmt:
		return g.selectStmt(n)
	default:
		return nil, core.NewCodegenError(node, "unhandled node type %T", node)
	}
}

func (g *generator) importStmt(n *core.ImportStmt) (*Binding, error) {
	name, ok := n.Name.(*core.Identifier)
	if !ok {
		return nil, core.NewCodegenError(n, "IMPORT name must be an identifier, got %s", n.Name)
	}
	path, ok := n.Source.(*core.StringLiteral)
	if !ok {
		return nil, core.NewCodegenError(n, "IMPORT path must be a string literal, got %s", n.Source)
	}
	if _, exists := g.bindings[name.Name]; exists {
		return nil, core.NewCodegenError(name, "source %q is already imported", name.Name)
	}

	g.bindings[name.Name] = path.Value
	return &Binding{Name: name.Name, Path: path.Value}, nil
}

func (g *generator) selectStmt(n *core.SelectStmt) (*Scan, error) {
	scan := &Scan{}

	switch src := n.Source.(type) {
	case *core.Identifier:
		path, ok := g.bindings[src.Name]
		if !ok {
			return nil, core.NewCodegenError(src, "source %q is not bound by a preceding IMPORT", src.Name)
		}
		scan.Source, scan.Path = src.Name, path
	case *core.StringLiteral:
		scan.Source, scan.Path = src.Value, src.Value
	default:
		return nil, core.NewCodegenError(n, "SELECT source must be an identifier or a string literal, got %s", n.Source)
	}

	if n.Where != nil {
		pred, err := lower(n.Where.Condition)
		if err != nil {
			return nil, err
		}
		scan.Predicate = pred
	}

	return scan, nil
}

// lower converts an expression into an Op tree.
func lower(expr core.Expr) (*Op, error) {
	switch e := expr.(type) {
	case *core.BinaryExpr:
		kind, ok := opsBySymbol[e.Op]
		if !ok {
			return nil, core.NewCodegenError(e, "unknown operator %q", e.Op)
		}
		left, err := lower(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := lower(e.Right)
		if err != nil {
			return nil, err
		}
		return &Op{Kind: kind, Left: left, Right: right}, nil

	case *core.Identifier:
		return &Op{Kind: OpField, Field: e.Name}, nil
	case *core.StringLiteral:
		return &Op{Kind: OpConst, Const: String(e.Value)}, nil
	case *core.NumberLiteral:
		return &Op{Kind: OpConst, Const: Number(e.Value)}, nil
	case *core.BooleanLiteral:
		return &Op{Kind: OpConst, Const: Bool(e.Value)}, nil
	}

	return nil, core.NewCodegenError(expr, "unhandled node type %T", expr)
}
