// Package plan lowers a parsed program into an executable plan.
//
// A Plan is an ordered list of steps. A Binding step records the path an
// IMPORT gave a name; a Scan step reads one CSV source and keeps the rows its
// predicate matches. Predicates are Op trees interpreted directly against
// each record. Plans hold no mutable state and may be executed any number of
// times, from any number of goroutines.
package plan

import (
	"fmt"
	"strings"
)

// Step is one unit of a plan: a *Binding or a *Scan.
type Step interface {
	step()
	String() string
}

// Binding associates an imported name with a source path.
type Binding struct {
	Name string
	Path string
}

func (*Binding) step() {}

func (b *Binding) String() string {
	return fmt.Sprintf("BIND %s = %q", b.Name, b.Path)
}

// Scan reads every row of Path and keeps those matching Predicate.
// Source is the name the query used, or the path itself for a string source.
type Scan struct {
	Source    string
	Path      string
	Predicate *Op
}

func (*Scan) step() {}

func (s *Scan) String() string {
	if s.Predicate == nil {
		return fmt.Sprintf("SCAN %s (%q)", s.Source, s.Path)
	}
	return fmt.Sprintf("SCAN %s (%q) FILTER %s", s.Source, s.Path, s.Predicate)
}

// Plan is the compiled form of a program.
type Plan struct {
	Steps []Step
}

// Scans returns the scan steps in execution order.
func (p *Plan) Scans() []*Scan {
	var scans []*Scan
	for _, s := range p.Steps {
		if scan, ok := s.(*Scan); ok {
			scans = append(scans, scan)
		}
	}
	return scans
}

// Sources returns the distinct paths the plan reads, in first-use order.
func (p *Plan) Sources() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, s := range p.Scans() {
		if !seen[s.Path] {
			seen[s.Path] = true
			paths = append(paths, s.Path)
		}
	}
	return paths
}

// String renders one step per line.
func (p *Plan) String() string {
	lines := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}
