package escomplex

import (
	"errors"

	"github.com/huangsam/codeinsights/internal/jsast"
	"github.com/huangsam/codeinsights/schema"
)

var (
	// ErrNotProgram is returned when the tree handed to AnalyzeModule has no Program root.
	ErrNotProgram = errors.New("syntax tree root is not a program")
	// ErrZeroCyclomatic is returned when the averaged cyclomatic complexity is zero.
	ErrZeroCyclomatic = errors.New("encountered function with cyclomatic complexity zero")
)

// scope accumulates the metrics of one function body, or of the whole module.
type scope struct {
	name       string
	line       int
	logical    int
	physical   int
	params     int
	cyclomatic int
	operators  *tally
	operands   *tally
}

func newScope(name string, n *jsast.Node) *scope {
	return &scope{
		name:       name,
		line:       n.Loc.Start.Line,
		physical:   n.Loc.End.Line - n.Loc.Start.Line + 1,
		cyclomatic: 1,
		operators:  newTally(),
		operands:   newTally(),
	}
}

func (s *scope) report() schema.FunctionReport {
	return schema.FunctionReport{
		Name:              s.name,
		Line:              s.line,
		SLOC:              schema.SLOC{Logical: s.logical, Physical: s.physical},
		Params:            s.params,
		Cyclomatic:        s.cyclomatic,
		CyclomaticDensity: percentify(float64(s.cyclomatic), float64(s.logical)),
		Halstead:          halstead(s.operators.operations(), s.operands.operations()),
	}
}

// moduleAnalyzer counts every measured node into the module aggregate and,
// when inside a function, into the innermost function scope.
type moduleAnalyzer struct {
	settings     Settings
	aggregate    *scope
	functions    []*scope
	stack        []*scope
	dependencies []schema.Dependency
}

func (m *moduleAnalyzer) targets() []*scope {
	if len(m.stack) == 0 {
		return []*scope{m.aggregate}
	}
	return []*scope{m.stack[len(m.stack)-1], m.aggregate}
}

func (m *moduleAnalyzer) processNode(n *jsast.Node, s *syntax) {
	lloc, cyclomatic := 0, 0
	if s.lloc != nil {
		lloc = s.lloc(n)
	}
	if s.cyclomatic != nil {
		cyclomatic = s.cyclomatic(n, m.settings)
	}
	operators := names(n, s.operators)
	operands := names(n, s.operands)

	for _, target := range m.targets() {
		target.logical += lloc
		target.cyclomatic += cyclomatic
		for _, op := range operators {
			target.operators.add(op)
		}
		for _, op := range operands {
			target.operands.add(op)
		}
	}

	if s.dependencies != nil {
		m.dependencies = append(m.dependencies, s.dependencies(n)...)
	}
}

func (m *moduleAnalyzer) createScope(name string, n *jsast.Node) {
	fn := newScope(name, n)
	fn.params = len(n.List(jsast.FieldParams))
	m.aggregate.params += fn.params
	m.functions = append(m.functions, fn)
	m.stack = append(m.stack, fn)
}

func (m *moduleAnalyzer) popScope() {
	m.stack = m.stack[:len(m.stack)-1]
}

func names(n *jsast.Node, ops []operation) []string {
	var out []string
	for _, op := range ops {
		if op.filter != nil && !op.filter(n) {
			continue
		}
		out = append(out, op.name(n))
	}
	return out
}

// AnalyzeModule measures one normalized program.
func AnalyzeModule(root *jsast.Node, settings Settings) (*schema.ComplexityReport, error) {
	if root == nil || root.Kind != jsast.Program {
		return nil, ErrNotProgram
	}

	m := &moduleAnalyzer{settings: settings, aggregate: newScope("", root)}
	walk(root, m)

	report := &schema.ComplexityReport{
		Aggregate:    m.aggregate.report(),
		Functions:    make([]schema.FunctionReport, 0, len(m.functions)),
		Dependencies: m.dependencies,
	}
	if report.Dependencies == nil {
		report.Dependencies = []schema.Dependency{}
	}

	var loc, cyclomatic, effort, params float64
	for _, fn := range m.functions {
		r := fn.report()
		report.Functions = append(report.Functions, r)
		loc += float64(r.SLOC.Logical)
		cyclomatic += float64(r.Cyclomatic)
		effort += r.Halstead.Effort
		params += float64(r.Params)
	}

	count := float64(len(m.functions))
	if count == 0 {
		agg := report.Aggregate
		loc = float64(agg.SLOC.Logical)
		cyclomatic = float64(agg.Cyclomatic)
		effort = agg.Halstead.Effort
		params = float64(agg.Params)
		count = 1
	}

	report.LOC = loc / count
	report.Cyclomatic = cyclomatic / count
	report.Effort = effort / count
	report.Params = params / count
	if report.Cyclomatic == 0 {
		return nil, ErrZeroCyclomatic
	}
	report.Maintainability = maintainability(report.Effort, report.Cyclomatic, report.LOC)
	return report, nil
}
