package escomplex

import (
	"math"

	"github.com/huangsam/codeinsights/schema"
)

// tally counts occurrences of operators or operands, keeping first-seen order.
type tally struct {
	order  []string
	counts map[string]int
	total  int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(name string) {
	if _, ok := t.counts[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counts[name]++
	t.total++
}

func (t *tally) operations() schema.OperationCounts {
	return schema.OperationCounts{
		Distinct:    len(t.order),
		Total:       t.total,
		Identifiers: append([]string(nil), t.order...),
	}
}

// halstead derives the Halstead measures from operator and operand counts.
// A body with no operators or operands scores zero everywhere.
func halstead(operators, operands schema.OperationCounts) schema.Halstead {
	h := schema.Halstead{
		Operators: operators,
		Operands:  operands,
		Length:    operators.Total + operands.Total,
	}
	if h.Length == 0 {
		return h
	}

	h.Vocabulary = operators.Distinct + operands.Distinct
	spread := 1.0
	if operands.Distinct != 0 {
		spread = float64(operands.Total) / float64(operands.Distinct)
	}
	h.Difficulty = float64(operators.Distinct) / 2 * spread
	h.Volume = float64(h.Length) * math.Log2(float64(h.Vocabulary))
	h.Effort = h.Difficulty * h.Volume
	h.Bugs = h.Volume / 3000
	h.Time = h.Effort / 18
	return h
}

// maintainability is the classic index, capped at schema.MaxMaintainability.
func maintainability(effort, cyclomatic, loc float64) float64 {
	mi := 171 - 3.42*math.Log(effort) - 0.23*math.Log(cyclomatic) - 16.2*math.Log(loc)
	if math.IsNaN(mi) || mi > schema.MaxMaintainability {
		return schema.MaxMaintainability
	}
	return mi
}

func percentify(value, limit float64) float64 {
	if limit == 0 {
		return 0
	}
	return value / limit * 100
}
