package polyeval

import (
	"chi-reactor-workshop/internal/validation"
)

// Limits bounds the size of an evaluation request.
type Limits struct {
	MaxDegree    int
	MaxTreeDepth int
	MaxCount     int
	// MaxReducedDegree bounds the degree a tree can reach once reduced.
	// Zero disables the check.
	MaxReducedDegree int
}

// Validate checks a whole batch before any polynomial algebra runs: the
// number of trees, the depth of every node (the root is at depth 0), the
// degree of every literal and the degree each tree can reduce to. Literal
// nodes are leaves and are not descended into. Nil steps are left for the
// evaluator to report.
func (l Limits) Validate(steps []*Step) error {
	if err := validation.CheckLimit("evaluation step count", len(steps), l.MaxCount); err != nil {
		return err
	}

	for _, step := range steps {
		degree, err := l.validateStep(step, 0, map[*Step]struct{}{})
		if err != nil {
			return err
		}
		if l.MaxReducedDegree > 0 {
			if err := validation.CheckLimit("reduced polynomial degree", degree, l.MaxReducedDegree); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateStep walks the tree depth first and returns an upper bound of the
// degree of its reduction. path holds the ancestors of step so that shared
// subtrees are accepted and cycles are not.
func (l Limits) validateStep(step *Step, depth int, path map[*Step]struct{}) (int, error) {
	if step == nil {
		return 0, nil
	}
	if _, seen := path[step]; seen {
		return 0, ErrCyclicStep
	}
	if err := validation.CheckLimit("evaluation step tree depth", depth, l.MaxTreeDepth); err != nil {
		return 0, err
	}

	if step.Operation == Literal {
		if step.Literal == nil {
			return 0, nil
		}
		degree := step.Literal.Degree()
		return degree, validation.CheckLimit("polynomial degree", degree, l.MaxDegree)
	}

	path[step] = struct{}{}
	defer delete(path, step)

	d1, err := l.validateStep(step.Operand1, depth+1, path)
	if err != nil {
		return 0, err
	}
	d2, err := l.validateStep(step.Operand2, depth+1, path)
	if err != nil {
		return 0, err
	}

	if step.Operation == Multiplication {
		return d1 + d2, nil
	}
	return max(d1, d2), nil
}
