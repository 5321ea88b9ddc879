package polyeval

import (
	"fmt"

	"chi-reactor-workshop/internal/polynomial"
)

// Result holds a reduced polynomial and everything derived from it.
type Result struct {
	Roots            []complex128
	Minima           []float64
	Maxima           []float64
	Polynomial       polynomial.Polynomial
	FirstDerivative  polynomial.Polynomial
	SecondDerivative polynomial.Polynomial
	Integration      polynomial.Polynomial
}

// Reduce folds the tree rooted at step into a single polynomial. Operands are
// never modified.
func Reduce(step *Step) (polynomial.Polynomial, error) {
	return reduce(step, map[*Step]struct{}{})
}

func reduce(step *Step, path map[*Step]struct{}) (polynomial.Polynomial, error) {
	if step == nil {
		return polynomial.Polynomial{}, fmt.Errorf("%w: step is missing", ErrInvalidStep)
	}
	if _, seen := path[step]; seen {
		return polynomial.Polynomial{}, ErrCyclicStep
	}

	switch step.Operation {
	case Literal:
		if step.Literal == nil {
			return polynomial.Polynomial{}, fmt.Errorf("%w: literal polynomial is missing", ErrInvalidStep)
		}
		return *step.Literal, nil
	case Summation, Subtraction, Multiplication:
		if step.Operand1 == nil || step.Operand2 == nil {
			return polynomial.Polynomial{}, fmt.Errorf("%w: %s operands are missing", ErrInvalidStep, step.Operation)
		}

		path[step] = struct{}{}
		defer delete(path, step)

		p1, err := reduce(step.Operand1, path)
		if err != nil {
			return polynomial.Polynomial{}, err
		}
		p2, err := reduce(step.Operand2, path)
		if err != nil {
			return polynomial.Polynomial{}, err
		}

		switch step.Operation {
		case Summation:
			return p1.Add(p2), nil
		case Subtraction:
			return p1.Add(p2.Negate()), nil
		default:
			return p1.Mul(p2), nil
		}
	default:
		return polynomial.Polynomial{}, fmt.Errorf("%w: invalid operation", ErrInvalidStep)
	}
}

// Evaluate reduces step and computes roots, extrema, the first and second
// derivatives and the integral of the result.
func Evaluate(step *Step) (Result, error) {
	p, err := Reduce(step)
	if err != nil {
		return Result{}, err
	}

	roots, err := p.Roots()
	if err != nil {
		return Result{}, fmt.Errorf("%w: roots: %w", ErrEvaluationFailed, err)
	}
	minima, err := p.Minima()
	if err != nil {
		return Result{}, fmt.Errorf("%w: minima: %w", ErrEvaluationFailed, err)
	}
	maxima, err := p.Maxima()
	if err != nil {
		return Result{}, fmt.Errorf("%w: maxima: %w", ErrEvaluationFailed, err)
	}

	return Result{
		Roots:            roots,
		Minima:           minima,
		Maxima:           maxima,
		Polynomial:       p,
		FirstDerivative:  p.Derivative(),
		SecondDerivative: p.NthDerivative(2),
		Integration:      p.Integral(),
	}, nil
}
