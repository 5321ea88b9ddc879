// Package polyeval reduces binary expression trees of polynomials to a single
// polynomial and derives its roots, extrema, derivatives and integral.
package polyeval

import (
	"errors"
	"fmt"
	"strings"

	"chi-reactor-workshop/internal/polynomial"
)

var (
	// ErrInvalidStep reports a structurally malformed tree.
	ErrInvalidStep = errors.New("invalid evaluation step")
	// ErrCyclicStep reports a step reachable from itself.
	ErrCyclicStep = fmt.Errorf("%w: step tree contains a cycle", ErrInvalidStep)
	// ErrEvaluationFailed reports a well-formed tree whose values the
	// numerical routines cannot handle.
	ErrEvaluationFailed = errors.New("polynomial evaluation failed")
	// ErrCancelled reports a batch abandoned by its caller.
	ErrCancelled = errors.New("polynomial evaluation cancelled")
)

// Operation is the kind of a tree node.
type Operation int

const (
	OperationUnknown Operation = iota
	Literal
	Summation
	Subtraction
	Multiplication
)

var operationNames = map[string]Operation{
	"literal":        Literal,
	"summation":      Summation,
	"subtraction":    Subtraction,
	"multiplication": Multiplication,
}

// ParseOperation looks an operation up by name, ignoring case.
func ParseOperation(s string) (Operation, bool) {
	op, ok := operationNames[strings.ToLower(s)]
	return op, ok
}

func (o Operation) String() string {
	switch o {
	case Literal:
		return "literal"
	case Summation:
		return "summation"
	case Subtraction:
		return "subtraction"
	case Multiplication:
		return "multiplication"
	default:
		return "unknown"
	}
}

// Step is one node of an evaluation tree. Literal steps carry a polynomial;
// every other operation combines its two operands.
type Step struct {
	Operation Operation
	Operand1  *Step
	Operand2  *Step
	Literal   *polynomial.Polynomial
}

// LiteralStep returns a leaf holding the polynomial with the given coefficients.
func LiteralStep(coeffs ...float64) *Step {
	p := polynomial.New(coeffs...)
	return &Step{Operation: Literal, Literal: &p}
}

// BinaryStep returns a node combining two operands with op.
func BinaryStep(op Operation, operand1, operand2 *Step) *Step {
	return &Step{Operation: op, Operand1: operand1, Operand2: operand2}
}
