// Package polynomial implements the real-coefficient polynomial algebra used by
// the tree evaluator: arithmetic, derivatives, integration, root finding and
// local extrema.
//
// A Polynomial is an immutable value. Coefficients are stored in ascending
// order of power, so New(2, 1) is 2 + x. Every operation returns a new
// Polynomial and never modifies its receiver or arguments.
package polynomial

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Polynomial is an ordered coefficient vector c0 + c1·x + … + cn·xⁿ.
type Polynomial struct {
	coeffs []float64
}

// New returns the polynomial with the given coefficients in ascending order of
// power. Calling New without coefficients yields the zero polynomial [0].
func New(coeffs ...float64) Polynomial {
	if len(coeffs) == 0 {
		return Polynomial{coeffs: []float64{0}}
	}
	return Polynomial{coeffs: append([]float64(nil), coeffs...)}
}

// Coefficients returns a copy of the coefficient vector.
func (p Polynomial) Coefficients() []float64 {
	if len(p.coeffs) == 0 {
		return []float64{0}
	}
	return append([]float64(nil), p.coeffs...)
}

// Len is the number of stored coefficients, including trailing zeros.
func (p Polynomial) Len() int {
	return max(len(p.coeffs), 1)
}

// Degree is the index of the highest non-zero coefficient. Constant and zero
// polynomials have degree 0.
func (p Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i > 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return 0
}

// IsFinite reports whether no coefficient is NaN or ±Inf.
func (p Polynomial) IsFinite() bool {
	if floats.HasNaN(p.coeffs) {
		return false
	}
	for _, c := range p.coeffs {
		if math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Evaluate computes p(x) using Horner's scheme.
func (p Polynomial) Evaluate(x float64) float64 {
	var y float64
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		y = y*x + p.coeffs[i]
	}
	return y
}

// Add returns p + q. The result has as many coefficients as the longer operand.
func (p Polynomial) Add(q Polynomial) Polynomial {
	a, b := p.Coefficients(), q.Coefficients()
	if len(a) < len(b) {
		a, b = b, a
	}
	floats.Add(a[:len(b)], b)
	return Polynomial{coeffs: a}
}

// Negate returns -p.
func (p Polynomial) Negate() Polynomial {
	c := p.Coefficients()
	floats.Scale(-1, c)
	return Polynomial{coeffs: c}
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Negate())
}

// Mul returns p · q, the convolution of both coefficient vectors.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	a, b := p.Coefficients(), q.Coefficients()
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		floats.AddScaled(out[i:i+len(b)], x, b)
	}
	return Polynomial{coeffs: out}
}

// Derivative returns dp/dx. The derivative of a constant is [0].
func (p Polynomial) Derivative() Polynomial {
	c := p.Coefficients()
	if len(c) == 1 {
		return Polynomial{coeffs: []float64{0}}
	}
	out := make([]float64, len(c)-1)
	for i := range out {
		out[i] = c[i+1] * float64(i+1)
	}
	return Polynomial{coeffs: out}
}

// NthDerivative applies Derivative n times. n <= 0 returns a copy of p.
func (p Polynomial) NthDerivative(n int) Polynomial {
	out := New(p.Coefficients()...)
	for range n {
		out = out.Derivative()
	}
	return out
}

// Integral returns the indefinite integral of p with a zero constant of
// integration.
func (p Polynomial) Integral() Polynomial {
	c := p.Coefficients()
	out := make([]float64, len(c)+1)
	for i, x := range c {
		out[i+1] = x / float64(i+1)
	}
	return Polynomial{coeffs: out}
}

// Equal reports whether both polynomials store the same coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	return floats.Equal(p.Coefficients(), q.Coefficients())
}

func (p Polynomial) String() string {
	var sb strings.Builder
	for i, c := range p.Coefficients() {
		if i > 0 {
			sb.WriteString(" + ")
		}
		switch i {
		case 0:
			fmt.Fprintf(&sb, "%g", c)
		case 1:
			fmt.Fprintf(&sb, "%g·x", c)
		default:
			fmt.Fprintf(&sb, "%g·x^%d", c, i)
		}
	}
	return sb.String()
}
