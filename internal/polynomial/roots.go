package polynomial

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNumerical is the parent of every numerical failure in this package.
	ErrNumerical = errors.New("numerical failure")

	ErrNotFinite     = fmt.Errorf("%w: polynomial has NaN or infinite coefficients", ErrNumerical)
	ErrNoConvergence = fmt.Errorf("%w: root finding did not converge", ErrNumerical)
	ErrOverflow      = fmt.Errorf("%w: roots overflow float64", ErrNumerical)
)

// realTolerance bounds the relative imaginary part below which a root is
// treated as real when looking for critical points.
const realTolerance = 1e-9

// Roots returns the complex roots of p sorted by real part, then imaginary
// part. Polynomials of degree 0 have no roots and yield nil.
func (p Polynomial) Roots() ([]complex128, error) {
	if !p.IsFinite() {
		return nil, ErrNotFinite
	}

	c := p.Coefficients()[:p.Degree()+1]

	var roots []complex128
	switch len(c) - 1 {
	case 0:
		return nil, nil
	case 1:
		roots = []complex128{complex(-c[0]/c[1], 0)}
	case 2:
		roots = quadraticRoots(c[2], c[1], c[0])
	default:
		var err error
		roots, err = companionRoots(c)
		if err != nil {
			return nil, err
		}
	}

	// Finite coefficients can still produce roots beyond float64 range,
	// e.g. -c0/c1 with a tiny c1 or an infinite discriminant.
	for _, r := range roots {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return nil, ErrOverflow
		}
	}

	slices.SortFunc(roots, func(a, b complex128) int {
		return cmp.Or(cmp.Compare(real(a), real(b)), cmp.Compare(imag(a), imag(b)))
	})
	return roots, nil
}

// quadraticRoots solves a·x² + b·x + c = 0 avoiding cancellation between b
// and the square root of the discriminant.
func quadraticRoots(a, b, c float64) []complex128 {
	disc := b*b - 4*a*c
	if disc < 0 {
		re := -b / (2 * a)
		im := math.Abs(math.Sqrt(-disc) / (2 * a))
		return []complex128{complex(re, -im), complex(re, im)}
	}

	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		return []complex128{0, 0}
	}
	return []complex128{complex(q/a, 0), complex(c/q, 0)}
}

// companionRoots finds the roots as eigenvalues of the companion matrix of the
// monic polynomial c/c[n].
func companionRoots(c []float64) ([]complex128, error) {
	n := len(c) - 1
	lead := c[n]

	m := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		m.Set(i, i-1, 1)
	}
	for i := range n {
		m.Set(i, n-1, -c[i]/lead)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}

	roots := eig.Values(nil)
	for _, r := range roots {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return nil, ErrNoConvergence
		}
	}
	return roots, nil
}

// Minima returns the real critical points of p at which the second derivative
// is positive. It returns nil when there are none.
func (p Polynomial) Minima() ([]float64, error) {
	return p.extrema(func(curvature float64) bool { return curvature > 0 })
}

// Maxima returns the real critical points of p at which the second derivative
// is negative. It returns nil when there are none.
func (p Polynomial) Maxima() ([]float64, error) {
	return p.extrema(func(curvature float64) bool { return curvature < 0 })
}

func (p Polynomial) extrema(keep func(curvature float64) bool) ([]float64, error) {
	if !p.IsFinite() {
		return nil, ErrNotFinite
	}

	critical, err := p.Derivative().Roots()
	if err != nil {
		return nil, err
	}

	second := p.NthDerivative(2)

	var out []float64
	for _, r := range critical {
		if math.Abs(imag(r)) > realTolerance*max(1, math.Abs(real(r))) {
			continue
		}
		x := real(r)
		if len(out) > 0 && out[len(out)-1] == x {
			continue
		}
		if keep(second.Evaluate(x)) {
			out = append(out, x)
		}
	}
	return out, nil
}
