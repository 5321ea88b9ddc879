// Package arithseq computes sums of arithmetic sequences and exposes them over
// HTTP in an eager ("non-reactive") and a streamed ("reactive") flavour.
package arithseq

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"chi-reactor-workshop/internal/validation"
)

var (
	ErrInvalidCount      = errors.New("count must be 1 or greater")
	ErrUnsupportedMethod = errors.New("unsupported arithmetic sequence method")
)

// Method selects the summation strategy.
type Method int

const (
	MethodUnknown Method = iota
	Exhaustive
	Fast
)

var methodNames = map[string]Method{
	"exhaustive": Exhaustive,
	"fast":       Fast,
}

// ParseMethod looks a method up by name, ignoring case.
func ParseMethod(s string) (Method, bool) {
	m, ok := methodNames[strings.ToLower(s)]
	return m, ok
}

func (m Method) String() string {
	switch m {
	case Exhaustive:
		return "exhaustive"
	case Fast:
		return "fast"
	default:
		return "unknown"
	}
}

// Request describes count sequences sharing the same first term and step.
type Request struct {
	MinValue int32
	Step     int32
	Count    int32
	Method   Method
}

// Result is the sum of the first Count terms of one sequence.
type Result struct {
	MinValue int32
	Step     int32
	Count    int32
	MaxValue int32
	Sum      int32
}

// SumExhaustive adds the terms one by one. Arithmetic wraps on int32
// overflow. Counts below 2 return minValue.
func SumExhaustive(minValue, step, count int32) int32 {
	value, result := minValue, minValue
	for i := int32(1); i < count; i++ {
		value += step
		result += value
	}
	return result
}

// SumFast applies the closed form (2a + (n-1)d)·n/2. The result matches
// SumExhaustive exactly, including on int32 overflow.
func SumFast(minValue, step, count int32) (int32, error) {
	if count < 1 {
		return 0, ErrInvalidCount
	}
	return gaussSum(minValue, step, count), nil
}

// gaussSum halves whichever factor is even in 64 bits, where it is exact, and
// multiplies modulo 2³².
func gaussSum(minValue, step, count int32) int32 {
	n := int64(count)
	span := 2*int64(minValue) + (n-1)*int64(step)
	if n%2 == 0 {
		n /= 2
	} else {
		span /= 2
	}
	return int32(uint32(n) * uint32(span))
}

func (m Method) sumFunc() (func(minValue, step, count int32) int32, error) {
	switch m {
	case Exhaustive:
		return SumExhaustive, nil
	case Fast:
		return gaussSum, nil
	default:
		return nil, ErrUnsupportedMethod
	}
}

// Sequence lazily yields one Result per sequence length 1..req.Count. The
// method and count are checked before the first result is produced.
func Sequence(req Request) (iter.Seq[Result], error) {
	sum, err := req.Method.sumFunc()
	if err != nil {
		return nil, err
	}
	if req.Count < 1 {
		return nil, ErrInvalidCount
	}

	return func(yield func(Result) bool) {
		for n := int32(1); n <= req.Count; n++ {
			r := Result{
				MinValue: req.MinValue,
				Step:     req.Step,
				Count:    n,
				MaxValue: req.MinValue + req.Step*(n-1),
				Sum:      sum(req.MinValue, req.Step, n),
			}
			if !yield(r) {
				return
			}
			// n++ would overflow when Count is MaxInt32.
			if n == req.Count {
				return
			}
		}
	}, nil
}

// Compute materialises every result of Sequence.
func Compute(req Request) ([]Result, error) {
	seq, err := Sequence(req)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Total adds up the sums of seq in 64 bits without retaining the results.
func Total(seq iter.Seq[Result]) int64 {
	var total int64
	for r := range seq {
		total += int64(r.Sum)
	}
	return total
}

// ValidateCount rejects requests for more sequences than max.
func ValidateCount(count int32, max int) error {
	return validation.CheckLimit("arithmetic sequence count", int(count), max)
}
