package polyeval

import (
	"chi-reactor-workshop/internal/handlers"
	"chi-reactor-workshop/internal/polynomial"
)

// StepRequest is the JSON form of a Step.
type StepRequest struct {
	Operation                   string       `json:"operation"`
	Operand1                    *StepRequest `json:"operand1,omitempty"`
	Operand2                    *StepRequest `json:"operand2,omitempty"`
	LiteralPolynomialParameters []float64    `json:"literal_polynomial_parameters,omitempty"`
}

// EvaluateRequest is the JSON body for POST /polynomial/*.
type EvaluateRequest struct {
	Steps []*StepRequest `json:"steps"`
}

// ComplexResponse is the JSON form of a complex root.
type ComplexResponse struct {
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
}

// ResultResponse is the JSON form of one Result. Polynomials are reported as
// coefficient vectors in ascending order of power.
type ResultResponse struct {
	Roots                                []ComplexResponse `json:"roots"`
	Minima                               []float64         `json:"minima"`
	Maxima                               []float64         `json:"maxima"`
	PolynomialParameters                 []float64         `json:"polynomial_parameters"`
	FirstDerivativePolynomialParameters  []float64         `json:"first_derivative_polynomial_parameters"`
	SecondDerivativePolynomialParameters []float64         `json:"second_derivative_polynomial_parameters"`
	IntegrationPolynomialParameters      []float64         `json:"integration_polynomial_parameters"`
}

// EvaluateResponse is the JSON response of both evaluation endpoints. The
// reactive variant streams the same document.
type EvaluateResponse struct {
	Results []ResultResponse `json:"results"`
	handlers.Execution
}

// toSteps maps a request body to evaluation trees. An unknown operation is
// kept as OperationUnknown and an empty coefficient list as a missing literal,
// so the evaluator reports both as invalid steps.
func toSteps(req EvaluateRequest) []*Step {
	steps := make([]*Step, 0, len(req.Steps))
	for _, s := range req.Steps {
		steps = append(steps, toStep(s))
	}
	return steps
}

func toStep(s *StepRequest) *Step {
	if s == nil {
		return nil
	}

	op, _ := ParseOperation(s.Operation)
	step := &Step{
		Operation: op,
		Operand1:  toStep(s.Operand1),
		Operand2:  toStep(s.Operand2),
	}
	if len(s.LiteralPolynomialParameters) > 0 {
		p := polynomial.New(s.LiteralPolynomialParameters...)
		step.Literal = &p
	}
	return step
}

func toResponse(r Result) ResultResponse {
	roots := make([]ComplexResponse, 0, len(r.Roots))
	for _, c := range r.Roots {
		roots = append(roots, ComplexResponse{Real: real(c), Imaginary: imag(c)})
	}

	return ResultResponse{
		Roots:                                roots,
		Minima:                               orEmpty(r.Minima),
		Maxima:                               orEmpty(r.Maxima),
		PolynomialParameters:                 r.Polynomial.Coefficients(),
		FirstDerivativePolynomialParameters:  r.FirstDerivative.Coefficients(),
		SecondDerivativePolynomialParameters: r.SecondDerivative.Coefficients(),
		IntegrationPolynomialParameters:      r.Integration.Coefficients(),
	}
}

func orEmpty(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}
