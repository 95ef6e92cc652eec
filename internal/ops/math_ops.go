package ops

import (
	"github.com/born-ml/lazygraph/internal/tensor"
)

// registerMathOps adds the arithmetic operators to the registry.
func (r *Registry) registerMathOps() {
	r.Register(Entry{Kind: Add, Forward: evalAdd, Reversed: evalReversedAdd})
	r.Register(Entry{Kind: Sub, Forward: evalSub, Reversed: evalReversedSub})
	r.Register(Entry{Kind: Mul, Forward: evalMul, Reversed: evalReversedMul})
	r.Register(Entry{Kind: Div, Forward: evalDiv, Reversed: evalReversedDiv})
	r.Register(Entry{Kind: Dot, Forward: evalDot})
}

func evalAdd(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Add, len(operands), 2); err != nil {
		return nil, err
	}
	return b.Add(operands[0], operands[1])
}

func evalReversedAdd(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Add, len(operands), 2); err != nil {
		return nil, err
	}
	return evalAdd(b, []*tensor.Tensor{operands[1], operands[0]})
}

func evalSub(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Sub, len(operands), 2); err != nil {
		return nil, err
	}
	return b.Sub(operands[0], operands[1])
}

// evalReversedSub computes operands[1] - operands[0] as -operands[0] + operands[1].
func evalReversedSub(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Sub, len(operands), 2); err != nil {
		return nil, err
	}
	return b.Add(b.Neg(operands[0]), operands[1])
}

func evalMul(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Mul, len(operands), 2); err != nil {
		return nil, err
	}
	return b.Mul(operands[0], operands[1])
}

func evalReversedMul(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Mul, len(operands), 2); err != nil {
		return nil, err
	}
	return evalMul(b, []*tensor.Tensor{operands[1], operands[0]})
}

func evalDiv(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Div, len(operands), 2); err != nil {
		return nil, err
	}
	return b.Div(operands[0], operands[1])
}

func evalReversedDiv(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Div, len(operands), 2); err != nil {
		return nil, err
	}
	return evalDiv(b, []*tensor.Tensor{operands[1], operands[0]})
}

func evalDot(b Backend, operands []*tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkArity(Dot, len(operands), 2); err != nil {
		return nil, err
	}
	return b.Dot(operands[0], operands[1])
}
