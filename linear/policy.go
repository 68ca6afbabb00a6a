package linear

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/unigrad/pkg/errors"
)

// ConvergencePolicy は勾配降下法の停止条件
type ConvergencePolicy int

const (
	// CostPolicy はコストが減少しなくなった時点で停止する: cost(θ') >= cost(θ)
	CostPolicy ConvergencePolicy = iota
	// DeltaPolicy は各パラメータの更新幅が許容誤差以下になった時点で停止する
	DeltaPolicy
)

// String returns the name accepted by ParsePolicy.
func (p ConvergencePolicy) String() string {
	switch p {
	case CostPolicy:
		return "cost"
	case DeltaPolicy:
		return "delta"
	default:
		return fmt.Sprintf("ConvergencePolicy(%d)", int(p))
	}
}

// ParsePolicy は "cost" または "delta" を ConvergencePolicy に変換する
func ParsePolicy(s string) (ConvergencePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cost":
		return CostPolicy, nil
	case "delta":
		return DeltaPolicy, nil
	default:
		return CostPolicy, errors.Newf("unknown convergence policy %q (want \"cost\" or \"delta\")", s)
	}
}

func (p ConvergencePolicy) valid() bool {
	return p == CostPolicy || p == DeltaPolicy
}

// step は一回の更新の前後の状態
type step struct {
	prev, next         Theta
	prevCost, nextCost float64
}

// converged reports whether the descent should stop after s.
func (p ConvergencePolicy) converged(s step, tol float64) bool {
	switch p {
	case DeltaPolicy:
		return math.Abs(s.next.Intercept-s.prev.Intercept) <= tol &&
			math.Abs(s.next.Slope-s.prev.Slope) <= tol
	default:
		return s.nextCost >= s.prevCost
	}
}
