package costfunction

import (
	"github.com/ondravit/VeloPath/pkg"
)

type EdgeAttributes interface {
	GetLength() float64
	GetCondition() pkg.RoadCondition
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
	// MinMultiplier. lower bound of GetWeight(e)/e.GetLength() over every edge, used by the a* heuristic.
	MinMultiplier() float64
}

// ConditionMultiplier. cost per meter of a road in the given condition.
type ConditionMultiplier func(condition pkg.RoadCondition) float64

// DefaultMultiplier. current survey table.
func DefaultMultiplier(condition pkg.RoadCondition) float64 {
	switch condition {
	case pkg.EXCELLENT:
		return 1.00
	case pkg.GOOD:
		return 1.10
	case pkg.SATISFACTORY:
		return 1.20
	case pkg.UNSATISFACTORY:
		return 1.45
	case pkg.EMERGENCY:
		return 1.90
	case pkg.SUPEREMERGENCY:
		return 2.50
	default:
		return 1.35
	}
}

// LegacyMultiplier. table of the first dataset version, harsher on bad roads.
func LegacyMultiplier(condition pkg.RoadCondition) float64 {
	switch condition {
	case pkg.EXCELLENT:
		return 1.0
	case pkg.GOOD:
		return 1.3
	case pkg.SATISFACTORY:
		return 1.5
	case pkg.UNSATISFACTORY:
		return 2.0
	case pkg.EMERGENCY:
		return 2.5
	case pkg.SUPEREMERGENCY:
		return 3.0
	default:
		return 1.75
	}
}

const (
	DEFAULT_TABLE = "default"
	LEGACY_TABLE  = "legacy"
)

// MultiplierByName. "legacy" selects LegacyMultiplier, anything else DefaultMultiplier.
func MultiplierByName(name string) ConditionMultiplier {
	if name == LEGACY_TABLE {
		return LegacyMultiplier
	}
	return DefaultMultiplier
}

func minOver(multiplier ConditionMultiplier) float64 {
	m := multiplier(pkg.Conditions[0])
	for _, c := range pkg.Conditions[1:] {
		m = min(m, multiplier(c))
	}
	return max(m, 0)
}
