package costfunction

import (
	"github.com/ondravit/VeloPath/pkg"
	"github.com/ondravit/VeloPath/pkg/util"
)

// ConditionCostFunction. cost = length * multiplier(condition)
type ConditionCostFunction struct {
	multiplier    ConditionMultiplier
	minMultiplier float64
}

func NewConditionCostFunction(multiplier ConditionMultiplier) *ConditionCostFunction {
	return &ConditionCostFunction{
		multiplier:    multiplier,
		minMultiplier: minOver(multiplier),
	}
}

func (cf *ConditionCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength() * cf.multiplier(e.GetCondition())
}

func (cf *ConditionCostFunction) MinMultiplier() float64 {
	return cf.minMultiplier
}

// DistanceCostFunction. cost = length, ignores road condition.
type DistanceCostFunction struct{}

func NewDistanceCostFunction() *DistanceCostFunction {
	return &DistanceCostFunction{}
}

func (cf *DistanceCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength()
}

func (cf *DistanceCostFunction) MinMultiplier() float64 {
	return 1
}

// BlendedCostFunction mixes pure distance with a sharpened condition penalty.
//
//	effective(c) = (1-q)*1 + q*(1 + (base(c)-1)*sensitivity)
//
// q=0 routes by distance only, q=1 by condition only.
type BlendedCostFunction struct {
	quality       float64
	sensitivity   float64
	base          ConditionMultiplier
	minMultiplier float64
}

// NewBlendedCost. quality is clamped to [0,1].
func NewBlendedCost(quality, sensitivity float64, base ConditionMultiplier) *BlendedCostFunction {
	cf := &BlendedCostFunction{
		quality:     util.Clamp(quality, 0, 1),
		sensitivity: sensitivity,
		base:        base,
	}
	cf.minMultiplier = minOver(cf.Multiplier)
	return cf
}

func (cf *BlendedCostFunction) Multiplier(c pkg.RoadCondition) float64 {
	sharpened := 1 + (cf.base(c)-1)*cf.sensitivity
	return (1-cf.quality)*1 + cf.quality*sharpened
}

func (cf *BlendedCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength() * cf.Multiplier(e.GetCondition())
}

func (cf *BlendedCostFunction) MinMultiplier() float64 {
	return cf.minMultiplier
}

func (cf *BlendedCostFunction) GetQuality() float64 {
	return cf.quality
}
