package budget

import (
	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/model"
)

// Classification thresholds on the spend ratio. Monotonic, non-overlapping,
// inclusive lower bounds.
var (
	ratioHealthy    = decimal.NewFromFloat(0.5)
	ratioStruggling = decimal.NewFromFloat(0.85)
	ratioWilting    = decimal.NewFromInt(1)
	ratioDead       = decimal.NewFromFloat(1.5)
)

// SpendRatio returns spent/effective for classification. A non-positive
// effective budget means any spend is unaffordable; it is reported as nil
// and classified dead.
func SpendRatio(spent, effective decimal.Decimal) *decimal.Decimal {
	if !effective.IsPositive() {
		return nil
	}
	r := spent.Div(effective)
	return &r
}

// ClassifyPlant maps a spend ratio to the plant state. A nil ratio (budget
// exhausted by carry rules, see SpendRatio) is dead.
func ClassifyPlant(ratio *decimal.Decimal) model.PlantState {
	if ratio == nil {
		return model.PlantDead
	}
	switch {
	case ratio.LessThan(ratioHealthy):
		return model.PlantThriving
	case ratio.LessThan(ratioStruggling):
		return model.PlantHealthy
	case ratio.LessThan(ratioWilting):
		return model.PlantStruggling
	case ratio.LessThan(ratioDead):
		return model.PlantWilting
	default:
		return model.PlantDead
	}
}

// PlantForDay is the common path: ratio from today's totals, then classify.
func PlantForDay(spent, effective decimal.Decimal) model.PlantState {
	return ClassifyPlant(SpendRatio(spent, effective))
}
