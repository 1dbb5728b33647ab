package model

// PlantState is the qualitative budget-health signal shown to the user.
// States are ordered from best to worst; the classifier guarantees the state
// never improves as the spend ratio grows.
type PlantState string

const (
	PlantThriving   PlantState = "thriving"
	PlantHealthy    PlantState = "healthy"
	PlantStruggling PlantState = "struggling"
	PlantWilting    PlantState = "wilting"
	PlantDead       PlantState = "dead"
)

// Rank returns the ordinal position of the state, 0 = thriving .. 4 = dead.
func (p PlantState) Rank() int {
	switch p {
	case PlantThriving:
		return 0
	case PlantHealthy:
		return 1
	case PlantStruggling:
		return 2
	case PlantWilting:
		return 3
	default:
		return 4
	}
}

// Emoji returns the display hint for the state.
func (p PlantState) Emoji() string {
	switch p {
	case PlantThriving:
		return "🌳"
	case PlantHealthy:
		return "🌱"
	case PlantStruggling:
		return "🌿"
	case PlantWilting:
		return "🥀"
	default:
		return "☠️"
	}
}
