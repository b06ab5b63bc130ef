package bonus

import "github.com/napolitain/solver-wos/internal/models"

// Game constants for the construction bonuses
const (
	// SkillSpeedPerLevel is the speed bonus (%) granted per Zinman skill level
	SkillSpeedPerLevel = 3.0

	// PresidentSpeed and VicePresidentSpeed are the flat speed bonuses (%) of the state titles
	PresidentSpeed     = 10.0
	VicePresidentSpeed = 10.0

	// MaxSkillLevel and MaxPetLevel bound the tiered bonuses
	MaxSkillLevel = 5
	MaxPetLevel   = 5
)

// skillCostMultiplier is indexed by Zinman skill level
var skillCostMultiplier = [MaxSkillLevel + 1]float64{1.00, 0.97, 0.94, 0.91, 0.88, 0.85}

// petSpeedPercent is indexed by pet skill level (0 = no pet)
var petSpeedPercent = [MaxPetLevel + 1]float64{0, 5, 7, 9, 12, 15}

// SkillCostMultiplier returns the cost factor of a skill level
func SkillCostMultiplier(level int) float64 {
	return skillCostMultiplier[level]
}

// PetSpeedPercent returns the speed bonus of a pet level
func PetSpeedPercent(level int) float64 {
	return petSpeedPercent[level]
}

// Resolve turns a selection into one additive speed bonus and one cost
// multiplier. Only the skill affects cost. The selection must already be
// validated; out of range levels panic.
func Resolve(sel models.BonusSelection) models.Bonus {
	speed := sel.BaseSpeedPercent +
		float64(sel.SkillLevel)*SkillSpeedPerLevel +
		PetSpeedPercent(sel.PetLevel)
	if sel.President {
		speed += PresidentSpeed
	}
	if sel.VicePresident {
		speed += VicePresidentSpeed
	}

	return models.Bonus{
		SpeedPercent:   speed,
		CostMultiplier: SkillCostMultiplier(sel.SkillLevel),
	}
}

// Source is one line of a bonus breakdown
type Source struct {
	Name         string
	SpeedPercent float64
	CostPercent  float64 // cost reduction in percent
	Active       bool
}

// Breakdown lists each bonus source and what it contributes
func Breakdown(sel models.BonusSelection) []Source {
	return []Source{
		{
			Name:         "Zinman skill",
			SpeedPercent: float64(sel.SkillLevel) * SkillSpeedPerLevel,
			CostPercent:  (1 - SkillCostMultiplier(sel.SkillLevel)) * 100,
			Active:       sel.SkillLevel > 0,
		},
		{Name: "Pet skill", SpeedPercent: PetSpeedPercent(sel.PetLevel), Active: sel.PetLevel > 0},
		{Name: "Base construction", SpeedPercent: sel.BaseSpeedPercent, Active: sel.BaseSpeedPercent > 0},
		{Name: "President", SpeedPercent: PresidentSpeed, Active: sel.President},
		{Name: "Vice President", SpeedPercent: VicePresidentSpeed, Active: sel.VicePresident},
	}
}
