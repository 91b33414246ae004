package server

import "math"

// xpToNextAge returns the XP needed to advance from the given age. Ages
// beyond the table continue the curve exponentially from its last entry.
func xpToNextAge(age int) float64 {
	if required, ok := ageXPRequirements[age]; ok {
		return required
	}

	lastAge := 0
	for tableAge := range ageXPRequirements {
		if tableAge > lastAge {
			lastAge = tableAge
		}
	}
	return math.Floor(ageXPRequirements[lastAge] * math.Pow(fallbackXPMultiplier, float64(age-lastAge)))
}

// grantXP adds XP and resolves any resulting age-ups. The loop carries
// excess XP across thresholds, so one large grant can advance several ages
// and splitting a grant in two lands on the same final state. Each age-up
// restores full health.
func (w *World) grantXP(player *playerState, amount float64) {
	player.XP += amount
	for player.XP >= player.XPToNextAge {
		player.Age++
		player.XP -= player.XPToNextAge
		player.XPToNextAge = xpToNextAge(player.Age)
		player.Health = maxHealth
		w.logger.Infow("player aged up", "player", player.Name, "age", player.Age)
	}
}
