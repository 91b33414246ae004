package server

import (
	"math"
	"time"
)

// Step advances the simulation one tick: integrate buffered input into
// positions, apply the attacker-reported aim as the facing angle, resolve
// collisions, and refresh derived aggregates. Dead players do not move.
func (w *World) Step(now time.Time, dt float64) {
	for _, player := range w.players {
		if player.isDead {
			continue
		}

		dx, dy := player.moveVector()
		if length := math.Hypot(dx, dy); length != 0 {
			dx /= length
			dy /= length
			player.X += dx * moveSpeed * dt
			player.Y += dy * moveSpeed * dt
		}

		player.X = clamp(player.X, playerRadius, w.cfg.WorldWidth-playerRadius)
		player.Y = clamp(player.Y, playerRadius, w.cfg.WorldHeight-playerRadius)

		// No smoothing server-side; interpolation is the client's concern.
		player.Angle = player.aimAngle
	}

	w.resolvePlayerCollisions()
	w.resolvePlayerResourceCollisions()
	w.updateTopKiller()
}
