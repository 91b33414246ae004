package server

import "math"

// resolvePlayerCollisions pushes overlapping living players apart, half the
// overlap each, in a single pass over unordered pairs. A pass runs every
// tick, so residual overlap from 3+-body clusters corrects itself within a
// few ticks.
func (w *World) resolvePlayerCollisions() {
	states := make([]*playerState, 0, len(w.players))
	for _, player := range w.players {
		if !player.isDead {
			states = append(states, player)
		}
	}

	for i := 0; i < len(states); i++ {
		for j := i + 1; j < len(states); j++ {
			p1 := states[i]
			p2 := states[j]

			dx := p2.X - p1.X
			dy := p2.Y - p1.Y
			dist := math.Hypot(dx, dy)

			minDist := playerRadius * 2
			// dist == 0 leaves the push angle undefined; spawn placement makes
			// exact coincidence vanishingly rare and the next tick clears it.
			if dist >= minDist || dist == 0 {
				continue
			}

			overlap := minDist - dist
			angle := math.Atan2(dy, dx)
			moveX := math.Cos(angle) * overlap / 2
			moveY := math.Sin(angle) * overlap / 2

			p1.X -= moveX
			p1.Y -= moveY
			p2.X += moveX
			p2.Y += moveY

			p1.X = clamp(p1.X, playerRadius, w.cfg.WorldWidth-playerRadius)
			p1.Y = clamp(p1.Y, playerRadius, w.cfg.WorldHeight-playerRadius)
			p2.X = clamp(p2.X, playerRadius, w.cfg.WorldWidth-playerRadius)
			p2.Y = clamp(p2.Y, playerRadius, w.cfg.WorldHeight-playerRadius)
		}
	}
}

// resolvePlayerResourceCollisions pushes players out of resource collision
// circles. Resources never move. The collision radius is used here, not the
// hit radius: a node can be struck from further out than it blocks movement.
func (w *World) resolvePlayerResourceCollisions() {
	for _, player := range w.players {
		if player.isDead {
			continue
		}
		for _, res := range w.resources {
			dx := player.X - res.X
			dy := player.Y - res.Y
			dist := math.Hypot(dx, dy)

			minDist := playerRadius + res.Radius
			if dist >= minDist || dist == 0 {
				continue
			}

			overlap := minDist - dist
			angle := math.Atan2(dy, dx)
			player.X += math.Cos(angle) * overlap
			player.Y += math.Sin(angle) * overlap

			player.X = clamp(player.X, playerRadius, w.cfg.WorldWidth-playerRadius)
			player.Y = clamp(player.Y, playerRadius, w.cfg.WorldHeight-playerRadius)
		}
	}
}
