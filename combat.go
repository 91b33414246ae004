package server

import (
	"math"
	"time"
)

// ResolveSwing resolves one melee action for the given attacker: cooldown
// gate, then an arc-and-range sweep over every other living player and every
// resource node. All rejection paths are silent no-ops; a swing never errors
// back to the client.
func (w *World) ResolveSwing(attackerID string, now time.Time) {
	attacker, ok := w.players[attackerID]
	if !ok || attacker.isDead {
		return
	}

	stats, ok := WeaponByName(attacker.Weapon)
	if !ok {
		// Bad client data. Reset to the safe default and drop this swing.
		w.logger.Warnw("invalid equipped weapon, resetting to hands",
			"player", attacker.Name, "weapon", attacker.Weapon)
		attacker.Weapon = defaultWeapon
		return
	}

	cooldown := time.Duration(float64(baseSwingCooldown) / stats.Speed)
	if now.Sub(attacker.lastSwing) < cooldown {
		return
	}
	attacker.lastSwing = now
	w.queueEvent(nil, swingStartedMessage{Type: msgSwingStarted, ID: attackerID})

	w.hitPlayers(attacker, stats, now)
	w.hitResources(attacker, stats, now)
}

// hitPlayers applies damage and knockback to every living player inside the
// weapon's arc and reach. One swing can connect with several targets.
func (w *World) hitPlayers(attacker *playerState, stats WeaponStats, now time.Time) {
	for id, target := range w.players {
		if id == attacker.ID || target.isDead {
			continue
		}

		dx := target.X - attacker.X
		dy := target.Y - attacker.Y
		if math.Hypot(dx, dy) > stats.Reach+playerRadius {
			continue
		}

		angleToTarget := math.Atan2(dy, dx)
		if math.Abs(shortestAngleDiff(attacker.Angle, angleToTarget)) > arcHalfAngle {
			continue
		}

		target.Health -= stats.Damage
		if target.Health <= 0 {
			target.Health = 0
			target.isDead = true
			target.deathTime = now
			attacker.Kills++
			w.logger.Infow("player defeated", "target", target.Name, "attacker", attacker.Name)
			w.queueEvent(nil, playerDiedMessage{Type: msgPlayerDied, ID: id})
		}

		// Knockback lands even on a killing blow so the corpse slides.
		target.X += math.Cos(angleToTarget) * stats.Knockback
		target.Y += math.Sin(angleToTarget) * stats.Knockback
		target.X = clamp(target.X, playerRadius, w.cfg.WorldWidth-playerRadius)
		target.Y = clamp(target.Y, playerRadius, w.cfg.WorldHeight-playerRadius)
	}
}

// hitResources credits the attacker for every node inside the arc, subject
// to the per-node harvest cooldown. The cooldown is per resource, not per
// attacker: a node cannot be drained faster than intended no matter how many
// players gang up on it. A zero cooldown collects on every qualifying swing.
func (w *World) hitResources(attacker *playerState, stats WeaponStats, now time.Time) {
	harvestCooldown := time.Duration(w.cfg.HarvestCooldownMs) * time.Millisecond

	for id, res := range w.resources {
		dx := res.X - attacker.X
		dy := res.Y - attacker.Y
		if math.Hypot(dx, dy) > stats.Reach+res.HitRadius {
			continue
		}

		angleToResource := math.Atan2(dy, dx)
		if math.Abs(shortestAngleDiff(attacker.Angle, angleToResource)) > arcHalfAngle {
			continue
		}

		if harvestCooldown > 0 && now.Sub(res.lastHarvest) < harvestCooldown {
			continue
		}
		res.lastHarvest = now

		props := resourcePropertiesByType[res.Type]
		attacker.Inventory.add(res.Type, props.CollectionAmount)
		w.grantXP(attacker, props.XPReward)

		w.queueEvent(nil, resourceWiggledMessage{
			Type:       msgResourceWiggled,
			ResourceID: id,
			Direction:  angleToResource,
		})
	}
}
