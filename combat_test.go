package server

import (
	"math"
	"testing"
	"time"
)

func TestSwingDamagesTargetInArc(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	target := addPlayer(w, "target", 590, 500, 0) // 90 units ahead, hands reach 100
	now := time.Now()

	w.ResolveSwing("attacker", now)

	if target.Health != maxHealth-10 {
		t.Fatalf("expected hands to deal 10 damage, health %d", target.Health)
	}
	if target.isDead {
		t.Fatalf("expected target to survive")
	}
	if target.X != 590+40 {
		t.Fatalf("expected knockback to x=630, got %v", target.X)
	}
	if attacker.lastSwing != now {
		t.Fatalf("expected swing timestamp recorded")
	}

	events := w.drainEvents()
	if len(events) != 1 {
		t.Fatalf("expected only a swingStarted event, got %d", len(events))
	}
	started, ok := events[0].payload.(swingStartedMessage)
	if !ok || started.ID != "attacker" {
		t.Fatalf("unexpected first event payload: %+v", events[0].payload)
	}
}

func TestSwingKillsTarget(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	target := addPlayer(w, "target", 590, 500, 0)
	target.Health = 10
	now := time.Now()

	w.ResolveSwing("attacker", now)

	if target.Health != 0 {
		t.Fatalf("expected health clamped to 0, got %d", target.Health)
	}
	if !target.isDead {
		t.Fatalf("expected target marked dead")
	}
	if target.deathTime != now {
		t.Fatalf("expected death time recorded")
	}
	if attacker.Kills != 1 {
		t.Fatalf("expected kill credited, got %d", attacker.Kills)
	}
	// Knockback still applies on the killing blow.
	if target.X != 630 {
		t.Fatalf("expected corpse knocked to x=630, got %v", target.X)
	}

	events := w.drainEvents()
	if len(events) != 2 {
		t.Fatalf("expected swingStarted and playerDied, got %d events", len(events))
	}
	died, ok := events[1].payload.(playerDiedMessage)
	if !ok || died.ID != "target" {
		t.Fatalf("unexpected death payload: %+v", events[1].payload)
	}
}

func TestSwingArcBoundaryIsInclusive(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", 500, 500, 0)
	// Exactly 90 degrees off the facing: on the cone edge, still a hit.
	side := addPlayer(w, "side", 500, 590, 0)

	w.ResolveSwing("attacker", time.Now())

	if side.Health != maxHealth-10 {
		t.Fatalf("expected hit at exactly the arc boundary, health %d", side.Health)
	}
}

func TestSwingMissesBehindAttacker(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", 500, 500, 0)
	behind := addPlayer(w, "behind", 410, 500, 0)

	w.ResolveSwing("attacker", time.Now())

	if behind.Health != maxHealth {
		t.Fatalf("expected target behind the attacker untouched, health %d", behind.Health)
	}
	if behind.X != 410 {
		t.Fatalf("expected no knockback on a miss, got x=%v", behind.X)
	}
}

func TestSwingMissesOutOfRange(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", 500, 500, 0)
	far := addPlayer(w, "far", 601, 500, 0) // 101 > hands reach + radius

	w.ResolveSwing("attacker", time.Now())

	if far.Health != maxHealth {
		t.Fatalf("expected out-of-range target untouched, health %d", far.Health)
	}
}

func TestSwingHitsMultipleTargets(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", 500, 500, 0)
	a := addPlayer(w, "a", 570, 520, 0)
	b := addPlayer(w, "b", 570, 480, 0)

	w.ResolveSwing("attacker", time.Now())

	if a.Health != maxHealth-10 || b.Health != maxHealth-10 {
		t.Fatalf("expected one swing to connect with both targets, health %d and %d", a.Health, b.Health)
	}
}

func TestSwingCooldownGate(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", 500, 500, 0)
	target := addPlayer(w, "target", 590, 500, 0)
	now := time.Now()

	w.ResolveSwing("attacker", now)
	target.X = 590
	w.drainEvents()

	// Hands cooldown is 400ms; 100ms later the swing is swallowed.
	w.ResolveSwing("attacker", now.Add(100*time.Millisecond))
	if target.Health != maxHealth-10 {
		t.Fatalf("expected second swing gated by cooldown, health %d", target.Health)
	}
	if events := w.drainEvents(); len(events) != 0 {
		t.Fatalf("expected no events from a gated swing, got %d", len(events))
	}

	w.ResolveSwing("attacker", now.Add(400*time.Millisecond))
	if target.Health != maxHealth-20 {
		t.Fatalf("expected swing after the cooldown to land, health %d", target.Health)
	}
}

func TestSwingCooldownScalesWithWeaponSpeed(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	attacker.Weapon = "dagger" // speed 1.5: cooldown 400/1.5 ≈ 266ms
	target := addPlayer(w, "target", 550, 500, 0)
	now := time.Now()

	w.ResolveSwing("attacker", now)
	target.X = 550
	w.ResolveSwing("attacker", now.Add(300*time.Millisecond))

	if target.Health != maxHealth-16 {
		t.Fatalf("expected two dagger hits at 8 damage each, health %d", target.Health)
	}
}

func TestSwingUnknownWeaponResetsToHands(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	attacker.Weapon = "orbital laser"
	target := addPlayer(w, "target", 590, 500, 0)

	w.ResolveSwing("attacker", time.Now())

	if attacker.Weapon != defaultWeapon {
		t.Fatalf("expected weapon reset to %q, got %q", defaultWeapon, attacker.Weapon)
	}
	if target.Health != maxHealth {
		t.Fatalf("expected the aborted swing to deal no damage, health %d", target.Health)
	}
	if events := w.drainEvents(); len(events) != 0 {
		t.Fatalf("expected no events from an aborted swing, got %d", len(events))
	}
}

func TestSwingIgnoredForDeadAttacker(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	attacker.isDead = true
	target := addPlayer(w, "target", 590, 500, 0)

	w.ResolveSwing("attacker", time.Now())

	if target.Health != maxHealth {
		t.Fatalf("expected dead attacker's swing dropped, health %d", target.Health)
	}
	if events := w.drainEvents(); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestSwingSkipsDeadTargets(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", 500, 500, 0)
	corpse := addPlayer(w, "corpse", 590, 500, 0)
	corpse.Health = 0
	corpse.isDead = true

	w.ResolveSwing("attacker", time.Now())

	if corpse.X != 590 {
		t.Fatalf("expected dead target excluded from the sweep, got x=%v", corpse.X)
	}
}

func TestSwingKnockbackClampsToBounds(t *testing.T) {
	w := newTestWorld(t, nil)
	addPlayer(w, "attacker", w.cfg.WorldWidth-120, 500, 0)
	target := addPlayer(w, "target", w.cfg.WorldWidth-40, 500, 0)

	w.ResolveSwing("attacker", time.Now())

	if target.X != w.cfg.WorldWidth-playerRadius {
		t.Fatalf("expected knockback clamped to the boundary, got x=%v", target.X)
	}
}

func TestSwingCollectsResource(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	res := w.addResource(ResourceWood, 600, 500) // 100 <= hands reach + wood hit radius

	w.ResolveSwing("attacker", time.Now())

	if attacker.Inventory.Wood != 1 {
		t.Fatalf("expected 1 wood collected, got %d", attacker.Inventory.Wood)
	}
	if attacker.XP != 7.5 {
		t.Fatalf("expected 7.5 XP for wood, got %v", attacker.XP)
	}

	events := w.drainEvents()
	if len(events) != 2 {
		t.Fatalf("expected swingStarted and resourceWiggled, got %d events", len(events))
	}
	wiggled, ok := events[1].payload.(resourceWiggledMessage)
	if !ok || wiggled.ResourceID != res.ID {
		t.Fatalf("unexpected wiggle payload: %+v", events[1].payload)
	}
	if math.Abs(wiggled.Direction) > 1e-9 {
		t.Fatalf("expected wiggle direction 0 for a node dead ahead, got %v", wiggled.Direction)
	}
}

func TestSwingGoldPaysMore(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	w.addResource(ResourceGold, 590, 500)

	w.ResolveSwing("attacker", time.Now())

	if attacker.Inventory.Gold != 10 {
		t.Fatalf("expected 10 gold per collection, got %d", attacker.Inventory.Gold)
	}
	if attacker.XP != 15 {
		t.Fatalf("expected 15 XP for gold, got %v", attacker.XP)
	}
}

func TestHarvestCooldownIsPerNode(t *testing.T) {
	w := newTestWorld(t, nil)
	first := addPlayer(w, "first", 500, 500, 0)
	second := addPlayer(w, "second", 700, 500, math.Pi)
	w.addResource(ResourceWood, 600, 500)
	now := time.Now()

	w.ResolveSwing("first", now)
	w.ResolveSwing("second", now.Add(100*time.Millisecond))

	if first.Inventory.Wood != 1 {
		t.Fatalf("expected first striker credited, got %d", first.Inventory.Wood)
	}
	if second.Inventory.Wood != 0 {
		t.Fatalf("expected node still cooling down for the second striker, got %d", second.Inventory.Wood)
	}

	w.ResolveSwing("second", now.Add(500*time.Millisecond))
	if second.Inventory.Wood != 1 {
		t.Fatalf("expected collection after the node cooldown, got %d", second.Inventory.Wood)
	}
}

func TestZeroHarvestCooldownCollectsEverySwing(t *testing.T) {
	w := newTestWorld(t, func(cfg *Config) { cfg.HarvestCooldownMs = 0 })
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	attacker.Weapon = "dagger"
	w.addResource(ResourceWood, 600, 500)
	now := time.Now()

	w.ResolveSwing("attacker", now)
	w.ResolveSwing("attacker", now.Add(300*time.Millisecond))

	if attacker.Inventory.Wood != 2 {
		t.Fatalf("expected both swings to collect with no throttle, got %d", attacker.Inventory.Wood)
	}
}

func TestSwingMissesResourceOutsideArc(t *testing.T) {
	w := newTestWorld(t, nil)
	attacker := addPlayer(w, "attacker", 500, 500, 0)
	w.addResource(ResourceWood, 400, 500) // directly behind

	w.ResolveSwing("attacker", time.Now())

	if attacker.Inventory.Wood != 0 {
		t.Fatalf("expected node behind the attacker untouched, got %d wood", attacker.Inventory.Wood)
	}
}
