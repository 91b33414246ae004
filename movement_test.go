package server

import (
	"math"
	"testing"
	"time"
)

const tickDT = 1.0 / 30.0

func TestStepMovesAlongKeys(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", 500, 500, 0)
	player.keys = KeyState{W: true}

	w.Step(time.Now(), tickDT)

	if player.X != 500 {
		t.Fatalf("expected no horizontal drift, got x=%v", player.X)
	}
	want := 500 - moveSpeed*tickDT
	if math.Abs(player.Y-want) > 1e-9 {
		t.Fatalf("expected W to move -y to %v, got %v", want, player.Y)
	}
}

func TestStepNormalizesDiagonal(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", 500, 500, 0)
	player.keys = KeyState{S: true, D: true}

	w.Step(time.Now(), tickDT)

	component := moveSpeed * tickDT / math.Sqrt2
	if math.Abs(player.X-(500+component)) > 1e-9 || math.Abs(player.Y-(500+component)) > 1e-9 {
		t.Fatalf("expected diagonal speed normalized, got (%v, %v)", player.X, player.Y)
	}
	moved := distance(500, 500, player.X, player.Y)
	if math.Abs(moved-moveSpeed*tickDT) > 1e-9 {
		t.Fatalf("expected per-tick displacement %v, got %v", moveSpeed*tickDT, moved)
	}
}

func TestStepOpposingKeysCancel(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", 500, 500, 0)
	player.keys = KeyState{W: true, S: true}

	w.Step(time.Now(), tickDT)

	if player.X != 500 || player.Y != 500 {
		t.Fatalf("expected opposing keys to cancel, got (%v, %v)", player.X, player.Y)
	}
}

func TestStepClampsAtWorldEdge(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", playerRadius, playerRadius, 0)
	player.keys = KeyState{W: true, A: true}

	w.Step(time.Now(), tickDT)

	if player.X != playerRadius || player.Y != playerRadius {
		t.Fatalf("expected clamp at the corner, got (%v, %v)", player.X, player.Y)
	}
}

func TestStepDeadPlayersDoNotMove(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", 500, 500, 0)
	player.isDead = true
	player.keys = KeyState{D: true}
	player.aimAngle = 2.0

	w.Step(time.Now(), tickDT)

	if player.X != 500 || player.Y != 500 {
		t.Fatalf("expected dead player frozen, got (%v, %v)", player.X, player.Y)
	}
	if player.Angle != 0 {
		t.Fatalf("expected dead player's facing untouched, got %v", player.Angle)
	}
}

func TestStepAppliesAimAngle(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", 500, 500, 0)
	player.aimAngle = 1.25

	w.Step(time.Now(), tickDT)

	if player.Angle != 1.25 {
		t.Fatalf("expected facing to follow aim, got %v", player.Angle)
	}
}

func TestStepSeparatesOverlappingPlayers(t *testing.T) {
	w := newTestWorld(t, nil)
	p1 := addPlayer(w, "p1", 500, 500, 0)
	p2 := addPlayer(w, "p2", 540, 500, 0)

	w.Step(time.Now(), tickDT)

	if dist := distance(p1.X, p1.Y, p2.X, p2.Y); dist < 2*playerRadius-1e-9 {
		t.Fatalf("expected the tick to resolve the overlap, distance %v", dist)
	}
}

func TestStepRefreshesTopKiller(t *testing.T) {
	w := newTestWorld(t, nil)
	player := addPlayer(w, "p1", 500, 500, 0)
	player.Kills = 3

	w.Step(time.Now(), tickDT)

	if got := w.TopKillerID(); got != "p1" {
		t.Fatalf("expected top killer refreshed during the tick, got %q", got)
	}
}
