package server

import (
	"math"
	"time"
)

const (
	writeWait = 10 * time.Second

	maxHealth    = 100
	playerRadius = 30.0
	moveSpeed    = 240.0 // units per second (8 units per tick at 30 Hz)

	baseSwingCooldown = 400 * time.Millisecond
	arcHalfAngle      = math.Pi / 2 // 180 degree frontal cone

	defaultWeapon = "hands"

	maxChatLength = 100

	// Resource placement retries a random position this many times before
	// giving up on a node entirely.
	placementAttempts = 100

	spawnMargin = 100.0

	// XP thresholds beyond the explicit table grow by this factor per age.
	fallbackXPMultiplier = 1.3
)

// ageXPRequirements maps an age to the XP needed to reach the next one.
var ageXPRequirements = map[int]float64{
	0: 100,
	1: 200,
	2: 500,
	3: 850,
}
