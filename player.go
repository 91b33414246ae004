package server

import "time"

// Inventory counts the resources a player has collected.
type Inventory struct {
	Wood  int `json:"wood"`
	Stone int `json:"stone"`
	Food  int `json:"food"`
	Gold  int `json:"gold"`
}

func (inv *Inventory) add(typ ResourceType, amount int) {
	switch typ {
	case ResourceWood:
		inv.Wood += amount
	case ResourceStone:
		inv.Stone += amount
	case ResourceFood:
		inv.Food += amount
	case ResourceGold:
		inv.Gold += amount
	}
}

// Player is the wire shape broadcast in snapshots. Only living players
// appear in snapshots, so death state travels via the playerDied event
// rather than a field here.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Angle       float64   `json:"angle"`
	Health      int       `json:"health"`
	Inventory   Inventory `json:"inventory"`
	Kills       int       `json:"kills"`
	Age         int       `json:"age"`
	XP          float64   `json:"xp"`
	XPToNextAge float64   `json:"xpToNextAge"`
	Weapon      string    `json:"weapon"`
}

// KeyState carries the four movement keys from the latest input message.
type KeyState struct {
	W bool `json:"w"`
	A bool `json:"a"`
	S bool `json:"s"`
	D bool `json:"d"`
}

// playerState is the authoritative per-connection record. The embedded
// Player is what snapshots copy out; everything else is server-side only.
type playerState struct {
	Player

	isDead    bool
	deathTime time.Time

	// pendingInput, applied on the next tick.
	keys     KeyState
	aimAngle float64

	lastSwing time.Time
}

func (s *playerState) snapshot() Player {
	return s.Player
}

// moveVector derives the unnormalized movement direction from buffered keys.
func (s *playerState) moveVector() (float64, float64) {
	var dx, dy float64
	if s.keys.W {
		dy -= 1
	}
	if s.keys.S {
		dy += 1
	}
	if s.keys.A {
		dx -= 1
	}
	if s.keys.D {
		dx += 1
	}
	return dx, dy
}
