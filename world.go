package server

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// World owns the authoritative player and resource registries. It has no
// notion of connections; the hub serializes every call under its mutex, so
// world methods never lock. Mutations that clients must hear about are
// queued as events and drained by the hub after each call.
type World struct {
	cfg    Config
	logger *zap.SugaredLogger
	rng    *rand.Rand

	players   map[string]*playerState
	resources map[string]*resourceState

	nextResourceID int
	topKillerID    string

	events []outboundEvent
}

// outboundEvent pairs a wire payload with its audience. A nil recipient list
// means every subscriber.
type outboundEvent struct {
	recipients []string
	payload    any
}

// NewWorld builds a world from the config, seeds the RNG deterministically
// from the config seed, and places the initial resource set.
func NewWorld(cfg Config, logger *zap.SugaredLogger) *World {
	w := &World{
		cfg:       cfg,
		logger:    logger,
		rng:       rand.New(rand.NewSource(deterministicSeed(cfg.Seed))),
		players:   make(map[string]*playerState),
		resources: make(map[string]*resourceState),
	}
	w.placeResources(cfg.ResourceCount)
	return w
}

func deterministicSeed(seed string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(seed))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// SpawnPlayer creates a living player at a random spawn point and returns
// its state.
func (w *World) SpawnPlayer() *playerState {
	x, y := w.randomSpawnPoint()
	player := &playerState{
		Player: Player{
			ID:          uuid.NewString(),
			Name:        "Unnamed",
			X:           x,
			Y:           y,
			Health:      maxHealth,
			XPToNextAge: xpToNextAge(0),
			Weapon:      defaultWeapon,
		},
	}
	w.players[player.ID] = player
	w.queueEvent(nil, playerJoinedMessage{Type: msgPlayerJoined, Player: player.snapshot()})
	return player
}

func (w *World) randomSpawnPoint() (float64, float64) {
	x := spawnMargin + w.rng.Float64()*(w.cfg.WorldWidth-2*spawnMargin)
	y := spawnMargin + w.rng.Float64()*(w.cfg.WorldHeight-2*spawnMargin)
	return clamp(x, playerRadius, w.cfg.WorldWidth-playerRadius),
		clamp(y, playerRadius, w.cfg.WorldHeight-playerRadius)
}

// RemovePlayer deletes a player outright. There is no grace period; the id
// is gone from the next snapshot on.
func (w *World) RemovePlayer(id string) bool {
	if _, ok := w.players[id]; !ok {
		return false
	}
	delete(w.players, id)
	w.queueEvent(nil, playerLeftMessage{Type: msgPlayerLeft, ID: id})
	return true
}

// SetName updates a player's display name.
func (w *World) SetName(id, name string) {
	player, ok := w.players[id]
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if len(name) > maxChatLength {
		name = name[:maxChatLength]
	}
	player.Name = name
}

// UpdateInput buffers the latest keys and aim angle for the next tick.
// Input from dead players is dropped.
func (w *World) UpdateInput(id string, keys KeyState, aimAngle float64) {
	player, ok := w.players[id]
	if !ok || player.isDead {
		return
	}
	player.keys = keys
	player.aimAngle = aimAngle
}

// EquipWeapon switches a living player to a known catalog weapon. Unknown
// names are dropped silently apart from a log line.
func (w *World) EquipWeapon(id, name string) {
	player, ok := w.players[id]
	if !ok || player.isDead {
		return
	}
	if _, known := WeaponByName(name); !known {
		w.logger.Warnw("ignoring unknown weapon", "player", player.Name, "weapon", name)
		return
	}
	player.Weapon = name
	w.queueEvent(nil, weaponChangedMessage{Type: msgWeaponChanged, ID: id, Weapon: name})
}

// Respawn revives a dead player with a fresh progression state at a new
// random position. Living players cannot respawn.
func (w *World) Respawn(id string) {
	player, ok := w.players[id]
	if !ok || !player.isDead {
		return
	}
	player.Health = maxHealth
	player.isDead = false
	player.deathTime = time.Time{}
	player.X, player.Y = w.randomSpawnPoint()
	player.Inventory = Inventory{}
	player.Kills = 0
	player.Age = 0
	player.XP = 0
	player.XPToNextAge = xpToNextAge(0)
	player.Weapon = defaultWeapon
	player.keys = KeyState{}
	w.logger.Infow("player respawned", "player", player.Name, "id", id)
	w.queueEvent(nil, playerJoinedMessage{Type: msgPlayerRespawned, Player: player.snapshot()})
}

// Chat trims and caps a message, then queues it for every living player
// within chat range of the sender, the sender included.
func (w *World) Chat(senderID, message string) {
	sender, ok := w.players[senderID]
	if !ok || sender.isDead {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if len(message) > maxChatLength {
		message = message[:maxChatLength]
	}

	recipients := make([]string, 0, len(w.players))
	for id, player := range w.players {
		if player.isDead {
			continue
		}
		if distance(sender.X, sender.Y, player.X, player.Y) <= w.cfg.ChatRange {
			recipients = append(recipients, id)
		}
	}
	w.queueEvent(recipients, chatMessage{
		Type:       msgChat,
		SenderID:   senderID,
		SenderName: sender.Name,
		Message:    message,
	})
}

// updateTopKiller recomputes the leaderboard aggregate. Ties break on id so
// the result is stable across map iteration order.
func (w *World) updateTopKiller() {
	bestID := ""
	bestKills := 0
	for id, player := range w.players {
		if player.isDead || player.Kills == 0 {
			continue
		}
		if player.Kills > bestKills || (player.Kills == bestKills && id < bestID) {
			bestID = id
			bestKills = player.Kills
		}
	}
	w.topKillerID = bestID
}

// PlayersSnapshot copies every living player's wire state.
func (w *World) PlayersSnapshot() []Player {
	players := make([]Player, 0, len(w.players))
	for _, player := range w.players {
		if player.isDead {
			continue
		}
		players = append(players, player.snapshot())
	}
	return players
}

// ResourcesSnapshot copies the full resource registry.
func (w *World) ResourcesSnapshot() []Resource {
	resources := make([]Resource, 0, len(w.resources))
	for _, res := range w.resources {
		resources = append(resources, res.Resource)
	}
	return resources
}

// TopKillerID returns the aggregate computed on the last tick.
func (w *World) TopKillerID() string {
	return w.topKillerID
}

func (w *World) queueEvent(recipients []string, payload any) {
	w.events = append(w.events, outboundEvent{recipients: recipients, payload: payload})
}

// drainEvents hands the queued events to the hub and resets the queue.
func (w *World) drainEvents() []outboundEvent {
	events := w.events
	w.events = nil
	return events
}
