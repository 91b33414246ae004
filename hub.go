package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub owns the world plus the set of subscribed connections, and serializes
// every mutation under one mutex: the tick loop and the per-connection read
// loops are the only callers, and each takes the lock for the whole
// mutation, so world state never sees interleaved writers.
type Hub struct {
	mu          sync.Mutex
	cfg         Config
	logger      *zap.SugaredLogger
	world       *World
	subscribers map[string]*Subscriber
	tick        atomic.Uint64
}

// wsConn is the slice of *websocket.Conn the hub needs. Tests substitute a
// stub.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Subscriber wraps a connection with a write mutex so the tick broadcast and
// direct replies never interleave frames.
type Subscriber struct {
	conn wsConn
	mu   sync.Mutex
}

// WriteMessage sends one text frame under the write deadline.
func (s *Subscriber) WriteMessage(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the underlying connection.
func (s *Subscriber) Close() error {
	return s.conn.Close()
}

// NewHub builds a hub around a freshly generated world.
func NewHub(cfg Config, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		cfg:         cfg,
		logger:      logger,
		world:       NewWorld(cfg, logger),
		subscribers: make(map[string]*Subscriber),
	}
}

// Connect spawns a player for a new connection, sends the init snapshot, and
// announces the join. It returns the player id and the subscriber handle the
// read loop uses for direct replies.
func (h *Hub) Connect(conn wsConn) (string, *Subscriber, error) {
	h.mu.Lock()
	player := h.world.SpawnPlayer()
	sub := &Subscriber{conn: conn}
	h.subscribers[player.ID] = sub
	init := initMessage{
		Type:      msgInit,
		ID:        player.ID,
		Players:   h.world.PlayersSnapshot(),
		Resources: h.world.ResourcesSnapshot(),
		Weapons:   WeaponNames(),
		Config: initConfig{
			WorldWidth:  h.cfg.WorldWidth,
			WorldHeight: h.cfg.WorldHeight,
			TickRate:    h.cfg.TickRate,
			ChatRange:   h.cfg.ChatRange,
		},
	}
	events := h.world.drainEvents()
	h.mu.Unlock()

	data, err := json.Marshal(init)
	if err != nil {
		h.Disconnect(player.ID)
		return "", nil, err
	}
	if err := sub.WriteMessage(data); err != nil {
		h.Disconnect(player.ID)
		return "", nil, err
	}

	h.logger.Infow("player connected", "id", player.ID)
	h.dispatch(events)
	return player.ID, sub, nil
}

// Disconnect removes the player and its subscriber outright and announces
// the departure.
func (h *Hub) Disconnect(playerID string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[playerID]
	if subOK {
		delete(h.subscribers, playerID)
	}
	removed := h.world.RemovePlayer(playerID)
	events := h.world.drainEvents()
	h.mu.Unlock()

	if subOK {
		sub.Close()
	}
	if removed {
		h.logger.Infow("player disconnected", "id", playerID)
	}
	h.dispatch(events)
}

// HandleIdentify sets the display name.
func (h *Hub) HandleIdentify(playerID, name string) {
	h.withWorld(func(w *World) { w.SetName(playerID, name) })
}

// HandleInput buffers movement keys and the aim angle for the next tick.
func (h *Hub) HandleInput(playerID string, keys KeyState, aimAngle float64) {
	h.withWorld(func(w *World) { w.UpdateInput(playerID, keys, aimAngle) })
}

// HandleSwing resolves a melee action at the current wall-clock time.
func (h *Hub) HandleSwing(playerID string) {
	now := time.Now()
	h.withWorld(func(w *World) { w.ResolveSwing(playerID, now) })
}

// HandleRespawn revives a dead player.
func (h *Hub) HandleRespawn(playerID string) {
	h.withWorld(func(w *World) { w.Respawn(playerID) })
}

// HandleChat fans a message out to players near the sender.
func (h *Hub) HandleChat(playerID, message string) {
	h.withWorld(func(w *World) { w.Chat(playerID, message) })
}

// HandleEquipWeapon switches the equipped weapon.
func (h *Hub) HandleEquipWeapon(playerID, weapon string) {
	h.withWorld(func(w *World) { w.EquipWeapon(playerID, weapon) })
}

// withWorld runs one world mutation under the hub lock and dispatches any
// events it queued.
func (h *Hub) withWorld(fn func(w *World)) {
	h.mu.Lock()
	fn(h.world)
	events := h.world.drainEvents()
	h.mu.Unlock()
	h.dispatch(events)
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(h.cfg.TickRate)
			}
			last = now
			h.stepOnce(now, dt)
		}
	}
}

// stepOnce advances the world one tick and broadcasts the snapshot.
func (h *Hub) stepOnce(now time.Time, dt float64) {
	h.mu.Lock()
	h.world.Step(now, dt)
	msg := stateMessage{
		Type:        msgState,
		Players:     h.world.PlayersSnapshot(),
		Resources:   h.world.ResourcesSnapshot(),
		TopKillerID: h.world.TopKillerID(),
		Tick:        h.tick.Add(1),
		ServerTime:  now.UnixMilli(),
	}
	events := h.world.drainEvents()
	h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Errorw("failed to marshal state message", "error", err)
		return
	}
	h.broadcast(data)
	h.dispatch(events)
}

// broadcast sends one frame to every subscriber, disconnecting any whose
// write fails. Sends are fire-and-forget; there is no backpressure at this
// scale.
func (h *Hub) broadcast(data []byte) {
	for id, sub := range h.subscriberSnapshot() {
		if err := sub.WriteMessage(data); err != nil {
			h.logger.Warnw("failed to send to subscriber", "id", id, "error", err)
			h.Disconnect(id)
		}
	}
}

// dispatch delivers queued world events. A nil recipient list means every
// subscriber.
func (h *Hub) dispatch(events []outboundEvent) {
	for _, event := range events {
		data, err := json.Marshal(event.payload)
		if err != nil {
			h.logger.Errorw("failed to marshal event", "error", err)
			continue
		}
		if event.recipients == nil {
			h.broadcast(data)
			continue
		}
		for _, id := range event.recipients {
			h.mu.Lock()
			sub, ok := h.subscribers[id]
			h.mu.Unlock()
			if !ok {
				continue
			}
			if err := sub.WriteMessage(data); err != nil {
				h.logger.Warnw("failed to send to subscriber", "id", id, "error", err)
				h.Disconnect(id)
			}
		}
	}
}

func (h *Hub) subscriberSnapshot() map[string]*Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := make(map[string]*Subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	return subs
}

// Diagnostics is the payload for the diagnostics endpoint.
type Diagnostics struct {
	Tick          uint64 `json:"tick"`
	TickRate      int    `json:"tickRate"`
	PlayerCount   int    `json:"playerCount"`
	ResourceCount int    `json:"resourceCount"`
}

// DiagnosticsSnapshot reports loop and registry counters.
func (h *Hub) DiagnosticsSnapshot() Diagnostics {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Diagnostics{
		Tick:          h.tick.Load(),
		TickRate:      h.cfg.TickRate,
		PlayerCount:   len(h.world.players),
		ResourceCount: len(h.world.resources),
	}
}
