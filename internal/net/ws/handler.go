package ws

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"thicket/server"
)

// clientMessage is the tagged union every client frame decodes into. Fields
// beyond Type are populated per message kind.
type clientMessage struct {
	Type    string          `json:"type"`
	Name    string          `json:"name,omitempty"`
	Keys    server.KeyState `json:"keys"`
	Angle   float64         `json:"angle"`
	Message string          `json:"message,omitempty"`
	Weapon  string          `json:"weapon,omitempty"`
	SentAt  int64           `json:"sentAt,omitempty"`
}

type pongMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
}

type HandlerConfig struct {
	Logger *zap.SugaredLogger
}

type Handler struct {
	hub      *server.Hub
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewHandler(hub *server.Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// Handle upgrades the connection, spawns the session's player, and runs the
// read loop until the socket drops. Malformed frames are logged and skipped;
// a read error tears the whole session down.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	playerID, sub, err := h.hub.Connect(conn)
	if err != nil {
		h.logger.Warnw("failed to initialize session", "error", err)
		conn.Close()
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.Disconnect(playerID)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Debugw("discarding malformed message", "player", playerID, "error", err)
			continue
		}

		switch msg.Type {
		case "identify":
			h.hub.HandleIdentify(playerID, msg.Name)
		case "input":
			h.hub.HandleInput(playerID, msg.Keys, msg.Angle)
		case "swing":
			h.hub.HandleSwing(playerID)
		case "respawn":
			h.hub.HandleRespawn(playerID)
		case "chat":
			h.hub.HandleChat(playerID, msg.Message)
		case "equipWeapon":
			h.hub.HandleEquipWeapon(playerID, msg.Weapon)
		case "ping":
			pong := pongMessage{
				Type:       "pong",
				ServerTime: time.Now().UnixMilli(),
				ClientTime: msg.SentAt,
			}
			data, err := json.Marshal(pong)
			if err != nil {
				continue
			}
			if err := sub.WriteMessage(data); err != nil {
				h.hub.Disconnect(playerID)
				return
			}
		default:
			h.logger.Debugw("unknown message type", "player", playerID, "type", msg.Type)
		}
	}
}
