package server

// Server-to-client message type tags. Every payload carries one of these in
// its Type field so clients can dispatch on a single socket.
const (
	msgInit            = "init"
	msgState           = "state"
	msgPlayerJoined    = "playerJoined"
	msgPlayerRespawned = "playerRespawned"
	msgPlayerLeft      = "playerLeft"
	msgPlayerDied      = "playerDied"
	msgSwingStarted    = "swingStarted"
	msgResourceWiggled = "resourceWiggled"
	msgWeaponChanged   = "weaponChanged"
	msgChat            = "chat"
)

// initConfig is the slice of server tuning clients need for rendering and
// local prediction.
type initConfig struct {
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`
	TickRate    int     `json:"tickRate"`
	ChatRange   float64 `json:"chatRange"`
}

// initMessage is the full handshake snapshot sent once per connection.
type initMessage struct {
	Type      string     `json:"type"`
	ID        string     `json:"id"`
	Players   []Player   `json:"players"`
	Resources []Resource `json:"resources"`
	Weapons   []string   `json:"weapons"`
	Config    initConfig `json:"config"`
}

// stateMessage is the authoritative snapshot broadcast every tick. Dead
// players are absent; clients animate fade-outs from their own last-known
// state.
type stateMessage struct {
	Type        string     `json:"type"`
	Players     []Player   `json:"players"`
	Resources   []Resource `json:"resources"`
	TopKillerID string     `json:"topKillerId,omitempty"`
	Tick        uint64     `json:"t"`
	ServerTime  int64      `json:"serverTime"`
}

type playerJoinedMessage struct {
	Type   string `json:"type"`
	Player Player `json:"player"`
}

type playerLeftMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type playerDiedMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// swingStartedMessage is an animation trigger only; damage resolution has
// already happened server-side by the time it is sent.
type swingStartedMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// resourceWiggledMessage tells clients to shake a node along the strike
// direction. Purely cosmetic.
type resourceWiggledMessage struct {
	Type       string  `json:"type"`
	ResourceID string  `json:"resourceId"`
	Direction  float64 `json:"direction"`
}

type weaponChangedMessage struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Weapon string `json:"weapon"`
}

// chatMessage goes only to recipients within chat range of the sender.
type chatMessage struct {
	Type       string `json:"type"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
}
