package net

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"go.uber.org/zap"

	"thicket/server"
	"thicket/server/internal/net/ws"
)

type HTTPHandlerConfig struct {
	ClientDir string
	Logger    *zap.SugaredLogger
}

// NewHTTPHandler wires the health, diagnostics, websocket, and static-file
// routes onto one mux.
func NewHTTPHandler(hub *server.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status      string             `json:"status"`
			ServerTime  int64              `json:"serverTime"`
			Diagnostics server.Diagnostics `json:"diagnostics"`
		}{
			Status:      "ok",
			ServerTime:  time.Now().UnixMilli(),
			Diagnostics: hub.DiagnosticsSnapshot(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			nethttp.Error(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	wsHandler := ws.NewHandler(hub, ws.HandlerConfig{Logger: logger})
	mux.HandleFunc("/ws", wsHandler.Handle)

	if cfg.ClientDir != "" {
		mux.Handle("/", nethttp.FileServer(nethttp.Dir(cfg.ClientDir)))
	}

	return mux
}
