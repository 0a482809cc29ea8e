package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/futliga/championship-system/live"
	"github.com/futliga/championship-system/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: ограничить Origin доменом фронтенда перед продакшеном.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	matchService services.MatchService
}

func NewWebSocketHandler(hub *live.Hub, matchService services.MatchService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		matchService: matchService,
	}
}

// ServeMatch подписывает клиента на комнату матча /ws/matches/{matchID}.
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Проверяем матч до апгрейда, чтобы отдать нормальный 404.
	if _, err := h.matchService.GetMatchByID(r.Context(), matchID); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			notFoundResponse(w, r)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам пишет HTTP-ошибку клиенту.
		logger.Warn("websocket upgrade failed",
			slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: live.MatchRoom(matchID),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
