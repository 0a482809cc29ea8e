package live

import (
	"fmt"

	"github.com/futliga/championship-system/models"
)

// Типы сообщений, уходящих в комнаты матчей.
const (
	MessageMatchEvent  = "MATCH_EVENT"
	MessageMatchStatus = "MATCH_STATUS"
)

// MatchRoom возвращает имя комнаты матча.
func MatchRoom(matchID int) string {
	return fmt.Sprintf("match:%d", matchID)
}

// Dispatcher публикует события матча в его комнату. Сервисы не знают
// про WebSocket: им отдают записанное событие, рассылка живёт здесь.
type Dispatcher struct {
	hub *Hub
}

func NewDispatcher(hub *Hub) *Dispatcher {
	return &Dispatcher{hub: hub}
}

// PublishEvent рассылает записанное событие подписчикам матча.
func (d *Dispatcher) PublishEvent(event *models.MatchEvent) {
	if d == nil || d.hub == nil || event == nil {
		return
	}
	d.hub.BroadcastToRoom(MatchRoom(event.MatchID), Message{
		Type:    MessageMatchEvent,
		Payload: event,
	})
}

// PublishStatus рассылает смену статуса матча (расписание, перенос, отмена).
func (d *Dispatcher) PublishStatus(match *models.Match) {
	if d == nil || d.hub == nil || match == nil {
		return
	}
	d.hub.BroadcastToRoom(MatchRoom(match.ID), Message{
		Type:    MessageMatchStatus,
		Payload: match,
	})
}
