package models

import "time"

// MatchEventType соответствует ENUM event_type в БД.
type MatchEventType string

const (
	EventGoal            MatchEventType = "GOAL"
	EventOwnGoal         MatchEventType = "OWN_GOAL"
	EventYellowCard      MatchEventType = "YELLOW_CARD"
	EventRedCard         MatchEventType = "RED_CARD"
	EventSubstitution    MatchEventType = "SUBSTITUTION"
	EventKickOff         MatchEventType = "KICK_OFF"
	EventHalfTime        MatchEventType = "HALF_TIME"
	EventSecondHalfStart MatchEventType = "SECOND_HALF_START"
	EventFullTime        MatchEventType = "FULL_TIME"
)

func (t MatchEventType) Valid() bool {
	switch t {
	case EventGoal, EventOwnGoal, EventYellowCard, EventRedCard, EventSubstitution,
		EventKickOff, EventHalfTime, EventSecondHalfStart, EventFullTime:
		return true
	}
	return false
}

// AffectsScore сообщает, меняет ли событие счёт матча.
func (t MatchEventType) AffectsScore() bool {
	return t == EventGoal || t == EventOwnGoal
}

// MatchEvent — одна запись в журнале событий матча.
// После создания запись неизменяема.
type MatchEvent struct {
	ID          int            `json:"id" db:"id"`
	MatchID     int            `json:"match_id" db:"match_id"`
	EventType   MatchEventType `json:"event_type" db:"event_type"`
	Minute      int            `json:"minute" db:"minute"`
	TeamID      *int           `json:"team_id,omitempty" db:"team_id"`
	PlayerID    *int           `json:"player_id,omitempty" db:"player_id"`
	PlayerOutID *int           `json:"player_out_id,omitempty" db:"player_out_id"`
	Description *string        `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
