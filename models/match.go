package models

import "time"

// MatchStatus соответствует ENUM match_status в БД.
type MatchStatus string

const (
	MatchScheduled  MatchStatus = "SCHEDULED"
	MatchLive       MatchStatus = "LIVE"
	MatchFirstHalf  MatchStatus = "FIRST_HALF"
	MatchHalfTime   MatchStatus = "HALF_TIME"
	MatchSecondHalf MatchStatus = "SECOND_HALF"
	MatchFinished   MatchStatus = "FINISHED"
	MatchSuspended  MatchStatus = "SUSPENDED"
	MatchCancelled  MatchStatus = "CANCELLED"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchLive, MatchFirstHalf, MatchHalfTime,
		MatchSecondHalf, MatchFinished, MatchSuspended, MatchCancelled:
		return true
	}
	return false
}

// Terminal сообщает, достиг ли матч конечного состояния.
// Из FINISHED и CANCELLED переходов нет.
func (s MatchStatus) Terminal() bool {
	return s == MatchFinished || s == MatchCancelled
}

type Match struct {
	ID             int         `json:"id" db:"id"`
	ChampionshipID int         `json:"championship_id" db:"championship_id"`
	HomeTeamID     int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID     int         `json:"away_team_id" db:"away_team_id"`
	MatchDate      time.Time   `json:"match_date" db:"match_date"`
	Location       string      `json:"location" db:"location"`
	Field          *string     `json:"field,omitempty" db:"field"`
	Status         MatchStatus `json:"status" db:"status"`
	HomeScore      int         `json:"home_score" db:"home_score"`
	AwayScore      int         `json:"away_score" db:"away_score"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности
	Championship *Championship `json:"championship,omitempty" db:"-"`
	HomeTeam     *Team         `json:"home_team,omitempty" db:"-"`
	AwayTeam     *Team         `json:"away_team,omitempty" db:"-"`
	Events       []MatchEvent  `json:"events,omitempty" db:"-"`
}
