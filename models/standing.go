package models

import "time"

// Standing — агрегированный результат команды в рамках одного чемпионата.
// Строка существует ровно пока команда заявлена в чемпионате.
// Инварианты: goal_difference = goals_for - goals_against, points = 3*won + drawn.
type Standing struct {
	ID             int       `json:"id" db:"id"`
	ChampionshipID int       `json:"championship_id" db:"championship_id"`
	TeamID         int       `json:"team_id" db:"team_id"`
	Played         int       `json:"played" db:"played"`
	Won            int       `json:"won" db:"won"`
	Drawn          int       `json:"drawn" db:"drawn"`
	Lost           int       `json:"lost" db:"lost"`
	GoalsFor       int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int       `json:"goals_against" db:"goals_against"`
	GoalDifference int       `json:"goal_difference" db:"goal_difference"`
	Points         int       `json:"points" db:"points"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
