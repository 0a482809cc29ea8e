package models

import "time"

// PlayerPosition соответствует ENUM player_position в БД.
// Значения совпадают с тем, что ожидает мобильный клиент.
type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "PORTERO"
	PositionDefender   PlayerPosition = "DEFENSA"
	PositionMidfielder PlayerPosition = "MEDIOCAMPISTA"
	PositionForward    PlayerPosition = "DELANTERO"
)

func (p PlayerPosition) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

type Player struct {
	ID           int            `json:"id" db:"id"`
	TeamID       int            `json:"team_id" db:"team_id"`
	FirstName    string         `json:"first_name" db:"first_name"`
	LastName     string         `json:"last_name" db:"last_name"`
	JerseyNumber int            `json:"jersey_number" db:"jersey_number"`
	Position     PlayerPosition `json:"position" db:"position"`
	DateOfBirth  *time.Time     `json:"date_of_birth,omitempty" db:"date_of_birth"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`

	// Агрегированная статистика, считается сервисом по событиям
	Stats *PlayerStats `json:"stats,omitempty" db:"-"`
}

type PlayerStats struct {
	Goals       int `json:"goals"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}
