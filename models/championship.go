package models

import "time"

// ChampionshipStatus соответствует ENUM championship_status в БД.
type ChampionshipStatus string

const (
	ChampionshipUpcoming  ChampionshipStatus = "UPCOMING"
	ChampionshipActive    ChampionshipStatus = "ACTIVE"
	ChampionshipFinished  ChampionshipStatus = "FINISHED"
	ChampionshipCancelled ChampionshipStatus = "CANCELLED"
)

func (s ChampionshipStatus) Valid() bool {
	switch s {
	case ChampionshipUpcoming, ChampionshipActive, ChampionshipFinished, ChampionshipCancelled:
		return true
	}
	return false
}

type Championship struct {
	ID          int                `json:"id" db:"id"`
	Name        string             `json:"name" db:"name"`
	Description *string            `json:"description,omitempty" db:"description"`
	Location    string             `json:"location" db:"location"`
	StartDate   time.Time          `json:"start_date" db:"start_date"`
	EndDate     *time.Time         `json:"end_date,omitempty" db:"end_date"`
	Category    string             `json:"category" db:"category"`
	Rules       *string            `json:"rules,omitempty" db:"rules"`
	Status      ChampionshipStatus `json:"status" db:"status"`
	CreatorID   int                `json:"creator_id" db:"creator_id"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности, заполняются сервисом
	Creator   *User      `json:"creator,omitempty" db:"-"`
	Teams     []Team     `json:"teams,omitempty" db:"-"`
	Matches   []Match    `json:"matches,omitempty" db:"-"`
	Standings []Standing `json:"standings,omitempty" db:"-"`
}
