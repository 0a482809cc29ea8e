package models

import "time"

type Team struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Category       string    `json:"category" db:"category"`
	Representative *string   `json:"representative,omitempty" db:"representative"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	Email          *string   `json:"email,omitempty" db:"email"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Опциональные связанные сущности, заполняются сервисом
	Players []Player `json:"players,omitempty" db:"-"`
}
