package models

import "time"

// Cliente da empresa. Appointments apontam para ele por client_id (sem posse).
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null;index" json:"name"`
	Email   string `gorm:"size:100" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	Status  string `gorm:"size:20;default:'Ativo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Client) GetID() uint { return c.ID }
