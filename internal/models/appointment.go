package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID   uint   `gorm:"index" json:"client_id"`
	ClientName string `gorm:"size:100;not null" json:"client_name"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:100" json:"email"`

	Service string `gorm:"size:100;not null" json:"service"`

	// Data sem fuso (YYYY-MM-DD) e hora local (HH:MM).
	Date string `gorm:"size:10;index" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	Status string `gorm:"size:20;default:'Em Andamento'" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	// Cache: true enquanto existir OS não cancelada para este agendamento.
	ServiceOrderGenerated bool `gorm:"default:false" json:"service_order_generated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) GetID() uint { return a.ID }
