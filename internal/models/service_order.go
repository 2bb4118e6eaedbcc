package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Obrigatório na criação; nulo apenas durante a troca de agendamento.
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Items      []ServiceOrderItem `gorm:"foreignKey:ServiceOrderID" json:"items"`
	TotalValue decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"total_value"`

	Status string `gorm:"size:20;default:'Pendente'" json:"status"`

	PDFURL  string `gorm:"size:500" json:"pdf_url,omitempty"`
	PDFPath string `gorm:"size:500" json:"pdf_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o ServiceOrder) GetID() uint { return o.ID }

type ServiceOrderItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ServiceOrderID uint            `gorm:"index;not null" json:"service_order_id"`
	Description    string          `gorm:"size:255;not null" json:"description"`
	Value          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
}
