package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Serviço oferecido pela empresa; alimenta as sugestões do campo "serviço".
type CatalogService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string          `gorm:"size:100;not null" json:"name"`
	Description  string          `gorm:"size:255" json:"description"`
	DefaultPrice decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"default_price"`
	Active       bool            `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s CatalogService) GetID() uint { return s.ID }
