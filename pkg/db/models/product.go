package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quotewise/rfq-backend/pkg/enums"
)

// Product is one catalog entry. The catalog carries no price column; unit
// prices are synthesized by the matcher at quote time.
type Product struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SKU          string             `gorm:"column:sku;not null;uniqueIndex" json:"sku"`
	Name         string             `gorm:"column:name;not null" json:"name"`
	Description  string             `gorm:"column:description;not null;default:''" json:"description"`
	Category     string             `gorm:"column:category;not null;index" json:"category"`
	Brand        string             `gorm:"column:brand;not null;default:''" json:"brand"`
	Availability enums.Availability `gorm:"column:availability;not null;default:'unknown'" json:"availability"`
	Currency     string             `gorm:"column:currency;not null;default:'USD'" json:"currency"`
	LeadTimeDays int                `gorm:"column:lead_time_days;not null;default:0" json:"lead_time_days"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns an id when the caller did not provide one.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
