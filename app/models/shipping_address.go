package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingAddress is exclusively owned by one order. The unique index on
// order_id enforces the one-to-one; deleting the order cascades here.
type ShippingAddress struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	OrderID       *string         `gorm:"size:36;uniqueIndex" json:"order"`
	Address       string          `gorm:"size:200" json:"address"`
	City          string          `gorm:"size:200" json:"city"`
	PostalCode    string          `gorm:"size:200" json:"postalCode"`
	Country       string          `gorm:"size:200" json:"country"`
	ShippingPrice decimal.Decimal `gorm:"type:decimal(7,2);default:0.00" json:"shippingPrice"`
}

func (s *ShippingAddress) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
