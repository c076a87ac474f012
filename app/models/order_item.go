package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem keeps a snapshot of the product's name, price and image taken at
// order time. Later product edits never touch historical orders.
type OrderItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	ProductID *string         `gorm:"size:36;index" json:"product"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	OrderID   *string         `gorm:"size:36;index" json:"order"`
	Order     *Order          `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL" json:"-"`
	Name      string          `gorm:"size:200" json:"name"`
	Qty       int             `gorm:"not null" json:"qty"`
	Price     decimal.Decimal `gorm:"type:decimal(7,2);not null" json:"price"`
	Image     string          `gorm:"size:255" json:"image"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
