package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	UserID        *string         `gorm:"size:36;index" json:"user"`
	User          *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	PaymentMethod string          `gorm:"size:200" json:"paymentMethod"`
	TaxPrice      decimal.Decimal `gorm:"type:decimal(7,2);default:0.00" json:"taxPrice"`
	ShippingPrice decimal.Decimal `gorm:"type:decimal(7,2);default:0.00" json:"shippingPrice"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(7,2);default:0.00" json:"totalPrice"`

	// isPaid/paidAt and isDelivered/deliveredAt transition together and only
	// ever go false -> true.
	IsPaid      bool       `gorm:"default:false" json:"isPaid"`
	PaidAt      *time.Time `json:"paidAt"`
	IsDelivered bool       `gorm:"default:false" json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt"`

	OrderItems      []OrderItem      `gorm:"foreignKey:OrderID" json:"orderItems"`
	ShippingAddress *ShippingAddress `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shippingAddress"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
