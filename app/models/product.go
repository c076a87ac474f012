package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	UserID       *string         `gorm:"size:36;index" json:"user"`
	User         *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Name         string          `gorm:"size:200" json:"name"`
	Image        string          `gorm:"size:255;default:'/placeholder.png'" json:"image"`
	Brand        string          `gorm:"size:200" json:"brand"`
	Category     string          `gorm:"size:200" json:"category"`
	Description  string          `gorm:"type:text" json:"description"`
	Rating       decimal.Decimal `gorm:"type:decimal(7,2);default:0.00" json:"rating"`
	NumReviews   int             `gorm:"default:0" json:"numReviews"`
	Price        decimal.Decimal `gorm:"type:decimal(7,2);default:0.00" json:"price"`
	CountInStock int             `gorm:"default:0" json:"countInStock"`
	Reviews      []Review        `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
