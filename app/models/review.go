package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A user may review a product at most once; the composite unique index backs
// the duplicate check in the review service.
type Review struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	ProductID *string   `gorm:"size:36;index:idx_reviews_product_user,unique" json:"product"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	UserID    *string   `gorm:"size:36;index:idx_reviews_product_user,unique" json:"user"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Name      string    `gorm:"size:200" json:"name"`
	Rating    int       `gorm:"default:0" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
