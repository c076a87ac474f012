package migrations

import (
	"github.com/proshop/backend/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}, &models.Order{}, &models.OrderItem{}, &models.ShippingAddress{})
}
