package repositories

import (
	"context"

	"github.com/proshop/backend/app/models"
	"gorm.io/gorm"
)

type ShippingAddressRepositoryImpl interface {
	Create(ctx context.Context, tx *gorm.DB, address *models.ShippingAddress) error
	FindByOrderID(ctx context.Context, orderID string) (*models.ShippingAddress, error)
}

type shippingAddressRepository struct {
	db *gorm.DB
}

func NewShippingAddressRepository(db *gorm.DB) ShippingAddressRepositoryImpl {
	return &shippingAddressRepository{db}
}

func (r *shippingAddressRepository) Create(ctx context.Context, tx *gorm.DB, address *models.ShippingAddress) error {
	return tx.WithContext(ctx).Create(address).Error
}

func (r *shippingAddressRepository) FindByOrderID(ctx context.Context, orderID string) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := r.db.WithContext(ctx).First(&address, "order_id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}
