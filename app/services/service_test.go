package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/proshop/backend/app/models"
	"github.com/proshop/backend/app/models/migrations"
	"github.com/proshop/backend/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory SQLite database. The shared-cache
// DSN keeps the database alive across the pool's connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, migrations.AutoMigrate(db), "failed to migrate test database")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Username: email,
		Email:    email,
		Password: "hashed-password",
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:         name,
		Brand:        "Test Brand",
		Category:     "Test Category",
		Image:        "/images/" + name + ".jpg",
		Price:        decimal.NewFromFloat(price),
		CountInStock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewShippingAddressRepository(db),
	)
}

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(db, repositories.NewProductRepository(db), repositories.NewReviewRepository(db))
}

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(repositories.NewProductRepository(db))
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repositories.NewUserRepository(db))
}
