package repositories

import (
	"context"
	"strings"

	"github.com/proshop/backend/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error)
	CountSearch(ctx context.Context, keyword string) (int64, error)
	SearchPage(ctx context.Context, keyword string, limit, offset int) ([]models.Product, error)
	GetTopRated(ctx context.Context, minRating decimal.Decimal, limit int) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdateRating(ctx context.Context, tx *gorm.DB, productID string, rating decimal.Decimal, numReviews int) error
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Reviews").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDTx reads the product through the caller's transaction so order
// placement sees its own stock writes.
func (p *productRepository) GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) CountSearch(ctx context.Context, keyword string) (int64, error) {
	var total int64
	q := p.db.WithContext(ctx).Model(&models.Product{})
	if keyword != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (p *productRepository) SearchPage(ctx context.Context, keyword string, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	q := p.db.WithContext(ctx).Model(&models.Product{})
	if keyword != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetTopRated(ctx context.Context, minRating decimal.Decimal, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("rating >= ?", minRating).
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) UpdateRating(ctx context.Context, tx *gorm.DB, productID string, rating decimal.Decimal, numReviews int) error {
	return tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"rating":      rating,
		"num_reviews": numReviews,
	}).Error
}

// DecrementStock subtracts qty in a single UPDATE so concurrent orders against
// the same product cannot lose updates. There is no zero floor.
func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	return tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", qty)).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
