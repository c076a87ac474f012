package services

import (
	"context"
	"strconv"

	"github.com/proshop/backend/app/models"
	"github.com/proshop/backend/app/repositories"
	"github.com/shopspring/decimal"
)

// PageSize is the fixed catalog page size.
const PageSize = 5

// TopRatedLimit caps the top-products listing; only products rated at least
// TopRatedFloor qualify.
const TopRatedLimit = 5

var TopRatedFloor = decimal.NewFromInt(4)

type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

type ProductUpdateInput struct {
	Name         string
	Price        decimal.Decimal
	Brand        string
	Category     string
	Description  string
	CountInStock int
}

type ProductService struct {
	productRepo repositories.ProductRepositoryImpl
}

func NewProductService(productRepo repositories.ProductRepositoryImpl) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List searches by case-insensitive name substring and paginates at PageSize.
// A non-integer page value falls back to page 1; page numbers outside the
// valid range (including values below 1) clamp to the last page.
func (s *ProductService) List(ctx context.Context, keyword, pageParam string) (*ProductPage, error) {
	page := 1
	if pageParam != "" {
		parsed, err := strconv.Atoi(pageParam)
		if err == nil {
			page = parsed
		}
	}

	total, err := s.productRepo.CountSearch(ctx, keyword)
	if err != nil {
		return nil, err
	}

	pages := int((total + PageSize - 1) / PageSize)
	if pages < 1 {
		pages = 1
	}
	if page > pages || page < 1 {
		page = pages
	}

	products, err := s.productRepo.SearchPage(ctx, keyword, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}

	return &ProductPage{Products: products, Page: page, Pages: pages}, nil
}

func (s *ProductService) TopProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetTopRated(ctx, TopRatedFloor, TopRatedLimit)
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateSample inserts a product with placeholder defaults owned by the
// calling admin, ready to be edited into shape.
func (s *ProductService) CreateSample(ctx context.Context, ownerID string) (*models.Product, error) {
	product := &models.Product{
		UserID:       &ownerID,
		Name:         "Sample Name",
		Brand:        "Sample Brand",
		Category:     "Sample Category",
		Description:  "",
		Price:        decimal.Zero,
		CountInStock: 0,
		Image:        "/placeholder.png",
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductUpdateInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Brand = in.Brand
	product.Category = in.Category
	product.Description = in.Description
	product.CountInStock = in.CountInStock

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// AttachImage records the served path of an uploaded product image.
func (s *ProductService) AttachImage(ctx context.Context, id, imagePath string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	product.Image = imagePath
	return s.productRepo.Update(ctx, product)
}
