package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/proshop/backend/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_PaginationGrid(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		createTestProduct(t, db, fmt.Sprintf("Gadget %02d", i), 9.99, 3)
	}

	page, err := svc.List(ctx, "", "1")
	require.NoError(t, err)
	assert.Len(t, page.Products, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)

	page, err = svc.List(ctx, "", "3")
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 3, page.Page)

	// Out of range clamps to the last page.
	page, err = svc.List(ctx, "", "99")
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 3, page.Page)

	// Non-integer defaults to page 1.
	page, err = svc.List(ctx, "", "abc")
	require.NoError(t, err)
	assert.Len(t, page.Products, 5)
	assert.Equal(t, 1, page.Page)

	// Missing page defaults to page 1.
	page, err = svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}

func TestList_KeywordIsCaseInsensitiveSubstring(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	createTestProduct(t, db, "AirPods Pro", 249.00, 5)
	createTestProduct(t, db, "Sony Headphones", 99.00, 5)
	createTestProduct(t, db, "Wireless AirPods", 129.00, 5)

	page, err := svc.List(ctx, "airpods", "1")
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 1, page.Pages)
	for _, p := range page.Products {
		assert.Contains(t, p.Name, "AirPods")
	}
}

func TestList_EmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	page, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Pages)
}

func TestTopProducts_FilterCapAndOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	ratings := []float64{4.9, 3.5, 4.1, 4.5, 2.0, 4.8, 4.2, 4.7}
	for i, rating := range ratings {
		product := createTestProduct(t, db, fmt.Sprintf("Rated %02d", i), 10.00, 1)
		require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("rating", decimal.NewFromFloat(rating)).Error)
	}

	top, err := svc.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, top, 5)

	prev := decimal.NewFromInt(6)
	for _, p := range top {
		assert.True(t, p.Rating.GreaterThanOrEqual(decimal.NewFromInt(4)), "rating %s below floor", p.Rating)
		assert.True(t, p.Rating.LessThanOrEqual(prev), "ratings not descending")
		prev = p.Rating
	}
}

func TestTopProducts_EmptyResultIsValid(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	createTestProduct(t, db, "Unloved", 10.00, 1)

	top, err := svc.TopProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestCreateSample_PlaceholderDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	admin := createTestUser(t, db, "admin@example.com", true)

	product, err := svc.CreateSample(context.Background(), admin.ID)
	require.NoError(t, err)

	assert.Equal(t, "Sample Name", product.Name)
	assert.Equal(t, "Sample Brand", product.Brand)
	assert.Equal(t, "Sample Category", product.Category)
	assert.True(t, product.Price.IsZero())
	assert.Equal(t, 0, product.CountInStock)
	require.NotNil(t, product.UserID)
	assert.Equal(t, admin.ID, *product.UserID)
}

func TestUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Old Name", 10.00, 1)

	updated, err := svc.Update(ctx, product.ID, ProductUpdateInput{
		Name:         "New Name",
		Price:        decimal.NewFromFloat(19.99),
		Brand:        "New Brand",
		Category:     "New Category",
		Description:  "updated",
		CountInStock: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 7, updated.CountInStock)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(19.99)))

	_, err = svc.Update(ctx, "missing", ProductUpdateInput{Name: "x"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, svc.Delete(ctx, product.ID))
	_, err = svc.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrProductNotFound)
}
