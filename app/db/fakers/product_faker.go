package fakers

import (
	"log"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/proshop/backend/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var brands = []string{"Apple", "Samsung", "Sony", "Logitech", "Canon"}
var categories = []string{"Electronics", "Accessories", "Cameras", "Audio"}

func ProductFaker(db *gorm.DB) *models.Product {
	user := UserFaker(db)
	if err := db.FirstOrCreate(user, "email = ?", user.Email).Error; err != nil {
		log.Fatal("Failed to create/find user:", err)
	}

	price := decimal.NewFromFloat(float64(rand.Intn(90000)+999) / 100)

	return &models.Product{
		ID:           uuid.New().String(),
		UserID:       &user.ID,
		Name:         faker.Word() + " " + faker.Word(),
		Image:        "/placeholder.png",
		Brand:        brands[rand.Intn(len(brands))],
		Category:     categories[rand.Intn(len(categories))],
		Description:  faker.Sentence(),
		Price:        price,
		CountInStock: rand.Intn(50),
	}
}
