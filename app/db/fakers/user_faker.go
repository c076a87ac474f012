package fakers

import (
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/proshop/backend/app/helpers"
	"github.com/proshop/backend/app/models"
	"gorm.io/gorm"
)

func UserFaker(db *gorm.DB) *models.User {
	email := faker.Email()
	return &models.User{
		ID:       uuid.New().String(),
		Name:     faker.Name(),
		Username: email,
		Email:    email,
		Password: helpers.HashPassword("password"),
		IsAdmin:  false,
	}
}

func AdminFaker(db *gorm.DB) *models.User {
	return &models.User{
		ID:       uuid.New().String(),
		Name:     "Admin",
		Username: "admin@example.com",
		Email:    "admin@example.com",
		Password: helpers.HashPassword("password"),
		IsAdmin:  true,
	}
}
