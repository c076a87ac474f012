package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/proshop/backend/app/services"
	"github.com/unrolled/render"
)

func detail(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	_ = rnd.JSON(w, status, map[string]string{"detail": message})
}

// writeDomainError maps service errors onto HTTP statuses with a
// machine-readable body. Anything unrecognized is a 500.
func writeDomainError(rnd *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoOrderItems):
		detail(rnd, w, http.StatusBadRequest, "No order items")
	case errors.Is(err, services.ErrAlreadyReviewed):
		detail(rnd, w, http.StatusBadRequest, "Product already reviewed")
	case errors.Is(err, services.ErrRatingRequired):
		detail(rnd, w, http.StatusBadRequest, "Please select a rating")
	case errors.Is(err, services.ErrEmailTaken):
		detail(rnd, w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		detail(rnd, w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrProductNotFound):
		detail(rnd, w, http.StatusNotFound, "Product does not exist")
	case errors.Is(err, services.ErrOrderNotFound):
		detail(rnd, w, http.StatusNotFound, "Order does not exist")
	case errors.Is(err, services.ErrUserNotFound):
		detail(rnd, w, http.StatusNotFound, "User does not exist")
	case errors.Is(err, services.ErrNotOrderOwner):
		detail(rnd, w, http.StatusForbidden, "Not authorized to view this order")
	default:
		log.Printf("handler: unexpected error: %v", err)
		detail(rnd, w, http.StatusInternalServerError, "Internal server error")
	}
}
