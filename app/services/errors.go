package services

import "errors"

// Domain errors. Handlers map these onto HTTP statuses; nothing here is fatal
// to the process.
var (
	ErrNoOrderItems       = errors.New("no order items")
	ErrOrderNotFound      = errors.New("order does not exist")
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotOrderOwner      = errors.New("not authorized to view this order")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrRatingRequired     = errors.New("please select a rating")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
