package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/proshop/backend/app/helpers"
	"github.com/proshop/backend/app/models"
	"github.com/proshop/backend/app/services"
	"github.com/unrolled/render"
)

type UserHandler struct {
	userSvc   *services.UserService
	tokenSvc  *services.TokenService
	render    *render.Render
	validator *validator.Validate
}

func NewUserHandler(userSvc *services.UserService, tokenSvc *services.TokenService, rnd *render.Render, v *validator.Validate) *UserHandler {
	return &UserHandler{userSvc: userSvc, tokenSvc: tokenSvc, render: rnd, validator: v}
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type profilePayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type adminUserPayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	IsAdmin bool   `json:"isAdmin"`
}

// authResponse mirrors the user fields plus a fresh access token.
type authResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"isAdmin"`
	Token    string `json:"token"`
}

func (h *UserHandler) authResponseFor(user *models.User) (*authResponse, error) {
	token, err := h.tokenSvc.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &authResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		IsAdmin:  user.IsAdmin,
		Token:    token,
	}, nil
}

func (h *UserHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		detail(h.render, w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validator.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"detail": "Validation failed", "errors": helpers.FormatValidationErrors(verrs)})
			return false
		}
		detail(h.render, w, http.StatusBadRequest, "Validation failed")
		return false
	}
	return true
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.userSvc.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}

	resp, err := h.authResponseFor(user)
	if err != nil {
		log.Printf("Login: failed to sign token for %s: %v", user.Email, err)
		detail(h.render, w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.userSvc.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}

	resp, err := h.authResponseFor(user)
	if err != nil {
		log.Printf("Register: failed to sign token for %s: %v", user.Email, err)
		detail(h.render, w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/users/profile (authenticated).
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromRequest(r)
	_ = h.render.JSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile (authenticated). Responds with
// the updated user and a fresh token since the email claim may have changed.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromRequest(r)

	var payload profilePayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}

	updated, err := h.userSvc.UpdateProfile(r.Context(), user.ID, payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}

	resp, err := h.authResponseFor(updated)
	if err != nil {
		log.Printf("UpdateProfile: failed to sign token for %s: %v", updated.Email, err)
		detail(h.render, w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, resp)
}

// Users handles GET /api/users (admin).
func (h *UserHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, users)
}

// UserDetail handles GET /api/users/{id} (admin).
func (h *UserHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.userSvc.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/{id} (admin), including the admin flag.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload adminUserPayload
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.userSvc.AdminUpdate(r.Context(), id, payload.Name, payload.Email, payload.IsAdmin)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/{id} (admin).
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.userSvc.Delete(r.Context(), id); err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	detail(h.render, w, http.StatusOK, "User was deleted")
}
