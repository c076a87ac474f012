package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/proshop/backend/app/helpers"
	"github.com/proshop/backend/app/repositories"
	"github.com/proshop/backend/app/services"
	"github.com/unrolled/render"
)

// AuthMiddleware validates the Bearer token, loads the user behind it and
// stashes the user in the request context.
func AuthMiddleware(tokens *services.TokenService, userRepo repositories.UserRepositoryImpl, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.UserID)
			if err != nil || user == nil {
				log.Printf("AuthMiddleware: user %s from token not found: %v", claims.UserID, err)
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"detail": "User not found"})
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
