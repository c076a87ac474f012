package middlewares

import (
	"log"
	"net/http"

	"github.com/proshop/backend/app/helpers"
	"github.com/unrolled/render"
)

// AdminMiddleware runs after AuthMiddleware and rejects non-admin callers.
func AdminMiddleware(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.UserFromRequest(r)
			if user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided"})
				return
			}

			if !user.IsAdmin {
				log.Printf("AdminMiddleware: user %s (%s) attempted an admin operation", user.ID, user.Email)
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{"detail": "Not authorized as an admin"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
