package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fleetora/fleet-ops-api/internal/models"
	"github.com/fleetora/fleet-ops-api/internal/utils"
)

type contextKey string

const staffContextKey contextKey = "staff"

// Logger logs every request with method, path and duration
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		app.infoLog.Printf("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

// Authenticate checks the Bearer token and puts the staff claims on the
// request context.
func (app *application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Unauthorized(w, "missing Authorization header")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(w, "Authorization header must be of the form 'Bearer <token>'")
			return
		}

		claims, err := utils.ParseJWT(parts[1], app.config.JWT)
		if err != nil {
			app.errorLog.Println("ERROR_01_Authenticate:", err)
			utils.Unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), staffContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only the listed roles past
func (app *application) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(staffContextKey).(*models.JWT)
			if !ok {
				utils.Unauthorized(w, "authentication required")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.Unauthorized(w, "insufficient permissions")
		})
	}
}
