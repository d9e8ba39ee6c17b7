// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/auth"
	"github.com/google/uuid"
)

type EmployerContextKey string

var EmployerIDKey EmployerContextKey = "jobdesk_employer_id"

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(tokenManager *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "No authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondWithError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			claims, err := tokenManager.Validate(parts[1])
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			employerID, err := claims.Employer()
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid token subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmployerID(r.Context(), employerID)))
		})
	}
}

// WithEmployerID returns a copy of ctx carrying the authenticated employer.
func WithEmployerID(ctx context.Context, employerID uuid.UUID) context.Context {
	return context.WithValue(ctx, EmployerIDKey, employerID)
}

// EmployerID returns the authenticated employer of a request context.
func EmployerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(EmployerIDKey).(uuid.UUID)
	return id, ok
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
