package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// NewCORSMiddleware returns a CORS handler that accepts requests from any
// origin. The API carries no credentials, so wildcard origins are allowed.
func NewCORSMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
