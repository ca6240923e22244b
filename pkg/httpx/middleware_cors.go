package httpx

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware returns a Middleware that handles cross-origin requests for
// browser-based clients. Origins is the list of allowed origins; "*" allows
// any origin, which is fine for the public invite endpoints since auth is
// carried in the Authorization header rather than cookies.
func CORSMiddleware(origins []string) Middleware {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Window"},
		MaxAge:         300,
	})

	return c.Handler
}
