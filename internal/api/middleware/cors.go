package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"mdtboard/internal/platform/config"
)

// CORS honors the configured origins and always allows credentials, since
// the session cookie rides cross-site.
type CORS struct {
	cfg config.CORSConfig
}

func NewCORS(cfg config.CORSConfig) *CORS {
	return &CORS{cfg: cfg}
}

func (c *CORS) allowed(origin string) bool {
	for _, allowed := range c.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (c *CORS) Handle(next http.Handler) http.Handler {
	methods := strings.Join(c.cfg.AllowedMethods, ", ")
	if methods == "" {
		methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	}
	headers := strings.Join(c.cfg.AllowedHeaders, ", ")
	if headers == "" {
		headers = "Authorization, Content-Type"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && c.allowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			if c.cfg.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(c.cfg.MaxAge))
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
