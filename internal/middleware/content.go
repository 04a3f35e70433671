package middleware

import (
	"net/http"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/response"
)

const msgUnsupportedMedia = "Content-Type must be application/json"

// RequireJSON rejects requests that carry a body with a Content-Type
// other than application/json. Bodyless requests pass through. The
// rejection is a 415 with a {message} body, unlike chi's AllowContentType
// which writes no body.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}
		mediaType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
		if strings.ToLower(strings.TrimSpace(mediaType)) != "application/json" {
			response.Message(w, http.StatusUnsupportedMediaType, msgUnsupportedMedia)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowed answers known routes hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
}
