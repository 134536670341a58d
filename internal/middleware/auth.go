package middleware

import (
	"net/http"
	"strings"

	"filevault/internal/auth"
	"filevault/internal/httputil"
)

// AuthMiddleware verifies the Bearer token on every request and puts the
// authenticated user ID in the request context. A few routes stay public:
// health checks, CORS pre-flights, and share resolution, where the
// unguessable grant ID is the credential.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header must be a Bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func isPublicRoute(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	if r.URL.Path == "/health" {
		return true
	}
	// GET /api/shares/{id} is the public share resolution endpoint;
	// creating, listing and revoking shares stays authenticated
	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/shares/") {
		return true
	}
	return false
}
