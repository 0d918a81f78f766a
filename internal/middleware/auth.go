package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/claimdesk/claimdesk/internal/ctxkeys"
	"github.com/golang-jwt/jwt/v5"
)

// BearerAuth verifies an optional HS256 bearer token and puts its subject into
// the context as the uploader identity. With an empty secret, auth is disabled
// and requests pass through anonymously (development mode).
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				// Invalid token, continue without identity
				next.ServeHTTP(w, r)
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUploader(r.Context(), subject)))
		})
	}
}
