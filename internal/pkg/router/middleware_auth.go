package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gobudget/internal/pkg/jwt"
)

type authConfig struct {
	verifier    jwt.JWT
	revocations RevocationChecker
	cookie      string
	public      map[string]map[string]struct{}
}

// sessionToken reads the session cookie, falling back to a Bearer header.
func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
		return p[1]
	}

	return ""
}

func middlewareAuthentication(cfg authConfig) Middleware {
	verify := func(token string) (jwt.Claims, bool) {
		if token == "" || cfg.verifier == nil {
			return jwt.Claims{}, false
		}

		claims, err := cfg.verifier.Verify(token)
		if err != nil {
			return jwt.Claims{}, false
		}
		if cfg.revocations != nil && cfg.revocations.Revoked(claims.ID) {
			return jwt.Claims{}, false
		}

		return claims, true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cfg.cookie)
			claims, ok := verify(token)

			if s, found := cfg.public[r.Method]; found {
				if _, public := s[matchedRoutePath(r)]; public {
					if ok {
						r = r.WithContext(jwt.SetAuth(r.Context(), claims))
					}
					next.ServeHTTP(w, r)
					return
				}
			}

			if token == "" {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}
			if !ok {
				writeJSON(w, errorResponse{Message: "Invalid or expired session"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
