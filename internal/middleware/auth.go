package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/auth"
)

// tokenQueryParam carries the token for WebSocket upgrades, where browsers
// cannot set headers.
const tokenQueryParam = "access_token"

// RequireAuth verifies the bearer token and populates AuthContext.
func RequireAuth(provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := provider.VerifyToken(r.Context(), token)
			if err != nil || claims == nil || claims.UID == "" {
				unauthorized(w)
				return
			}

			recordUser(r.Context(), claims.UID)
			ctx := auth.WithAuth(r.Context(), auth.AuthContext{
				UserID: claims.UID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken returns the token from the Authorization header, falling back
// to the access_token query parameter.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get(tokenQueryParam)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="campusquest"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": auth.Message(auth.CodeInvalidToken),
		"code":  auth.CodeInvalidToken,
	})
}
