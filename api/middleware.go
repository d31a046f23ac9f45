package api

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims carried by the session tokens issued at login
type Claims struct {
	Rol string `json:"rol"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

// SetJWTSecret installs the signing secret used by Middleware and NewToken
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// NewToken signs a session token for the given usuario id and rol
func NewToken(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// Middleware validates the bearer token on a route and, when roles are given,
// requires the token's rol claim to be one of them
func Middleware(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "Acceso denegado. No hay token proporcionado."}`))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			zap.S().Debugw("invalid token", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "Token inválido."}`))
			return
		}

		if len(roles) > 0 && !contains(roles, claims.Rol) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "Acceso denegado. No tienes permisos suficientes."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func contains(roles []string, rol string) bool {
	for _, r := range roles {
		if r == rol {
			return true
		}
	}
	return false
}

// CORS mirrors the permissive cors() setup the frontend expects
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
