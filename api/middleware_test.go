package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/registroapp/registro-api/api"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func signedToken(t *testing.T, rol string) string {
	token, err := api.NewToken(api.Claims{
		Rol: rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "abc123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	assert.NoError(t, err)
	return token
}

func TestMiddlewareNoToken(t *testing.T) {
	api.SetJWTSecret("secreto")

	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	api.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Acceso denegado. No hay token proporcionado.")
}

func TestMiddlewareInvalidToken(t *testing.T) {
	api.SetJWTSecret("secreto")

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	api.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token inválido.")
}

func TestMiddlewareValidToken(t *testing.T) {
	api.SetJWTSecret("secreto")

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "usuario"))
	rr := httptest.NewRecorder()
	api.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	api.SetJWTSecret("otro")
	token := signedToken(t, "usuario")
	api.SetJWTSecret("secreto")

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	api.Middleware(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMiddlewareRoleCheck(t *testing.T) {
	api.SetJWTSecret("secreto")

	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "usuario"))
	rr := httptest.NewRecorder()
	api.Middleware(okHandler(), "admin").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "No tienes permisos suficientes.")

	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "admin"))
	rr = httptest.NewRecorder()
	api.Middleware(okHandler(), "admin").ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	req, _ := http.NewRequest("OPTIONS", "/", nil)
	rr := httptest.NewRecorder()
	api.CORS(okHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
