package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/registroapp/registro-api/api"
	"github.com/registroapp/registro-api/config"
	"github.com/registroapp/registro-api/databases"
	"github.com/registroapp/registro-api/models"
)

// Auth issues session tokens for committed usuarios
type Auth struct {
	DB databases.UsuarioDatabase
}

// LoginHandler checks credentials against the stored bcrypt hash and returns
// a signed token carrying the usuario's rol
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var usuario models.Usuario
	err := a.DB.FindOne(ctx, bson.M{"email": req.Email}).Decode(&usuario)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := api.NewToken(api.Claims{
		Rol: usuario.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		ID:    usuario.ID.Hex(),
	})
}
