package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/registroapp/registro-api/api"
	"github.com/registroapp/registro-api/config"
	"github.com/registroapp/registro-api/databases"
	"github.com/registroapp/registro-api/models"
)

// Usuario exported for testing purposes
type Usuario struct {
	DB databases.UsuarioDatabase
}

// UsuarioHandler returns a usuario given a usuarioID
func (u Usuario) UsuarioHandler(w http.ResponseWriter, r *http.Request) {
	usuarioID := mux.Vars(r)["usuario_id"]

	zap.S().Debugf("usuario_id: %v", usuarioID)

	uID, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var dbResp models.Usuario
	err = u.DB.FindOne(ctx, bson.M{"_id": uID}).Decode(&dbResp)
	if err != nil {
		config.ErrorStatus("failed to get usuario by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteUsuarioHandler removes a usuario by ID, admin only
func (u Usuario) DeleteUsuarioHandler(w http.ResponseWriter, r *http.Request) {
	usuarioID := mux.Vars(r)["usuario_id"]

	uID, err := primitive.ObjectIDFromHex(usuarioID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := u.DB.DeleteOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to delete usuario", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		writeError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
