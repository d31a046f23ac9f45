package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/registroapp/registro-api/api"
	"github.com/registroapp/registro-api/config"
	"github.com/registroapp/registro-api/databases"
	"github.com/registroapp/registro-api/mailer"
	"github.com/registroapp/registro-api/models"
	"github.com/registroapp/registro-api/otp"
)

// Registration drives the two-phase registration flow: candidate data is
// staged in memory behind an emailed code and only committed to mongo once
// the code is confirmed.
type Registration struct {
	DB     databases.UsuarioDatabase
	Store  otp.Store
	Sender mailer.Sender

	CodeLength   int
	TTL          time.Duration
	MaxAttempts  int
	EmailTimeout time.Duration
}

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterHandler validates a submission, sends the verification code and
// stages the candidate usuario under a fresh session handle
func (reg Registration) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req models.RegistroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validarRegistro(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// one field at a time so the client keeps getting distinct messages
	duplicados := []struct {
		filter  bson.M
		mensaje string
	}{
		{bson.M{"username": req.Username}, "El nombre de usuario ya está en uso"},
		{bson.M{"email": req.Email}, "El correo electrónico ya está registrado"},
		{bson.M{"telefono": req.Telefono}, "El número de teléfono ya está registrado"},
	}
	for _, d := range duplicados {
		count, err := reg.DB.CountDocuments(ctx, d.filter)
		if err != nil {
			config.ErrorStatus("failed to check existing usuario", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			writeError(w, http.StatusBadRequest, d.mensaje)
			return
		}
	}

	codigo, err := otp.GenerateCode(reg.CodeLength)
	if err != nil {
		config.ErrorStatus("failed to generate verification code", http.StatusInternalServerError, w, err)
		return
	}

	// The code goes out before anything is staged. If the relay rejects it
	// there is no pending entry promising a code the user never received.
	sendCtx, sendCancel := context.WithTimeout(r.Context(), reg.EmailTimeout)
	defer sendCancel()
	if err := reg.Sender.SendCode(sendCtx, req.Email, codigo); err != nil {
		zap.S().Errorw("failed to send verification email", "error", err)
		writeError(w, http.StatusInternalServerError, "Error al registrar usuario")
		return
	}

	usuario := models.Usuario{
		Nombre:           req.Nombre,
		Ap:               req.Ap,
		Am:               req.Am,
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		Telefono:         req.Telefono,
		PreguntaSecreta:  req.PreguntaSecreta,
		RespuestaSecreta: req.RespuestaSecreta,
		Rol:              "usuario",
	}
	tempToken := reg.Store.Stage(usuario, codigo, reg.TTL)

	writeJSON(w, http.StatusOK, models.RegistroResponse{
		Success:     true,
		Mensaje:     "Código de verificación enviado",
		Requires2FA: true,
		Canal:       "email",
		Destino:     otp.MaskEmail(req.Email),
		TempToken:   tempToken,
	})
}

// VerifyHandler checks a submitted code against the staged entry and, on a
// match, commits the usuario to mongo
func (reg Registration) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req models.VerificarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	pending, ok := reg.Store.Get(req.TempToken)
	if !ok {
		writeError(w, http.StatusBadRequest, "Sesión 2FA inválida")
		return
	}

	if time.Now().After(pending.ExpiresAt) {
		reg.Store.Remove(req.TempToken)
		writeError(w, http.StatusBadRequest, "Código expirado")
		return
	}

	// string comparison on purpose, codes are zero-padded
	if req.Codigo != pending.Code {
		intentos, ok := reg.Store.RecordFailedAttempt(req.TempToken)
		if !ok {
			writeError(w, http.StatusBadRequest, "Sesión 2FA inválida")
			return
		}
		if intentos >= reg.MaxAttempts {
			reg.Store.Remove(req.TempToken)
			writeError(w, http.StatusTooManyRequests, "Demasiados intentos")
			return
		}
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Código incorrecto. %d intentos restantes", reg.MaxAttempts-intentos))
		return
	}

	usuario, err := reg.commit(r.Context(), pending.Usuario)
	if err != nil {
		// the entry stays staged on any commit failure so the already
		// confirmed code can be retried
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, http.StatusBadRequest, duplicadoMensaje(err))
			return
		}
		zap.S().Errorw("failed to commit usuario", "error", err)
		writeError(w, http.StatusInternalServerError, "Error al verificar código")
		return
	}

	reg.Store.Remove(req.TempToken)

	writeJSON(w, http.StatusOK, models.VerificarResponse{
		Success: true,
		Mensaje: "Usuario registrado con éxito",
		Usuario: usuario,
	})
}

// ResendHandler issues a fresh code for an existing session, resetting the
// attempt counter and the expiry. The original code is not required.
func (reg Registration) ResendHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req models.ReenviarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	pending, ok := reg.Store.Get(req.TempToken)
	if !ok {
		writeError(w, http.StatusBadRequest, "Sesión 2FA inválida")
		return
	}

	codigo, err := otp.GenerateCode(reg.CodeLength)
	if err != nil {
		config.ErrorStatus("failed to generate verification code", http.StatusInternalServerError, w, err)
		return
	}

	sendCtx, sendCancel := context.WithTimeout(r.Context(), reg.EmailTimeout)
	defer sendCancel()
	if err := reg.Sender.SendCode(sendCtx, pending.Usuario.Email, codigo); err != nil {
		// the previous code stays active, nothing was reissued yet
		zap.S().Errorw("failed to resend verification email", "error", err)
		writeError(w, http.StatusInternalServerError, "Error al reenviar código")
		return
	}

	if !reg.Store.Reissue(req.TempToken, codigo, reg.TTL) {
		// swept between the lookup and the reissue
		writeError(w, http.StatusBadRequest, "Sesión 2FA inválida")
		return
	}

	writeJSON(w, http.StatusOK, models.ReenviarResponse{
		Success: true,
		Mensaje: "Código reenviado",
		Canal:   "email",
		Destino: otp.MaskEmail(pending.Usuario.Email),
	})
}

// commit hashes the staged credentials and inserts the durable, verified
// usuario. The insert is the durability boundary and the last step.
func (reg Registration) commit(parent context.Context, usuario models.Usuario) (models.UsuarioPublico, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(usuario.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UsuarioPublico{}, fmt.Errorf("failed to hash password: %w", err)
	}
	usuario.Password = string(hashedPassword)

	hashedRespuesta, err := bcrypt.GenerateFromPassword([]byte(usuario.RespuestaSecreta), bcrypt.DefaultCost)
	if err != nil {
		return models.UsuarioPublico{}, fmt.Errorf("failed to hash security answer: %w", err)
	}
	usuario.RespuestaSecreta = string(hashedRespuesta)

	usuario.Verificado = true
	usuario.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(parent)
	defer cancel()
	res, err := reg.DB.InsertOne(ctx, usuario)
	if err != nil {
		return models.UsuarioPublico{}, err
	}

	id := ""
	if oid, ok := res.Decode().(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	return models.UsuarioPublico{
		ID:         id,
		Nombre:     usuario.Nombre,
		Email:      usuario.Email,
		Verificado: true,
	}, nil
}

// duplicadoMensaje maps a duplicate-key write error to the field whose unique
// index rejected the insert. The index name is only available in the write
// error message, so this matches on it, falling back to a neutral message.
func duplicadoMensaje(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			switch {
			case strings.Contains(e.Message, "username"):
				return "El nombre de usuario ya está en uso"
			case strings.Contains(e.Message, "email"):
				return "El correo electrónico ya está registrado"
			case strings.Contains(e.Message, "telefono"):
				return "El número de teléfono ya está registrado"
			}
		}
	}
	return "El usuario ya está registrado"
}

func validarRegistro(req models.RegistroRequest) error {
	if req.Nombre == "" || req.Ap == "" || req.Am == "" || req.Username == "" ||
		req.Email == "" || req.Password == "" || req.Telefono == "" ||
		req.PreguntaSecreta == "" || req.RespuestaSecreta == "" {
		return errors.New("Todos los campos son obligatorios")
	}
	if !emailRegexp.MatchString(req.Email) {
		return errors.New("El correo electrónico no es válido")
	}
	return validarPassword(req.Password)
}

func validarPassword(password string) error {
	if len(password) < 8 {
		return errors.New("La contraseña debe tener al menos 8 caracteres")
	}
	var upper, lower, digit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("La contraseña debe incluir mayúsculas, minúsculas y números")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, mensaje string) {
	b, _ := json.Marshal(models.ErrorResponse{Error: mensaje})
	w.WriteHeader(status)
	w.Write(b)
}
