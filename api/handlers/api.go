package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/registroapp/registro-api/api"
	"github.com/registroapp/registro-api/api/scheduler"
	"github.com/registroapp/registro-api/config"
	"github.com/registroapp/registro-api/databases"
	"github.com/registroapp/registro-api/mailer"
	"github.com/registroapp/registro-api/models"
	"github.com/registroapp/registro-api/otp"
)

// App stores the router, config and collaborators, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Store    otp.Store
	Reaper   *scheduler.Reaper
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.CORS)

	udb := databases.NewUsuarioDatabase(a.dbHelper)
	reg := Registration{
		DB:           udb,
		Store:        a.Store,
		Sender:       mailer.New(&a.Config),
		CodeLength:   a.Config.OTPCodeLength,
		TTL:          a.Config.OTPTTL,
		MaxAttempts:  a.Config.OTPMaxAttempts,
		EmailTimeout: a.Config.EmailTimeout,
	}
	auth := Auth{DB: udb}
	u := Usuario{DB: udb}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/usuarios/register", http.HandlerFunc(reg.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/usuarios/register/2fa/verificar", http.HandlerFunc(reg.VerifyHandler)).Methods("POST")
	apiCreate.Handle("/usuarios/register/2fa/reenviar", http.HandlerFunc(reg.ResendHandler)).Methods("POST")

	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")

	apiCreate.Handle("/usuario/{usuario_id}", api.Middleware(http.HandlerFunc(u.UsuarioHandler))).Methods("GET")
	apiCreate.Handle("/usuario/{usuario_id}", api.Middleware(http.HandlerFunc(u.DeleteUsuarioHandler), "admin")).Methods("DELETE")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("connected to database")

	a.Store = otp.NewMemoryStore()
	a.Reaper = scheduler.NewReaper(a.Store, a.Config.OTPSweepInterval)
	api.SetJWTSecret(a.Config.JWTSecret)

	a.Router = a.New()
	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
