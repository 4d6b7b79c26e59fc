package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	clientAPI "credvault/internal/app/server/api/http/client"
	credentialAPI "credvault/internal/app/server/api/http/credential"
	healthAPI "credvault/internal/app/server/api/http/health"
	"credvault/internal/app/server/api/http/middleware"
	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/app/server/api/http/middleware/logger"
	"credvault/internal/app/server/api/http/middleware/metrics"
	userAPI "credvault/internal/app/server/api/http/user"
	"credvault/internal/domain/client"
	"credvault/internal/domain/credential"
	"credvault/internal/domain/session"
	"credvault/internal/domain/user"
	"credvault/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health     *healthAPI.Handler
	User       *userAPI.Handler
	Client     *clientAPI.Handler
	Credential *credentialAPI.Handler
}

// New builds the chi mux with every operation registered through huma.
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("CredVault API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Client.SetupRoutes(API)
	h.Credential.SetupRoutes(API)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage.Pool(), log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	metricsMW := metrics.New(prometheus.DefaultRegisterer)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(metricsMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(metricsMW.Middleware())
	publicUserMWs := middlewares.GetAllAndClear()
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(metricsMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log,
		publicUserMWs, middlewares.GetAllAndClear())

	clientRepo := postgres.NewClientRepository(storage.Pool(), log)
	clientService := client.NewService(clientRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(metricsMW.Middleware())
	clientHandler := clientAPI.NewHandler(clientService, log, middlewares.GetAllAndClear())

	credentialRepo := postgres.NewCredentialRepository(storage.Pool(), log)
	credentialService := credential.NewService(credentialRepo, userRepo, credential.NewFactory(), log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(metricsMW.Middleware())
	credentialHandler := credentialAPI.NewHandler(credentialService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:     healthHandler,
		User:       userHandler,
		Client:     clientHandler,
		Credential: credentialHandler,
	}
}
