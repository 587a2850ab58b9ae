package httpapi

import (
	"net/http"

	"github.com/riskibarqy/teamsync/internal/platform/id"
	"github.com/riskibarqy/teamsync/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	CORSAllowedOrigins []string
	// Auth resolves the caller for every procedure route.
	Auth       Middleware
	RequestIDs id.Generator
	Logger     *logging.Logger
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "teamsync"
	}
	if cfg.RequestIDs == nil {
		cfg.RequestIDs = id.NewUUIDGenerator("req")
	}
	auth := cfg.Auth
	if auth == nil {
		auth = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerFixtureRoutes(mux, handler, auth)

	return chain(mux,
		RequestTracing(cfg.ServiceName),
		RequestID(cfg.RequestIDs),
		RequestLogging(logger),
		CORS(cfg.CORSAllowedOrigins),
		recoverPanic(logger),
	)
}
