// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
)

// ServiceName identifies this API in traces
const ServiceName = "job-board-api"

// MyServer holds every dependency the route handlers need
type MyServer struct {
	DB        *database.DBinstanceStruct
	Config    config.App
	Tokens    *auth.TokenIssuer
	Blacklist auth.JwtBlacklistStore
	AuthLog   *auth.AuthLogger
}

// NewMyServer wires handler dependencies from cfg
func NewMyServer(cfg config.App, db *database.DBinstanceStruct, blacklist auth.JwtBlacklistStore) *MyServer {
	return &MyServer{
		DB:        db,
		Config:    cfg,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL),
		Blacklist: blacklist,
		AuthLog:   auth.NewAuthLogger(cfg.Logging, cfg.AuthLogPath),
	}
}

// NewServer construct new http.Server serving the API on the configured port
func NewServer(s *MyServer) *http.Server {
	var handler http.Handler = s.RegisterRoutes()
	if s.Config.OTLPEndpoint != "" {
		handler = otelhttp.NewHandler(handler, ServiceName)
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
