package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	listHTTP "list-timeline/internal/list/delivery/http"
	"list-timeline/internal/middleware"
	"list-timeline/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Timeline domain
	listHandler listHTTP.Handler
	middleware  middleware.Middleware
	readiness   func() error
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	ListHandler listHTTP.Handler
	Middleware  middleware.Middleware
	Readiness   func() error // nil means always ready
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		listHandler: cfg.ListHandler,
		middleware:  cfg.Middleware,
		readiness:   cfg.Readiness,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.listHandler == nil {
		return errors.New("list handler is required")
	}
	return nil
}

// Engine exposes the router, mainly for tests.
func (srv HTTPServer) Engine() *gin.Engine {
	return srv.gin
}
