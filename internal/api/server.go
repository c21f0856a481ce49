package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/voxgate/voxgate/internal/group"
	"github.com/voxgate/voxgate/internal/infrastructure/config"
	"github.com/voxgate/voxgate/internal/infrastructure/database"
	"github.com/voxgate/voxgate/internal/infrastructure/logging"
	"github.com/voxgate/voxgate/internal/skill"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// SkillHandler processes one decoded platform event.
type SkillHandler interface {
	Handle(ctx context.Context, event skill.RequestEnvelope) (skill.ResponseEnvelope, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.ServerConfig
	Logger  *logging.Logger
	Skill   SkillHandler
	Groups  group.Store
	DB      *database.DB
	Version string
}

// Server is the HTTP server carrying the inbound skill endpoint.
//
// It manages the listener, routes and middleware. The server is created
// with New() and started with Start().
type Server struct {
	cfg     config.ServerConfig
	logger  *logging.Logger
	skill   SkillHandler
	groups  group.Store
	db      *database.DB
	version string
	server  *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, skill handler)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Skill == nil {
		return nil, fmt.Errorf("skill handler is required")
	}

	return &Server{
		cfg:     deps.Config,
		logger:  deps.Logger,
		skill:   deps.Skill,
		groups:  deps.Groups,
		db:      deps.DB,
		version: deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// The listener runs in a background goroutine; the server is stopped
// with Close().
//
// Parameters:
//   - ctx: Context for startup (not used for listener lifetime)
//
// Returns:
//   - error: If the server fails to start (port in use, etc.)
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server listening", "address", s.server.Addr)

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
