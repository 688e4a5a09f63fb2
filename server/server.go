package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/plugin/ai"
	"github.com/useadvisor/advisor/plugin/ai/session"
	apiv1 "github.com/useadvisor/advisor/server/router/api/v1"
	"github.com/useadvisor/advisor/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	httpServer *http.Server
	sessions   *session.Manager
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	llm, err := ai.NewLLMService(ctx, ai.NewLLMConfigFromProfile(profile))
	if err != nil {
		return nil, err
	}
	classifierLLM, err := ai.NewLLMService(ctx, ai.NewClassifierConfigFromProfile(profile))
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.DefaultMaxIdle, session.DefaultSweepInterval)

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
		sessions:   sessions,
	}

	apiV1Service := apiv1.NewAPIV1Service(profile, store, llm, ai.NewIntentClassifier(classifierLLM), sessions)
	apiV1Service.RegisterRoutes(e)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", profile.Addr, profile.Port),
		Handler: e,
		// Streaming responses stay open indefinitely, so no WriteTimeout.
		ReadHeaderTimeout: 30 * time.Second,
	}
	return s, nil
}

func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.Close()
	return s.httpServer.Shutdown(ctx)
}
