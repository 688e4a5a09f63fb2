package v1

import (
	"github.com/labstack/echo/v5"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/plugin/ai"
	"github.com/useadvisor/advisor/plugin/ai/session"
	"github.com/useadvisor/advisor/store"
)

// APIV1Service bundles everything a request handler needs: the profile for
// runtime flags, the durable store, the generation backend, the relevance
// gate, and the live conversation cache.
type APIV1Service struct {
	Profile    *profile.Profile
	Store      *store.Store
	LLM        ai.LLMService
	Classifier *ai.IntentClassifier
	Sessions   *session.Manager
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, llm ai.LLMService, classifier *ai.IntentClassifier, sessions *session.Manager) *APIV1Service {
	return &APIV1Service{
		Profile:    profile,
		Store:      store,
		LLM:        llm,
		Classifier: classifier,
		Sessions:   sessions,
	}
}

// RegisterRoutes wires all HTTP endpoints onto the Echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/", s.handleLiveness)
	e.POST("/sse/stream", s.handleChatStream)
	e.GET("/api/config", s.listConsultants)
	e.POST("/api/history", s.getSessionHistory)
	e.GET("/api/records/all", s.listAllRecords)
}
