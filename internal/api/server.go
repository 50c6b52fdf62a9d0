// File path: internal/api/server.go

// Package api exposes the survey-authoring workflow over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/surveyforge/surveyforge/internal/common"
	"github.com/surveyforge/surveyforge/internal/metrics"
	"github.com/surveyforge/surveyforge/internal/session"
	"github.com/surveyforge/surveyforge/internal/survey"
	"github.com/surveyforge/surveyforge/internal/workflow"
)

// Server wires the workflow engine and session store behind the HTTP API.
type Server struct {
	engine   *workflow.Engine
	sessions session.Store
	log      *slog.Logger

	// turnLocks serializes chat turns per session so concurrent messages on
	// one session never interleave state merges.
	turnLocks sync.Map
}

func NewServer(engine *workflow.Engine, sessions session.Store) *Server {
	return &Server{
		engine:   engine,
		sessions: sessions,
		log:      common.Logger(),
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/v1/logs", s.handleLogs)

	r.Route("/v1/survey", func(r chi.Router) {
		r.Post("/init", s.handleInit)
		r.Post("/chat", s.handleChat)
		r.Get("/state/{id}", s.handleGetState)
		r.Put("/state/{id}/{field}", s.handlePutField)
		r.Get("/preview/{id}", s.handlePreview)
		r.Post("/reset/{id}", s.handleReset)
		r.Post("/export/{id}", s.handleExport)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"logs": common.LogEntries()})
}

// lockSession returns the unlock function for a session's turn lock.
func (s *Server) lockSession(id string) func() {
	v, _ := s.turnLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// loadSession fetches a session or writes the 404 response.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id string) (session.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		return session.Session{}, false
	}
	if err != nil {
		metrics.ExternalFailures.WithLabelValues("store").Inc()
		s.log.Error("api: session load failed", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "세션 조회에 실패했습니다.")
		return session.Session{}, false
	}
	return sess, true
}

// sessionView is the state snapshot shared by most responses.
type sessionView struct {
	SessionID   string           `json:"session_id"`
	Messages    []survey.Message `json:"messages"`
	State       survey.State     `json:"state"`
	CurrentStep int              `json:"current_step"`
	IsComplete  bool             `json:"is_complete"`
}

func viewOf(sess session.Session) sessionView {
	return sessionView{
		SessionID:   sess.ID,
		Messages:    sess.State.Messages,
		State:       sess.State,
		CurrentStep: survey.CurrentStepGroup(sess.State),
		IsComplete:  survey.IsSurveyComplete(sess.State),
	}
}
