// File path: internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/surveyforge/surveyforge/internal/export"
	"github.com/surveyforge/surveyforge/internal/metrics"
	"github.com/surveyforge/surveyforge/internal/session"
	"github.com/surveyforge/surveyforge/internal/survey"
	"github.com/surveyforge/surveyforge/internal/workflow"
)

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	st := s.engine.NewSession(r.Context())
	sess, err := s.sessions.Create(r.Context(), st)
	if err != nil {
		s.log.Error("api: session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "세션 생성에 실패했습니다.")
		return
	}
	metrics.SessionsCreated.Inc()
	s.log.Info("api: session created", "session_id", sess.ID)
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	sessionView
	NewMessages      []survey.Message  `json:"new_messages"`
	ChangedFields    map[string]string `json:"changed_fields"`
	LatestField      string            `json:"latest_changed_field,omitempty"`
	LatestFieldName  string            `json:"latest_changed_field_name,omitempty"`
	LatestFieldValue string            `json:"latest_changed_field_value,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "메시지를 입력해주세요.")
		return
	}

	unlock := s.lockSession(req.SessionID)
	defer unlock()

	sess, ok := s.loadSession(w, r, req.SessionID)
	if !ok {
		return
	}

	start := time.Now()
	prev := sess.State
	next := s.engine.ProcessMessage(r.Context(), prev, req.Message)
	metrics.TurnsProcessed.Inc()
	metrics.TurnDuration.Observe(time.Since(start).Seconds())
	recordStepAdvances(prev, next)

	sess, err := s.sessions.UpdateState(r.Context(), req.SessionID, next)
	if err != nil {
		s.log.Error("api: session update failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "세션 저장에 실패했습니다.")
		return
	}

	changed := survey.ChangedFields(prev, next)
	field, value := survey.LatestChangedField(changed, next)
	resp := chatResponse{
		sessionView:      viewOf(sess),
		NewMessages:      next.Messages[len(prev.Messages):],
		ChangedFields:    changed,
		LatestField:      field,
		LatestFieldName:  survey.FieldNames[field],
		LatestFieldValue: value,
	}
	writeJSON(w, http.StatusOK, resp)
}

// recordStepAdvances bumps the per-step completion counter for every flag
// that flipped during the turn.
func recordStepAdvances(prev, next survey.State) {
	for _, step := range survey.StepOrder {
		if workflow.StepCompleted(next, step) && !workflow.StepCompleted(prev, step) {
			metrics.StepAdvances.WithLabelValues(step).Inc()
		}
	}
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type putFieldRequest struct {
	Value string `json:"value"`
}

func (s *Server) handlePutField(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	field := chi.URLParam(r, "field")
	var req putFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}

	unlock := s.lockSession(id)
	defer unlock()

	sess, err := session.SetField(r.Context(), s.sessions, id, field, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
		case !survey.EditableField(field):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("편집할 수 없는 필드입니다: %s", field))
		default:
			s.log.Error("api: field update failed", "session_id", id, "field", field, "error", err)
			writeError(w, http.StatusInternalServerError, "필드 수정에 실패했습니다.")
		}
		return
	}
	s.log.Info("api: field updated", "session_id", id, "field", field)
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type previewResponse struct {
	SessionID  string `json:"session_id"`
	Field      string `json:"field"`
	FieldName  string `json:"field_name"`
	Content    string `json:"content"`
	IsComplete bool   `json:"is_complete"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	field, value := survey.LatestChangedField(nil, sess.State)
	writeJSON(w, http.StatusOK, previewResponse{
		SessionID:  sess.ID,
		Field:      field,
		FieldName:  survey.FieldNames[field],
		Content:    value,
		IsComplete: survey.IsSurveyComplete(sess.State),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	unlock := s.lockSession(id)
	defer unlock()

	st := s.engine.NewSession(r.Context())
	sess, err := s.sessions.Reset(r.Context(), id, st)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "세션을 찾을 수 없습니다.")
			return
		}
		s.log.Error("api: session reset failed", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "세션 초기화에 실패했습니다.")
		return
	}
	s.log.Info("api: session reset", "session_id", id)
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type exportRequest struct {
	Format string `json:"format"`
	Title  string `json:"title"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}

	sess, ok := s.loadSession(w, r, id)
	if !ok {
		return
	}
	content := sess.State.FinalSurvey
	if strings.TrimSpace(content) == "" {
		content = sess.State.SurveyDraft
	}
	if strings.TrimSpace(content) == "" {
		writeError(w, http.StatusBadRequest, "내보낼 설문지가 없습니다. 설문지 작성을 먼저 완료해주세요.")
		return
	}
	title := req.Title
	if title == "" {
		title = "설문지"
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	var (
		data        []byte
		contentType string
		filename    string
		err         error
	)
	switch format {
	case "", "docx":
		format = "docx"
		data, err = export.DOCX(content, title)
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		filename = "survey.docx"
	case "hwpx":
		data, err = export.HWPX(content, title)
		contentType = "application/hwp+zip"
		filename = "survey.hwpx"
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("지원하지 않는 형식입니다: %s", req.Format))
		return
	}
	if err != nil {
		s.log.Error("api: export failed", "session_id", id, "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "문서 생성에 실패했습니다.")
		return
	}
	metrics.Exports.WithLabelValues(format).Inc()
	s.log.Info("api: survey exported", "session_id", id, "format", format, "bytes", len(data))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
