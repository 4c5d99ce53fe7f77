// Package server exposes the practice API: question access over the
// assembled bank, session auth, attempt recording, and practice-state
// persistence.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prepworks/satprep/internal/questions"
)

// Server holds the handler dependencies.
type Server struct {
	bank   *questions.Bank
	store  Store
	states StateStore
	auth   *Auth
}

// New assembles a server from its collaborators.
func New(bank *questions.Bank, store Store, states StateStore, auth *Auth) *Server {
	return &Server{bank: bank, store: store, states: states, auth: auth}
}

// Router builds the HTTP mux.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("POST /api/auth/send-code", s.auth.HandleSendCode)
	mux.HandleFunc("POST /api/auth/verify-code", s.auth.HandleVerifyCode)
	mux.HandleFunc("POST /api/auth/login", s.auth.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.auth.HandleLogout)
	mux.Handle("POST /api/auth/password", s.auth.Require(http.HandlerFunc(s.auth.HandleSetPassword)))
	mux.HandleFunc("GET /api/auth/user", s.auth.HandleUser)

	mux.HandleFunc("GET /api/questions", s.handleQuestions)
	mux.HandleFunc("GET /api/questions/counts", s.handleCounts)
	mux.HandleFunc("GET /api/questions/reports", s.handleReports)
	mux.Handle("POST /api/questions/reload", s.auth.Require(http.HandlerFunc(s.handleReload)))

	mux.Handle("POST /api/attempts", s.auth.Require(http.HandlerFunc(s.handleRecordAttempt)))
	mux.Handle("GET /api/attempts", s.auth.Require(http.HandlerFunc(s.handleListAttempts)))

	mux.Handle("GET /api/state", s.auth.Require(http.HandlerFunc(s.handleGetState)))
	mux.Handle("PUT /api/state", s.auth.Require(http.HandlerFunc(s.handlePutState)))

	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	// The bank build is lazy; readiness only means the process is up.
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

// handleQuestions returns the canonical collection, filtered by exact-match
// query parameters. An empty result is an empty list, never null.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	filter := questions.Filter{
		Section:    questions.Section(r.URL.Query().Get("section")),
		SubSection: r.URL.Query().Get("subSection"),
		Topic:      r.URL.Query().Get("topic"),
		SubTopic:   r.URL.Query().Get("subTopic"),
	}
	writeJSON(w, http.StatusOK, filter.Apply(s.bank.Questions()))
}

func (s *Server) handleCounts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, questions.TopicCounts(s.bank.Questions()))
}

// handleReports exposes per-dataset ingestion diagnostics so silent data
// loss is visible to operators.
func (s *Server) handleReports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.Reports())
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	s.bank.Invalidate()
	slog.Info("question bank invalidated")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var body struct {
		SourceID string `json:"sourceId"`
		Selected string `json:"selected"`
		Correct  bool   `json:"correct"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.SourceID == "" {
		writeError(w, http.StatusBadRequest, "sourceId required")
		return
	}

	id, err := s.store.RecordAttempt(r.Context(), Attempt{
		UserID:     user.ID,
		SourceID:   body.SourceID,
		Selected:   body.Selected,
		Correct:    body.Correct,
		AnsweredAt: time.Now(),
	})
	if err != nil {
		slog.Error("recording attempt failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// maxAttemptLimit caps the page size a client can request.
const maxAttemptLimit = 500

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = min(v, maxAttemptLimit)
		}
	}

	attempts, err := s.store.AttemptsByUser(r.Context(), user.ID, limit)
	if err != nil {
		slog.Error("listing attempts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}

// handleGetState returns the persisted practice-state snapshot, or an
// empty snapshot when none exists yet.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	blob, err := s.states.GetState(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusOK, questions.StateSnapshot{
			QuestionStates: map[int]questions.QuestionState{},
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

// handlePutState validates the snapshot shape and stores it verbatim.
func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var snapshot questions.StateSnapshot
	if err := decodeJSON(r, &snapshot); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot")
		return
	}
	snapshot.Timestamp = time.Now()

	blob, err := json.Marshal(snapshot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encoding error")
		return
	}
	if err := s.states.PutState(r.Context(), user.ID, blob); err != nil {
		slog.Error("storing state failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
