// Package handler exposes the analysis engine over a JSON HTTP API.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/guidecheck/internal/i18n"
	"github.com/avolkov/guidecheck/internal/match"
	"github.com/avolkov/guidecheck/internal/model"
	"github.com/avolkov/guidecheck/internal/review"
	"github.com/avolkov/guidecheck/internal/store"
	"github.com/avolkov/guidecheck/internal/trend"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	reviews *review.Service
	config  model.AnalysisConfig
}

// New creates a new Handler.
func New(s *store.Store, svc *review.Service, cfg model.AnalysisConfig) *Handler {
	return &Handler{store: s, reviews: svc, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/match", h.handleMatch)
	r.Post("/api/sessions", h.handleCreateSession)
	r.Get("/api/sessions/{sessionID}/metrics", h.handleSessionMetrics)
	r.Get("/api/sessions/{sessionID}/review-queue", h.handleReviewQueue)
	r.Post("/api/questions/{questionID}/review", h.handleRequestReview)
	r.Get("/api/users/{userID}/trends", h.handleTrends)
}

type matchRequest struct {
	Questions           []model.Question      `json:"questions"`
	Answers             []model.StudentAnswer `json:"answers"`
	SimilarityThreshold *float64              `json:"similarity_threshold,omitempty"`
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	threshold := h.config.SimilarityThreshold
	if req.SimilarityThreshold != nil {
		threshold = *req.SimilarityThreshold
	}

	result, err := match.NewMatcher(threshold).Match(req.Questions, req.Answers)
	if err != nil {
		var numErr *model.InvalidNumberError
		if errors.As(err, &numErr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":           err.Error(),
				"question_number": numErr.Number,
				"question_text":   numErr.Text,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type createSessionRequest struct {
	GuideID   int64                    `json:"guide_id"`
	UserID    int64                    `json:"user_id"`
	Name      string                   `json:"name"`
	Questions []model.TrainingQuestion `json:"questions"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sessionID, err := h.store.CreateSession(model.TrainingSession{
		GuideID: req.GuideID,
		UserID:  req.UserID,
		Name:    req.Name,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, q := range req.Questions {
		q.SessionID = sessionID
		q.GuideID = req.GuideID
		if _, err := h.store.InsertQuestion(q); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id":     sessionID,
		"question_count": len(req.Questions),
	})
}

func (h *Handler) handleSessionMetrics(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}

	report, err := h.reviews.AssessSession(sessionID)
	persisted := true
	if err != nil {
		var notPersisted *review.ErrReviewNotPersisted
		switch {
		case errors.As(err, &notPersisted):
			persisted = false
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "session not found")
			return
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":  sessionID,
		"metrics":     report.Metrics,
		"assessments": report.Assessments,
		"persisted":   persisted,
	})
}

// queueItem is one review-queue entry with localized flag labels.
type queueItem struct {
	model.QualityAssessment
	Messages []string `json:"messages"`
}

func (h *Handler) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}

	queue, err := h.reviews.ReviewQueue(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]queueItem, len(queue))
	for i, a := range queue {
		items[i] = queueItem{QualityAssessment: a}
		for _, f := range a.Flags {
			items[i].Messages = append(items[i].Messages, i18n.T(r.Context(), flagMessageID(f)))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"queue":      items,
		"summary":    i18n.Tp(r.Context(), "QuestionsForReview", len(items)),
	})
}

type requestReviewBody struct {
	Notes string `json:"notes"`
}

func (h *Handler) handleRequestReview(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	var body requestReviewBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	assessment, err := h.reviews.RequestReview(questionID, body.Notes)
	persisted := true
	message := i18n.Td(r.Context(), "ReviewRequested", map[string]any{"ID": questionID})
	if err != nil {
		var notPersisted *review.ErrReviewNotPersisted
		switch {
		case errors.As(err, &notPersisted):
			// The assessment survived; the caller retries persistence.
			persisted = false
			message = i18n.T(r.Context(), "ReviewNotPersisted")
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "question not found")
			return
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assessment": assessment,
		"persisted":  persisted,
		"message":    message,
	})
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = n
	}

	report, err := h.reviews.Trends(userID, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	messages := make([]string, 0, len(report.Trend.Recommendations))
	for _, rec := range report.Trend.Recommendations {
		messages = append(messages, i18n.T(r.Context(), recommendationMessageID(rec)))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":   report.UserID,
		"days":      report.Days,
		"snapshots": report.Snapshots,
		"trend":     report.Trend,
		"messages":  messages,
	})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func flagMessageID(f model.QualityFlag) string {
	switch f {
	case model.FlagLowConfidence:
		return "FlagLowConfidence"
	case model.FlagInconsistentAnswer:
		return "FlagInconsistentAnswer"
	case model.FlagUnclearQuestion:
		return "FlagUnclearQuestion"
	case model.FlagPotentialError:
		return "FlagPotentialError"
	case model.FlagFormattingIssue:
		return "FlagFormattingIssue"
	}
	return string(f)
}

func recommendationMessageID(c trend.RecommendationCode) string {
	switch c {
	case trend.RecQualityConcern:
		return "RecommendationQualityConcern"
	case trend.RecDeclining:
		return "RecommendationDeclining"
	case trend.RecImproving:
		return "RecommendationImproving"
	case trend.RecHighVariance:
		return "RecommendationHighVariance"
	}
	return string(c)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
