// Package review drives the human-review workflow: it assesses stored
// extraction sessions, ranks the review queue, requests the
// manual_review_required flip with a structured audit, and builds
// longitudinal trend reports.
package review

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/guidecheck/internal/model"
	"github.com/avolkov/guidecheck/internal/quality"
	"github.com/avolkov/guidecheck/internal/trend"
)

// QuestionStore is the persistence collaborator the service depends on.
// *store.Store satisfies it.
type QuestionStore interface {
	GetSession(id int64) (model.TrainingSession, error)
	GetQuestion(id int64) (model.TrainingQuestion, error)
	ListSessionQuestions(sessionID int64) ([]model.TrainingQuestion, error)
	FlagForReview(questionID int64, audit model.ReviewAudit) error
	SaveSnapshot(snap model.ConfidenceSnapshot) (int64, error)
	ListSnapshots(userID int64, since time.Time) ([]model.ConfidenceSnapshot, error)
}

// ErrReviewNotPersisted wraps store failures that did not invalidate the
// computed result. Callers keep the assessment and may retry persistence.
type ErrReviewNotPersisted struct {
	Err error
}

func (e *ErrReviewNotPersisted) Error() string {
	return fmt.Sprintf("result computed but not persisted: %v", e.Err)
}

func (e *ErrReviewNotPersisted) Unwrap() error { return e.Err }

// SessionReport is the full assessment of one extraction session.
type SessionReport struct {
	SessionID   int64                     `json:"session_id"`
	Metrics     model.ConfidenceMetrics   `json:"metrics"`
	Assessments []model.QualityAssessment `json:"assessments"`
}

// TrendReport is a user's confidence movement over a day window.
type TrendReport struct {
	UserID    int64                     `json:"user_id"`
	Days      int                       `json:"days"`
	Snapshots []model.ConfidenceSnapshot `json:"snapshots"`
	Trend     trend.Report              `json:"trend"`
}

// Service owns an assessor/classifier pair and a store. Construct explicitly
// with the tuning you want; independent instances never share state.
type Service struct {
	store      QuestionStore
	assessor   *quality.Assessor
	classifier *quality.Classifier
	now        func() time.Time
}

// New creates a review service with the injected configuration.
func New(store QuestionStore, cfg model.AnalysisConfig) *Service {
	return &Service{
		store:      store,
		assessor:   quality.NewAssessor(cfg),
		classifier: quality.NewClassifier(cfg.Levels),
		now:        time.Now,
	}
}

// AssessSession assesses every question of a session and aggregates the
// confidence metrics. The metrics snapshot is stored for trend analysis;
// a snapshot persistence failure is recoverable and returned as
// *ErrReviewNotPersisted alongside the intact report.
func (s *Service) AssessSession(sessionID int64) (*SessionReport, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %d: %w", sessionID, err)
	}
	questions, err := s.store.ListSessionQuestions(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %d questions: %w", sessionID, err)
	}

	report := &SessionReport{
		SessionID:   sessionID,
		Metrics:     trend.ComputeMetrics(questions, s.classifier),
		Assessments: make([]model.QualityAssessment, 0, len(questions)),
	}
	for _, q := range questions {
		report.Assessments = append(report.Assessments, s.assessor.Assess(q))
	}
	rank(report.Assessments)

	if len(questions) == 0 {
		return report, nil
	}

	if _, err := s.store.SaveSnapshot(model.ConfidenceSnapshot{
		SessionID: sessionID,
		UserID:    sess.UserID,
		Metrics:   report.Metrics,
	}); err != nil {
		slog.Warn("confidence snapshot not saved", "session_id", sessionID, "error", err)
		return report, &ErrReviewNotPersisted{Err: err}
	}
	return report, nil
}

// ReviewQueue returns the session's assessments that require human review,
// highest priority first.
func (s *Service) ReviewQueue(sessionID int64) ([]model.QualityAssessment, error) {
	questions, err := s.store.ListSessionQuestions(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %d questions: %w", sessionID, err)
	}
	queue := make([]model.QualityAssessment, 0, len(questions))
	for _, q := range questions {
		a := s.assessor.Assess(q)
		if a.ReviewRequired {
			queue = append(queue, a)
		}
	}
	rank(queue)
	return queue, nil
}

// RequestReview assesses a question and requests the monotonic
// manual_review_required flip with a structured audit record. The assessment
// is always returned; a persistence failure comes back as
// *ErrReviewNotPersisted so the caller can still use the result.
func (s *Service) RequestReview(questionID int64, reviewerNotes string) (model.QualityAssessment, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return model.QualityAssessment{}, fmt.Errorf("load question %d: %w", questionID, err)
	}

	assessment := s.assessor.Assess(q)
	notes := reviewerNotes
	if notes == "" {
		notes = assessment.Notes
	}
	audit := model.ReviewAudit{
		ID:                 uuid.NewString(),
		QuestionID:         questionID,
		OriginalConfidence: q.Confidence(),
		UpdatedConfidence:  assessment.QualityScore,
		ReviewerNotes:      notes,
		ReviewDate:         s.now().UTC(),
		Version:            model.AuditVersion,
	}

	if err := s.store.FlagForReview(questionID, audit); err != nil {
		slog.Warn("review flag not persisted", "question_id", questionID, "error", err)
		return assessment, &ErrReviewNotPersisted{Err: err}
	}
	return assessment, nil
}

// Trends builds a user's trend report over the last days days.
func (s *Service) Trends(userID int64, days int) (*TrendReport, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)
	snaps, err := s.store.ListSnapshots(userID, since)
	if err != nil {
		return nil, fmt.Errorf("load snapshots for user %d: %w", userID, err)
	}

	history := make([]model.ConfidenceMetrics, len(snaps))
	for i, snap := range snaps {
		history[i] = snap.Metrics
	}

	return &TrendReport{
		UserID:    userID,
		Days:      days,
		Snapshots: snaps,
		Trend:     trend.Analyze(history),
	}, nil
}

// rank orders assessments for human consumption: highest priority first,
// then lowest quality, then question ID for a stable total order.
func rank(assessments []model.QualityAssessment) {
	sort.SliceStable(assessments, func(i, j int) bool {
		a, b := assessments[i], assessments[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.QualityScore != b.QualityScore {
			return a.QualityScore < b.QualityScore
		}
		return a.QuestionID < b.QuestionID
	})
}
