package model

import "time"

// ConfidenceLevel is an ordinal classification of an extraction confidence value.
type ConfidenceLevel string

const (
	LevelHigh     ConfidenceLevel = "high"
	LevelMedium   ConfidenceLevel = "medium"
	LevelLow      ConfidenceLevel = "low"
	LevelCritical ConfidenceLevel = "critical"
)

// Levels lists all confidence levels from best to worst.
func Levels() []ConfidenceLevel {
	return []ConfidenceLevel{LevelHigh, LevelMedium, LevelLow, LevelCritical}
}

// QualityFlag is a discrete diagnostic tag for a detected defect in an
// extracted question.
type QualityFlag string

const (
	FlagLowConfidence      QualityFlag = "low_confidence"
	FlagInconsistentAnswer QualityFlag = "inconsistent_answer"
	FlagUnclearQuestion    QualityFlag = "unclear_question"
	FlagPotentialError     QualityFlag = "potential_error"
	FlagFormattingIssue    QualityFlag = "formatting_issue"
)

// ReviewStatus represents where a question stands in the human-review
// workflow. This system only ever moves a question to ReviewPending;
// clearing the flag belongs to the external review workflow.
type ReviewStatus string

const (
	ReviewNone     ReviewStatus = "none"
	ReviewPending  ReviewStatus = "pending"
	ReviewResolved ReviewStatus = "resolved"
)

// Question is a marking-guide question. Immutable input to matching.
type Question struct {
	Number      string  `json:"number"`
	Text        string  `json:"text"`
	ModelAnswer string  `json:"model_answer"`
	Marks       float64 `json:"marks"`
}

// StudentAnswer is one answer from a student submission. Immutable input.
type StudentAnswer struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// MatchedAnswer pairs a guide question with the student answer matched to it.
// A question that attracted no answer has StudentAnswer == "" and
// MatchConfidence == 0.
type MatchedAnswer struct {
	QuestionNumber  string  `json:"question_number"`
	QuestionText    string  `json:"question_text"`
	ModelAnswer     string  `json:"model_answer"`
	StudentAnswer   string  `json:"student_answer"`
	MaxMarks        float64 `json:"max_marks"`
	MatchConfidence float64 `json:"match_confidence"`
}

// TrainingGuide is a marking guide registered by a teacher.
type TrainingGuide struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

// TrainingSession is one extraction run over a guide for a given user.
type TrainingSession struct {
	ID        int64     `json:"id"`
	GuideID   int64     `json:"guide_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TrainingQuestion is an automatically extracted question/answer pair owned
// by the persistence layer. ExtractionConfidence is nil when the extractor
// reported none.
type TrainingQuestion struct {
	ID                   int64             `json:"id"`
	SessionID            int64             `json:"session_id"`
	GuideID              int64             `json:"guide_id"`
	QuestionNumber       string            `json:"question_number"`
	QuestionText         string            `json:"question_text"`
	ExpectedAnswer       string            `json:"expected_answer"`
	PointValue           float64           `json:"point_value"`
	ExtractionConfidence *float64          `json:"extraction_confidence,omitempty"`
	ManualReviewRequired bool              `json:"manual_review_required"`
	Context              map[string]string `json:"context,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

// Confidence returns the extraction confidence, or 0 when absent.
func (q TrainingQuestion) Confidence() float64 {
	if q.ExtractionConfidence == nil {
		return 0
	}
	return *q.ExtractionConfidence
}

// SubScores holds the individual components of a quality score.
type SubScores struct {
	Confidence   float64 `json:"confidence"`
	Consistency  float64 `json:"consistency"`
	Clarity      float64 `json:"clarity"`
	Completeness float64 `json:"completeness"`
}

// QualityAssessment is the transient result of assessing one question.
// Recomputed on demand; never stored.
type QualityAssessment struct {
	QuestionID      int64           `json:"question_id"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	QualityScore    float64         `json:"quality_score"`
	SubScores       SubScores       `json:"sub_scores"`
	Flags           []QualityFlag   `json:"flags"`
	ReviewRequired  bool            `json:"review_required"`
	Priority        int             `json:"priority"`
	Notes           string          `json:"notes,omitempty"`
}

// ConfidenceMetrics is a per-session aggregate of extraction confidence
// values.
type ConfidenceMetrics struct {
	TotalQuestions int                     `json:"total_questions"`
	Average        float64                 `json:"average"`
	Median         float64                 `json:"median"`
	StdDev         float64                 `json:"std_dev"`
	LevelCounts    map[ConfidenceLevel]int `json:"level_counts"`
	Histogram      [10]int                 `json:"histogram"`
}

// ConfidenceSnapshot is a stored ConfidenceMetrics tied to a session, used
// for longitudinal trend analysis.
type ConfidenceSnapshot struct {
	ID        int64             `json:"id"`
	SessionID int64             `json:"session_id"`
	UserID    int64             `json:"user_id"`
	Metrics   ConfidenceMetrics `json:"metrics"`
	CreatedAt time.Time         `json:"created_at"`
}

// AuditVersion is the current ReviewAudit schema version.
const AuditVersion = 1

// ReviewAudit is the structured, versioned audit record attached to a
// manual-review request. Stored as typed columns, never as a serialized
// string representation.
type ReviewAudit struct {
	ID                 string    `json:"id"`
	QuestionID         int64     `json:"question_id"`
	OriginalConfidence float64   `json:"original_confidence"`
	UpdatedConfidence  float64   `json:"updated_confidence"`
	ReviewerNotes      string    `json:"reviewer_notes"`
	ReviewDate         time.Time `json:"review_date"`
	Version            int       `json:"version"`
}
