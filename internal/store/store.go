// Package store is the SQLite persistence collaborator: marking guides,
// extraction sessions, extracted questions, review audits, and confidence
// snapshots. Scoring never happens here; the analysis core stays pure and
// this package only loads records and applies the one durable state change
// the core may request (the manual_review_required flip).
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avolkov/guidecheck/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS training_guides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS training_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guide_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (guide_id) REFERENCES training_guides(id)
	);

	CREATE TABLE IF NOT EXISTS training_questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		guide_id INTEGER NOT NULL,
		question_number TEXT NOT NULL DEFAULT '',
		question_text TEXT NOT NULL DEFAULT '',
		expected_answer TEXT NOT NULL DEFAULT '',
		point_value REAL NOT NULL DEFAULT 0,
		extraction_confidence REAL,
		manual_review_required INTEGER NOT NULL DEFAULT 0,
		context TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES training_sessions(id)
	);

	CREATE TABLE IF NOT EXISTS review_audits (
		id TEXT PRIMARY KEY,
		question_id INTEGER NOT NULL,
		original_confidence REAL NOT NULL,
		updated_confidence REAL NOT NULL,
		reviewer_notes TEXT NOT NULL DEFAULT '',
		review_date DATETIME NOT NULL,
		version INTEGER NOT NULL,
		FOREIGN KEY (question_id) REFERENCES training_questions(id)
	);

	CREATE TABLE IF NOT EXISTS confidence_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		avg_confidence REAL NOT NULL,
		median_confidence REAL NOT NULL,
		stddev_confidence REAL NOT NULL,
		high_count INTEGER NOT NULL DEFAULT 0,
		medium_count INTEGER NOT NULL DEFAULT 0,
		low_count INTEGER NOT NULL DEFAULT 0,
		critical_count INTEGER NOT NULL DEFAULT 0,
		histogram TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES training_sessions(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateGuide stores a marking guide.
func (s *Store) CreateGuide(g model.TrainingGuide) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO training_guides (name, subject, created_at) VALUES (?, ?, ?)`,
		g.Name, g.Subject, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetGuide returns a guide by ID.
func (s *Store) GetGuide(id int64) (model.TrainingGuide, error) {
	var g model.TrainingGuide
	err := s.db.QueryRow(
		`SELECT id, name, subject, created_at FROM training_guides WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.Subject, &g.CreatedAt)
	return g, err
}

// CreateSession records an extraction run for a guide and user.
func (s *Store) CreateSession(sess model.TrainingSession) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO training_sessions (guide_id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		sess.GuideID, sess.UserID, sess.Name, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSession returns a session by ID.
func (s *Store) GetSession(id int64) (model.TrainingSession, error) {
	var sess model.TrainingSession
	err := s.db.QueryRow(
		`SELECT id, guide_id, user_id, name, created_at FROM training_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.GuideID, &sess.UserID, &sess.Name, &sess.CreatedAt)
	return sess, err
}

// InsertQuestion stores one extracted question.
func (s *Store) InsertQuestion(q model.TrainingQuestion) (int64, error) {
	ctxJSON, err := marshalContext(q.Context)
	if err != nil {
		return 0, fmt.Errorf("marshal question context: %w", err)
	}
	var confidence sql.NullFloat64
	if q.ExtractionConfidence != nil {
		confidence = sql.NullFloat64{Float64: *q.ExtractionConfidence, Valid: true}
	}
	res, err := s.db.Exec(
		`INSERT INTO training_questions
		 (session_id, guide_id, question_number, question_text, expected_answer,
		  point_value, extraction_confidence, manual_review_required, context, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.SessionID, q.GuideID, q.QuestionNumber, q.QuestionText, q.ExpectedAnswer,
		q.PointValue, confidence, q.ManualReviewRequired, ctxJSON, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const questionColumns = `id, session_id, guide_id, question_number, question_text,
	expected_answer, point_value, extraction_confidence, manual_review_required, context, created_at`

// GetQuestion returns a question by ID.
func (s *Store) GetQuestion(id int64) (model.TrainingQuestion, error) {
	row := s.db.QueryRow(`SELECT `+questionColumns+` FROM training_questions WHERE id = ?`, id)
	return scanQuestion(row)
}

// ListSessionQuestions returns all questions of a session in insertion order.
func (s *Store) ListSessionQuestions(sessionID int64) ([]model.TrainingQuestion, error) {
	rows, err := s.db.Query(
		`SELECT `+questionColumns+` FROM training_questions WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var questions []model.TrainingQuestion
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (model.TrainingQuestion, error) {
	var q model.TrainingQuestion
	var confidence sql.NullFloat64
	var ctxJSON string
	err := row.Scan(&q.ID, &q.SessionID, &q.GuideID, &q.QuestionNumber, &q.QuestionText,
		&q.ExpectedAnswer, &q.PointValue, &confidence, &q.ManualReviewRequired, &ctxJSON, &q.CreatedAt)
	if err != nil {
		return q, err
	}
	if confidence.Valid {
		q.ExtractionConfidence = &confidence.Float64
	}
	if ctxJSON != "" && ctxJSON != "{}" {
		if err := json.Unmarshal([]byte(ctxJSON), &q.Context); err != nil {
			return q, fmt.Errorf("unmarshal question %d context: %w", q.ID, err)
		}
	}
	return q, nil
}

func marshalContext(ctx map[string]string) (string, error) {
	if len(ctx) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
