package store

import (
	"fmt"

	"github.com/avolkov/guidecheck/internal/model"
)

// FlagForReview marks a question for manual review and records the audit in
// the same transaction. The flip is monotonic (false to true only, never
// cleared here) and idempotent: flagging an already-flagged question just
// appends another audit record.
func (s *Store) FlagForReview(questionID int64, audit model.ReviewAudit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE training_questions SET manual_review_required = 1 WHERE id = ?`, questionID,
	)
	if err != nil {
		return fmt.Errorf("flag question %d: %w", questionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("flag question %d: no such question", questionID)
	}

	_, err = tx.Exec(
		`INSERT INTO review_audits
		 (id, question_id, original_confidence, updated_confidence, reviewer_notes, review_date, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		audit.ID, questionID, audit.OriginalConfidence, audit.UpdatedConfidence,
		audit.ReviewerNotes, audit.ReviewDate, audit.Version,
	)
	if err != nil {
		return fmt.Errorf("record audit for question %d: %w", questionID, err)
	}

	return tx.Commit()
}

// ListAudits returns the audit trail of a question, oldest first.
func (s *Store) ListAudits(questionID int64) ([]model.ReviewAudit, error) {
	rows, err := s.db.Query(
		`SELECT id, question_id, original_confidence, updated_confidence, reviewer_notes, review_date, version
		 FROM review_audits WHERE question_id = ? ORDER BY review_date, id`, questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var audits []model.ReviewAudit
	for rows.Next() {
		var a model.ReviewAudit
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.OriginalConfidence, &a.UpdatedConfidence,
			&a.ReviewerNotes, &a.ReviewDate, &a.Version); err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}
