package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avolkov/guidecheck/internal/model"
)

// SaveSnapshot stores one session's confidence metrics for trend analysis.
func (s *Store) SaveSnapshot(snap model.ConfidenceSnapshot) (int64, error) {
	histJSON, err := json.Marshal(snap.Metrics.Histogram)
	if err != nil {
		return 0, fmt.Errorf("marshal histogram: %w", err)
	}
	m := snap.Metrics
	res, err := s.db.Exec(
		`INSERT INTO confidence_snapshots
		 (session_id, user_id, total_questions, avg_confidence, median_confidence, stddev_confidence,
		  high_count, medium_count, low_count, critical_count, histogram, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.SessionID, snap.UserID, m.TotalQuestions, m.Average, m.Median, m.StdDev,
		m.LevelCounts[model.LevelHigh], m.LevelCounts[model.LevelMedium],
		m.LevelCounts[model.LevelLow], m.LevelCounts[model.LevelCritical],
		string(histJSON), time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSnapshots returns a user's snapshots created at or after since, oldest
// first, which is the order trend analysis expects.
func (s *Store) ListSnapshots(userID int64, since time.Time) ([]model.ConfidenceSnapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, user_id, total_questions, avg_confidence, median_confidence,
		        stddev_confidence, high_count, medium_count, low_count, critical_count, histogram, created_at
		 FROM confidence_snapshots
		 WHERE user_id = ? AND created_at >= ?
		 ORDER BY created_at, id`, userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []model.ConfidenceSnapshot
	for rows.Next() {
		var snap model.ConfidenceSnapshot
		var high, medium, low, critical int
		var histJSON string
		err := rows.Scan(&snap.ID, &snap.SessionID, &snap.UserID, &snap.Metrics.TotalQuestions,
			&snap.Metrics.Average, &snap.Metrics.Median, &snap.Metrics.StdDev,
			&high, &medium, &low, &critical, &histJSON, &snap.CreatedAt)
		if err != nil {
			return nil, err
		}
		snap.Metrics.LevelCounts = map[model.ConfidenceLevel]int{
			model.LevelHigh:     high,
			model.LevelMedium:   medium,
			model.LevelLow:      low,
			model.LevelCritical: critical,
		}
		if err := json.Unmarshal([]byte(histJSON), &snap.Metrics.Histogram); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot %d histogram: %w", snap.ID, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
