package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// MatchSummary records the outcome of one finished simulation session.
type MatchSummary struct {
	SessionID    string
	PlayerDeck   string
	OpponentDeck string
	Turns        int
	PlayerLife   int
	OpponentLife int
	Winner       string
	FinishedAt   time.Time
}

// MatchRepository stores finished match summaries.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a match repository on the given database.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// EnsureSchema creates the match history table if it does not exist.
func (r *MatchRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_history (
			id            BIGSERIAL PRIMARY KEY,
			session_id    TEXT NOT NULL,
			player_deck   TEXT NOT NULL,
			opponent_deck TEXT NOT NULL,
			turns         INT NOT NULL,
			player_life   INT NOT NULL,
			opponent_life INT NOT NULL,
			winner        TEXT NOT NULL DEFAULT '',
			finished_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure match_history schema: %w", err)
	}
	return nil
}

// Save inserts a match summary.
func (r *MatchRepository) Save(ctx context.Context, summary MatchSummary) error {
	if summary.FinishedAt.IsZero() {
		summary.FinishedAt = time.Now()
	}
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO match_history
			(session_id, player_deck, opponent_deck, turns, player_life, opponent_life, winner, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		summary.SessionID, summary.PlayerDeck, summary.OpponentDeck,
		summary.Turns, summary.PlayerLife, summary.OpponentLife, summary.Winner, summary.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save match summary: %w", err)
	}
	r.db.logger.Info("match summary saved",
		zap.String("session_id", summary.SessionID),
		zap.Int("turns", summary.Turns),
	)
	return nil
}

// Recent returns the most recently finished matches, newest first.
func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]MatchSummary, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := r.db.pool.Query(ctx, `
		SELECT session_id, player_deck, opponent_deck, turns, player_life, opponent_life, winner, finished_at
		FROM match_history
		ORDER BY finished_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query match history: %w", err)
	}
	defer rows.Close()

	var summaries []MatchSummary
	for rows.Next() {
		var s MatchSummary
		if err := rows.Scan(&s.SessionID, &s.PlayerDeck, &s.OpponentDeck,
			&s.Turns, &s.PlayerLife, &s.OpponentLife, &s.Winner, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match history: %w", err)
	}
	return summaries, nil
}
