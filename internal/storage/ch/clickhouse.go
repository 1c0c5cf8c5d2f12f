package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"hackerbot/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	// Configure TLS if enabled
	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	// This method is kept for interface compatibility
	return nil
}

// GetWarningCount returns the violation count for a user, 0 if unknown.
// The warnings table is a ReplacingMergeTree keyed by user_id, so FINAL
// collapses rows down to the most recent write.
func (db *ClickHouseDB) GetWarningCount(ctx context.Context, userID int64) (int, error) {
	rows, err := db.conn.Query(ctx, `SELECT count FROM warnings FINAL WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get warning count: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, nil
	}
	var count uint32
	if err := rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to scan warning count: %w", err)
	}
	return int(count), nil
}

// SetWarningCount writes the absolute violation count for a user
func (db *ClickHouseDB) SetWarningCount(ctx context.Context, userID int64, count int) error {
	err := db.conn.Exec(ctx, `INSERT INTO warnings (user_id, count, updated_at) VALUES (?, ?, now())`,
		userID, uint32(count))
	if err != nil {
		return fmt.Errorf("failed to set warning count: %w", err)
	}
	return nil
}

// SaveQuizResult records one participant's result of a finished quiz
func (db *ClickHouseDB) SaveQuizResult(ctx context.Context, result models.QuizResult) error {
	err := db.conn.Exec(ctx, `INSERT INTO quiz_results (chat_id, user_id, score, total, finished_at) VALUES (?, ?, ?, ?, ?)`,
		result.ChatID, result.UserID, uint32(result.Score), uint32(result.Total), result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	return nil
}

// TopQuizResults returns up to limit best results for a chat, best score first
func (db *ClickHouseDB) TopQuizResults(ctx context.Context, chatID int64, limit int) ([]models.QuizResult, error) {
	rows, err := db.conn.Query(ctx, `
		SELECT user_id, max(score) AS best, max(total) AS total, max(finished_at) AS finished_at
		FROM quiz_results
		WHERE chat_id = ?
		GROUP BY user_id
		ORDER BY best DESC, finished_at ASC
		LIMIT ?`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top quiz results: %w", err)
	}
	defer rows.Close()

	var results []models.QuizResult
	for rows.Next() {
		var (
			r            models.QuizResult
			score, total uint32
		)
		if err := rows.Scan(&r.UserID, &score, &total, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %w", err)
		}
		r.ChatID = chatID
		r.Score = int(score)
		r.Total = int(total)
		results = append(results, r)
	}
	return results, nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
