package repositories

import (
	"database/sql"
	"fmt"
)

// NextSequence increments and returns the counter in <table>_sequence.
//
// Sequence numbers order records by insertion independent of their UUIDs and timestamps.
func NextSequence(db *sql.DB, table string) (int, error) {
	var sequence int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}
	return sequence, nil
}

type scanner interface {
	Scan(dest ...any) error
}
