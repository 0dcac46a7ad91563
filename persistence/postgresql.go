// persistence/postgresql.go
package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/minepair/gameserver/models"
)

// PostgreSQL is a plain database/sql implementation of the match
// archive, for deployments that prefer raw SQL over GORM.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS match_records (
            id SERIAL PRIMARY KEY,
            room_code TEXT NOT NULL,
            width INT NOT NULL,
            height INT NOT NULL,
            mines INT NOT NULL,
            won BOOLEAN NOT NULL,
            duration_seconds DOUBLE PRECISION,
            host_id TEXT,
            guest_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func (p *PostgreSQL) SaveMatchRecord(record *models.MatchRecord) error {
	_, err := p.db.Exec(
		`INSERT INTO match_records
            (room_code, width, height, mines, won, duration_seconds, host_id, guest_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.RoomCode, record.Width, record.Height, record.Mines,
		record.Won, record.DurationSeconds, record.HostID, record.GuestID,
	)
	return err
}

func (p *PostgreSQL) RecentMatches(limit int) ([]models.MatchRecord, error) {
	rows, err := p.db.Query(
		`SELECT room_code, width, height, mines, won, duration_seconds, host_id, guest_id, created_at
        FROM match_records ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.MatchRecord
	for rows.Next() {
		var record models.MatchRecord
		if err := rows.Scan(
			&record.RoomCode, &record.Width, &record.Height, &record.Mines,
			&record.Won, &record.DurationSeconds, &record.HostID, &record.GuestID,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (p *PostgreSQL) MatchStats() (*models.MatchStats, error) {
	var stats models.MatchStats

	err := p.db.QueryRow(
		`SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN NOT won THEN 1 ELSE 0 END), 0)
        FROM match_records`,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
