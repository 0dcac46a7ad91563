// persistence/gorm_postgresql.go
package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/minepair/gameserver/models"
)

// GormPostgreSQL is the GORM-backed match archive.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&MatchRecordModel{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

type MatchRecordModel struct {
	ID              uint   `gorm:"primaryKey"`
	RoomCode        string `gorm:"index;not null"`
	Width           int    `gorm:"not null"`
	Height          int    `gorm:"not null"`
	Mines           int    `gorm:"not null"`
	Won             bool   `gorm:"not null"`
	DurationSeconds float64
	HostID          string
	GuestID         string
	CreatedAt       time.Time
}

func (MatchRecordModel) TableName() string {
	return "match_records"
}

func (p *GormPostgreSQL) SaveMatchRecord(record *models.MatchRecord) error {
	row := MatchRecordModel{
		RoomCode:        record.RoomCode,
		Width:           record.Width,
		Height:          record.Height,
		Mines:           record.Mines,
		Won:             record.Won,
		DurationSeconds: record.DurationSeconds,
		HostID:          record.HostID,
		GuestID:         record.GuestID,
	}

	return p.db.Create(&row).Error
}

func (p *GormPostgreSQL) RecentMatches(limit int) ([]models.MatchRecord, error) {
	var rows []MatchRecordModel
	if err := p.db.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]models.MatchRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.MatchRecord{
			RoomCode:        row.RoomCode,
			Width:           row.Width,
			Height:          row.Height,
			Mines:           row.Mines,
			Won:             row.Won,
			DurationSeconds: row.DurationSeconds,
			HostID:          row.HostID,
			GuestID:         row.GuestID,
			CreatedAt:       row.CreatedAt,
		})
	}

	return records, nil
}

func (p *GormPostgreSQL) MatchStats() (*models.MatchStats, error) {
	var stats models.MatchStats

	err := p.db.Raw(
		`
        SELECT
            COUNT(*) as total_games,
            SUM(CASE WHEN won THEN 1 ELSE 0 END) as wins,
            SUM(CASE WHEN NOT won THEN 1 ELSE 0 END) as losses
        FROM match_records`,
	).Scan(&stats).Error

	return &stats, err
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
