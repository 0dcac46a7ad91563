// services/match_service.go
package services

import (
	"fmt"

	"github.com/minepair/gameserver/models"
	"github.com/minepair/gameserver/persistence"
)

// MatchService wraps the match archive. A nil database disables
// archiving without touching the callers.
type MatchService struct {
	db persistence.Database
}

func NewMatchService(db persistence.Database) *MatchService {
	return &MatchService{db: db}
}

func (s *MatchService) Enabled() bool {
	return s.db != nil
}

func (s *MatchService) Record(record *models.MatchRecord) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.SaveMatchRecord(record); err != nil {
		return fmt.Errorf("save match record: %w", err)
	}
	return nil
}

func (s *MatchService) RecentMatches(limit int) ([]models.MatchRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.RecentMatches(limit)
}

// StatsWithWinRate returns aggregate match stats plus the derived win
// rate over all recorded games.
func (s *MatchService) StatsWithWinRate() (map[string]interface{}, error) {
	if s.db == nil {
		return map[string]interface{}{"total_games": 0, "wins": 0, "losses": 0, "win_rate": 0.0}, nil
	}

	stats, err := s.db.MatchStats()
	if err != nil {
		return nil, err
	}

	winRate := 0.0
	if stats.TotalGames > 0 {
		winRate = float64(stats.Wins) / float64(stats.TotalGames)
	}

	return map[string]interface{}{
		"total_games": stats.TotalGames,
		"wins":        stats.Wins,
		"losses":      stats.Losses,
		"win_rate":    winRate,
	}, nil
}
