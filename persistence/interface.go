// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/minepair/gameserver/models"
)

// Database archives finished matches. Live room state never touches it;
// rooms are memory-resident by design.
type Database interface {
	SaveMatchRecord(record *models.MatchRecord) error
	RecentMatches(limit int) ([]models.MatchRecord, error)
	MatchStats() (*models.MatchStats, error)
	Close() error
}

var ErrRecordNotFound = fmt.Errorf("record not found")
