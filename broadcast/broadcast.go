// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/minepair/gameserver/room"
	"github.com/minepair/gameserver/session"
)

var ErrRoomNotFound = errors.New("room not found")

// Broadcaster fans an event out to the members of a room. ToOthers
// skips the acting player, which the cursor and join notifications need.
type Broadcaster interface {
	ToRoom(code, event string, data []byte) error
	ToOthers(code, exceptID, event string, data []byte) error
}

// RoomBroadcaster resolves room membership through the room manager and
// delivers through the session manager.
type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) ToRoom(code, event string, data []byte) error {
	return b.send(code, "", event, data)
}

func (b *RoomBroadcaster) ToOthers(code, exceptID, event string, data []byte) error {
	return b.send(code, exceptID, event, data)
}

func (b *RoomBroadcaster) send(code, exceptID, event string, data []byte) error {
	// Snapshot the membership: handlers broadcast while holding the room
	// lock, so the player list must not be read through it here.
	players, exists := b.roomManager.PlayersInRoom(code)
	if !exists {
		return ErrRoomNotFound
	}

	for _, playerID := range players {
		if playerID == exceptID {
			continue
		}

		s, ok := b.sessionManager.Get(playerID)
		if !ok {
			continue
		}

		if err := s.Send(event, data); err != nil {
			// A dead connection is cleaned up by its own read loop.
			continue
		}
	}

	return nil
}
