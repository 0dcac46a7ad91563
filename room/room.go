// room/room.go
package room

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/minepair/gameserver/game"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// MaxPlayers is fixed: one host, one guest.
const MaxPlayers = 2

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CursorPosition is the last-known pointer position of a player.
type CursorPosition struct {
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Room is a session shared by a host and at most one guest. Handler
// goroutines for the two players run concurrently: the action mutex
// serializes game mutation, stateMu guards Players and Cursors so
// broadcasters can snapshot membership while an action is in flight.
// HostID and Code are immutable after creation.
type Room struct {
	Code      string
	HostID    string
	Players   []string // insertion order, host first
	Cursors   map[string]CursorPosition
	Game      *game.Game
	CreatedAt time.Time

	mutex   sync.Mutex
	stateMu sync.RWMutex
}

func newRoom(code, hostID string) *Room {
	return &Room{
		Code:      code,
		HostID:    hostID,
		Players:   []string{hostID},
		Cursors:   make(map[string]CursorPosition),
		CreatedAt: time.Now(),
	}
}

// Lock serializes game actions on this room.
func (r *Room) Lock() {
	r.mutex.Lock()
}

func (r *Room) Unlock() {
	r.mutex.Unlock()
}

func (r *Room) IsHost(connID string) bool {
	return connID == r.HostID
}

func (r *Room) HasPlayer(connID string) bool {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	for _, id := range r.Players {
		if id == connID {
			return true
		}
	}
	return false
}

// PlayerIDs returns a snapshot of the current membership.
func (r *Room) PlayerIDs() []string {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	players := make([]string, len(r.Players))
	copy(players, r.Players)
	return players
}

func (r *Room) SetCursor(connID string, x, y float64) {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	r.Cursors[connID] = CursorPosition{PlayerID: connID, X: x, Y: y}
}

// Manager owns every live room. It keeps a connection-id index next to
// the code map so disconnect cleanup is a lookup, not a scan over all
// rooms.
type Manager struct {
	rooms  map[string]*Room
	byConn map[string]string // connID -> room code
	mutex  sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		byConn: make(map[string]string),
	}
}

// CreateRoom registers a new room with a unique code and the creating
// connection as host and sole player.
func (m *Manager) CreateRoom(hostID string) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var code string
	for {
		code = generateCode()
		if _, taken := m.rooms[code]; !taken {
			break
		}
	}

	r := newRoom(code, hostID)
	m.rooms[code] = r
	m.byConn[hostID] = code
	return r
}

func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	r, exists := m.rooms[code]
	return r, exists
}

// JoinRoom appends connID to the room's players. It reports whether the
// joining connection is the host, which is false for any second player.
func (m *Manager) JoinRoom(code, connID string) (*Room, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	r, exists := m.rooms[code]
	if !exists {
		return nil, false, ErrRoomNotFound
	}

	r.stateMu.Lock()
	defer r.stateMu.Unlock()

	if len(r.Players) >= MaxPlayers {
		return nil, false, ErrRoomFull
	}

	r.Players = append(r.Players, connID)
	m.byConn[connID] = code
	return r, r.IsHost(connID), nil
}

// RoomByConn resolves the room a connection currently belongs to.
func (m *Manager) RoomByConn(connID string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	code, exists := m.byConn[connID]
	if !exists {
		return nil, false
	}
	r, exists := m.rooms[code]
	return r, exists
}

// RemoveConn drops a connection from its room and cursor map. An emptied
// room is deleted. The returned room is nil when the room was deleted;
// otherwise it still holds the remaining player.
func (m *Manager) RemoveConn(connID string) (*Room, string, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	code, exists := m.byConn[connID]
	if !exists {
		return nil, "", false
	}
	delete(m.byConn, connID)

	r, exists := m.rooms[code]
	if !exists {
		return nil, code, false
	}

	r.stateMu.Lock()
	players := r.Players[:0]
	for _, id := range r.Players {
		if id != connID {
			players = append(players, id)
		}
	}
	r.Players = players
	delete(r.Cursors, connID)
	empty := len(r.Players) == 0
	r.stateMu.Unlock()

	if empty {
		delete(m.rooms, code)
		return nil, code, true
	}

	return r, code, true
}

// PlayersInRoom returns a snapshot of the room's member ids. The manager
// lock is released before the membership copy so callers already holding
// a room's action mutex cannot deadlock against JoinRoom or RemoveConn.
func (m *Manager) PlayersInRoom(code string) ([]string, bool) {
	m.mutex.RLock()
	r, exists := m.rooms[code]
	m.mutex.RUnlock()

	if !exists {
		return nil, false
	}
	return r.PlayerIDs(), true
}

func (m *Manager) RoomCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// ActiveCodes returns the codes of all live rooms.
func (m *Manager) ActiveCodes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	codes := make([]string, 0, len(m.rooms))
	for code := range m.rooms {
		codes = append(codes, code)
	}
	return codes
}

func generateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}
