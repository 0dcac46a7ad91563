package room

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestManager_CreateAndGetRoom(t *testing.T) {
	manager := NewManager()

	r := manager.CreateRoom("host1")
	if r == nil {
		t.Fatal("CreateRoom should not return nil")
	}

	if len(r.Code) != codeLength {
		t.Errorf("Expected a %d character code, got %q", codeLength, r.Code)
	}
	for _, c := range r.Code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("Code %q contains character %q outside the alphabet", r.Code, c)
		}
	}

	if r.HostID != "host1" {
		t.Errorf("Expected host id host1, got %s", r.HostID)
	}
	if len(r.Players) != 1 || r.Players[0] != "host1" {
		t.Errorf("Expected the host as sole player, got %v", r.Players)
	}

	retrieved, exists := manager.GetRoom(r.Code)
	if !exists {
		t.Fatal("GetRoom should find the created room")
	}
	if retrieved != r {
		t.Error("GetRoom should return the same room instance")
	}
}

func TestManager_CodeUniqueness(t *testing.T) {
	manager := NewManager()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r := manager.CreateRoom("host")
		if seen[r.Code] {
			t.Fatalf("Duplicate room code %s among live rooms", r.Code)
		}
		seen[r.Code] = true
	}
}

func TestManager_JoinRoom(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host1")

	joined, isHost, err := manager.JoinRoom(r.Code, "guest1")
	if err != nil {
		t.Fatalf("JoinRoom returned error: %v", err)
	}
	if isHost {
		t.Error("A second player must not be host")
	}
	if len(joined.Players) != 2 || joined.Players[1] != "guest1" {
		t.Errorf("Expected players [host1 guest1], got %v", joined.Players)
	}
}

func TestManager_JoinRoom_NotFound(t *testing.T) {
	manager := NewManager()

	if _, _, err := manager.JoinRoom("ZZZZZZ", "guest1"); err != ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestManager_JoinRoom_Full(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host1")

	if _, _, err := manager.JoinRoom(r.Code, "guest1"); err != nil {
		t.Fatalf("First join failed: %v", err)
	}

	if _, _, err := manager.JoinRoom(r.Code, "guest2"); err != ErrRoomFull {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}

	if len(r.Players) != 2 {
		t.Errorf("A rejected join must not change membership, got %v", r.Players)
	}
}

func TestManager_RemoveConn(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host1")
	manager.JoinRoom(r.Code, "guest1")

	remaining, code, ok := manager.RemoveConn("guest1")
	if !ok {
		t.Fatal("RemoveConn should find the guest's room")
	}
	if code != r.Code {
		t.Errorf("Expected code %s, got %s", r.Code, code)
	}
	if remaining == nil {
		t.Fatal("Room with a remaining player must survive")
	}
	if len(remaining.Players) != 1 || remaining.Players[0] != "host1" {
		t.Errorf("Expected only the host to remain, got %v", remaining.Players)
	}

	if _, found := manager.RoomByConn("guest1"); found {
		t.Error("Removed connection must not resolve to a room")
	}

	remaining, _, ok = manager.RemoveConn("host1")
	if !ok {
		t.Fatal("RemoveConn should find the host's room")
	}
	if remaining != nil {
		t.Error("An emptied room must be deleted")
	}
	if _, exists := manager.GetRoom(r.Code); exists {
		t.Error("GetRoom must not find a deleted room")
	}
}

func TestManager_RemoveConn_Unknown(t *testing.T) {
	manager := NewManager()

	if _, _, ok := manager.RemoveConn("nobody"); ok {
		t.Error("RemoveConn on an unknown connection must report false")
	}
}

func TestManager_RemoveConn_DropsCursor(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host1")
	manager.JoinRoom(r.Code, "guest1")
	r.SetCursor("guest1", 10, 20)

	manager.RemoveConn("guest1")

	if _, exists := r.Cursors["guest1"]; exists {
		t.Error("Cursor entry must be removed with the player")
	}
}

func TestManager_RoomByConn(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host1")

	resolved, found := manager.RoomByConn("host1")
	if !found {
		t.Fatal("RoomByConn should resolve the host")
	}
	if resolved != r {
		t.Error("RoomByConn should return the host's room")
	}
}

func TestRoom_SetCursor(t *testing.T) {
	r := newRoom("ABC123", "host1")
	r.SetCursor("host1", 42, 7)

	cursor, exists := r.Cursors["host1"]
	if !exists {
		t.Fatal("Expected a cursor entry for host1")
	}
	if cursor.PlayerID != "host1" || cursor.X != 42 || cursor.Y != 7 {
		t.Errorf("Unexpected cursor %+v", cursor)
	}
}

func TestManager_PlayersInRoom(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host1")
	manager.JoinRoom(r.Code, "guest1")

	players, exists := manager.PlayersInRoom(r.Code)
	if !exists {
		t.Fatal("PlayersInRoom should find the room")
	}
	if len(players) != 2 || players[0] != "host1" || players[1] != "guest1" {
		t.Errorf("Expected [host1 guest1], got %v", players)
	}

	players[0] = "mutated"
	if r.Players[0] != "host1" {
		t.Error("PlayersInRoom must return a copy, not the live slice")
	}

	if _, exists := manager.PlayersInRoom("ZZZZZZ"); exists {
		t.Error("PlayersInRoom must not find an unknown code")
	}
}

// Joins, membership checks, cursor writes and snapshot reads run from
// concurrent connection goroutines; this keeps the race detector honest.
func TestManager_ConcurrentMembership(t *testing.T) {
	manager := NewManager()
	r := manager.CreateRoom("host")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			connID := fmt.Sprintf("guest%d", n)
			for j := 0; j < 20; j++ {
				if _, _, err := manager.JoinRoom(r.Code, connID); err != nil {
					continue
				}
				r.HasPlayer(connID)
				r.SetCursor(connID, float64(j), float64(n))
				manager.PlayersInRoom(r.Code)
				manager.RemoveConn(connID)
			}
		}(i)
	}
	wg.Wait()

	if len(r.Players) != 1 || r.Players[0] != "host" {
		t.Errorf("Expected only the host to remain, got %v", r.Players)
	}
	if !r.HasPlayer("host") {
		t.Error("Host membership must survive the churn")
	}
}

func TestManager_RoomCountAndActiveCodes(t *testing.T) {
	manager := NewManager()
	manager.CreateRoom("a")
	manager.CreateRoom("b")

	if manager.RoomCount() != 2 {
		t.Errorf("Expected 2 rooms, got %d", manager.RoomCount())
	}
	if len(manager.ActiveCodes()) != 2 {
		t.Errorf("Expected 2 active codes, got %v", manager.ActiveCodes())
	}
}
