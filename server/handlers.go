package server

import (
	"encoding/json"
	"time"

	"github.com/minepair/gameserver/game"
	"github.com/minepair/gameserver/logger"
	"github.com/minepair/gameserver/models"
	"github.com/minepair/gameserver/network"
	"github.com/minepair/gameserver/room"
	"github.com/minepair/gameserver/session"
)

// Error replies carry the exact messages clients match on.
const (
	msgRoomNotFound = "Room not found"
	msgRoomFull     = "Room is full"
)

func (s *GameServer) handleHostGame(sess *session.Session) {
	r := s.roomManager.CreateRoom(sess.GetID())
	sess.RoomCode = r.Code

	logger.Log.Infof("Session %s created room %s", sess.GetID(), r.Code)

	data, _ := json.Marshal(roomCreatedPayload{RoomCode: r.Code})
	sess.Send(network.EventRoomCreated, data)
}

func (s *GameServer) handleJoinGame(sess *session.Session, payload json.RawMessage) {
	var req joinGamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	r, isHost, err := s.roomManager.JoinRoom(req.RoomCode, sess.GetID())
	if err != nil {
		message := msgRoomNotFound
		if err == room.ErrRoomFull {
			message = msgRoomFull
		}
		data, _ := json.Marshal(joinErrorPayload{Message: message})
		sess.Send(network.EventJoinError, data)
		return
	}

	sess.RoomCode = r.Code

	data, _ := json.Marshal(joinedRoomPayload{RoomCode: r.Code, IsHost: isHost})
	sess.Send(network.EventJoinedRoom, data)

	// A late joiner needs the current game snapshot to catch up.
	r.Lock()
	if r.Game != nil {
		snapshot, _ := json.Marshal(r.Game)
		sess.Send(network.EventGameInitialized, snapshot)
	}
	r.Unlock()

	joined, _ := json.Marshal(playerPayload{PlayerID: sess.GetID()})
	s.broadcaster.ToOthers(r.Code, sess.GetID(), network.EventPlayerJoined, joined)

	logger.Log.Infof("Session %s joined room %s", sess.GetID(), r.Code)
}

func (s *GameServer) handleInitGame(sess *session.Session, payload json.RawMessage) {
	var req initGamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists {
		return
	}
	if !r.IsHost(sess.GetID()) {
		logger.Log.Warnf("Session %s tried to init room %s without being host", sess.GetID(), r.Code)
		return
	}

	// Client-side bounds are re-checked here so a tampering host cannot
	// request a degenerate board.
	g, err := game.NewGame(req.Width, req.Height, req.Mines)
	if err != nil {
		logger.Log.Warnf("Rejected init for room %s: %v", r.Code, err)
		return
	}

	r.Lock()
	r.Game = g
	snapshot, _ := json.Marshal(g)
	r.Unlock()

	s.broadcaster.ToRoom(r.Code, network.EventGameInitialized, snapshot)
	logger.Log.Infof("Room %s initialized %dx%d board with %d mines", r.Code, req.Width, req.Height, req.Mines)
}

func (s *GameServer) handleRevealCell(sess *session.Session, payload json.RawMessage) {
	var req revealCellPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists || !r.HasPlayer(sess.GetID()) {
		return
	}

	r.Lock()
	defer r.Unlock()

	g := r.Game
	if g == nil {
		return
	}

	result, err := g.Reveal(req.Row, req.Col)
	if err != nil {
		// Settled cells and finished games degrade to a no-op.
		return
	}

	if g.Over {
		data, _ := json.Marshal(gameOverPayload{Won: g.Won, Board: g.Board, Revealed: g.Revealed})
		s.broadcaster.ToRoom(r.Code, network.EventGameOver, data)
		s.finishGame(r, g)
		return
	}

	data, _ := json.Marshal(cellRevealedPayload{
		Row:      result.Row,
		Col:      result.Col,
		PlayerID: sess.GetID(),
		Value:    result.Value,
		Revealed: g.Revealed,
		Board:    g.Board,
	})
	s.broadcaster.ToRoom(r.Code, network.EventCellRevealed, data)
}

func (s *GameServer) handleFlagCell(sess *session.Session, payload json.RawMessage) {
	var req flagCellPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists || !r.HasPlayer(sess.GetID()) {
		return
	}

	r.Lock()
	defer r.Unlock()

	g := r.Game
	if g == nil {
		return
	}

	result, err := g.Flag(req.Row, req.Col, req.Flagged)
	if err != nil {
		return
	}

	if g.Over {
		data, _ := json.Marshal(gameOverPayload{Won: g.Won, Board: g.Board, Revealed: g.Revealed})
		s.broadcaster.ToRoom(r.Code, network.EventGameOver, data)
		s.finishGame(r, g)
		return
	}

	data, _ := json.Marshal(cellFlaggedPayload{
		Row:      result.Row,
		Col:      result.Col,
		Flagged:  result.Flagged,
		PlayerID: sess.GetID(),
	})
	s.broadcaster.ToRoom(r.Code, network.EventCellFlagged, data)
}

func (s *GameServer) handleCursorMove(sess *session.Session, payload json.RawMessage) {
	var req cursorMovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists {
		return
	}

	r.SetCursor(sess.GetID(), req.X, req.Y)

	data, _ := json.Marshal(cursorUpdatePayload{PlayerID: sess.GetID(), X: req.X, Y: req.Y})
	s.broadcaster.ToOthers(r.Code, sess.GetID(), network.EventCursorUpdate, data)
}

func (s *GameServer) handleSendEmote(sess *session.Session, payload json.RawMessage) {
	var req sendEmotePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return
	}

	if _, exists := s.roomManager.GetRoom(req.RoomCode); !exists {
		return
	}

	data, _ := json.Marshal(emoteReceivedPayload{
		Emote:    req.Emote,
		PlayerID: sess.GetID(),
		X:        req.X,
		Y:        req.Y,
	})
	s.broadcaster.ToRoom(req.RoomCode, network.EventEmoteReceived, data)
}

func (s *GameServer) handleDisconnect(sess *session.Session) {
	s.sessionManager.Remove(sess.GetID())
	s.monitor.DecOnlinePlayers()

	r, code, ok := s.roomManager.RemoveConn(sess.GetID())
	if !ok {
		return
	}

	if r == nil {
		logger.Log.Infof("Room %s deleted (empty)", code)
		return
	}

	data, _ := json.Marshal(playerPayload{PlayerID: sess.GetID()})
	s.broadcaster.ToRoom(code, network.EventPlayerLeft, data)
}

// finishGame archives the terminal game. Must be called with the room
// lock held; the record is copied out before the async write.
func (s *GameServer) finishGame(r *room.Room, g *game.Game) {
	s.monitor.IncGamesCompleted()

	record := &models.MatchRecord{
		RoomCode:        r.Code,
		Width:           g.Width,
		Height:          g.Height,
		Mines:           g.Mines,
		Won:             g.Won,
		DurationSeconds: time.Since(g.StartedAt).Seconds(),
		HostID:          r.HostID,
	}
	for _, id := range r.PlayerIDs() {
		if id != r.HostID {
			record.GuestID = id
		}
	}

	if !s.matchService.Enabled() {
		return
	}

	go func() {
		if err := s.matchService.Record(record); err != nil {
			logger.Log.Errorf("Failed to archive match for room %s: %v", record.RoomCode, err)
		}
	}()
}
