package server

import (
	"github.com/minepair/gameserver/game"
)

// Client payloads.

type joinGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type initGamePayload struct {
	RoomCode string `json:"roomCode"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Mines    int    `json:"mines"`
}

type revealCellPayload struct {
	RoomCode string `json:"roomCode"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type flagCellPayload struct {
	RoomCode string `json:"roomCode"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Flagged  bool   `json:"flagged"`
}

type cursorMovePayload struct {
	RoomCode string  `json:"roomCode"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type sendEmotePayload struct {
	RoomCode string  `json:"roomCode"`
	Emote    string  `json:"emote"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Server payloads.

type roomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

type joinedRoomPayload struct {
	RoomCode string `json:"roomCode"`
	IsHost   bool   `json:"isHost"`
}

type joinErrorPayload struct {
	Message string `json:"message"`
}

type playerPayload struct {
	PlayerID string `json:"playerId"`
}

type cellRevealedPayload struct {
	Row      int        `json:"row"`
	Col      int        `json:"col"`
	PlayerID string     `json:"playerId"`
	Value    int        `json:"value"`
	Revealed [][]bool   `json:"revealed"`
	Board    game.Board `json:"board"` // full board so the peer can render numbers
}

type cellFlaggedPayload struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Flagged  bool   `json:"flagged"`
	PlayerID string `json:"playerId"`
}

type gameOverPayload struct {
	Won      bool       `json:"won"`
	Board    game.Board `json:"board"`
	Revealed [][]bool   `json:"revealed"`
}

type cursorUpdatePayload struct {
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type emoteReceivedPayload struct {
	Emote    string  `json:"emote"`
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}
