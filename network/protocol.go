package network

// Client to server events.
const (
	EventHostGame   = "host-game"
	EventJoinGame   = "join-game"
	EventInitGame   = "init-game"
	EventRevealCell = "reveal-cell"
	EventFlagCell   = "flag-cell"
	EventCursorMove = "cursor-move"
	EventSendEmote  = "send-emote"
)

// Server to client events.
const (
	EventRoomCreated     = "room-created"
	EventJoinedRoom      = "joined-room"
	EventJoinError       = "join-error"
	EventPlayerJoined    = "player-joined"
	EventPlayerLeft      = "player-left"
	EventGameInitialized = "game-initialized"
	EventCellRevealed    = "cell-revealed"
	EventCellFlagged     = "cell-flagged"
	EventGameOver        = "game-over"
	EventCursorUpdate    = "cursor-update"
	EventEmoteReceived   = "emote-received"
)
