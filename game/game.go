// game/game.go
package game

import (
	"errors"
	"fmt"
	"time"
)

// Board dimension and mine count bounds, enforced server-side so a
// hostile host cannot request a degenerate or oversized board.
const (
	MinDimension = 8
	MaxDimension = 30
	MinMines     = 10
	MaxMineRatio = 0.8
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrGameOver          = errors.New("game is already over")
	ErrCellSettled       = errors.New("cell is already revealed or flagged")
	ErrOutOfBounds       = errors.New("cell is out of bounds")
)

// Game is the authoritative minesweeper state owned by a room. The board
// stays nil until the first reveal so that the opening click can seed a
// mine-free zone.
type Game struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Mines    int      `json:"mines"`
	Board    Board    `json:"board"`
	Revealed [][]bool `json:"revealed"`
	Flagged  [][]bool `json:"flagged"`
	Over     bool     `json:"gameOver"`
	Won      bool     `json:"won"`

	StartedAt time.Time `json:"-"`
}

// NewGame validates the requested parameters and returns a fresh game
// with all cells hidden and no board generated yet.
func NewGame(width, height, mines int) (*Game, error) {
	if width < MinDimension || width > MaxDimension || height < MinDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := width * height
	maxMines := int(float64(cells) * MaxMineRatio)
	// The 3x3 safe zone around the first click must stay mine-free.
	if eligible := cells - 9; maxMines > eligible {
		maxMines = eligible
	}

	if mines < MinMines || mines > maxMines || mines >= cells {
		return nil, fmt.Errorf("%w: %d mines on %d cells", ErrInvalidDimensions, mines, cells)
	}

	return &Game{
		Width:     width,
		Height:    height,
		Mines:     mines,
		Revealed:  NewBoolGrid(width, height),
		Flagged:   NewBoolGrid(width, height),
		StartedAt: time.Now(),
	}, nil
}

// RevealResult describes the outcome of a reveal for broadcasting.
type RevealResult struct {
	Row     int
	Col     int
	Value   int
	MineHit bool
}

// Reveal opens a cell. The board is generated on the very first reveal,
// seeded so the clicked cell and its neighbors hold no mine. Hitting a
// mine ends the game and exposes every mine; otherwise the reveal flood
// fills and the win condition is re-checked.
func (g *Game) Reveal(row, col int) (*RevealResult, error) {
	if g.Over {
		return nil, ErrGameOver
	}
	if !g.inBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	if g.Revealed[row][col] || g.Flagged[row][col] {
		return nil, ErrCellSettled
	}

	if g.Board == nil {
		g.Board = Generate(g.Width, g.Height, g.Mines, row, col)
	}

	result := &RevealResult{Row: row, Col: col, Value: g.Board[row][col]}

	if g.Board[row][col] == Mine {
		g.Over = true
		g.Won = false
		g.revealAllMines()
		result.MineHit = true
		return result, nil
	}

	FloodReveal(g.Board, g.Revealed, row, col)

	if CheckWin(g.Board, g.Revealed, g.Flagged, g.Mines) {
		g.Over = true
		g.Won = true
	}

	return result, nil
}

// FlagResult describes the outcome of a flag toggle for broadcasting.
type FlagResult struct {
	Row     int
	Col     int
	Flagged bool
}

// Flag sets or clears the flag on a hidden cell. Flagging the complete
// mine set wins the game even before the board is fully revealed.
func (g *Game) Flag(row, col int, flagged bool) (*FlagResult, error) {
	if g.Over {
		return nil, ErrGameOver
	}
	if !g.inBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	if g.Revealed[row][col] {
		return nil, ErrCellSettled
	}

	g.Flagged[row][col] = flagged

	if g.Board != nil && CheckWin(g.Board, g.Revealed, g.Flagged, g.Mines) {
		g.Over = true
		g.Won = true
	}

	return &FlagResult{Row: row, Col: col, Flagged: flagged}, nil
}

func (g *Game) inBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

func (g *Game) revealAllMines() {
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.Board[row][col] == Mine {
				g.Revealed[row][col] = true
			}
		}
	}
}
