package game

import (
	"testing"
)

// testBoard is a handcrafted 4x4 layout with a single mine at (3,0):
//
//	0 0 0 0
//	0 0 0 0
//	1 1 0 0
//	* 1 0 0
func testBoard() Board {
	return Board{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{Mine, 1, 0, 0},
	}
}

func TestGenerate_SafeZone(t *testing.T) {
	seeds := [][2]int{{0, 0}, {4, 4}, {7, 7}, {0, 7}}

	for _, seed := range seeds {
		safeRow, safeCol := seed[0], seed[1]

		for i := 0; i < 25; i++ {
			board := Generate(8, 8, 10, safeRow, safeCol)

			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					nr := safeRow + dr
					nc := safeCol + dc
					if nr < 0 || nr >= 8 || nc < 0 || nc >= 8 {
						continue
					}
					if board[nr][nc] == Mine {
						t.Fatalf("Mine at (%d,%d) inside the safe zone around (%d,%d)", nr, nc, safeRow, safeCol)
					}
				}
			}
		}
	}
}

func TestGenerate_MineCount(t *testing.T) {
	board := Generate(10, 12, 15, 5, 5)

	if len(board) != 12 || len(board[0]) != 10 {
		t.Fatalf("Expected a 12x10 board, got %dx%d", len(board), len(board[0]))
	}

	mines := 0
	for _, row := range board {
		for _, cell := range row {
			if cell == Mine {
				mines++
			}
		}
	}

	if mines != 15 {
		t.Errorf("Expected 15 mines, got %d", mines)
	}
}

func TestGenerate_NeighborCounts(t *testing.T) {
	board := Generate(16, 16, 40, 8, 8)

	for row := 0; row < 16; row++ {
		for col := 0; col < 16; col++ {
			if board[row][col] == Mine {
				continue
			}

			want := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr := row + dr
					nc := col + dc
					if nr >= 0 && nr < 16 && nc >= 0 && nc < 16 && board[nr][nc] == Mine {
						want++
					}
				}
			}

			if board[row][col] != want {
				t.Fatalf("Cell (%d,%d) holds %d, expected %d mine neighbors", row, col, board[row][col], want)
			}
		}
	}
}

func TestFloodReveal_ZeroRegion(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)

	FloodReveal(board, revealed, 0, 0)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if board[row][col] == Mine {
				if revealed[row][col] {
					t.Errorf("Flood fill revealed the mine at (%d,%d)", row, col)
				}
				continue
			}
			if !revealed[row][col] {
				t.Errorf("Expected cell (%d,%d) to be revealed", row, col)
			}
		}
	}
}

func TestFloodReveal_NonZeroStart(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)

	// Starting on a numbered cell reveals only that cell.
	FloodReveal(board, revealed, 2, 0)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := row == 2 && col == 0
			if revealed[row][col] != want {
				t.Errorf("Cell (%d,%d): revealed=%v, want %v", row, col, revealed[row][col], want)
			}
		}
	}
}

func TestFloodReveal_MineIsNoOp(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)

	FloodReveal(board, revealed, 3, 0)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if revealed[row][col] {
				t.Errorf("Revealing a mine must not reveal (%d,%d)", row, col)
			}
		}
	}
}

func TestFloodReveal_OutOfBounds(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)

	FloodReveal(board, revealed, -1, 10)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if revealed[row][col] {
				t.Errorf("Out-of-bounds reveal must not reveal (%d,%d)", row, col)
			}
		}
	}
}

func TestFloodReveal_AlreadyRevealedStops(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)
	revealed[0][0] = true

	FloodReveal(board, revealed, 0, 0)

	if revealed[1][1] {
		t.Error("Fill should stop on an already revealed start cell")
	}
}

func TestCheckWin_AllNonMinesRevealed(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)
	flagged := NewBoolGrid(4, 4)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if board[row][col] != Mine {
				revealed[row][col] = true
			}
		}
	}

	if !CheckWin(board, revealed, flagged, 1) {
		t.Error("Expected a win with every non-mine cell revealed")
	}
}

func TestCheckWin_AllMinesFlagged(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)
	flagged := NewBoolGrid(4, 4)

	// Only the mine is flagged; safe cells stay hidden. Deliberately a
	// win: flagging the complete mine set finishes the game.
	flagged[3][0] = true

	if !CheckWin(board, revealed, flagged, 1) {
		t.Error("Expected a win with the full mine set flagged")
	}
}

func TestCheckWin_WrongFlagDoesNotWin(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)
	flagged := NewBoolGrid(4, 4)

	flagged[0][0] = true

	if CheckWin(board, revealed, flagged, 1) {
		t.Error("A flag on a safe cell must not count toward the win")
	}
}

func TestCheckWin_Ongoing(t *testing.T) {
	board := testBoard()
	revealed := NewBoolGrid(4, 4)
	flagged := NewBoolGrid(4, 4)
	revealed[0][0] = true

	if CheckWin(board, revealed, flagged, 1) {
		t.Error("A single revealed cell must not win")
	}
}
