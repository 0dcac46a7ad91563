// game/board.go
package game

import (
	"math/rand"
)

// Mine marks a mined cell on the board; every other cell holds its
// adjacent mine count (0..8).
const Mine = -1

// maxGenerateAttempts bounds the quality-filter retry loop. If every
// attempt looks guess-prone the last board is accepted as is.
const maxGenerateAttempts = 50

type Board [][]int

// Generate places mineCount mines uniformly at random, never inside the
// 3x3 block centered on (safeRow, safeCol), and fills the remaining cells
// with their neighbor counts. Boards whose opened region borders an
// obvious 50/50 candidate are regenerated up to maxGenerateAttempts
// times. This is a best-effort heuristic, not a solvability proof.
// The caller must validate that mineCount fits the eligible cells.
func Generate(width, height, mineCount, safeRow, safeCol int) Board {
	var board Board
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		board = placeMines(width, height, mineCount, safeRow, safeCol)
		if !hasGuessyOpening(board, width, height, safeRow, safeCol) {
			return board
		}
	}
	return board
}

func placeMines(width, height, mineCount, safeRow, safeCol int) Board {
	board := make(Board, height)
	for row := range board {
		board[row] = make([]int, width)
	}

	placed := 0
	for placed < mineCount {
		row := rand.Intn(height)
		col := rand.Intn(width)

		if abs(row-safeRow) <= 1 && abs(col-safeCol) <= 1 {
			continue
		}
		if board[row][col] == Mine {
			continue
		}

		board[row][col] = Mine
		placed++
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if board[row][col] == Mine {
				continue
			}
			board[row][col] = countMineNeighbors(board, width, height, row, col)
		}
	}

	return board
}

func countMineNeighbors(board Board, width, height, row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr := row + dr
			nc := col + dc
			if nr >= 0 && nr < height && nc >= 0 && nc < width && board[nr][nc] == Mine {
				count++
			}
		}
	}
	return count
}

// hasGuessyOpening simulates the first click and flags layouts where a
// revealed 1 or 2 ends up with exactly two hidden neighbors. Such pairs
// are the usual source of 50/50 guesses near the opening.
func hasGuessyOpening(board Board, width, height, firstRow, firstCol int) bool {
	revealed := NewBoolGrid(width, height)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			nr := firstRow + dr
			nc := firstCol + dc
			if nr < 0 || nr >= height || nc < 0 || nc >= width {
				continue
			}
			FloodReveal(board, revealed, nr, nc)
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if !revealed[row][col] || board[row][col] <= 0 || board[row][col] > 2 {
				continue
			}

			hidden := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr := row + dr
					nc := col + dc
					if nr >= 0 && nr < height && nc >= 0 && nc < width && !revealed[nr][nc] {
						hidden++
					}
				}
			}

			if hidden == 2 {
				return true
			}
		}
	}

	return false
}

// FloodReveal marks (row, col) revealed and, when the cell is a 0,
// cascades through all eight neighbors. Mines, out-of-bounds cells and
// already revealed cells stop the fill. The board itself is never
// mutated. An explicit worklist keeps the fill stack-safe on the
// largest (30x30) boards.
func FloodReveal(board Board, revealed [][]bool, row, col int) {
	height := len(board)
	if height == 0 {
		return
	}
	width := len(board[0])

	type cell struct{ row, col int }
	stack := []cell{{row, col}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.row < 0 || c.row >= height || c.col < 0 || c.col >= width {
			continue
		}
		if revealed[c.row][c.col] || board[c.row][c.col] == Mine {
			continue
		}

		revealed[c.row][c.col] = true

		if board[c.row][c.col] != 0 {
			continue
		}

		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				stack = append(stack, cell{c.row + dr, c.col + dc})
			}
		}
	}
}

// CheckWin reports whether the game is won: either every non-mine cell
// is revealed, or exactly mineCount mines carry a flag. The flag
// condition deliberately allows a win while safe cells are still hidden;
// it mirrors the classic "flag all mines" finish.
func CheckWin(board Board, revealed, flagged [][]bool, mineCount int) bool {
	revealedCount := 0
	correctFlags := 0
	height := len(board)
	width := 0
	if height > 0 {
		width = len(board[0])
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if revealed[row][col] {
				revealedCount++
			}
			if flagged[row][col] && board[row][col] == Mine {
				correctFlags++
			}
		}
	}

	nonMineCells := width*height - mineCount

	return revealedCount == nonMineCells || correctFlags == mineCount
}

// NewBoolGrid allocates a height x width grid of false values.
func NewBoolGrid(width, height int) [][]bool {
	grid := make([][]bool, height)
	for row := range grid {
		grid[row] = make([]bool, width)
	}
	return grid
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
