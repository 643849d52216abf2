package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Rows    = 6
	Columns = 7
)

// Owner markers held by board cells.
const (
	Empty   = 0
	Player1 = 1
	Player2 = 2
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidCoin  = errors.New("invalid coin id")
)

// Board is indexed [row][col] with row 0 at the bottom. Being an array,
// assigning a Board copies every cell.
type Board [Rows][Columns]int

type Move struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func NewBoard() Board {
	return Board{}
}

// Opponent returns the other player's coin id.
func Opponent(coin int) int {
	if coin == Player1 {
		return Player2
	}
	return Player1
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// BoardFromRows builds a Board from rows listed bottom first.
func BoardFromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	for row, cells := range rows {
		if len(cells) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidBoard, row, len(cells), Columns)
		}
		for col, cell := range cells {
			if cell != Empty && cell != Player1 && cell != Player2 {
				return b, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, row, col, cell)
			}
			b[row][col] = cell
		}
	}
	return b, nil
}

// Rows returns the board as nested slices, bottom row first.
func (b *Board) Rows() [][]int {
	rows := make([][]int, Rows)
	for row := 0; row < Rows; row++ {
		rows[row] = append([]int(nil), b[row][:]...)
	}
	return rows
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b[Rows-1][column] == Empty
}

// DropDisc places a disc on the lowest free cell of column and returns its
// row, or -1 when the column is full or out of range.
func (b *Board) DropDisc(column int, playerNum int) int {
	if column < 0 || column >= Columns {
		return -1
	}
	for row := 0; row < Rows; row++ {
		if b[row][column] == Empty {
			b[row][column] = playerNum
			return row
		}
	}
	return -1
}

func (b *Board) CheckWin(row, col int) bool {
	if !InBounds(row, col) {
		return false
	}
	player := b[row][col]
	if player == Empty {
		return false
	}

	directions := [][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}
	for _, dir := range directions {
		if b.checkDirection(row, col, dir[0], dir[1], player) {
			return true
		}
	}
	return false
}

func (b *Board) checkDirection(row, col, dRow, dCol, player int) bool {
	count := 1
	r, c := row+dRow, col+dCol
	for InBounds(r, c) && b[r][c] == player {
		count++
		r += dRow
		c += dCol
	}
	r, c = row-dRow, col-dCol
	for InBounds(r, c) && b[r][c] == player {
		count++
		r -= dRow
		c -= dCol
	}
	return count >= 4
}

// Winner returns the owner of the first line of four found, or Empty.
func (b *Board) Winner() int {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b.CheckWin(row, col) {
				return b[row][col]
			}
		}
	}
	return Empty
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[Rows-1][col] == Empty {
			return false
		}
	}
	return true
}

// IsSettled reports whether every column respects gravity.
func (b *Board) IsSettled() bool {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := 0; row < Rows; row++ {
			if b[row][col] == Empty {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}

func (b *Board) Copy() Board {
	return *b
}

// String renders the board top row first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			switch b[row][col] {
			case Player1:
				sb.WriteByte('X')
			case Player2:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
