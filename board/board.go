package board

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the state of a single square.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

const (
	// DefaultDim is the standard Othello board.
	DefaultDim = 8
	MinDim     = 4
	MaxDim     = 26
)

var (
	ErrBadDimension = errors.New("board dimension must be even and between 4 and 26")
)

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// DisplayString is the single-character representation used in display text
// and in position strings.
func (c Cell) DisplayString() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	}
	return "."
}

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// CellFromString parses a side name ("b", "black", "1", ...).
func CellFromString(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black", "x", "1":
		return Black, nil
	case "w", "white", "o", "2":
		return White, nil
	}
	return Empty, fmt.Errorf("unknown side %q", s)
}

// Board is a square Reversi board. Squares are stored row-major.
type Board struct {
	dim     int
	squares []Cell
}

// NewBoard makes an empty board of the given dimension.
func NewBoard(dim int) (*Board, error) {
	if dim < MinDim || dim > MaxDim || dim%2 != 0 {
		return nil, ErrBadDimension
	}
	return &Board{dim: dim, squares: make([]Cell, dim*dim)}, nil
}

// StartingBoard returns a board with the four centre discs placed.
func StartingBoard(dim int) (*Board, error) {
	b, err := NewBoard(dim)
	if err != nil {
		return nil, err
	}
	mid := dim / 2
	b.Set(mid-1, mid-1, White)
	b.Set(mid, mid, White)
	b.Set(mid-1, mid, Black)
	b.Set(mid, mid-1, Black)
	return b, nil
}

func (b *Board) Dim() int {
	return b.dim
}

// Area is the number of squares on the board.
func (b *Board) Area() int {
	return len(b.squares)
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.dim && col >= 0 && col < b.dim
}

func (b *Board) At(row, col int) Cell {
	return b.squares[row*b.dim+col]
}

func (b *Board) Set(row, col int, c Cell) {
	b.squares[row*b.dim+col] = c
}

// AtIndex and SetIndex address the board by row-major index.
func (b *Board) AtIndex(idx int) Cell {
	return b.squares[idx]
}

func (b *Board) SetIndex(idx int, c Cell) {
	b.squares[idx] = c
}

func (b *Board) Index(row, col int) int {
	return row*b.dim + col
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	sq := make([]Cell, len(b.squares))
	copy(sq, b.squares)
	return &Board{dim: b.dim, squares: sq}
}

// CopyFrom copies the other board's squares into this board. Both boards
// must have the same dimension.
func (b *Board) CopyFrom(other *Board) {
	if len(b.squares) != len(other.squares) {
		b.squares = make([]Cell, len(other.squares))
	}
	b.dim = other.dim
	copy(b.squares, other.squares)
}

// Equals is true if both boards have the same dimension and contents.
func (b *Board) Equals(other *Board) bool {
	if b.dim != other.dim {
		return false
	}
	for i := range b.squares {
		if b.squares[i] != other.squares[i] {
			return false
		}
	}
	return true
}

// Count returns the number of squares holding c.
func (b *Board) Count(c Cell) int {
	n := 0
	for _, s := range b.squares {
		if s == c {
			n++
		}
	}
	return n
}

func (b *Board) EmptyCount() int {
	return b.Count(Empty)
}

// Corners returns the row-major indices of the four corners, in the order
// top-left, top-right, bottom-left, bottom-right.
func (b *Board) Corners() [4]int {
	last := b.dim - 1
	return [4]int{
		b.Index(0, 0),
		b.Index(0, last),
		b.Index(last, 0),
		b.Index(last, last),
	}
}

// CornerCount is the number of corners occupied by c.
func (b *Board) CornerCount(c Cell) int {
	n := 0
	for _, idx := range b.Corners() {
		if b.squares[idx] == c {
			n++
		}
	}
	return n
}

// Clear empties every square.
func (b *Board) Clear() {
	for i := range b.squares {
		b.squares[i] = Empty
	}
}

// ToDisplayText renders the board with column letters and row numbers.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	n := b.dim
	sb.WriteString("\n   ")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+i))
	}
	sb.WriteString("\n   " + strings.Repeat("-", n*2) + "\n")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%2d|", i+1))
		for j := 0; j < n; j++ {
			sb.WriteString(b.At(i, j).DisplayString() + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	sb.WriteString(fmt.Sprintf("   black: %d  white: %d\n", b.Count(Black), b.Count(White)))
	return sb.String()
}
