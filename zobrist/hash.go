// Package zobrist hashes Reversi positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
)

const bignum = 1<<63 - 2

// tableSeed fixes the random tables, so two Zobrists of the same dimension
// always agree and hashes can be compared across goroutines and runs.
var tableSeed = [32]byte{'r', 'e', 'v', 'e', 'r', 's', 'i'}

type Zobrist struct {
	whiteToMove uint64
	// posTable[square][0] is a black disc, [1] a white one.
	posTable [][2]uint64
	boardDim int
}

func New(boardDim int) *Zobrist {
	z := &Zobrist{}
	z.Initialize(boardDim)
	return z
}

func (z *Zobrist) Initialize(boardDim int) {
	rng := frand.NewCustom(tableSeed[:], 1024, 12)
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		z.posTable[i][0] = rng.Uint64n(bignum) + 1
		z.posTable[i][1] = rng.Uint64n(bignum) + 1
	}
	z.whiteToMove = rng.Uint64n(bignum) + 1
}

func (z *Zobrist) Dim() int {
	return z.boardDim
}

func discIdx(c board.Cell) int {
	if c == board.White {
		return 1
	}
	return 0
}

func (z *Zobrist) Hash(b *board.Board, onturn board.Cell) uint64 {
	key := uint64(0)
	for i := 0; i < b.Area(); i++ {
		c := b.AtIndex(i)
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][discIdx(c)]
	}
	if onturn == board.White {
		key ^= z.whiteToMove
	}
	return key
}

// AddMove updates key for the move or pass recorded in u. Applying the same
// Undo twice restores the starting key, so it works for taking moves back
// too.
func (z *Zobrist) AddMove(key uint64, u game.Undo) uint64 {
	if !u.Pass {
		mine, theirs := discIdx(u.Side), discIdx(u.Side.Opponent())
		key ^= z.posTable[u.Move.Row*z.boardDim+u.Move.Col][mine]
		for _, sq := range u.Flipped {
			key ^= z.posTable[sq][theirs]
			key ^= z.posTable[sq][mine]
		}
	}
	key ^= z.whiteToMove
	return key
}
