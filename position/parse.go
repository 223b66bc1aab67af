// Package position reads and writes a compact text notation for Reversi
// positions, in the spirit of FEN:
//
//	8/8/8/3wb3/3bw3/8/8/8 b tmr 1900;gid abc123
//
// Rows are separated by slashes, digits are runs of empty squares, and the
// second field is the side to move. Anything after that is a list of
// semicolon-separated opcodes.
package position

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
)

var (
	ErrBadPosition = errors.New("bad position string")
)

// Parsed is the result of parsing a position string.
type Parsed struct {
	Board   *board.Board
	OnTurn  board.Cell
	Opcodes map[string]string
}

// TimeBudget returns the value of the tmr opcode (milliseconds), if any.
func (p *Parsed) TimeBudget() (time.Duration, bool) {
	tmr, ok := p.Opcodes["tmr"]
	if !ok {
		return 0, false
	}
	ms, err := strconv.Atoi(tmr)
	if err != nil || ms < 0 {
		log.Warn().Str("tmr", tmr).Msg("ignoring-bad-timer-opcode")
		return 0, false
	}
	if int64(ms) > math.MaxInt64/int64(time.Millisecond) {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(ms) * time.Millisecond, true
}

// Parse returns a board and side to move from the given position string.
func Parse(pos string) (*Parsed, error) {
	fields := strings.SplitN(strings.TrimSpace(pos), " ", 3)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: must have at least 2 space-separated fields", ErrBadPosition)
	}
	rows := strings.Split(fields[0], "/")
	b, err := board.NewBoard(len(rows))
	if err != nil {
		return nil, fmt.Errorf("%w: %d rows: %w", ErrBadPosition, len(rows), err)
	}
	for i, row := range rows {
		cells, err := rowToCells(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrBadPosition, i+1, err)
		}
		if len(cells) != b.Dim() {
			return nil, fmt.Errorf("%w: row %d has %d squares, expected %d",
				ErrBadPosition, i+1, len(cells), b.Dim())
		}
		for j, c := range cells {
			b.Set(i, j, c)
		}
	}
	onturn, err := board.CellFromString(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPosition, err)
	}

	opcodes := map[string]string{}
	if len(fields) == 3 {
		for _, op := range strings.Split(fields[2], ";") {
			op = strings.TrimSpace(op)
			if len(op) == 0 {
				continue
			}
			opWithParams := strings.SplitN(op, " ", 2)
			if len(opWithParams) != 2 {
				return nil, fmt.Errorf("%w: wrong number of arguments for %s operation",
					ErrBadPosition, opWithParams[0])
			}
			opcodes[opWithParams[0]] = strings.TrimSpace(opWithParams[1])
		}
	}
	return &Parsed{Board: b, OnTurn: onturn, Opcodes: opcodes}, nil
}

func rowToCells(row string) ([]board.Cell, error) {
	cells := []board.Cell{}
	lastN := ""
	flushEmpties := func() error {
		if lastN == "" {
			return nil
		}
		n, err := strconv.Atoi(lastN)
		if err != nil {
			return err
		}
		if n > board.MaxDim-len(cells) {
			return fmt.Errorf("run of %s empty squares makes the row longer than %d", lastN, board.MaxDim)
		}
		for idx := 0; idx < n; idx++ {
			cells = append(cells, board.Empty)
		}
		lastN = ""
		return nil
	}
	for _, rn := range row {
		switch {
		case rn >= '0' && rn <= '9':
			lastN += string(rn)
			if len(lastN) > 2 {
				return nil, fmt.Errorf("run of empty squares %s... is longer than %d", lastN, board.MaxDim)
			}
			continue
		case rn == 'b' || rn == 'B' || rn == 'x' || rn == 'X':
			if err := flushEmpties(); err != nil {
				return nil, err
			}
			cells = append(cells, board.Black)
		case rn == 'w' || rn == 'W' || rn == 'o' || rn == 'O':
			if err := flushEmpties(); err != nil {
				return nil, err
			}
			cells = append(cells, board.White)
		case rn == '.':
			if err := flushEmpties(); err != nil {
				return nil, err
			}
			cells = append(cells, board.Empty)
		default:
			return nil, fmt.Errorf("unexpected character %q", rn)
		}
		if len(cells) > board.MaxDim {
			return nil, fmt.Errorf("row is longer than %d squares", board.MaxDim)
		}
	}
	if err := flushEmpties(); err != nil {
		return nil, err
	}
	return cells, nil
}

// String writes the board and side to move in position notation.
func String(b *board.Board, onturn board.Cell) string {
	var sb strings.Builder
	n := b.Dim()
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte('/')
		}
		empties := 0
		for j := 0; j < n; j++ {
			c := b.At(i, j)
			if c == board.Empty {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteString(c.DisplayString())
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(onturn.DisplayString())
	return sb.String()
}
