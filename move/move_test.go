package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

type coordTestStruct struct {
	row    int
	col    int
	output string
}

var coordTests = []coordTestStruct{
	{0, 0, "a1"},
	{2, 3, "d3"},
	{7, 7, "h8"},
	{9, 8, "i10"},
	{4, 5, "f5"},
}

func TestToBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		calc := ToBoardGameCoords(tc.row, tc.col)
		if calc != tc.output {
			t.Errorf("For row=%v col=%v got %v, expected %v",
				tc.row, tc.col, calc, tc.output)
		}
	}
}

func TestFromBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		row, col, err := FromBoardGameCoords(tc.output)
		if err != nil {
			t.Errorf("For %v got error %v", tc.output, err)
		}
		if row != tc.row || col != tc.col {
			t.Errorf("For %v got row=%v col=%v, expected row=%v col=%v",
				tc.output, row, col, tc.row, tc.col)
		}
	}
}

func TestFromStringUppercase(t *testing.T) {
	is := is.New(t)
	m, err := FromString("D3")
	is.NoErr(err)
	is.Equal(m, New(2, 3))
	is.True(m.Equals(Move{Row: 2, Col: 3}))
}

func TestBadCoords(t *testing.T) {
	is := is.New(t)
	for _, c := range []string{"", "3d", "d", "d0", "dd3", "pass"} {
		_, err := FromString(c)
		is.True(errors.Is(err, ErrBadCoords))
	}
}

func TestDescribe(t *testing.T) {
	is := is.New(t)
	is.Equal(Describe([]Move{New(2, 3), New(3, 2)}), "d3 c4")
	is.Equal(Describe(nil), "")
}
