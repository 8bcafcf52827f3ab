package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestCreateSnake(t *testing.T) {
	arena := NewArena()
	head, tail := CreateSnake(arena, 4, 2)

	if got := arena.Positions(head); !positionsEqual(got, []Position{{4, 2}, {4, 3}}) {
		t.Fatalf("snake=%v want=[(4,2) (4,3)]", got)
	}
	if arena.Cell(head).Next() != tail || arena.Cell(tail).Previous() != head {
		t.Fatalf("head and tail not linked both ways")
	}
}

func TestCreateBoard(t *testing.T) {
	arena := NewArena()
	head, tail := CreateSnake(arena, 1, 1)
	b := CreateBoard(arena, nil, head, tail, NilCell, 10, 8, 0, 0)

	if b.Score != 0 {
		t.Fatalf("score=%d want=0", b.Score)
	}
	if b.XMin != 0 || b.XMax != 10 || b.YMin != 0 || b.YMax != 8 {
		t.Fatalf("bounds x[%d,%d) y[%d,%d)", b.XMin, b.XMax, b.YMin, b.YMax)
	}
	if b.SnakeLength() != 2 || b.FoodCount() != 0 {
		t.Fatalf("length=%d food=%d want=2,0", b.SnakeLength(), b.FoodCount())
	}
}

func TestNewBoard(t *testing.T) {
	settings := DefaultSettings()
	b, err := NewBoard(settings, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	defer b.Destroy()

	if b.SnakeLength() != 2 {
		t.Fatalf("length=%d want=2", b.SnakeLength())
	}
	if b.FoodCount() != settings.InitialFood {
		t.Fatalf("food=%d want=%d", b.FoodCount(), settings.InitialFood)
	}
	want := Position{X: BoardColCount / 2, Y: (BoardRowCount - 1) / 2}
	if b.Head() != want {
		t.Fatalf("head=%v want=%v", b.Head(), want)
	}
	assertDisjoint(t, b.Snapshot())
}

func TestNewBoard_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   error
	}{
		{"xmin equals xmax", func(s *Settings) { s.XMin, s.XMax = 5, 5 }, ErrInvalidBounds},
		{"ymin above ymax", func(s *Settings) { s.YMin, s.YMax = 9, 3 }, ErrInvalidBounds},
		{"single row", func(s *Settings) { s.YMin, s.YMax = 0, 1 }, ErrBoardTooSmall},
		{"no room for food", func(s *Settings) { s.XMax, s.YMax, s.InitialFood = 1, 2, 1 }, ErrBoardTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.modify(&settings)
			if _, err := NewBoard(settings, nil); !errors.Is(err, tt.want) {
				t.Fatalf("err=%v want=%v", err, tt.want)
			}
		})
	}

	settings := DefaultSettings()
	settings.InitialFood = -1
	if _, err := NewBoard(settings, nil); err == nil {
		t.Fatalf("expected error for negative initial food")
	}
}

func TestDestroy(t *testing.T) {
	b, err := NewBoard(DefaultSettings(), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	arena := b.Arena()

	b.Destroy()
	if arena.Live() != 0 {
		t.Fatalf("live cells=%d want=0", arena.Live())
	}
	if !b.Destroyed() || b.SnakeLength() != 0 {
		t.Fatalf("board not marked destroyed")
	}

	// repeated and nil destroys are no-ops
	b.Destroy()
	var nilBoard *Board
	nilBoard.Destroy()

	if b.AttemptMove(Up) != Failure {
		t.Fatalf("moving a destroyed board must fail")
	}
	if b.SpawnFood() {
		t.Fatalf("spawning on a destroyed board must fail")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	b := buildBoard(t, []Position{{1, 1}, {1, 2}}, []FoodItem{{X: 3, Y: 3, Point: 6}}, 5, 5, nil)
	snapshot := b.Snapshot()
	snapshot.Snake[0] = Position{X: 4, Y: 4}
	snapshot.Foods[0].Point = 1

	if b.Head() != (Position{1, 1}) {
		t.Fatalf("snapshot mutation leaked into the board")
	}
	if b.Snapshot().Foods[0].Point != 6 {
		t.Fatalf("snapshot mutation leaked into food")
	}
}

func TestBuildGameMap(t *testing.T) {
	b := buildBoard(t, []Position{{1, 1}, {1, 2}}, []FoodItem{{X: 3, Y: 0, Point: 6}}, 4, 3, nil)
	got := dumpBoard(b)
	want := "...6\n.H..\n.s..\n"
	if got != want {
		t.Fatalf("map:\n%s\nwant:\n%s", got, want)
	}

	gameMap := BuildGameMap(b.Snapshot())
	if !gameMap.IsOccupied(Position{1, 2}) || gameMap.IsOccupied(Position{3, 0}) {
		t.Fatalf("occupancy mismatch")
	}
	if tile := gameMap.At(Position{10, 10}); tile.Kind != TileVoid {
		t.Fatalf("out of range tile kind=%v want=void", tile.Kind)
	}
}
