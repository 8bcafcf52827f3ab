package game

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTenByTen(t *testing.T, foods []FoodItem) *Board {
	t.Helper()
	arena := NewArena()
	head, tail := CreateSnake(arena, 5, 5)

	foodHead := NilCell
	for _, f := range foods {
		id := arena.CreateCell(f.X, f.Y)
		arena.Cell(id).Point = f.Point
		arena.pushFront(id, &foodHead)
	}
	return CreateBoard(arena, rand.New(rand.NewSource(1)), head, tail, foodHead, 10, 10, 0, 0)
}

func TestAttemptMove_UpWrapsAroundTopEdge(t *testing.T) {
	b := newTenByTen(t, nil)

	wantHeads := []Position{{5, 4}, {5, 3}, {5, 2}, {5, 1}, {5, 0}, {5, 9}}
	for i, want := range wantHeads {
		if status := b.AttemptMove(Up); status != Success {
			t.Fatalf("move %d status=%v want=success\n%s", i+1, status, dumpBoard(b))
		}
		if got := b.Head(); got != want {
			t.Fatalf("move %d head=%v want=%v", i+1, got, want)
		}
		if got := b.SnakeLength(); got != 2 {
			t.Fatalf("move %d length=%d want=2", i+1, got)
		}
		checkLinks(t, b)
	}
	if b.Arena().Live() != 2 {
		t.Fatalf("live cells=%d want=2", b.Arena().Live())
	}
}

func TestAttemptMove_EatFoodGrows(t *testing.T) {
	b := newTenByTen(t, []FoodItem{{X: 5, Y: 4, Point: 3}})
	before := dumpBoard(b)

	if status := b.AttemptMove(Up); status != Success {
		t.Fatalf("status=%v want=success", status)
	}
	t.Logf("BEFORE:\n%sAFTER:\n%s", before, dumpBoard(b))

	if b.Score != 3 {
		t.Fatalf("score=%d want=3", b.Score)
	}
	if got := b.SnakeLength(); got != 3 {
		t.Fatalf("length=%d want=3", got)
	}
	want := []Position{{5, 4}, {5, 5}, {5, 6}}
	if got := b.Snapshot().Snake; !positionsEqual(got, want) {
		t.Fatalf("snake=%v want=%v", got, want)
	}
	for _, f := range b.Snapshot().Foods {
		if f.X == 5 && f.Y == 4 {
			t.Fatalf("eaten food still listed: %+v", f)
		}
	}
	if got := b.FoodCount(); got != 1 {
		t.Fatalf("food count=%d want=1 (respawned)", got)
	}
	checkLinks(t, b)
}

func TestAttemptMove_ReverseIntoBodyFails(t *testing.T) {
	b := buildBoard(t, []Position{{5, 3}, {5, 4}, {5, 5}}, []FoodItem{{X: 0, Y: 0, Point: 4}}, 10, 10, nil)
	before := b.Snapshot()
	head, tail, foods, live := b.SnakeHead, b.SnakeTail, b.Foods, b.Arena().Live()

	if status := b.AttemptMove(Down); status != Failure {
		t.Fatalf("status=%v want=failure\n%s", status, dumpBoard(b))
	}

	if after := b.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("board changed on failure:\nbefore=%+v\nafter=%+v", before, after)
	}
	if b.SnakeHead != head || b.SnakeTail != tail || b.Foods != foods {
		t.Fatalf("list references changed on failure")
	}
	if b.Arena().Live() != live {
		t.Fatalf("live cells=%d want=%d", b.Arena().Live(), live)
	}
}

func TestAttemptMove_TailCellCountsAsOccupied(t *testing.T) {
	// a 2x2 loop: the head would step onto the tail that is about to move away
	b := buildBoard(t, []Position{{1, 1}, {2, 1}, {2, 2}, {1, 2}}, nil, 5, 5, nil)

	if status := b.AttemptMove(Down); status != Failure {
		t.Fatalf("status=%v want=failure\n%s", status, dumpBoard(b))
	}
	if got := b.SnakeLength(); got != 4 {
		t.Fatalf("length=%d want=4", got)
	}
}

func TestNextPosition_Wraps(t *testing.T) {
	tests := []struct {
		name string
		head Position
		dir  Direction
		want Position
	}{
		{"right edge", Position{9, 3}, Right, Position{0, 3}},
		{"left edge", Position{0, 3}, Left, Position{9, 3}},
		{"top edge", Position{4, 0}, Up, Position{4, 9}},
		{"bottom edge", Position{4, 9}, Down, Position{4, 0}},
		{"inside", Position{4, 4}, Right, Position{5, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buildBoard(t, []Position{tt.head}, nil, 10, 10, nil)
			if got := b.NextPosition(tt.dir); got != tt.want {
				t.Fatalf("next=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestNextPosition_OffsetBounds(t *testing.T) {
	arena := NewArena()
	head := arena.CreateCell(7, 2)
	b := CreateBoard(arena, nil, head, head, NilCell, 8, 6, 3, 2)

	if got := b.NextPosition(Right); got != (Position{3, 2}) {
		t.Fatalf("right from xmax-1: got=%v want=(3,2)", got)
	}
	if got := b.NextPosition(Up); got != (Position{7, 5}) {
		t.Fatalf("up from ymin: got=%v want=(7,5)", got)
	}
}

func TestAttemptMove_SingleCellSnake(t *testing.T) {
	b := buildBoard(t, []Position{{2, 2}}, nil, 5, 5, nil)

	if status := b.AttemptMove(Left); status != Success {
		t.Fatalf("status=%v want=success", status)
	}
	if b.SnakeHead != b.SnakeTail || b.Head() != (Position{1, 2}) {
		t.Fatalf("head=%v, head and tail must coincide", b.Head())
	}
	checkLinks(t, b)
}

func TestAttemptMove_InvalidDirection(t *testing.T) {
	b := newTenByTen(t, nil)
	if status := b.AttemptMove(Direction(42)); status != Failure {
		t.Fatalf("status=%v want=failure", status)
	}
	if b.Head() != (Position{5, 5}) {
		t.Fatalf("head moved on invalid direction")
	}
}

// TestAttemptMove_Invariants drives a board with random turns and checks the
// length, overlap, food and score properties after every tick.
func TestAttemptMove_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	settings := DefaultSettings()
	settings.XMax, settings.YMax = 12, 8

	for round := range 20 {
		b, err := NewBoard(settings, rand.New(rand.NewSource(int64(round))))
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}

		heading := Up
		for tick := range 500 {
			before := b.Snapshot()
			beforeLen := b.SnakeLength()
			dir := Directions[rng.Intn(len(Directions))]
			if dir == heading.Opposite() {
				dir = heading
			}

			status := b.AttemptMove(dir)
			after := b.Snapshot()

			if status == Failure {
				if !reflect.DeepEqual(before, after) {
					t.Fatalf("round %d tick %d: board changed on failure", round, tick)
				}
				break
			}
			heading = dir

			gained := after.Score - before.Score
			switch {
			case gained == 0:
				if b.SnakeLength() != beforeLen {
					t.Fatalf("round %d tick %d: length=%d want=%d", round, tick, b.SnakeLength(), beforeLen)
				}
			case gained >= MinFoodPoint && gained <= MaxFoodPoint:
				if b.SnakeLength() != beforeLen+1 {
					t.Fatalf("round %d tick %d: length=%d want=%d after eating", round, tick, b.SnakeLength(), beforeLen+1)
				}
			default:
				t.Fatalf("round %d tick %d: score moved by %d", round, tick, gained)
			}

			checkLinks(t, b)
			assertDisjoint(t, after)
		}
		b.Destroy()
	}
}

func assertDisjoint(t *testing.T, snapshot BoardSnapshot) {
	t.Helper()
	seen := make(map[Position]string)
	for _, p := range snapshot.Snake {
		if _, dup := seen[p]; dup {
			t.Fatalf("snake overlaps itself at %v", p)
		}
		seen[p] = "snake"
	}
	for _, f := range snapshot.Foods {
		p := Position{X: f.X, Y: f.Y}
		if owner, dup := seen[p]; dup {
			t.Fatalf("food at %v collides with %s", p, owner)
		}
		if f.Point < MinFoodPoint || f.Point > MaxFoodPoint {
			t.Fatalf("food at %v has point %d", p, f.Point)
		}
		seen[p] = "food"
	}
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		got, err := ParseDirection(dir.String())
		if err != nil || got != dir {
			t.Fatalf("ParseDirection(%q)=%v,%v want=%v", dir.String(), got, err, dir)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}
