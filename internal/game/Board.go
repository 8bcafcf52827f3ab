package game

import (
	"math/rand"
	"time"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type FoodItem struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Point int `json:"point"`
}

// BoardSnapshot is a detached copy of a board, safe to hand to renderers and bots.
type BoardSnapshot struct {
	Snake []Position `json:"snake"` // head first
	Foods []FoodItem `json:"foods"`
	XMin  int        `json:"xmin"`
	XMax  int        `json:"xmax"`
	YMin  int        `json:"ymin"`
	YMax  int        `json:"ymax"`
	Score int        `json:"score"`
}

func (s BoardSnapshot) Head() Position {
	return s.Snake[0]
}

func (s BoardSnapshot) Width() int  { return s.XMax - s.XMin }
func (s BoardSnapshot) Height() int { return s.YMax - s.YMin }

// Board is the complete game state of one player. Bounds are half open:
// [XMin, XMax) x [YMin, YMax).
type Board struct {
	SnakeHead CellID
	SnakeTail CellID
	Foods     CellID

	XMin, XMax int
	YMin, YMax int
	Score      int

	arena *Arena
	rng   Rand
}

// CreateSnake builds the two-cell starting snake: a head at (x, y) and the cell
// below it as the tail.
func CreateSnake(arena *Arena, x, y int) (head, tail CellID) {
	head = arena.CreateCell(x, y)
	tail = arena.CreateCell(x, y+1)
	arena.cells[head].next = tail
	arena.cells[tail].previous = head
	return head, tail
}

// CreateBoard wraps pre-built lists living in arena. Bounds are not validated; use
// NewBoard when they come from user input. A nil rng gets a time-seeded source.
func CreateBoard(arena *Arena, rng Rand, snakeHead, snakeTail, foods CellID, xmax, ymax, xmin, ymin int) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Board{
		SnakeHead: snakeHead,
		SnakeTail: snakeTail,
		Foods:     foods,
		XMin:      xmin,
		XMax:      xmax,
		YMin:      ymin,
		YMax:      ymax,
		Score:     0,
		arena:     arena,
		rng:       rng,
	}
}

// NewBoard validates settings, places the starting snake in the middle of the
// field and spawns the initial food.
func NewBoard(settings Settings, rng Rand) (*Board, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	arena := NewArena()
	x := settings.XMin + (settings.XMax-settings.XMin)/2
	y := settings.YMin + (settings.YMax-settings.YMin-1)/2
	head, tail := CreateSnake(arena, x, y)

	board := CreateBoard(arena, rng, head, tail, NilCell, settings.XMax, settings.YMax, settings.XMin, settings.YMin)
	for range settings.InitialFood {
		board.SpawnFood()
	}
	return board, nil
}

func (b *Board) Arena() *Arena {
	return b.arena
}

// Destroy releases both lists. Calling it on a nil or destroyed board is a no-op.
func (b *Board) Destroy() {
	if b == nil || b.arena == nil {
		return
	}
	b.arena.ClearList(b.SnakeHead)
	b.arena.ClearList(b.Foods)
	b.SnakeHead, b.SnakeTail, b.Foods = NilCell, NilCell, NilCell
	b.arena = nil
}

func (b *Board) Destroyed() bool {
	return b == nil || b.arena == nil
}

func (b *Board) SnakeLength() int {
	if b.Destroyed() {
		return 0
	}
	return b.arena.ListLength(b.SnakeHead)
}

func (b *Board) FoodCount() int {
	if b.Destroyed() {
		return 0
	}
	return b.arena.ListLength(b.Foods)
}

func (b *Board) Head() Position {
	head := b.arena.Cell(b.SnakeHead)
	return Position{X: head.X, Y: head.Y}
}

func (b *Board) Snapshot() BoardSnapshot {
	snapshot := BoardSnapshot{
		Snake: []Position{},
		Foods: []FoodItem{},
		XMin:  b.XMin,
		XMax:  b.XMax,
		YMin:  b.YMin,
		YMax:  b.YMax,
		Score: b.Score,
	}
	if b.Destroyed() {
		return snapshot
	}

	snapshot.Snake = b.arena.Positions(b.SnakeHead)
	for id := b.Foods; id != NilCell; id = b.arena.cells[id].next {
		food := b.arena.cells[id]
		snapshot.Foods = append(snapshot.Foods, FoodItem{X: food.X, Y: food.Y, Point: food.Point})
	}
	return snapshot
}
