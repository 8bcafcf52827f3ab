package game

import (
	"strings"
	"testing"
)

// sequenceRand replays fixed values, reduced modulo n.
type sequenceRand struct {
	values []int
	next   int
}

func (r *sequenceRand) Intn(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

// buildBoard lays out a snake (head first) and food on a [0,w)x[0,h) board.
func buildBoard(t *testing.T, snake []Position, foods []FoodItem, w, h int, rng Rand) *Board {
	t.Helper()
	arena := NewArena()

	head, tail := NilCell, NilCell
	for i := len(snake) - 1; i >= 0; i-- {
		id := arena.CreateCell(snake[i].X, snake[i].Y)
		arena.pushFront(id, &head)
		if tail == NilCell {
			tail = id
		}
	}

	foodHead := NilCell
	for i := len(foods) - 1; i >= 0; i-- {
		id := arena.CreateCell(foods[i].X, foods[i].Y)
		arena.Cell(id).Point = foods[i].Point
		arena.pushFront(id, &foodHead)
	}

	if rng == nil {
		rng = &sequenceRand{values: []int{0}}
	}
	return CreateBoard(arena, rng, head, tail, foodHead, w, h, 0, 0)
}

// dumpBoard renders a board: H head, s body, digits for food.
func dumpBoard(b *Board) string {
	gameMap := BuildGameMap(b.Snapshot())
	var sb strings.Builder
	for _, row := range gameMap.Tiles {
		for _, tile := range row {
			switch tile.Kind {
			case TileHead:
				sb.WriteByte('H')
			case TileBody:
				sb.WriteByte('s')
			case TileFood:
				sb.WriteByte(byte('0' + tile.Point))
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// checkLinks verifies next/previous are inverses along the snake and that the
// cached tail is the last cell.
func checkLinks(t *testing.T, b *Board) {
	t.Helper()
	arena := b.Arena()
	prev := NilCell
	id := b.SnakeHead
	for id != NilCell {
		cell := arena.Cell(id)
		if cell == nil {
			t.Fatalf("snake links to released cell %d", id)
		}
		if cell.Previous() != prev {
			t.Fatalf("cell %d previous=%d want=%d", id, cell.Previous(), prev)
		}
		prev = id
		id = cell.Next()
	}
	if prev != b.SnakeTail {
		t.Fatalf("tail=%d want=%d", b.SnakeTail, prev)
	}
}

func positionsEqual(got, want []Position) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
