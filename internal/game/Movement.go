package game

import (
	"errors"
	"fmt"
	"strings"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var ErrUnknownDirection = errors.New("unknown direction")

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the one-step offset in screen coordinates: Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Up, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Status is the result of a single move attempt.
type Status int

const (
	Success Status = iota
	Failure
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "failure"
}

// NextPosition is the cell the head enters when moving in dir. The field is a
// torus: leaving one edge re-enters on the opposite one.
func (b *Board) NextPosition(dir Direction) Position {
	next := b.Head()

	switch dir {
	case Up:
		next.Y--
		if next.Y < b.YMin {
			next.Y = b.YMax - 1
		}
	case Down:
		next.Y++
		if next.Y > b.YMax-1 {
			next.Y = b.YMin
		}
	case Left:
		next.X--
		if next.X < b.XMin {
			next.X = b.XMax - 1
		}
	case Right:
		next.X++
		if next.X > b.XMax-1 {
			next.X = b.XMin
		}
	}

	return next
}

// AttemptMove advances the snake one cell. A move into any current body cell,
// the tail included, returns Failure and leaves the board untouched. Eating food
// keeps the tail in place for this tick, which grows the snake by one.
func (b *Board) AttemptMove(dir Direction) Status {
	if b.Destroyed() || !dir.Valid() {
		return Failure
	}

	next := b.NextPosition(dir)
	if b.arena.findAt(next.X, next.Y, b.SnakeHead) != NilCell {
		return Failure
	}

	head := b.arena.CreateCell(next.X, next.Y)
	b.arena.pushFront(head, &b.SnakeHead)

	if food := b.arena.ListContains(head, b.Foods); food != NilCell {
		b.Score += b.arena.cells[food].Point
		b.arena.RemoveFromList(food, &b.Foods)
		b.SpawnFood()
		return Success
	}

	oldTail := b.SnakeTail
	b.SnakeTail = b.arena.cells[oldTail].previous
	b.arena.cells[b.SnakeTail].next = NilCell
	b.arena.release(oldTail)

	return Success
}
