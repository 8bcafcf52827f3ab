package game

import (
	"errors"
	"fmt"
	"time"
)

const (
	GameTickDuration   = 100 * time.Millisecond
	BoardColCount      = 40
	BoardRowCount      = 20
	InitialFoodCount   = 5
	MinFoodPoint       = 1
	MaxFoodPoint       = 7
	RetargetEveryTicks = 50
	HighScorePageSize  = 10
	MaxPlayerNameLen   = 20
)

var (
	ErrInvalidBounds = errors.New("invalid board bounds")
	ErrBoardTooSmall = errors.New("board too small")
)

// Settings describes one match. Seed 0 means seed from the clock.
type Settings struct {
	XMin, XMax    int
	YMin, YMax    int
	InitialFood   int
	RetargetEvery int
	Seed          int64
}

func DefaultSettings() Settings {
	return Settings{
		XMin:          0,
		XMax:          BoardColCount,
		YMin:          0,
		YMax:          BoardRowCount,
		InitialFood:   InitialFoodCount,
		RetargetEvery: RetargetEveryTicks,
	}
}

func (s Settings) Validate() error {
	if s.XMin >= s.XMax || s.YMin >= s.YMax {
		return fmt.Errorf("%w: x [%d,%d) y [%d,%d)", ErrInvalidBounds, s.XMin, s.XMax, s.YMin, s.YMax)
	}
	if s.InitialFood < 0 {
		return fmt.Errorf("initial food must not be negative, got %d", s.InitialFood)
	}
	if s.RetargetEvery < 0 {
		return fmt.Errorf("retarget period must not be negative, got %d", s.RetargetEvery)
	}

	// the starting snake is vertical and needs two rows
	area := (s.XMax - s.XMin) * (s.YMax - s.YMin)
	if s.YMax-s.YMin < 2 || area < 2+s.InitialFood {
		return fmt.Errorf("%w: %d cells for a snake and %d food", ErrBoardTooSmall, area, s.InitialFood)
	}
	return nil
}
