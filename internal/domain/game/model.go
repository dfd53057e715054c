package game

import (
	"fmt"
	"strings"
	"time"
)

// Game is a fantasy contest with a fixed scoring window.
type Game struct {
	ID              int64
	Name            string
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Prize           float64
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Normalize derives EndAt from StartAt and DurationMinutes. Any caller
// supplied EndAt is discarded.
func (g Game) Normalize() Game {
	g.Name = strings.TrimSpace(g.Name)
	g.EndAt = g.StartAt.Add(time.Duration(g.DurationMinutes) * time.Minute)
	return g
}

func (g Game) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("game name is required")
	}
	if g.StartAt.IsZero() {
		return fmt.Errorf("game start is required")
	}
	if g.DurationMinutes <= 0 {
		return fmt.Errorf("game duration must be greater than zero")
	}
	if g.Prize < 0 {
		return fmt.Errorf("game prize must not be negative")
	}
	if !g.EndAt.Equal(g.StartAt.Add(time.Duration(g.DurationMinutes) * time.Minute)) {
		return fmt.Errorf("game end must equal start plus duration")
	}

	return nil
}

// ActiveDuring reports whether the game window overlaps [from, to).
func (g Game) ActiveDuring(from, to time.Time) bool {
	return g.StartAt.Before(to) && !g.EndAt.Before(from)
}
