package score

import (
	"fmt"
	"strings"
	"time"
)

type WindowKind string

const (
	WindowSeason WindowKind = "season"
	WindowDate   WindowKind = "date"
)

const dateLayout = "2006-01-02"

// Window identifies one scoring period: a season tag or a calendar date.
type Window struct {
	Kind WindowKind
	Tag  string
}

func SeasonWindow(season string) Window {
	return Window{Kind: WindowSeason, Tag: strings.TrimSpace(season)}
}

func DateWindow(day time.Time) Window {
	return Window{Kind: WindowDate, Tag: day.Format(dateLayout)}
}

// Key is the persisted unique component, e.g. "season:2021" or "date:2021-06-01".
func (w Window) Key() string {
	return string(w.Kind) + ":" + w.Tag
}

func (w Window) Validate() error {
	switch w.Kind {
	case WindowSeason:
		if w.Tag == "" {
			return fmt.Errorf("season tag is required")
		}
	case WindowDate:
		if _, err := time.Parse(dateLayout, w.Tag); err != nil {
			return fmt.Errorf("invalid date window %q: %w", w.Tag, err)
		}
	default:
		return fmt.Errorf("unknown window kind: %s", w.Kind)
	}
	return nil
}

// ParseWindowKey is the inverse of Window.Key.
func ParseWindowKey(key string) (Window, error) {
	kind, tag, ok := strings.Cut(key, ":")
	if !ok {
		return Window{}, fmt.Errorf("invalid window key: %s", key)
	}
	w := Window{Kind: WindowKind(kind), Tag: tag}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Stats holds the per-category counters the provider reports.
type Stats struct {
	Singles      float64
	Doubles      float64
	Triples      float64
	HomeRuns     float64
	RunsBattedIn float64
	Walks        float64
	HitByPitch   float64
	StolenBases  float64
}

func (s Stats) Add(other Stats) Stats {
	return Stats{
		Singles:      s.Singles + other.Singles,
		Doubles:      s.Doubles + other.Doubles,
		Triples:      s.Triples + other.Triples,
		HomeRuns:     s.HomeRuns + other.HomeRuns,
		RunsBattedIn: s.RunsBattedIn + other.RunsBattedIn,
		Walks:        s.Walks + other.Walks,
		HitByPitch:   s.HitByPitch + other.HitByPitch,
		StolenBases:  s.StolenBases + other.StolenBases,
	}
}

// Record is the single score row of one athlete in one window.
type Record struct {
	ID           int64
	AthleteID    int64
	Window       Window
	FantasyScore float64
	Stats        Stats
	Position     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Record) Validate() error {
	if r.AthleteID <= 0 {
		return fmt.Errorf("score record athlete id is required")
	}
	return r.Window.Validate()
}
