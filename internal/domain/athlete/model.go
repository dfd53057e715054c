package athlete

import (
	"fmt"
	"strings"
	"time"
)

// StatusActive is the provider roster status that marks an athlete active.
const StatusActive = "Active"

// Athlete is a real-world player linked to the stats provider by APIID.
type Athlete struct {
	ID           int64
	FirstName    string
	LastName     string
	APIID        int64
	TeamID       int64
	Position     string
	Jersey       int
	Salary       float64
	IsActive     bool
	IsInjured    bool
	ImageURL     string
	AnimationURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Athlete) Validate() error {
	if a.APIID <= 0 {
		return fmt.Errorf("athlete api id is required")
	}
	if a.TeamID <= 0 {
		return fmt.Errorf("athlete team id is required")
	}
	if strings.TrimSpace(a.FirstName) == "" && strings.TrimSpace(a.LastName) == "" {
		return fmt.Errorf("athlete name is required")
	}

	return nil
}

func (a Athlete) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
