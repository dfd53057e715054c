package team

import (
	"fmt"
	"time"
)

// Team is a real league club as published by the stats provider.
type Team struct {
	ID             int64
	Location       string
	Name           string
	APIID          int64
	Key            string
	PrimaryColor   string
	SecondaryColor string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Team) Validate() error {
	if t.APIID <= 0 {
		return fmt.Errorf("team api id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

func (t Team) DisplayName() string {
	if t.Location == "" {
		return t.Name
	}
	return t.Location + " " + t.Name
}
