// Package domain holds DTOs and ports for the chart service
package domain

import (
	"time"

	corechart "waxpoll/internal/core/chart"
)

// Record is the persisted consensus chart for one year.
// Albums and Stats are replaced wholesale on every recompute; Revealed and
// RevealedAt belong to the reveal state machine and survive recomputes
type Record struct {
	Year             int                     `json:"year" example:"2024"`
	ParticipantCount int                     `json:"participant_count" example:"9"`
	Albums           []corechart.RankedAlbum `json:"albums"`
	Stats            corechart.Stats         `json:"stats"`
	Revealed         bool                    `json:"revealed" example:"false"`
	RevealedAt       *time.Time              `json:"revealed_at,omitempty"`
	ComputedAt       time.Time               `json:"computed_at"`
}

// Masked returns a copy safe to show before the reveal: albums and stats are
// withheld, reveal/compute metadata stays
func (r Record) Masked() Record {
	c := r
	c.Albums = nil
	c.Stats = corechart.Stats{Year: r.Year}
	return c
}

// Status summarizes where a year sits in the reveal lifecycle
type Status struct {
	Year          int        `json:"year" example:"2024"`
	Exists        bool       `json:"exists" example:"true"`
	Revealed      bool       `json:"revealed" example:"false"`
	RevealedAt    *time.Time `json:"revealed_at,omitempty"`
	ComputedAt    *time.Time `json:"computed_at,omitempty"`
	Participants  int        `json:"participants" example:"9"`
	Confirmations int        `json:"confirmations" example:"1"`
}

// RecomputeInput asks for a year's chart to be rebuilt from source lists
type RecomputeInput struct {
	Year int `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
}
