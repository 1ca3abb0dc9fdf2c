// Package domain holds DTOs and ports for the contributor roster
package domain

import "time"

// Contributor is one user opted in to a year's aggregation
type Contributor struct {
	Year    int       `json:"year" example:"2024"`
	UserID  string    `json:"user_id"`
	AddedBy string    `json:"added_by"`
	AddedAt time.Time `json:"added_at"`
}

// EligibleUser is a user with an applicable list for the year, annotated
// for admin roster selection
type EligibleUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name" example:"wax_hoarder"`
	ListID      string `json:"list_id"`
	AlbumCount  int    `json:"album_count" example:"40"`
	Contributor bool   `json:"contributor" example:"true"`
}

// AddInput opts a single user in for a year
type AddInput struct {
	Year    int    `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
	UserID  string `json:"user_id" validate:"required,uuid4"`
	ActorID string `json:"actor_id" validate:"required,uuid4"`
}

// RemoveInput opts a single user out for a year
type RemoveInput struct {
	Year   int    `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
	UserID string `json:"user_id" validate:"required,uuid4"`
}

// SetInput replaces the full contributor set for a year
type SetInput struct {
	Year    int      `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
	UserIDs []string `json:"user_ids" validate:"dive,uuid4"`
	ActorID string   `json:"actor_id" validate:"required,uuid4"`
}

// SeenInput addresses one user's reveal-view marker for a year
type SeenInput struct {
	Year   int    `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
	UserID string `json:"user_id" validate:"required,uuid4"`
}

// SeenStatus reports whether a user has been shown a year's reveal
type SeenStatus struct {
	Year   int    `json:"year" example:"2024"`
	UserID string `json:"user_id"`
	Seen   bool   `json:"seen" example:"false"`
}
