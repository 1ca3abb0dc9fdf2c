// Package domain holds DTOs and ports for the reveal state machine
package domain

import "time"

// Quorum is the number of distinct approver confirmations that flips a
// year's chart to revealed. Fixed by product decision, not configuration
const Quorum = 2

// ConfirmInput records one approver's confirmation for a year
type ConfirmInput struct {
	Year       int    `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
	ApproverID string `json:"approver_id" validate:"required,uuid4" example:"6f1e9d0a-0b0e-4f7d-9c2a-3f4b5c6d7e8f"`
}

// RevokeInput withdraws one approver's confirmation before the reveal
type RevokeInput struct {
	Year       int    `json:"year" validate:"required,min=1990,max=2100" example:"2024"`
	ApproverID string `json:"approver_id" validate:"required,uuid4" example:"6f1e9d0a-0b0e-4f7d-9c2a-3f4b5c6d7e8f"`
}

// Result reports the outcome of a confirm or revoke.
// AlreadyRevealed marks the no-op path: the chart was revealed before this
// call, confirmations are historical, and nothing was modified
type Result struct {
	Year            int        `json:"year" example:"2024"`
	Confirmations   int        `json:"confirmations" example:"1"`
	Revealed        bool       `json:"revealed" example:"false"`
	RevealedAt      *time.Time `json:"revealed_at,omitempty"`
	AlreadyRevealed bool       `json:"already_revealed" example:"false"`
}

// Confirmation is one stored approver confirmation
type Confirmation struct {
	ApproverID  string    `json:"approver_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
