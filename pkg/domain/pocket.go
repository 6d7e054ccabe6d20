package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// Pocket validation errors.
var (
	// ErrMissingPocketName is returned when a pocket has no name.
	ErrMissingPocketName = errors.New("pocket name is required")
	// ErrInvalidPocketType is returned for an unknown pocket type.
	ErrInvalidPocketType = errors.New("invalid pocket type")
)

// PocketType selects the accumulation rule for a pocket.
type PocketType string

// Pocket types. Saving, Locked and ExpenseBudget pockets accumulate from
// their own deposit/withdrawal transactions; a RewardPool pocket is a roll-up
// of every team member's reward balance and is never targeted by
// transactions directly.
const (
	PocketSaving        PocketType = "Saving"
	PocketLocked        PocketType = "Locked"
	PocketExpenseBudget PocketType = "ExpenseBudget"
	PocketRewardPool    PocketType = "RewardPool"
)

// Valid reports whether t is a known pocket type.
func (t PocketType) Valid() bool {
	switch t {
	case PocketSaving, PocketLocked, PocketExpenseBudget, PocketRewardPool:
		return true
	}
	return false
}

// FinancialPocket is a named sub-allocation of funds. Amount is derived by
// the reconciliation engine according to the pocket type.
type FinancialPocket struct {
	ID          uuid.UUID
	Name        string
	Description string
	Type        PocketType
	GoalAmount  *money.Amount
	LockEndDate *time.Time
	// SourceCardID is the card pocket deposits are drawn from, when known.
	SourceCardID *uuid.UUID

	// Derived.
	Amount money.Amount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPocket creates a pocket after validating its invariants.
func NewPocket(name, description string, pocketType PocketType) (*FinancialPocket, error) {
	if name == "" {
		return nil, ErrMissingPocketName
	}
	if !pocketType.Valid() {
		return nil, ErrInvalidPocketType
	}
	now := time.Now()
	return &FinancialPocket{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Type:        pocketType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
