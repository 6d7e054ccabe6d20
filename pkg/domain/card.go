package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// ErrMissingCardHolder is returned when a card has no holder name.
var ErrMissingCardHolder = errors.New("card holder name is required")

// CardType describes the kind of money-holding account a card represents.
type CardType string

// Card types.
const (
	CardDebit  CardType = "Debit"
	CardCredit CardType = "Credit"
	CardCash   CardType = "Cash"
)

// Card is a named money-holding account. Balance is derived: the signed sum
// of every transaction referencing the card. Overdraft is representable, the
// balance is never clamped.
type Card struct {
	ID         uuid.UUID
	HolderName string
	Bank       string
	Type       CardType
	LastDigits string

	// Derived.
	Balance money.Amount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCard creates a card account.
func NewCard(holderName, bank string, cardType CardType, lastDigits string) (*Card, error) {
	if holderName == "" {
		return nil, ErrMissingCardHolder
	}
	now := time.Now()
	return &Card{
		ID:         uuid.New(),
		HolderName: holderName,
		Bank:       bank,
		Type:       cardType,
		LastDigits: lastDigits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
