package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingContractNumber is returned when a contract has no number.
var ErrMissingContractNumber = errors.New("contract number is required")

// Contract is the stored agreement between the studio and a client for one
// project. Rendering (PDF, print) happens elsewhere; this record holds the
// data a rendering needs.
type Contract struct {
	ID              uuid.UUID
	ContractNumber  string
	ClientID        uuid.UUID
	ProjectID       uuid.UUID
	SigningDate     time.Time
	SigningLocation string
	ClientName1     string
	ClientName2     string
	ShootingWindow  string
	Deliverables    string
	PersonnelCount  string
	DeliveryDays    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewContract creates a contract record.
func NewContract(number string, clientID, projectID uuid.UUID, signingDate time.Time, signingLocation string) (*Contract, error) {
	if number == "" {
		return nil, ErrMissingContractNumber
	}
	now := time.Now()
	return &Contract{
		ID:              uuid.New(),
		ContractNumber:  number,
		ClientID:        clientID,
		ProjectID:       projectID,
		SigningDate:     signingDate,
		SigningLocation: signingLocation,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
