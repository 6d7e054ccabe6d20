package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// Project validation errors.
var (
	// ErrNegativeTotalCost is returned when a project total cost is negative.
	ErrNegativeTotalCost = errors.New("project total cost must not be negative")
	// ErrMissingProjectName is returned when a project has no name.
	ErrMissingProjectName = errors.New("project name is required")
)

// PaymentStatus is the derived payment state of a project. It is never stored
// as authoritative data; the reconciliation engine recomputes it from the
// transaction log.
type PaymentStatus string

// Payment statuses, ordered Unpaid < DepositPaid < PaidInFull.
const (
	PaymentUnpaid      PaymentStatus = "Unpaid"
	PaymentDepositPaid PaymentStatus = "DepositPaid"
	PaymentPaidInFull  PaymentStatus = "PaidInFull"
)

// ProjectStatus is the production workflow state, distinct from payment state.
type ProjectStatus string

// Production workflow states.
const (
	ProjectPreparing ProjectStatus = "Preparing"
	ProjectShooting  ProjectStatus = "Shooting"
	ProjectEditing   ProjectStatus = "Editing"
	ProjectRevision  ProjectStatus = "Revision"
	ProjectDone      ProjectStatus = "Done"
	ProjectCancelled ProjectStatus = "Cancelled"
)

// Project is a booked engagement for a client. AmountPaid and PaymentStatus
// are derived fields, refreshed from the transaction log before every read.
type Project struct {
	ID          uuid.UUID
	Name        string
	ClientID    uuid.UUID
	ProjectType string
	Status      ProjectStatus
	Date        time.Time
	Location    string
	TotalCost   money.Amount

	// Derived.
	AmountPaid    money.Amount
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProject creates a project after validating its invariants.
func NewProject(name string, clientID uuid.UUID, projectType string, date time.Time, totalCost money.Amount) (*Project, error) {
	if name == "" {
		return nil, ErrMissingProjectName
	}
	if totalCost < 0 {
		return nil, ErrNegativeTotalCost
	}
	now := time.Now()
	return &Project{
		ID:          uuid.New(),
		Name:        name,
		ClientID:    clientID,
		ProjectType: projectType,
		Status:      ProjectPreparing,
		Date:        date,
		TotalCost:   totalCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
