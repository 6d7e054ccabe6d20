package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// Team validation errors.
var (
	// ErrMissingTeamMemberName is returned when a team member has no name.
	ErrMissingTeamMemberName = errors.New("team member name is required")
	// ErrNegativeFee is returned when an assignment fee is negative.
	ErrNegativeFee = errors.New("fee must not be negative")
)

// TeamMember is a freelancer working studio projects. RewardBalance is
// derived from the reward ledger; it is zero for a member with no entries.
type TeamMember struct {
	ID             uuid.UUID
	Name           string
	Role           string
	Email          string
	Phone          string
	StandardFee    money.Amount
	BankAccount    string
	PortalAccessID uuid.UUID

	// Derived.
	RewardBalance money.Amount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTeamMember creates a freelancer record with a fresh portal access id.
func NewTeamMember(name, role string, standardFee money.Amount) (*TeamMember, error) {
	if name == "" {
		return nil, ErrMissingTeamMemberName
	}
	if standardFee < 0 {
		return nil, ErrNegativeFee
	}
	now := time.Now()
	return &TeamMember{
		ID:             uuid.New(),
		Name:           name,
		Role:           role,
		StandardFee:    standardFee,
		PortalAccessID: uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// RewardLedgerEntry is a derived view row: one signed grant or withdrawal
// backing a team member's reward balance. Entries are constructed by the
// reconciliation engine from reward-tagged transactions, never stored.
type RewardLedgerEntry struct {
	TransactionID uuid.UUID
	TeamMemberID  uuid.UUID
	Date          time.Time
	Description   string
	// Amount is signed: grants positive, withdrawals negative.
	Amount money.Amount
}

// TeamPaymentStatus is the derived payment state of one freelancer's fee on
// one project.
type TeamPaymentStatus string

// Team payment states. Paid is terminal: the transaction log is append-only,
// so there is no path back to Unpaid.
const (
	TeamPaymentUnpaid TeamPaymentStatus = "Unpaid"
	TeamPaymentPaid   TeamPaymentStatus = "Paid"
)

// TeamProjectPayment records one freelancer's fee on one project. Status is
// derived: Paid iff a freelancer-salary expense matching both references
// exists in the transaction log.
type TeamProjectPayment struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	TeamMemberID uuid.UUID
	Fee          money.Amount

	// Derived.
	Status TeamPaymentStatus

	CreatedAt time.Time
}

// NewTeamProjectPayment assigns a freelancer to a project for a fee.
func NewTeamProjectPayment(projectID, teamMemberID uuid.UUID, fee money.Amount) (*TeamProjectPayment, error) {
	if fee < 0 {
		return nil, ErrNegativeFee
	}
	return &TeamProjectPayment{
		ID:           uuid.New(),
		ProjectID:    projectID,
		TeamMemberID: teamMemberID,
		Fee:          fee,
		Status:       TeamPaymentUnpaid,
		CreatedAt:    time.Now(),
	}, nil
}
