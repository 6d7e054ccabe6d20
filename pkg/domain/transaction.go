package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// Transaction validation errors. All of them surface at construction time;
// once a Transaction exists it is a well-formed, immutable fact.
var (
	// ErrAmountNotPositive is returned when a transaction amount is zero or negative.
	ErrAmountNotPositive = errors.New("transaction amount must be positive")
	// ErrInvalidTransactionType is returned for a type outside {Income, Expense}.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	// ErrInvalidPocketFlow is returned for an unknown pocket flow direction.
	ErrInvalidPocketFlow = errors.New("invalid pocket flow direction")
	// ErrPocketFlowWithoutPocket is returned when a flow direction is set but
	// the transaction references no pocket.
	ErrPocketFlowWithoutPocket = errors.New("pocket flow direction requires a pocket reference")
	// ErrPocketWithoutFlow is returned when a pocket reference carries no flow
	// direction; pocket movements are never inferred from descriptions.
	ErrPocketWithoutFlow = errors.New("pocket reference requires an explicit flow direction")
	// ErrRewardRequiresTeamMember is returned when a reward grant/withdrawal
	// carries no team member reference.
	ErrRewardRequiresTeamMember = errors.New("reward transaction requires a team member reference")
	// ErrSalaryRequiresReferences is returned when a freelancer salary expense
	// is missing its project or team member reference.
	ErrSalaryRequiresReferences = errors.New("freelancer salary requires project and team member references")
	// ErrMissingDescription is returned when a transaction has no description.
	ErrMissingDescription = errors.New("transaction description is required")
)

// TransactionType is the direction of a transaction relative to the business.
type TransactionType string

// Transaction types.
const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// PocketFlow states explicitly whether a transaction moves money into or out
// of the referenced pocket. It is set at creation time and never derived from
// display text.
type PocketFlow string

// Pocket flow directions.
const (
	FlowNone       PocketFlow = ""
	FlowDeposit    PocketFlow = "Deposit"
	FlowWithdrawal PocketFlow = "Withdrawal"
)

// Valid reports whether f is a known flow direction.
func (f PocketFlow) Valid() bool {
	return f == FlowNone || f == FlowDeposit || f == FlowWithdrawal
}

// Categories with ledger-level meaning. Any other category is a free-text tag
// the engine ignores.
const (
	CategoryRewardGrant      = "reward grant"
	CategoryRewardWithdrawal = "reward withdrawal"
	CategoryFreelancerSalary = "freelancer salary"
)

// Transaction is an immutable, append-only financial fact. Optional
// references tie it to a project, card, pocket or team member; the engine
// only ever compares these ids for equality.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      money.Amount
	Type        TransactionType
	Category    string
	PocketFlow  PocketFlow

	ProjectID    *uuid.UUID
	CardID       *uuid.UUID
	PocketID     *uuid.UUID
	TeamMemberID *uuid.UUID

	CreatedAt time.Time
}

// TransactionBuilder constructs validated Transaction values. Build is the
// only way to obtain a Transaction outside repository hydration, so every
// invariant the ledger relies on is enforced here, never inside the compute
// functions.
type TransactionBuilder struct {
	tx Transaction
}

// NewTransaction starts a builder with a fresh id and the current time as
// both date and creation timestamp.
func NewTransaction() *TransactionBuilder {
	now := time.Now()
	return &TransactionBuilder{tx: Transaction{
		ID:        uuid.New(),
		Date:      now,
		CreatedAt: now,
	}}
}

// WithID overrides the generated id. Intended for hydration and tests.
func (b *TransactionBuilder) WithID(id uuid.UUID) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// WithDate sets the business date of the transaction.
func (b *TransactionBuilder) WithDate(d time.Time) *TransactionBuilder {
	b.tx.Date = d
	return b
}

// WithDescription sets the human-readable description.
func (b *TransactionBuilder) WithDescription(s string) *TransactionBuilder {
	b.tx.Description = s
	return b
}

// WithAmount sets the amount in the smallest currency unit.
func (b *TransactionBuilder) WithAmount(a money.Amount) *TransactionBuilder {
	b.tx.Amount = a
	return b
}

// WithType sets the transaction direction.
func (b *TransactionBuilder) WithType(t TransactionType) *TransactionBuilder {
	b.tx.Type = t
	return b
}

// WithCategory sets the free-text category tag.
func (b *TransactionBuilder) WithCategory(c string) *TransactionBuilder {
	b.tx.Category = c
	return b
}

// WithProject ties the transaction to a project.
func (b *TransactionBuilder) WithProject(id uuid.UUID) *TransactionBuilder {
	b.tx.ProjectID = &id
	return b
}

// WithCard ties the transaction to a card.
func (b *TransactionBuilder) WithCard(id uuid.UUID) *TransactionBuilder {
	b.tx.CardID = &id
	return b
}

// WithPocket ties the transaction to a pocket with an explicit flow direction.
func (b *TransactionBuilder) WithPocket(id uuid.UUID, flow PocketFlow) *TransactionBuilder {
	b.tx.PocketID = &id
	b.tx.PocketFlow = flow
	return b
}

// WithTeamMember ties the transaction to a team member.
func (b *TransactionBuilder) WithTeamMember(id uuid.UUID) *TransactionBuilder {
	b.tx.TeamMemberID = &id
	return b
}

// Build validates every invariant and returns the finished Transaction.
func (b *TransactionBuilder) Build() (*Transaction, error) {
	tx := b.tx
	if tx.Amount <= 0 {
		return nil, ErrAmountNotPositive
	}
	if !tx.Type.Valid() {
		return nil, ErrInvalidTransactionType
	}
	if tx.Description == "" {
		return nil, ErrMissingDescription
	}
	if !tx.PocketFlow.Valid() {
		return nil, ErrInvalidPocketFlow
	}
	if tx.PocketFlow != FlowNone && tx.PocketID == nil {
		return nil, ErrPocketFlowWithoutPocket
	}
	if tx.PocketID != nil && tx.PocketFlow == FlowNone {
		return nil, ErrPocketWithoutFlow
	}
	switch tx.Category {
	case CategoryRewardGrant, CategoryRewardWithdrawal:
		if tx.TeamMemberID == nil {
			return nil, ErrRewardRequiresTeamMember
		}
	case CategoryFreelancerSalary:
		if tx.ProjectID == nil || tx.TeamMemberID == nil {
			return nil, ErrSalaryRequiresReferences
		}
	}
	return &tx, nil
}

// HydrateTransaction builds a Transaction from raw stored data, bypassing
// invariant checks. Only repositories and test fixtures should call it.
func HydrateTransaction(tx Transaction) *Transaction {
	out := tx
	return &out
}
