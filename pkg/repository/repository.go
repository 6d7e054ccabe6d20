// Package repository defines the data-access contracts the services depend
// on. Implementations live in infra; tests use the in-memory version under
// internal/memrepo. The reconciliation engine itself never touches a
// repository: services load a consistent snapshot and hand it plain slices.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
)

// TransactionRepository stores the append-only transaction log. There is no
// update or delete: a recorded transaction is an immutable fact.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// List returns the full log in insertion order. The engine's sums are
	// order-independent; the reward ledger relies on stable input order for
	// equal dates.
	List(ctx context.Context) ([]*domain.Transaction, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Transaction, error)
}

// ClientRepository stores clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByPortalAccessID(ctx context.Context, accessID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, update dto.ClientUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectRepository stores projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, update dto.ProjectUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CardRepository stores card accounts.
type CardRepository interface {
	Create(ctx context.Context, c *domain.Card) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	List(ctx context.Context) ([]*domain.Card, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PocketRepository stores financial pockets.
type PocketRepository interface {
	Create(ctx context.Context, p *domain.FinancialPocket) error
	Get(ctx context.Context, id uuid.UUID) (*domain.FinancialPocket, error)
	List(ctx context.Context) ([]*domain.FinancialPocket, error)
	Update(ctx context.Context, id uuid.UUID, update dto.PocketUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamMemberRepository stores freelancer records.
type TeamMemberRepository interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	Get(ctx context.Context, id uuid.UUID) (*domain.TeamMember, error)
	GetByPortalAccessID(ctx context.Context, accessID uuid.UUID) (*domain.TeamMember, error)
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, update dto.TeamMemberUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamPaymentRepository stores freelancer-fee assignments. Status is derived,
// so there is no status writer here.
type TeamPaymentRepository interface {
	Create(ctx context.Context, p *domain.TeamProjectPayment) error
	Get(ctx context.Context, id uuid.UUID) (*domain.TeamProjectPayment, error)
	List(ctx context.Context) ([]*domain.TeamProjectPayment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TeamProjectPayment, error)
	ListByTeamMember(ctx context.Context, teamMemberID uuid.UUID) ([]*domain.TeamProjectPayment, error)
}

// ContractRepository stores contracts.
type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context) ([]*domain.Contract, error)
	Update(ctx context.Context, id uuid.UUID, update dto.ContractUpdate) error
	// CountByYear supports sequential contract numbering.
	CountByYear(ctx context.Context, year int) (int64, error)
}

// UserRepository stores back-office users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
