package portal_test

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/internal/memrepo"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/repository"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	portalsvc "github.com/lumenworks/studiobooks/pkg/service/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestClientPortal(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	ledger := ledgersvc.New(store, slog.Default())
	svc := portalsvc.New(store, slog.Default())
	ctx := context.Background()

	c, err := domain.NewClient("Client", "c@example.com", "0812")
	require.NoError(t, err)
	clients, err := store.Clients()
	require.NoError(t, err)
	require.NoError(t, clients.Create(ctx, c))

	p, err := domain.NewProject("Wedding", c.ID, "Wedding", time.Now(), 12000000)
	require.NoError(t, err)
	projects, err := store.Projects()
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))

	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "deposit",
		Amount:      6000000,
		Type:        domain.TypeIncome,
		ProjectID:   &p.ID,
	})
	require.NoError(t, err)

	view, err := svc.ClientPortal(ctx, c.PortalAccessID)
	require.NoError(t, err)
	require.Len(t, view.Projects, 1)
	assert.EqualValues(t, 6000000, view.Projects[0].AmountPaid)
	assert.Equal(t, domain.PaymentDepositPaid, view.Projects[0].PaymentStatus)
}

// contractFaultStore wraps the in-memory store with a contracts repository
// whose per-project lookup fails with an infrastructure error.
type contractFaultStore struct {
	*memrepo.Store
	err error
}

func (s contractFaultStore) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(s)
}

func (s contractFaultStore) Contracts() (repository.ContractRepository, error) {
	inner, err := s.Store.Contracts()
	if err != nil {
		return nil, err
	}
	return faultyContracts{inner, s.err}, nil
}

type faultyContracts struct {
	repository.ContractRepository
	err error
}

func (f faultyContracts) GetByProject(ctx context.Context, projectID uuid.UUID) (*domain.Contract, error) {
	return nil, f.err
}

func TestClientPortal_ContractLookupFailure(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	ctx := context.Background()

	c, err := domain.NewClient("Client", "c@example.com", "0812")
	require.NoError(t, err)
	clients, err := store.Clients()
	require.NoError(t, err)
	require.NoError(t, clients.Create(ctx, c))

	p, err := domain.NewProject("Wedding", c.ID, "Wedding", time.Now(), 12000000)
	require.NoError(t, err)
	projects, err := store.Projects()
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))

	boom := errors.New("contracts unavailable")
	svc := portalsvc.New(contractFaultStore{Store: store, err: boom}, slog.Default())

	_, err = svc.ClientPortal(ctx, c.PortalAccessID)
	assert.ErrorIs(t, err, boom)
}

func TestClientPortal_UnknownAccessID(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := portalsvc.New(store, slog.Default())

	_, err := svc.ClientPortal(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFreelancerPortal(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	ledger := ledgersvc.New(store, slog.Default())
	svc := portalsvc.New(store, slog.Default())
	ctx := context.Background()

	c, err := domain.NewClient("Client", "c@example.com", "0812")
	require.NoError(t, err)
	clients, err := store.Clients()
	require.NoError(t, err)
	require.NoError(t, clients.Create(ctx, c))

	p, err := domain.NewProject("Wedding", c.ID, "Wedding", time.Now(), 12000000)
	require.NoError(t, err)
	projects, err := store.Projects()
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))

	m, err := domain.NewTeamMember("Editor", "Editor", 800000)
	require.NoError(t, err)
	members, err := store.TeamMembers()
	require.NoError(t, err)
	require.NoError(t, members.Create(ctx, m))

	tp, err := domain.NewTeamProjectPayment(p.ID, m.ID, 800000)
	require.NoError(t, err)
	payments, err := store.TeamPayments()
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, tp))

	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  "reward",
		Amount:       200000,
		Type:         domain.TypeIncome,
		Category:     domain.CategoryRewardGrant,
		TeamMemberID: &m.ID,
	})
	require.NoError(t, err)

	view, err := svc.FreelancerPortal(ctx, m.PortalAccessID)
	require.NoError(t, err)
	require.Len(t, view.Assignments, 1)
	assert.Equal(t, domain.TeamPaymentUnpaid, view.Assignments[0].Status)
	require.Len(t, view.RewardLedger, 1)
	assert.EqualValues(t, 200000, view.RewardBalance)

	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  "freelancer salary",
		Amount:       800000,
		Type:         domain.TypeExpense,
		Category:     domain.CategoryFreelancerSalary,
		ProjectID:    &p.ID,
		TeamMemberID: &m.ID,
	})
	require.NoError(t, err)

	view, err = svc.FreelancerPortal(ctx, m.PortalAccessID)
	require.NoError(t, err)
	assert.Equal(t, domain.TeamPaymentPaid, view.Assignments[0].Status)
}
