package ledger_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/internal/memrepo"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/money"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newService(t *testing.T) (*ledgersvc.Service, *memrepo.Store) {
	t.Helper()
	store := memrepo.New()
	return ledgersvc.New(store, slog.Default()), store
}

func seedCard(t *testing.T, store *memrepo.Store) *domain.Card {
	t.Helper()
	card, err := domain.NewCard("Studio", "BCA", domain.CardDebit, "1234")
	require.NoError(t, err)
	cards, err := store.Cards()
	require.NoError(t, err)
	require.NoError(t, cards.Create(context.Background(), card))
	return card
}

func seedProject(t *testing.T, store *memrepo.Store, totalCost money.Amount) *domain.Project {
	t.Helper()
	client, err := domain.NewClient("Client", "c@example.com", "0812")
	require.NoError(t, err)
	clients, err := store.Clients()
	require.NoError(t, err)
	require.NoError(t, clients.Create(context.Background(), client))

	p, err := domain.NewProject("Wedding", client.ID, "Wedding", client.Since, totalCost)
	require.NoError(t, err)
	projects, err := store.Projects()
	require.NoError(t, err)
	require.NoError(t, projects.Create(context.Background(), p))
	return p
}

func TestRecordTransaction_Valid(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	tx, err := svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "walk-in shoot",
		Amount:      250000,
		Type:        domain.TypeIncome,
		Category:    "session",
	})
	require.NoError(t, err)

	got, err := svc.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, money.Amount(250000), got.Amount)
}

func TestRecordTransaction_RejectsInvalid(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "bad",
		Amount:      -100,
		Type:        domain.TypeIncome,
	})
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)

	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs, "rejected transaction must not reach the log")
}

func TestProjectFinancials_ThroughService(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()
	p := seedProject(t, store, 12000000)

	_, err := svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "deposit",
		Amount:      6000000,
		Type:        domain.TypeIncome,
		Category:    "deposit",
		ProjectID:   &p.ID,
	})
	require.NoError(t, err)

	fin, err := svc.ProjectFinancials(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(6000000), fin.AmountPaid)
	assert.Equal(t, domain.PaymentDepositPaid, fin.Status)
}

func TestCardBalance_Overdraft(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()
	card := seedCard(t, store)

	_, err := svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "lens purchase",
		Amount:      500000,
		Type:        domain.TypeExpense,
		Category:    "gear",
		CardID:      &card.ID,
	})
	require.NoError(t, err)

	balance, err := svc.CardBalance(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(-500000), balance)
}

func TestCardBalance_UnknownCard(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	_, err := svc.CardBalance(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshot_AndAudit(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()
	card := seedCard(t, store)
	p := seedProject(t, store, 1000000)

	_, err := svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "full payment",
		Amount:      1000000,
		Type:        domain.TypeIncome,
		Category:    "payment",
		ProjectID:   &p.ID,
		CardID:      &card.ID,
	})
	require.NoError(t, err)

	in, snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaidInFull, snap.Projects[p.ID].Status)
	assert.Equal(t, money.Amount(1000000), snap.Cards[card.ID])
	require.Len(t, in.Projects, 1)
	assert.Equal(t, domain.PaymentPaidInFull, in.Projects[0].PaymentStatus)

	disc, err := svc.Audit(ctx)
	require.NoError(t, err)
	assert.Empty(t, disc)
}

func TestWarmUp_RebuildsTally(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	ctx := context.Background()
	card, err := domain.NewCard("Studio", "BCA", domain.CardDebit, "1234")
	require.NoError(t, err)
	cards, err := store.Cards()
	require.NoError(t, err)
	require.NoError(t, cards.Create(ctx, card))

	// Log written by a previous process: the new service starts cold.
	tx, err := domain.NewTransaction().
		WithDescription("prior income").
		WithAmount(300000).
		WithType(domain.TypeIncome).
		WithCard(card.ID).
		Build()
	require.NoError(t, err)
	txRepo, err := store.Transactions()
	require.NoError(t, err)
	require.NoError(t, txRepo.Create(ctx, tx))

	svc := ledgersvc.New(store, slog.Default())

	// Before warm-up the tally is empty and the audit reports drift.
	disc, err := svc.Audit(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, disc)

	require.NoError(t, svc.WarmUp(ctx))
	disc, err = svc.Audit(ctx)
	require.NoError(t, err)
	assert.Empty(t, disc)
}

func TestRewardLedger_ThroughService(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()

	m, err := domain.NewTeamMember("Freelancer", "Editor", 500000)
	require.NoError(t, err)
	members, err := store.TeamMembers()
	require.NoError(t, err)
	require.NoError(t, members.Create(ctx, m))

	_, err = svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  "project bonus",
		Amount:       200000,
		Type:         domain.TypeIncome,
		Category:     domain.CategoryRewardGrant,
		TeamMemberID: &m.ID,
	})
	require.NoError(t, err)
	_, err = svc.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  "cash out",
		Amount:       150000,
		Type:         domain.TypeExpense,
		Category:     domain.CategoryRewardWithdrawal,
		TeamMemberID: &m.ID,
	})
	require.NoError(t, err)

	entries, balance, err := svc.RewardLedger(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(50000), balance)
	assert.Len(t, entries, 2)
}
