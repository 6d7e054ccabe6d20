package ledger_test

import (
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func day(n int) time.Time {
	return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func income(t *testing.T, amount money.Amount, opts ...func(*domain.TransactionBuilder)) *domain.Transaction {
	t.Helper()
	b := domain.NewTransaction().
		WithDescription("income").
		WithAmount(amount).
		WithType(domain.TypeIncome)
	for _, opt := range opts {
		opt(b)
	}
	tx, err := b.Build()
	require.NoError(t, err)
	return tx
}

func expense(t *testing.T, amount money.Amount, opts ...func(*domain.TransactionBuilder)) *domain.Transaction {
	t.Helper()
	b := domain.NewTransaction().
		WithDescription("expense").
		WithAmount(amount).
		WithType(domain.TypeExpense)
	for _, opt := range opts {
		opt(b)
	}
	tx, err := b.Build()
	require.NoError(t, err)
	return tx
}

func forProject(id uuid.UUID) func(*domain.TransactionBuilder) {
	return func(b *domain.TransactionBuilder) { b.WithProject(id) }
}

func forCard(id uuid.UUID) func(*domain.TransactionBuilder) {
	return func(b *domain.TransactionBuilder) { b.WithCard(id) }
}

func onDate(d time.Time) func(*domain.TransactionBuilder) {
	return func(b *domain.TransactionBuilder) { b.WithDate(d) }
}

func newProject(t *testing.T, totalCost money.Amount) *domain.Project {
	t.Helper()
	p, err := domain.NewProject("Wedding of A & B", uuid.New(), "Wedding", day(30), totalCost)
	require.NoError(t, err)
	return p
}

func TestComputeProjectFinancials_DepositThenFullPayment(t *testing.T) {
	t.Parallel()
	p := newProject(t, 12000000)

	txs := []*domain.Transaction{
		income(t, 6000000, forProject(p.ID), onDate(day(1))),
	}
	fin := ledger.ComputeProjectFinancials(txs, p)
	assert.Equal(t, money.Amount(6000000), fin.AmountPaid)
	assert.Equal(t, domain.PaymentDepositPaid, fin.Status)

	txs = append(txs, income(t, 6000000, forProject(p.ID), onDate(day(30))))
	fin = ledger.ComputeProjectFinancials(txs, p)
	assert.Equal(t, money.Amount(12000000), fin.AmountPaid)
	assert.Equal(t, domain.PaymentPaidInFull, fin.Status)
}

func TestComputeProjectFinancials_ZeroState(t *testing.T) {
	t.Parallel()
	p := newProject(t, 5000000)
	fin := ledger.ComputeProjectFinancials(nil, p)
	assert.Zero(t, fin.AmountPaid)
	assert.Equal(t, domain.PaymentUnpaid, fin.Status)
}

func TestComputeProjectFinancials_ZeroCostProjectIsPaidInFull(t *testing.T) {
	t.Parallel()
	p := newProject(t, 0)
	fin := ledger.ComputeProjectFinancials(nil, p)
	assert.Zero(t, fin.AmountPaid)
	assert.Equal(t, domain.PaymentPaidInFull, fin.Status)
}

func TestComputeProjectFinancials_IgnoresExpensesAndOtherProjects(t *testing.T) {
	t.Parallel()
	p := newProject(t, 10000000)
	other := uuid.New()
	txs := []*domain.Transaction{
		income(t, 1000000, forProject(p.ID)),
		income(t, 9999999, forProject(other)),
		expense(t, 500000, forProject(p.ID)),
		income(t, 2000000),
	}
	fin := ledger.ComputeProjectFinancials(txs, p)
	assert.Equal(t, money.Amount(1000000), fin.AmountPaid)
	assert.Equal(t, domain.PaymentDepositPaid, fin.Status)
}

func TestStatusMonotonicity(t *testing.T) {
	t.Parallel()
	p := newProject(t, 10000000)

	rank := map[domain.PaymentStatus]int{
		domain.PaymentUnpaid:      0,
		domain.PaymentDepositPaid: 1,
		domain.PaymentPaidInFull:  2,
	}

	var txs []*domain.Transaction
	prev := rank[ledger.ComputeProjectFinancials(txs, p).Status]
	for i := 0; i < 15; i++ {
		txs = append(txs, income(t, 1000000, forProject(p.ID)))
		cur := rank[ledger.ComputeProjectFinancials(txs, p).Status]
		assert.GreaterOrEqual(t, cur, prev, "status moved backward after payment %d", i+1)
		prev = cur
	}
	assert.Equal(t, rank[domain.PaymentPaidInFull], prev)
}

func TestCommutativity(t *testing.T) {
	t.Parallel()
	p := newProject(t, 20000000)
	cardID := uuid.New()

	var txs []*domain.Transaction
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		amount := money.Amount(rng.Intn(1000000) + 1)
		if rng.Intn(2) == 0 {
			txs = append(txs, income(t, amount, forProject(p.ID), forCard(cardID)))
		} else {
			txs = append(txs, expense(t, amount, forCard(cardID)))
		}
	}

	wantFin := ledger.ComputeProjectFinancials(txs, p)
	wantBal := ledger.ComputeCardBalance(txs, cardID)

	for i := 0; i < 10; i++ {
		shuffled := make([]*domain.Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, wantFin, ledger.ComputeProjectFinancials(shuffled, p))
		assert.Equal(t, wantBal, ledger.ComputeCardBalance(shuffled, cardID))
	}
}

func TestComputeCardBalance_Overdraft(t *testing.T) {
	t.Parallel()
	cardID := uuid.New()
	txs := []*domain.Transaction{
		expense(t, 500000, forCard(cardID)),
	}
	assert.Equal(t, money.Amount(-500000), ledger.ComputeCardBalance(txs, cardID))
}

func TestComputeCardBalance_ZeroState(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ledger.ComputeCardBalance(nil, uuid.New()))
}

func TestComputePocketBalance_DepositAndWithdrawal(t *testing.T) {
	t.Parallel()
	pocket, err := domain.NewPocket("Gear fund", "", domain.PocketSaving)
	require.NoError(t, err)

	deposit, err := domain.NewTransaction().
		WithDescription("transfer into gear fund").
		WithAmount(750000).
		WithType(domain.TypeExpense). // expense from the card's perspective
		WithPocket(pocket.ID, domain.FlowDeposit).
		Build()
	require.NoError(t, err)
	spend, err := domain.NewTransaction().
		WithDescription("lens rental").
		WithAmount(250000).
		WithType(domain.TypeExpense).
		WithPocket(pocket.ID, domain.FlowWithdrawal).
		Build()
	require.NoError(t, err)

	txs := []*domain.Transaction{deposit, spend}
	assert.Equal(t, money.Amount(500000), ledger.ComputePocketBalance(txs, pocket, nil))
}

func TestComputePocketBalance_ZeroState(t *testing.T) {
	t.Parallel()
	pocket, err := domain.NewPocket("Untouched", "", domain.PocketLocked)
	require.NoError(t, err)
	assert.Zero(t, ledger.ComputePocketBalance(nil, pocket, nil))
}

func rewardTx(t *testing.T, category string, amount money.Amount, memberID uuid.UUID, d time.Time) *domain.Transaction {
	t.Helper()
	typ := domain.TypeIncome
	if category == domain.CategoryRewardWithdrawal {
		typ = domain.TypeExpense
	}
	tx, err := domain.NewTransaction().
		WithDescription(category).
		WithAmount(amount).
		WithType(typ).
		WithCategory(category).
		WithTeamMember(memberID).
		WithDate(d).
		Build()
	require.NoError(t, err)
	return tx
}

func TestRewardGrantAndWithdrawal(t *testing.T) {
	t.Parallel()
	memberID := uuid.New()
	txs := []*domain.Transaction{
		rewardTx(t, domain.CategoryRewardGrant, 200000, memberID, day(1)),
		rewardTx(t, domain.CategoryRewardWithdrawal, 150000, memberID, day(10)),
	}

	entries := ledger.ComputeRewardLedger(txs)
	require.Len(t, entries, 2)
	// Date descending: the withdrawal comes first, the earlier grant after it.
	assert.Equal(t, money.Amount(-150000), entries[0].Amount)
	assert.Equal(t, money.Amount(200000), entries[1].Amount)

	assert.Equal(t, money.Amount(50000), ledger.ComputeTeamMemberRewardBalance(entries, memberID))
}

func TestComputeRewardLedger_StableTieOrder(t *testing.T) {
	t.Parallel()
	memberID := uuid.New()
	first := rewardTx(t, domain.CategoryRewardGrant, 100, memberID, day(5))
	second := rewardTx(t, domain.CategoryRewardGrant, 200, memberID, day(5))

	entries := ledger.ComputeRewardLedger([]*domain.Transaction{first, second})
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].TransactionID)
	assert.Equal(t, second.ID, entries[1].TransactionID)
}

func TestComputeTeamMemberRewardBalance_ZeroState(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ledger.ComputeTeamMemberRewardBalance(nil, uuid.New()))
}

func TestRewardPoolConsistency(t *testing.T) {
	t.Parallel()
	pool, err := domain.NewPocket("Reward pool", "", domain.PocketRewardPool)
	require.NoError(t, err)

	var members []*domain.TeamMember
	var txs []*domain.Transaction
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		m, err := domain.NewTeamMember("Freelancer", "Photographer", 500000)
		require.NoError(t, err)
		members = append(members, m)
		for j := 0; j < rng.Intn(4); j++ {
			txs = append(txs, rewardTx(t, domain.CategoryRewardGrant, money.Amount(rng.Intn(100000)+1), m.ID, day(j+1)))
		}
		if rng.Intn(2) == 0 {
			txs = append(txs, rewardTx(t, domain.CategoryRewardWithdrawal, 1, m.ID, day(20)))
		}
	}

	entries := ledger.ComputeRewardLedger(txs)
	var want money.Amount
	for _, m := range members {
		want += ledger.ComputeTeamMemberRewardBalance(entries, m.ID)
	}
	assert.Equal(t, want, ledger.ComputePocketBalance(txs, pool, members))
}

func TestSalaryPaymentFlipsStatus(t *testing.T) {
	t.Parallel()
	payment, err := domain.NewTeamProjectPayment(uuid.New(), uuid.New(), 1500000)
	require.NoError(t, err)

	var txs []*domain.Transaction
	assert.Equal(t, domain.TeamPaymentUnpaid, ledger.ComputeTeamProjectPaymentStatus(txs, payment))

	// An unrelated transaction does not flip the status.
	txs = append(txs, expense(t, 100000, forCard(uuid.New())))
	assert.Equal(t, domain.TeamPaymentUnpaid, ledger.ComputeTeamProjectPaymentStatus(txs, payment))

	// A salary for a different pair does not flip it either.
	other, err := domain.NewTransaction().
		WithDescription("salary, other project").
		WithAmount(1500000).
		WithType(domain.TypeExpense).
		WithCategory(domain.CategoryFreelancerSalary).
		WithProject(uuid.New()).
		WithTeamMember(payment.TeamMemberID).
		Build()
	require.NoError(t, err)
	txs = append(txs, other)
	assert.Equal(t, domain.TeamPaymentUnpaid, ledger.ComputeTeamProjectPaymentStatus(txs, payment))

	salary, err := domain.NewTransaction().
		WithDescription("salary").
		WithAmount(1000000). // amount need not match the recorded fee
		WithType(domain.TypeExpense).
		WithCategory(domain.CategoryFreelancerSalary).
		WithProject(payment.ProjectID).
		WithTeamMember(payment.TeamMemberID).
		Build()
	require.NoError(t, err)
	txs = append(txs, salary)
	assert.Equal(t, domain.TeamPaymentPaid, ledger.ComputeTeamProjectPaymentStatus(txs, payment))
}
