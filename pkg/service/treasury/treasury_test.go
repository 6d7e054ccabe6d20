package treasury_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/lumenworks/studiobooks/internal/memrepo"
	"github.com/lumenworks/studiobooks/pkg/domain"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	treasurysvc "github.com/lumenworks/studiobooks/pkg/service/treasury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestCards_DerivedBalance(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := treasurysvc.New(store, slog.Default())
	ledger := ledgersvc.New(store, slog.Default())
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, "Studio", "BCA", domain.CardDebit, "1234")
	require.NoError(t, err)

	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "deposit", Amount: 1000000, Type: domain.TypeIncome, CardID: &card.ID,
	})
	require.NoError(t, err)
	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "gear rental", Amount: 1500000, Type: domain.TypeExpense, CardID: &card.ID,
	})
	require.NoError(t, err)

	got, err := svc.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.EqualValues(t, -500000, got.Balance)
}

func TestPockets_RewardPoolTracksMembers(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := treasurysvc.New(store, slog.Default())
	ledger := ledgersvc.New(store, slog.Default())
	ctx := context.Background()

	pool, err := svc.CreatePocket(ctx, "Reward pool", "", domain.PocketRewardPool)
	require.NoError(t, err)

	m, err := domain.NewTeamMember("Editor", "Editor", 0)
	require.NoError(t, err)
	members, err := store.TeamMembers()
	require.NoError(t, err)
	require.NoError(t, members.Create(ctx, m))

	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  "reward",
		Amount:       200000,
		Type:         domain.TypeIncome,
		Category:     domain.CategoryRewardGrant,
		TeamMemberID: &m.ID,
	})
	require.NoError(t, err)

	got, err := svc.GetPocket(ctx, pool.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 200000, got.Amount)
}

func TestPockets_DepositAndWithdrawal(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := treasurysvc.New(store, slog.Default())
	ledger := ledgersvc.New(store, slog.Default())
	ctx := context.Background()

	saving, err := svc.CreatePocket(ctx, "New lens", "", domain.PocketSaving)
	require.NoError(t, err)

	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "set aside", Amount: 750000, Type: domain.TypeExpense,
		PocketID: &saving.ID, PocketFlow: domain.FlowDeposit,
	})
	require.NoError(t, err)
	_, err = ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description: "pull back", Amount: 250000, Type: domain.TypeIncome,
		PocketID: &saving.ID, PocketFlow: domain.FlowWithdrawal,
	})
	require.NoError(t, err)

	got, err := svc.GetPocket(ctx, saving.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 500000, got.Amount)
}
