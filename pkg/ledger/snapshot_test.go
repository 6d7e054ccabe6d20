package ledger_test

import (
	"testing"

	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureInput(t *testing.T) ledger.Input {
	t.Helper()

	project := newProject(t, 12000000)
	card, err := domain.NewCard("Studio", "BCA", domain.CardDebit, "1234")
	require.NoError(t, err)
	saving, err := domain.NewPocket("Gear fund", "", domain.PocketSaving)
	require.NoError(t, err)
	pool, err := domain.NewPocket("Reward pool", "", domain.PocketRewardPool)
	require.NoError(t, err)
	member, err := domain.NewTeamMember("Freelancer", "Editor", 800000)
	require.NoError(t, err)
	payment, err := domain.NewTeamProjectPayment(project.ID, member.ID, 800000)
	require.NoError(t, err)

	deposit, err := domain.NewTransaction().
		WithDescription("move to gear fund").
		WithAmount(300000).
		WithType(domain.TypeExpense).
		WithCard(card.ID).
		WithPocket(saving.ID, domain.FlowDeposit).
		Build()
	require.NoError(t, err)

	txs := []*domain.Transaction{
		income(t, 6000000, forProject(project.ID), forCard(card.ID), onDate(day(1))),
		deposit,
		rewardTx(t, domain.CategoryRewardGrant, 200000, member.ID, day(3)),
	}

	return ledger.Input{
		Transactions: txs,
		Projects:     []*domain.Project{project},
		Cards:        []*domain.Card{card},
		Pockets:      []*domain.FinancialPocket{saving, pool},
		TeamMembers:  []*domain.TeamMember{member},
		TeamPayments: []*domain.TeamProjectPayment{payment},
	}
}

func TestCompute_Snapshot(t *testing.T) {
	t.Parallel()
	in := fixtureInput(t)
	snap := ledger.Compute(in)

	project := in.Projects[0]
	assert.Equal(t, money.Amount(6000000), snap.Projects[project.ID].AmountPaid)
	assert.Equal(t, domain.PaymentDepositPaid, snap.Projects[project.ID].Status)

	card := in.Cards[0]
	assert.Equal(t, money.Amount(5700000), snap.Cards[card.ID])

	saving, pool := in.Pockets[0], in.Pockets[1]
	assert.Equal(t, money.Amount(300000), snap.Pockets[saving.ID])
	assert.Equal(t, money.Amount(200000), snap.Pockets[pool.ID])

	member := in.TeamMembers[0]
	assert.Equal(t, money.Amount(200000), snap.RewardBalances[member.ID])

	payment := in.TeamPayments[0]
	assert.Equal(t, domain.TeamPaymentUnpaid, snap.TeamPayments[payment.ID])
	require.Len(t, snap.RewardLedger, 1)
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()
	in := fixtureInput(t)
	first := ledger.Compute(in)
	second := ledger.Compute(in)
	assert.Equal(t, first, second)
}

func TestSnapshot_ApplyTo(t *testing.T) {
	t.Parallel()
	in := fixtureInput(t)
	ledger.Compute(in).ApplyTo(in)

	assert.Equal(t, money.Amount(6000000), in.Projects[0].AmountPaid)
	assert.Equal(t, domain.PaymentDepositPaid, in.Projects[0].PaymentStatus)
	assert.Equal(t, money.Amount(5700000), in.Cards[0].Balance)
	assert.Equal(t, money.Amount(300000), in.Pockets[0].Amount)
	assert.Equal(t, money.Amount(200000), in.Pockets[1].Amount)
	assert.Equal(t, money.Amount(200000), in.TeamMembers[0].RewardBalance)
	assert.Equal(t, domain.TeamPaymentUnpaid, in.TeamPayments[0].Status)
}
