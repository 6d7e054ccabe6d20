package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// Tally holds incrementally maintained running totals, updated once per
// appended transaction. It exists so balance reads stay O(1) as the log
// grows; the pure Compute* functions remain the authoritative derivation,
// and Audit verifies the tally against them.
//
// A Tally is not safe for concurrent use; callers update it inside the same
// critical section that appends to the log.
type Tally struct {
	projectIncome map[uuid.UUID]money.Amount
	cardBalance   map[uuid.UUID]money.Amount
	pocketBalance map[uuid.UUID]money.Amount
	rewardBalance map[uuid.UUID]money.Amount
	salaryPaid    map[salaryKey]bool
}

type salaryKey struct {
	projectID    uuid.UUID
	teamMemberID uuid.UUID
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		projectIncome: make(map[uuid.UUID]money.Amount),
		cardBalance:   make(map[uuid.UUID]money.Amount),
		pocketBalance: make(map[uuid.UUID]money.Amount),
		rewardBalance: make(map[uuid.UUID]money.Amount),
		salaryPaid:    make(map[salaryKey]bool),
	}
}

// Rebuild discards all totals and replays the full transaction log. Apply(tx)
// after an append and Rebuild over the whole log land on identical totals.
func (t *Tally) Rebuild(txs []*domain.Transaction) {
	*t = *NewTally()
	for _, tx := range txs {
		t.Apply(tx)
	}
}

// Apply folds one appended transaction into the running totals. It mirrors
// the pure derivations exactly; any divergence between the two is a bug that
// Audit exists to catch.
func (t *Tally) Apply(tx *domain.Transaction) {
	sign := money.Amount(1)
	if tx.Type == domain.TypeExpense {
		sign = -1
	}

	if tx.ProjectID != nil && tx.Type == domain.TypeIncome {
		t.projectIncome[*tx.ProjectID] += tx.Amount
	}
	if tx.CardID != nil {
		t.cardBalance[*tx.CardID] += sign * tx.Amount
	}
	if tx.PocketID != nil {
		switch tx.PocketFlow {
		case domain.FlowDeposit:
			t.pocketBalance[*tx.PocketID] += tx.Amount
		case domain.FlowWithdrawal:
			t.pocketBalance[*tx.PocketID] -= tx.Amount
		}
	}
	if tx.TeamMemberID != nil {
		switch tx.Category {
		case domain.CategoryRewardGrant:
			t.rewardBalance[*tx.TeamMemberID] += tx.Amount
		case domain.CategoryRewardWithdrawal:
			t.rewardBalance[*tx.TeamMemberID] -= tx.Amount
		}
	}
	if tx.Type == domain.TypeExpense && tx.Category == domain.CategoryFreelancerSalary &&
		tx.ProjectID != nil && tx.TeamMemberID != nil {
		t.salaryPaid[salaryKey{*tx.ProjectID, *tx.TeamMemberID}] = true
	}
}

// ProjectIncome returns the running income total for a project.
func (t *Tally) ProjectIncome(projectID uuid.UUID) money.Amount {
	return t.projectIncome[projectID]
}

// CardBalance returns the running signed balance of a card.
func (t *Tally) CardBalance(cardID uuid.UUID) money.Amount {
	return t.cardBalance[cardID]
}

// PocketBalance returns the running amount of a pocket. A RewardPool pocket
// rolls up the reward balances of the supplied members only, mirroring
// ComputePocketBalance: balances tracked for members outside the set (for
// example a deleted member whose grants remain in the log) do not count.
func (t *Tally) PocketBalance(pocket *domain.FinancialPocket, members []*domain.TeamMember) money.Amount {
	if pocket.Type == domain.PocketRewardPool {
		var total money.Amount
		for _, m := range members {
			total += t.rewardBalance[m.ID]
		}
		return total
	}
	return t.pocketBalance[pocket.ID]
}

// RewardBalance returns the running reward balance of a team member.
func (t *Tally) RewardBalance(teamMemberID uuid.UUID) money.Amount {
	return t.rewardBalance[teamMemberID]
}

// SalaryPaid reports whether a matching freelancer-salary expense has been
// applied for the (project, team member) pair.
func (t *Tally) SalaryPaid(projectID, teamMemberID uuid.UUID) bool {
	return t.salaryPaid[salaryKey{projectID, teamMemberID}]
}

// Discrepancy is one mismatch between the tally and the authoritative
// recomputation.
type Discrepancy struct {
	Entity   string
	ID       uuid.UUID
	Expected money.Amount
	Actual   money.Amount
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("%s %s: recomputed %d, tally %d", d.Entity, d.ID, d.Expected, d.Actual)
}

// Audit recomputes every derived total from scratch and compares it with the
// tally. An empty result means the incremental totals are consistent with
// the authoritative derivation. Entities that appear only on one side are
// compared against zero, matching the engine's treatment of unmatched ids.
func Audit(in Input, t *Tally) []Discrepancy {
	var out []Discrepancy
	snap := Compute(in)

	for _, p := range in.Projects {
		if want, got := snap.Projects[p.ID].AmountPaid, t.ProjectIncome(p.ID); want != got {
			out = append(out, Discrepancy{Entity: "project", ID: p.ID, Expected: want, Actual: got})
		}
	}
	for _, c := range in.Cards {
		if want, got := snap.Cards[c.ID], t.CardBalance(c.ID); want != got {
			out = append(out, Discrepancy{Entity: "card", ID: c.ID, Expected: want, Actual: got})
		}
	}
	for _, pk := range in.Pockets {
		if want, got := snap.Pockets[pk.ID], t.PocketBalance(pk, in.TeamMembers); want != got {
			out = append(out, Discrepancy{Entity: "pocket", ID: pk.ID, Expected: want, Actual: got})
		}
	}
	for _, m := range in.TeamMembers {
		if want, got := snap.RewardBalances[m.ID], t.RewardBalance(m.ID); want != got {
			out = append(out, Discrepancy{Entity: "team member", ID: m.ID, Expected: want, Actual: got})
		}
	}
	return out
}
