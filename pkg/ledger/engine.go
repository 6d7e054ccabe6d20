// Package ledger implements the reconciliation engine: pure, deterministic
// derivations of every balance and status field from the authoritative
// transaction log.
//
// All functions here are total over well-formed input. A dangling reference
// (a transaction pointing at an entity that no longer matches anything, or an
// entity with no transactions) simply contributes nothing to a sum; nothing
// in this package returns an error or mutates its arguments. Input
// validation belongs to the domain constructors, not to the engine.
package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// ProjectFinancials is the derived payment state of one project.
type ProjectFinancials struct {
	AmountPaid money.Amount
	Status     domain.PaymentStatus
}

// ComputeProjectFinancials sums income transactions tied to the project and
// derives the payment status. The sum is commutative, so any permutation of
// the transaction list yields the same result.
func ComputeProjectFinancials(txs []*domain.Transaction, project *domain.Project) ProjectFinancials {
	var paid money.Amount
	for _, tx := range txs {
		if tx.Type != domain.TypeIncome || tx.ProjectID == nil {
			continue
		}
		if *tx.ProjectID == project.ID {
			paid += tx.Amount
		}
	}
	return ProjectFinancials{
		AmountPaid: paid,
		Status:     derivePaymentStatus(paid, project.TotalCost),
	}
}

// derivePaymentStatus applies the three-way status rule. A zero-cost project
// is trivially paid in full; status never moves backward as amountPaid grows.
func derivePaymentStatus(amountPaid, totalCost money.Amount) domain.PaymentStatus {
	switch {
	case amountPaid >= totalCost:
		return domain.PaymentPaidInFull
	case amountPaid > 0:
		return domain.PaymentDepositPaid
	default:
		return domain.PaymentUnpaid
	}
}

// ComputeCardBalance returns the signed sum of every transaction referencing
// the card: income adds, expense subtracts. The balance may go negative;
// overdraft is representable and never clamped.
func ComputeCardBalance(txs []*domain.Transaction, cardID uuid.UUID) money.Amount {
	var balance money.Amount
	for _, tx := range txs {
		if tx.CardID == nil || *tx.CardID != cardID {
			continue
		}
		switch tx.Type {
		case domain.TypeIncome:
			balance += tx.Amount
		case domain.TypeExpense:
			balance -= tx.Amount
		}
	}
	return balance
}

// ComputePocketBalance derives a pocket's amount according to its type.
//
// For a RewardPool pocket the amount is a fan-in aggregate: the sum of every
// team member's reward balance, itself derived from the transaction log.
// For every other pocket type, transactions with an explicit Deposit flow
// add and transactions with a Withdrawal flow subtract. The flow direction
// is a field set at creation time; descriptions play no part.
func ComputePocketBalance(txs []*domain.Transaction, pocket *domain.FinancialPocket, members []*domain.TeamMember) money.Amount {
	if pocket.Type == domain.PocketRewardPool {
		entries := ComputeRewardLedger(txs)
		var total money.Amount
		for _, m := range members {
			total += ComputeTeamMemberRewardBalance(entries, m.ID)
		}
		return total
	}

	var amount money.Amount
	for _, tx := range txs {
		if tx.PocketID == nil || *tx.PocketID != pocket.ID {
			continue
		}
		switch tx.PocketFlow {
		case domain.FlowDeposit:
			amount += tx.Amount
		case domain.FlowWithdrawal:
			amount -= tx.Amount
		}
	}
	return amount
}

// ComputeRewardLedger maps reward-tagged transactions into signed ledger
// entries, sorted by date descending. Grants are positive, withdrawals
// negative. Entries with equal dates keep their input order (stable sort);
// no finer tiebreak is defined.
func ComputeRewardLedger(txs []*domain.Transaction) []domain.RewardLedgerEntry {
	var entries []domain.RewardLedgerEntry
	for _, tx := range txs {
		if tx.TeamMemberID == nil {
			continue
		}
		var amount money.Amount
		switch tx.Category {
		case domain.CategoryRewardGrant:
			amount = tx.Amount
		case domain.CategoryRewardWithdrawal:
			amount = -tx.Amount
		default:
			continue
		}
		entries = append(entries, domain.RewardLedgerEntry{
			TransactionID: tx.ID,
			TeamMemberID:  *tx.TeamMemberID,
			Date:          tx.Date,
			Description:   tx.Description,
			Amount:        amount,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

// ComputeTeamMemberRewardBalance sums the already-signed entries belonging to
// one team member. A member with no entries has a balance of zero.
func ComputeTeamMemberRewardBalance(entries []domain.RewardLedgerEntry, teamMemberID uuid.UUID) money.Amount {
	var balance money.Amount
	for _, e := range entries {
		if e.TeamMemberID == teamMemberID {
			balance += e.Amount
		}
	}
	return balance
}

// ComputeTeamProjectPaymentStatus returns Paid iff at least one
// freelancer-salary expense matches both the payment's project and team
// member. The check is presence-only: the recorded fee need not equal the
// transaction amount, and once a match exists the status is terminal.
func ComputeTeamProjectPaymentStatus(txs []*domain.Transaction, payment *domain.TeamProjectPayment) domain.TeamPaymentStatus {
	for _, tx := range txs {
		if tx.Type != domain.TypeExpense || tx.Category != domain.CategoryFreelancerSalary {
			continue
		}
		if tx.ProjectID == nil || tx.TeamMemberID == nil {
			continue
		}
		if *tx.ProjectID == payment.ProjectID && *tx.TeamMemberID == payment.TeamMemberID {
			return domain.TeamPaymentPaid
		}
	}
	return domain.TeamPaymentUnpaid
}
