package ledger

import (
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// Input is one consistent view of the world: the full transaction log plus
// every entity that references it. Callers must not mutate the log while a
// computation is running; batch recomputation treats the whole input as an
// immutable snapshot.
type Input struct {
	Transactions []*domain.Transaction
	Projects     []*domain.Project
	Cards        []*domain.Card
	Pockets      []*domain.FinancialPocket
	TeamMembers  []*domain.TeamMember
	TeamPayments []*domain.TeamProjectPayment
}

// Snapshot holds every derived field, recomputed in one pass. A snapshot is
// produced whole or not at all; consumers never observe a partially updated
// set of balances.
type Snapshot struct {
	Projects       map[uuid.UUID]ProjectFinancials
	Cards          map[uuid.UUID]money.Amount
	Pockets        map[uuid.UUID]money.Amount
	RewardBalances map[uuid.UUID]money.Amount
	TeamPayments   map[uuid.UUID]domain.TeamPaymentStatus
	RewardLedger   []domain.RewardLedgerEntry
}

// Compute derives every balance and status from in. It is idempotent:
// computing twice from the same input yields identical results.
func Compute(in Input) *Snapshot {
	s := &Snapshot{
		Projects:       make(map[uuid.UUID]ProjectFinancials, len(in.Projects)),
		Cards:          make(map[uuid.UUID]money.Amount, len(in.Cards)),
		Pockets:        make(map[uuid.UUID]money.Amount, len(in.Pockets)),
		RewardBalances: make(map[uuid.UUID]money.Amount, len(in.TeamMembers)),
		TeamPayments:   make(map[uuid.UUID]domain.TeamPaymentStatus, len(in.TeamPayments)),
	}
	s.RewardLedger = ComputeRewardLedger(in.Transactions)
	for _, p := range in.Projects {
		s.Projects[p.ID] = ComputeProjectFinancials(in.Transactions, p)
	}
	for _, c := range in.Cards {
		s.Cards[c.ID] = ComputeCardBalance(in.Transactions, c.ID)
	}
	for _, m := range in.TeamMembers {
		s.RewardBalances[m.ID] = ComputeTeamMemberRewardBalance(s.RewardLedger, m.ID)
	}
	for _, pk := range in.Pockets {
		s.Pockets[pk.ID] = ComputePocketBalance(in.Transactions, pk, in.TeamMembers)
	}
	for _, tp := range in.TeamPayments {
		s.TeamPayments[tp.ID] = ComputeTeamProjectPaymentStatus(in.Transactions, tp)
	}
	return s
}

// ApplyTo writes the snapshot's derived fields back onto the entities of in,
// so a freshly loaded entity set carries consistent balances. Entities absent
// from the snapshot keep zero values.
func (s *Snapshot) ApplyTo(in Input) {
	for _, p := range in.Projects {
		fin := s.Projects[p.ID]
		p.AmountPaid = fin.AmountPaid
		p.PaymentStatus = fin.Status
		if p.PaymentStatus == "" {
			p.PaymentStatus = domain.PaymentUnpaid
		}
	}
	for _, c := range in.Cards {
		c.Balance = s.Cards[c.ID]
	}
	for _, pk := range in.Pockets {
		pk.Amount = s.Pockets[pk.ID]
	}
	for _, m := range in.TeamMembers {
		m.RewardBalance = s.RewardBalances[m.ID]
	}
	for _, tp := range in.TeamPayments {
		st := s.TeamPayments[tp.ID]
		if st == "" {
			st = domain.TeamPaymentUnpaid
		}
		tp.Status = st
	}
}
