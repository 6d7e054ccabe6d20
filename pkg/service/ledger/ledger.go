// Package ledger provides the application service around the reconciliation
// engine: recording transactions, maintaining the incremental tally, and
// producing consistent derived-state snapshots for the API.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/money"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// Service owns the transaction log boundary. Every financial mutation in the
// system is an append through RecordTransaction; everything else is a read
// that recomputes derived state from a consistent snapshot.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger

	mu    sync.Mutex
	tally *ledger.Tally
}

// New creates the ledger service with an empty tally. Call WarmUp before
// serving to replay the persisted log into the running totals.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
		tally:  ledger.NewTally(),
	}
}

// WarmUp rebuilds the incremental tally from the persisted log.
func (s *Service) WarmUp(ctx context.Context) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tally.Rebuild(txs)
		s.logger.Info("tally rebuilt from transaction log", "transactions", len(txs))
		return nil
	})
}

// RecordTransaction is the input for an append to the transaction log.
type RecordTransaction struct {
	Date         time.Time
	Description  string
	Amount       money.Amount
	Type         domain.TransactionType
	Category     string
	PocketFlow   domain.PocketFlow
	ProjectID    *uuid.UUID
	CardID       *uuid.UUID
	PocketID     *uuid.UUID
	TeamMemberID *uuid.UUID
}

// RecordTransaction validates and appends one transaction, then folds it into
// the running tally. Validation failures surface immediately; once the append
// commits the transaction is an immutable fact.
func (s *Service) RecordTransaction(ctx context.Context, in RecordTransaction) (*domain.Transaction, error) {
	b := domain.NewTransaction().
		WithDescription(in.Description).
		WithAmount(in.Amount).
		WithType(in.Type).
		WithCategory(in.Category)
	if !in.Date.IsZero() {
		b.WithDate(in.Date)
	}
	if in.ProjectID != nil {
		b.WithProject(*in.ProjectID)
	}
	if in.CardID != nil {
		b.WithCard(*in.CardID)
	}
	if in.PocketID != nil {
		b.WithPocket(*in.PocketID, in.PocketFlow)
	}
	if in.TeamMemberID != nil {
		b.WithTeamMember(*in.TeamMemberID)
	}
	tx, err := b.Build()
	if err != nil {
		s.logger.Warn("transaction rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		return txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tally.Apply(tx)
	s.mu.Unlock()

	s.logger.Info("transaction recorded",
		"id", tx.ID,
		"type", tx.Type,
		"category", tx.Category,
		"amount", tx.Amount,
	)
	return tx, nil
}

// GetTransaction returns one transaction by id.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (tx *domain.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		tx, err = txRepo.Get(ctx, id)
		return err
	})
	return
}

// ListTransactions returns the full log in insertion order.
func (s *Service) ListTransactions(ctx context.Context) (txs []*domain.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err = txRepo.List(ctx)
		return err
	})
	return
}

// Snapshot loads one consistent view of the world and recomputes every
// derived field over it. The load and the recompute happen against a single
// transaction boundary, so consumers never see a torn state.
func (s *Service) Snapshot(ctx context.Context) (in ledger.Input, snap *ledger.Snapshot, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		in, err = loadInput(ctx, uow)
		return err
	})
	if err != nil {
		return ledger.Input{}, nil, err
	}
	snap = ledger.Compute(in)
	snap.ApplyTo(in)
	return in, snap, nil
}

// Audit recomputes every derived total from the persisted log and compares it
// with the incremental tally. An empty result means no drift.
func (s *Service) Audit(ctx context.Context) ([]ledger.Discrepancy, error) {
	var in ledger.Input
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		in, err = loadInput(ctx, uow)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	disc := ledger.Audit(in, s.tally)
	if len(disc) > 0 {
		s.logger.Error("tally drift detected", "discrepancies", len(disc))
	}
	return disc, nil
}

// ProjectFinancials recomputes one project's payment state from the log.
func (s *Service) ProjectFinancials(ctx context.Context, projectID uuid.UUID) (fin ledger.ProjectFinancials, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		project, err := projects.Get(ctx, projectID)
		if err != nil {
			return err
		}
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		fin = ledger.ComputeProjectFinancials(txs, project)
		return nil
	})
	return
}

// CardBalance recomputes one card's signed balance from the log.
func (s *Service) CardBalance(ctx context.Context, cardID uuid.UUID) (balance money.Amount, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.Cards()
		if err != nil {
			return err
		}
		if _, err := cards.Get(ctx, cardID); err != nil {
			return err
		}
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		balance = ledger.ComputeCardBalance(txs, cardID)
		return nil
	})
	return
}

// PocketBalance recomputes one pocket's amount from the log, including the
// reward-pool roll-up.
func (s *Service) PocketBalance(ctx context.Context, pocketID uuid.UUID) (amount money.Amount, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pockets, err := uow.Pockets()
		if err != nil {
			return err
		}
		pocket, err := pockets.Get(ctx, pocketID)
		if err != nil {
			return err
		}
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		all, err := members.List(ctx)
		if err != nil {
			return err
		}
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		amount = ledger.ComputePocketBalance(txs, pocket, all)
		return nil
	})
	return
}

// RewardLedger returns one team member's signed reward entries, newest first,
// along with the resulting balance.
func (s *Service) RewardLedger(ctx context.Context, teamMemberID uuid.UUID) (entries []domain.RewardLedgerEntry, balance money.Amount, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		if _, err := members.Get(ctx, teamMemberID); err != nil {
			return err
		}
		txRepo, err := uow.Transactions()
		if err != nil {
			return err
		}
		txs, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		all := ledger.ComputeRewardLedger(txs)
		balance = ledger.ComputeTeamMemberRewardBalance(all, teamMemberID)
		for _, e := range all {
			if e.TeamMemberID == teamMemberID {
				entries = append(entries, e)
			}
		}
		return nil
	})
	return
}

// loadInput reads every entity set through one unit of work.
func loadInput(ctx context.Context, uow repository.UnitOfWork) (ledger.Input, error) {
	var in ledger.Input

	txRepo, err := uow.Transactions()
	if err != nil {
		return in, err
	}
	if in.Transactions, err = txRepo.List(ctx); err != nil {
		return in, err
	}
	projects, err := uow.Projects()
	if err != nil {
		return in, err
	}
	if in.Projects, err = projects.List(ctx); err != nil {
		return in, err
	}
	cards, err := uow.Cards()
	if err != nil {
		return in, err
	}
	if in.Cards, err = cards.List(ctx); err != nil {
		return in, err
	}
	pockets, err := uow.Pockets()
	if err != nil {
		return in, err
	}
	if in.Pockets, err = pockets.List(ctx); err != nil {
		return in, err
	}
	members, err := uow.TeamMembers()
	if err != nil {
		return in, err
	}
	if in.TeamMembers, err = members.List(ctx); err != nil {
		return in, err
	}
	payments, err := uow.TeamPayments()
	if err != nil {
		return in, err
	}
	if in.TeamPayments, err = payments.List(ctx); err != nil {
		return in, err
	}
	return in, nil
}
