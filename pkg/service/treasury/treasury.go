// Package treasury manages the money containers: card accounts and financial
// pockets. Balances are derived from the transaction log on every read.
package treasury

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// Service manages cards and pockets.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the treasury service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateCard registers a card account.
func (s *Service) CreateCard(ctx context.Context, holderName, bank string, cardType domain.CardType, lastDigits string) (c *domain.Card, err error) {
	c, err = domain.NewCard(holderName, bank, cardType, lastDigits)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.Cards()
		if err != nil {
			return err
		}
		return cards.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("card created", "id", c.ID, "bank", c.Bank)
	return c, nil
}

// GetCard returns one card with its derived balance refreshed.
func (s *Service) GetCard(ctx context.Context, id uuid.UUID) (c *domain.Card, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.Cards()
		if err != nil {
			return err
		}
		c, err = cards.Get(ctx, id)
		if err != nil {
			return err
		}
		txs, err := listTransactions(ctx, uow)
		if err != nil {
			return err
		}
		c.Balance = ledger.ComputeCardBalance(txs, id)
		return nil
	})
	return
}

// ListCards returns all cards with derived balances refreshed.
func (s *Service) ListCards(ctx context.Context) (cs []*domain.Card, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.Cards()
		if err != nil {
			return err
		}
		cs, err = cards.List(ctx)
		if err != nil {
			return err
		}
		txs, err := listTransactions(ctx, uow)
		if err != nil {
			return err
		}
		for _, c := range cs {
			c.Balance = ledger.ComputeCardBalance(txs, c.ID)
		}
		return nil
	})
	return
}

// DeleteCard removes a card record. Transactions referencing it stay in the
// log and simply stop matching a card.
func (s *Service) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		cards, err := uow.Cards()
		if err != nil {
			return err
		}
		return cards.Delete(ctx, id)
	})
}

// CreatePocket creates a financial pocket.
func (s *Service) CreatePocket(ctx context.Context, name, description string, pocketType domain.PocketType) (p *domain.FinancialPocket, err error) {
	p, err = domain.NewPocket(name, description, pocketType)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pockets, err := uow.Pockets()
		if err != nil {
			return err
		}
		return pockets.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pocket created", "id", p.ID, "type", p.Type)
	return p, nil
}

// GetPocket returns one pocket with its derived amount refreshed. A reward
// pool's amount is the sum of all member reward balances rather than its own
// deposit history.
func (s *Service) GetPocket(ctx context.Context, id uuid.UUID) (p *domain.FinancialPocket, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pockets, err := uow.Pockets()
		if err != nil {
			return err
		}
		p, err = pockets.Get(ctx, id)
		if err != nil {
			return err
		}
		return s.refreshPockets(ctx, uow, []*domain.FinancialPocket{p})
	})
	return
}

// ListPockets returns all pockets with derived amounts refreshed.
func (s *Service) ListPockets(ctx context.Context) (ps []*domain.FinancialPocket, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pockets, err := uow.Pockets()
		if err != nil {
			return err
		}
		ps, err = pockets.List(ctx)
		if err != nil {
			return err
		}
		return s.refreshPockets(ctx, uow, ps)
	})
	return
}

// UpdatePocket applies a partial update.
func (s *Service) UpdatePocket(ctx context.Context, id uuid.UUID, update dto.PocketUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pockets, err := uow.Pockets()
		if err != nil {
			return err
		}
		if _, err := pockets.Get(ctx, id); err != nil {
			return err
		}
		return pockets.Update(ctx, id, update)
	})
}

// DeletePocket removes a pocket record.
func (s *Service) DeletePocket(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		pockets, err := uow.Pockets()
		if err != nil {
			return err
		}
		return pockets.Delete(ctx, id)
	})
}

func (s *Service) refreshPockets(ctx context.Context, uow repository.UnitOfWork, ps []*domain.FinancialPocket) error {
	txs, err := listTransactions(ctx, uow)
	if err != nil {
		return err
	}
	members, err := uow.TeamMembers()
	if err != nil {
		return err
	}
	ms, err := members.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range ps {
		p.Amount = ledger.ComputePocketBalance(txs, p, ms)
	}
	return nil
}

func listTransactions(ctx context.Context, uow repository.UnitOfWork) ([]*domain.Transaction, error) {
	txRepo, err := uow.Transactions()
	if err != nil {
		return nil, err
	}
	return txRepo.List(ctx)
}
