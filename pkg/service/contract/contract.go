// Package contract manages stored client agreements and their numbering.
package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// Service manages contracts.
type Service struct {
	uow    repository.UnitOfWork
	prefix string
	logger *slog.Logger
}

// New creates the contract service. prefix leads generated contract numbers.
func New(uow repository.UnitOfWork, prefix string, logger *slog.Logger) *Service {
	return &Service{uow: uow, prefix: prefix, logger: logger}
}

// Create stores a contract for a project, generating a sequential number of
// the form PREFIX/YEAR/NNNN. Number generation and insert share one unit of
// work so concurrent creates cannot collide.
func (s *Service) Create(ctx context.Context, clientID, projectID uuid.UUID, signingDate time.Time, signingLocation string) (c *domain.Contract, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		client, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		if _, err := projects.Get(ctx, projectID); err != nil {
			return err
		}
		contracts, err := uow.Contracts()
		if err != nil {
			return err
		}
		year := signingDate.Year()
		seq, err := contracts.CountByYear(ctx, year)
		if err != nil {
			return err
		}
		number := fmt.Sprintf("%s/%d/%04d", s.prefix, year, seq+1)
		c, err = domain.NewContract(number, clientID, projectID, signingDate, signingLocation)
		if err != nil {
			return err
		}
		c.ClientName1 = client.Name
		return contracts.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("contract created", "id", c.ID, "number", c.ContractNumber)
	return c, nil
}

// Get returns one contract.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (c *domain.Contract, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		contracts, err := uow.Contracts()
		if err != nil {
			return err
		}
		c, err = contracts.Get(ctx, id)
		return err
	})
	return
}

// GetByProject returns the contract covering a project.
func (s *Service) GetByProject(ctx context.Context, projectID uuid.UUID) (c *domain.Contract, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		contracts, err := uow.Contracts()
		if err != nil {
			return err
		}
		c, err = contracts.GetByProject(ctx, projectID)
		return err
	})
	return
}

// List returns all contracts.
func (s *Service) List(ctx context.Context) (cs []*domain.Contract, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		contracts, err := uow.Contracts()
		if err != nil {
			return err
		}
		cs, err = contracts.List(ctx)
		return err
	})
	return
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update dto.ContractUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		contracts, err := uow.Contracts()
		if err != nil {
			return err
		}
		if _, err := contracts.Get(ctx, id); err != nil {
			return err
		}
		return contracts.Update(ctx, id, update)
	})
}
