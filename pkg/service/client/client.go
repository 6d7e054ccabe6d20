// Package client implements client relationship management.
package client

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// Service manages clients through their relationship lifecycle.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the client service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create registers a new client, starting in the Lead stage.
func (s *Service) Create(ctx context.Context, name, email, phone string) (c *domain.Client, err error) {
	c, err = domain.NewClient(name, email, phone)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		return clients.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("client created", "id", c.ID, "status", c.Status)
	return c, nil
}

// Get returns one client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (c *domain.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		c, err = clients.Get(ctx, id)
		return err
	})
	return
}

// List returns all clients.
func (s *Service) List(ctx context.Context) (cs []*domain.Client, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		cs, err = clients.List(ctx)
		return err
	})
	return
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update dto.ClientUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		if _, err := clients.Get(ctx, id); err != nil {
			return err
		}
		return clients.Update(ctx, id, update)
	})
}

// Delete removes a client record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		return clients.Delete(ctx, id)
	})
}
