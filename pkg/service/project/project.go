// Package project implements project tracking and team assignment.
package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/money"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// Service manages projects and their freelancer assignments.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the project service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create books a project for a client. Booking a first project moves a lead
// client into the Active stage within the same unit of work.
func (s *Service) Create(ctx context.Context, name string, clientID uuid.UUID, projectType string, date time.Time, totalCost money.Amount) (p *domain.Project, err error) {
	p, err = domain.NewProject(name, clientID, projectType, date, totalCost)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		c, err := clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		if err := projects.Create(ctx, p); err != nil {
			return err
		}
		if c.Status == domain.ClientLead {
			status := domain.ClientActive
			return clients.Update(ctx, c.ID, dto.ClientUpdate{Status: &status})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", "id", p.ID, "client_id", clientID, "total_cost", totalCost)
	return p, nil
}

// Get returns one project with its derived payment state refreshed from the
// transaction log.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (p *domain.Project, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		p, err = projects.Get(ctx, id)
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
		fin := ledger.ComputeProjectFinancials(txs, p)
		p.AmountPaid = fin.AmountPaid
		p.PaymentStatus = fin.Status
		return nil
	})
	return
}

// List returns all projects with derived payment state refreshed.
func (s *Service) List(ctx context.Context) (ps []*domain.Project, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		ps, err = projects.List(ctx)
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
		for _, p := range ps {
			fin := ledger.ComputeProjectFinancials(txs, p)
			p.AmountPaid = fin.AmountPaid
			p.PaymentStatus = fin.Status
		}
		return nil
	})
	return
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update dto.ProjectUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		if _, err := projects.Get(ctx, id); err != nil {
			return err
		}
		return projects.Update(ctx, id, update)
	})
}

// Delete removes a project record. The transaction log keeps any payments
// already recorded against it; they simply stop matching a project.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		return projects.Delete(ctx, id)
	})
}

// AssignTeamMember records a freelancer's fee on a project. The resulting
// payment starts Unpaid and flips to Paid only through a matching salary
// expense in the log.
func (s *Service) AssignTeamMember(ctx context.Context, projectID, teamMemberID uuid.UUID, fee money.Amount) (tp *domain.TeamProjectPayment, err error) {
	tp, err = domain.NewTeamProjectPayment(projectID, teamMemberID, fee)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		if _, err := projects.Get(ctx, projectID); err != nil {
			return err
		}
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		if _, err := members.Get(ctx, teamMemberID); err != nil {
			return err
		}
		payments, err := uow.TeamPayments()
		if err != nil {
			return err
		}
		return payments.Create(ctx, tp)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("team member assigned", "project_id", projectID, "team_member_id", teamMemberID, "fee", fee)
	return tp, nil
}

// TeamPayments lists a project's freelancer fees with derived statuses.
func (s *Service) TeamPayments(ctx context.Context, projectID uuid.UUID) (tps []*domain.TeamProjectPayment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payments, err := uow.TeamPayments()
		if err != nil {
			return err
		}
		tps, err = payments.ListByProject(ctx, projectID)
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
		for _, tp := range tps {
			tp.Status = ledger.ComputeTeamProjectPaymentStatus(txs, tp)
		}
		return nil
	})
	return
}
