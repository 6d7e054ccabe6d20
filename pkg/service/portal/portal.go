// Package portal assembles the read-only self-service views for clients and
// freelancers. Access is by opaque portal access id; no credentials, no
// mutations.
package portal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/money"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// ClientView is everything a client sees in their portal: their projects
// with payment progress, and any contracts covering them.
type ClientView struct {
	Client    *domain.Client
	Projects  []*domain.Project
	Contracts []*domain.Contract
}

// FreelancerView is everything a freelancer sees in their portal: their
// assignments with derived payment statuses and their reward ledger.
type FreelancerView struct {
	Member        *domain.TeamMember
	Assignments   []*domain.TeamProjectPayment
	RewardLedger  []domain.RewardLedgerEntry
	RewardBalance money.Amount
}

// Service builds portal views.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the portal service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ClientPortal resolves a client portal access id into the client's view.
// Every derived figure is recomputed from the log inside one unit of work.
func (s *Service) ClientPortal(ctx context.Context, accessID uuid.UUID) (view *ClientView, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.Clients()
		if err != nil {
			return err
		}
		c, err := clients.GetByPortalAccessID(ctx, accessID)
		if err != nil {
			return err
		}
		projects, err := uow.Projects()
		if err != nil {
			return err
		}
		ps, err := projects.ListByClient(ctx, c.ID)
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
		contracts, err := uow.Contracts()
		if err != nil {
			return err
		}

		view = &ClientView{Client: c, Projects: ps}
		for _, p := range ps {
			fin := ledger.ComputeProjectFinancials(txs, p)
			p.AmountPaid = fin.AmountPaid
			p.PaymentStatus = fin.Status
			contract, err := contracts.GetByProject(ctx, p.ID)
			switch {
			case err == nil:
				view.Contracts = append(view.Contracts, contract)
			case !errors.Is(err, domain.ErrNotFound):
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("client portal viewed", "client_id", view.Client.ID)
	return view, nil
}

// FreelancerPortal resolves a freelancer portal access id into the member's
// view: assignments with derived statuses, reward entries newest first, and
// the resulting balance.
func (s *Service) FreelancerPortal(ctx context.Context, accessID uuid.UUID) (view *FreelancerView, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		m, err := members.GetByPortalAccessID(ctx, accessID)
		if err != nil {
			return err
		}
		payments, err := uow.TeamPayments()
		if err != nil {
			return err
		}
		tps, err := payments.ListByTeamMember(ctx, m.ID)
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
		all := ledger.ComputeRewardLedger(txs)
		var mine []domain.RewardLedgerEntry
		for _, e := range all {
			if e.TeamMemberID == m.ID {
				mine = append(mine, e)
			}
		}
		balance := ledger.ComputeTeamMemberRewardBalance(all, m.ID)
		m.RewardBalance = balance

		view = &FreelancerView{
			Member:        m,
			Assignments:   tps,
			RewardLedger:  mine,
			RewardBalance: balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("freelancer portal viewed", "team_member_id", view.Member.ID)
	return view, nil
}
