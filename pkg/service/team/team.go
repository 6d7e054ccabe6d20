// Package team manages freelancers, their rewards and salary payments.
package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	coreledger "github.com/lumenworks/studiobooks/pkg/ledger"
	"github.com/lumenworks/studiobooks/pkg/money"
	"github.com/lumenworks/studiobooks/pkg/repository"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
)

// Reward and salary errors.
var (
	// ErrNotAssigned is returned when paying a salary for a pair with no
	// recorded assignment.
	ErrNotAssigned = errors.New("team member is not assigned to this project")
	// ErrRewardExceedsBalance is returned when a withdrawal would push a
	// reward balance negative.
	ErrRewardExceedsBalance = errors.New("withdrawal exceeds reward balance")
)

// Service manages team members. Financial effects always go through the
// ledger service so the tally stays in step with the log.
type Service struct {
	uow    repository.UnitOfWork
	ledger *ledgersvc.Service
	logger *slog.Logger
}

// New creates the team service.
func New(uow repository.UnitOfWork, ledger *ledgersvc.Service, logger *slog.Logger) *Service {
	return &Service{uow: uow, ledger: ledger, logger: logger}
}

// Create registers a freelancer.
func (s *Service) Create(ctx context.Context, name, role string, standardFee money.Amount) (m *domain.TeamMember, err error) {
	m, err = domain.NewTeamMember(name, role, standardFee)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		return members.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("team member created", "id", m.ID, "role", m.Role)
	return m, nil
}

// Get returns one team member with the derived reward balance refreshed.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (m *domain.TeamMember, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		m, err = members.Get(ctx, id)
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
		entries := coreledger.ComputeRewardLedger(txs)
		m.RewardBalance = coreledger.ComputeTeamMemberRewardBalance(entries, id)
		return nil
	})
	return
}

// List returns all team members with derived reward balances refreshed.
func (s *Service) List(ctx context.Context) (ms []*domain.TeamMember, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		ms, err = members.List(ctx)
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
		entries := coreledger.ComputeRewardLedger(txs)
		for _, m := range ms {
			m.RewardBalance = coreledger.ComputeTeamMemberRewardBalance(entries, m.ID)
		}
		return nil
	})
	return
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update dto.TeamMemberUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		if _, err := members.Get(ctx, id); err != nil {
			return err
		}
		return members.Update(ctx, id, update)
	})
}

// Delete removes a team member record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.TeamMembers()
		if err != nil {
			return err
		}
		return members.Delete(ctx, id)
	})
}

// GrantReward appends a reward-grant transaction for a team member.
func (s *Service) GrantReward(ctx context.Context, teamMemberID uuid.UUID, amount money.Amount, description string) (*domain.Transaction, error) {
	if description == "" {
		description = "reward grant"
	}
	return s.ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  description,
		Amount:       amount,
		Type:         domain.TypeIncome,
		Category:     domain.CategoryRewardGrant,
		TeamMemberID: &teamMemberID,
	})
}

// WithdrawReward appends a reward-withdrawal transaction. The withdrawal may
// not exceed the member's current balance; a reward balance never goes
// negative, unlike a card's.
func (s *Service) WithdrawReward(ctx context.Context, teamMemberID uuid.UUID, amount money.Amount, description string) (*domain.Transaction, error) {
	_, balance, err := s.ledger.RewardLedger(ctx, teamMemberID)
	if err != nil {
		return nil, err
	}
	if amount > balance {
		return nil, fmt.Errorf("%w: balance %d, requested %d", ErrRewardExceedsBalance, balance, amount)
	}
	if description == "" {
		description = "reward withdrawal"
	}
	return s.ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  description,
		Amount:       amount,
		Type:         domain.TypeExpense,
		Category:     domain.CategoryRewardWithdrawal,
		TeamMemberID: &teamMemberID,
	})
}

// PaySalary records the freelancer-salary expense that flips a
// TeamProjectPayment to Paid. The pair must have a recorded assignment; the
// amount paid need not equal the recorded fee.
func (s *Service) PaySalary(ctx context.Context, projectID, teamMemberID uuid.UUID, amount money.Amount, cardID *uuid.UUID) (*domain.Transaction, error) {
	var assigned bool
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		payments, err := uow.TeamPayments()
		if err != nil {
			return err
		}
		tps, err := payments.ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		for _, tp := range tps {
			if tp.TeamMemberID == teamMemberID {
				assigned = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	return s.ledger.RecordTransaction(ctx, ledgersvc.RecordTransaction{
		Description:  "freelancer salary",
		Amount:       amount,
		Type:         domain.TypeExpense,
		Category:     domain.CategoryFreelancerSalary,
		ProjectID:    &projectID,
		TeamMemberID: &teamMemberID,
		CardID:       cardID,
	})
}
