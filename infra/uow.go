package infra

import (
	"context"
	"errors"

	"github.com/lumenworks/studiobooks/pkg/repository"
	"gorm.io/gorm"
)

// ErrNoSession is returned when a repository is requested from a unit of work
// that has no open database session.
var ErrNoSession = errors.New("no database session")

// UoW implements repository.UnitOfWork over a gorm session. Do opens a
// transaction and hands fn a UoW bound to it, so every repository obtained
// inside fn shares the same transaction.
type UoW struct {
	db *gorm.DB
}

// NewUoW creates a unit of work over the given database handle.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction. An error from fn rolls back
// everything fn wrote through the repositories.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.db == nil {
		return ErrNoSession
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

func (u *UoW) session() (*gorm.DB, error) {
	if u.db == nil {
		return nil, ErrNoSession
	}
	return u.db, nil
}

func (u *UoW) Transactions() (repository.TransactionRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewTransactionRepository(db), nil
}

func (u *UoW) Clients() (repository.ClientRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewClientRepository(db), nil
}

func (u *UoW) Projects() (repository.ProjectRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewProjectRepository(db), nil
}

func (u *UoW) Cards() (repository.CardRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewCardRepository(db), nil
}

func (u *UoW) Pockets() (repository.PocketRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewPocketRepository(db), nil
}

func (u *UoW) TeamMembers() (repository.TeamMemberRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewTeamMemberRepository(db), nil
}

func (u *UoW) TeamPayments() (repository.TeamPaymentRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewTeamPaymentRepository(db), nil
}

func (u *UoW) Contracts() (repository.ContractRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewContractRepository(db), nil
}

func (u *UoW) Users() (repository.UserRepository, error) {
	db, err := u.session()
	if err != nil {
		return nil, err
	}
	return NewUserRepository(db), nil
}
