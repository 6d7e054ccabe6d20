package repository

import "context"

// UnitOfWork groups repository access behind one transaction boundary.
//
// Do runs fn inside a database transaction: every repository obtained from
// the UnitOfWork passed to fn shares that transaction, and an error from fn
// rolls the whole thing back. Batch recomputation of derived state reads its
// snapshot through a single Do call so it never observes a torn intermediate
// state.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Transactions() (TransactionRepository, error)
	Clients() (ClientRepository, error)
	Projects() (ProjectRepository, error)
	Cards() (CardRepository, error)
	Pockets() (PocketRepository, error)
	TeamMembers() (TeamMemberRepository, error)
	TeamPayments() (TeamPaymentRepository, error)
	Contracts() (ContractRepository, error)
	Users() (UserRepository, error)
}
