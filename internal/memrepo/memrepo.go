// Package memrepo provides an in-memory implementation of the repository
// contracts for tests. It honors the same semantics as the database-backed
// implementation: append-only transactions in insertion order, ErrNotFound
// for missing ids, and partial updates through DTOs.
package memrepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// Store is an in-memory UnitOfWork. Do simply runs fn against the same
// store: there is no rollback, which is fine for the failure-free paths
// tests exercise.
type Store struct {
	mu sync.Mutex

	transactions []*domain.Transaction
	clients      map[uuid.UUID]*domain.Client
	projects     map[uuid.UUID]*domain.Project
	cards        map[uuid.UUID]*domain.Card
	pockets      map[uuid.UUID]*domain.FinancialPocket
	teamMembers  map[uuid.UUID]*domain.TeamMember
	teamPayments map[uuid.UUID]*domain.TeamProjectPayment
	contracts    map[uuid.UUID]*domain.Contract
	users        map[uuid.UUID]*domain.User

	// Insertion order for deterministic List results.
	clientOrder   []uuid.UUID
	projectOrder  []uuid.UUID
	cardOrder     []uuid.UUID
	pocketOrder   []uuid.UUID
	memberOrder   []uuid.UUID
	paymentOrder  []uuid.UUID
	contractOrder []uuid.UUID
}

// New returns an empty store.
func New() *Store {
	return &Store{
		clients:      make(map[uuid.UUID]*domain.Client),
		projects:     make(map[uuid.UUID]*domain.Project),
		cards:        make(map[uuid.UUID]*domain.Card),
		pockets:      make(map[uuid.UUID]*domain.FinancialPocket),
		teamMembers:  make(map[uuid.UUID]*domain.TeamMember),
		teamPayments: make(map[uuid.UUID]*domain.TeamProjectPayment),
		contracts:    make(map[uuid.UUID]*domain.Contract),
		users:        make(map[uuid.UUID]*domain.User),
	}
}

// Do implements repository.UnitOfWork.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(s)
}

// Transactions implements repository.UnitOfWork.
func (s *Store) Transactions() (repository.TransactionRepository, error) {
	return (*txRepo)(s), nil
}

// Clients implements repository.UnitOfWork.
func (s *Store) Clients() (repository.ClientRepository, error) { return (*clientRepo)(s), nil }

// Projects implements repository.UnitOfWork.
func (s *Store) Projects() (repository.ProjectRepository, error) { return (*projectRepo)(s), nil }

// Cards implements repository.UnitOfWork.
func (s *Store) Cards() (repository.CardRepository, error) { return (*cardRepo)(s), nil }

// Pockets implements repository.UnitOfWork.
func (s *Store) Pockets() (repository.PocketRepository, error) { return (*pocketRepo)(s), nil }

// TeamMembers implements repository.UnitOfWork.
func (s *Store) TeamMembers() (repository.TeamMemberRepository, error) {
	return (*teamMemberRepo)(s), nil
}

// TeamPayments implements repository.UnitOfWork.
func (s *Store) TeamPayments() (repository.TeamPaymentRepository, error) {
	return (*teamPaymentRepo)(s), nil
}

// Contracts implements repository.UnitOfWork.
func (s *Store) Contracts() (repository.ContractRepository, error) { return (*contractRepo)(s), nil }

// Users implements repository.UnitOfWork.
func (s *Store) Users() (repository.UserRepository, error) { return (*userRepo)(s), nil }

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

type txRepo Store

func (r *txRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *txRepo) Get(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.transactions {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, notFound("transaction", id)
}

func (r *txRepo) List(_ context.Context) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Transaction, len(r.transactions))
	for i, tx := range r.transactions {
		cp := *tx
		out[i] = &cp
	}
	return out, nil
}

func (r *txRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range r.transactions {
		if tx.ProjectID != nil && *tx.ProjectID == projectID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

type clientRepo Store

func (r *clientRepo) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.clients[c.ID] = &cp
	r.clientOrder = append(r.clientOrder, c.ID)
	return nil
}

func (r *clientRepo) Get(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, notFound("client", id)
	}
	cp := *c
	return &cp, nil
}

func (r *clientRepo) GetByPortalAccessID(_ context.Context, accessID uuid.UUID) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.PortalAccessID == accessID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("client portal", accessID)
}

func (r *clientRepo) List(_ context.Context) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Client, 0, len(r.clientOrder))
	for _, id := range r.clientOrder {
		if c, ok := r.clients[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *clientRepo) Update(_ context.Context, id uuid.UUID, update dto.ClientUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return notFound("client", id)
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
	if update.Instagram != nil {
		c.Instagram = *update.Instagram
	}
	if update.Status != nil {
		c.Status = *update.Status
	}
	return nil
}

func (r *clientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return notFound("client", id)
	}
	delete(r.clients, id)
	return nil
}

type projectRepo Store

func (r *projectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	r.projectOrder = append(r.projectOrder, p.ID)
	return nil
}

func (r *projectRepo) Get(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, notFound("project", id)
	}
	cp := *p
	return &cp, nil
}

func (r *projectRepo) List(_ context.Context) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Project, 0, len(r.projectOrder))
	for _, id := range r.projectOrder {
		if p, ok := r.projects[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *projectRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Project
	for _, id := range r.projectOrder {
		if p, ok := r.projects[id]; ok && p.ClientID == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *projectRepo) Update(_ context.Context, id uuid.UUID, update dto.ProjectUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return notFound("project", id)
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.ProjectType != nil {
		p.ProjectType = *update.ProjectType
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Date != nil {
		p.Date = *update.Date
	}
	if update.Location != nil {
		p.Location = *update.Location
	}
	if update.TotalCost != nil {
		p.TotalCost = *update.TotalCost
	}
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return notFound("project", id)
	}
	delete(r.projects, id)
	return nil
}

type cardRepo Store

func (r *cardRepo) Create(_ context.Context, c *domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.cards[c.ID] = &cp
	r.cardOrder = append(r.cardOrder, c.ID)
	return nil
}

func (r *cardRepo) Get(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[id]
	if !ok {
		return nil, notFound("card", id)
	}
	cp := *c
	return &cp, nil
}

func (r *cardRepo) List(_ context.Context) ([]*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Card, 0, len(r.cardOrder))
	for _, id := range r.cardOrder {
		if c, ok := r.cards[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *cardRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[id]; !ok {
		return notFound("card", id)
	}
	delete(r.cards, id)
	return nil
}

type pocketRepo Store

func (r *pocketRepo) Create(_ context.Context, p *domain.FinancialPocket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.pockets[p.ID] = &cp
	r.pocketOrder = append(r.pocketOrder, p.ID)
	return nil
}

func (r *pocketRepo) Get(_ context.Context, id uuid.UUID) (*domain.FinancialPocket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pockets[id]
	if !ok {
		return nil, notFound("pocket", id)
	}
	cp := *p
	return &cp, nil
}

func (r *pocketRepo) List(_ context.Context) ([]*domain.FinancialPocket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.FinancialPocket, 0, len(r.pocketOrder))
	for _, id := range r.pocketOrder {
		if p, ok := r.pockets[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *pocketRepo) Update(_ context.Context, id uuid.UUID, update dto.PocketUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pockets[id]
	if !ok {
		return notFound("pocket", id)
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.GoalAmount != nil {
		p.GoalAmount = update.GoalAmount
	}
	if update.LockEndDate != nil {
		p.LockEndDate = update.LockEndDate
	}
	if update.SourceCardID != nil {
		p.SourceCardID = update.SourceCardID
	}
	return nil
}

func (r *pocketRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pockets[id]; !ok {
		return notFound("pocket", id)
	}
	delete(r.pockets, id)
	return nil
}

type teamMemberRepo Store

func (r *teamMemberRepo) Create(_ context.Context, m *domain.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.teamMembers[m.ID] = &cp
	r.memberOrder = append(r.memberOrder, m.ID)
	return nil
}

func (r *teamMemberRepo) Get(_ context.Context, id uuid.UUID) (*domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.teamMembers[id]
	if !ok {
		return nil, notFound("team member", id)
	}
	cp := *m
	return &cp, nil
}

func (r *teamMemberRepo) GetByPortalAccessID(_ context.Context, accessID uuid.UUID) (*domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.teamMembers {
		if m.PortalAccessID == accessID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, notFound("team member portal", accessID)
}

func (r *teamMemberRepo) List(_ context.Context) ([]*domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.TeamMember, 0, len(r.memberOrder))
	for _, id := range r.memberOrder {
		if m, ok := r.teamMembers[id]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *teamMemberRepo) Update(_ context.Context, id uuid.UUID, update dto.TeamMemberUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.teamMembers[id]
	if !ok {
		return notFound("team member", id)
	}
	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Role != nil {
		m.Role = *update.Role
	}
	if update.Email != nil {
		m.Email = *update.Email
	}
	if update.Phone != nil {
		m.Phone = *update.Phone
	}
	if update.StandardFee != nil {
		m.StandardFee = *update.StandardFee
	}
	if update.BankAccount != nil {
		m.BankAccount = *update.BankAccount
	}
	return nil
}

func (r *teamMemberRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teamMembers[id]; !ok {
		return notFound("team member", id)
	}
	delete(r.teamMembers, id)
	return nil
}

type teamPaymentRepo Store

func (r *teamPaymentRepo) Create(_ context.Context, p *domain.TeamProjectPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.teamPayments[p.ID] = &cp
	r.paymentOrder = append(r.paymentOrder, p.ID)
	return nil
}

func (r *teamPaymentRepo) Get(_ context.Context, id uuid.UUID) (*domain.TeamProjectPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.teamPayments[id]
	if !ok {
		return nil, notFound("team payment", id)
	}
	cp := *p
	return &cp, nil
}

func (r *teamPaymentRepo) List(_ context.Context) ([]*domain.TeamProjectPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.TeamProjectPayment, 0, len(r.paymentOrder))
	for _, id := range r.paymentOrder {
		if p, ok := r.teamPayments[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *teamPaymentRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.TeamProjectPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.TeamProjectPayment
	for _, id := range r.paymentOrder {
		if p, ok := r.teamPayments[id]; ok && p.ProjectID == projectID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *teamPaymentRepo) ListByTeamMember(_ context.Context, teamMemberID uuid.UUID) ([]*domain.TeamProjectPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.TeamProjectPayment
	for _, id := range r.paymentOrder {
		if p, ok := r.teamPayments[id]; ok && p.TeamMemberID == teamMemberID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type contractRepo Store

func (r *contractRepo) Create(_ context.Context, c *domain.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.contracts[c.ID] = &cp
	r.contractOrder = append(r.contractOrder, c.ID)
	return nil
}

func (r *contractRepo) Get(_ context.Context, id uuid.UUID) (*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[id]
	if !ok {
		return nil, notFound("contract", id)
	}
	cp := *c
	return &cp, nil
}

func (r *contractRepo) GetByProject(_ context.Context, projectID uuid.UUID) (*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.contractOrder {
		if c, ok := r.contracts[id]; ok && c.ProjectID == projectID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("contract for project", projectID)
}

func (r *contractRepo) List(_ context.Context) ([]*domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Contract, 0, len(r.contractOrder))
	for _, id := range r.contractOrder {
		if c, ok := r.contracts[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *contractRepo) Update(_ context.Context, id uuid.UUID, update dto.ContractUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[id]
	if !ok {
		return notFound("contract", id)
	}
	if update.SigningDate != nil {
		c.SigningDate = *update.SigningDate
	}
	if update.SigningLocation != nil {
		c.SigningLocation = *update.SigningLocation
	}
	if update.ClientName1 != nil {
		c.ClientName1 = *update.ClientName1
	}
	if update.ClientName2 != nil {
		c.ClientName2 = *update.ClientName2
	}
	if update.ShootingWindow != nil {
		c.ShootingWindow = *update.ShootingWindow
	}
	if update.Deliverables != nil {
		c.Deliverables = *update.Deliverables
	}
	if update.PersonnelCount != nil {
		c.PersonnelCount = *update.PersonnelCount
	}
	if update.DeliveryDays != nil {
		c.DeliveryDays = *update.DeliveryDays
	}
	return nil
}

func (r *contractRepo) CountByYear(_ context.Context, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.contracts {
		if c.SigningDate.Year() == year {
			n++
		}
	}
	return n, nil
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *userRepo) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}
