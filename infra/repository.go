package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/repository"
	"gorm.io/gorm"
)

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

// transactionRepository stores the append-only log. It exposes no update or
// delete: a recorded transaction is an immutable fact.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates the gorm-backed transaction log.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	m := Transaction{
		Model:        gorm.Model{CreatedAt: tx.CreatedAt, UpdatedAt: tx.CreatedAt},
		ID:           tx.ID,
		Date:         tx.Date,
		Description:  tx.Description,
		Amount:       tx.Amount,
		Type:         string(tx.Type),
		Category:     tx.Category,
		PocketFlow:   string(tx.PocketFlow),
		ProjectID:    tx.ProjectID,
		CardID:       tx.CardID,
		PocketID:     tx.PocketID,
		TeamMemberID: tx.TeamMemberID,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("transaction", id)
		}
		return nil, result.Error
	}
	return m.toDomain(), nil
}

func (r *transactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	var ms []*Transaction
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	txs := make([]*domain.Transaction, 0, len(ms))
	for _, m := range ms {
		txs = append(txs, m.toDomain())
	}
	return txs, nil
}

func (r *transactionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Transaction, error) {
	var ms []*Transaction
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	txs := make([]*domain.Transaction, 0, len(ms))
	for _, m := range ms {
		txs = append(txs, m.toDomain())
	}
	return txs, nil
}

func (m *Transaction) toDomain() *domain.Transaction {
	return domain.HydrateTransaction(domain.Transaction{
		ID:           m.ID,
		Date:         m.Date,
		Description:  m.Description,
		Amount:       m.Amount,
		Type:         domain.TransactionType(m.Type),
		Category:     m.Category,
		PocketFlow:   domain.PocketFlow(m.PocketFlow),
		ProjectID:    m.ProjectID,
		CardID:       m.CardID,
		PocketID:     m.PocketID,
		TeamMemberID: m.TeamMemberID,
		CreatedAt:    m.CreatedAt,
	})
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates the gorm-backed client store.
func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	m := Client{
		Model:          gorm.Model{CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Instagram:      c.Instagram,
		Since:          c.Since,
		Status:         string(c.Status),
		PortalAccessID: c.PortalAccessID,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var m Client
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("client", id)
		}
		return nil, result.Error
	}
	return m.toDomain(), nil
}

func (r *clientRepository) GetByPortalAccessID(ctx context.Context, accessID uuid.UUID) (*domain.Client, error) {
	var m Client
	result := r.db.WithContext(ctx).First(&m, "portal_access_id = ?", accessID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client portal %s: %w", accessID, domain.ErrNotFound)
		}
		return nil, result.Error
	}
	return m.toDomain(), nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	var ms []*Client
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	cs := make([]*domain.Client, 0, len(ms))
	for _, m := range ms {
		cs = append(cs, m.toDomain())
	}
	return cs, nil
}

func (r *clientRepository) Update(ctx context.Context, id uuid.UUID, update dto.ClientUpdate) error {
	cols := map[string]any{}
	if update.Name != nil {
		cols["name"] = *update.Name
	}
	if update.Email != nil {
		cols["email"] = *update.Email
	}
	if update.Phone != nil {
		cols["phone"] = *update.Phone
	}
	if update.Instagram != nil {
		cols["instagram"] = *update.Instagram
	}
	if update.Status != nil {
		cols["status"] = string(*update.Status)
	}
	return applyUpdate(r.db.WithContext(ctx).Model(&Client{}), id, "client", cols)
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("client", id)
	}
	return nil
}

func (m *Client) toDomain() *domain.Client {
	return &domain.Client{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Instagram:      m.Instagram,
		Since:          m.Since,
		Status:         domain.ClientStatus(m.Status),
		PortalAccessID: m.PortalAccessID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates the gorm-backed project store.
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	m := Project{
		Model:       gorm.Model{CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		ID:          p.ID,
		Name:        p.Name,
		ClientID:    p.ClientID,
		ProjectType: p.ProjectType,
		Status:      string(p.Status),
		Date:        p.Date,
		Location:    p.Location,
		TotalCost:   p.TotalCost,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *projectRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var m Project
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("project", id)
		}
		return nil, result.Error
	}
	return m.toDomain(), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	var ms []*Project
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	ps := make([]*domain.Project, 0, len(ms))
	for _, m := range ms {
		ps = append(ps, m.toDomain())
	}
	return ps, nil
}

func (r *projectRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*domain.Project, error) {
	var ms []*Project
	result := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	ps := make([]*domain.Project, 0, len(ms))
	for _, m := range ms {
		ps = append(ps, m.toDomain())
	}
	return ps, nil
}

func (r *projectRepository) Update(ctx context.Context, id uuid.UUID, update dto.ProjectUpdate) error {
	cols := map[string]any{}
	if update.Name != nil {
		cols["name"] = *update.Name
	}
	if update.ProjectType != nil {
		cols["project_type"] = *update.ProjectType
	}
	if update.Status != nil {
		cols["status"] = string(*update.Status)
	}
	if update.Date != nil {
		cols["date"] = *update.Date
	}
	if update.Location != nil {
		cols["location"] = *update.Location
	}
	if update.TotalCost != nil {
		cols["total_cost"] = *update.TotalCost
	}
	return applyUpdate(r.db.WithContext(ctx).Model(&Project{}), id, "project", cols)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("project", id)
	}
	return nil
}

func (m *Project) toDomain() *domain.Project {
	return &domain.Project{
		ID:          m.ID,
		Name:        m.Name,
		ClientID:    m.ClientID,
		ProjectType: m.ProjectType,
		Status:      domain.ProjectStatus(m.Status),
		Date:        m.Date,
		Location:    m.Location,
		TotalCost:   m.TotalCost,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates the gorm-backed card store.
func NewCardRepository(db *gorm.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, c *domain.Card) error {
	m := Card{
		Model:      gorm.Model{CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		ID:         c.ID,
		HolderName: c.HolderName,
		Bank:       c.Bank,
		Type:       string(c.Type),
		LastDigits: c.LastDigits,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *cardRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var m Card
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("card", id)
		}
		return nil, result.Error
	}
	return m.toDomain(), nil
}

func (r *cardRepository) List(ctx context.Context) ([]*domain.Card, error) {
	var ms []*Card
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	cs := make([]*domain.Card, 0, len(ms))
	for _, m := range ms {
		cs = append(cs, m.toDomain())
	}
	return cs, nil
}

func (r *cardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("card", id)
	}
	return nil
}

func (m *Card) toDomain() *domain.Card {
	return &domain.Card{
		ID:         m.ID,
		HolderName: m.HolderName,
		Bank:       m.Bank,
		Type:       domain.CardType(m.Type),
		LastDigits: m.LastDigits,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type pocketRepository struct {
	db *gorm.DB
}

// NewPocketRepository creates the gorm-backed pocket store.
func NewPocketRepository(db *gorm.DB) repository.PocketRepository {
	return &pocketRepository{db: db}
}

func (r *pocketRepository) Create(ctx context.Context, p *domain.FinancialPocket) error {
	m := Pocket{
		Model:        gorm.Model{CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Type:         string(p.Type),
		GoalAmount:   p.GoalAmount,
		LockEndDate:  p.LockEndDate,
		SourceCardID: p.SourceCardID,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *pocketRepository) Get(ctx context.Context, id uuid.UUID) (*domain.FinancialPocket, error) {
	var m Pocket
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("pocket", id)
		}
		return nil, result.Error
	}
	return m.toDomain(), nil
}

func (r *pocketRepository) List(ctx context.Context) ([]*domain.FinancialPocket, error) {
	var ms []*Pocket
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&ms)
	if result.Error != nil {
		return nil, result.Error
	}
	ps := make([]*domain.FinancialPocket, 0, len(ms))
	for _, m := range ms {
		ps = append(ps, m.toDomain())
	}
	return ps, nil
}

func (r *pocketRepository) Update(ctx context.Context, id uuid.UUID, update dto.PocketUpdate) error {
	cols := map[string]any{}
	if update.Name != nil {
		cols["name"] = *update.Name
	}
	if update.Description != nil {
		cols["description"] = *update.Description
	}
	if update.GoalAmount != nil {
		cols["goal_amount"] = *update.GoalAmount
	}
	if update.LockEndDate != nil {
		cols["lock_end_date"] = *update.LockEndDate
	}
	if update.SourceCardID != nil {
		cols["source_card_id"] = *update.SourceCardID
	}
	return applyUpdate(r.db.WithContext(ctx).Model(&Pocket{}), id, "pocket", cols)
}

func (r *pocketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Pocket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("pocket", id)
	}
	return nil
}

func (m *Pocket) toDomain() *domain.FinancialPocket {
	return &domain.FinancialPocket{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Type:         domain.PocketType(m.Type),
		GoalAmount:   m.GoalAmount,
		LockEndDate:  m.LockEndDate,
		SourceCardID: m.SourceCardID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// applyUpdate writes the set columns and reports a missing row as not found.
// An empty update is a no-op rather than an error so callers can pass a DTO
// with nothing set.
func applyUpdate(model *gorm.DB, id uuid.UUID, entity string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	cols["updated_at"] = time.Now()
	result := model.Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(entity, id)
	}
	return nil
}
