package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/repository"
	"gorm.io/gorm"
)

type teamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates the gorm-backed team member store.
func NewTeamMemberRepository(db *gorm.DB) repository.TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	row := TeamMember{
		Model:          gorm.Model{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             m.ID,
		Name:           m.Name,
		Role:           m.Role,
		Email:          m.Email,
		Phone:          m.Phone,
		StandardFee:    m.StandardFee,
		BankAccount:    m.BankAccount,
		PortalAccessID: m.PortalAccessID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *teamMemberRepository) Get(ctx context.Context, id uuid.UUID) (*domain.TeamMember, error) {
	var row TeamMember
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("team member", id)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (r *teamMemberRepository) GetByPortalAccessID(ctx context.Context, accessID uuid.UUID) (*domain.TeamMember, error) {
	var row TeamMember
	result := r.db.WithContext(ctx).First(&row, "portal_access_id = ?", accessID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("freelancer portal %s: %w", accessID, domain.ErrNotFound)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (r *teamMemberRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	var rows []*TeamMember
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	ms := make([]*domain.TeamMember, 0, len(rows))
	for _, row := range rows {
		ms = append(ms, row.toDomain())
	}
	return ms, nil
}

func (r *teamMemberRepository) Update(ctx context.Context, id uuid.UUID, update dto.TeamMemberUpdate) error {
	cols := map[string]any{}
	if update.Name != nil {
		cols["name"] = *update.Name
	}
	if update.Role != nil {
		cols["role"] = *update.Role
	}
	if update.Email != nil {
		cols["email"] = *update.Email
	}
	if update.Phone != nil {
		cols["phone"] = *update.Phone
	}
	if update.StandardFee != nil {
		cols["standard_fee"] = *update.StandardFee
	}
	if update.BankAccount != nil {
		cols["bank_account"] = *update.BankAccount
	}
	return applyUpdate(r.db.WithContext(ctx).Model(&TeamMember{}), id, "team member", cols)
}

func (r *teamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("team member", id)
	}
	return nil
}

func (m *TeamMember) toDomain() *domain.TeamMember {
	return &domain.TeamMember{
		ID:             m.ID,
		Name:           m.Name,
		Role:           m.Role,
		Email:          m.Email,
		Phone:          m.Phone,
		StandardFee:    m.StandardFee,
		BankAccount:    m.BankAccount,
		PortalAccessID: m.PortalAccessID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type teamPaymentRepository struct {
	db *gorm.DB
}

// NewTeamPaymentRepository creates the gorm-backed assignment store. Statuses
// are derived from the transaction log, so nothing here writes one.
func NewTeamPaymentRepository(db *gorm.DB) repository.TeamPaymentRepository {
	return &teamPaymentRepository{db: db}
}

func (r *teamPaymentRepository) Create(ctx context.Context, p *domain.TeamProjectPayment) error {
	row := TeamPayment{
		Model:        gorm.Model{CreatedAt: p.CreatedAt, UpdatedAt: p.CreatedAt},
		ID:           p.ID,
		ProjectID:    p.ProjectID,
		TeamMemberID: p.TeamMemberID,
		Fee:          p.Fee,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *teamPaymentRepository) Get(ctx context.Context, id uuid.UUID) (*domain.TeamProjectPayment, error) {
	var row TeamPayment
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("team payment", id)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (r *teamPaymentRepository) List(ctx context.Context) ([]*domain.TeamProjectPayment, error) {
	return r.list(ctx, r.db)
}

func (r *teamPaymentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TeamProjectPayment, error) {
	return r.list(ctx, r.db.Where("project_id = ?", projectID))
}

func (r *teamPaymentRepository) ListByTeamMember(ctx context.Context, teamMemberID uuid.UUID) ([]*domain.TeamProjectPayment, error) {
	return r.list(ctx, r.db.Where("team_member_id = ?", teamMemberID))
}

func (r *teamPaymentRepository) list(ctx context.Context, scope *gorm.DB) ([]*domain.TeamProjectPayment, error) {
	var rows []*TeamPayment
	result := scope.WithContext(ctx).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	ps := make([]*domain.TeamProjectPayment, 0, len(rows))
	for _, row := range rows {
		ps = append(ps, row.toDomain())
	}
	return ps, nil
}

func (m *TeamPayment) toDomain() *domain.TeamProjectPayment {
	return &domain.TeamProjectPayment{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		TeamMemberID: m.TeamMemberID,
		Fee:          m.Fee,
		Status:       domain.TeamPaymentUnpaid,
		CreatedAt:    m.CreatedAt,
	}
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates the gorm-backed contract store.
func NewContractRepository(db *gorm.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	row := Contract{
		Model:           gorm.Model{CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		ID:              c.ID,
		ContractNumber:  c.ContractNumber,
		ClientID:        c.ClientID,
		ProjectID:       c.ProjectID,
		SigningDate:     c.SigningDate,
		SigningLocation: c.SigningLocation,
		ClientName1:     c.ClientName1,
		ClientName2:     c.ClientName2,
		ShootingWindow:  c.ShootingWindow,
		Deliverables:    c.Deliverables,
		PersonnelCount:  c.PersonnelCount,
		DeliveryDays:    c.DeliveryDays,
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("contract number %s: %w", c.ContractNumber, domain.ErrAlreadyExists)
		}
		return result.Error
	}
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var row Contract
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("contract", id)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (r *contractRepository) GetByProject(ctx context.Context, projectID uuid.UUID) (*domain.Contract, error) {
	var row Contract
	result := r.db.WithContext(ctx).First(&row, "project_id = ?", projectID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contract for project %s: %w", projectID, domain.ErrNotFound)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (r *contractRepository) List(ctx context.Context) ([]*domain.Contract, error) {
	var rows []*Contract
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	cs := make([]*domain.Contract, 0, len(rows))
	for _, row := range rows {
		cs = append(cs, row.toDomain())
	}
	return cs, nil
}

func (r *contractRepository) Update(ctx context.Context, id uuid.UUID, update dto.ContractUpdate) error {
	cols := map[string]any{}
	if update.SigningDate != nil {
		cols["signing_date"] = *update.SigningDate
	}
	if update.SigningLocation != nil {
		cols["signing_location"] = *update.SigningLocation
	}
	if update.ClientName1 != nil {
		cols["client_name1"] = *update.ClientName1
	}
	if update.ClientName2 != nil {
		cols["client_name2"] = *update.ClientName2
	}
	if update.ShootingWindow != nil {
		cols["shooting_window"] = *update.ShootingWindow
	}
	if update.Deliverables != nil {
		cols["deliverables"] = *update.Deliverables
	}
	if update.PersonnelCount != nil {
		cols["personnel_count"] = *update.PersonnelCount
	}
	if update.DeliveryDays != nil {
		cols["delivery_days"] = *update.DeliveryDays
	}
	return applyUpdate(r.db.WithContext(ctx).Model(&Contract{}), id, "contract", cols)
}

func (r *contractRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&Contract{}).
		Where("extract(year from signing_date) = ?", year).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (m *Contract) toDomain() *domain.Contract {
	return &domain.Contract{
		ID:              m.ID,
		ContractNumber:  m.ContractNumber,
		ClientID:        m.ClientID,
		ProjectID:       m.ProjectID,
		SigningDate:     m.SigningDate,
		SigningLocation: m.SigningLocation,
		ClientName1:     m.ClientName1,
		ClientName2:     m.ClientName2,
		ShootingWindow:  m.ShootingWindow,
		Deliverables:    m.Deliverables,
		PersonnelCount:  m.PersonnelCount,
		DeliveryDays:    m.DeliveryDays,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the gorm-backed user store.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	row := User{
		Model:        gorm.Model{CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
		}
		return result.Error
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row User
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, notFound("user", id)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row User
	result := r.db.WithContext(ctx).First(&row, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, result.Error
	}
	return row.toDomain(), nil
}

func (m *User) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
