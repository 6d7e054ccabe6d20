// Package dto holds partial-update carriers passed from services to
// repositories. Nil fields mean "leave unchanged"; repositories translate the
// set fields into column updates. Creation always goes through domain
// constructors, so there are no Create DTOs.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/money"
)

// ClientUpdate is a partial update of a client record.
type ClientUpdate struct {
	Name      *string
	Email     *string
	Phone     *string
	Instagram *string
	Status    *domain.ClientStatus
}

// ProjectUpdate is a partial update of a project record. Derived fields
// (amount paid, payment status) are never written through updates.
type ProjectUpdate struct {
	Name        *string
	ProjectType *string
	Status      *domain.ProjectStatus
	Date        *time.Time
	Location    *string
	TotalCost   *money.Amount
}

// TeamMemberUpdate is a partial update of a team member record.
type TeamMemberUpdate struct {
	Name        *string
	Role        *string
	Email       *string
	Phone       *string
	StandardFee *money.Amount
	BankAccount *string
}

// ContractUpdate is a partial update of a contract record.
type ContractUpdate struct {
	SigningDate     *time.Time
	SigningLocation *string
	ClientName1     *string
	ClientName2     *string
	ShootingWindow  *string
	Deliverables    *string
	PersonnelCount  *string
	DeliveryDays    *int
}

// PocketUpdate is a partial update of a pocket record.
type PocketUpdate struct {
	Name         *string
	Description  *string
	GoalAmount   *money.Amount
	LockEndDate  *time.Time
	SourceCardID *uuid.UUID
}
