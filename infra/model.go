package infra

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Persistence models. Derived figures (card balances, pocket amounts, payment
// statuses) are never stored; only the facts that produce them are.

type Transaction struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"not null"`
	Amount      int64     `gorm:"not null"`
	Type        string    `gorm:"type:varchar(10);not null"`
	Category    string
	PocketFlow  string `gorm:"type:varchar(12);not null"`

	ProjectID    *uuid.UUID `gorm:"type:uuid;index"`
	CardID       *uuid.UUID `gorm:"type:uuid;index"`
	PocketID     *uuid.UUID `gorm:"type:uuid;index"`
	TeamMemberID *uuid.UUID `gorm:"type:uuid;index"`
}

type Client struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"not null"`
	Email          string
	Phone          string
	Instagram      string
	Since          time.Time
	Status         string    `gorm:"type:varchar(10);not null"`
	PortalAccessID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
}

type Project struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	ClientID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectType string
	Status      string `gorm:"type:varchar(12);not null"`
	Date        time.Time
	Location    string
	TotalCost   int64 `gorm:"not null"`
}

type Card struct {
	gorm.Model
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	HolderName string    `gorm:"not null"`
	Bank       string
	Type       string `gorm:"type:varchar(10);not null"`
	LastDigits string `gorm:"type:varchar(4)"`
}

type Pocket struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Description  string
	Type         string `gorm:"type:varchar(16);not null"`
	GoalAmount   *int64
	LockEndDate  *time.Time
	SourceCardID *uuid.UUID `gorm:"type:uuid"`
}

type TeamMember struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"not null"`
	Role           string
	Email          string
	Phone          string
	StandardFee    int64
	BankAccount    string
	PortalAccessID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
}

type TeamPayment struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ProjectID    uuid.UUID `gorm:"type:uuid;index;not null"`
	TeamMemberID uuid.UUID `gorm:"type:uuid;index;not null"`
	Fee          int64     `gorm:"not null"`
}

type Contract struct {
	gorm.Model
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ContractNumber  string    `gorm:"uniqueIndex;not null"`
	ClientID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectID       uuid.UUID `gorm:"type:uuid;index;not null"`
	SigningDate     time.Time
	SigningLocation string
	ClientName1     string
	ClientName2     string
	ShootingWindow  string
	Deliverables    string
	PersonnelCount  string
	DeliveryDays    int
}

type User struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	FullName     string
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(10);not null"`
}
