package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingClientName is returned when a client has no name.
var ErrMissingClientName = errors.New("client name is required")

// ClientStatus tracks the relationship stage with a client.
type ClientStatus string

// Client relationship stages.
const (
	ClientLead     ClientStatus = "Lead"
	ClientActive   ClientStatus = "Active"
	ClientInactive ClientStatus = "Inactive"
	ClientLost     ClientStatus = "Lost"
)

// Client is a customer of the studio. PortalAccessID is the opaque key a
// client uses to reach their self-service portal; it grants read-only access
// and is never parsed for structure.
type Client struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	Instagram      string
	Since          time.Time
	Status         ClientStatus
	PortalAccessID uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient creates a client in the Lead stage with a fresh portal access id.
func NewClient(name, email, phone string) (*Client, error) {
	if name == "" {
		return nil, ErrMissingClientName
	}
	now := time.Now()
	return &Client{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		Phone:          phone,
		Since:          now,
		Status:         ClientLead,
		PortalAccessID: uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Activate moves a lead to the active stage. Called when the client books
// their first project; a no-op for clients already past the lead stage.
func (c *Client) Activate() {
	if c.Status == ClientLead {
		c.Status = ClientActive
		c.UpdatedAt = time.Now()
	}
}
