package domain_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestTransactionBuilder_Valid(t *testing.T) {
	t.Parallel()
	projectID := uuid.New()
	cardID := uuid.New()

	tx, err := domain.NewTransaction().
		WithDescription("Wedding deposit").
		WithAmount(6000000).
		WithType(domain.TypeIncome).
		WithCategory("deposit").
		WithProject(projectID).
		WithCard(cardID).
		Build()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, projectID, *tx.ProjectID)
	assert.Equal(t, cardID, *tx.CardID)
	assert.Nil(t, tx.PocketID)
	assert.Equal(t, domain.FlowNone, tx.PocketFlow)
}

func TestTransactionBuilder_Invariants(t *testing.T) {
	t.Parallel()

	base := func() *domain.TransactionBuilder {
		return domain.NewTransaction().
			WithDescription("x").
			WithAmount(100).
			WithType(domain.TypeExpense)
	}

	tests := []struct {
		name    string
		build   func() (*domain.Transaction, error)
		wantErr error
	}{
		{
			name:    "zero amount",
			build:   func() (*domain.Transaction, error) { return base().WithAmount(0).Build() },
			wantErr: domain.ErrAmountNotPositive,
		},
		{
			name:    "negative amount",
			build:   func() (*domain.Transaction, error) { return base().WithAmount(-5).Build() },
			wantErr: domain.ErrAmountNotPositive,
		},
		{
			name:    "unknown type",
			build:   func() (*domain.Transaction, error) { return base().WithType("Transfer").Build() },
			wantErr: domain.ErrInvalidTransactionType,
		},
		{
			name:    "empty description",
			build:   func() (*domain.Transaction, error) { return base().WithDescription("").Build() },
			wantErr: domain.ErrMissingDescription,
		},
		{
			name: "pocket without flow",
			build: func() (*domain.Transaction, error) {
				return base().WithPocket(uuid.New(), domain.FlowNone).Build()
			},
			wantErr: domain.ErrPocketWithoutFlow,
		},
		{
			name: "unknown pocket flow",
			build: func() (*domain.Transaction, error) {
				return base().WithPocket(uuid.New(), "Sideways").Build()
			},
			wantErr: domain.ErrInvalidPocketFlow,
		},
		{
			name: "reward grant without team member",
			build: func() (*domain.Transaction, error) {
				return base().WithType(domain.TypeIncome).WithCategory(domain.CategoryRewardGrant).Build()
			},
			wantErr: domain.ErrRewardRequiresTeamMember,
		},
		{
			name: "salary without project",
			build: func() (*domain.Transaction, error) {
				return base().WithCategory(domain.CategoryFreelancerSalary).WithTeamMember(uuid.New()).Build()
			},
			wantErr: domain.ErrSalaryRequiresReferences,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransactionBuilder_DefaultsDate(t *testing.T) {
	t.Parallel()
	tx, err := domain.NewTransaction().
		WithDescription("cash top-up").
		WithAmount(1).
		WithType(domain.TypeIncome).
		Build()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), tx.Date, time.Minute)
}
