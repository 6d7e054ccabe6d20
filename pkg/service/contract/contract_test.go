package contract_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/internal/memrepo"
	"github.com/lumenworks/studiobooks/pkg/domain"
	contractsvc "github.com/lumenworks/studiobooks/pkg/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func seed(t *testing.T, store *memrepo.Store) (*domain.Client, *domain.Project) {
	t.Helper()
	ctx := context.Background()
	c, err := domain.NewClient("Client", "c@example.com", "0812")
	require.NoError(t, err)
	clients, err := store.Clients()
	require.NoError(t, err)
	require.NoError(t, clients.Create(ctx, c))

	p, err := domain.NewProject("Wedding", c.ID, "Wedding", time.Now(), 12000000)
	require.NoError(t, err)
	projects, err := store.Projects()
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))
	return c, p
}

func TestCreate_SequentialNumbering(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := contractsvc.New(store, "SB", slog.Default())
	ctx := context.Background()

	signed := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	year := signed.Year()

	c, p := seed(t, store)
	first, err := svc.Create(ctx, c.ID, p.ID, signed, "Jakarta")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SB/%d/0001", year), first.ContractNumber)

	_, p2 := seed(t, store)
	second, err := svc.Create(ctx, c.ID, p2.ID, signed, "Jakarta")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SB/%d/0002", year), second.ContractNumber)
}

func TestCreate_NumberingResetsPerYear(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := contractsvc.New(store, "SB", slog.Default())
	ctx := context.Background()

	c, p := seed(t, store)
	_, err := svc.Create(ctx, c.ID, p.ID, time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC), "Jakarta")
	require.NoError(t, err)

	_, p2 := seed(t, store)
	next, err := svc.Create(ctx, c.ID, p2.ID, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), "Jakarta")
	require.NoError(t, err)
	assert.Equal(t, "SB/2026/0001", next.ContractNumber)
}

func TestGetByProject(t *testing.T) {
	t.Parallel()
	store := memrepo.New()
	svc := contractsvc.New(store, "SB", slog.Default())
	ctx := context.Background()

	c, p := seed(t, store)
	created, err := svc.Create(ctx, c.ID, p.ID, time.Now(), "Bandung")
	require.NoError(t, err)

	got, err := svc.GetByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByProject(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
