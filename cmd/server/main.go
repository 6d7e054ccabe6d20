package main

import (
	"context"
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"
	"github.com/lumenworks/studiobooks/infra"
	"github.com/lumenworks/studiobooks/pkg/config"
	authsvc "github.com/lumenworks/studiobooks/pkg/service/auth"
	clientsvc "github.com/lumenworks/studiobooks/pkg/service/client"
	contractsvc "github.com/lumenworks/studiobooks/pkg/service/contract"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	portalsvc "github.com/lumenworks/studiobooks/pkg/service/portal"
	projectsvc "github.com/lumenworks/studiobooks/pkg/service/project"
	teamsvc "github.com/lumenworks/studiobooks/pkg/service/team"
	treasurysvc "github.com/lumenworks/studiobooks/pkg/service/treasury"
	"github.com/lumenworks/studiobooks/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	uow := infra.NewUoW(db)

	ledger := ledgersvc.New(uow, logger)
	svcs := webapi.Services{
		Auth:      authsvc.New(uow, cfg.Jwt, logger),
		Ledger:    ledger,
		Clients:   clientsvc.New(uow, logger),
		Projects:  projectsvc.New(uow, logger),
		Treasury:  treasurysvc.New(uow, logger),
		Team:      teamsvc.New(uow, ledger, logger),
		Contracts: contractsvc.New(uow, cfg.Ledger.ContractPrefix, logger),
		Portal:    portalsvc.New(uow, logger),
	}

	app := webapi.NewApp(cfg, svcs)

	// Rebuild the running tally from the log before serving traffic, so the
	// incremental totals start from a consistent state.
	if err := ledger.WarmUp(context.Background()); err != nil {
		return fmt.Errorf("failed to warm up ledger tally: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
