// auditctl reconciles the transaction log from the command line: it rebuilds
// the running tally, recomputes every derived balance, and prints either a
// snapshot report or the list of discrepancies.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/lumenworks/studiobooks/infra"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/money"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
)

func main() {
	cmd := "audit"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if err := run(cmd); err != nil {
		log.Fatal(err)
	}
}

func run(cmd string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	ledger := ledgersvc.New(infra.NewUoW(db), slog.Default())

	ctx := context.Background()
	if err := ledger.WarmUp(ctx); err != nil {
		return fmt.Errorf("failed to rebuild tally: %w", err)
	}

	currency := money.Code(cfg.Ledger.Currency)
	switch cmd {
	case "audit":
		return runAudit(ctx, ledger)
	case "snapshot":
		return runSnapshot(ctx, ledger, currency)
	default:
		fmt.Println("Usage: auditctl [audit|snapshot]")
		return nil
	}
}

func runAudit(ctx context.Context, ledger *ledgersvc.Service) error {
	disc, err := ledger.Audit(ctx)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	if len(disc) == 0 {
		color.Green("audit clean: tally matches recomputation")
		return nil
	}
	color.Red("audit found %d discrepancies:", len(disc))
	for _, d := range disc {
		color.Red("  %s", d.String())
	}
	os.Exit(1)
	return nil
}

func runSnapshot(ctx context.Context, ledger *ledgersvc.Service, currency money.Code) error {
	in, snap, err := ledger.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}

	bold := color.New(color.Bold)

	bold.Println("Projects")
	for _, p := range in.Projects {
		fmt.Printf("  %-30s %s of %s (%s)\n",
			p.Name,
			money.Format(p.AmountPaid, currency),
			money.Format(p.TotalCost, currency),
			p.PaymentStatus,
		)
	}

	bold.Println("Cards")
	for _, c := range in.Cards {
		line := fmt.Sprintf("  %-30s %s", c.HolderName, money.Format(c.Balance, currency))
		if c.Balance < 0 {
			color.Red(line)
		} else {
			fmt.Println(line)
		}
	}

	bold.Println("Pockets")
	for _, pk := range in.Pockets {
		fmt.Printf("  %-30s %s (%s)\n", pk.Name, money.Format(pk.Amount, currency), pk.Type)
	}

	bold.Println("Team rewards")
	for _, m := range in.TeamMembers {
		fmt.Printf("  %-30s %s\n", m.Name, money.Format(m.RewardBalance, currency))
	}

	fmt.Printf("%d reward ledger entries, %d team payments\n",
		len(snap.RewardLedger), len(in.TeamPayments))
	return nil
}
