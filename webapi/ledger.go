// LedgerRoutes registers the reconciliation endpoints: a full batch snapshot
// of derived state and an audit of the running tally against a pure
// recomputation.
//
// Routes:
//   - GET /ledger/snapshot : Every derived balance and status, computed in one pass.
//   - GET /ledger/audit    : Discrepancies between the tally and a recompute.

package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/middleware"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
)

func LedgerRoutes(app *fiber.App, svc *ledgersvc.Service, cfg *config.App) {
	app.Get("/ledger/snapshot", middleware.JwtProtected(cfg.Jwt), GetSnapshot(svc))
	app.Get("/ledger/audit", middleware.JwtProtected(cfg.Jwt), GetAudit(svc))
}

// GetSnapshot recomputes every derived figure from the transaction log and
// returns the refreshed entities together.
func GetSnapshot(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, snap, err := svc.Snapshot(c.UserContext())
		if err != nil {
			log.Errorf("Failed to compute snapshot: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to compute snapshot", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Snapshot computed", Data: fiber.Map{
			"projects":      in.Projects,
			"cards":         in.Cards,
			"pockets":       in.Pockets,
			"team_members":  in.TeamMembers,
			"team_payments": in.TeamPayments,
			"reward_ledger": snap.RewardLedger,
		}})
	}
}

// GetAudit compares the running tally with a pure recomputation of the log.
// An empty discrepancy list means the incremental totals are trustworthy.
func GetAudit(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		disc, err := svc.Audit(c.UserContext())
		if err != nil {
			log.Errorf("Failed to run audit: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to run audit", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Audit complete", Data: fiber.Map{
			"clean":         len(disc) == 0,
			"discrepancies": disc,
		}})
	}
}
