package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lumenworks/studiobooks/pkg/config"
	authsvc "github.com/lumenworks/studiobooks/pkg/service/auth"
	clientsvc "github.com/lumenworks/studiobooks/pkg/service/client"
	contractsvc "github.com/lumenworks/studiobooks/pkg/service/contract"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	portalsvc "github.com/lumenworks/studiobooks/pkg/service/portal"
	projectsvc "github.com/lumenworks/studiobooks/pkg/service/project"
	teamsvc "github.com/lumenworks/studiobooks/pkg/service/team"
	treasurysvc "github.com/lumenworks/studiobooks/pkg/service/treasury"
)

// Services bundles the application services the HTTP layer dispatches to.
type Services struct {
	Auth      *authsvc.Service
	Ledger    *ledgersvc.Service
	Clients   *clientsvc.Service
	Projects  *projectsvc.Service
	Treasury  *treasurysvc.Service
	Team      *teamsvc.Service
	Contracts *contractsvc.Service
	Portal    *portalsvc.Service
}

// NewApp builds the Fiber application with all routes registered. Staff
// routes sit behind JWT auth; the two portal routes are public, keyed by
// unguessable access ids.
func NewApp(cfg *config.App, svcs Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ProblemDetailsJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ProblemDetailsJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("studiobooks is up")
	})

	AuthRoutes(app, svcs.Auth)
	ClientRoutes(app, svcs.Clients, cfg)
	ProjectRoutes(app, svcs.Projects, svcs.Ledger, cfg)
	TransactionRoutes(app, svcs.Ledger, cfg)
	TreasuryRoutes(app, svcs.Treasury, svcs.Ledger, cfg)
	TeamRoutes(app, svcs.Team, svcs.Ledger, cfg)
	ContractRoutes(app, svcs.Contracts, cfg)
	LedgerRoutes(app, svcs.Ledger, cfg)
	PortalRoutes(app, svcs.Portal)

	return app
}
