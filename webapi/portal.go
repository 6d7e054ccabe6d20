// PortalRoutes registers the two public portal endpoints. They are keyed by
// unguessable access ids rather than logins, so no JWT protects them; an
// unknown id simply yields 404.
//
// Routes:
//   - GET /portal/client/:accessId     : Client's projects, payment state and contracts.
//   - GET /portal/freelancer/:accessId : Freelancer's assignments and reward ledger.

package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	portalsvc "github.com/lumenworks/studiobooks/pkg/service/portal"
)

func PortalRoutes(app *fiber.App, svc *portalsvc.Service) {
	app.Get("/portal/client/:accessId", ClientPortal(svc))
	app.Get("/portal/freelancer/:accessId", FreelancerPortal(svc))
}

func ClientPortal(svc *portalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessID, err := uuid.Parse(c.Params("accessId"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid access ID", err.Error())
		}
		view, err := svc.ClientPortal(c.UserContext(), accessID)
		if err != nil {
			log.Warnf("Client portal lookup failed: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Portal not found", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Portal fetched", Data: view})
	}
}

func FreelancerPortal(svc *portalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessID, err := uuid.Parse(c.Params("accessId"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid access ID", err.Error())
		}
		view, err := svc.FreelancerPortal(c.UserContext(), accessID)
		if err != nil {
			log.Warnf("Freelancer portal lookup failed: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Portal not found", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Portal fetched", Data: view})
	}
}
