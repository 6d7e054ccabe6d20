// ContractRoutes registers contract endpoints. Contract numbers are generated
// server-side, sequential per calendar year.
//
// Routes:
//   - POST  /contracts     : Create a contract for a project.
//   - GET   /contracts     : List contracts.
//   - GET   /contracts/:id : Fetch one contract.
//   - PATCH /contracts/:id : Partially update a contract.

package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/middleware"
	contractsvc "github.com/lumenworks/studiobooks/pkg/service/contract"
)

type CreateContractRequest struct {
	ClientID        uuid.UUID `json:"client_id" validate:"required"`
	ProjectID       uuid.UUID `json:"project_id" validate:"required"`
	SigningDate     time.Time `json:"signing_date"`
	SigningLocation string    `json:"signing_location"`
}

type UpdateContractRequest struct {
	SigningDate     *time.Time `json:"signing_date"`
	SigningLocation *string    `json:"signing_location"`
	ClientName1     *string    `json:"client_name1"`
	ClientName2     *string    `json:"client_name2"`
	ShootingWindow  *string    `json:"shooting_window"`
	Deliverables    *string    `json:"deliverables"`
	PersonnelCount  *string    `json:"personnel_count"`
	DeliveryDays    *int       `json:"delivery_days" validate:"omitempty,gte=0"`
}

func ContractRoutes(app *fiber.App, svc *contractsvc.Service, cfg *config.App) {
	app.Post("/contracts", middleware.JwtProtected(cfg.Jwt), CreateContract(svc))
	app.Get("/contracts", middleware.JwtProtected(cfg.Jwt), ListContracts(svc))
	app.Get("/contracts/:id", middleware.JwtProtected(cfg.Jwt), GetContract(svc))
	app.Patch("/contracts/:id", middleware.JwtProtected(cfg.Jwt), UpdateContract(svc))
}

func CreateContract(svc *contractsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateContractRequest](c)
		if err != nil {
			return nil
		}
		signingDate := input.SigningDate
		if signingDate.IsZero() {
			signingDate = time.Now()
		}
		contract, err := svc.Create(c.UserContext(), input.ClientID, input.ProjectID, signingDate, input.SigningLocation)
		if err != nil {
			log.Errorf("Failed to create contract: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create contract", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Contract created", Data: contract})
	}
}

func ListContracts(svc *contractsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contracts, err := svc.List(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list contracts: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list contracts", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Contracts fetched", Data: contracts})
	}
}

func GetContract(svc *contractsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid contract ID", err.Error())
		}
		contract, err := svc.Get(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch contract %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch contract", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Contract fetched", Data: contract})
	}
}

func UpdateContract(svc *contractsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid contract ID", err.Error())
		}
		input, err := BindAndValidate[UpdateContractRequest](c)
		if err != nil {
			return nil
		}
		update := dto.ContractUpdate{
			SigningDate:     input.SigningDate,
			SigningLocation: input.SigningLocation,
			ClientName1:     input.ClientName1,
			ClientName2:     input.ClientName2,
			ShootingWindow:  input.ShootingWindow,
			Deliverables:    input.Deliverables,
			PersonnelCount:  input.PersonnelCount,
			DeliveryDays:    input.DeliveryDays,
		}
		if err := svc.Update(c.UserContext(), id, update); err != nil {
			log.Errorf("Failed to update contract %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to update contract", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Contract updated"})
	}
}
