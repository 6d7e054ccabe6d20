// ClientRoutes registers client CRM endpoints. All of them require staff
// authentication.
//
// Routes:
//   - POST   /clients     : Register a client (starts as a lead).
//   - GET    /clients     : List clients.
//   - GET    /clients/:id : Fetch one client.
//   - PATCH  /clients/:id : Partially update a client.
//   - DELETE /clients/:id : Remove a client.

package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/middleware"
	clientsvc "github.com/lumenworks/studiobooks/pkg/service/client"
)

type CreateClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Instagram *string `json:"instagram"`
	Status    *string `json:"status" validate:"omitempty,oneof=Lead Active Inactive Lost"`
}

func ClientRoutes(app *fiber.App, svc *clientsvc.Service, cfg *config.App) {
	app.Post("/clients", middleware.JwtProtected(cfg.Jwt), CreateClient(svc))
	app.Get("/clients", middleware.JwtProtected(cfg.Jwt), ListClients(svc))
	app.Get("/clients/:id", middleware.JwtProtected(cfg.Jwt), GetClient(svc))
	app.Patch("/clients/:id", middleware.JwtProtected(cfg.Jwt), UpdateClient(svc))
	app.Delete("/clients/:id", middleware.JwtProtected(cfg.Jwt), DeleteClient(svc))
}

func CreateClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateClientRequest](c)
		if err != nil {
			return nil
		}
		client, err := svc.Create(c.UserContext(), input.Name, input.Email, input.Phone)
		if err != nil {
			log.Errorf("Failed to create client: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create client", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Client created", Data: client})
	}
}

func ListClients(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clients, err := svc.List(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list clients: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list clients", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Clients fetched", Data: clients})
	}
}

func GetClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid client ID", err.Error())
		}
		client, err := svc.Get(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch client %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch client", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Client fetched", Data: client})
	}
}

func UpdateClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid client ID", err.Error())
		}
		input, err := BindAndValidate[UpdateClientRequest](c)
		if err != nil {
			return nil
		}
		update := dto.ClientUpdate{
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Instagram: input.Instagram,
		}
		if input.Status != nil {
			status := domain.ClientStatus(*input.Status)
			update.Status = &status
		}
		if err := svc.Update(c.UserContext(), id, update); err != nil {
			log.Errorf("Failed to update client %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to update client", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Client updated"})
	}
}

func DeleteClient(svc *clientsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid client ID", err.Error())
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			log.Errorf("Failed to delete client %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to delete client", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Client deleted"})
	}
}
