// TreasuryRoutes registers card and pocket endpoints. Balances are derived
// from the transaction log on every read and never stored.
//
// Routes:
//   - POST   /cards               : Register a card account.
//   - GET    /cards               : List cards with derived balances.
//   - GET    /cards/:id           : Fetch one card.
//   - GET    /cards/:id/balance   : Derived signed balance (may be negative).
//   - DELETE /cards/:id           : Remove a card.
//   - POST   /pockets             : Create a financial pocket.
//   - GET    /pockets             : List pockets with derived amounts.
//   - GET    /pockets/:id         : Fetch one pocket.
//   - GET    /pockets/:id/balance : Derived pocket amount.
//   - PATCH  /pockets/:id         : Partially update a pocket.
//   - DELETE /pockets/:id         : Remove a pocket.

package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/middleware"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	treasurysvc "github.com/lumenworks/studiobooks/pkg/service/treasury"
)

type CreateCardRequest struct {
	HolderName string `json:"holder_name" validate:"required"`
	Bank       string `json:"bank"`
	Type       string `json:"type" validate:"required,oneof=Debit Credit Cash"`
	LastDigits string `json:"last_digits" validate:"omitempty,len=4,numeric"`
}

type CreatePocketRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=Saving Locked ExpenseBudget RewardPool"`
}

type UpdatePocketRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	GoalAmount   *int64     `json:"goal_amount" validate:"omitempty,gte=0"`
	LockEndDate  *time.Time `json:"lock_end_date"`
	SourceCardID *uuid.UUID `json:"source_card_id"`
}

func TreasuryRoutes(app *fiber.App, svc *treasurysvc.Service, ledger *ledgersvc.Service, cfg *config.App) {
	app.Post("/cards", middleware.JwtProtected(cfg.Jwt), CreateCard(svc))
	app.Get("/cards", middleware.JwtProtected(cfg.Jwt), ListCards(svc))
	app.Get("/cards/:id", middleware.JwtProtected(cfg.Jwt), GetCard(svc))
	app.Get("/cards/:id/balance", middleware.JwtProtected(cfg.Jwt), GetCardBalance(ledger))
	app.Delete("/cards/:id", middleware.JwtProtected(cfg.Jwt), DeleteCard(svc))

	app.Post("/pockets", middleware.JwtProtected(cfg.Jwt), CreatePocket(svc))
	app.Get("/pockets", middleware.JwtProtected(cfg.Jwt), ListPockets(svc))
	app.Get("/pockets/:id", middleware.JwtProtected(cfg.Jwt), GetPocket(svc))
	app.Get("/pockets/:id/balance", middleware.JwtProtected(cfg.Jwt), GetPocketBalance(ledger))
	app.Patch("/pockets/:id", middleware.JwtProtected(cfg.Jwt), UpdatePocket(svc))
	app.Delete("/pockets/:id", middleware.JwtProtected(cfg.Jwt), DeletePocket(svc))
}

func CreateCard(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateCardRequest](c)
		if err != nil {
			return nil
		}
		card, err := svc.CreateCard(c.UserContext(), input.HolderName, input.Bank, domain.CardType(input.Type), input.LastDigits)
		if err != nil {
			log.Errorf("Failed to create card: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create card", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Card created", Data: card})
	}
}

func ListCards(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cards, err := svc.ListCards(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list cards: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list cards", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Cards fetched", Data: cards})
	}
}

func GetCard(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid card ID", err.Error())
		}
		card, err := svc.GetCard(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch card %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch card", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Card fetched", Data: card})
	}
}

// GetCardBalance returns a card's signed balance. Overdrafts are reported as
// negative numbers, never clamped.
func GetCardBalance(ledger *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid card ID", err.Error())
		}
		balance, err := ledger.CardBalance(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to compute balance for card %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to compute balance", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Balance computed", Data: fiber.Map{"balance": balance}})
	}
}

func DeleteCard(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid card ID", err.Error())
		}
		if err := svc.DeleteCard(c.UserContext(), id); err != nil {
			log.Errorf("Failed to delete card %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to delete card", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Card deleted"})
	}
}

func CreatePocket(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreatePocketRequest](c)
		if err != nil {
			return nil
		}
		p, err := svc.CreatePocket(c.UserContext(), input.Name, input.Description, domain.PocketType(input.Type))
		if err != nil {
			log.Errorf("Failed to create pocket: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create pocket", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Pocket created", Data: p})
	}
}

func ListPockets(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := svc.ListPockets(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list pockets: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list pockets", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Pockets fetched", Data: ps})
	}
}

func GetPocket(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid pocket ID", err.Error())
		}
		p, err := svc.GetPocket(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch pocket %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch pocket", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Pocket fetched", Data: p})
	}
}

func GetPocketBalance(ledger *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid pocket ID", err.Error())
		}
		amount, err := ledger.PocketBalance(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to compute balance for pocket %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to compute balance", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Balance computed", Data: fiber.Map{"balance": amount}})
	}
}

func UpdatePocket(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid pocket ID", err.Error())
		}
		input, err := BindAndValidate[UpdatePocketRequest](c)
		if err != nil {
			return nil
		}
		update := dto.PocketUpdate{
			Name:         input.Name,
			Description:  input.Description,
			GoalAmount:   input.GoalAmount,
			LockEndDate:  input.LockEndDate,
			SourceCardID: input.SourceCardID,
		}
		if err := svc.UpdatePocket(c.UserContext(), id, update); err != nil {
			log.Errorf("Failed to update pocket %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to update pocket", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Pocket updated"})
	}
}

func DeletePocket(svc *treasurysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid pocket ID", err.Error())
		}
		if err := svc.DeletePocket(c.UserContext(), id); err != nil {
			log.Errorf("Failed to delete pocket %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to delete pocket", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Pocket deleted"})
	}
}
