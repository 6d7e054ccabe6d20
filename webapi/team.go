// TeamRoutes registers freelancer endpoints, including the reward ledger and
// salary payment.
//
// Routes:
//   - POST   /team                                : Register a freelancer.
//   - GET    /team                                : List freelancers with reward balances.
//   - GET    /team/:id                            : Fetch one freelancer.
//   - PATCH  /team/:id                            : Partially update a freelancer.
//   - DELETE /team/:id                            : Remove a freelancer.
//   - GET    /team/:id/rewards                    : Reward ledger, newest first.
//   - POST   /team/:id/rewards                    : Grant a reward.
//   - POST   /team/:id/rewards/withdraw           : Withdraw against the balance.
//   - POST   /team/:id/projects/:projectId/salary : Pay the freelancer's fee.

package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/dto"
	"github.com/lumenworks/studiobooks/pkg/middleware"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	teamsvc "github.com/lumenworks/studiobooks/pkg/service/team"
)

type CreateTeamMemberRequest struct {
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role"`
	StandardFee int64  `json:"standard_fee" validate:"gte=0"`
}

type UpdateTeamMemberRequest struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	StandardFee *int64  `json:"standard_fee" validate:"omitempty,gte=0"`
	BankAccount *string `json:"bank_account"`
}

type RewardRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description"`
}

type PaySalaryRequest struct {
	Amount int64      `json:"amount" validate:"required,gt=0"`
	CardID *uuid.UUID `json:"card_id"`
}

func TeamRoutes(app *fiber.App, svc *teamsvc.Service, ledger *ledgersvc.Service, cfg *config.App) {
	app.Post("/team", middleware.JwtProtected(cfg.Jwt), CreateTeamMember(svc))
	app.Get("/team", middleware.JwtProtected(cfg.Jwt), ListTeamMembers(svc))
	app.Get("/team/:id", middleware.JwtProtected(cfg.Jwt), GetTeamMember(svc))
	app.Patch("/team/:id", middleware.JwtProtected(cfg.Jwt), UpdateTeamMember(svc))
	app.Delete("/team/:id", middleware.JwtProtected(cfg.Jwt), DeleteTeamMember(svc))
	app.Get("/team/:id/rewards", middleware.JwtProtected(cfg.Jwt), GetRewardLedger(ledger))
	app.Post("/team/:id/rewards", middleware.JwtProtected(cfg.Jwt), GrantReward(svc))
	app.Post("/team/:id/rewards/withdraw", middleware.JwtProtected(cfg.Jwt), WithdrawReward(svc))
	app.Post("/team/:id/projects/:projectId/salary", middleware.JwtProtected(cfg.Jwt), PaySalary(svc))
}

func CreateTeamMember(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateTeamMemberRequest](c)
		if err != nil {
			return nil
		}
		m, err := svc.Create(c.UserContext(), input.Name, input.Role, input.StandardFee)
		if err != nil {
			log.Errorf("Failed to create team member: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create team member", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Team member created", Data: m})
	}
}

func ListTeamMembers(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ms, err := svc.List(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list team members: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list team members", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Team members fetched", Data: ms})
	}
}

func GetTeamMember(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch team member %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch team member", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Team member fetched", Data: m})
	}
}

func UpdateTeamMember(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		input, err := BindAndValidate[UpdateTeamMemberRequest](c)
		if err != nil {
			return nil
		}
		update := dto.TeamMemberUpdate{
			Name:        input.Name,
			Role:        input.Role,
			Email:       input.Email,
			Phone:       input.Phone,
			StandardFee: input.StandardFee,
			BankAccount: input.BankAccount,
		}
		if err := svc.Update(c.UserContext(), id, update); err != nil {
			log.Errorf("Failed to update team member %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to update team member", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Team member updated"})
	}
}

func DeleteTeamMember(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			log.Errorf("Failed to delete team member %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to delete team member", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Team member deleted"})
	}
}

// GetRewardLedger returns a freelancer's reward entries newest first plus the
// resulting balance.
func GetRewardLedger(ledger *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		entries, balance, err := ledger.RewardLedger(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch reward ledger for %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch reward ledger", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Reward ledger fetched", Data: fiber.Map{
			"entries": entries,
			"balance": balance,
		}})
	}
}

func GrantReward(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		input, err := BindAndValidate[RewardRequest](c)
		if err != nil {
			return nil
		}
		tx, err := svc.GrantReward(c.UserContext(), id, input.Amount, input.Description)
		if err != nil {
			log.Errorf("Failed to grant reward to %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to grant reward", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Reward granted", Data: ToTransactionDTO(tx)})
	}
}

func WithdrawReward(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		input, err := BindAndValidate[RewardRequest](c)
		if err != nil {
			return nil
		}
		tx, err := svc.WithdrawReward(c.UserContext(), id, input.Amount, input.Description)
		if err != nil {
			log.Errorf("Failed to withdraw reward for %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to withdraw reward", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Reward withdrawn", Data: ToTransactionDTO(tx)})
	}
}

// PaySalary records the freelancer-salary expense that flips the assignment
// to Paid.
func PaySalary(svc *teamsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid team member ID", err.Error())
		}
		projectID, err := uuid.Parse(c.Params("projectId"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		input, err := BindAndValidate[PaySalaryRequest](c)
		if err != nil {
			return nil
		}
		tx, err := svc.PaySalary(c.UserContext(), projectID, memberID, input.Amount, input.CardID)
		if err != nil {
			log.Errorf("Failed to pay salary to %s for project %s: %v", memberID, projectID, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to pay salary", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Salary paid", Data: ToTransactionDTO(tx)})
	}
}
