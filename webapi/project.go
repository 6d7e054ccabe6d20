// ProjectRoutes registers project endpoints, including the derived financial
// view and team assignment.
//
// Routes:
//   - POST   /projects                : Book a project for a client.
//   - GET    /projects                : List projects with derived payment state.
//   - GET    /projects/:id            : Fetch one project.
//   - PATCH  /projects/:id            : Partially update a project.
//   - DELETE /projects/:id            : Remove a project.
//   - GET    /projects/:id/financials : Derived income, expense and status.
//   - POST   /projects/:id/team       : Assign a freelancer for a fee.
//   - GET    /projects/:id/team       : List assignments with derived statuses.

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
	projectsvc "github.com/lumenworks/studiobooks/pkg/service/project"
)

type CreateProjectRequest struct {
	Name        string    `json:"name" validate:"required"`
	ClientID    uuid.UUID `json:"client_id" validate:"required"`
	ProjectType string    `json:"project_type"`
	Date        time.Time `json:"date"`
	TotalCost   int64     `json:"total_cost" validate:"gte=0"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	ProjectType *string    `json:"project_type"`
	Status      *string    `json:"status" validate:"omitempty,oneof=Preparing Shooting Editing Revision Done Cancelled"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	TotalCost   *int64     `json:"total_cost" validate:"omitempty,gte=0"`
}

type AssignTeamMemberRequest struct {
	TeamMemberID uuid.UUID `json:"team_member_id" validate:"required"`
	Fee          int64     `json:"fee" validate:"gte=0"`
}

// ProjectFinancialsDTO is the derived payment view of one project. Total cost
// is a stored fact on the project resource; only the derived figures appear
// here.
type ProjectFinancialsDTO struct {
	ProjectID     string `json:"project_id"`
	AmountPaid    int64  `json:"amount_paid"`
	PaymentStatus string `json:"payment_status"`
}

func ProjectRoutes(app *fiber.App, svc *projectsvc.Service, ledger *ledgersvc.Service, cfg *config.App) {
	app.Post("/projects", middleware.JwtProtected(cfg.Jwt), CreateProject(svc))
	app.Get("/projects", middleware.JwtProtected(cfg.Jwt), ListProjects(svc))
	app.Get("/projects/:id", middleware.JwtProtected(cfg.Jwt), GetProject(svc))
	app.Patch("/projects/:id", middleware.JwtProtected(cfg.Jwt), UpdateProject(svc))
	app.Delete("/projects/:id", middleware.JwtProtected(cfg.Jwt), DeleteProject(svc))
	app.Get("/projects/:id/financials", middleware.JwtProtected(cfg.Jwt), GetProjectFinancials(ledger))
	app.Post("/projects/:id/team", middleware.JwtProtected(cfg.Jwt), AssignTeamMember(svc))
	app.Get("/projects/:id/team", middleware.JwtProtected(cfg.Jwt), ListProjectTeam(svc))
}

func CreateProject(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateProjectRequest](c)
		if err != nil {
			return nil
		}
		p, err := svc.Create(c.UserContext(), input.Name, input.ClientID, input.ProjectType, input.Date, input.TotalCost)
		if err != nil {
			log.Errorf("Failed to create project: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create project", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Project created", Data: p})
	}
}

func ListProjects(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := svc.List(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list projects: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list projects", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Projects fetched", Data: ps})
	}
}

func GetProject(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch project %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch project", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Project fetched", Data: p})
	}
}

func UpdateProject(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		input, err := BindAndValidate[UpdateProjectRequest](c)
		if err != nil {
			return nil
		}
		update := dto.ProjectUpdate{
			Name:        input.Name,
			ProjectType: input.ProjectType,
			Date:        input.Date,
			Location:    input.Location,
			TotalCost:   input.TotalCost,
		}
		if input.Status != nil {
			status := domain.ProjectStatus(*input.Status)
			update.Status = &status
		}
		if err := svc.Update(c.UserContext(), id, update); err != nil {
			log.Errorf("Failed to update project %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to update project", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Project updated"})
	}
}

func DeleteProject(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			log.Errorf("Failed to delete project %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to delete project", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Project deleted"})
	}
}

// GetProjectFinancials returns the derived financial view computed from the
// transaction log.
func GetProjectFinancials(ledger *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		fin, err := ledger.ProjectFinancials(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to compute financials for project %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to compute financials", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Financials computed", Data: ProjectFinancialsDTO{
			ProjectID:     id.String(),
			AmountPaid:    fin.AmountPaid,
			PaymentStatus: string(fin.Status),
		}})
	}
}

func AssignTeamMember(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		input, err := BindAndValidate[AssignTeamMemberRequest](c)
		if err != nil {
			return nil
		}
		tp, err := svc.AssignTeamMember(c.UserContext(), id, input.TeamMemberID, input.Fee)
		if err != nil {
			log.Errorf("Failed to assign team member to project %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to assign team member", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Team member assigned", Data: tp})
	}
}

func ListProjectTeam(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid project ID", err.Error())
		}
		tps, err := svc.TeamPayments(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to list team payments for project %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list team payments", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Team payments fetched", Data: tps})
	}
}
