// AuthRoutes registers authentication endpoints.
//
// Routes:
//   - POST /auth/login    : Exchange email and password for a JWT.
//   - POST /auth/register : Create a back-office user.

package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/lumenworks/studiobooks/pkg/domain"
	authsvc "github.com/lumenworks/studiobooks/pkg/service/auth"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Member"`
}

// UserDTO is the API representation of a back-office user. The password hash
// never leaves the server.
type UserDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ToUserDTO(u *domain.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

func AuthRoutes(app *fiber.App, svc *authsvc.Service) {
	app.Post("/auth/login", Login(svc))
	app.Post("/auth/register", Register(svc))
}

// Login exchanges credentials for a signed token.
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if err != nil {
			return nil
		}
		token, user, err := svc.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			log.Warnf("Login failed for %s: %v", input.Email, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Login failed", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Login successful", Data: fiber.Map{
			"token": token,
			"user":  ToUserDTO(user),
		}})
	}
}

// Register creates a staff user.
func Register(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterRequest](c)
		if err != nil {
			return nil
		}
		role := domain.RoleMember
		if input.Role != "" {
			role = domain.UserRole(input.Role)
		}
		user, err := svc.Register(c.UserContext(), input.FullName, input.Email, input.Password, role)
		if err != nil {
			log.Errorf("Failed to register user: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to register user", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "User registered", Data: ToUserDTO(user)})
	}
}
