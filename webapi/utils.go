package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lumenworks/studiobooks/pkg/domain"
	authsvc "github.com/lumenworks/studiobooks/pkg/service/auth"
	teamsvc "github.com/lumenworks/studiobooks/pkg/service/team"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// ProblemDetailsJSON writes an error response following RFC 9457.
func ProblemDetailsJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain and service errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, authsvc.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, teamsvc.ErrNotAssigned),
		errors.Is(err, teamsvc.ErrRewardExceedsBalance):
		return fiber.StatusUnprocessableEntity
	case isValidationError(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrAmountNotPositive,
		domain.ErrInvalidTransactionType,
		domain.ErrInvalidPocketFlow,
		domain.ErrPocketFlowWithoutPocket,
		domain.ErrPocketWithoutFlow,
		domain.ErrRewardRequiresTeamMember,
		domain.ErrSalaryRequiresReferences,
		domain.ErrMissingDescription,
		domain.ErrMissingClientName,
		domain.ErrMissingProjectName,
		domain.ErrNegativeTotalCost,
		domain.ErrMissingCardHolder,
		domain.ErrMissingPocketName,
		domain.ErrInvalidPocketType,
		domain.ErrMissingTeamMemberName,
		domain.ErrNegativeFee,
		domain.ErrMissingContractNumber,
		domain.ErrMissingEmail,
		domain.ErrWeakPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure it writes the error response itself and
// returns the error so the handler can just return nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}
