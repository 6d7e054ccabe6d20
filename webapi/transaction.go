// TransactionRoutes registers the append-only transaction log endpoints.
// There is no update or delete: a recorded transaction is an immutable fact,
// and a mistake is corrected by recording a compensating entry.
//
// Routes:
//   - POST /transactions     : Record a transaction.
//   - GET  /transactions     : List the full log.
//   - GET  /transactions/:id : Fetch one transaction.

package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/middleware"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
)

type RecordTransactionRequest struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description" validate:"required"`
	// Amount is in the smallest currency unit and must be positive; direction
	// comes from Type.
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Type       string `json:"type" validate:"required,oneof=Income Expense"`
	Category   string `json:"category"`
	PocketFlow string `json:"pocket_flow" validate:"omitempty,oneof=Deposit Withdrawal"`

	ProjectID    *uuid.UUID `json:"project_id"`
	CardID       *uuid.UUID `json:"card_id"`
	PocketID     *uuid.UUID `json:"pocket_id"`
	TeamMemberID *uuid.UUID `json:"team_member_id"`
}

// TransactionDTO is the API representation of a transaction.
type TransactionDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category,omitempty"`
	PocketFlow  string `json:"pocket_flow,omitempty"`

	ProjectID    *uuid.UUID `json:"project_id,omitempty"`
	CardID       *uuid.UUID `json:"card_id,omitempty"`
	PocketID     *uuid.UUID `json:"pocket_id,omitempty"`
	TeamMemberID *uuid.UUID `json:"team_member_id,omitempty"`
}

func ToTransactionDTO(tx *domain.Transaction) *TransactionDTO {
	if tx == nil {
		return nil
	}
	return &TransactionDTO{
		ID:           tx.ID.String(),
		Date:         tx.Date.Format(time.RFC3339),
		Description:  tx.Description,
		Amount:       tx.Amount,
		Type:         string(tx.Type),
		Category:     tx.Category,
		PocketFlow:   string(tx.PocketFlow),
		ProjectID:    tx.ProjectID,
		CardID:       tx.CardID,
		PocketID:     tx.PocketID,
		TeamMemberID: tx.TeamMemberID,
	}
}

func ToTransactionDTOs(txs []*domain.Transaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}

func TransactionRoutes(app *fiber.App, svc *ledgersvc.Service, cfg *config.App) {
	app.Post("/transactions", middleware.JwtProtected(cfg.Jwt), RecordTransactionHandler(svc))
	app.Get("/transactions", middleware.JwtProtected(cfg.Jwt), ListTransactions(svc))
	app.Get("/transactions/:id", middleware.JwtProtected(cfg.Jwt), GetTransaction(svc))
}

// RecordTransactionHandler appends one transaction to the log.
func RecordTransactionHandler(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RecordTransactionRequest](c)
		if err != nil {
			return nil
		}
		in := ledgersvc.RecordTransaction{
			Description:  input.Description,
			Amount:       input.Amount,
			Type:         domain.TransactionType(input.Type),
			Category:     input.Category,
			PocketFlow:   domain.PocketFlow(input.PocketFlow),
			ProjectID:    input.ProjectID,
			CardID:       input.CardID,
			PocketID:     input.PocketID,
			TeamMemberID: input.TeamMemberID,
		}
		if input.Date != nil {
			in.Date = *input.Date
		}
		tx, err := svc.RecordTransaction(c.UserContext(), in)
		if err != nil {
			log.Errorf("Failed to record transaction: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to record transaction", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{Status: fiber.StatusCreated, Message: "Transaction recorded", Data: ToTransactionDTO(tx)})
	}
}

// ListTransactions returns the full log in insertion order.
func ListTransactions(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := svc.ListTransactions(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to list transactions", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transactions fetched", Data: ToTransactionDTOs(txs)})
	}
}

// GetTransaction returns one transaction by id.
func GetTransaction(svc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid transaction ID", err.Error())
		}
		tx, err := svc.GetTransaction(c.UserContext(), id)
		if err != nil {
			log.Errorf("Failed to fetch transaction %s: %v", id, err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to fetch transaction", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transaction fetched", Data: ToTransactionDTO(tx)})
	}
}
