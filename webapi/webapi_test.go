package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/internal/memrepo"
	"github.com/lumenworks/studiobooks/pkg/config"
	authsvc "github.com/lumenworks/studiobooks/pkg/service/auth"
	clientsvc "github.com/lumenworks/studiobooks/pkg/service/client"
	contractsvc "github.com/lumenworks/studiobooks/pkg/service/contract"
	ledgersvc "github.com/lumenworks/studiobooks/pkg/service/ledger"
	portalsvc "github.com/lumenworks/studiobooks/pkg/service/portal"
	projectsvc "github.com/lumenworks/studiobooks/pkg/service/project"
	teamsvc "github.com/lumenworks/studiobooks/pkg/service/team"
	treasurysvc "github.com/lumenworks/studiobooks/pkg/service/treasury"
	"github.com/lumenworks/studiobooks/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.App{
		Jwt:       config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: config.RateLimit{MaxRequests: 1000, Window: time.Second},
		Ledger:    config.Ledger{Currency: "IDR", ContractPrefix: "SB"},
	}
	store := memrepo.New()
	logger := slog.Default()
	ledger := ledgersvc.New(store, logger)
	svcs := webapi.Services{
		Auth:      authsvc.New(store, cfg.Jwt, logger),
		Ledger:    ledger,
		Clients:   clientsvc.New(store, logger),
		Projects:  projectsvc.New(store, logger),
		Treasury:  treasurysvc.New(store, logger),
		Team:      teamsvc.New(store, ledger, logger),
		Contracts: contractsvc.New(store, cfg.Ledger.ContractPrefix, logger),
		Portal:    portalsvc.New(store, logger),
	}
	return webapi.NewApp(cfg, svcs)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"full_name": "Admin",
		"email":     "admin@example.com",
		"password":  "correct horse",
		"role":      "Admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "admin@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestProtectedRoutesRequireJWT(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/transactions", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/clients", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProjectPaymentLifecycle(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, http.MethodPost, "/clients", token, fiber.Map{
		"name":  "Dina",
		"email": "dina@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	clientID := decodeData(t, resp)["ID"].(string)

	resp = doJSON(t, app, http.MethodPost, "/projects", token, fiber.Map{
		"name":       "Dina Wedding",
		"client_id":  clientID,
		"total_cost": 12000000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := decodeData(t, resp)["ID"].(string)

	resp = doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
		"description": "wedding deposit",
		"amount":      6000000,
		"type":        "Income",
		"project_id":  projectID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/projects/"+projectID+"/financials", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fin := decodeData(t, resp)
	assert.EqualValues(t, 6000000, fin["amount_paid"])
	assert.Equal(t, "DepositPaid", fin["payment_status"])

	resp = doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
		"description": "final payment",
		"amount":      6000000,
		"type":        "Income",
		"project_id":  projectID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/projects/"+projectID+"/financials", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fin = decodeData(t, resp)
	assert.Equal(t, "PaidInFull", fin["payment_status"])
}

func TestRecordTransaction_RejectsInvalid(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := login(t, app)

	// Pocket reference without a flow direction.
	resp := doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
		"description": "ambiguous",
		"amount":      100000,
		"type":        "Expense",
		"pocket_id":   uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing amount fails request validation.
	resp = doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
		"description": "no amount",
		"type":        "Expense",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuditEndpointReportsClean(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, http.MethodPost, "/cards", token, fiber.Map{
		"holder_name": "Studio",
		"bank":        "BCA",
		"type":        "Debit",
		"last_digits": "1234",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cardID := decodeData(t, resp)["ID"].(string)

	resp = doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
		"description": "gear rental",
		"amount":      1500000,
		"type":        "Expense",
		"card_id":     cardID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/ledger/audit", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, true, data["clean"])

	resp = doJSON(t, app, http.MethodGet, "/cards/"+cardID+"/balance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, -1500000, decodeData(t, resp)["balance"])
}

func TestClientPortalIsPublic(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, http.MethodPost, "/clients", token, fiber.Map{"name": "Dina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	accessID := decodeData(t, resp)["PortalAccessID"].(string)

	resp = doJSON(t, app, http.MethodGet, "/portal/client/"+accessID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/portal/client/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSalaryFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, http.MethodPost, "/clients", token, fiber.Map{"name": "Dina"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	clientID := decodeData(t, resp)["ID"].(string)

	resp = doJSON(t, app, http.MethodPost, "/projects", token, fiber.Map{
		"name":       "Dina Wedding",
		"client_id":  clientID,
		"total_cost": 12000000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := decodeData(t, resp)["ID"].(string)

	resp = doJSON(t, app, http.MethodPost, "/team", token, fiber.Map{
		"name":         "Bimo",
		"role":         "Editor",
		"standard_fee": 800000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	memberID := decodeData(t, resp)["ID"].(string)

	// Paying before assignment is rejected.
	salaryPath := fmt.Sprintf("/team/%s/projects/%s/salary", memberID, projectID)
	resp = doJSON(t, app, http.MethodPost, salaryPath, token, fiber.Map{"amount": 800000})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/projects/"+projectID+"/team", token, fiber.Map{
		"team_member_id": memberID,
		"fee":            800000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, salaryPath, token, fiber.Map{"amount": 800000})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/projects/"+projectID+"/team", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Paid", envelope.Data[0]["Status"])
}
