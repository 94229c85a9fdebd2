package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/receituario-api/internal/application/auth"
	"github.com/jhoicas/receituario-api/internal/application/documents"
	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/application/signature"
	"github.com/jhoicas/receituario-api/internal/infrastructure/govbr"
	"github.com/jhoicas/receituario-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/receituario-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/receituario-api/internal/interfaces/http"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "receituario-test"
	testExpMin    = 60
)

// testServer app completa sobre el store en memoria, el renderer real y el proveedor sandbox.
type testServer struct {
	app     *fiber.App
	authUC  *auth.AuthUseCase
	store   *memory.Store
	sandbox *govbr.SandboxProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	docRepo := memory.NewDocumentRepository(store)
	renderer := infrapdf.NewMarotoRenderer()
	sandbox := govbr.NewSandboxProvider("http://localhost:8080")

	authUC := auth.NewAuthUseCase(userRepo, auth.Config{
		Secret:       testJWTSecret,
		ExpMinutes:   testExpMin,
		Issuer:       testIssuer,
		PasswordCost: bcrypt.MinCost,
	})
	coord := signature.NewCoordinator(docRepo, renderer, sandbox, "http://localhost:8080/api/signature/callback", zerolog.Nop())

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		DocumentUC:  documents.NewDocumentUseCase(docRepo, renderer),
		Coordinator: coord,
		Sandbox:     sandbox,
	})
	return &testServer{app: app, authUC: authUC, store: store, sandbox: sandbox}
}

// do envía la petición; body se serializa a JSON si no es nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// register crea un usuario y devuelve su token.
func (s *testServer) register(t *testing.T, cpf, crm, role string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     "Dra. Ana Souza",
		CPF:      cpf,
		CRM:      crm,
		Password: "segredo123",
		Role:     role,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
