package http_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/infrastructure/memory"
)

func prescriptionBody() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		Type:    entity.DocumentTypePrescription,
		Content: "Dipirona 500mg - 1 comprimido a cada 6h",
		PatientInfo: dto.PatientInfoRequest{
			Name:      "João Pereira",
			CPF:       "111.222.333-44",
			BirthDate: "1980-05-17",
		},
	}
}

func (s *testServer) createDocument(t *testing.T, token string) dto.DocumentResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/documents", token, prescriptionBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.DocumentEnvelope](t, resp).Document
}

func TestAuth_RegistroLoginYMe(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "123.456.789-09", "CRM/SP 123456", "")

	resp := srv.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{CPF: "123.456.789-09", Password: "segredo123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.AuthResponse](t, resp)
	assert.NotEmpty(t, login.Token)

	resp = srv.do(t, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserEnvelope](t, resp)
	assert.Equal(t, "CRM/SP 123456", me.User.CRM)
}

func TestAuth_Errores(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "123.456.789-09", "CRM/SP 123456", "")

	// CPF duplicado → 400 con status fail
	resp := srv.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Outro", CPF: "123.456.789-09", CRM: "CRM/RJ 9", Password: "segredo123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, dto.StatusFail, errBody.Status)
	assert.Equal(t, "CONFLICT", errBody.Code)

	// CRM mal formado
	resp = srv.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Outro", CPF: "987.654.321-00", CRM: "123", Password: "segredo123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	// Password incorrecto
	resp = srv.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{CPF: "123.456.789-09", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Body no JSON
	req := srv.do(t, http.MethodPost, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, req.StatusCode)
	req.Body.Close()
}

func TestAdmin_ListUsers(t *testing.T) {
	srv := newTestServer(t)
	adminTok := srv.register(t, "123.456.789-09", "CRM/SP 1", entity.RoleAdmin)
	profTok := srv.register(t, "987.654.321-00", "CRM/RJ 2", "")

	resp := srv.do(t, http.MethodGet, "/api/admin/users", profTok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = srv.do(t, http.MethodGet, "/api/admin/users", adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.UserListResponse](t, resp)
	assert.Equal(t, 2, list.Results)
}

func TestDocuments_CrearListarObtener(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")
	otherTok := srv.register(t, "987.654.321-00", "CRM/RJ 2", "")

	created := srv.createDocument(t, tok)
	assert.Equal(t, entity.DocumentStatusDraft, created.Status)
	require.NotNil(t, created.Content)

	resp := srv.do(t, http.MethodGet, "/api/documents", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(raw), `"results":1`)
	assert.NotContains(t, string(raw), `"content"`, "el listado omite el contenido")

	resp = srv.do(t, http.MethodGet, "/api/documents/"+created.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.DocumentEnvelope](t, resp).Document
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "João Pereira", got.PatientInfo.Name)

	resp = srv.do(t, http.MethodGet, "/api/documents/"+created.ID, otherTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = srv.do(t, http.MethodGet, "/api/documents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestDocuments_TipoInvalido(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")

	body := prescriptionBody()
	body.Type = "invoice"
	resp := srv.do(t, http.MethodPost, "/api/documents", tok, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDocuments_PDFDeBorrador(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")
	created := srv.createDocument(t, tok)

	resp := srv.do(t, http.MethodGet, "/api/documents/"+created.ID+"/pdf", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=prescription-"+created.ID+".pdf", resp.Header.Get("Content-Disposition"))

	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestDocuments_Template(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")

	resp := srv.do(t, http.MethodGet, "/api/documents/templates/certificate?name=Jo%C3%A3o", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tpl := decode[dto.TemplateResponse](t, resp)
	assert.Equal(t, "Atestado Médico", tpl.Title)
	assert.True(t, strings.HasPrefix(tpl.Content, "Paciente: João"))

	resp = srv.do(t, http.MethodGet, "/api/documents/templates/xyz", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSignature_FlujoCompletoPorCallback(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")
	created := srv.createDocument(t, tok)

	resp := srv.do(t, http.MethodPost, "/api/signature/"+created.ID+"/request", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ticket := decode[dto.SignatureRequestResponse](t, resp)
	assert.NotEmpty(t, ticket.QRCode)
	assert.NotEmpty(t, ticket.SignatureURL)

	stored, err := memory.NewDocumentRepository(srv.store).GetByIDAndOwner(context.Background(), created.ID, created.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.DocumentStatusPendingSignature, stored.Status)
	require.NotEmpty(t, stored.SignatureToken)

	resp = srv.do(t, http.MethodGet, "/api/signature/"+created.ID+"/verify", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", decode[dto.SignatureVerifyResponse](t, resp).DocumentStatus)

	resp = srv.do(t, http.MethodPost, "/api/signature/callback", "", dto.SignatureCallbackRequest{Token: stored.SignatureToken, Status: "signed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", decode[dto.StatusResponse](t, resp).Status)

	resp = srv.do(t, http.MethodGet, "/api/documents/"+created.ID, tok, nil)
	doc := decode[dto.DocumentEnvelope](t, resp).Document
	assert.Equal(t, entity.DocumentStatusSigned, doc.Status)
	require.NotNil(t, doc.SignedAt)

	// Firmado: request y verify responden 404.
	resp = srv.do(t, http.MethodPost, "/api/signature/"+created.ID+"/request", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	resp = srv.do(t, http.MethodGet, "/api/signature/"+created.ID+"/verify", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSignature_SandboxSignYVerify(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")
	created := srv.createDocument(t, tok)

	resp := srv.do(t, http.MethodPost, "/api/signature/"+created.ID+"/request", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ticket := decode[dto.SignatureRequestResponse](t, resp)

	path := strings.TrimPrefix(ticket.SignatureURL, "http://localhost:8080")
	resp = srv.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = srv.do(t, http.MethodGet, "/api/documents/"+created.ID, tok, nil)
	assert.Equal(t, entity.DocumentStatusSigned, decode[dto.DocumentEnvelope](t, resp).Document.Status)
}

func TestSignature_CallbackErrores(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodPost, "/api/signature/callback", "", dto.SignatureCallbackRequest{Token: "desconocido", Status: "signed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = srv.do(t, http.MethodPost, "/api/signature/callback", "", dto.SignatureCallbackRequest{Status: "signed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSignature_DocumentoAjeno(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")
	otherTok := srv.register(t, "987.654.321-00", "CRM/RJ 2", "")
	created := srv.createDocument(t, tok)

	resp := srv.do(t, http.MethodPost, "/api/signature/"+created.ID+"/request", otherTok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDocuments_IDMalformadoEs404(t *testing.T) {
	srv := newTestServer(t)
	tok := srv.register(t, "123.456.789-09", "CRM/SP 1", "")

	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/documents/abc"},
		{http.MethodGet, "/api/documents/abc/pdf"},
		{http.MethodPost, "/api/signature/abc/request"},
		{http.MethodGet, "/api/signature/abc/verify"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := srv.do(t, tc.method, tc.path, tok, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestRutaInexistente(t *testing.T) {
	srv := newTestServer(t)
	resp := srv.do(t, http.MethodGet, "/api/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}
