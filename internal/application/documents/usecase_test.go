package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/receituario-api/internal/application/documents"
	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/application/ports"
	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/infrastructure/memory"
)

type stubRenderer struct {
	last ports.RenderInput
}

func (s *stubRenderer) Render(_ context.Context, in ports.RenderInput) ([]byte, error) {
	s.last = in
	return []byte("%PDF-1.3 stub"), nil
}

var (
	ana   = &entity.User{ID: "u-ana", Name: "Dra. Ana Souza", CRM: "CRM/SP 123456"}
	bruno = &entity.User{ID: "u-bruno", Name: "Dr. Bruno Lima", CRM: "CRM/RJ 777"}
)

func newUseCase() (*documents.DocumentUseCase, *stubRenderer) {
	r := &stubRenderer{}
	return documents.NewDocumentUseCase(memory.NewDocumentRepository(memory.NewStore()), r), r
}

func prescription() dto.CreateDocumentRequest {
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

func TestCreate_OK(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Create(context.Background(), ana, prescription())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.DocumentStatusDraft, out.Status)
	assert.Equal(t, ana.ID, out.UserID)
	assert.Nil(t, out.SignedAt)
	require.NotNil(t, out.Content)
	assert.Equal(t, "Dipirona 500mg - 1 comprimido a cada 6h", *out.Content)
	require.NotNil(t, out.PatientInfo.BirthDate)
	assert.Equal(t, time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC), *out.PatientInfo.BirthDate)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	cases := map[string]func(*dto.CreateDocumentRequest){
		"tipo desconocido": func(r *dto.CreateDocumentRequest) { r.Type = "invoice" },
		"tipo vacío":       func(r *dto.CreateDocumentRequest) { r.Type = "" },
		"contenido vacío":  func(r *dto.CreateDocumentRequest) { r.Content = "   " },
		"fecha nacimiento": func(r *dto.CreateDocumentRequest) { r.PatientInfo.BirthDate = "17/05/1980" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := prescription()
			mutate(&in)
			_, err := uc.Create(ctx, ana, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGet_AislamientoPorDueño(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, ana, prescription())
	require.NoError(t, err)

	got, err := uc.Get(ctx, ana, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.Get(ctx, bruno, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "documento ajeno se ve como inexistente")

	_, err = uc.Get(ctx, ana, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_SinContenidoYMasRecientesPrimero(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, ana, prescription())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	cert := prescription()
	cert.Type = entity.DocumentTypeCertificate
	second, err := uc.Create(ctx, ana, cert)
	require.NoError(t, err)
	_, err = uc.Create(ctx, bruno, prescription())
	require.NoError(t, err)

	list, err := uc.List(ctx, ana)
	require.NoError(t, err)
	require.Equal(t, 2, list.Results)
	assert.Equal(t, second.ID, list.Documents[0].ID)
	assert.Equal(t, first.ID, list.Documents[1].ID)
	for _, d := range list.Documents {
		assert.Nil(t, d.Content)
	}

	empty, err := uc.List(ctx, &entity.User{ID: "sin-docs"})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Results)
	assert.NotNil(t, empty.Documents)
}

func TestPDF(t *testing.T) {
	uc, r := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, ana, prescription())
	require.NoError(t, err)

	pdf, name, err := uc.PDF(ctx, ana, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "prescription-"+created.ID+".pdf", name)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "Receituário", r.last.Title)
	assert.Equal(t, "Dra. Ana Souza", r.last.ProfessionalName)
	assert.Equal(t, "João Pereira", r.last.PatientName)

	_, _, err = uc.PDF(ctx, bruno, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplate(t *testing.T) {
	uc, _ := newUseCase()

	txt, err := uc.Template(entity.DocumentTypeExamRequest, documents.TemplatePatient{
		Name:      "João Pereira",
		BirthDate: "1980-05-17",
	})
	require.NoError(t, err)
	assert.Contains(t, txt, "Paciente: João Pereira")
	assert.Contains(t, txt, "CPF: [CPF do Paciente]")
	assert.Contains(t, txt, "Data Nasc.: 17/05/1980")

	txt, err = uc.Template(entity.DocumentTypeCertificate, documents.TemplatePatient{})
	require.NoError(t, err)
	assert.Contains(t, txt, "Atesto para os devidos fins")

	_, err = uc.Template("invoice", documents.TemplatePatient{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
