package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/application/ports"
	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
)

// DocumentUseCase CRUD de documentos clínicos acotado al usuario dueño.
type DocumentUseCase struct {
	repo     repository.DocumentRepository
	renderer ports.DocumentRenderer
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, renderer ports.DocumentRenderer) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, renderer: renderer}
}

// Create crea el documento en estado draft.
func (uc *DocumentUseCase) Create(ctx context.Context, owner *entity.User, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	docType := strings.TrimSpace(in.Type)
	if !entity.ValidDocumentType(docType) {
		return nil, fmt.Errorf("%w: tipo %q inválido (prescription|certificate|exam-request)", domain.ErrValidation, in.Type)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content es requerido", domain.ErrValidation)
	}
	birth, err := ParseBirthDate(in.PatientInfo.BirthDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &entity.Document{
		ID:      uuid.New().String(),
		Type:    docType,
		Content: in.Content,
		Status:  entity.DocumentStatusDraft,
		UserID:  owner.ID,
		Patient: entity.PatientInfo{
			Name:      strings.TrimSpace(in.PatientInfo.Name),
			CPF:       strings.TrimSpace(in.PatientInfo.CPF),
			BirthDate: birth,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	out := ToDocumentResponse(doc, true)
	return &out, nil
}

// Get devuelve el documento completo del dueño; ErrNotFound si no existe o es ajeno.
func (uc *DocumentUseCase) Get(ctx context.Context, owner *entity.User, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	out := ToDocumentResponse(doc, true)
	return &out, nil
}

// List documentos del dueño, más recientes primero, sin contenido.
func (uc *DocumentUseCase) List(ctx context.Context, owner *entity.User) (*dto.DocumentListResponse, error) {
	docs, err := uc.repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentListResponse{Documents: make([]dto.DocumentResponse, 0, len(docs))}
	for _, d := range docs {
		out.Documents = append(out.Documents, ToDocumentResponse(d, false))
	}
	out.Results = len(out.Documents)
	return out, nil
}

// PDF genera el PDF del contenido actual, en cualquier estado (sirve de vista previa).
// Devuelve los bytes y el nombre de archivo <type>-<id>.pdf.
func (uc *DocumentUseCase) PDF(ctx context.Context, owner *entity.User, id string) ([]byte, string, error) {
	doc, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.Render(ctx, ports.NewRenderInput(doc, owner))
	if err != nil {
		return nil, "", fmt.Errorf("documents: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("%s-%s.pdf", doc.Type, doc.ID), nil
}

func (uc *DocumentUseCase) load(ctx context.Context, owner *entity.User, id string) (*entity.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrValidation)
	}
	doc, err := uc.repo.GetByIDAndOwner(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: ningún documento con ese ID", domain.ErrNotFound)
	}
	return doc, nil
}

// ParseBirthDate acepta "YYYY-MM-DD" (input date del navegador) o RFC3339. Vacío = sin fecha.
func ParseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: birthDate %q inválida, use YYYY-MM-DD", domain.ErrValidation, s)
}

// ToDocumentResponse proyección de salida; el token de firma nunca se incluye.
func ToDocumentResponse(d *entity.Document, withContent bool) dto.DocumentResponse {
	out := dto.DocumentResponse{
		ID:       d.ID,
		Type:     d.Type,
		Status:   d.Status,
		SignedAt: d.SignedAt,
		UserID:   d.UserID,
		PatientInfo: dto.PatientInfoResponse{
			Name:      d.Patient.Name,
			CPF:       d.Patient.CPF,
			BirthDate: d.Patient.BirthDate,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if withContent {
		content := d.Content
		out.Content = &content
	}
	return out
}
