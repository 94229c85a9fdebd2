package ports

import (
	"context"
	"time"

	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// RenderInput datos que el generador imprime. Solo Content es obligatorio.
type RenderInput struct {
	Title            string
	Content          string
	PatientName      string
	PatientCPF       string
	PatientBirthDate *time.Time
	ProfessionalName string
	ProfessionalCRM  string
	IssuedAt         time.Time
}

// DocumentRenderer genera el PDF de un documento clínico. Sin estado.
type DocumentRenderer interface {
	Render(ctx context.Context, in RenderInput) ([]byte, error)
}

// NewRenderInput arma la entrada del generador a partir del documento y su dueño.
func NewRenderInput(doc *entity.Document, owner *entity.User) RenderInput {
	in := RenderInput{
		Title:            entity.DocumentTitle(doc.Type),
		Content:          doc.Content,
		PatientName:      doc.Patient.Name,
		PatientCPF:       doc.Patient.CPF,
		PatientBirthDate: doc.Patient.BirthDate,
		IssuedAt:         doc.CreatedAt,
	}
	if owner != nil {
		in.ProfessionalName = owner.Name
		in.ProfessionalCRM = owner.CRM
	}
	return in
}
