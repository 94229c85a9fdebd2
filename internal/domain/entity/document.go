package entity

import "time"

// Tipos de documento clínico.
const (
	DocumentTypePrescription = "prescription"
	DocumentTypeCertificate  = "certificate"
	DocumentTypeExamRequest  = "exam-request"
)

// Estados del ciclo de firma.
const (
	DocumentStatusDraft            = "draft"             // Creado por el profesional
	DocumentStatusPendingSignature = "pending-signature" // Solicitud aceptada por el proveedor
	DocumentStatusSigned           = "signed"            // Confirmado por el proveedor (terminal)
	DocumentStatusExpired          = "expired"           // Declarado en el esquema; ninguna operación lo asigna
)

// ValidDocumentType indica si t pertenece al enum de tipos.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypePrescription, DocumentTypeCertificate, DocumentTypeExamRequest:
		return true
	}
	return false
}

// DocumentTitle devuelve el título impreso en el PDF para cada tipo.
func DocumentTitle(t string) string {
	switch t {
	case DocumentTypePrescription:
		return "Receituário"
	case DocumentTypeCertificate:
		return "Atestado Médico"
	case DocumentTypeExamRequest:
		return "Solicitação de Exame"
	default:
		return "Documento"
	}
}

// PatientInfo datos del paciente embebidos en el documento.
type PatientInfo struct {
	Name      string
	CPF       string
	BirthDate *time.Time
}

// Document representa una receta, atestado o solicitud de examen.
// UserID es inmutable tras la creación; SignatureToken solo lo escribe el coordinador de firma.
type Document struct {
	ID             string
	Type           string
	Content        string
	Status         string
	SignatureToken string
	SignedAt       *time.Time
	UserID         string
	Patient        PatientInfo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AwaitingSignature indica si el documento admite una (nueva) solicitud de firma.
func (d *Document) AwaitingSignature() bool {
	return d.Status == DocumentStatusDraft || d.Status == DocumentStatusPendingSignature
}
