package dto

import "time"

// PatientInfoRequest datos del paciente. BirthDate acepta "YYYY-MM-DD" o RFC3339.
type PatientInfoRequest struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birthDate"`
}

// CreateDocumentRequest entrada para crear un documento clínico.
type CreateDocumentRequest struct {
	Type        string             `json:"type" validate:"required,oneof=prescription certificate exam-request"`
	Content     string             `json:"content" validate:"required"`
	PatientInfo PatientInfoRequest `json:"patientInfo"`
}

// PatientInfoResponse datos del paciente en la salida.
type PatientInfoResponse struct {
	Name      string     `json:"name,omitempty"`
	CPF       string     `json:"cpf,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// DocumentResponse salida de un documento. Content se omite en listados;
// el token de firma nunca se expone.
type DocumentResponse struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Content     *string             `json:"content,omitempty"`
	Status      string              `json:"status"`
	SignedAt    *time.Time          `json:"signedAt"`
	UserID      string              `json:"user"`
	PatientInfo PatientInfoResponse `json:"patientInfo"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// DocumentEnvelope respuesta de un documento individual.
type DocumentEnvelope struct {
	Document DocumentResponse `json:"document"`
}

// DocumentListResponse listado de documentos del usuario.
type DocumentListResponse struct {
	Results   int                `json:"results"`
	Documents []DocumentResponse `json:"documents"`
}

// TemplateResponse texto base pre-llenado para un tipo de documento.
type TemplateResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
