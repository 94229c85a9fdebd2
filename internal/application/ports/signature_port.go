package ports

import "context"

// Estado que el proveedor informa cuando el documento ya fue firmado.
const ProviderStatusSigned = "signed"

// Signer identidad del firmante enviada al proveedor.
type Signer struct {
	CPF  string `json:"cpf"`
	Name string `json:"name"`
}

// SignatureRequest solicitud de firma: PDF en base64, firmante y URL de callback.
type SignatureRequest struct {
	DocumentBase64 string
	Signer         Signer
	CallbackURL    string
}

// SignatureTicket respuesta del proveedor a una solicitud aceptada.
// QRCode y SignatureURL se devuelven al cliente sin transformar.
type SignatureTicket struct {
	Token        string
	QRCode       string
	SignatureURL string
}

// SignatureProvider define el puerto de salida hacia el proveedor de firma digital (gov.br).
// El proveedor es la única autoridad sobre si un documento quedó firmado.
type SignatureProvider interface {
	// RequestSignature registra una solicitud de firma. Sin reintentos.
	RequestSignature(ctx context.Context, req SignatureRequest) (*SignatureTicket, error)
	// SignatureStatus consulta el estado asociado a un token ("signed", "pending", ...).
	SignatureStatus(ctx context.Context, token string) (string, error)
}
