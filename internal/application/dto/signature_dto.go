package dto

// SignatureRequestResponse datos devueltos por el proveedor, sin transformar.
type SignatureRequestResponse struct {
	QRCode       string `json:"qrCode"`
	SignatureURL string `json:"signatureUrl"`
}

// SignatureVerifyResponse estado informado por el proveedor.
type SignatureVerifyResponse struct {
	DocumentStatus string `json:"documentStatus"`
}

// SignatureCallbackRequest cuerpo del webhook del proveedor.
type SignatureCallbackRequest struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}
