package dto

// Valores de ErrorResponse.Status.
const (
	StatusFail  = "fail"  // error del cliente (4xx)
	StatusError = "error" // error del servidor (5xx)
)

// ErrorResponse cuerpo de error HTTP uniforme.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse respuesta mínima de éxito.
type StatusResponse struct {
	Status string `json:"status"`
}
