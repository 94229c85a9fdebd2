package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/application/ports"
	"github.com/jhoicas/receituario-api/internal/application/signature"
	"github.com/jhoicas/receituario-api/internal/domain"
)

// SignatureHandler maneja el ciclo de firma gov.br.
type SignatureHandler struct {
	coord *signature.Coordinator
}

// NewSignatureHandler construye el handler.
func NewSignatureHandler(coord *signature.Coordinator) *SignatureHandler {
	return &SignatureHandler{coord: coord}
}

// Request godoc
// @Summary      Solicitar firma gov.br
// @Description  Genera el PDF, lo envía al proveedor y deja el documento en pending-signature.
// @Tags         signature
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.SignatureRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/signature/{id}/request [post]
func (h *SignatureHandler) Request(c *fiber.Ctx) error {
	out, err := h.coord.RequestSignature(c.Context(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar estado de la firma
// @Tags         signature
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.SignatureVerifyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/signature/{id}/verify [get]
func (h *SignatureHandler) Verify(c *fiber.Ctx) error {
	out, err := h.coord.VerifySignature(c.Context(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Callback godoc
// @Summary      Webhook del proveedor de firma
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignatureCallbackRequest  true  "token, status"
// @Success      200   {object}  dto.StatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/signature/callback [post]
func (h *SignatureHandler) Callback(c *fiber.Ctx) error {
	var in dto.SignatureCallbackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.coord.Callback(c.Context(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "success"})
}

// sandboxSigner lo implementa *govbr.SandboxProvider.
type sandboxSigner interface {
	Sign(token string) bool
}

// SandboxSign simula la firma en el portal (solo GOVBR_MODE=sandbox):
// marca el token y dispara el mismo callback que enviaría gov.br.
func SandboxSign(sandbox sandboxSigner, coord *signature.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")
		if !sandbox.Sign(token) {
			return writeError(c, domain.ErrNotFound)
		}
		err := coord.Callback(c.Context(), dto.SignatureCallbackRequest{Token: token, Status: ports.ProviderStatusSigned})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.StatusResponse{Status: "success"})
	}
}
