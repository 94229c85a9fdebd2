package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/receituario-api/internal/application/documents"
	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// DocumentHandler maneja los documentos clínicos del usuario autenticado.
type DocumentHandler struct {
	uc *documents.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento (queda en draft)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDocumentRequest  true  "type, content, patientInfo"
// @Success      201   {object}  dto.DocumentEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	doc, err := h.uc.Create(c.Context(), GetUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentEnvelope{Document: *doc})
}

// List godoc
// @Summary      Listar documentos propios (sin contenido)
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.Context(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DocumentEnvelope{Document: *doc})
}

// PDF godoc
// @Summary      Descargar PDF del documento (cualquier estado)
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.PDF(c.Context(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(pdf)
}

// Template godoc
// @Summary      Texto base por tipo de documento
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        type       path   string  true   "prescription | certificate | exam-request"
// @Param        name       query  string  false  "nombre del paciente"
// @Param        cpf        query  string  false  "CPF del paciente"
// @Param        birthDate  query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/templates/{type} [get]
func (h *DocumentHandler) Template(c *fiber.Ctx) error {
	docType := c.Params("type")
	content, err := h.uc.Template(docType, documents.TemplatePatient{
		Name:      c.Query("name"),
		CPF:       c.Query("cpf"),
		BirthDate: c.Query("birthDate"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TemplateResponse{Type: docType, Title: entity.DocumentTitle(docType), Content: content})
}
