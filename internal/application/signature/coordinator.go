package signature

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/application/ports"
	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
)

// Coordinator orquesta el ciclo de firma de un documento:
//
//	draft → (RequestSignature) → pending-signature → (Verify | Callback) → signed
//
// El proveedor es la única autoridad sobre la firma; el coordinador solo refleja su estado.
// La transición a signed es idempotente: la aplica el store solo desde pending-signature.
type Coordinator struct {
	docs        repository.DocumentRepository
	renderer    ports.DocumentRenderer
	provider    ports.SignatureProvider
	callbackURL string
	log         zerolog.Logger
	now         func() time.Time
}

// NewCoordinator construye el coordinador. callbackURL es la URL pública que el proveedor invoca.
func NewCoordinator(
	docs repository.DocumentRepository,
	renderer ports.DocumentRenderer,
	provider ports.SignatureProvider,
	callbackURL string,
	log zerolog.Logger,
) *Coordinator {
	return &Coordinator{
		docs:        docs,
		renderer:    renderer,
		provider:    provider,
		callbackURL: callbackURL,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RequestSignature genera el PDF, lo envía al proveedor y deja el documento en pending-signature.
// Un documento ya firmado responde ErrNotFound. Si el proveedor falla el documento no cambia.
func (c *Coordinator) RequestSignature(ctx context.Context, owner *entity.User, documentID string) (*dto.SignatureRequestResponse, error) {
	doc, err := c.load(ctx, owner, documentID, entity.DocumentStatusDraft, entity.DocumentStatusPendingSignature)
	if err != nil {
		return nil, err
	}

	pdf, err := c.renderer.Render(ctx, ports.NewRenderInput(doc, owner))
	if err != nil {
		return nil, fmt.Errorf("signature: generar pdf: %w", err)
	}

	ticket, err := c.provider.RequestSignature(ctx, ports.SignatureRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString(pdf),
		Signer:         ports.Signer{CPF: owner.CPF, Name: owner.Name},
		CallbackURL:    c.callbackURL,
	})
	if err != nil {
		c.log.Error().Err(err).Str("document_id", doc.ID).Msg("proveedor de firma rechazó la solicitud")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	ok, err := c.docs.MarkPendingSignature(ctx, doc, ticket.Token, c.now())
	if err != nil {
		return nil, fmt.Errorf("signature: guardar token: %w", err)
	}
	if !ok {
		// Otra solicitud concurrente cambió el documento después de leerlo.
		c.log.Warn().Str("document_id", doc.ID).Msg("documento modificado durante la solicitud de firma")
		return nil, fmt.Errorf("%w: el documento cambió durante la solicitud de firma, reintente", domain.ErrConflict)
	}

	c.log.Info().Str("document_id", doc.ID).Str("user_id", owner.ID).Msg("firma solicitada")
	return &dto.SignatureRequestResponse{QRCode: ticket.QRCode, SignatureURL: ticket.SignatureURL}, nil
}

// VerifySignature consulta al proveedor el estado del token guardado.
// Solo aplica a documentos en pending-signature; en otro caso ErrNotFound sin llamar al proveedor.
func (c *Coordinator) VerifySignature(ctx context.Context, owner *entity.User, documentID string) (*dto.SignatureVerifyResponse, error) {
	doc, err := c.load(ctx, owner, documentID, entity.DocumentStatusPendingSignature)
	if err != nil {
		return nil, err
	}

	status, err := c.provider.SignatureStatus(ctx, doc.SignatureToken)
	if err != nil {
		c.log.Error().Err(err).Str("document_id", doc.ID).Msg("proveedor de firma no respondió la verificación")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if status == ports.ProviderStatusSigned {
		if err := c.markSigned(ctx, doc.ID, "verify"); err != nil {
			return nil, err
		}
	}
	return &dto.SignatureVerifyResponse{DocumentStatus: status}, nil
}

// Callback punto de entrada del proveedor. No autentica al llamador.
// Un status distinto de "signed" se acepta sin cambios.
func (c *Coordinator) Callback(ctx context.Context, in dto.SignatureCallbackRequest) error {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return fmt.Errorf("%w: token es requerido", domain.ErrValidation)
	}

	c.log.Warn().Str("status", in.Status).Msg("callback de firma recibido sin autenticación del proveedor")

	doc, err := c.docs.GetBySignatureToken(ctx, token)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: ningún documento con ese token", domain.ErrNotFound)
	}

	if in.Status != ports.ProviderStatusSigned {
		c.log.Info().Str("document_id", doc.ID).Str("status", in.Status).Msg("callback sin cambios")
		return nil
	}
	return c.markSigned(ctx, doc.ID, "callback")
}

func (c *Coordinator) markSigned(ctx context.Context, id, source string) error {
	applied, err := c.docs.MarkSigned(ctx, id, c.now())
	if err != nil {
		return fmt.Errorf("signature: marcar firmado: %w", err)
	}
	ev := c.log.Info().Str("document_id", id).Str("source", source)
	if applied {
		ev.Msg("documento firmado")
	} else {
		ev.Msg("documento ya estaba firmado")
	}
	return nil
}

func (c *Coordinator) load(ctx context.Context, owner *entity.User, id string, statuses ...string) (*entity.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrValidation)
	}
	doc, err := c.docs.GetByIDAndOwner(ctx, id, owner.ID, statuses...)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: ningún documento con ese ID", domain.ErrNotFound)
	}
	return doc, nil
}
