package repository

import (
	"context"
	"time"

	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para Document.
// Los métodos Get* devuelven (nil, nil) cuando no hay coincidencia.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// GetByIDAndOwner busca el documento del usuario con alguno de los estados dados.
	// Sin estados no filtra por estado.
	GetByIDAndOwner(ctx context.Context, id, userID string, statuses ...string) (*entity.Document, error)
	// ListByOwner devuelve los documentos del usuario, más recientes primero, sin Content.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Document, error)
	// GetBySignatureToken es la única búsqueda sin dueño (callback del proveedor).
	GetBySignatureToken(ctx context.Context, token string) (*entity.Document, error)
	// MarkPendingSignature guarda el token y pasa a pending-signature solo si el documento
	// sigue en expected.Status con expected.SignatureToken. Devuelve false si otro request ganó.
	MarkPendingSignature(ctx context.Context, expected *entity.Document, token string, now time.Time) (bool, error)
	// MarkSigned pasa a signed solo desde pending-signature. Sobre un documento ya
	// firmado es un no-op y conserva el signed_at original.
	MarkSigned(ctx context.Context, id string, signedAt time.Time) (bool, error)
}
