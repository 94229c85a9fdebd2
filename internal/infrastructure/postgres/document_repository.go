package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, type, content, status, signature_token, signed_at, user_id,
	patient_name, patient_cpf, patient_birth_date, created_at, updated_at`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
// Las transiciones de estado son UPDATE condicionales: una sola sentencia atómica por cambio.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository construye el adaptador de persistencia para documentos.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// Create persiste el documento.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		doc.ID, doc.Type, doc.Content, doc.Status, doc.SignatureToken, doc.SignedAt, doc.UserID,
		doc.Patient.Name, doc.Patient.CPF, doc.Patient.BirthDate, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByIDAndOwner búsqueda acotada al dueño; statuses vacío = cualquier estado.
func (r *DocumentRepo) GetByIDAndOwner(ctx context.Context, id, userID string, statuses ...string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	args := []any{id, userID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($3)`
		args = append(args, statuses)
	}
	d, err := scanDocument(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListByOwner más recientes primero; el contenido no se lee.
func (r *DocumentRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Document, error) {
	query := `
		SELECT id, type, '' AS content, status, signature_token, signed_at, user_id,
		       patient_name, patient_cpf, patient_birth_date, created_at, updated_at
		FROM documents WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetBySignatureToken busca sin dueño (callback del proveedor).
func (r *DocumentRepo) GetBySignatureToken(ctx context.Context, token string) (*entity.Document, error) {
	if token == "" {
		return nil, nil
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE signature_token = $1 LIMIT 1`
	d, err := scanDocument(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("get document by token: %w", err)
	}
	return d, nil
}

// MarkPendingSignature aplica el token solo si el documento sigue como se leyó.
func (r *DocumentRepo) MarkPendingSignature(ctx context.Context, expected *entity.Document, token string, now time.Time) (bool, error) {
	query := `
		UPDATE documents
		SET signature_token = $1, status = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5 AND status = $6 AND signature_token = $7
		  AND status IN ($8, $2)`
	tag, err := r.pool.Exec(ctx, query,
		token, entity.DocumentStatusPendingSignature, now,
		expected.ID, expected.UserID, expected.Status, expected.SignatureToken,
		entity.DocumentStatusDraft,
	)
	if err != nil {
		return false, fmt.Errorf("mark pending signature: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkSigned solo desde pending-signature; repetirlo no toca signed_at.
func (r *DocumentRepo) MarkSigned(ctx context.Context, id string, signedAt time.Time) (bool, error) {
	query := `
		UPDATE documents
		SET status = $1, signed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4`
	tag, err := r.pool.Exec(ctx, query,
		entity.DocumentStatusSigned, signedAt, id, entity.DocumentStatusPendingSignature,
	)
	if err != nil {
		return false, fmt.Errorf("mark signed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.Type, &d.Content, &d.Status, &d.SignatureToken, &d.SignedAt, &d.UserID,
		&d.Patient.Name, &d.Patient.CPF, &d.Patient.BirthDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
