package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

type patientRecord struct {
	Name      string     `bson:"name"`
	CPF       string     `bson:"cpf"`
	BirthDate *time.Time `bson:"birth_date,omitempty"`
}

type documentRecord struct {
	ID             string        `bson:"_id"`
	Type           string        `bson:"type"`
	Content        string        `bson:"content,omitempty"`
	Status         string        `bson:"status"`
	SignatureToken string        `bson:"signature_token"`
	SignedAt       *time.Time    `bson:"signed_at,omitempty"`
	UserID         string        `bson:"user_id"`
	Patient        patientRecord `bson:"patient_info"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}

func newDocumentRecord(d *entity.Document) documentRecord {
	return documentRecord{
		ID:             d.ID,
		Type:           d.Type,
		Content:        d.Content,
		Status:         d.Status,
		SignatureToken: d.SignatureToken,
		SignedAt:       d.SignedAt,
		UserID:         d.UserID,
		Patient:        patientRecord{Name: d.Patient.Name, CPF: d.Patient.CPF, BirthDate: d.Patient.BirthDate},
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r documentRecord) toEntity() *entity.Document {
	return &entity.Document{
		ID:             r.ID,
		Type:           r.Type,
		Content:        r.Content,
		Status:         r.Status,
		SignatureToken: r.SignatureToken,
		SignedAt:       utcPtr(r.SignedAt),
		UserID:         r.UserID,
		Patient: entity.PatientInfo{
			Name:      r.Patient.Name,
			CPF:       r.Patient.CPF,
			BirthDate: utcPtr(r.Patient.BirthDate),
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// DocumentRepo implementación de DocumentRepository sobre la colección documents.
// Las transiciones usan UpdateOne con el estado esperado en el filtro.
type DocumentRepo struct {
	coll *mongo.Collection
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(db *mongo.Database) *DocumentRepo {
	return &DocumentRepo{coll: db.Collection(documentsCollection)}
}

// Create persiste el documento.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if _, err := r.coll.InsertOne(ctx, newDocumentRecord(doc)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("mongo: insert document: %w", err)
	}
	return nil
}

// GetByIDAndOwner búsqueda acotada al dueño; statuses vacío = cualquier estado.
func (r *DocumentRepo) GetByIDAndOwner(ctx context.Context, id, userID string, statuses ...string) (*entity.Document, error) {
	filter := bson.M{"_id": id, "user_id": userID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.findOne(ctx, filter)
}

// ListByOwner más recientes primero, sin contenido.
func (r *DocumentRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"content": 0})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list documents: %w", err)
	}
	var recs []documentRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("mongo: decode documents: %w", err)
	}
	out := make([]*entity.Document, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toEntity())
	}
	return out, nil
}

// GetBySignatureToken busca sin dueño (callback).
func (r *DocumentRepo) GetBySignatureToken(ctx context.Context, token string) (*entity.Document, error) {
	if token == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"signature_token": token})
}

// MarkPendingSignature compare-and-swap sobre (estado, token) observados.
func (r *DocumentRepo) MarkPendingSignature(ctx context.Context, expected *entity.Document, token string, now time.Time) (bool, error) {
	if !expected.AwaitingSignature() {
		return false, nil
	}
	filter := bson.M{
		"_id":             expected.ID,
		"user_id":         expected.UserID,
		"status":          expected.Status,
		"signature_token": expected.SignatureToken,
	}
	update := bson.M{"$set": bson.M{
		"signature_token": token,
		"status":          entity.DocumentStatusPendingSignature,
		"updated_at":      now,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("mongo: mark pending signature: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// MarkSigned solo desde pending-signature; repetirlo no toca signed_at.
func (r *DocumentRepo) MarkSigned(ctx context.Context, id string, signedAt time.Time) (bool, error) {
	filter := bson.M{"_id": id, "status": entity.DocumentStatusPendingSignature}
	update := bson.M{"$set": bson.M{
		"status":     entity.DocumentStatusSigned,
		"signed_at":  signedAt,
		"updated_at": signedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("mongo: mark signed: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *DocumentRepo) findOne(ctx context.Context, filter bson.M) (*entity.Document, error) {
	var rec documentRecord
	if err := r.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo: get document: %w", err)
	}
	return rec.toEntity(), nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
