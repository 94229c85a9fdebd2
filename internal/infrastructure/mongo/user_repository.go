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

var _ repository.UserRepository = (*UserRepo)(nil)

type userRecord struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	CPF          string    `bson:"cpf"`
	CRM          string    `bson:"crm"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (r userRecord) toEntity() *entity.User {
	return &entity.User{
		ID:           r.ID,
		Name:         r.Name,
		CPF:          r.CPF,
		CRM:          r.CRM,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

// UserRepo implementación de UserRepository sobre la colección users.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepository construye el adaptador.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(usersCollection)}
}

// Create persiste el usuario; la unicidad de CPF y CRM la garantizan los índices.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.coll.InsertOne(ctx, userRecord{
		ID:           u.ID,
		Name:         u.Name,
		CPF:          u.CPF,
		CRM:          u.CRM,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("mongo: insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByCPF obtiene un usuario por CPF.
func (r *UserRepo) GetByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"cpf": cpf})
}

// List devuelve todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list users: %w", err)
	}
	var recs []userRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("mongo: decode users: %w", err)
	}
	out := make([]*entity.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toEntity())
	}
	return out, nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var rec userRecord
	if err := r.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo: get user: %w", err)
	}
	return rec.toEntity(), nil
}
