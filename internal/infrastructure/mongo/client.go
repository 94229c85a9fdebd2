// Package mongo implementa los puertos de persistencia sobre MongoDB (DB_DRIVER=mongo).
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/receituario-api/pkg/config"
)

const (
	usersCollection     = "users"
	documentsCollection = "documents"
)

// Connect abre el cliente, hace ping y devuelve la base configurada.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: conectar: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices equivalentes a los constraints de la migración SQL.
// Es idempotente; se ejecuta en `migrate up` y al arrancar con DB_DRIVER=mongo.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cpf", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_cpf_key")},
		{Keys: bson.D{{Key: "crm", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_crm_key")},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("mongo: índices users: %w", err)
	}

	docs := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("idx_documents_user_created")},
		{
			Keys: bson.D{{Key: "signature_token", Value: 1}},
			Options: options.Index().
				SetName("idx_documents_signature_token").
				SetPartialFilterExpression(bson.M{"signature_token": bson.M{"$gt": ""}}),
		},
	}
	if _, err := db.Collection(documentsCollection).Indexes().CreateMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo: índices documents: %w", err)
	}
	return nil
}
