//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/pkg/config"
)

// go test -tags integration ./internal/infrastructure/postgres/ con TEST_DATABASE_URL apuntando a una base descartable.
func newIntegrationRepos(t *testing.T) (*UserRepo, *DocumentRepo) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = NewMigrator(pool).Up(ctx)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE documents, users`)
	require.NoError(t, err)
	return NewUserRepository(pool), NewDocumentRepository(pool)
}

func seedUser(t *testing.T, users *UserRepo, cpf, crm string) *entity.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &entity.User{
		ID: uuid.NewString(), Name: "Dra. Ana Souza", CPF: cpf, CRM: crm,
		PasswordHash: "x", Role: entity.RoleProfessional, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func seedDraft(t *testing.T, docs *DocumentRepo, owner *entity.User) *entity.Document {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	birth := time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC)
	d := &entity.Document{
		ID: uuid.NewString(), Type: entity.DocumentTypePrescription, Content: "Dipirona 500mg",
		Status: entity.DocumentStatusDraft, UserID: owner.ID,
		Patient:   entity.PatientInfo{Name: "João", CPF: "111.222.333-44", BirthDate: &birth},
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, docs.Create(context.Background(), d))
	return d
}

func TestIntegration_UsuarioDuplicado(t *testing.T) {
	users, _ := newIntegrationRepos(t)
	seedUser(t, users, "123.456.789-09", "CRM/SP 1")

	err := users.Create(context.Background(), &entity.User{
		ID: uuid.NewString(), Name: "Otro", CPF: "123.456.789-09", CRM: "CRM/SP 2",
		PasswordHash: "x", Role: entity.RoleProfessional,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := users.GetByID(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIntegration_BusquedaPorDuenoYEstado(t *testing.T) {
	users, docs := newIntegrationRepos(t)
	ctx := context.Background()
	ana := seedUser(t, users, "123.456.789-09", "CRM/SP 1")
	bruno := seedUser(t, users, "987.654.321-00", "CRM/RJ 2")
	d := seedDraft(t, docs, ana)

	got, err := docs.GetByIDAndOwner(ctx, d.ID, ana.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dipirona 500mg", got.Content)
	require.NotNil(t, got.Patient.BirthDate)
	assert.Equal(t, "1980-05-17", got.Patient.BirthDate.Format("2006-01-02"))

	for name, tc := range map[string]struct {
		id, owner string
		statuses  []string
	}{
		"dueño ajeno":       {d.ID, bruno.ID, nil},
		"estado no pedido":  {d.ID, ana.ID, []string{entity.DocumentStatusPendingSignature}},
		"id que no es uuid": {"abc", ana.ID, nil},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := docs.GetByIDAndOwner(ctx, tc.id, tc.owner, tc.statuses...)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}

	list, err := docs.ListByOwner(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)
}

func TestIntegration_TransicionesCondicionales(t *testing.T) {
	users, docs := newIntegrationRepos(t)
	ctx := context.Background()
	ana := seedUser(t, users, "123.456.789-09", "CRM/SP 1")
	d := seedDraft(t, docs, ana)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Dos solicitudes leyeron el mismo borrador; solo la primera aplica.
	stale := *d
	ok, err := docs.MarkPendingSignature(ctx, d, "tok-a", now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = docs.MarkPendingSignature(ctx, &stale, "tok-b", now)
	require.NoError(t, err)
	assert.False(t, ok)

	byToken, err := docs.GetBySignatureToken(ctx, "tok-a")
	require.NoError(t, err)
	require.NotNil(t, byToken)
	assert.Equal(t, entity.DocumentStatusPendingSignature, byToken.Status)

	first := now.Add(time.Minute)
	ok, err = docs.MarkSigned(ctx, d.ID, first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = docs.MarkSigned(ctx, d.ID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := docs.GetByIDAndOwner(ctx, d.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusSigned, got.Status)
	require.NotNil(t, got.SignedAt)
	assert.True(t, got.SignedAt.Equal(first))

	// Firmado ya no acepta un nuevo token.
	ok, err = docs.MarkPendingSignature(ctx, got, "tok-c", now)
	require.NoError(t, err)
	assert.False(t, ok)
}
