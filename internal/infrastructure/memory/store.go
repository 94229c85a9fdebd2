// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory en desarrollo local y en los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
)

// Store datos compartidos por ambos repositorios.
type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	documents map[string]entity.Document
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		documents: make(map[string]entity.Document),
	}
}

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

// Create aplica la unicidad de CPF y CRM igual que los índices de la base.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.CPF == user.CPF || u.CRM == user.CRM {
			return domain.ErrConflict
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByCPF obtiene un usuario por CPF.
func (r *UserRepo) GetByCPF(_ context.Context, cpf string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.CPF == cpf {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// List devuelve todos los usuarios, más recientes primero.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// DocumentRepo implementación en memoria de DocumentRepository.
type DocumentRepo struct{ s *Store }

// NewDocumentRepository construye el repositorio sobre el store.
func NewDocumentRepository(s *Store) *DocumentRepo { return &DocumentRepo{s: s} }

// Create persiste el documento.
func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documents[doc.ID]; ok {
		return domain.ErrConflict
	}
	r.s.documents[doc.ID] = *doc
	return nil
}

// GetByIDAndOwner búsqueda acotada al dueño y, opcionalmente, a estados.
func (r *DocumentRepo) GetByIDAndOwner(_ context.Context, id, userID string, statuses ...string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.documents[id]
	if !ok || d.UserID != userID || !statusIn(d.Status, statuses) {
		return nil, nil
	}
	return &d, nil
}

// ListByOwner más recientes primero, sin contenido.
func (r *DocumentRepo) ListByOwner(_ context.Context, userID string) ([]*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Document
	for _, d := range r.s.documents {
		if d.UserID != userID {
			continue
		}
		d := d
		d.Content = ""
		list = append(list, &d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// GetBySignatureToken busca sin dueño (callback).
func (r *DocumentRepo) GetBySignatureToken(_ context.Context, token string) (*entity.Document, error) {
	if token == "" {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.SignatureToken == token {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

// MarkPendingSignature compare-and-swap sobre (estado, token) observados.
func (r *DocumentRepo) MarkPendingSignature(_ context.Context, expected *entity.Document, token string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[expected.ID]
	if !ok || d.UserID != expected.UserID || d.Status != expected.Status || d.SignatureToken != expected.SignatureToken {
		return false, nil
	}
	if !d.AwaitingSignature() {
		return false, nil
	}
	d.SignatureToken = token
	d.Status = entity.DocumentStatusPendingSignature
	d.UpdatedAt = now
	r.s.documents[d.ID] = d
	return true, nil
}

// MarkSigned solo desde pending-signature; idempotente.
func (r *DocumentRepo) MarkSigned(_ context.Context, id string, signedAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok || d.Status != entity.DocumentStatusPendingSignature {
		return false, nil
	}
	t := signedAt
	d.Status = entity.DocumentStatusSigned
	d.SignedAt = &t
	d.UpdatedAt = signedAt
	r.s.documents[id] = d
	return true, nil
}

func statusIn(status string, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
