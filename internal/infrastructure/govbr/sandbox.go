package govbr

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/receituario-api/internal/application/ports"
)

var _ ports.SignatureProvider = (*SandboxProvider)(nil)

// SandboxProvider proveedor local para desarrollo: no llama a gov.br.
// Emite tokens uuid y reporta "pending" hasta que se marque el token con Sign.
type SandboxProvider struct {
	baseURL string

	mu     sync.Mutex
	signed map[string]bool
}

// NewSandboxProvider baseURL es la URL pública de la API (APP_URL).
func NewSandboxProvider(baseURL string) *SandboxProvider {
	return &SandboxProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		signed:  make(map[string]bool),
	}
}

// RequestSignature emite un ticket local.
func (p *SandboxProvider) RequestSignature(_ context.Context, _ ports.SignatureRequest) (*ports.SignatureTicket, error) {
	token := uuid.New().String()
	p.mu.Lock()
	p.signed[token] = false
	p.mu.Unlock()
	return &ports.SignatureTicket{
		Token:        token,
		QRCode:       "govbr-sandbox:" + token,
		SignatureURL: p.baseURL + "/sandbox/sign/" + token,
	}, nil
}

// SignatureStatus "signed" si el token fue marcado, "pending" si existe, "unknown" si no.
func (p *SandboxProvider) SignatureStatus(_ context.Context, token string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	signed, ok := p.signed[token]
	switch {
	case !ok:
		return "unknown", nil
	case signed:
		return ports.ProviderStatusSigned, nil
	default:
		return "pending", nil
	}
}

// Sign simula la firma del usuario en el portal. Devuelve false si el token no existe.
func (p *SandboxProvider) Sign(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.signed[token]; !ok {
		return false
	}
	p.signed[token] = true
	return true
}
