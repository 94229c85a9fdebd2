// Package govbr implementa ports.SignatureProvider contra la API de assinatura digital gov.br.
package govbr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/receituario-api/internal/application/ports"
)

var _ ports.SignatureProvider = (*Client)(nil)

const maxResponseBytes = 64 * 1024

// Client adaptador HTTP del proveedor. Una llamada por operación, sin reintentos.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout <= 0 usa 30 s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Protocolo ────────────────────────────────────────────────────────────────

type signatureRequestBody struct {
	Document    string       `json:"document"`
	Signer      ports.Signer `json:"signer"`
	CallbackURL string       `json:"callbackUrl"`
}

type signatureResponseBody struct {
	Token        string `json:"token"`
	QRCode       string `json:"qrCode"`
	SignatureURL string `json:"signatureUrl"`
}

type verifyResponseBody struct {
	Status string `json:"status"`
}

// ── Implementación del puerto ────────────────────────────────────────────────

// RequestSignature POST /signatures.
func (c *Client) RequestSignature(ctx context.Context, in ports.SignatureRequest) (*ports.SignatureTicket, error) {
	body, err := json.Marshal(signatureRequestBody{
		Document:    in.DocumentBase64,
		Signer:      in.Signer,
		CallbackURL: in.CallbackURL,
	})
	if err != nil {
		return nil, fmt.Errorf("govbr: serializar request: %w", err)
	}

	var out signatureResponseBody
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/signatures", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("govbr: respuesta sin token")
	}
	return &ports.SignatureTicket{Token: out.Token, QRCode: out.QRCode, SignatureURL: out.SignatureURL}, nil
}

// SignatureStatus GET /signatures/verify?token=...
func (c *Client) SignatureStatus(ctx context.Context, token string) (string, error) {
	endpoint := c.baseURL + "/signatures/verify?" + url.Values{"token": {token}}.Encode()
	var out verifyResponseBody
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return "", err
	}
	if out.Status == "" {
		return "", fmt.Errorf("govbr: respuesta sin status")
	}
	return out.Status, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("govbr: crear HTTP request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("govbr: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("govbr: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("govbr: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("govbr: HTTP %d: %s", resp.StatusCode, truncate(string(raw), 256))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("govbr: parsear respuesta: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
