// Package accountapi submits validated accounts to an organisation-accounts HTTP API.
package accountapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/port"
)

const (
	accountsPath = "/v1/organisation/accounts"
	healthPath   = "/v1/health"
	mediaType    = "application/vnd.api+json"

	maxErrorBody = 64 << 10
)

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// TLS overrides the transport TLS settings, e.g. to trust a private CA.
	TLS *tls.Config
}

// Client talks to the organisation-accounts API. It implements port.AccountSubmitter.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

var _ port.AccountSubmitter = (*Client)(nil)

// NewClient creates a Client for cfg.BaseURL.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse account api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("account api url %q must be http or https", cfg.BaseURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		transport.TLSClientConfig = cfg.TLS
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger:  logger,
	}, nil
}

// Submit creates the account. cop adds Confirmation of Payee attributes.
func (c *Client) Submit(ctx context.Context, account model.Account, cop *model.CopAccount) (port.Receipt, error) {
	body, err := json.Marshal(envelope{Data: toAccountData(account, cop)})
	if err != nil {
		return port.Receipt{}, fmt.Errorf("encode account: %w", err)
	}

	var out envelope
	if err := c.do(ctx, http.MethodPost, accountsPath, body, &out); err != nil {
		return port.Receipt{}, err
	}
	if out.Data == nil {
		return port.Receipt{}, errors.New("account api: empty response body")
	}

	receipt := port.Receipt{ID: account.ID()}
	if id, err := uuid.Parse(out.Data.ID); err == nil {
		receipt.ID = id
	}
	if out.Data.Version != nil {
		receipt.Version = int(*out.Data.Version)
	}
	if out.Data.CreatedOn != nil {
		receipt.CreatedOn = *out.Data.CreatedOn
	}

	c.logger.DebugContext(ctx, "account submitted",
		"account_id", receipt.ID,
		"version", receipt.Version,
	)
	return receipt, nil
}

// Ping checks that the API answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, healthPath, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", mediaType)
	if body != nil {
		req.Header.Set("Content-Type", mediaType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "account api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.ErrorMessage
		apiErr.Code = body.ErrorCode
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
