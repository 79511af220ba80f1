package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lpkia/helpdesk-service/internal/config"
	"github.com/lpkia/helpdesk-service/internal/domain"
)

// WhatsAppClient pushes best-effort notifications through the Fonnte send
// API. All failures are reported to the caller, which logs and discards
// them; a push never affects ticket or message persistence.
type WhatsAppClient struct {
	cfg        config.WhatsAppConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWhatsAppClient constructs the client with a timeout-bounded transport.
func NewWhatsAppClient(cfg config.WhatsAppConfig, logger *zap.Logger) *WhatsAppClient {
	return &WhatsAppClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

// SendTimeout returns the bound applied around a single push.
func (c *WhatsAppClient) SendTimeout() time.Duration {
	return c.cfg.Timeout()
}

// Enabled reports whether an API token is configured.
func (c *WhatsAppClient) Enabled() bool {
	return c != nil && strings.TrimSpace(c.cfg.APIToken) != ""
}

// DepartmentPhone returns the configured contact number for a department,
// or empty when none is set.
func (c *WhatsAppClient) DepartmentPhone(dept domain.Department) string {
	switch dept {
	case domain.DepartmentBAU:
		return c.cfg.BAUPhone
	case domain.DepartmentBAA:
		return c.cfg.BAAPhone
	case domain.DepartmentMIS:
		return c.cfg.MISPhone
	}
	return ""
}

// NormalizePhone converts a raw phone number to the canonical
// country-code-prefixed form: whitespace, dashes, and plus signs are
// stripped; a leading zero is replaced by the country code; a bare local
// number gets the country code prepended.
func NormalizePhone(raw, countryCode string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '+':
			return -1
		}
		return r
	}, raw)

	switch {
	case strings.HasPrefix(clean, countryCode):
		return clean
	case strings.HasPrefix(clean, "0"):
		return countryCode + clean[1:]
	default:
		return countryCode + clean
	}
}

type sendRequest struct {
	Target      string `json:"target"`
	Message     string `json:"message"`
	CountryCode string `json:"countryCode"`
}

type sendResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
}

// Send posts a message to the given phone number. The number is normalized
// before sending.
func (c *WhatsAppClient) Send(ctx context.Context, phoneNumber, message string) error {
	if !c.Enabled() {
		return errors.New("whatsapp service not configured")
	}

	target := NormalizePhone(phoneNumber, c.cfg.CountryCode)
	body, err := json.Marshal(sendRequest{
		Target:      target,
		Message:     message,
		CountryCode: c.cfg.CountryCode,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Fonnte reports failures with HTTP 200 and status=false in the body.
	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}
		return fmt.Errorf("decode provider response: %w", err)
	}
	if !result.Status {
		if result.Reason != "" {
			return fmt.Errorf("provider rejected message: %s", result.Reason)
		}
		return fmt.Errorf("provider returned %d", resp.StatusCode)
	}
	c.logger.Debug("whatsapp message sent", zap.String("target", target))
	return nil
}
