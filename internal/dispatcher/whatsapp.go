package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/saulloallves/central-tickets-94-sub006/config"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/sirupsen/logrus"
)

// WhatsAppClient talks to a Z-API style messaging gateway. Credentials come
// from configuration resolved once at startup; a call with incomplete
// credentials fails with ErrGatewayNotConfigured (operator error, 500).
type WhatsAppClient struct {
	cfg  *config.WhatsAppConfig
	http *http.Client
}

func NewWhatsAppClient(cfg *config.WhatsAppConfig, client *http.Client) *WhatsAppClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &WhatsAppClient{cfg: cfg, http: client}
}

func (c *WhatsAppClient) configured() bool {
	return c.cfg.BaseURL != "" && c.cfg.InstanceID != "" && c.cfg.InstanceToken != "" && c.cfg.ClientToken != ""
}

func (c *WhatsAppClient) endpoint(path string) string {
	return fmt.Sprintf("%s/instances/%s/token/%s/%s",
		c.cfg.BaseURL, c.cfg.InstanceID, c.cfg.InstanceToken, path)
}

func (c *WhatsAppClient) SendText(ctx context.Context, phone, message string) (*GatewayResponse, error) {
	if phone == "" {
		return nil, entity.ErrMissingPhone
	}
	if !c.configured() {
		return nil, entity.ErrGatewayNotConfigured
	}

	return c.post(ctx, c.endpoint("send-text"), map[string]string{
		"phone":   phone,
		"message": message,
	})
}

func (c *WhatsAppClient) SendLink(ctx context.Context, msg *LinkMessage) (*GatewayResponse, error) {
	if msg.Phone == "" {
		return nil, entity.ErrMissingPhone
	}
	if !c.configured() {
		return nil, entity.ErrGatewayNotConfigured
	}

	return c.post(ctx, c.endpoint("send-link"), msg)
}

func (c *WhatsAppClient) post(ctx context.Context, url string, payload interface{}) (*GatewayResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Token", c.cfg.ClientToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"status": resp.StatusCode,
	}).Info("WhatsApp gateway call completed")

	// The raw gateway answer goes back to the caller as is, success or not.
	return &GatewayResponse{StatusCode: resp.StatusCode, Body: raw}, nil
}
