package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fleet-service/internal/config"
	"fleet-service/internal/service"
)

// NotifyClient pushes status-change events to the notifications service.
// Delivery is best effort; callers log the error and move on.
type NotifyClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
}

func NewNotifyClient(cfg *config.Config) *NotifyClient {
	return &NotifyClient{
		baseURL:       cfg.ExternalServices.NotifyServiceURL,
		internalToken: cfg.ExternalServices.NotifyInternalToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *NotifyClient) Notify(ctx context.Context, event service.Event) error {
	if c.baseURL == "" {
		return fmt.Errorf("notify service URL is not configured")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/notifications/events", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.internalToken != "" {
		req.Header.Set("X-Internal-Token", c.internalToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify service returned %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}
