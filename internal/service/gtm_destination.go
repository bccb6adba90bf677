package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GTMDestination forwards events to a server-side Google Tag Manager
// container. The payload mirrors a dataLayer push: the event name plus
// its parameters in one flat JSON object.
type GTMDestination struct {
	endpoint string
	client   *http.Client
}

// NewGTMDestination creates a destination posting to the given
// server-side container URL
func NewGTMDestination(endpoint string, timeout time.Duration) *GTMDestination {
	return &GTMDestination{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (d *GTMDestination) Name() string {
	return "gtm"
}

func (d *GTMDestination) Track(ctx context.Context, event string, params map[string]interface{}) error {
	payload := make(map[string]interface{}, len(params)+1)
	for k, v := range params {
		payload[k] = v
	}
	payload["event"] = event

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create GTM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach GTM endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("GTM endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
