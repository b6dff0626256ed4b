// SPDX-License-Identifier: MIT

// Package gateway talks to the WhatsApp Cloud API. It implements the
// delivery pipeline's Sender contract and classifies failures into the
// pipeline's transient/permanent taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/taxsetu/waflow/internal/log"
	"github.com/taxsetu/waflow/internal/outbox"
)

const defaultTimeout = 15 * time.Second

// WhatsApp sends messages through the Cloud API messages endpoint.
type WhatsApp struct {
	baseURL string
	phoneID string
	token   string
	client  *http.Client
	logger  zerolog.Logger
}

// New creates a gateway for the given Cloud API credentials. baseURL is
// the Graph API root, e.g. https://graph.facebook.com/v19.0.
func New(baseURL, phoneID, token string) *WhatsApp {
	return &WhatsApp{
		baseURL: baseURL,
		phoneID: phoneID,
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  log.WithComponent("gateway"),
	}
}

// outboundText is the Cloud API request body for a text message.
type outboundText struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Image *struct {
		Link    string `json:"link"`
		Caption string `json:"caption,omitempty"`
	} `json:"image,omitempty"`
}

// Send delivers one payload to recipient. A nil return means the Cloud
// API accepted the message. Timeouts, connection errors, 429 and 5xx
// responses wrap outbox.ErrTransient; other rejections wrap
// outbox.ErrPermanent.
func (g *WhatsApp) Send(ctx context.Context, recipient string, p outbox.Payload) error {
	body := outboundText{
		MessagingProduct: "whatsapp",
		To:               recipient,
	}
	if p.MediaRef != "" {
		body.Type = "image"
		body.Image = &struct {
			Link    string `json:"link"`
			Caption string `json:"caption,omitempty"`
		}{Link: p.MediaRef, Caption: p.Caption}
	} else {
		body.Type = "text"
		body.Text = &struct {
			Body string `json:"body"`
		}{Body: p.Text}
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gateway: encode payload: %w", errors.Join(outbox.ErrPermanent, err))
	}

	url := fmt.Sprintf("%s/%s/messages", g.baseURL, g.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", errors.Join(outbox.ErrPermanent, err))
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// Network errors and timeouts are worth a retry.
		return fmt.Errorf("gateway: send to %s: %w", recipient, errors.Join(outbox.ErrTransient, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	g.logger.Warn().
		Int("status", resp.StatusCode).
		Str(log.FieldRecipient, recipient).
		Str("body", string(snippet)).
		Msg("cloud api rejected send")

	class := outbox.ErrPermanent
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		class = outbox.ErrTransient
	}
	return fmt.Errorf("gateway: cloud api status %d: %w", resp.StatusCode, class)
}
