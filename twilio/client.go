// Package twilio is a minimal REST client for sending proactive WhatsApp
// messages. Replies to inbound webhooks don't go through here; they are
// rendered as TwiML by the server package.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://api.twilio.com/2010-04-01"

// ErrNotConfigured is returned when credentials or the sender number are
// missing. The caller decides whether that is fatal.
var ErrNotConfigured = errors.New("twilio: REST client not configured")

// Client sends messages through the Twilio Messages API.
type Client struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
}

// NewClient builds a client. Empty credentials are allowed; Send then fails
// with ErrNotConfigured so the rest of the service keeps working.
func NewClient(accountSID, authToken, from string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether the client has everything needed to send.
func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != "" && c.from != ""
}

// Send delivers one plain-text message to a WhatsApp identity.
func (c *Client) Send(ctx context.Context, to, body string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", apiBase, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("twilio: send message: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
