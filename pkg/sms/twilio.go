package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// TwilioGateway sends messages through the Twilio Messages API using a
// Basic-Auth form-encoded POST.
type TwilioGateway struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

var _ Gateway = (*TwilioGateway)(nil)

func NewTwilioGateway(accountSID, authToken, fromNumber string) *TwilioGateway {
	return &TwilioGateway{
		accountSID: accountSID,
		authToken:  authToken,
		from:       fromNumber,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

// WithBaseURL overrides the API host. Used by tests.
func (g *TwilioGateway) WithBaseURL(base string) *TwilioGateway {
	g.baseURL = strings.TrimSuffix(base, "/")
	return g
}

// WithHTTPClient overrides the HTTP client.
func (g *TwilioGateway) WithHTTPClient(client *http.Client) *TwilioGateway {
	g.httpClient = client
	return g
}

type twilioResponse struct {
	Sid    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
	From   string `json:"from"`
	Body   string `json:"body"`
}

// Send makes a single delivery attempt. Transport and API failures come back
// as an unsuccessful Result rather than an error.
func (g *TwilioGateway) Send(ctx context.Context, toPhoneNumber, body string) Result {
	to := NormalizePhone(toPhoneNumber)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", g.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", g.baseURL, g.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return g.failure(to, fmt.Sprintf("failed to build SMS request: %v", err), err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(g.accountSID, g.authToken)

	log.Printf("sending SMS to %s", to)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return g.failure(to, fmt.Sprintf("failed to send SMS: %v", err), err.Error())
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("twilio API error: %d - %s", resp.StatusCode, string(respBody))
		return g.failure(to, fmt.Sprintf("failed to send SMS: %s", resp.Status), string(respBody))
	}

	var parsed twilioResponse
	status := "sent"
	if err := json.Unmarshal(respBody, &parsed); err == nil && parsed.Status != "" {
		status = parsed.Status
	}

	return Result{
		Success:   true,
		MessageID: parsed.Sid,
		Status:    status,
		Message:   "SMS sent successfully",
		To:        to,
		SentAt:    time.Now(),
	}
}

func (g *TwilioGateway) failure(to, message, details string) Result {
	return Result{
		Success:      false,
		Message:      message,
		ErrorDetails: details,
		To:           to,
		SentAt:       time.Now(),
	}
}
