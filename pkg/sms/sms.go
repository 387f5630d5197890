package sms

import (
	"context"
	"strings"
	"time"
)

// Result captures the outcome of a single send attempt. Delivery failure is
// data, not an error: callers record the outcome and continue.
type Result struct {
	Success      bool      `json:"success"`
	MessageID    string    `json:"message_id"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	ErrorDetails string    `json:"error_details,omitempty"`
	To           string    `json:"to"`
	SentAt       time.Time `json:"sent_at"`
}

// Gateway sends a text message to a phone number. Implementations make one
// attempt with no retry; the surrounding workflow decides what a failure means.
type Gateway interface {
	Send(ctx context.Context, toPhoneNumber, body string) Result
}

// NormalizePhone coerces a locally formatted number into E.164 form. This is a
// heuristic tuned for the app's Pakistani/US user base, not a general-purpose
// parser: numbers already carrying "+" pass through untouched, a leading 0
// means a Pakistani number, and anything else is assumed US.
func NormalizePhone(number string) string {
	if strings.HasPrefix(number, "+") {
		return number
	}

	clean := strings.NewReplacer("-", "", "(", "", ")", "", " ", "").Replace(number)

	if strings.HasPrefix(clean, "0") {
		return "+92" + clean[1:]
	}
	return "+1" + clean
}
