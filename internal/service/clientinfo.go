package service

import "context"

type clientInfoKey int

const (
	clientIPKey clientInfoKey = iota
	userAgentKey
)

// WithClientInfo stashes the caller's address and user agent for audit rows.
// The HTTP middleware sets this; background callers can skip it and get the
// defaults.
func WithClientInfo(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, ip)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

func clientInfo(ctx context.Context) (ip, userAgent string) {
	ip, userAgent = "127.0.0.1", "SmartTales Admin"
	if v, ok := ctx.Value(clientIPKey).(string); ok && v != "" {
		ip = v
	}
	if v, ok := ctx.Value(userAgentKey).(string); ok && v != "" {
		userAgent = v
	}
	return ip, userAgent
}
