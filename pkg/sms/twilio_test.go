package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwilioGatewaySend(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	}))
	defer server.Close()

	gw := NewTwilioGateway("AC_test", "token", "+15550001111").WithBaseURL(server.URL)
	res := gw.Send(context.Background(), "03001234567", "hello")

	assert.True(t, res.Success)
	assert.Equal(t, "SM123", res.MessageID)
	assert.Equal(t, "queued", res.Status)
	assert.Equal(t, "/2010-04-01/Accounts/AC_test/Messages.json", gotPath)
	assert.Equal(t, "AC_test", gotUser)
	assert.Equal(t, "token", gotPass)
	assert.Equal(t, "+923001234567", gotTo)
	assert.Equal(t, "+15550001111", gotFrom)
	assert.Equal(t, "hello", gotBody)
}

func TestTwilioGatewaySendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":20003,"message":"Authentication Error"}`))
	}))
	defer server.Close()

	gw := NewTwilioGateway("AC_test", "bad-token", "+15550001111").WithBaseURL(server.URL)
	res := gw.Send(context.Background(), "+15551234567", "hello")

	assert.False(t, res.Success)
	assert.Empty(t, res.MessageID)
	assert.Contains(t, res.ErrorDetails, "Authentication Error")
}

func TestTwilioGatewaySendTransportError(t *testing.T) {
	// Point at a closed server to force a connection failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	gw := NewTwilioGateway("AC_test", "token", "+15550001111").WithBaseURL(server.URL)
	res := gw.Send(context.Background(), "+15551234567", "hello")

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.ErrorDetails)
}
