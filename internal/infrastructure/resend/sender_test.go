package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	resendsdk "github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-assistant/internal/domain/email"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) *Sender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resendsdk.NewClient("re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	return NewSenderWithClient(client)
}

func TestSender_Send(t *testing.T) {
	var got map[string]any
	var auth string
	sender := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_42"}`))
	})

	id, err := sender.Send(context.Background(), email.Message{
		From:    "me@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "email_42", id)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Hello", got["subject"])
	assert.Equal(t, "<p>Hi</p>", got["html"])
	assert.Len(t, got["to"], 2)
}

func TestSender_SendError(t *testing.T) {
	sender := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	})

	_, err := sender.Send(context.Background(), email.Message{From: "me@example.com", To: []string{"bad"}, Subject: "s", HTML: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend send")
}
