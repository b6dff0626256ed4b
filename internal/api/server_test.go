// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/outbox"
)

type fakeEngine struct {
	mu     sync.Mutex
	events []engine.Event
}

func (f *fakeEngine) ProcessInbound(_ context.Context, ev engine.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

type fakeOps struct {
	entries  []outbox.DeadLetterEntry
	audit    []outbox.LogEntry
	replayed string
}

func (f *fakeOps) ListDeadLetters(outbox.ListFilter) ([]outbox.DeadLetterEntry, error) {
	return f.entries, nil
}

func (f *fakeOps) Replay(id string) (string, error) {
	if id != "dl-1" {
		return "", outbox.ErrNotFound
	}
	f.replayed = id
	return "new-id", nil
}

func (f *fakeOps) RecentMessages(_ context.Context, limit int) ([]outbox.LogEntry, error) {
	if limit < len(f.audit) {
		return f.audit[:limit], nil
	}
	return f.audit, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeEngine, *fakeOps) {
	t.Helper()
	eng := &fakeEngine{}
	ops := &fakeOps{}
	srv := httptest.NewServer(New(eng, ops, "secret-token", nil).Router())
	t.Cleanup(srv.Close)
	return srv, eng, ops
}

func TestWebhookVerify(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf [16]byte
	n, _ := resp.Body.Read(buf[:])
	require.Equal(t, "12345", string(buf[:n]))
}

func TestWebhookVerifyBadToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

const sampleEnvelope = `{
  "entry": [{
    "changes": [{
      "value": {
        "messages": [
          {"from": "919800000001", "id": "wamid.1", "timestamp": "1750000000",
           "type": "text", "text": {"body": "hello"}},
          {"from": "919800000001", "id": "wamid.2", "timestamp": "1750000001",
           "type": "image", "image": {"id": "media-77", "caption": "invoice"}},
          {"from": "919800000001", "id": "wamid.3", "timestamp": "1750000002",
           "type": "interactive",
           "interactive": {"button_reply": {"id": "1", "title": "Yes"}}},
          {"from": "919800000001", "id": "wamid.4", "timestamp": "1750000003",
           "type": "sticker"}
        ]
      }
    }]
  }]
}`

func TestWebhookParsesEnvelope(t *testing.T) {
	srv, eng, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader(sampleEnvelope))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, eng.events, 3, "stickers are dropped")

	require.Equal(t, engine.EventText, eng.events[0].Type)
	require.Equal(t, "hello", eng.events[0].Text)
	require.Equal(t, "wamid.1", eng.events[0].MessageID)
	require.Equal(t, time.Unix(1750000000, 0), eng.events[0].Timestamp)

	require.Equal(t, engine.EventImage, eng.events[1].Type)
	require.Equal(t, "media-77", eng.events[1].MediaRef)
	require.Equal(t, "invoice", eng.events[1].Text)

	require.Equal(t, engine.EventInteractive, eng.events[2].Type)
	require.Equal(t, "1", eng.events[2].Text)
}

func TestWebhookBadPayload(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListDeadLetters(t *testing.T) {
	srv, _, ops := newTestServer(t)
	ops.entries = []outbox.DeadLetterEntry{{ID: "dl-1", Recipient: "919800000001"}}

	resp, err := http.Get(srv.URL + "/api/deadletters")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []outbox.DeadLetterEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	require.Equal(t, "dl-1", got[0].ID)
}

func TestRecentMessages(t *testing.T) {
	srv, _, ops := newTestServer(t)
	ops.audit = []outbox.LogEntry{
		{MessageID: "om-2", Recipient: "919800000001", Status: outbox.StatusDelivered},
		{MessageID: "om-1", Recipient: "919800000001", Status: outbox.StatusDeadLettered},
	}

	resp, err := http.Get(srv.URL + "/api/messages?limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []outbox.LogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	require.Equal(t, "om-2", got[0].MessageID)
}

func TestReplay(t *testing.T) {
	srv, _, ops := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/deadletters/dl-1/replay", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "new-id", got["new_message_id"])
	require.Equal(t, "dl-1", ops.replayed)
}

func TestReplayUnknownID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/deadletters/nope/replay", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv, _, _ := newTestServer(t)
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("degraded", func(t *testing.T) {
		eng := &fakeEngine{}
		srv := httptest.NewServer(New(eng, &fakeOps{}, "t", func(context.Context) error {
			return errors.New("redis down")
		}).Router())
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
