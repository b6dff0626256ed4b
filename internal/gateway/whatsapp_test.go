// SPDX-License-Identifier: MIT

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taxsetu/waflow/internal/outbox"
)

func TestSendText(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/12345/messages", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := New(srv.URL, "12345", "tok")
	err := g.Send(context.Background(), "919800000001", outbox.Payload{Text: "hello"})
	require.NoError(t, err)

	require.Equal(t, "whatsapp", got["messaging_product"])
	require.Equal(t, "919800000001", got["to"])
	require.Equal(t, "text", got["type"])
	require.Equal(t, map[string]any{"body": "hello"}, got["text"])
}

func TestSendMedia(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := New(srv.URL, "12345", "tok")
	err := g.Send(context.Background(), "919800000001", outbox.Payload{
		MediaRef: "https://cdn.example/summary.pdf",
		Caption:  "GSTR-3B summary",
	})
	require.NoError(t, err)
	require.Equal(t, "image", got["type"])
	require.Equal(t, map[string]any{
		"link":    "https://cdn.example/summary.pdf",
		"caption": "GSTR-3B summary",
	}, got["image"])
}

func TestSendClassifiesFailures(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		permanent bool
	}{
		{"server error", http.StatusInternalServerError, false},
		{"rate limited", http.StatusTooManyRequests, false},
		{"bad request", http.StatusBadRequest, true},
		{"unauthorized", http.StatusUnauthorized, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":{"message":"nope"}}`, tc.status)
			}))
			defer srv.Close()

			g := New(srv.URL, "12345", "tok")
			err := g.Send(context.Background(), "919800000001", outbox.Payload{Text: "x"})
			require.Error(t, err)
			require.Equal(t, tc.permanent, outbox.IsPermanent(err))
		})
	}
}

func TestSendNetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	g := New(srv.URL, "12345", "tok")
	err := g.Send(context.Background(), "919800000001", outbox.Payload{Text: "x"})
	require.Error(t, err)
	require.False(t, outbox.IsPermanent(err))
}
