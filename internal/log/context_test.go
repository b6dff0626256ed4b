// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithUserID(ctx, "919876543210")
	ctx = ContextWithMessageID(ctx, "wamid.abc")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "919876543210", UserIDFromContext(ctx))
	assert.Equal(t, "wamid.abc", MessageIDFromContext(ctx))
}

func TestContextMissingValues(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, UserIDFromContext(nil)) //nolint:staticcheck
	assert.Empty(t, MessageIDFromContext(context.Background()))
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := ContextWithUserID(context.Background(), "911234567890")
	ctx = ContextWithMessageID(ctx, "wamid.xyz")

	ctxLogger := WithContext(ctx, logger)
	ctxLogger.Info().Msg("test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "911234567890", entry[FieldUserID])
	assert.Equal(t, "wamid.xyz", entry[FieldMessageID])
}

func TestWithContextNoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctxLogger := WithContext(context.Background(), logger)
	ctxLogger.Info().Msg("test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry[FieldUserID]
	assert.False(t, ok)
}
