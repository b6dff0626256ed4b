// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDeliveryAppliesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delivery:\n  per_minute: 20\n"), 0o600))

	applied := make(chan DeliveryConfig, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchDelivery(ctx, path, Default().Delivery, func(d DeliveryConfig) {
			applied <- d
		})
	}()

	// Let the watcher register before the first rewrite.
	time.Sleep(300 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(
		"delivery:\n  per_minute: 12\n  per_day: 600\n"), 0o600))

	select {
	case got := <-applied:
		assert.Equal(t, 12, got.PerMinute)
		assert.Equal(t, 600, got.PerDay)
		// Keys absent from the overlay keep their current values.
		assert.Equal(t, Default().Delivery.MaxAttempts, got.MaxAttempts)
	case <-time.After(5 * time.Second):
		t.Fatal("apply callback not invoked after rewrite")
	}

	// An invalid overlay is skipped and the last good config stays active.
	require.NoError(t, os.WriteFile(path, []byte("delivery:\n  per_minute: 0\n"), 0o600))
	time.Sleep(600 * time.Millisecond)
	select {
	case got := <-applied:
		t.Fatalf("invalid overlay must not be applied, got %+v", got)
	default:
	}

	// The next valid write still lands.
	require.NoError(t, os.WriteFile(path, []byte(
		"delivery:\n  per_minute: 15\n  per_day: 600\n"), 0o600))
	select {
	case got := <-applied:
		assert.Equal(t, 15, got.PerMinute)
	case <-time.After(5 * time.Second):
		t.Fatal("apply callback not invoked after recovery")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatchDeliveryIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delivery:\n  per_minute: 20\n"), 0o600))

	applied := make(chan DeliveryConfig, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = WatchDelivery(ctx, path, Default().Delivery, func(d DeliveryConfig) {
			applied <- d
		})
	}()

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(
		"delivery:\n  per_minute: 1\n"), 0o600))

	time.Sleep(600 * time.Millisecond)
	select {
	case got := <-applied:
		t.Fatalf("sibling file change must not trigger a reload, got %+v", got)
	default:
	}
}
