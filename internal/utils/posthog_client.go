// Package utils holds small cross-cutting helpers.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper is a nil-safe wrapper around posthog.Client. When no
// API key is configured every method is a no-op, so callers never need to
// branch on whether analytics is enabled.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient returns a wrapper ready for use. An empty apiKey
// yields a disabled wrapper.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &PosthogClientWrapper{}
	}
	client, _ := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return &PosthogClientWrapper{client: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue submits an analytics event attributed to distinctID.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

func (w *PosthogClientWrapper) Close() {
	if w.client == nil {
		return
	}
	w.client.Close()
}
