package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})

	logger := WithComponent("staging")
	logger.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"staging"`) {
		t.Errorf("expected component field in output, got %q", out)
	}
	if !strings.Contains(out, `"service":"test"`) {
		t.Errorf("expected service field in output, got %q", out)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("expected req-123, got %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
}
