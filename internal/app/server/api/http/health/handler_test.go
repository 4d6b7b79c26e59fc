package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestHandler_HealthCheck(t *testing.T) {
	h := NewHandler(slog.Default(), nil)

	out, err := h.healthCheck(context.Background(), &Input{})

	assert.NoError(t, err)
	assert.Equal(t, "OK", out.Body.Status)
}
